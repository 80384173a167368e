package services

import (
	"context"
	"testing"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	apperrors "alumni-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFacultyRepo struct {
	repositories.FacultyRepositoryInterface
	faculties map[uint64]*entities.Faculty
}

func (r *fakeFacultyRepo) FindFaculty(ctx context.Context, id uint64) (*entities.Faculty, error) {
	f, ok := r.faculties[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *f
	return &copied, nil
}

func (r *fakeFacultyRepo) FindFacultyByName(ctx context.Context, name string) (*entities.Faculty, error) {
	for _, f := range r.faculties {
		if f.Name == name {
			copied := *f
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeFacultyRepo) CreateFaculty(ctx context.Context, f *entities.Faculty) (uint64, error) {
	id := uint64(len(r.faculties) + 1)
	copied := *f
	copied.ID = id
	r.faculties[id] = &copied
	return id, nil
}

func (r *fakeFacultyRepo) UpdateFaculty(ctx context.Context, id uint64, f *entities.Faculty) error {
	if _, ok := r.faculties[id]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *f
	copied.ID = id
	r.faculties[id] = &copied
	return nil
}

type fakeDirectionRepo struct {
	repositories.DirectionRepositoryInterface
	directions map[uint64]*entities.Direction
}

func (r *fakeDirectionRepo) FindDirection(ctx context.Context, id uint64) (*entities.Direction, error) {
	d, ok := r.directions[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *d
	return &copied, nil
}

func (r *fakeDirectionRepo) FindDirectionByName(ctx context.Context, facultyID uint64, name string) (*entities.Direction, error) {
	for _, d := range r.directions {
		if d.FacultyID == facultyID && d.Name == name {
			copied := *d
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDirectionRepo) CreateDirection(ctx context.Context, d *entities.Direction) (uint64, error) {
	id := uint64(len(r.directions) + 1)
	copied := *d
	copied.ID = id
	r.directions[id] = &copied
	return id, nil
}

func newTestDictionaryService() (*DictionaryService, *fakeFacultyRepo, *fakeDirectionRepo) {
	facultyRepo := &fakeFacultyRepo{faculties: make(map[uint64]*entities.Faculty)}
	directionRepo := &fakeDirectionRepo{directions: make(map[uint64]*entities.Direction)}
	svc := NewDictionaryService(facultyRepo, directionRepo, nil, zap.NewNop())
	return svc, facultyRepo, directionRepo
}

func TestCreateFaculty_DuplicateName(t *testing.T) {
	svc, repo, _ := newTestDictionaryService()
	repo.faculties[1] = &entities.Faculty{ID: 1, Name: "Инженерный факультет"}

	_, err := svc.CreateFaculty(context.Background(), dto.CreateFacultyDTO{Name: "Инженерный факультет"})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsHttpError(err).Code)
}

func TestCreateFaculty(t *testing.T) {
	svc, repo, _ := newTestDictionaryService()

	faculty, err := svc.CreateFaculty(context.Background(), dto.CreateFacultyDTO{Name: "Экономический факультет"})
	require.NoError(t, err)
	assert.Equal(t, "Экономический факультет", faculty.Name)
	assert.Contains(t, repo.faculties, faculty.ID)
}

func TestUpdateFaculty_RenameToExisting(t *testing.T) {
	svc, repo, _ := newTestDictionaryService()
	repo.faculties[1] = &entities.Faculty{ID: 1, Name: "Инженерный факультет"}
	repo.faculties[2] = &entities.Faculty{ID: 2, Name: "Экономический факультет"}

	_, err := svc.UpdateFaculty(context.Background(), 2, dto.UpdateFacultyDTO{
		Name: null.StringFrom("Инженерный факультет"),
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsHttpError(err).Code)
}

func TestUpdateFaculty_SameNameAllowed(t *testing.T) {
	svc, repo, _ := newTestDictionaryService()
	repo.faculties[1] = &entities.Faculty{ID: 1, Name: "Инженерный факультет"}

	// Повтор собственного имени не считается конфликтом.
	faculty, err := svc.UpdateFaculty(context.Background(), 1, dto.UpdateFacultyDTO{
		Name:        null.StringFrom("Инженерный факультет"),
		Description: null.StringFrom("Технические специальности"),
	})
	require.NoError(t, err)
	require.NotNil(t, faculty.Description)
	assert.Equal(t, "Технические специальности", *faculty.Description)
}

func TestCreateDirection_UnknownFaculty(t *testing.T) {
	svc, _, _ := newTestDictionaryService()

	_, err := svc.CreateDirection(context.Background(), dto.CreateDirectionDTO{
		FacultyID: 999,
		Name:      "Программная инженерия",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeNotFound, apperrors.AsHttpError(err).Code)
}

func TestCreateDirection_NameUniquePerFaculty(t *testing.T) {
	svc, facultyRepo, directionRepo := newTestDictionaryService()
	facultyRepo.faculties[1] = &entities.Faculty{ID: 1, Name: "Инженерный факультет"}
	facultyRepo.faculties[2] = &entities.Faculty{ID: 2, Name: "Экономический факультет"}
	directionRepo.directions[1] = &entities.Direction{ID: 1, FacultyID: 1, Name: "Менеджмент"}

	// Дубликат в пределах факультета запрещён.
	_, err := svc.CreateDirection(context.Background(), dto.CreateDirectionDTO{
		FacultyID: 1,
		Name:      "Менеджмент",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsHttpError(err).Code)

	// То же имя на другом факультете допустимо.
	direction, err := svc.CreateDirection(context.Background(), dto.CreateDirectionDTO{
		FacultyID: 2,
		Name:      "Менеджмент",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(2), direction.FacultyID)
}
