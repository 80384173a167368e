package services

import (
	"context"
	"testing"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAssignmentRepo struct {
	repositories.TeacherStudentRepositoryInterface
	pairs   map[[2]uint64]bool
	created []entities.TeacherStudent
}

func newFakeAssignmentRepo() *fakeAssignmentRepo {
	return &fakeAssignmentRepo{pairs: make(map[[2]uint64]bool)}
}

func (r *fakeAssignmentRepo) Exists(ctx context.Context, teacherID, studentID uint64) (bool, error) {
	return r.pairs[[2]uint64{teacherID, studentID}], nil
}

func (r *fakeAssignmentRepo) Create(ctx context.Context, tx pgx.Tx, a *entities.TeacherStudent) (uint64, error) {
	r.pairs[[2]uint64{a.TeacherID, a.StudentID}] = true
	r.created = append(r.created, *a)
	return uint64(len(r.created)), nil
}

func (r *fakeAssignmentRepo) Delete(ctx context.Context, teacherID, studentID uint64) error {
	key := [2]uint64{teacherID, studentID}
	if !r.pairs[key] {
		return apperrors.NewNotFoundError(apperrors.CodeAssignmentNotFound, "закрепление не найдено")
	}
	delete(r.pairs, key)
	return nil
}

func newTestTeacher(id uint64) *entities.User {
	return &entities.User{
		ID:        id,
		FirstName: "Dilshod",
		LastName:  "Karimov",
		Email:     "d.karimov@university.tj",
		Role:      constants.RoleTeacher,
	}
}

func newTestAssignmentService(users ...*entities.User) (*AssignmentService, *fakeAssignmentRepo, *fakeActivityLogRepo) {
	userRepo := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	assignmentRepo := newFakeAssignmentRepo()
	logRepo := &fakeActivityLogRepo{}

	svc := NewAssignmentService(assignmentRepo, userRepo, logRepo, &fakeTxManager{}, zap.NewNop())
	return svc, assignmentRepo, logRepo
}

func TestAssignStudents(t *testing.T) {
	svc, repo, logRepo := newTestAssignmentService(
		newTestTeacher(1),
		newTestStudent(10),
		newTestStudent(11),
	)

	result, err := svc.AssignStudents(context.Background(), 99, 1,
		dto.AssignStudentsDTO{StudentIDs: []uint64{10, 11}}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Assigned)
	assert.Equal(t, 0, result.Skipped)
	assert.Empty(t, result.Errors)
	assert.True(t, repo.pairs[[2]uint64{1, 10}])
	assert.True(t, repo.pairs[[2]uint64{1, 11}])
	assert.Len(t, logRepo.entries, 2)
	assert.Equal(t, constants.ActionStudentAssigned, logRepo.entries[0].Action)

	// Каждая связь хранит автора закрепления.
	require.Len(t, repo.created, 2)
	for _, a := range repo.created {
		assert.Equal(t, uint64(99), a.AssignedBy)
	}
}

func TestAssignStudents_SkipsExistingPair(t *testing.T) {
	svc, repo, _ := newTestAssignmentService(newTestTeacher(1), newTestStudent(10))
	repo.pairs[[2]uint64{1, 10}] = true

	result, err := svc.AssignStudents(context.Background(), 99, 1,
		dto.AssignStudentsDTO{StudentIDs: []uint64{10}}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Assigned)
	assert.Equal(t, 1, result.Skipped)
	assert.Empty(t, result.Errors)
}

func TestAssignStudents_CollectsErrorsWithoutAborting(t *testing.T) {
	teacher2 := newTestTeacher(2)
	svc, repo, _ := newTestAssignmentService(newTestTeacher(1), teacher2, newTestStudent(10))

	// Неизвестный id и не-студент не прерывают пакет.
	result, err := svc.AssignStudents(context.Background(), 99, 1,
		dto.AssignStudentsDTO{StudentIDs: []uint64{999, 2, 10}}, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Assigned)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "studentIds.999", result.Errors[0].Field)
	assert.Equal(t, "studentIds.2", result.Errors[1].Field)
	assert.True(t, repo.pairs[[2]uint64{1, 10}])
}

func TestAssignStudents_TeacherNotFound(t *testing.T) {
	svc, _, _ := newTestAssignmentService(newTestStudent(10))

	_, err := svc.AssignStudents(context.Background(), 99, 1,
		dto.AssignStudentsDTO{StudentIDs: []uint64{10}}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUserNotFound, apperrors.AsHttpError(err).Code)
}

func TestAssignStudents_StudentAsTeacherRejected(t *testing.T) {
	// Роль цели проверяется: студент не может выступать преподавателем.
	svc, _, _ := newTestAssignmentService(newTestStudent(5), newTestStudent(10))

	_, err := svc.AssignStudents(context.Background(), 99, 5,
		dto.AssignStudentsDTO{StudentIDs: []uint64{10}}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeUserNotFound, apperrors.AsHttpError(err).Code)
}

func TestUnassignStudent(t *testing.T) {
	svc, repo, logRepo := newTestAssignmentService(newTestTeacher(1), newTestStudent(10))
	repo.pairs[[2]uint64{1, 10}] = true

	err := svc.UnassignStudent(context.Background(), 99, 1, 10, nil, nil)
	require.NoError(t, err)

	assert.False(t, repo.pairs[[2]uint64{1, 10}])
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, constants.ActionStudentUnassigned, logRepo.entries[0].Action)
}

func TestUnassignStudent_MissingPair(t *testing.T) {
	svc, _, _ := newTestAssignmentService(newTestTeacher(1))

	err := svc.UnassignStudent(context.Background(), 99, 1, 10, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAssignmentNotFound, apperrors.AsHttpError(err).Code)
}
