package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/events"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/eventbus"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Дополнительные методы fakeUserRepo для пользовательских сценариев.

func (r *fakeUserRepo) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	for _, u := range r.users {
		if u.Phone != nil && *u.Phone == phone {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) FindUserByStudentID(ctx context.Context, studentID string) (*entities.User, error) {
	for _, u := range r.users {
		if u.StudentID != nil && *u.StudentID == studentID {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, tx pgx.Tx, user *entities.User) (uint64, error) {
	id := uint64(len(r.users) + 1)
	copied := *user
	copied.ID = id
	r.users[id] = &copied
	return id, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, tx pgx.Tx, id uint64, user *entities.User) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *user
	copied.ID = id
	r.users[id] = &copied
	return nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uint64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SetVerified(ctx context.Context, id uint64) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.IsVerified = true
	return nil
}

func (r *fakeUserRepo) SetBlocked(ctx context.Context, id uint64, blocked bool, reason *string) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.IsBlocked = blocked
	user.BlockReason = reason
	return nil
}

func (r *fakeUserRepo) SearchStudents(ctx context.Context, query string, filter types.Filter) ([]entities.User, uint64, error) {
	matches := func(u *entities.User) bool {
		if u.Role != constants.RoleStudent {
			return false
		}
		if query == "" {
			return true
		}
		q := strings.ToLower(query)
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			return true
		}
		return u.StudentID != nil && strings.Contains(strings.ToLower(*u.StudentID), q)
	}

	result := make([]entities.User, 0)
	for _, u := range r.users {
		if matches(u) {
			result = append(result, *u)
		}
	}
	return result, uint64(len(result)), nil
}

func newTestUserService(users ...*entities.User) (*UserService, *fakeUserRepo, *fakeActivityLogRepo) {
	userRepo := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	logRepo := &fakeActivityLogRepo{}
	svc := NewUserService(userRepo, logRepo, &fakeTxManager{}, eventbus.New(zap.NewNop()), zap.NewNop())
	return svc, userRepo, logRepo
}

func TestCreateUser(t *testing.T) {
	svc, repo, logRepo := newTestUserService()

	user, err := svc.CreateUser(context.Background(), 1, dto.CreateUserDTO{
		FirstName: "Aziz",
		LastName:  "Rahmonov",
		Email:     "A.Rahmonov@University.TJ",
		Password:  "password123",
		Role:      constants.RoleStudent,
	}, nil, nil)
	require.NoError(t, err)

	// Почта нормализуется, студент получает статус current,
	// админская учётка сразу верифицирована.
	assert.Equal(t, "a.rahmonov@university.tj", user.Email)
	assert.True(t, user.IsVerified)
	require.NotNil(t, user.StudentStatus)
	assert.Equal(t, constants.StudentStatusCurrent, *user.StudentStatus)
	assert.NotEqual(t, "password123", user.Password)
	assert.NoError(t, utils.ComparePasswords(user.Password, "password123"))

	assert.Contains(t, repo.users, user.ID)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, constants.ActionUserCreated, logRepo.entries[0].Action)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	existing := newTestStudent(1)
	svc, _, _ := newTestUserService(existing)

	_, err := svc.CreateUser(context.Background(), 1, dto.CreateUserDTO{
		FirstName: "Другой",
		LastName:  "Студент",
		Email:     existing.Email,
		Password:  "password123",
		Role:      constants.RoleStudent,
	}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeEmailExists, apperrors.AsHttpError(err).Code)
}

func TestCreateUser_DuplicateStudentID(t *testing.T) {
	existing := newTestStudent(1)
	sid := "20210001"
	existing.StudentID = &sid
	svc, _, _ := newTestUserService(existing)

	_, err := svc.CreateUser(context.Background(), 1, dto.CreateUserDTO{
		FirstName: "Другой",
		LastName:  "Студент",
		Email:     "other@university.tj",
		StudentID: &sid,
		Password:  "password123",
		Role:      constants.RoleStudent,
	}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeStudentIDExists, apperrors.AsHttpError(err).Code)
}

func TestUpdateUser_PartialMerge(t *testing.T) {
	student := newTestStudent(1)
	svc, repo, _ := newTestUserService(student)

	updated, err := svc.UpdateUser(context.Background(), 99, 1, dto.UpdateUserDTO{
		FirstName: null.StringFrom("Азиз"),
	}, nil, nil)
	require.NoError(t, err)

	// Непереданные поля не трогаются.
	assert.Equal(t, "Азиз", updated.FirstName)
	assert.Equal(t, "Rahmonov", updated.LastName)
	assert.Equal(t, student.Email, repo.users[1].Email)
}

func TestUpdateUser_EmailConflict(t *testing.T) {
	first := newTestStudent(1)
	second := newTestStudent(2)
	second.Email = "second@university.tj"
	svc, _, _ := newTestUserService(first, second)

	_, err := svc.UpdateUser(context.Background(), 99, 2, dto.UpdateUserDTO{
		Email: null.StringFrom(first.Email),
	}, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeEmailExists, apperrors.AsHttpError(err).Code)
}

func TestUpdateUser_OwnEmailNotConflict(t *testing.T) {
	student := newTestStudent(1)
	svc, _, _ := newTestUserService(student)

	_, err := svc.UpdateUser(context.Background(), 99, 1, dto.UpdateUserDTO{
		Email: null.StringFrom(student.Email),
	}, nil, nil)
	assert.NoError(t, err)
}

func TestDeleteUser_SelfForbidden(t *testing.T) {
	admin := newTestTeacher(1)
	admin.Role = constants.RoleAdmin
	svc, repo, _ := newTestUserService(admin)

	err := svc.DeleteUser(context.Background(), 1, 1, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeCannotDeleteSelf, apperrors.AsHttpError(err).Code)
	assert.Contains(t, repo.users, uint64(1))
}

func TestDeleteUser(t *testing.T) {
	student := newTestStudent(2)
	svc, repo, logRepo := newTestUserService(student)

	err := svc.DeleteUser(context.Background(), 1, 2, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, repo.users, uint64(2))
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, constants.ActionUserDeleted, logRepo.entries[0].Action)
}

func TestVerifyUser_PublishesEvent(t *testing.T) {
	student := newTestStudent(1)
	userRepo := &fakeUserRepo{users: map[uint64]*entities.User{1: student}}
	bus := eventbus.New(zap.NewNop())
	svc := NewUserService(userRepo, &fakeActivityLogRepo{}, &fakeTxManager{}, bus, zap.NewNop())

	published := make(chan eventbus.Event, 1)
	bus.Subscribe(events.UserVerifiedEvent{}.Name(), func(ctx context.Context, e eventbus.Event) error {
		published <- e
		return nil
	})

	verified, err := svc.VerifyUser(context.Background(), 99, 1, nil, nil)
	require.NoError(t, err)
	assert.True(t, verified.IsVerified)

	select {
	case e := <-published:
		event, ok := e.(events.UserVerifiedEvent)
		require.True(t, ok)
		assert.Equal(t, uint64(1), event.User.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("событие о верификации не опубликовано")
	}
}

func TestVerifyUser_AlreadyVerified(t *testing.T) {
	student := newTestStudent(1)
	student.IsVerified = true
	svc, _, _ := newTestUserService(student)

	_, err := svc.VerifyUser(context.Background(), 99, 1, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeAlreadyVerified, apperrors.AsHttpError(err).Code)
}

func TestSetBlocked(t *testing.T) {
	student := newTestStudent(1)
	svc, repo, logRepo := newTestUserService(student)

	reason := "нарушение правил"
	blocked, err := svc.SetBlocked(context.Background(), 99, 1, true, &reason, nil, nil)
	require.NoError(t, err)
	assert.True(t, blocked.IsBlocked)
	assert.True(t, repo.users[1].IsBlocked)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, constants.ActionUserBlocked, logRepo.entries[0].Action)

	unblocked, err := svc.SetBlocked(context.Background(), 99, 1, false, nil, nil, nil)
	require.NoError(t, err)
	assert.False(t, unblocked.IsBlocked)
	assert.Equal(t, constants.ActionUserUnblocked, logRepo.entries[1].Action)
}

func TestSetBlocked_SelfForbidden(t *testing.T) {
	admin := newTestTeacher(1)
	admin.Role = constants.RoleAdmin
	svc, _, _ := newTestUserService(admin)

	reason := "ошибка"
	_, err := svc.SetBlocked(context.Background(), 1, 1, true, &reason, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeConflict, apperrors.AsHttpError(err).Code)
}

func TestChangePassword(t *testing.T) {
	student := newTestStudent(1)
	hashed, err := utils.HashPassword("old-password")
	require.NoError(t, err)
	student.Password = hashed

	svc, _, _ := newTestUserService(student)

	err = svc.ChangePassword(context.Background(), 1, dto.ChangePasswordDTO{
		OldPassword: "wrong-password",
		NewPassword: "new-password",
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeBadRequest, apperrors.AsHttpError(err).Code)
}

func TestSearchStudents(t *testing.T) {
	student := newTestStudent(1)
	other := newTestStudent(2)
	other.FirstName = "Firuza"
	other.LastName = "Karimova"
	other.Email = "f.karimova@university.tj"
	teacher := newTestTeacher(3)
	teacher.LastName = "Rahmonov"

	svc, _, _ := newTestUserService(student, other, teacher)

	found, total, err := svc.SearchStudents(context.Background(), "rahmonov", types.Filter{Limit: 10})
	require.NoError(t, err)

	// Преподаватель с той же фамилией в выдачу не попадает.
	assert.Equal(t, uint64(1), total)
	require.Len(t, found, 1)
	assert.Equal(t, uint64(1), found[0].ID)
}
