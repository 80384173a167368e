package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/eventbus"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Фейковые репозитории: храним всё в памяти, встраиваем интерфейс,
// чтобы реализовать только нужные тестам методы.

type fakeUserRepo struct {
	repositories.UserRepositoryInterface
	users map[uint64]*entities.User
}

func (r *fakeUserRepo) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) UpdateStudentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	user, ok := r.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	user.StudentStatus = &status
	return nil
}

func (r *fakeUserRepo) UpdateGraduationInfo(ctx context.Context, tx pgx.Tx, id uint64, u *entities.User) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	copied := *u
	r.users[id] = &copied
	return nil
}

type fakeActivityLogRepo struct {
	repositories.ActivityLogRepositoryInterface
	entries []entities.ActivityLog
}

func (r *fakeActivityLogRepo) Create(ctx context.Context, tx pgx.Tx, logEntry *entities.ActivityLog) (uint64, error) {
	r.entries = append(r.entries, *logEntry)
	return uint64(len(r.entries)), nil
}

type fakeNotificationRepo struct {
	repositories.NotificationRepositoryInterface
	notifications []entities.Notification
}

func (r *fakeNotificationRepo) Create(ctx context.Context, tx pgx.Tx, n *entities.Notification) (uint64, error) {
	r.notifications = append(r.notifications, *n)
	return uint64(len(r.notifications)), nil
}

type fakeTxManager struct{}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

func newTestStudent(id uint64) *entities.User {
	status := constants.StudentStatusCurrent
	degree := constants.DegreeBachelor
	studentType := constants.StudentTypeRegular
	admission := 2021
	graduation := 2025
	return &entities.User{
		ID:             id,
		FirstName:      "Aziz",
		LastName:       "Rahmonov",
		Email:          "a.rahmonov@student.university.tj",
		Role:           constants.RoleStudent,
		AdmissionYear:  &admission,
		GraduationYear: &graduation,
		DegreeLevel:    &degree,
		StudentType:    &studentType,
		StudentStatus:  &status,
	}
}

func newTestGraduationService(users ...*entities.User) (*GraduationService, *fakeUserRepo, *fakeActivityLogRepo, *fakeNotificationRepo) {
	userRepo := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	logRepo := &fakeActivityLogRepo{}
	notifRepo := &fakeNotificationRepo{}

	logger := zap.NewNop()
	svc := NewGraduationService(userRepo, logRepo, notifRepo, &fakeTxManager{}, eventbus.New(logger), logger)
	return svc, userRepo, logRepo, notifRepo
}

func TestAcademicYear(t *testing.T) {
	// Учебный год начинается в июне и идентифицируется годом начала.
	assert.Equal(t, 2025, AcademicYear(time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, AcademicYear(time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2024, AcademicYear(time.Date(2025, time.May, 31, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2025, AcademicYear(time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)))
}

func TestIsEligibleForGraduation(t *testing.T) {
	student := newTestStudent(1)

	// До 1 июня года выпуска — рано.
	assert.False(t, IsEligibleForGraduation(student, time.Date(2025, time.May, 31, 23, 59, 0, 0, time.UTC)))
	// Ровно 1 июня — можно.
	assert.True(t, IsEligibleForGraduation(student, time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)))
	assert.True(t, IsEligibleForGraduation(student, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))

	// Выпускник права не имеет.
	graduate := constants.StudentStatusGraduate
	student.StudentStatus = &graduate
	assert.False(t, IsEligibleForGraduation(student, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))

	// Без года выпуска права нет.
	current := constants.StudentStatusCurrent
	student.StudentStatus = &current
	student.GraduationYear = nil
	assert.False(t, IsEligibleForGraduation(student, time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)))
}

func TestValidateGraduationData_Durations(t *testing.T) {
	cases := []struct {
		name       string
		degree     string
		admission  int
		graduation int
		wantErrors bool
	}{
		{"бакалавр 4 года", constants.DegreeBachelor, 2021, 2025, false},
		{"бакалавр 5 лет", constants.DegreeBachelor, 2020, 2025, false},
		{"бакалавр 7 лет", constants.DegreeBachelor, 2020, 2027, true},
		{"бакалавр 3 года", constants.DegreeBachelor, 2022, 2025, true},
		{"магистр 2 года", constants.DegreeMaster, 2023, 2025, false},
		{"магистр 3 года", constants.DegreeMaster, 2022, 2025, false},
		{"магистр 4 года", constants.DegreeMaster, 2021, 2025, true},
		{"аспирантура 3 года", constants.DegreePhd, 2022, 2025, false},
		{"аспирантура 5 лет", constants.DegreePhd, 2020, 2025, false},
		{"аспирантура 6 лет", constants.DegreePhd, 2019, 2025, true},
		{"докторантура без нормы срока", constants.DegreeDsc, 2015, 2025, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			student := newTestStudent(1)
			student.DegreeLevel = &tc.degree
			student.AdmissionYear = &tc.admission
			student.GraduationYear = &tc.graduation
			if tc.degree == constants.DegreePhd || tc.degree == constants.DegreeDsc {
				free := constants.StudentTypeFreeApplicant
				student.StudentType = &free
			}

			errs := ValidateGraduationData(student)
			if tc.wantErrors {
				assert.NotEmpty(t, errs)
			} else {
				assert.Empty(t, errs)
			}
		})
	}
}

func TestValidateGraduationData_StudentTypes(t *testing.T) {
	// Бакалавры и магистры обязаны быть на очной форме.
	for _, degree := range []string{constants.DegreeBachelor, constants.DegreeMaster} {
		student := newTestStudent(1)
		student.DegreeLevel = &degree
		admission, graduation := 2021, 2025
		if degree == constants.DegreeMaster {
			admission = 2023
		}
		student.AdmissionYear = &admission
		student.GraduationYear = &graduation

		external := constants.StudentTypeExternal
		student.StudentType = &external
		assert.NotEmpty(t, ValidateGraduationData(student), degree)

		regular := constants.StudentTypeRegular
		student.StudentType = &regular
		assert.Empty(t, ValidateGraduationData(student), degree)
	}

	// Аспирантура допускает любую форму.
	for _, st := range []string{constants.StudentTypeRegular, constants.StudentTypeFreeApplicant, constants.StudentTypeExternal} {
		student := newTestStudent(1)
		phd := constants.DegreePhd
		admission, graduation := 2021, 2025
		student.DegreeLevel = &phd
		student.AdmissionYear = &admission
		student.GraduationYear = &graduation
		studentType := st
		student.StudentType = &studentType
		assert.Empty(t, ValidateGraduationData(student), st)
	}
}

func TestValidateGraduationData_MissingYears(t *testing.T) {
	student := newTestStudent(1)
	student.AdmissionYear = nil
	errs := ValidateGraduationData(student)
	require.Len(t, errs, 1)
	assert.Equal(t, "admissionYear", errs[0].Field)
}

func TestConfirmGraduation(t *testing.T) {
	student := newTestStudent(42)
	svc, userRepo, logRepo, notifRepo := newTestGraduationService(student)
	svc.nowFn = func() time.Time { return time.Date(2025, time.July, 1, 12, 0, 0, 0, time.UTC) }

	result, err := svc.ConfirmGraduation(context.Background(), 1, 42, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.StudentStatusGraduate, *result.StudentStatus)
	assert.Equal(t, constants.StudentStatusGraduate, *userRepo.users[42].StudentStatus)

	// Ровно одна запись журнала и одно уведомление.
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, constants.ActionStudentGraduated, logRepo.entries[0].Action)
	assert.Equal(t, uint64(42), *logRepo.entries[0].TargetID)

	require.Len(t, notifRepo.notifications, 1)
	assert.Equal(t, uint64(42), notifRepo.notifications[0].UserID)
	assert.Equal(t, constants.NotificationSuccess, notifRepo.notifications[0].Type)
}

func TestConfirmGraduation_NotEligibleBeforeJune(t *testing.T) {
	student := newTestStudent(42)
	svc, _, logRepo, notifRepo := newTestGraduationService(student)
	svc.nowFn = func() time.Time { return time.Date(2025, time.May, 15, 0, 0, 0, 0, time.UTC) }

	_, err := svc.ConfirmGraduation(context.Background(), 1, 42, nil, nil)
	require.Error(t, err)

	httpErr := apperrors.AsHttpError(err)
	assert.Equal(t, apperrors.CodeNotEligible, httpErr.Code)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, logRepo.entries)
	assert.Empty(t, notifRepo.notifications)
}

func TestConfirmGraduation_AlreadyGraduated(t *testing.T) {
	student := newTestStudent(42)
	svc, _, _, _ := newTestGraduationService(student)
	svc.nowFn = func() time.Time { return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC) }

	_, err := svc.ConfirmGraduation(context.Background(), 1, 42, nil, nil)
	require.NoError(t, err)

	// Повторное подтверждение отклоняется.
	_, err = svc.ConfirmGraduation(context.Background(), 1, 42, nil, nil)
	require.Error(t, err)
	httpErr := apperrors.AsHttpError(err)
	assert.Equal(t, apperrors.CodeAlreadyGraduated, httpErr.Code)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestConfirmGraduation_InvalidData(t *testing.T) {
	student := newTestStudent(42)
	admission := 2020
	graduation := 2027
	student.AdmissionYear = &admission
	student.GraduationYear = &graduation

	svc, _, _, _ := newTestGraduationService(student)
	svc.nowFn = func() time.Time { return time.Date(2027, time.July, 1, 0, 0, 0, 0, time.UTC) }

	_, err := svc.ConfirmGraduation(context.Background(), 1, 42, nil, nil)
	require.Error(t, err)

	httpErr := apperrors.AsHttpError(err)
	assert.Equal(t, apperrors.CodeValidationError, httpErr.Code)
	assert.NotEmpty(t, httpErr.Details)
}

func TestConfirmGraduation_StudentNotFound(t *testing.T) {
	svc, _, _, _ := newTestGraduationService()

	_, err := svc.ConfirmGraduation(context.Background(), 1, 999, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeStudentNotFound, apperrors.AsHttpError(err).Code)
}

func TestRevertGraduation(t *testing.T) {
	student := newTestStudent(42)
	graduate := constants.StudentStatusGraduate
	student.StudentStatus = &graduate

	svc, userRepo, logRepo, notifRepo := newTestGraduationService(student)

	result, err := svc.RevertGraduation(context.Background(), 1, 42, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.StudentStatusCurrent, *result.StudentStatus)
	assert.Equal(t, constants.StudentStatusCurrent, *userRepo.users[42].StudentStatus)
	require.Len(t, logRepo.entries, 1)
	assert.Equal(t, constants.ActionStudentGraduationReverted, logRepo.entries[0].Action)
	require.Len(t, notifRepo.notifications, 1)
	assert.Equal(t, constants.NotificationWarning, notifRepo.notifications[0].Type)
}

func TestRevertGraduation_NotGraduated(t *testing.T) {
	student := newTestStudent(42)
	svc, _, _, _ := newTestGraduationService(student)

	_, err := svc.RevertGraduation(context.Background(), 1, 42, nil, nil)
	require.Error(t, err)
	httpErr := apperrors.AsHttpError(err)
	assert.Equal(t, apperrors.CodeNotGraduated, httpErr.Code)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestConfirmThenRevertRestoresStatus(t *testing.T) {
	student := newTestStudent(42)
	svc, userRepo, _, _ := newTestGraduationService(student)
	svc.nowFn = func() time.Time { return time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC) }

	_, err := svc.ConfirmGraduation(context.Background(), 1, 42, nil, nil)
	require.NoError(t, err)
	_, err = svc.RevertGraduation(context.Background(), 1, 42, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, constants.StudentStatusCurrent, *userRepo.users[42].StudentStatus)
}

func TestUpdateGraduationInfo_RejectedForGraduate(t *testing.T) {
	student := newTestStudent(42)
	graduate := constants.StudentStatusGraduate
	student.StudentStatus = &graduate

	svc, _, _, _ := newTestGraduationService(student)

	payload := dto.UpdateGraduationInfoDTO{
		AdmissionYear:  2021,
		GraduationYear: 2026,
		DegreeLevel:    constants.DegreeBachelor,
	}
	_, err := svc.UpdateGraduationInfo(context.Background(), 1, 42, payload, nil, nil)
	require.Error(t, err)
	httpErr := apperrors.AsHttpError(err)
	assert.Equal(t, apperrors.CodeStudentGraduated, httpErr.Code)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
}

func TestUpdateGraduationInfo_AtomicValidation(t *testing.T) {
	student := newTestStudent(42)
	svc, userRepo, _, _ := newTestGraduationService(student)

	// Недопустимый срок обучения: ничего не должно записаться.
	payload := dto.UpdateGraduationInfoDTO{
		AdmissionYear:  2020,
		GraduationYear: 2027,
		DegreeLevel:    constants.DegreeBachelor,
	}
	_, err := svc.UpdateGraduationInfo(context.Background(), 1, 42, payload, nil, nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.CodeValidationError, apperrors.AsHttpError(err).Code)
	assert.Equal(t, 2021, *userRepo.users[42].AdmissionYear)
	assert.Equal(t, 2025, *userRepo.users[42].GraduationYear)

	// Корректные данные применяются целиком.
	payload.GraduationYear = 2025
	payload.AdmissionYear = 2020
	updated, err := svc.UpdateGraduationInfo(context.Background(), 1, 42, payload, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 2020, *updated.AdmissionYear)
	assert.Equal(t, 2020, *userRepo.users[42].AdmissionYear)
}
