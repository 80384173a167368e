package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/events"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/eventbus"
	"alumni-system/pkg/types"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// GraduationService — выпускной процесс: проверка права на выпуск,
// подтверждение, откат, редактирование академических данных и статистика.
type GraduationService struct {
	userRepository         repositories.UserRepositoryInterface
	activityLogRepository  repositories.ActivityLogRepositoryInterface
	notificationRepository repositories.NotificationRepositoryInterface
	txManager              repositories.TxManagerInterface
	bus                    *eventbus.Bus
	logger                 *zap.Logger

	// nowFn подменяется в тестах: право на выпуск зависит от даты.
	nowFn func() time.Time
}

func NewGraduationService(
	userRepository repositories.UserRepositoryInterface,
	activityLogRepository repositories.ActivityLogRepositoryInterface,
	notificationRepository repositories.NotificationRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *GraduationService {
	return &GraduationService{
		userRepository:         userRepository,
		activityLogRepository:  activityLogRepository,
		notificationRepository: notificationRepository,
		txManager:              txManager,
		bus:                    bus,
		logger:                 logger,
		nowFn:                  time.Now,
	}
}

// AcademicYear возвращает учебный год для момента времени: с июня
// начинается новый год, до июня продолжается предыдущий.
func AcademicYear(now time.Time) int {
	if int(now.Month()) >= constants.AcademicYearBoundaryMonth {
		return now.Year()
	}
	return now.Year() - 1
}

// IsEligibleForGraduation — студент со статусом current может выпуститься
// не раньше 1 июня года выпуска.
func IsEligibleForGraduation(student *entities.User, now time.Time) bool {
	if student.StudentStatus == nil || *student.StudentStatus != constants.StudentStatusCurrent {
		return false
	}
	if student.GraduationYear == nil {
		return false
	}
	boundary := time.Date(*student.GraduationYear, time.June, 1, 0, 0, 0, 0, now.Location())
	return !now.Before(boundary)
}

// ValidateGraduationData проверяет согласованность академических полей.
// Возвращает список ошибок, а не первую попавшуюся: админ исправляет всё
// за один заход.
func ValidateGraduationData(student *entities.User) []apperrors.FieldError {
	var errs []apperrors.FieldError

	if student.AdmissionYear == nil || student.GraduationYear == nil {
		errs = append(errs, apperrors.FieldError{
			Field:   "admissionYear",
			Message: "годы поступления и выпуска обязательны",
		})
		return errs
	}

	duration := *student.GraduationYear - *student.AdmissionYear
	degree := ""
	if student.DegreeLevel != nil {
		degree = *student.DegreeLevel
	}

	switch degree {
	case constants.DegreeBachelor:
		if duration < 4 || duration > 5 {
			errs = append(errs, apperrors.FieldError{
				Field:   "graduationYear",
				Message: "срок обучения бакалавра должен составлять 4-5 лет",
			})
		}
	case constants.DegreeMaster:
		if duration < 2 || duration > 3 {
			errs = append(errs, apperrors.FieldError{
				Field:   "graduationYear",
				Message: "срок обучения магистра должен составлять 2-3 года",
			})
		}
	case constants.DegreePhd:
		if duration < 3 || duration > 5 {
			errs = append(errs, apperrors.FieldError{
				Field:   "graduationYear",
				Message: "срок обучения в аспирантуре должен составлять 3-5 лет",
			})
		}
	case constants.DegreeDsc:
		// Для докторантуры срок не нормируется.
	default:
		errs = append(errs, apperrors.FieldError{
			Field:   "degreeLevel",
			Message: "уровень образования не указан или неизвестен",
		})
	}

	if degree == constants.DegreeBachelor || degree == constants.DegreeMaster {
		if student.StudentType == nil || *student.StudentType != constants.StudentTypeRegular {
			errs = append(errs, apperrors.FieldError{
				Field:   "studentType",
				Message: "бакалавры и магистры могут обучаться только по очной форме",
			})
		}
	}

	return errs
}

func (s *GraduationService) findStudent(ctx context.Context, id uint64) (*entities.User, error) {
	student, err := s.userRepository.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeStudentNotFound, "студент не найден")
		}
		return nil, err
	}
	if !student.IsStudent() {
		return nil, apperrors.NewNotFoundError(apperrors.CodeStudentNotFound, "студент не найден")
	}
	return student, nil
}

// ConfirmGraduation переводит студента в статус graduate. Смена статуса,
// запись журнала и уведомление выполняются в одной транзакции.
func (s *GraduationService) ConfirmGraduation(ctx context.Context, actorID, studentID uint64, ip, userAgent *string) (*entities.User, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if student.IsGraduate() {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, apperrors.CodeAlreadyGraduated,
			"студент уже выпущен", nil)
	}
	if validationErrs := ValidateGraduationData(student); len(validationErrs) > 0 {
		return nil, apperrors.NewValidationError(validationErrs)
	}
	if !IsEligibleForGraduation(student, s.nowFn()) {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, apperrors.CodeNotEligible,
			"студент ещё не может быть выпущен: дата выпуска не наступила", nil)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepository.UpdateStudentStatus(ctx, tx, studentID, constants.StudentStatusGraduate); err != nil {
			return err
		}

		details := fmt.Sprintf("выпуск студента %s %s (%d год)", student.LastName, student.FirstName, *student.GraduationYear)
		logEntry := &entities.ActivityLog{
			UserID:     actorID,
			Action:     constants.ActionStudentGraduated,
			TargetID:   &studentID,
			TargetType: strPtr("user"),
			Details:    &details,
			IPAddress:  ip,
			UserAgent:  userAgent,
		}
		if _, err := s.activityLogRepository.Create(ctx, tx, logEntry); err != nil {
			return err
		}

		notification := &entities.Notification{
			UserID:  studentID,
			Title:   "Поздравляем с выпуском!",
			Message: fmt.Sprintf("Вы успешно завершили обучение в %d году. Поздравляем!", *student.GraduationYear),
			Type:    constants.NotificationSuccess,
		}
		_, err := s.notificationRepository.Create(ctx, tx, notification)
		return err
	})
	if err != nil {
		return nil, err
	}

	graduate := constants.StudentStatusGraduate
	student.StudentStatus = &graduate

	s.bus.Publish(ctx, events.StudentGraduatedEvent{Student: student})
	s.logger.Info("студент выпущен",
		zap.Uint64("studentId", studentID),
		zap.Uint64("actorId", actorID))

	return student, nil
}

// RevertGraduation возвращает выпускника в статус current.
func (s *GraduationService) RevertGraduation(ctx context.Context, actorID, studentID uint64, ip, userAgent *string) (*entities.User, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if !student.IsGraduate() {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, apperrors.CodeNotGraduated,
			"студент не является выпускником", nil)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepository.UpdateStudentStatus(ctx, tx, studentID, constants.StudentStatusCurrent); err != nil {
			return err
		}

		details := fmt.Sprintf("откат выпуска студента %s %s", student.LastName, student.FirstName)
		logEntry := &entities.ActivityLog{
			UserID:     actorID,
			Action:     constants.ActionStudentGraduationReverted,
			TargetID:   &studentID,
			TargetType: strPtr("user"),
			Details:    &details,
			IPAddress:  ip,
			UserAgent:  userAgent,
		}
		if _, err := s.activityLogRepository.Create(ctx, tx, logEntry); err != nil {
			return err
		}

		notification := &entities.Notification{
			UserID:  studentID,
			Title:   "Статус обучения изменён",
			Message: "Ваш статус выпускника был отменён администратором.",
			Type:    constants.NotificationWarning,
		}
		_, err := s.notificationRepository.Create(ctx, tx, notification)
		return err
	})
	if err != nil {
		return nil, err
	}

	current := constants.StudentStatusCurrent
	student.StudentStatus = &current

	s.bus.Publish(ctx, events.GraduationRevertedEvent{Student: student})
	s.logger.Info("выпуск отменён",
		zap.Uint64("studentId", studentID),
		zap.Uint64("actorId", actorID))

	return student, nil
}

// UpdateGraduationInfo меняет академические поля студента. После
// подтверждения выпуска данные заморожены. Объединённая запись
// валидируется до записи: либо сохраняется целиком, либо ничего.
func (s *GraduationService) UpdateGraduationInfo(ctx context.Context, actorID, studentID uint64, payload dto.UpdateGraduationInfoDTO, ip, userAgent *string) (*entities.User, error) {
	student, err := s.findStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	if student.IsGraduate() {
		return nil, apperrors.NewHttpError(http.StatusBadRequest, apperrors.CodeStudentGraduated,
			"академические данные выпускника изменить нельзя", nil)
	}

	student.AdmissionYear = &payload.AdmissionYear
	student.GraduationYear = &payload.GraduationYear
	student.DegreeLevel = &payload.DegreeLevel
	if payload.StudentType != nil {
		student.StudentType = payload.StudentType
	}
	if payload.Faculty != nil {
		student.Faculty = payload.Faculty
	}
	if payload.Direction != nil {
		student.Direction = payload.Direction
	}

	if validationErrs := ValidateGraduationData(student); len(validationErrs) > 0 {
		return nil, apperrors.NewValidationError(validationErrs)
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepository.UpdateGraduationInfo(ctx, tx, studentID, student); err != nil {
			return err
		}

		details := fmt.Sprintf("обновлены академические данные студента %s %s", student.LastName, student.FirstName)
		logEntry := &entities.ActivityLog{
			UserID:     actorID,
			Action:     constants.ActionGraduationInfoUpdated,
			TargetID:   &studentID,
			TargetType: strPtr("user"),
			Details:    &details,
			IPAddress:  ip,
			UserAgent:  userAgent,
		}
		_, err := s.activityLogRepository.Create(ctx, tx, logEntry)
		return err
	})
	if err != nil {
		return nil, err
	}

	return student, nil
}

// GraduatingStudents — текущие студенты, чей год выпуска не превышает
// следующий учебный год.
func (s *GraduationService) GraduatingStudents(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	maxYear := AcademicYear(s.nowFn()) + 1
	return s.userRepository.GetGraduatingStudents(ctx, filter, maxYear)
}

// GraduationStatistics собирает агрегаты по статусам, уровням образования
// и факультетам. Считается по запросу.
func (s *GraduationService) GraduationStatistics(ctx context.Context) (*dto.GraduationStatisticsDTO, error) {
	totalCurrent, err := s.userRepository.CountByStatus(ctx, constants.StudentStatusCurrent)
	if err != nil {
		return nil, err
	}
	totalGraduates, err := s.userRepository.CountByStatus(ctx, constants.StudentStatusGraduate)
	if err != nil {
		return nil, err
	}

	byDegree, err := s.userRepository.CountByDegreeAndStatus(ctx)
	if err != nil {
		return nil, err
	}
	degreeStats := make(map[string]dto.DegreeLevelStatsDTO, len(byDegree))
	for degree, counts := range byDegree {
		degreeStats[degree] = dto.DegreeLevelStatsDTO{
			Current:   counts[constants.StudentStatusCurrent],
			Graduates: counts[constants.StudentStatusGraduate],
		}
	}

	byFaculty, err := s.userRepository.CountByFacultyAndStatus(ctx)
	if err != nil {
		return nil, err
	}
	facultyIndex := make(map[string]int)
	facultyStats := make([]dto.FacultyStatsDTO, 0)
	for _, row := range byFaculty {
		idx, ok := facultyIndex[row.Faculty]
		if !ok {
			idx = len(facultyStats)
			facultyIndex[row.Faculty] = idx
			facultyStats = append(facultyStats, dto.FacultyStatsDTO{Faculty: row.Faculty})
		}
		switch row.Status {
		case constants.StudentStatusCurrent:
			facultyStats[idx].Current = row.Count
		case constants.StudentStatusGraduate:
			facultyStats[idx].Graduates = row.Count
		}
	}

	return &dto.GraduationStatisticsDTO{
		TotalCurrent:   totalCurrent,
		TotalGraduates: totalGraduates,
		ByDegreeLevel:  degreeStats,
		ByFaculty:      facultyStats,
		AcademicYear:   AcademicYear(s.nowFn()),
	}, nil
}

func strPtr(s string) *string { return &s }
