package services

import (
	"context"
	"errors"
	"fmt"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// AssignmentService — связи «преподаватель – студент».
type AssignmentService struct {
	assignmentRepository  repositories.TeacherStudentRepositoryInterface
	userRepository        repositories.UserRepositoryInterface
	activityLogRepository repositories.ActivityLogRepositoryInterface
	txManager             repositories.TxManagerInterface
	logger                *zap.Logger
}

func NewAssignmentService(
	assignmentRepository repositories.TeacherStudentRepositoryInterface,
	userRepository repositories.UserRepositoryInterface,
	activityLogRepository repositories.ActivityLogRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) *AssignmentService {
	return &AssignmentService{
		assignmentRepository:  assignmentRepository,
		userRepository:        userRepository,
		activityLogRepository: activityLogRepository,
		txManager:             txManager,
		logger:                logger,
	}
}

func (s *AssignmentService) findTeacher(ctx context.Context, id uint64) (*entities.User, error) {
	teacher, err := s.userRepository.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "преподаватель не найден")
		}
		return nil, err
	}
	if teacher.Role != constants.RoleTeacher {
		return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "преподаватель не найден")
	}
	return teacher, nil
}

// AssignStudents закрепляет студентов за преподавателем пачкой. Ошибки по
// отдельным студентам собираются в результат, пачка не прерывается.
// Уже существующая связь считается пропущенной, не ошибкой.
func (s *AssignmentService) AssignStudents(ctx context.Context, actorID, teacherID uint64, payload dto.AssignStudentsDTO, ip, userAgent *string) (*dto.AssignResultDTO, error) {
	if _, err := s.findTeacher(ctx, teacherID); err != nil {
		return nil, err
	}

	result := &dto.AssignResultDTO{Errors: []apperrors.FieldError{}}

	for _, studentID := range payload.StudentIDs {
		field := fmt.Sprintf("studentIds.%d", studentID)

		student, err := s.userRepository.FindUser(ctx, studentID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				result.Errors = append(result.Errors, apperrors.FieldError{
					Field:   field,
					Message: "студент не найден",
				})
				continue
			}
			return nil, err
		}
		if !student.IsStudent() {
			result.Errors = append(result.Errors, apperrors.FieldError{
				Field:   field,
				Message: "пользователь не является студентом",
			})
			continue
		}

		exists, err := s.assignmentRepository.Exists(ctx, teacherID, studentID)
		if err != nil {
			return nil, err
		}
		if exists {
			result.Skipped++
			continue
		}

		err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
			assignment := &entities.TeacherStudent{
				TeacherID:  teacherID,
				StudentID:  studentID,
				AssignedBy: actorID,
			}
			if _, err := s.assignmentRepository.Create(ctx, tx, assignment); err != nil {
				return err
			}

			details := fmt.Sprintf("студент %d закреплён за преподавателем %d", studentID, teacherID)
			logEntry := &entities.ActivityLog{
				UserID:     actorID,
				Action:     constants.ActionStudentAssigned,
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
		result.Assigned++
	}

	s.logger.Info("закрепление студентов выполнено",
		zap.Uint64("teacherId", teacherID),
		zap.Int("assigned", result.Assigned),
		zap.Int("skipped", result.Skipped),
		zap.Int("errors", len(result.Errors)))

	return result, nil
}

// UnassignStudent снимает закрепление конкретной пары.
func (s *AssignmentService) UnassignStudent(ctx context.Context, actorID, teacherID, studentID uint64, ip, userAgent *string) error {
	if _, err := s.findTeacher(ctx, teacherID); err != nil {
		return err
	}

	if err := s.assignmentRepository.Delete(ctx, teacherID, studentID); err != nil {
		return err
	}

	details := fmt.Sprintf("студент %d откреплён от преподавателя %d", studentID, teacherID)
	logEntry := &entities.ActivityLog{
		UserID:     actorID,
		Action:     constants.ActionStudentUnassigned,
		TargetID:   &studentID,
		TargetType: strPtr("user"),
		Details:    &details,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
	if _, err := s.activityLogRepository.Create(ctx, nil, logEntry); err != nil {
		s.logger.Error("не удалось записать журнал открепления", zap.Error(err))
	}

	return nil
}

// ListStudents возвращает закреплённых за преподавателем студентов.
func (s *AssignmentService) ListStudents(ctx context.Context, teacherID uint64, filter types.Filter) ([]entities.AssignedStudent, uint64, error) {
	if _, err := s.findTeacher(ctx, teacherID); err != nil {
		return nil, 0, err
	}
	return s.assignmentRepository.ListByTeacher(ctx, teacherID, filter)
}
