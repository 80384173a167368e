package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/events"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/eventbus"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// UserService — административное управление пользователями
// и работа с собственным профилем.
type UserService struct {
	userRepository        repositories.UserRepositoryInterface
	activityLogRepository repositories.ActivityLogRepositoryInterface
	txManager             repositories.TxManagerInterface
	bus                   *eventbus.Bus
	logger                *zap.Logger
}

func NewUserService(
	userRepository repositories.UserRepositoryInterface,
	activityLogRepository repositories.ActivityLogRepositoryInterface,
	txManager repositories.TxManagerInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) *UserService {
	return &UserService{
		userRepository:        userRepository,
		activityLogRepository: activityLogRepository,
		txManager:             txManager,
		bus:                   bus,
		logger:                logger,
	}
}

func (s *UserService) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepository.GetUsers(ctx, filter)
}

// SearchStudents — поиск по студентам, доступен любому
// аутентифицированному пользователю.
func (s *UserService) SearchStudents(ctx context.Context, query string, filter types.Filter) ([]entities.User, uint64, error) {
	return s.userRepository.SearchStudents(ctx, query, filter)
}

func (s *UserService) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	user, err := s.userRepository.FindUser(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "пользователь не найден")
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) checkUniqueness(ctx context.Context, email *string, phone, studentID *string, excludeID uint64) error {
	if email != nil {
		if existing, err := s.userRepository.FindUserByEmail(ctx, strings.ToLower(*email)); err == nil && existing.ID != excludeID {
			return apperrors.NewConflictError(apperrors.CodeEmailExists, "пользователь с такой почтой уже существует")
		}
	}
	if phone != nil {
		if existing, err := s.userRepository.FindUserByPhone(ctx, *phone); err == nil && existing.ID != excludeID {
			return apperrors.NewConflictError(apperrors.CodePhoneExists, "пользователь с таким телефоном уже существует")
		}
	}
	if studentID != nil {
		if existing, err := s.userRepository.FindUserByStudentID(ctx, *studentID); err == nil && existing.ID != excludeID {
			return apperrors.NewConflictError(apperrors.CodeStudentIDExists, "студент с таким номером билета уже существует")
		}
	}
	return nil
}

// CreateUser — создание учётной записи администратором.
// Созданный так аккаунт сразу считается верифицированным.
func (s *UserService) CreateUser(ctx context.Context, actorID uint64, payload dto.CreateUserDTO, ip, userAgent *string) (*entities.User, error) {
	if err := s.checkUniqueness(ctx, &payload.Email, payload.Phone, payload.StudentID, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		FirstName:      payload.FirstName,
		LastName:       payload.LastName,
		MiddleName:     payload.MiddleName,
		Email:          strings.ToLower(payload.Email),
		Phone:          payload.Phone,
		StudentID:      payload.StudentID,
		Password:       hashedPassword,
		Role:           payload.Role,
		Faculty:        payload.Faculty,
		Direction:      payload.Direction,
		AdmissionYear:  payload.AdmissionYear,
		GraduationYear: payload.GraduationYear,
		DegreeLevel:    payload.DegreeLevel,
		StudentType:    payload.StudentType,
		FinancingType:  payload.FinancingType,
		IsVerified:     true,
	}
	if user.Role == constants.RoleStudent {
		status := constants.StudentStatusCurrent
		user.StudentStatus = &status
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.userRepository.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = id

		details := fmt.Sprintf("создан пользователь %s (%s)", user.Email, user.Role)
		logEntry := &entities.ActivityLog{
			UserID:     actorID,
			Action:     constants.ActionUserCreated,
			TargetID:   &id,
			TargetType: strPtr("user"),
			Details:    &details,
			IPAddress:  ip,
			UserAgent:  userAgent,
		}
		_, err = s.activityLogRepository.Create(ctx, tx, logEntry)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateUser — частичное обновление: заполненные null-поля
// накладываются на текущую запись.
func (s *UserService) UpdateUser(ctx context.Context, actorID, userID uint64, payload dto.UpdateUserDTO, ip, userAgent *string) (*entities.User, error) {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var email, phone, studentID *string
	if payload.Email.Valid {
		email = &payload.Email.String
	}
	if payload.Phone.Valid {
		phone = &payload.Phone.String
	}
	if payload.StudentID.Valid {
		studentID = &payload.StudentID.String
	}
	if err := s.checkUniqueness(ctx, email, phone, studentID, userID); err != nil {
		return nil, err
	}

	if payload.FirstName.Valid {
		user.FirstName = payload.FirstName.String
	}
	if payload.LastName.Valid {
		user.LastName = payload.LastName.String
	}
	if payload.MiddleName.Valid {
		user.MiddleName = &payload.MiddleName.String
	}
	if payload.Email.Valid {
		user.Email = strings.ToLower(payload.Email.String)
	}
	if payload.Phone.Valid {
		user.Phone = &payload.Phone.String
	}
	if payload.StudentID.Valid {
		user.StudentID = &payload.StudentID.String
	}
	if payload.Role.Valid {
		user.Role = payload.Role.String
	}
	if payload.Faculty.Valid {
		user.Faculty = &payload.Faculty.String
	}
	if payload.Direction.Valid {
		user.Direction = &payload.Direction.String
	}
	if payload.FinancingType.Valid {
		user.FinancingType = &payload.FinancingType.String
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.userRepository.UpdateUser(ctx, tx, userID, user); err != nil {
			return err
		}

		details := fmt.Sprintf("обновлён пользователь %s", user.Email)
		logEntry := &entities.ActivityLog{
			UserID:     actorID,
			Action:     constants.ActionUserUpdated,
			TargetID:   &userID,
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

	return user, nil
}

// DeleteUser удаляет пользователя. Удалить самого себя нельзя.
func (s *UserService) DeleteUser(ctx context.Context, actorID, userID uint64, ip, userAgent *string) error {
	if actorID == userID {
		return apperrors.NewConflictError(apperrors.CodeCannotDeleteSelf, "нельзя удалить собственную учётную запись")
	}

	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.userRepository.DeleteUser(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "пользователь не найден")
		}
		return err
	}

	details := fmt.Sprintf("удалён пользователь %s", user.Email)
	logEntry := &entities.ActivityLog{
		UserID:     actorID,
		Action:     constants.ActionUserDeleted,
		TargetID:   &userID,
		TargetType: strPtr("user"),
		Details:    &details,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
	if _, err := s.activityLogRepository.Create(ctx, nil, logEntry); err != nil {
		s.logger.Error("не удалось записать удаление в журнал", zap.Error(err))
	}

	return nil
}

// VerifyUser подтверждает учётную запись.
func (s *UserService) VerifyUser(ctx context.Context, actorID, userID uint64, ip, userAgent *string) (*entities.User, error) {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsVerified {
		return nil, apperrors.NewConflictError(apperrors.CodeAlreadyVerified, "пользователь уже верифицирован")
	}

	if err := s.userRepository.SetVerified(ctx, userID); err != nil {
		return nil, err
	}
	user.IsVerified = true

	details := fmt.Sprintf("верифицирован пользователь %s", user.Email)
	logEntry := &entities.ActivityLog{
		UserID:     actorID,
		Action:     constants.ActionUserVerified,
		TargetID:   &userID,
		TargetType: strPtr("user"),
		Details:    &details,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
	if _, err := s.activityLogRepository.Create(ctx, nil, logEntry); err != nil {
		s.logger.Error("не удалось записать верификацию в журнал", zap.Error(err))
	}

	s.bus.Publish(ctx, events.UserVerifiedEvent{User: user})

	return user, nil
}

// SetBlocked блокирует или разблокирует пользователя.
func (s *UserService) SetBlocked(ctx context.Context, actorID, userID uint64, blocked bool, reason *string, ip, userAgent *string) (*entities.User, error) {
	if actorID == userID && blocked {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, "нельзя заблокировать собственную учётную запись")
	}

	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := s.userRepository.SetBlocked(ctx, userID, blocked, reason); err != nil {
		return nil, err
	}
	user.IsBlocked = blocked
	user.BlockReason = reason

	action := constants.ActionUserUnblocked
	details := fmt.Sprintf("разблокирован пользователь %s", user.Email)
	if blocked {
		action = constants.ActionUserBlocked
		details = fmt.Sprintf("заблокирован пользователь %s", user.Email)
	}
	logEntry := &entities.ActivityLog{
		UserID:     actorID,
		Action:     action,
		TargetID:   &userID,
		TargetType: strPtr("user"),
		Details:    &details,
		IPAddress:  ip,
		UserAgent:  userAgent,
	}
	if _, err := s.activityLogRepository.Create(ctx, nil, logEntry); err != nil {
		s.logger.Error("не удалось записать блокировку в журнал", zap.Error(err))
	}

	return user, nil
}

// UpdateProfile — самостоятельное редактирование неакадемических полей.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint64, payload dto.UpdateProfileDTO) (*entities.User, error) {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if payload.Phone.Valid {
		phone := payload.Phone.String
		if err := s.checkUniqueness(ctx, nil, &phone, nil, userID); err != nil {
			return nil, err
		}
	}

	if payload.FirstName.Valid {
		user.FirstName = payload.FirstName.String
	}
	if payload.LastName.Valid {
		user.LastName = payload.LastName.String
	}
	if payload.MiddleName.Valid {
		user.MiddleName = &payload.MiddleName.String
	}
	if payload.Phone.Valid {
		user.Phone = &payload.Phone.String
	}
	if payload.AvatarURL.Valid {
		user.AvatarURL = &payload.AvatarURL.String
	}
	if payload.CvURL.Valid {
		user.CvURL = &payload.CvURL.String
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.userRepository.UpdateUser(ctx, tx, userID, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword меняет пароль после проверки старого.
func (s *UserService) ChangePassword(ctx context.Context, userID uint64, payload dto.ChangePasswordDTO) error {
	user, err := s.FindUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := utils.ComparePasswords(user.Password, payload.OldPassword); err != nil {
		return apperrors.NewBadRequestError("неверный текущий пароль")
	}

	hashedPassword, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	return s.userRepository.UpdatePassword(ctx, userID, hashedPassword)
}
