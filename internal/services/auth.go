package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/config"
	"alumni-system/pkg/constants"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/mailer"
	"alumni-system/pkg/service"
	"alumni-system/pkg/sms"
	"alumni-system/pkg/utils"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AuthServiceInterface interface {
	Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error)
	Login(ctx context.Context, payload dto.LoginDTO, ip, userAgent *string) (*dto.TokenPairDTO, *entities.User, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error)
	Logout(ctx context.Context, refreshToken string) error
	RequestPasswordReset(ctx context.Context, payload dto.ResetPasswordRequestDTO) error
	VerifyResetCode(ctx context.Context, payload dto.VerifyCodeDTO) (string, error)
	ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error
	VerifyEmail(ctx context.Context, payload dto.VerifyEmailDTO) error
	GetUserByID(ctx context.Context, userID uint64) (*entities.User, error)
}

// AuthService — регистрация, вход, обновление и отзыв токенов,
// восстановление пароля. Отозванные refresh-токены и счётчики
// попыток живут в Redis с TTL.
type AuthService struct {
	userRepo    repositories.UserRepositoryInterface
	logRepo     repositories.ActivityLogRepositoryInterface
	cacheRepo   repositories.CacheRepositoryInterface
	txManager   repositories.TxManagerInterface
	jwtService  service.JWTService
	mailSender  mailer.MailerInterface
	smsSender   sms.SenderInterface
	logger      *zap.Logger
	cfg         *config.AuthConfig
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	logRepo repositories.ActivityLogRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	txManager repositories.TxManagerInterface,
	jwtService service.JWTService,
	mailSender mailer.MailerInterface,
	smsSender sms.SenderInterface,
	logger *zap.Logger,
	cfg *config.AuthConfig,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		logRepo:    logRepo,
		cacheRepo:  cacheRepo,
		txManager:  txManager,
		jwtService: jwtService,
		mailSender: mailSender,
		smsSender:  smsSender,
		logger:     logger,
		cfg:        cfg,
	}
}

func revokedTokenKey(jti string) string {
	return fmt.Sprintf("revoked_refresh:%s", jti)
}

// Register создаёт самостоятельную учётную запись студента.
// Аккаунт требует последующей верификации администратором.
func (s *AuthService) Register(ctx context.Context, payload dto.RegisterDTO) (*entities.User, error) {
	if err := s.checkUniqueness(ctx, payload.Email, payload.Phone, payload.StudentID, 0); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(payload.Password)
	if err != nil {
		return nil, err
	}

	verificationToken := uuid.New().String()
	status := constants.StudentStatusCurrent
	user := &entities.User{
		FirstName:              payload.FirstName,
		LastName:               payload.LastName,
		MiddleName:             payload.MiddleName,
		Email:                  strings.ToLower(payload.Email),
		Phone:                  payload.Phone,
		StudentID:              payload.StudentID,
		Password:               hashedPassword,
		Role:                   constants.RoleStudent,
		StudentStatus:          &status,
		EmailVerificationToken: &verificationToken,
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		id, err := s.userRepo.CreateUser(ctx, tx, user)
		if err != nil {
			return err
		}
		user.ID = id

		details := fmt.Sprintf("самостоятельная регистрация: %s", user.Email)
		logEntry := &entities.ActivityLog{
			UserID:   id,
			Action:   constants.ActionUserCreated,
			TargetID: &id,
			Details:  &details,
		}
		_, err = s.logRepo.Create(ctx, tx, logEntry)
		return err
	})
	if err != nil {
		return nil, err
	}

	go func() {
		body := fmt.Sprintf("Здравствуйте, %s!\n\nДля подтверждения адреса электронной почты используйте токен: %s", user.FirstName, verificationToken)
		if err := s.mailSender.Send(user.Email, "Подтверждение регистрации", body); err != nil {
			s.logger.Error("не удалось отправить письмо с подтверждением", zap.Error(err))
		}
	}()

	return user, nil
}

// Login проверяет учётные данные с защитой от перебора и выдаёт пару токенов.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO, ip, userAgent *string) (*dto.TokenPairDTO, *entities.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(payload.Email))
	if err != nil {
		return nil, nil, apperrors.ErrInvalidCredentials
	}

	if err := s.checkLockout(ctx, user.ID); err != nil {
		return nil, nil, err
	}
	if user.IsBlocked {
		return nil, nil, apperrors.ErrAccountBlocked
	}

	if err := utils.ComparePasswords(user.Password, payload.Password); err != nil {
		s.handleFailedLoginAttempt(ctx, user.ID)
		return nil, nil, apperrors.ErrInvalidCredentials
	}
	s.resetLoginAttempts(ctx, user.ID)

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, nil, err
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("не удалось обновить дату последнего входа", zap.Error(err))
	}

	logEntry := &entities.ActivityLog{
		UserID:    user.ID,
		Action:    constants.ActionUserLogin,
		IPAddress: ip,
		UserAgent: userAgent,
	}
	if _, err := s.logRepo.Create(ctx, nil, logEntry); err != nil {
		s.logger.Warn("не удалось записать вход в журнал", zap.Error(err))
	}

	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: refreshToken}, user, nil
}

// Refresh обменивает действующий refresh-токен на новую пару.
// Старый refresh-токен отзывается: повторное использование невозможно.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPairDTO, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if !claims.IsRefreshToken {
		return nil, apperrors.ErrTokenIsNotRefresh
	}

	revoked, err := s.cacheRepo.Exists(ctx, revokedTokenKey(claims.ID))
	if err != nil {
		s.logger.Error("не удалось проверить отзыв токена", zap.Error(err))
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, apperrors.CodeDatabaseError, "хранилище токенов недоступно", err)
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}

	user, err := s.userRepo.FindUser(ctx, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if user.IsBlocked {
		return nil, apperrors.ErrAccountBlocked
	}

	if err := s.revokeRefreshToken(ctx, claims); err != nil {
		return nil, err
	}

	accessToken, newRefreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &dto.TokenPairDTO{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
}

// Logout отзывает refresh-токен до конца его естественного срока жизни.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		// Просроченный токен и так недействителен.
		if errors.Is(err, apperrors.ErrTokenExpired) {
			return nil
		}
		return err
	}
	if !claims.IsRefreshToken {
		return apperrors.ErrTokenIsNotRefresh
	}
	return s.revokeRefreshToken(ctx, claims)
}

func (s *AuthService) revokeRefreshToken(ctx context.Context, claims *service.JwtCustomClaim) error {
	ttl := s.jwtService.GetRefreshTokenTTL()
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}
	return s.cacheRepo.Set(ctx, revokedTokenKey(claims.ID), "revoked", ttl)
}

// RequestPasswordReset высылает токен на почту либо код по SMS.
// Не сообщает, существует ли пользователь.
func (s *AuthService) RequestPasswordReset(ctx context.Context, payload dto.ResetPasswordRequestDTO) error {
	logger := s.logger.With(zap.String("login", payload.Login))

	lockoutKey := fmt.Sprintf("reset_attempts:%s", payload.Login)
	attemptsStr, _ := s.cacheRepo.Get(ctx, lockoutKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxResetAttempts {
		logger.Warn("слишком много попыток сброса пароля")
		return apperrors.ErrAccountLocked
	}

	spamProtectionKey := fmt.Sprintf("reset_spam_protect:%s", payload.Login)
	if _, err := s.cacheRepo.Get(ctx, spamProtectionKey); err == nil {
		return apperrors.NewHttpError(http.StatusTooManyRequests, apperrors.CodeTooManyRequests,
			"запрашивать код можно не чаще одного раза в минуту", nil)
	}

	isPhone := strings.HasPrefix(payload.Login, "+992")

	var user *entities.User
	var err error
	if isPhone {
		user, err = s.userRepo.FindUserByPhone(ctx, payload.Login)
	} else {
		user, err = s.userRepo.FindUserByEmail(ctx, strings.ToLower(payload.Login))
	}
	if err != nil || user == nil {
		// Тихо выходим, фронту ничего не сообщаем.
		logger.Warn("попытка сброса пароля для несуществующего пользователя")
		return nil
	}

	s.cacheRepo.Set(ctx, spamProtectionKey, "active", time.Minute)

	if isPhone {
		resetCode := fmt.Sprintf("%04d", rand.Intn(10000))
		cacheKey := fmt.Sprintf("reset_phone_code:%s", payload.Login)
		if err := s.cacheRepo.Set(ctx, cacheKey, resetCode, s.cfg.VerificationCodeTTL); err != nil {
			return err
		}
		go func() {
			text := fmt.Sprintf("Код восстановления пароля: %s", resetCode)
			if err := s.smsSender.Send(context.Background(), payload.Login, text); err != nil {
				logger.Error("не удалось отправить SMS с кодом", zap.Error(err))
			}
		}()
		return nil
	}

	resetToken := uuid.New().String()
	cacheKey := fmt.Sprintf("reset_email:%s", resetToken)
	if err := s.cacheRepo.Set(ctx, cacheKey, user.ID, s.cfg.ResetTokenTTL); err != nil {
		return err
	}
	go func() {
		body := fmt.Sprintf("Здравствуйте, %s!\n\nТокен восстановления пароля: %s\nТокен действует %d минут.",
			user.FirstName, resetToken, int(s.cfg.ResetTokenTTL.Minutes()))
		if err := s.mailSender.Send(user.Email, "Восстановление пароля", body); err != nil {
			logger.Error("не удалось отправить письмо восстановления", zap.Error(err))
		}
	}()
	return nil
}

// VerifyResetCode проверяет SMS-код и выдаёт одноразовый токен-пропуск.
func (s *AuthService) VerifyResetCode(ctx context.Context, payload dto.VerifyCodeDTO) (string, error) {
	logger := s.logger.With(zap.String("login", payload.Login))

	attemptsKey := fmt.Sprintf("reset_attempts:%s", payload.Login)
	attemptsStr, _ := s.cacheRepo.Get(ctx, attemptsKey)
	if attempts, _ := strconv.Atoi(attemptsStr); attempts >= s.cfg.MaxResetAttempts {
		logger.Warn("превышено количество попыток ввода кода")
		return "", apperrors.ErrAccountLocked
	}

	cacheKeyCode := fmt.Sprintf("reset_phone_code:%s", payload.Login)
	storedCode, err := s.cacheRepo.Get(ctx, cacheKeyCode)
	if err != nil || storedCode != payload.Code {
		s.cacheRepo.Incr(ctx, attemptsKey)
		s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
		return "", apperrors.NewBadRequestError("неверный или истёкший код верификации")
	}

	user, err := s.userRepo.FindUserByPhone(ctx, payload.Login)
	if err != nil {
		return "", apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "пользователь не найден")
	}

	verificationToken := uuid.New().String()
	cacheKeyVerify := fmt.Sprintf("verify_token_phone:%s", verificationToken)
	if err := s.cacheRepo.Set(ctx, cacheKeyVerify, user.ID, s.cfg.VerificationCodeTTL); err != nil {
		return "", err
	}

	s.cacheRepo.Del(ctx, cacheKeyCode, attemptsKey)
	return verificationToken, nil
}

// ResetPassword подменяет пароль по токену из письма или токену-пропуску.
func (s *AuthService) ResetPassword(ctx context.Context, payload dto.ResetPasswordDTO) error {
	var userIDStr string

	cacheKeyEmail := fmt.Sprintf("reset_email:%s", payload.Token)
	userIDStr, err := s.cacheRepo.Get(ctx, cacheKeyEmail)
	if err == nil {
		s.cacheRepo.Del(ctx, cacheKeyEmail)
	} else {
		cacheKeyPhone := fmt.Sprintf("verify_token_phone:%s", payload.Token)
		userIDStr, err = s.cacheRepo.Get(ctx, cacheKeyPhone)
		if err != nil {
			return apperrors.NewBadRequestError("неверный или истёкший токен сброса пароля")
		}
		s.cacheRepo.Del(ctx, cacheKeyPhone)
	}

	userID, err := strconv.ParseUint(userIDStr, 10, 64)
	if err != nil || userID == 0 {
		return apperrors.NewBadRequestError("неверный или истёкший токен сброса пароля")
	}

	hashedPassword, err := utils.HashPassword(payload.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashedPassword); err != nil {
		return err
	}

	s.logger.Info("пароль сброшен", zap.Uint64("userId", userID))
	return nil
}

// VerifyEmail подтверждает адрес по токену из письма регистрации.
func (s *AuthService) VerifyEmail(ctx context.Context, payload dto.VerifyEmailDTO) error {
	user, err := s.userRepo.FindUserByEmailVerificationToken(ctx, payload.Token)
	if err != nil {
		return apperrors.NewBadRequestError("неверный токен подтверждения почты")
	}
	if user.EmailVerified {
		return apperrors.NewConflictError(apperrors.CodeAlreadyVerified, "адрес уже подтверждён")
	}
	return s.userRepo.SetEmailVerified(ctx, user.ID)
}

func (s *AuthService) GetUserByID(ctx context.Context, userID uint64) (*entities.User, error) {
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeUserNotFound, "пользователь не найден")
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) checkUniqueness(ctx context.Context, email string, phone, studentID *string, excludeID uint64) error {
	if existing, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(email)); err == nil && existing.ID != excludeID {
		return apperrors.NewConflictError(apperrors.CodeEmailExists, "пользователь с такой почтой уже существует")
	}
	if phone != nil {
		if existing, err := s.userRepo.FindUserByPhone(ctx, *phone); err == nil && existing.ID != excludeID {
			return apperrors.NewConflictError(apperrors.CodePhoneExists, "пользователь с таким телефоном уже существует")
		}
	}
	if studentID != nil {
		if existing, err := s.userRepo.FindUserByStudentID(ctx, *studentID); err == nil && existing.ID != excludeID {
			return apperrors.NewConflictError(apperrors.CodeStudentIDExists, "студент с таким номером билета уже существует")
		}
	}
	return nil
}

func (s *AuthService) checkLockout(ctx context.Context, userID uint64) error {
	lockoutKey := fmt.Sprintf("lockout:%d", userID)
	if _, err := s.cacheRepo.Get(ctx, lockoutKey); err == nil {
		return apperrors.ErrAccountLocked
	}
	return nil
}

func (s *AuthService) handleFailedLoginAttempt(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	attempts, _ := s.cacheRepo.Incr(ctx, attemptsKey)
	if attempts >= int64(s.cfg.MaxLoginAttempts) {
		lockoutKey := fmt.Sprintf("lockout:%d", userID)
		s.cacheRepo.Set(ctx, lockoutKey, "locked", s.cfg.LockoutDuration)
		s.cacheRepo.Del(ctx, attemptsKey)
	} else {
		s.cacheRepo.Expire(ctx, attemptsKey, s.cfg.LockoutDuration)
	}
}

func (s *AuthService) resetLoginAttempts(ctx context.Context, userID uint64) {
	attemptsKey := fmt.Sprintf("login_attempts:%d", userID)
	lockoutKey := fmt.Sprintf("lockout:%d", userID)
	s.cacheRepo.Del(ctx, attemptsKey, lockoutKey)
}
