package services

import (
	"context"
	"strconv"
	"testing"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/pkg/config"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/service"
	"alumni-system/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCacheRepo — кеш в памяти без учёта TTL: для unit-тестов важно
// лишь наличие ключей и счётчики.
type fakeCacheRepo struct {
	values map[string]string
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (c *fakeCacheRepo) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	switch v := value.(type) {
	case string:
		c.values[key] = v
	default:
		c.values[key] = "1"
	}
	return nil
}

func (c *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	v, ok := c.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return v, nil
}

func (c *fakeCacheRepo) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(c.values, key)
	}
	return nil
}

func (c *fakeCacheRepo) Incr(ctx context.Context, key string) (int64, error) {
	n, _ := strconv.ParseInt(c.values[key], 10, 64)
	n++
	c.values[key] = strconv.FormatInt(n, 10)
	return n, nil
}

func (c *fakeCacheRepo) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func (c *fakeCacheRepo) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := c.values[key]
	return ok, nil
}

func (r *fakeUserRepo) UpdateLastLogin(ctx context.Context, id uint64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	return nil
}

func newAuthTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		MaxLoginAttempts:    5,
		MaxResetAttempts:    3,
		LockoutDuration:     15 * time.Minute,
		ResetTokenTTL:       time.Hour,
		VerificationCodeTTL: 10 * time.Minute,
	}
}

func newTestAuthService(t *testing.T, users ...*entities.User) (AuthServiceInterface, *fakeCacheRepo) {
	t.Helper()

	userRepo := &fakeUserRepo{users: make(map[uint64]*entities.User)}
	for _, u := range users {
		userRepo.users[u.ID] = u
	}
	cacheRepo := newFakeCacheRepo()
	jwtSvc := service.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	svc := NewAuthService(userRepo, &fakeActivityLogRepo{}, cacheRepo, &fakeTxManager{},
		jwtSvc, nil, nil, zap.NewNop(), newAuthTestConfig())
	return svc, cacheRepo
}

func newLoginUser(t *testing.T, id uint64, email, password string) *entities.User {
	t.Helper()

	user := newTestStudent(id)
	user.Email = email
	hashed, err := utils.HashPassword(password)
	require.NoError(t, err)
	user.Password = hashed
	user.IsVerified = true
	return user
}

func TestLogin(t *testing.T) {
	user := newLoginUser(t, 1, "a.rahmonov@student.university.tj", "password123")
	svc, _ := newTestAuthService(t, user)

	tokens, loggedIn, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "A.Rahmonov@Student.University.TJ",
		Password: "password123",
	}, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestLogin_WrongPassword(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	svc, _ := newTestAuthService(t, user)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "wrong",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	svc, _ := newTestAuthService(t)

	// Несуществующая почта неотличима от неверного пароля.
	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "nobody@university.tj",
		Password: "password123",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLogin_BlockedAccount(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	user.IsBlocked = true
	svc, _ := newTestAuthService(t, user)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "password123",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccountBlocked)
}

func TestLogin_LockoutAfterMaxAttempts(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	svc, cache := newTestAuthService(t, user)

	for i := 0; i < 5; i++ {
		_, _, err := svc.Login(context.Background(), dto.LoginDTO{
			Email:    "a@university.tj",
			Password: "wrong",
		}, nil, nil)
		assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	}
	assert.Contains(t, cache.values, "lockout:1")

	// Даже верный пароль не срабатывает до конца блокировки.
	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "password123",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrAccountLocked)
}

func TestLogin_AttemptsResetOnSuccess(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	svc, cache := newTestAuthService(t, user)

	_, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "wrong",
	}, nil, nil)
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.Contains(t, cache.values, "login_attempts:1")

	_, _, err = svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "password123",
	}, nil, nil)
	require.NoError(t, err)
	assert.NotContains(t, cache.values, "login_attempts:1")
}

func TestRefresh_RotatesToken(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	svc, _ := newTestAuthService(t, user)

	tokens, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "password123",
	}, nil, nil)
	require.NoError(t, err)

	newTokens, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, newTokens.RefreshToken)

	// Старый refresh-токен отозван и не пригоден повторно.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}

func TestRefresh_AccessTokenRejected(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	svc, _ := newTestAuthService(t, user)

	tokens, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "password123",
	}, nil, nil)
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), tokens.AccessToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenIsNotRefresh)
}

func TestLogout_RevokesRefreshToken(t *testing.T) {
	user := newLoginUser(t, 1, "a@university.tj", "password123")
	svc, _ := newTestAuthService(t, user)

	tokens, _, err := svc.Login(context.Background(), dto.LoginDTO{
		Email:    "a@university.tj",
		Password: "password123",
	}, nil, nil)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), tokens.RefreshToken))

	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.ErrorIs(t, err, apperrors.ErrTokenRevoked)
}
