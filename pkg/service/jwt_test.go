package service

import (
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newTestJWTService() JWTService {
	return NewJWTService(testSecret, 15*time.Minute, 24*time.Hour)
}

func TestGenerateAndValidateTokens(t *testing.T) {
	svc := newTestJWTService()

	access, refresh, err := svc.GenerateTokens(42, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	accessClaims, err := svc.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, uint64(42), accessClaims.UserID)
	assert.Equal(t, "admin", accessClaims.Role)
	assert.False(t, accessClaims.IsRefreshToken)
	assert.NotEmpty(t, accessClaims.ID)

	refreshClaims, err := svc.ValidateToken(refresh)
	require.NoError(t, err)
	assert.True(t, refreshClaims.IsRefreshToken)
	// JTI уникален для каждого токена: отзывается конкретный refresh.
	assert.NotEqual(t, accessClaims.ID, refreshClaims.ID)
}

func TestValidateToken_WrongSecret(t *testing.T) {
	_, refresh, err := NewJWTService("other-secret", time.Minute, time.Hour).GenerateTokens(1, "student")
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(refresh)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewJWTService(testSecret, -time.Minute, -time.Minute)

	access, _, err := svc.GenerateTokens(1, "student")
	require.NoError(t, err)

	_, err = svc.ValidateToken(access)
	assert.Error(t, err)
}

func TestValidateToken_WrongSigningMethod(t *testing.T) {
	// Токен без подписи отклоняется независимо от содержимого.
	token := jwt.NewWithClaims(jwt.SigningMethodNone, &JwtCustomClaim{UserID: 1})
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = newTestJWTService().ValidateToken(signed)
	assert.Error(t, err)
}

func TestValidateToken_Garbage(t *testing.T) {
	_, err := newTestJWTService().ValidateToken("not.a.token")
	assert.Error(t, err)
}
