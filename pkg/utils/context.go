package utils

import (
	"context"

	"alumni-system/pkg/contextkeys"
	apperrors "alumni-system/pkg/errors"
)

func GetUserIDFromCtx(ctx context.Context) (uint64, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uint64)
	if !ok {
		return 0, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}

// GetClientIPFromCtx и GetUserAgentFromCtx используются при записи
// журнала действий; отсутствие значения не считается ошибкой.
func GetClientIPFromCtx(ctx context.Context) string {
	ip, _ := ctx.Value(contextkeys.ClientIPKey).(string)
	return ip
}

func GetUserAgentFromCtx(ctx context.Context) string {
	ua, _ := ctx.Value(contextkeys.UserAgentKey).(string)
	return ua
}
