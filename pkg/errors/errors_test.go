package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsHttpError_PassesThroughHttpError(t *testing.T) {
	original := NewConflictError(CodeAlreadyGraduated, "студент уже выпущен")

	result := AsHttpError(fmt.Errorf("обёртка: %w", original))
	assert.Same(t, original, result)
}

func TestAsHttpError_Sentinels(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{ErrNotFound, http.StatusNotFound, CodeNotFound},
		{ErrBadRequest, http.StatusBadRequest, CodeBadRequest},
		{ErrInvalidCredentials, http.StatusUnauthorized, CodeUnauthorized},
		{ErrInvalidToken, http.StatusUnauthorized, CodeUnauthorized},
		{ErrTokenExpired, http.StatusUnauthorized, CodeUnauthorized},
		{ErrTokenRevoked, http.StatusUnauthorized, CodeUnauthorized},
		{ErrTokenIsNotRefresh, http.StatusUnauthorized, CodeUnauthorized},
		{ErrAccountLocked, http.StatusTooManyRequests, CodeTooManyRequests},
		{ErrAccountBlocked, http.StatusForbidden, CodeForbidden},
		{ErrForbidden, http.StatusForbidden, CodeForbidden},
	}

	for _, tc := range cases {
		result := AsHttpError(tc.err)
		assert.Equal(t, tc.status, result.Status, tc.err.Error())
		assert.Equal(t, tc.code, result.Code, tc.err.Error())
	}
}

func TestAsHttpError_WrappedSentinel(t *testing.T) {
	wrapped := fmt.Errorf("вход: %w", ErrAccountLocked)

	result := AsHttpError(wrapped)
	assert.Equal(t, http.StatusTooManyRequests, result.Status)
	assert.Equal(t, CodeTooManyRequests, result.Code)
}

func TestAsHttpError_ValidationErrors(t *testing.T) {
	type payload struct {
		Email string `validate:"required,email"`
		Year  int    `validate:"min=1990"`
	}

	err := validator.New().Struct(payload{Email: "bad", Year: 1900})
	require.Error(t, err)

	result := AsHttpError(err)
	assert.Equal(t, http.StatusBadRequest, result.Status)
	assert.Equal(t, CodeValidationError, result.Code)
	require.Len(t, result.Details, 2)
	assert.Equal(t, "Email", result.Details[0].Field)
	assert.Equal(t, "Year", result.Details[1].Field)
}

func TestAsHttpError_UnknownBecomesInternal(t *testing.T) {
	result := AsHttpError(fmt.Errorf("connection refused"))

	assert.Equal(t, http.StatusInternalServerError, result.Status)
	assert.Equal(t, CodeDatabaseError, result.Code)
}

func TestNewValidationError(t *testing.T) {
	details := []FieldError{{Field: "graduationYear", Message: "срок обучения бакалавра должен составлять 4-5 лет"}}

	err := NewValidationError(details)
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, CodeValidationError, err.Code)
	assert.Equal(t, details, err.Details)
}

func TestHttpError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("исходная ошибка")
	err := NewHttpError(http.StatusInternalServerError, CodeDatabaseError, "ошибка", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), CodeDatabaseError)
}
