package errors

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
)

// Машиночитаемые коды ошибок. Коды — на английском,
// сообщения для пользователя — на русском.
const (
	CodeNotEligible        = "NOT_ELIGIBLE"
	CodeAlreadyGraduated   = "ALREADY_GRADUATED"
	CodeNotGraduated       = "NOT_GRADUATED"
	CodeStudentGraduated   = "STUDENT_GRADUATED"
	CodeValidationError    = "VALIDATION_ERROR"
	CodeStudentNotFound    = "STUDENT_NOT_FOUND"
	CodeAssignmentNotFound = "ASSIGNMENT_NOT_FOUND"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeEmailExists        = "EMAIL_EXISTS"
	CodePhoneExists        = "PHONE_EXISTS"
	CodeStudentIDExists    = "STUDENT_ID_EXISTS"
	CodeAlreadyVerified    = "ALREADY_VERIFIED"
	CodeCannotDeleteSelf   = "CANNOT_DELETE_SELF"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeBadRequest         = "BAD_REQUEST"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeTooManyRequests    = "TOO_MANY_REQUESTS"
	CodeDatabaseError      = "DATABASE_ERROR"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenRevoked         = fmt.Errorf("токен отозван")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")
	ErrAccountLocked      = fmt.Errorf("аккаунт временно заблокирован, попробуйте позже")
	ErrAccountBlocked     = fmt.Errorf("аккаунт заблокирован администратором")
	ErrUnauthorized       = fmt.Errorf("неавторизован")
	ErrForbidden          = fmt.Errorf("доступ запрещён")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound   = fmt.Errorf("запись не найдена")
	ErrBadRequest = fmt.Errorf("неверный запрос")
)

// FieldError — одна ошибка валидации конкретного поля.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// HttpError — ошибка уровня API: стабильный код, человеческое сообщение
// и HTTP-статус. Details заполняется только для ошибок валидации.
type HttpError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"-"`
	Details []FieldError `json:"details,omitempty"`
	Err     error        `json:"-"`
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(status int, code, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Status: status, Err: err}
}

func NewBadRequestError(message string) *HttpError {
	return &HttpError{Code: CodeBadRequest, Message: message, Status: http.StatusBadRequest}
}

func NewNotFoundError(code, message string) *HttpError {
	return &HttpError{Code: code, Message: message, Status: http.StatusNotFound}
}

func NewConflictError(code, message string) *HttpError {
	return &HttpError{Code: code, Message: message, Status: http.StatusConflict}
}

// NewValidationError агрегирует ошибки валидации в один ответ 400.
func NewValidationError(details []FieldError) *HttpError {
	return &HttpError{
		Code:    CodeValidationError,
		Message: "Ошибка валидации данных",
		Status:  http.StatusBadRequest,
		Details: details,
	}
}

func NewDatabaseError(err error) *HttpError {
	return &HttpError{
		Code:    CodeDatabaseError,
		Message: "Внутренняя ошибка базы данных",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
}

// AsHttpError приводит произвольную ошибку к HttpError.
// Сентинельные ошибки получают соответствующий статус,
// всё остальное считается внутренней ошибкой сервера.
func AsHttpError(err error) *HttpError {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		details := make([]FieldError, 0, len(validationErrs))
		for _, fe := range validationErrs {
			details = append(details, FieldError{
				Field:   fe.Field(),
				Message: fmt.Sprintf("не прошло проверку правила '%s'", fe.Tag()),
			})
		}
		return NewValidationError(details)
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return NewNotFoundError(CodeNotFound, ErrNotFound.Error())
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(ErrBadRequest.Error())
	case errors.Is(err, ErrInvalidCredentials):
		return NewHttpError(http.StatusUnauthorized, CodeUnauthorized, ErrInvalidCredentials.Error(), err)
	case errors.Is(err, ErrEmptyAuthHeader),
		errors.Is(err, ErrInvalidAuthHeader),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenRevoked),
		errors.Is(err, ErrTokenIsNotRefresh),
		errors.Is(err, ErrTokenIsNotAccess),
		errors.Is(err, ErrInvalidSigningMethod),
		errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrUserIDNotFoundInContext):
		return NewHttpError(http.StatusUnauthorized, CodeUnauthorized, err.Error(), err)
	case errors.Is(err, ErrAccountLocked):
		return NewHttpError(http.StatusTooManyRequests, CodeTooManyRequests, ErrAccountLocked.Error(), err)
	case errors.Is(err, ErrAccountBlocked):
		return NewHttpError(http.StatusForbidden, CodeForbidden, ErrAccountBlocked.Error(), err)
	case errors.Is(err, ErrForbidden):
		return NewHttpError(http.StatusForbidden, CodeForbidden, ErrForbidden.Error(), err)
	default:
		return NewDatabaseError(err)
	}
}
