package utils

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
)

// Единый конверт ответа API: {success, data|error{code,message,details}}.
type APIResponse struct {
	Success    bool              `json:"success"`
	Data       interface{}       `json:"data,omitempty"`
	Message    string            `json:"message,omitempty"`
	Pagination *types.Pagination `json:"pagination,omitempty"`
	Error      *apperrors.HttpError `json:"error,omitempty"`
}

func SuccessResponse(ctx echo.Context, data interface{}, message string, code int, pagination ...*types.Pagination) error {
	resp := &APIResponse{
		Success: true,
		Data:    data,
		Message: message,
	}
	if len(pagination) > 0 {
		resp.Pagination = pagination[0]
	}
	return ctx.JSON(code, resp)
}

func ErrorResponse(ctx echo.Context, err error, logger ...*zap.Logger) error {
	httpErr := apperrors.AsHttpError(err)

	if httpErr.Status >= http.StatusInternalServerError && len(logger) > 0 && logger[0] != nil {
		logger[0].Error("внутренняя ошибка при обработке запроса",
			zap.String("code", httpErr.Code),
			zap.Error(err),
		)
	}

	return ctx.JSON(httpErr.Status, &APIResponse{
		Success: false,
		Error:   httpErr,
	})
}
