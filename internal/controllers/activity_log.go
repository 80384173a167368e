package controllers

import (
	"net/http"

	"alumni-system/internal/services"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ActivityLogController struct {
	activityLogService *services.ActivityLogService
	logger             *zap.Logger
}

func NewActivityLogController(activityLogService *services.ActivityLogService, logger *zap.Logger) *ActivityLogController {
	return &ActivityLogController{activityLogService: activityLogService, logger: logger}
}

func (c *ActivityLogController) GetLogs(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilter(ctx.QueryParams(), "userId", "action", "targetType")

	logs, total, err := c.activityLogService.GetLogs(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, logs, "Журнал действий получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}
