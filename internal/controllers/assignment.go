package controllers

import (
	"net/http"

	"alumni-system/internal/authz"
	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/services"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AssignmentController struct {
	assignmentService *services.AssignmentService
	userService       *services.UserService
	logger            *zap.Logger
}

func NewAssignmentController(
	assignmentService *services.AssignmentService,
	userService *services.UserService,
	logger *zap.Logger,
) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		userService:       userService,
		logger:            logger,
	}
}

func (c *AssignmentController) AssignStudents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	teacherID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.AssignStudentsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	result, err := c.assignmentService.AssignStudents(reqCtx, actorID, teacherID, payload, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Закрепление студентов выполнено", http.StatusOK)
}

func (c *AssignmentController) UnassignStudent(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	teacherID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	studentID, err := parseIDParam(ctx, "studentId")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.assignmentService.UnassignStudent(reqCtx, actorID, teacherID, studentID, ip, userAgent); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Студент откреплён", http.StatusOK)
}

// ListStudents доступен администратору для любого преподавателя,
// преподавателю только для собственного списка.
func (c *AssignmentController) ListStudents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	teacherID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	actor, err := c.userService.FindUser(reqCtx, actorID)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if !authz.CanDo(authz.AssignmentsView, authz.Context{Actor: actor, Target: &entities.TeacherStudent{TeacherID: teacherID}}) {
		return utils.ErrorResponse(ctx, apperrors.ErrForbidden)
	}

	filter := utils.ParseFilter(ctx.QueryParams())
	students, total, err := c.assignmentService.ListStudents(reqCtx, teacherID, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, students, "Список закреплённых студентов получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}
