package controllers

import (
	"net/http"
	"strconv"

	"alumni-system/internal/dto"
	"alumni-system/internal/services"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserController struct {
	userService *services.UserService
	logger      *zap.Logger
}

func NewUserController(userService *services.UserService, logger *zap.Logger) *UserController {
	return &UserController{userService: userService, logger: logger}
}

func parseIDParam(ctx echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.NewBadRequestError("некорректный идентификатор")
	}
	return id, nil
}

func actorContext(ctx echo.Context) (uint64, *string, *string, error) {
	reqCtx := ctx.Request().Context()
	actorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return 0, nil, nil, err
	}
	ip := utils.GetClientIPFromCtx(reqCtx)
	userAgent := utils.GetUserAgentFromCtx(reqCtx)
	return actorID, &ip, &userAgent, nil
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilter(ctx.QueryParams(),
		"role", "faculty", "direction", "degreeLevel", "studentType", "studentStatus", "financingType")

	users, total, err := c.userService.GetUsers(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, users, "Список пользователей получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}

// SearchStudents — поиск по студентам: подстрока q по имени, фамилии,
// email и номеру студенческого билета плюс точные фильтры.
func (c *UserController) SearchStudents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	query := ctx.QueryParam("q")
	filter := utils.ParseFilter(ctx.QueryParams(),
		"faculty", "direction", "admissionYear", "graduationYear")

	students, total, err := c.userService.SearchStudents(reqCtx, query, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, students, "Результаты поиска студентов получены", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}

func (c *UserController) FindUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	user, err := c.userService.FindUser(reqCtx, id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь найден", http.StatusOK)
}

func (c *UserController) CreateUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateUserDTO
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

	user, err := c.userService.CreateUser(reqCtx, actorID, payload, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь создан", http.StatusCreated)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateUserDTO
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

	user, err := c.userService.UpdateUser(reqCtx, actorID, id, payload, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь обновлён", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.userService.DeleteUser(reqCtx, actorID, id, ip, userAgent); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пользователь удалён", http.StatusOK)
}

func (c *UserController) VerifyUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	user, err := c.userService.VerifyUser(reqCtx, actorID, id, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь верифицирован", http.StatusOK)
}

func (c *UserController) BlockUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.BlockUserDTO
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

	user, err := c.userService.SetBlocked(reqCtx, actorID, id, true, &payload.Reason, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь заблокирован", http.StatusOK)
}

func (c *UserController) UnblockUser(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	user, err := c.userService.SetBlocked(reqCtx, actorID, id, false, nil, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Пользователь разблокирован", http.StatusOK)
}

func (c *UserController) UpdateProfile(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateProfileDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	user, err := c.userService.UpdateProfile(reqCtx, userID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, user, "Профиль обновлён", http.StatusOK)
}

func (c *UserController) ChangePassword(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	userID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.ChangePasswordDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.userService.ChangePassword(reqCtx, userID, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пароль изменён", http.StatusOK)
}
