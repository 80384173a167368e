package controllers

import (
	"net/http"

	"alumni-system/internal/dto"
	"alumni-system/internal/services"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type DictionaryController struct {
	dictionaryService *services.DictionaryService
	logger            *zap.Logger
}

func NewDictionaryController(dictionaryService *services.DictionaryService, logger *zap.Logger) *DictionaryController {
	return &DictionaryController{dictionaryService: dictionaryService, logger: logger}
}

func (c *DictionaryController) GetFaculties(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilter(ctx.QueryParams())

	faculties, total, err := c.dictionaryService.GetFaculties(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, faculties, "Список факультетов получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}

func (c *DictionaryController) CreateFaculty(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateFacultyDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	faculty, err := c.dictionaryService.CreateFaculty(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, faculty, "Факультет создан", http.StatusCreated)
}

func (c *DictionaryController) UpdateFaculty(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateFacultyDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	faculty, err := c.dictionaryService.UpdateFaculty(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, faculty, "Факультет обновлён", http.StatusOK)
}

func (c *DictionaryController) DeleteFaculty(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.dictionaryService.DeleteFaculty(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Факультет удалён", http.StatusOK)
}

func (c *DictionaryController) GetDirections(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilter(ctx.QueryParams(), "facultyId")

	directions, total, err := c.dictionaryService.GetDirections(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, directions, "Список направлений получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}

func (c *DictionaryController) CreateDirection(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateDirectionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	direction, err := c.dictionaryService.CreateDirection(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, direction, "Направление создано", http.StatusCreated)
}

func (c *DictionaryController) UpdateDirection(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateDirectionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	direction, err := c.dictionaryService.UpdateDirection(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, direction, "Направление обновлено", http.StatusOK)
}

func (c *DictionaryController) DeleteDirection(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.dictionaryService.DeleteDirection(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Направление удалено", http.StatusOK)
}

func (c *DictionaryController) GetCompanies(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilter(ctx.QueryParams(), "industry", "location")

	companies, total, err := c.dictionaryService.GetCompanies(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, companies, "Список компаний получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}

func (c *DictionaryController) CreateCompany(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	var payload dto.CreateCompanyDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	company, err := c.dictionaryService.CreateCompany(reqCtx, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, company, "Компания создана", http.StatusCreated)
}

func (c *DictionaryController) UpdateCompany(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateCompanyDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("неверный формат данных"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	company, err := c.dictionaryService.UpdateCompany(reqCtx, id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, company, "Компания обновлена", http.StatusOK)
}

func (c *DictionaryController) DeleteCompany(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.dictionaryService.DeleteCompany(reqCtx, id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Компания удалена", http.StatusOK)
}
