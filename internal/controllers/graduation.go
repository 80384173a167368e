package controllers

import (
	"fmt"
	"net/http"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/services"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
	"alumni-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type GraduationController struct {
	graduationService *services.GraduationService
	logger            *zap.Logger
}

func NewGraduationController(graduationService *services.GraduationService, logger *zap.Logger) *GraduationController {
	return &GraduationController{graduationService: graduationService, logger: logger}
}

func (c *GraduationController) GetGraduatingStudents(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	filter := utils.ParseFilter(ctx.QueryParams(), "faculty", "degreeLevel")

	students, total, err := c.graduationService.GraduatingStudents(reqCtx, filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, students, "Список выпускающихся студентов получен", http.StatusOK,
		types.NewPagination(total, filter.Page, filter.Limit))
}

func (c *GraduationController) ConfirmGraduation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	student, err := c.graduationService.ConfirmGraduation(reqCtx, actorID, studentID, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, student, "Выпуск подтверждён", http.StatusOK)
}

func (c *GraduationController) RevertGraduation(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	actorID, ip, userAgent, err := actorContext(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	student, err := c.graduationService.RevertGraduation(reqCtx, actorID, studentID, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, student, "Выпуск отменён", http.StatusOK)
}

func (c *GraduationController) UpdateGraduationInfo(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	studentID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateGraduationInfoDTO
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

	student, err := c.graduationService.UpdateGraduationInfo(reqCtx, actorID, studentID, payload, ip, userAgent)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, student, "Академические данные обновлены", http.StatusOK)
}

func (c *GraduationController) GetGraduationStatistics(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	stats, err := c.graduationService.GraduationStatistics(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if ctx.QueryParam("format") == "xlsx" {
		return c.respondWithXLSX(ctx, stats)
	}
	return utils.SuccessResponse(ctx, stats, "Статистика по выпускникам получена", http.StatusOK)
}

var statisticsHeaders = []string{"Показатель", "Обучаются", "Выпускники"}

var degreeTitles = map[string]string{
	"bachelor": "Бакалавриат",
	"master":   "Магистратура",
	"phd":      "Аспирантура",
	"dsc":      "Докторантура",
}

func (c *GraduationController) respondWithXLSX(ctx echo.Context, stats *dto.GraduationStatisticsDTO) error {
	f := excelize.NewFile()
	sheet := "Статистика выпуска"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &statisticsHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "C1", style)

	rows := [][]interface{}{
		{"Всего", stats.TotalCurrent, stats.TotalGraduates},
	}
	for _, degree := range []string{"bachelor", "master", "phd", "dsc"} {
		if s, ok := stats.ByDegreeLevel[degree]; ok {
			rows = append(rows, []interface{}{degreeTitles[degree], s.Current, s.Graduates})
		}
	}
	for _, fs := range stats.ByFaculty {
		rows = append(rows, []interface{}{fs.Faculty, fs.Current, fs.Graduates})
	}

	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 40)
	f.SetColWidth(sheet, "B", "C", 15)

	fileName := fmt.Sprintf("graduation_statistics_%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	ctx.Response().WriteHeader(http.StatusOK)
	return f.Write(ctx.Response().Writer)
}
