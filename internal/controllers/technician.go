package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type TechnicianController struct {
	technicianService services.TechnicianServiceInterface
	logger            *zap.Logger
}

func NewTechnicianController(
	technicianService services.TechnicianServiceInterface,
	logger *zap.Logger,
) *TechnicianController {
	return &TechnicianController{
		technicianService: technicianService,
		logger:            logger,
	}
}

func (c *TechnicianController) GetTechnicians(ctx echo.Context) error {
	limit, offset, _ := utils.ParsePaginationParams(ctx.Request().URL.Query())

	res, totalCount, err := c.technicianService.GetTechnicians(ctx.Request().Context(), limit, offset)
	if err != nil {
		c.logger.Error("Ошибка при получении списка техников", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Техники успешно получены", http.StatusOK, totalCount)
}

func (c *TechnicianController) CreateTechnician(ctx echo.Context) error {
	var payload dto.CreateTechnicianDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.technicianService.CreateTechnician(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Техник успешно создан", http.StatusCreated)
}

func (c *TechnicianController) UpdateTechnician(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateTechnicianDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.technicianService.UpdateTechnician(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, nil, "Техник успешно обновлен", http.StatusOK)
}

func (c *TechnicianController) DeleteTechnician(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.technicianService.DeleteTechnician(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, nil, "Техник успешно удален", http.StatusOK)
}
