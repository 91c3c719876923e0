package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(
	equipmentService services.EquipmentServiceInterface,
	logger *zap.Logger,
) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func (c *EquipmentController) GetEquipments(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.equipmentService.GetEquipments(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка оборудования", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно получено", http.StatusOK, totalCount)
}

func (c *EquipmentController) FindEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.equipmentService.GetEquipment(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Оборудование успешно получено", http.StatusOK)
}

func (c *EquipmentController) CreateEquipment(ctx echo.Context) error {
	var payload dto.CreateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	newID, err := c.equipmentService.CreateEquipment(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, echo.Map{"id": newID}, "Оборудование успешно создано", http.StatusCreated)
}

func (c *EquipmentController) UpdateEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateEquipmentDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.equipmentService.UpdateEquipment(ctx.Request().Context(), id, payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, nil, "Оборудование успешно обновлено", http.StatusOK)
}

func (c *EquipmentController) DeleteEquipment(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.equipmentService.DeleteEquipment(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, nil, "Оборудование успешно удалено", http.StatusOK)
}
