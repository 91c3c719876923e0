package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type RequestController struct {
	requestService services.RequestServiceInterface
	logger         *zap.Logger
}

func NewRequestController(
	requestService services.RequestServiceInterface,
	logger *zap.Logger,
) *RequestController {
	return &RequestController{
		requestService: requestService,
		logger:         logger,
	}
}

func (c *RequestController) GetRequests(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, totalCount, err := c.requestService.GetRequests(ctx.Request().Context(), filter)
	if err != nil {
		c.logger.Error("Ошибка при получении списка заявок", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявки успешно получены", http.StatusOK, totalCount)
}

func (c *RequestController) FindRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.GetRequest(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно получена", http.StatusOK)
}

func (c *RequestController) GetRequestLogs(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.GetRequestLogs(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Журнал заявки успешно получен", http.StatusOK)
}

func (c *RequestController) CreateRequest(ctx echo.Context) error {
	var payload dto.CreateRequestDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		c.logger.Error("CreateRequest: не удалось получить userID из контекста", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.CreateRequest(ctx.Request().Context(), payload, userID)
	if err != nil {
		c.logger.Error("Ошибка при создании заявки", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно создана", http.StatusCreated)
}

func (c *RequestController) UpdateRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var patch dto.UpdateRequestDTO
	if err := ctx.Bind(&patch); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&patch); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.UpdateRequest(ctx.Request().Context(), id, patch)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявка успешно обновлена", http.StatusOK)
}

func (c *RequestController) AssignTechnician(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.AssignTechnicianDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.AssignTechnician(ctx.Request().Context(), id, payload, userID)
	if err != nil {
		c.logger.Error("Ошибка при назначении техника", zap.Error(err), zap.Uint64("request_id", id))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Техник успешно назначен", http.StatusOK)
}

func (c *RequestController) UpdateStatus(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.requestService.UpdateStatus(ctx.Request().Context(), id, payload, userID)
	if err != nil {
		c.logger.Error("Ошибка при смене статуса заявки", zap.Error(err), zap.Uint64("request_id", id))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Статус заявки успешно изменен", http.StatusOK)
}

func (c *RequestController) DeleteRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.requestService.DeleteRequest(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, nil, "Заявка успешно удалена", http.StatusOK)
}

func parseIDParam(ctx echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "некорректный ID")
	}
	return id, nil
}
