package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(
	dashboardService services.DashboardServiceInterface,
	logger *zap.Logger,
) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

func (c *DashboardController) TeamStats(ctx echo.Context) error {
	res, err := c.dashboardService.TeamStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка при получении статистики по командам", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Статистика по командам успешно получена", http.StatusOK)
}

func (c *DashboardController) EquipmentStats(ctx echo.Context) error {
	res, err := c.dashboardService.EquipmentStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка при получении статистики по оборудованию", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Статистика по оборудованию успешно получена", http.StatusOK)
}

func (c *DashboardController) OverdueRequests(ctx echo.Context) error {
	res, err := c.dashboardService.OverdueRequests(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Просроченные заявки успешно получены", http.StatusOK)
}

func (c *DashboardController) Calendar(ctx echo.Context) error {
	from, err := parseDateQuery(ctx.QueryParam("from"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректная дата 'from', ожидается YYYY-MM-DD"))
	}
	to, err := parseDateQuery(ctx.QueryParam("to"))
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректная дата 'to', ожидается YYYY-MM-DD"))
	}

	res, err := c.dashboardService.Calendar(ctx.Request().Context(), from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Календарь успешно получен", http.StatusOK)
}

func parseDateQuery(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
