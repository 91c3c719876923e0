package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// ExportStats отдает Excel-файл со статистикой по командам и оборудованию.
func (c *ReportController) ExportStats(ctx echo.Context) error {
	file, err := c.reportService.ExportStats(ctx.Request().Context())
	if err != nil {
		c.logger.Error("Ошибка при формировании отчета", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	fileName := fmt.Sprintf("maintenance-stats-%s.xlsx", time.Now().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="%s"`, fileName))
	ctx.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	if err := file.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("Ошибка при записи отчета в ответ", zap.Error(err))
		return err
	}
	return nil
}
