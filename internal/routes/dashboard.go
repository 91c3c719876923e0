package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/middleware"
)

func runDashboardRouter(
	secureGroup *echo.Group,
	dashboardService services.DashboardServiceInterface,
	reportService services.ReportServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	manageOnly := authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin)
	{
		secureGroup.GET("/dashboard/teams", dashboardCtrl.TeamStats, manageOnly)
		secureGroup.GET("/dashboard/equipments", dashboardCtrl.EquipmentStats, manageOnly)
		secureGroup.GET("/dashboard/overdue", dashboardCtrl.OverdueRequests, manageOnly)
		secureGroup.GET("/dashboard/calendar", dashboardCtrl.Calendar)

		secureGroup.GET("/reports/stats/export", reportCtrl.ExportStats, manageOnly)
	}
}
