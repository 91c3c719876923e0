package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/middleware"
)

func runTechnicianRouter(
	secureGroup *echo.Group,
	technicianService services.TechnicianServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	technicianCtrl := controllers.NewTechnicianController(technicianService, logger)

	manageOnly := authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin)
	{
		secureGroup.GET("/technicians", technicianCtrl.GetTechnicians)
		secureGroup.POST("/technicians", technicianCtrl.CreateTechnician, manageOnly)
		secureGroup.PUT("/technicians/:id", technicianCtrl.UpdateTechnician, manageOnly)
		secureGroup.DELETE("/technicians/:id", technicianCtrl.DeleteTechnician, authMW.RequireRoles(constants.RoleAdmin))
	}
}
