package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/middleware"
)

func runEquipmentRouter(
	secureGroup *echo.Group,
	equipmentService services.EquipmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)

	manageOnly := authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin)
	{
		secureGroup.GET("/equipments", equipmentCtrl.GetEquipments)
		secureGroup.GET("/equipments/:id", equipmentCtrl.FindEquipment)
		secureGroup.POST("/equipments", equipmentCtrl.CreateEquipment, manageOnly)
		secureGroup.PUT("/equipments/:id", equipmentCtrl.UpdateEquipment, manageOnly)
		secureGroup.DELETE("/equipments/:id", equipmentCtrl.DeleteEquipment, authMW.RequireRoles(constants.RoleAdmin))
	}
}
