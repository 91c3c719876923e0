package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/middleware"
)

func runAssignmentRouter(
	secureGroup *echo.Group,
	assignmentService services.AssignmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	assignmentCtrl := controllers.NewAssignmentController(assignmentService, logger)

	technicianOnly := authMW.RequireRoles(constants.RoleTechnician)
	{
		secureGroup.POST("/requests/:id/accept", assignmentCtrl.AcceptRequest, technicianOnly)
		secureGroup.GET("/technician/queue", assignmentCtrl.TeamQueue, technicianOnly)
		secureGroup.GET("/technician/stats", assignmentCtrl.MyStats, technicianOnly)
	}
}
