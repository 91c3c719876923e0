package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/constants"
	"maintenance-system/pkg/middleware"
)

func runRequestRouter(
	secureGroup *echo.Group,
	requestService services.RequestServiceInterface,
	attachmentService services.AttachmentServiceInterface,
	logger *zap.Logger,
	authMW *middleware.AuthMiddleware,
) {
	requestCtrl := controllers.NewRequestController(requestService, logger)
	attachmentCtrl := controllers.NewAttachmentController(attachmentService, logger)

	manageOnly := authMW.RequireRoles(constants.RoleManager, constants.RoleAdmin)
	statusRoles := authMW.RequireRoles(constants.RoleTechnician, constants.RoleManager, constants.RoleAdmin)
	{
		secureGroup.GET("/requests", requestCtrl.GetRequests)
		secureGroup.POST("/requests", requestCtrl.CreateRequest)
		secureGroup.GET("/requests/:id", requestCtrl.FindRequest)
		secureGroup.PUT("/requests/:id", requestCtrl.UpdateRequest, manageOnly)
		secureGroup.DELETE("/requests/:id", requestCtrl.DeleteRequest, authMW.RequireRoles(constants.RoleAdmin))

		secureGroup.POST("/requests/:id/assign", requestCtrl.AssignTechnician, manageOnly)
		secureGroup.PATCH("/requests/:id/status", requestCtrl.UpdateStatus, statusRoles)
		secureGroup.GET("/requests/:id/logs", requestCtrl.GetRequestLogs)

		secureGroup.GET("/requests/:id/attachments", attachmentCtrl.ListByRequest)
		secureGroup.POST("/requests/:id/attachments", attachmentCtrl.Upload)
	}
}
