package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/controllers"
	"maintenance-system/internal/services"
)

func runAttachmentRouter(
	secureGroup *echo.Group,
	attachmentService services.AttachmentServiceInterface,
	logger *zap.Logger,
) {
	attachmentCtrl := controllers.NewAttachmentController(attachmentService, logger)
	{
		secureGroup.DELETE("/attachments/:id", attachmentCtrl.Delete)
	}
}
