package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type AttachmentController struct {
	attachmentService services.AttachmentServiceInterface
	logger            *zap.Logger
}

func NewAttachmentController(
	attachmentService services.AttachmentServiceInterface,
	logger *zap.Logger,
) *AttachmentController {
	return &AttachmentController{
		attachmentService: attachmentService,
		logger:            logger,
	}
}

func (c *AttachmentController) Upload(ctx echo.Context) error {
	requestID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "файл 'file' не найден в запросе"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	defer src.Close()

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.attachmentService.Upload(ctx.Request().Context(), requestID, src, fileHeader.Filename, userID)
	if err != nil {
		c.logger.Error("Ошибка при загрузке вложения", zap.Error(err), zap.Uint64("request_id", requestID))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Вложение успешно загружено", http.StatusCreated)
}

func (c *AttachmentController) ListByRequest(ctx echo.Context) error {
	requestID, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.attachmentService.ListByRequest(ctx.Request().Context(), requestID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Вложения успешно получены", http.StatusOK)
}

func (c *AttachmentController) Delete(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.attachmentService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, nil, "Вложение успешно удалено", http.StatusOK)
}
