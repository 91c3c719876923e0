package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

// AssignmentController - self-service эндпоинты техника:
// очередь команды, прием заявки, личная статистика.
type AssignmentController struct {
	assignmentService services.AssignmentServiceInterface
	logger            *zap.Logger
}

func NewAssignmentController(
	assignmentService services.AssignmentServiceInterface,
	logger *zap.Logger,
) *AssignmentController {
	return &AssignmentController{
		assignmentService: assignmentService,
		logger:            logger,
	}
}

func (c *AssignmentController) AcceptRequest(ctx echo.Context) error {
	id, err := parseIDParam(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.assignmentService.AcceptRequest(ctx.Request().Context(), userID, id)
	if err != nil {
		c.logger.Warn("Не удалось принять заявку",
			zap.Error(err), zap.Uint64("request_id", id), zap.Uint64("user_id", userID))
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Заявка принята в работу", http.StatusOK)
}

func (c *AssignmentController) TeamQueue(ctx echo.Context) error {
	var filters dto.TeamQueueFilterDTO
	if err := ctx.Bind(&filters); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректные параметры фильтра"))
	}
	if filters.Limit == 0 || filters.Limit > utils.MaxLimit {
		filters.Limit = utils.DefaultLimit
	}

	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, totalCount, err := c.assignmentService.TeamQueue(ctx.Request().Context(), userID, filters)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Очередь команды успешно получена", http.StatusOK, totalCount)
}

func (c *AssignmentController) MyStats(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.assignmentService.TechnicianStats(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Статистика успешно получена", http.StatusOK)
}
