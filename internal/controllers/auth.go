package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/services"
	"maintenance-system/pkg/utils"
)

type AuthController struct {
	authService services.AuthServiceInterface
	logger      *zap.Logger
}

func NewAuthController(
	authService services.AuthServiceInterface,
	logger *zap.Logger,
) *AuthController {
	return &AuthController{
		authService: authService,
		logger:      logger,
	}
}

func (c *AuthController) Login(ctx echo.Context) error {
	var payload dto.LoginDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.authService.Login(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Вход выполнен успешно", http.StatusOK)
}

func (c *AuthController) Refresh(ctx echo.Context) error {
	var payload dto.RefreshDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, echo.NewHTTPError(http.StatusBadRequest, "некорректное тело запроса"))
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.authService.Refresh(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Токены успешно обновлены", http.StatusOK)
}

func (c *AuthController) Me(ctx echo.Context) error {
	userID, err := utils.GetUserIDFromCtx(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.authService.Me(ctx.Request().Context(), userID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	return utils.SuccessResponse(ctx, res, "Профиль успешно получен", http.StatusOK)
}
