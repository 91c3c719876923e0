package middleware

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"maintenance-system/pkg/contextkeys"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/service"
	"maintenance-system/pkg/utils"
)

type AuthMiddleware struct {
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthMiddleware(jwtSvc service.JWTService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtSvc,
		logger:     logger,
	}
}

// Auth - основная функция middleware: извлекает и проверяет Bearer-токен,
// кладет UserID и роль в контекст запроса.
func (m *AuthMiddleware) Auth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			m.logger.Warn("AuthMiddleware: Пустой заголовок Authorization")
			return utils.ErrorResponse(c, apperrors.ErrEmptyAuthHeader)
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			m.logger.Warn("AuthMiddleware: Неверный формат заголовка Authorization")
			return utils.ErrorResponse(c, apperrors.ErrInvalidAuthHeader)
		}

		claims, err := m.jwtService.ValidateToken(parts[1])
		if err != nil {
			m.logger.Warn("AuthMiddleware: Ошибка валидации токена", zap.Error(err))
			return utils.ErrorResponse(c, err)
		}

		if claims.IsRefreshToken {
			m.logger.Warn("AuthMiddleware: Попытка доступа с refresh токеном")
			return utils.ErrorResponse(c, apperrors.ErrTokenIsNotAccess)
		}

		ctx := c.Request().Context()
		ctx = context.WithValue(ctx, contextkeys.UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, contextkeys.UserRoleKey, claims.Role)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// RequireRoles ограничивает маршрут перечисленными ролями. Проверка ролей
// живет здесь, а не в движке жизненного цикла: сервисы получают уже
// аутентифицированного actingUser.
func (m *AuthMiddleware) RequireRoles(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, err := utils.GetUserRoleFromCtx(c.Request().Context())
			if err != nil {
				return utils.ErrorResponse(c, err)
			}
			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}
			m.logger.Warn("AuthMiddleware: Доступ запрещен по роли", zap.String("role", role))
			return utils.ErrorResponse(c, apperrors.NewForbiddenError("доступ запрещён"))
		}
	}
}
