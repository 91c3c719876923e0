package utils

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "maintenance-system/pkg/errors"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

// SuccessResponse отдает единый конверт ответа. Последним опциональным
// аргументом можно передать total_count для списков.
func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	response := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		response.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, response)
}

// ErrorResponse переводит ошибку в HTTP-ответ.
// Для HttpError берем только пользовательское сообщение, без технических деталей.
func ErrorResponse(ctx echo.Context, err error, loggers ...*zap.Logger) error {
	code := http.StatusInternalServerError
	message := "внутренняя ошибка сервера"

	var httpErr *apperrors.HttpError
	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.Is(err, apperrors.ErrNotFound):
		code = http.StatusNotFound
		message = err.Error()
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		code = http.StatusUnauthorized
		message = err.Error()
	case errors.Is(err, apperrors.ErrEmptyAuthHeader),
		errors.Is(err, apperrors.ErrInvalidAuthHeader),
		errors.Is(err, apperrors.ErrInvalidToken),
		errors.Is(err, apperrors.ErrTokenExpired),
		errors.Is(err, apperrors.ErrTokenIsNotAccess):
		code = http.StatusUnauthorized
		message = err.Error()
	default:
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return ctx.JSON(http.StatusBadRequest, &HttpResponse{
				Status:  false,
				Body:    struct{}{},
				Message: "некорректные данные запроса: " + validationErrs.Error(),
			})
		}
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			code = echoErr.Code
			if msg, ok := echoErr.Message.(string); ok {
				message = msg
			}
		}
	}

	if len(loggers) > 0 && code >= http.StatusInternalServerError {
		loggers[0].Error("необработанная ошибка", zap.Error(err))
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
