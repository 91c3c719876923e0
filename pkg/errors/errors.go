package errors

import (
	"fmt"
	"net/http"
)

var (
	// JWT и токены
	ErrInvalidSigningMethod = fmt.Errorf("неверный метод подписи токена")
	ErrInvalidToken         = fmt.Errorf("недопустимый токен")
	ErrTokenExpired         = fmt.Errorf("срок действия токена истёк")
	ErrTokenIsNotRefresh    = fmt.Errorf("токен не является refresh-токеном")
	ErrTokenIsNotAccess     = fmt.Errorf("токен не является access-токеном")

	// Авторизация
	ErrEmptyAuthHeader    = fmt.Errorf("заголовок авторизации отсутствует")
	ErrInvalidAuthHeader  = fmt.Errorf("неверный формат заголовка авторизации")
	ErrInvalidCredentials = fmt.Errorf("неверные учётные данные")

	// Контекст
	ErrUserIDNotFoundInContext = fmt.Errorf("UserID не найден в контексте запроса")

	// Общие
	ErrNotFound = fmt.Errorf("запись не найдена")
)

// HttpError - каллер-ориентированная ошибка со стабильным кодом.
// Message безопасно показывать пользователю, Err хранит техническую причину.
type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error {
	return e.Err
}

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

// NotFound: заявка/оборудование/техник не существуют.
func NewNotFoundError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// InvalidInput: не заполнено обязательное поле, недопустимый статус и т.п.
func NewBadRequestError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// Forbidden: попытка взять заявку чужой команды.
func NewForbiddenError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusForbidden, Message: fmt.Sprintf(format, args...)}
}

// Conflict: заявка уже закреплена за другим техником.
func NewConflictError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func NewUnauthorizedError(format string, args ...interface{}) *HttpError {
	return &HttpError{Code: http.StatusUnauthorized, Message: fmt.Sprintf(format, args...)}
}
