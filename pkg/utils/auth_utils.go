package utils

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"
)

// HashPassword хеширует пароль через bcrypt со стандартной стоимостью.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("не удалось хешировать пароль: %w", err)
	}
	return string(hash), nil
}

// ComparePasswords сверяет пароль с bcrypt-хешем из БД.
func ComparePasswords(hashedPassword string, plainPassword string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
}

// CustomValidator адаптирует go-playground/validator под интерфейс
// echo.Validator, чтобы ctx.Validate работал в контроллерах.
type CustomValidator struct {
	validator *validator.Validate
}

func NewValidator(v *validator.Validate) *CustomValidator {
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i any) error {
	return cv.validator.Struct(i)
}
