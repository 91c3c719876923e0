// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"github.com/go-playground/validator/v10"

	"maintenance-system/pkg/constants"
)

// RegisterCustomValidations регистрирует доменные правила валидации
// в переданном экземпляре валидатора.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("request_status", isRequestStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("request_type", isRequestType); err != nil {
		return err
	}
	if err := v.RegisterValidation("priority_level", isPriorityLevel); err != nil {
		return err
	}
	return nil
}

// isRequestStatus: только четыре легальных значения из контракта БД.
func isRequestStatus(fl validator.FieldLevel) bool {
	return constants.IsValidStatus(fl.Field().String())
}

func isRequestType(fl validator.FieldLevel) bool {
	return constants.IsValidRequestType(fl.Field().String())
}

func isPriorityLevel(fl validator.FieldLevel) bool {
	return constants.IsValidPriority(fl.Field().String())
}
