package utils

import "strconv"

// ToPtr возвращает указатель на копию значения. Удобно для
// литералов в опциональных полях DTO.
func ToPtr[T any](v T) *T {
	return &v
}

// PtrToString форматирует опциональный идентификатор; nil дает пустую строку.
func PtrToString(v *uint64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatUint(*v, 10)
}
