package utils

import (
	"net/url"
	"strconv"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// ParsePaginationParams читает limit и page из строки запроса.
// Невалидные значения молча заменяются значениями по умолчанию,
// limit сверху ограничен MaxLimit.
func ParsePaginationParams(values url.Values) (limit uint64, offset uint64, page uint64) {
	limit = parseUintParam(values.Get("limit"), DefaultLimit)
	if limit > MaxLimit {
		limit = MaxLimit
	}
	page = parseUintParam(values.Get("page"), 1)
	offset = (page - 1) * limit
	return limit, offset, page
}

func parseUintParam(raw string, fallback uint64) uint64 {
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || v == 0 {
		return fallback
	}
	return v
}
