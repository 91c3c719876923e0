package utils

import (
	"net/url"
	"strconv"
	"strings"

	"maintenance-system/pkg/types"
)

// ParseFilterFromQuery разбирает параметры вида
// ?filter[status]=new&sort[created_at]=desc&limit=10&offset=0&withPagination=true
// в общий types.Filter для репозиториев.
func ParseFilterFromQuery(query url.Values) types.Filter {
	filter := types.Filter{
		Sort:   make(map[string]string),
		Filter: make(map[string]interface{}),
		Limit:  DefaultLimit,
		Offset: 0,
		Page:   1,
	}

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		if strings.HasPrefix(key, "filter[") && strings.HasSuffix(key, "]") {
			filterKey := key[7 : len(key)-1]
			filter.Filter[filterKey] = values[0]
		}
		if strings.HasPrefix(key, "sort[") && strings.HasSuffix(key, "]") {
			sortKey := key[5 : len(key)-1]
			filter.Sort[sortKey] = values[0]
		}
	}

	if search := query.Get("search"); search != "" {
		filter.Search = search
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			if l > MaxLimit {
				l = MaxLimit
			}
			filter.Limit = l
		}
	}
	if offsetStr := query.Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			filter.Offset = o
			if filter.Limit > 0 {
				filter.Page = (o / filter.Limit) + 1
			}
		}
	}
	// page имеет приоритет только если offset не задан
	if pageStr := query.Get("page"); pageStr != "" && filter.Offset == 0 {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			filter.Page = p
			filter.Offset = (p - 1) * filter.Limit
		}
	}

	if wp := query.Get("withPagination"); wp != "" {
		filter.WithPagination = wp == "true" || wp == "1"
	} else {
		filter.WithPagination = true
	}

	return filter
}
