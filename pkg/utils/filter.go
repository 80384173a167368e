package utils

import (
	"net/url"

	"alumni-system/pkg/types"
)

// ParseFilter собирает фильтр списка из query string.
// В filter попадают только перечисленные ключи с непустыми значениями.
func ParseFilter(values url.Values, keys ...string) types.Filter {
	limit, offset, page := ParsePaginationParams(values)

	filter := types.Filter{
		Filter: make(map[string]interface{}),
		Limit:  limit,
		Offset: offset,
		Page:   page,
	}
	for _, key := range keys {
		if v := values.Get(key); v != "" {
			filter.Filter[key] = v
		}
	}
	return filter
}
