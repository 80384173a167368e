package utils

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePaginationParams_Defaults(t *testing.T) {
	limit, offset, page := ParsePaginationParams(url.Values{})

	assert.Equal(t, uint64(DefaultLimit), limit)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(1), page)
}

func TestParsePaginationParams_OffsetFromPage(t *testing.T) {
	values := url.Values{"page": {"3"}, "limit": {"25"}}
	limit, offset, page := ParsePaginationParams(values)

	assert.Equal(t, uint64(25), limit)
	assert.Equal(t, uint64(50), offset)
	assert.Equal(t, uint64(3), page)
}

func TestParsePaginationParams_LimitCapped(t *testing.T) {
	values := url.Values{"limit": {"5000"}}
	limit, _, _ := ParsePaginationParams(values)

	assert.Equal(t, uint64(MaxLimit), limit)
}

func TestParsePaginationParams_GarbageIgnored(t *testing.T) {
	values := url.Values{"page": {"abc"}, "limit": {"-5"}}
	limit, offset, page := ParsePaginationParams(values)

	assert.Equal(t, uint64(DefaultLimit), limit)
	assert.Equal(t, uint64(0), offset)
	assert.Equal(t, uint64(1), page)
}

func TestParseFilter_OnlyListedKeys(t *testing.T) {
	values := url.Values{
		"faculty":     {"Инженерный"},
		"degreeLevel": {"bachelor"},
		"role":        {"admin"},
		"search":      {""},
	}

	filter := ParseFilter(values, "faculty", "degreeLevel", "search")

	assert.Equal(t, "Инженерный", filter.Filter["faculty"])
	assert.Equal(t, "bachelor", filter.Filter["degreeLevel"])
	// Не перечисленные и пустые ключи отбрасываются.
	assert.NotContains(t, filter.Filter, "role")
	assert.NotContains(t, filter.Filter, "search")
}

func TestParseFilter_CarriesPagination(t *testing.T) {
	values := url.Values{"page": {"2"}, "limit": {"20"}}
	filter := ParseFilter(values)

	assert.Equal(t, uint64(20), filter.Limit)
	assert.Equal(t, uint64(20), filter.Offset)
	assert.Equal(t, uint64(2), filter.Page)
	assert.Empty(t, filter.Filter)
}
