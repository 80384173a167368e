package types

// Filter — параметры списочных запросов: пагинация и произвольные
// доменные фильтры (значения по ключам из query string).
type Filter struct {
	Filter map[string]interface{} `json:"filter,omitempty"`
	Limit  uint64                 `json:"limit"`
	Offset uint64                 `json:"offset"`
	Page   uint64                 `json:"page"`
}
