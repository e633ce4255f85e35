package memory

import "github.com/sefcontact/engine/internal/domain/shared"

// paginate applies the filter's page window to an already-filtered slice.
// Page/PageSize of zero mean no paging.
func paginate[T any](items []T, filter shared.Filter) []T {
	if filter.Page <= 0 || filter.PageSize <= 0 {
		return items
	}
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(items) {
		return []T{}
	}
	end := start + filter.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func toString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}
