package models

// PaginatedResult is a page-scoped slice of items together with the size of
// the full filtered set before slicing. Items is never nil so the JSON form
// always contains an array.
type PaginatedResult[T any] struct {
	Items      []T `json:"items"`
	TotalCount int `json:"totalCount"`
	PageNumber int `json:"pageNumber"`
	PageSize   int `json:"pageSize"`
}

// NewPaginatedResult builds a PaginatedResult, normalizing a nil Items slice.
func NewPaginatedResult[T any](items []T, totalCount, pageNumber, pageSize int) PaginatedResult[T] {
	if items == nil {
		items = []T{}
	}
	return PaginatedResult[T]{
		Items:      items,
		TotalCount: totalCount,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}
}

// Paginate slices items for the given 1-based page, returning the page slice
// and the pre-slice total. A page past the end yields an empty slice; a page
// number below 1 is treated as the first page.
func Paginate[T any](items []T, pageNumber, pageSize int) ([]T, int) {
	total := len(items)
	offset := (pageNumber - 1) * pageSize
	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []T{}, total
	}
	end := offset + pageSize
	if end > total {
		end = total
	}
	return items[offset:end], total
}
