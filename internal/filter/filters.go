package filter

import "github.com/mingx/socialnet/internal/validator"

// Filter is the fixed-size page contract shared by every list endpoint.
// Pages are numbered from 1.
type Filter struct {
	Page     int64
	PageSize int64
}

// Metadata describes a returned page. No exact total count is reported;
// HasNext is derived from fetching one row past the page boundary.
type Metadata struct {
	Page        int64 `json:"page"`
	PageSize    int64 `json:"page_size"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

func NewFilter(page, pageSize int64) Filter {
	return Filter{
		Page:     page,
		PageSize: pageSize,
	}
}

// Limit is the row count to fetch: one past the page size, so the extra row
// signals a next page without requiring a count query.
func (f Filter) Limit() int64 {
	return f.PageSize + 1
}

func (f Filter) Offset() int64 {
	return (f.Page - 1) * f.PageSize
}

func ValidateFilters(filters Filter, v *validator.Validator) {
	v.Check(filters.Page > 0, "page", "must be greater than 0")
	v.Check(filters.Page <= 10_000_000, "page", "must be a maximum of 10_000_000")
	v.Check(filters.PageSize > 0, "page_size", "must be greater than 0")
	v.Check(filters.PageSize <= 100, "page_size", "must be a maximum of 100")
}

// Paginate trims a Limit()-sized fetch down to the page and derives the page
// metadata from what was trimmed.
func Paginate[T any](items []T, f Filter) ([]T, Metadata) {
	metadata := Metadata{
		Page:        f.Page,
		PageSize:    f.PageSize,
		HasPrevious: f.Page > 1,
	}

	if int64(len(items)) > f.PageSize {
		metadata.HasNext = true
		items = items[:f.PageSize]
	}

	return items, metadata
}
