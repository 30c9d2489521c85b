package filter

import (
	"testing"

	"github.com/mingx/socialnet/internal/validator"
	"github.com/stretchr/testify/assert"
)

func TestLimitAndOffset(t *testing.T) {
	f := NewFilter(3, 20)

	// Limit fetches one past the page size to detect a next page.
	assert.Equal(t, int64(21), f.Limit())
	assert.Equal(t, int64(40), f.Offset())

	first := NewFilter(1, 20)
	assert.Equal(t, int64(0), first.Offset())
}

func TestValidateFilters(t *testing.T) {
	tests := []struct {
		name     string
		page     int64
		pageSize int64
		valid    bool
	}{
		{"valid", 1, 20, true},
		{"zero page", 0, 20, false},
		{"negative page", -1, 20, false},
		{"zero page size", 1, 0, false},
		{"page size too large", 1, 101, false},
		{"page too large", 10_000_001, 20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := validator.New()
			ValidateFilters(NewFilter(tt.page, tt.pageSize), v)
			assert.Equal(t, tt.valid, v.IsValid())
		})
	}
}

func TestPaginateShortPage(t *testing.T) {
	items := []string{"a", "b", "c"}

	page, metadata := Paginate(items, NewFilter(1, 20))

	assert.Equal(t, items, page)
	assert.False(t, metadata.HasNext)
	assert.False(t, metadata.HasPrevious)
	assert.Equal(t, int64(1), metadata.Page)
}

func TestPaginateFullPageTrimsExtraRow(t *testing.T) {
	items := []int{1, 2, 3, 4}

	page, metadata := Paginate(items, NewFilter(2, 3))

	assert.Equal(t, []int{1, 2, 3}, page)
	assert.True(t, metadata.HasNext)
	assert.True(t, metadata.HasPrevious)
}

func TestPaginateExactPageBoundary(t *testing.T) {
	items := []int{1, 2, 3}

	page, metadata := Paginate(items, NewFilter(1, 3))

	assert.Equal(t, []int{1, 2, 3}, page)
	assert.False(t, metadata.HasNext)
}
