package core

import (
	"testing"
	"time"

	"github.com/mingx/socialnet/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFeedQueryBaseSet(t *testing.T) {
	query, args := buildFeedQuery(42, FeedFilter{}, filter.NewFilter(1, 20))

	assert.Contains(t, query, "SELECT following_id FROM follows WHERE follower_id = $1")
	assert.NotContains(t, query, "ILIKE")
	assert.NotContains(t, query, "created_at >=")
	assert.Contains(t, query, "ORDER BY p.created_at DESC, p.id DESC")
	assert.Contains(t, query, "LIMIT $2 OFFSET $3")
	assert.Equal(t, []any{int64(42), int64(21), int64(0)}, args)
}

func TestBuildFeedQueryKeyword(t *testing.T) {
	query, args := buildFeedQuery(1, FeedFilter{Keyword: "gopher"}, filter.NewFilter(1, 20))

	assert.Contains(t, query, "p.content ILIKE $2")
	assert.Contains(t, query, "LIMIT $3 OFFSET $4")
	assert.Equal(t, "%gopher%", args[1])
}

func TestBuildFeedQueryDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 23, 59, 59, 0, time.UTC)

	query, args := buildFeedQuery(1, FeedFilter{StartDate: &start, EndDate: &end}, filter.NewFilter(1, 20))

	assert.Contains(t, query, "p.created_at >= $2 AND p.created_at <= $3")
	assert.Contains(t, query, "LIMIT $4 OFFSET $5")
	require.Len(t, args, 5)
	assert.Equal(t, start, args[1])
	assert.Equal(t, end, args[2])
}

func TestBuildFeedQueryKeywordAndDateRange(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	query, args := buildFeedQuery(1, FeedFilter{Keyword: "go", StartDate: &start, EndDate: &end}, filter.NewFilter(2, 10))

	assert.Contains(t, query, "p.content ILIKE $2")
	assert.Contains(t, query, "p.created_at >= $3 AND p.created_at <= $4")
	assert.Contains(t, query, "LIMIT $5 OFFSET $6")
	require.Len(t, args, 6)
	assert.Equal(t, int64(11), args[4])
	assert.Equal(t, int64(10), args[5])
}

func TestBuildFeedQuerySortByPopularity(t *testing.T) {
	query, _ := buildFeedQuery(1, FeedFilter{SortBy: SortByPopularity}, filter.NewFilter(1, 20))

	// Popularity orders by like count with a creation-time tie-break, so
	// equal counts keep a stable order across requests.
	assert.Contains(t, query, "ORDER BY (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) DESC, p.created_at DESC, p.id DESC")
}

func TestBuildFeedQueryUnknownSortFallsBackToDate(t *testing.T) {
	query, _ := buildFeedQuery(1, FeedFilter{SortBy: "whatever"}, filter.NewFilter(1, 20))

	assert.NotContains(t, query, "COUNT(*)")
	assert.Contains(t, query, "ORDER BY p.created_at DESC, p.id DESC")
}
