package core

import (
	"context"
	"strconv"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/filter"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

const (
	SortByDate       = "date"
	SortByPopularity = "popularity"
)

// FeedFilter holds the optional feed predicates. The date range applies only
// when both ends are present.
type FeedFilter struct {
	Keyword   string
	StartDate *time.Time
	EndDate   *time.Time
	SortBy    string
}

// buildFeedQuery composes the feed SQL for an actor: posts authored by the
// users the actor follows, optional keyword and inclusive date-range
// predicates, and a deterministic ordering (popularity sorts tie-break on
// creation time, then id). Kept free of database access so predicate and
// order composition stay unit-testable.
func buildFeedQuery(actorID int64, feedFilter FeedFilter, f filter.Filter) (string, []any) {
	query := `
		SELECT p.id, p.author_id, p.content, p.media, p.created_at
		FROM posts p
		WHERE p.author_id IN (SELECT following_id FROM follows WHERE follower_id = $1)`

	args := []any{actorID}

	if feedFilter.Keyword != "" {
		args = append(args, "%"+feedFilter.Keyword+"%")
		query += `
		AND p.content ILIKE $2`
	}

	if feedFilter.StartDate != nil && feedFilter.EndDate != nil {
		args = append(args, *feedFilter.StartDate, *feedFilter.EndDate)
		query += `
		AND p.created_at >= $` + strconv.Itoa(len(args)-1) + ` AND p.created_at <= $` + strconv.Itoa(len(args))
	}

	switch feedFilter.SortBy {
	case SortByPopularity:
		query += `
		ORDER BY (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) DESC, p.created_at DESC, p.id DESC`
	default:
		query += `
		ORDER BY p.created_at DESC, p.id DESC`
	}

	args = append(args, f.Limit(), f.Offset())
	query += `
		LIMIT $` + strconv.Itoa(len(args)-1) + ` OFFSET $` + strconv.Itoa(len(args))

	return query, args
}

// ListFeed returns one page of the actor's personalized feed. Ordering is
// deterministic for identical inputs over identical data.
func (c *Core) ListFeed(ctx context.Context, actorID int64, feedFilter FeedFilter, f filter.Filter) ([]*models.Post, filter.Metadata, error) {
	query, args := buildFeedQuery(actorID, feedFilter, f)

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, args...)
	if err != nil {
		return nil, filter.Metadata{}, xerrors.New(err)
	}

	posts, metadata := filter.Paginate(posts, f)
	return posts, metadata, nil
}
