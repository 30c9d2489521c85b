package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/filter"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/stringutils"
	"github.com/mingx/socialnet/models"
)

func scanPost(rows *sql.Rows) (*models.Post, error) {
	var post = &models.Post{}

	if err := rows.Scan(
		&post.ID,
		&post.AuthorID,
		&post.Content,
		&post.Media,
		&post.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return post, nil
}

func (c *Core) CreatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	const insertSQL = `
		INSERT INTO posts (author_id, content, media, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, author_id, content, media, created_at
	`

	newPost, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanPost,
		post.AuthorID, post.Content, post.Media)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return newPost, nil
}

func (c *Core) GetPostByID(ctx context.Context, id int64) (*models.Post, error) {
	const query = `
		SELECT id, author_id, content, media, created_at
		FROM posts
		WHERE id = $1
	`

	post, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanPost, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return post, nil
}

// GetPosts returns all posts, newest first, paginated.
func (c *Core) GetPosts(ctx context.Context, f filter.Filter) ([]*models.Post, filter.Metadata, error) {
	const query = `
		SELECT id, author_id, content, media, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, f.Limit(), f.Offset())
	if err != nil {
		return nil, filter.Metadata{}, xerrors.New(err)
	}

	posts, metadata := filter.Paginate(posts, f)
	return posts, metadata, nil
}

// GetTrendingPosts orders every post by like count, newest first among ties.
// There is no time window or decay: an old post with many likes stays on top.
func (c *Core) GetTrendingPosts(ctx context.Context, f filter.Filter) ([]*models.Post, filter.Metadata, error) {
	const query = `
		SELECT p.id, p.author_id, p.content, p.media, p.created_at
		FROM posts p
		LEFT JOIN likes l ON l.post_id = p.id
		GROUP BY p.id
		ORDER BY COUNT(l.id) DESC, p.created_at DESC, p.id DESC
		LIMIT $1 OFFSET $2
	`

	posts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanPost, f.Limit(), f.Offset())
	if err != nil {
		return nil, filter.Metadata{}, xerrors.New(err)
	}

	posts, metadata := filter.Paginate(posts, f)
	return posts, metadata, nil
}

// UpdatePost rewrites content and media. Author is immutable after creation.
func (c *Core) UpdatePost(ctx context.Context, post *models.Post) (*models.Post, error) {
	const query = `
		UPDATE posts
		SET content = $1, media = $2
		WHERE id = $3
		RETURNING id, author_id, content, media, created_at
	`

	updated, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanPost,
		post.Content, post.Media, post.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return updated, nil
}

// DeletePost removes the post together with its likes, reposts, comments and
// hashtag links. The caller must wrap it in a transaction.
func (c *Core) DeletePost(ctx context.Context, postID int64) error {
	deletes := []string{
		`DELETE FROM likes WHERE post_id = $1`,
		`DELETE FROM reposts WHERE original_post_id = $1`,
		`DELETE FROM comments WHERE post_id = $1`,
		`DELETE FROM post_hashtags WHERE post_id = $1`,
		`DELETE FROM posts WHERE id = $1`,
	}

	for _, stmt := range deletes {
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, stmt, postID); err != nil {
			return xerrors.New(err)
		}
	}

	return nil
}

// LikeCountByPostId returns the like count for each given post id. Posts
// with no likes are absent from the map.
func (c *Core) LikeCountByPostId(ctx context.Context, postIdList []int64) (map[int64]int64, error) {
	if len(postIdList) == 0 {
		return map[int64]int64{}, nil
	}

	placeholders, args := stringutils.INClause(postIdList, 1)
	query := fmt.Sprintf(`
		SELECT post_id, COUNT(*)
		FROM likes
		WHERE post_id IN (%s)
		GROUP BY post_id
	`, strings.Join(placeholders, ", "))

	type postLikeCount struct {
		postID int64
		count  int64
	}

	counts, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (postLikeCount, error) {
		var plc postLikeCount
		if err := rows.Scan(&plc.postID, &plc.count); err != nil {
			return postLikeCount{}, xerrors.New(err)
		}
		return plc, nil
	}, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	result := make(map[int64]int64, len(counts))
	for _, plc := range counts {
		result[plc.postID] = plc.count
	}
	return result, nil
}
