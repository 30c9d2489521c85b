package core

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanLike(rows *sql.Rows) (*models.Like, error) {
	var like = &models.Like{}

	if err := rows.Scan(
		&like.ID,
		&like.UserID,
		&like.PostID,
		&like.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return like, nil
}

// CreateLike inserts the (user, post) pair. Unlike CreateFollow, a duplicate
// is reported as ErrAlreadyLiked rather than returned silently.
func (c *Core) CreateLike(ctx context.Context, userID, postID int64) (*models.Like, error) {
	if _, err := c.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	const insertSQL = `
		INSERT INTO likes (user_id, post_id, created_at)
		VALUES ($1, $2, now())
		RETURNING id, user_id, post_id, created_at
	`

	like, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanLike, userID, postID)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), `duplicate key value violates unique constraint`):
			return nil, xerrors.New(ErrAlreadyLiked)
		default:
			return nil, xerrors.New(err)
		}
	}

	return like, nil
}

// DeleteLike is idempotent: removing an absent like succeeds.
func (c *Core) DeleteLike(ctx context.Context, userID, postID int64) error {
	if _, err := c.GetPostByID(ctx, postID); err != nil {
		return err
	}

	const deleteSQL = `
		DELETE FROM likes
		WHERE user_id = $1 AND post_id = $2
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, userID, postID); err != nil {
		return xerrors.New(err)
	}

	return nil
}
