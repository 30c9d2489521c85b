package core

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanRepost(rows *sql.Rows) (*models.Repost, error) {
	var repost = &models.Repost{}

	if err := rows.Scan(
		&repost.ID,
		&repost.UserID,
		&repost.OriginalPostID,
		&repost.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return repost, nil
}

// CreateRepost mirrors CreateLike: a duplicate pair is an error, not a
// silent return.
func (c *Core) CreateRepost(ctx context.Context, userID, postID int64) (*models.Repost, error) {
	if _, err := c.GetPostByID(ctx, postID); err != nil {
		return nil, err
	}

	const insertSQL = `
		INSERT INTO reposts (user_id, original_post_id, created_at)
		VALUES ($1, $2, now())
		RETURNING id, user_id, original_post_id, created_at
	`

	repost, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanRepost, userID, postID)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), `duplicate key value violates unique constraint`):
			return nil, xerrors.New(ErrAlreadyReposted)
		default:
			return nil, xerrors.New(err)
		}
	}

	return repost, nil
}

// DeleteRepost is idempotent like DeleteLike.
func (c *Core) DeleteRepost(ctx context.Context, userID, postID int64) error {
	if _, err := c.GetPostByID(ctx, postID); err != nil {
		return err
	}

	const deleteSQL = `
		DELETE FROM reposts
		WHERE user_id = $1 AND original_post_id = $2
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, userID, postID); err != nil {
		return xerrors.New(err)
	}

	return nil
}
