package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var comment = &models.Comment{}

	if err := rows.Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return comment, nil
}

func (c *Core) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	const insertSQL = `
		INSERT INTO comments (post_id, author_id, content, created_at)
		VALUES ($1, $2, $3, now())
		RETURNING id, post_id, author_id, content, created_at
	`

	newComment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanComment,
		comment.PostID, comment.AuthorID, comment.Content)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return newComment, nil
}

func (c *Core) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	const query = `
		SELECT id, post_id, author_id, content, created_at
		FROM comments
		WHERE id = $1
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanComment, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return comment, nil
}

func (c *Core) GetCommentsByPostID(ctx context.Context, postID int64) ([]*models.Comment, error) {
	const query = `
		SELECT id, post_id, author_id, content, created_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at DESC, id DESC
	`

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanComment, postID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return comments, nil
}

func (c *Core) DeleteComment(ctx context.Context, id int64) error {
	const deleteSQL = `
		DELETE FROM comments
		WHERE id = $1
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, id)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}
