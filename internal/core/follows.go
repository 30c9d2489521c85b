package core

import (
	"context"
	"database/sql"
	"errors"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanFollow(rows *sql.Rows) (*models.Follow, error) {
	var follow = &models.Follow{}

	if err := rows.Scan(
		&follow.ID,
		&follow.FollowerID,
		&follow.FollowingID,
		&follow.CreatedAt,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return follow, nil
}

// CreateFollow inserts the (follower, followee) pair with get-or-create
// semantics, and the returned flag reports whether a new row was created.
// The unique constraint, not a pre-check, resolves concurrent calls. The
// insert uses ON CONFLICT DO NOTHING so a duplicate pair yields zero rows
// instead of an error: a unique-violation error would abort the surrounding
// transaction and the fallback fetch could never run on it.
func (c *Core) CreateFollow(ctx context.Context, follower *auth.User, followeeUsername string) (*models.Follow, bool, error) {
	followee, err := c.GetUserByUsername(ctx, followeeUsername)
	if err != nil {
		return nil, false, err
	}

	if followee.ID == follower.ID {
		return nil, false, xerrors.New(ErrSelfFollow)
	}

	const insertSQL = `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (follower_id, following_id) DO NOTHING
		RETURNING id, follower_id, following_id, created_at
	`

	follow, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanFollow, follower.ID, followee.ID)
	switch {
	case err == nil:
		return follow, true, nil
	case errors.Is(err, sql.ErrNoRows):
		existing, err := c.getFollow(ctx, follower.ID, followee.ID)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	default:
		return nil, false, xerrors.New(err)
	}
}

func (c *Core) getFollow(ctx context.Context, followerID, followingID int64) (*models.Follow, error) {
	const query = `
		SELECT id, follower_id, following_id, created_at
		FROM follows
		WHERE follower_id = $1 AND following_id = $2
	`

	follow, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanFollow, followerID, followingID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return follow, nil
}

// DeleteFollow removes the relationship. An absent row is not an error, only
// an unknown followee is.
func (c *Core) DeleteFollow(ctx context.Context, follower *auth.User, followeeUsername string) error {
	followee, err := c.GetUserByUsername(ctx, followeeUsername)
	if err != nil {
		return err
	}

	const deleteSQL = `
		DELETE FROM follows
		WHERE follower_id = $1 AND following_id = $2
	`

	if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, deleteSQL, follower.ID, followee.ID); err != nil {
		return xerrors.New(err)
	}

	return nil
}

// GetFollowingUserList returns the users that userID follows.
func (c *Core) GetFollowingUserList(ctx context.Context, userID int64) ([]*auth.User, error) {
	const query = `
		SELECT u.id, u.email, u.username, u.password
		FROM users u JOIN follows f ON u.id = f.following_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return users, nil
}

// GetFollowersUserList returns the users that follow userID.
func (c *Core) GetFollowersUserList(ctx context.Context, userID int64) ([]*auth.User, error) {
	const query = `
		SELECT u.id, u.email, u.username, u.password
		FROM users u JOIN follows f ON u.id = f.follower_id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return users, nil
}
