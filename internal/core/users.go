package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/internal/utils/stringutils"
	"github.com/mingx/socialnet/models"
)

func scanUser(rows *sql.Rows) (*auth.User, error) {
	var user = &auth.User{}

	if err := rows.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Password,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

// CreateUser inserts the user and its profile in one transaction: either
// both exist afterwards or neither does. The given profile may carry initial
// bio/picture values; a nil profile creates an empty one.
func (c *Core) CreateUser(ctx context.Context, user *auth.User, profile *models.Profile) (*auth.User, error) {
	const insertUserSQL = `
		INSERT INTO users (email, username, password)
		VALUES ($1, $2, $3)
		RETURNING id, email, username, password
	`

	const insertProfileSQL = `
		INSERT INTO profiles (user_id, bio, profile_picture, location, website, cover_photo)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	if profile == nil {
		profile = &models.Profile{}
	}

	newUser, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertUserSQL, scanUser,
		user.Email, user.Username, user.Password)
	if err != nil {
		switch {
		case strings.Contains(err.Error(), `users_username_key`):
			return nil, xerrors.New(ErrDuplicateUsername)
		case strings.Contains(err.Error(), `users_email_key`):
			return nil, xerrors.New(ErrDuplicateEmail)
		default:
			return nil, xerrors.New(err)
		}
	}

	_, err = databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertProfileSQL,
		func(rows *sql.Rows) (int64, error) {
			var id int64
			if err := rows.Scan(&id); err != nil {
				return 0, xerrors.New(err)
			}
			return id, nil
		},
		newUser.ID, profile.Bio, profile.ProfilePicture, profile.Location, profile.Website, profile.CoverPhoto)
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("user created", "user_id", newUser.ID, "username", newUser.Username)
	return newUser, nil
}

func (c *Core) GetUserByUsername(ctx context.Context, username string) (*auth.User, error) {
	const query = `
		SELECT id, email, username, password
		FROM users
		WHERE username = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, username)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	const query = `
		SELECT id, email, username, password
		FROM users
		WHERE email = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, email)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	const query = `
		SELECT id, email, username, password
		FROM users
		WHERE id = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		default:
			return nil, xerrors.New(err)
		}
	}

	return user, nil
}

func (c *Core) GetUsersByIdList(ctx context.Context, userIdList []int64) ([]*auth.User, error) {
	if len(userIdList) == 0 {
		return []*auth.User{}, nil
	}

	placeholders, args := stringutils.INClause(userIdList, 1)
	query := fmt.Sprintf(`
		SELECT id, email, username, password
		FROM users
		WHERE id IN (%s)
	`, strings.Join(placeholders, ", "))

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return users, nil
}

// UpdateUser rewrites the mutable user columns. The caller is responsible
// for the ownership check and for hashing any new password beforehand.
func (c *Core) UpdateUser(ctx context.Context, user *auth.User) (*auth.User, error) {
	const query = `
		UPDATE users
		SET email = $1, username = $2, password = $3
		WHERE id = $4
		RETURNING id, email, username, password
	`

	updatedUser, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser,
		user.Email, user.Username, user.Password, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(NoRecordFound)
		case strings.Contains(err.Error(), `users_username_key`):
			return nil, xerrors.New(ErrDuplicateUsername)
		case strings.Contains(err.Error(), `users_email_key`):
			return nil, xerrors.New(ErrDuplicateEmail)
		default:
			return nil, xerrors.New(err)
		}
	}

	c.log.Info("user updated", "user_id", updatedUser.ID, "username", updatedUser.Username)
	return updatedUser, nil
}

// DeleteUser removes the user and everything hanging off it. Runs as a
// sequence of single-table deletes, so the caller must wrap it in a
// transaction for the cascade to be atomic.
func (c *Core) DeleteUser(ctx context.Context, userID int64) error {
	deletes := []string{
		`DELETE FROM likes WHERE user_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM reposts WHERE user_id = $1 OR original_post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM comments WHERE author_id = $1 OR post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM post_hashtags WHERE post_id IN (SELECT id FROM posts WHERE author_id = $1)`,
		`DELETE FROM messages WHERE sender_id = $1 OR recipient_id = $1`,
		`DELETE FROM notifications WHERE recipient_id = $1`,
		`DELETE FROM follows WHERE follower_id = $1 OR following_id = $1`,
		`DELETE FROM posts WHERE author_id = $1`,
		`DELETE FROM profiles WHERE user_id = $1`,
		`DELETE FROM users WHERE id = $1`,
	}

	for _, stmt := range deletes {
		if _, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, stmt, userID); err != nil {
			return xerrors.New(err)
		}
	}

	c.log.Info("user deleted", "user_id", userID)
	return nil
}
