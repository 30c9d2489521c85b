package core

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mingx/socialnet/internal/auth"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockCore(t *testing.T) (*Core, *sql.DB, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCore(db, logger, databaseutils.NewSQLTemplate(db, time.Second)), db, mock
}

func expectGetUserByUsername(mock sqlmock.Sqlmock, username string, id int64) {
	mock.ExpectQuery(`SELECT id, email, username, password`).
		WithArgs(username).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "username", "password"}).
			AddRow(id, username+"@example.com", username, []byte("hash")))
}

func TestCreateFollowInsertsNewPair(t *testing.T) {
	c, _, mock := newMockCore(t)
	createdAt := time.Now()

	expectGetUserByUsername(mock, "bob", 2)
	mock.ExpectQuery(`INSERT INTO follows`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "follower_id", "following_id", "created_at"}).
			AddRow(int64(9), int64(1), int64(2), createdAt))

	follow, created, err := c.CreateFollow(context.Background(), &auth.User{ID: 1, Username: "alice"}, "bob")
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(9), follow.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

// A duplicate pair must come back as the existing row with created=false,
// and the whole sequence must stay runnable on one transaction: the insert
// conflicts without erroring, so the follow-up fetch still works.
func TestCreateFollowExistingPairWithinTransaction(t *testing.T) {
	c, db, mock := newMockCore(t)
	session := databaseutils.NewSession(db)
	createdAt := time.Now()

	mock.ExpectBegin()
	expectGetUserByUsername(mock, "bob", 2)
	mock.ExpectQuery(`INSERT INTO follows`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "follower_id", "following_id", "created_at"}))
	mock.ExpectQuery(`SELECT id, follower_id, following_id, created_at`).
		WithArgs(int64(1), int64(2)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "follower_id", "following_id", "created_at"}).
			AddRow(int64(9), int64(1), int64(2), createdAt))
	mock.ExpectCommit()

	actor := &auth.User{ID: 1, Username: "alice"}
	err := session.DoTransactionally(context.Background(), func(txCtx context.Context) error {
		follow, created, err := c.CreateFollow(txCtx, actor, "bob")
		if err != nil {
			return err
		}

		assert.False(t, created)
		assert.Equal(t, int64(9), follow.ID)
		return nil
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateFollowRejectsSelfFollow(t *testing.T) {
	c, _, mock := newMockCore(t)

	expectGetUserByUsername(mock, "alice", 1)

	_, _, err := c.CreateFollow(context.Background(), &auth.User{ID: 1, Username: "alice"}, "alice")
	assert.ErrorIs(t, err, ErrSelfFollow)
	require.NoError(t, mock.ExpectationsWereMet())
}
