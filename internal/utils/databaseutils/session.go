package databaseutils

import (
	"context"
	"database/sql"
	"fmt"
	"log"
)

type txKey struct{}

// SQLExecutor is the method set shared by *sql.DB and *sql.Tx, so query code
// works the same inside and outside a transaction.
type SQLExecutor interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Session manages database transactions. A transactional session carries its
// *sql.Tx inside the context it hands to the callback, where query helpers
// pick it up via GetSQLExecutor.
type Session interface {
	BeginTx(ctx context.Context, opts *sql.TxOptions) (Session, error)

	// DoTransactionally runs fn inside a new transaction. The context passed
	// to fn contains the transaction. Commit on nil error, rollback otherwise.
	DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) error

	Rollback() error
	Commit() error

	// Context returns the context associated with this session. For a
	// transactional session it contains the *sql.Tx.
	Context() context.Context
}

type sqlSession struct {
	db  *sql.DB
	tx  *sql.Tx
	ctx context.Context
}

func NewSession(db *sql.DB) Session {
	return &sqlSession{db: db}
}

func (s *sqlSession) BeginTx(ctx context.Context, opts *sql.TxOptions) (Session, error) {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("session: failed to begin transaction: %w", err)
	}

	return &sqlSession{
		db:  s.db,
		tx:  tx,
		ctx: context.WithValue(ctx, txKey{}, tx),
	}, nil
}

func (s *sqlSession) DoTransactionally(ctx context.Context, fn func(txCtx context.Context) error) (err error) {
	session, err := s.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = session.Rollback()
			panic(p)
		} else if err != nil {
			if rollbackErr := session.Rollback(); rollbackErr != nil {
				log.Printf("session: rollback failed: %v (original error: %v)", rollbackErr, err)
			}
		} else {
			if commitErr := session.Commit(); commitErr != nil {
				err = fmt.Errorf("session: failed to commit transaction: %w", commitErr)
			}
		}
	}()

	err = fn(session.Context())
	return err
}

func (s *sqlSession) Rollback() error {
	if s.tx == nil {
		return fmt.Errorf("session: no active transaction to rollback")
	}
	return s.tx.Rollback()
}

func (s *sqlSession) Commit() error {
	if s.tx == nil {
		return fmt.Errorf("session: no active transaction to commit")
	}
	return s.tx.Commit()
}

func (s *sqlSession) Context() context.Context {
	return s.ctx
}

// GetSQLExecutor returns the *sql.Tx stored in ctx by a transactional
// session, or fallbackDB when no transaction is active.
func GetSQLExecutor(ctx context.Context, fallbackDB *sql.DB) SQLExecutor {
	executor := ctx.Value(txKey{})
	if executor == nil {
		return fallbackDB
	}

	tx, ok := executor.(*sql.Tx)
	if !ok {
		panic(fmt.Sprintf("session: value in context for txKey is not a *sql.Tx, but %T", executor))
	}
	return tx
}

// DoTransactionally is the generic variant for callbacks that produce a value.
func DoTransactionally[T any](ctx context.Context, session Session, fn func(txCtx context.Context) (T, error)) (T, error) {
	var result T
	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		r, err := fn(txCtx)
		result = r
		return err
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return result, nil
}
