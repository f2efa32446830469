package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// DBTX is what repositories run statements against: the pool itself or an
// open transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)

// UnitOfWork runs fn inside a single transaction. A non-nil error from fn
// rolls back every statement fn issued.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error
}

type UoWOption func(*SQLiteUnitOfWork)

// WithTxLogger logs rollbacks at debug level.
func WithTxLogger(l *zap.Logger) UoWOption {
	return func(u *SQLiteUnitOfWork) {
		if l != nil {
			u.log = l
		}
	}
}

// SQLiteUnitOfWork runs client state writes in database/sql transactions.
type SQLiteUnitOfWork struct {
	db  *sql.DB
	log *zap.Logger
}

func NewSQLiteUnitOfWork(db *sql.DB, opts ...UoWOption) *SQLiteUnitOfWork {
	u := &SQLiteUnitOfWork{db: db, log: zap.NewNop()}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

func (u *SQLiteUnitOfWork) WithinTx(ctx context.Context, fn func(ctx context.Context, tx DBTX) error) error {
	tx, err := u.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning client state transaction: %w", err)
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		// Also runs while a panic from fn unwinds.
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			u.log.Warn("client state rollback failed", zap.Error(rbErr))
		}
	}()

	if err := fn(ctx, tx); err != nil {
		u.log.Debug("client state transaction rolled back", zap.Error(err))
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing client state: %w", err)
	}
	committed = true
	return nil
}
