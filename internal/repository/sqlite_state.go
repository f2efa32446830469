package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/db"
)

// SQLiteStateRepo implements StateRepo using a SQLite database.
type SQLiteStateRepo struct {
	db db.DBTX
}

func NewSQLiteStateRepo(conn db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: conn}
}

func (r *SQLiteStateRepo) Get(ctx context.Context, key StateKey) (*StateEntry, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM client_state WHERE key = ?`, string(key))

	var (
		e         StateEntry
		k, value  string
		updatedAt string
	)
	if err := row.Scan(&k, &value, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client state %q: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client state %q: %w", key, err)
	}
	e.Key = StateKey(k)
	e.Value = []byte(value)
	e.UpdatedAt = parseTime(updatedAt)
	return &e, nil
}

func (r *SQLiteStateRepo) List(ctx context.Context) ([]StateEntry, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value, updated_at FROM client_state ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("listing client state: %w", err)
	}
	defer rows.Close()

	var out []StateEntry
	for rows.Next() {
		var k, value, updatedAt string
		if err := rows.Scan(&k, &value, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning client state: %w", err)
		}
		out = append(out, StateEntry{Key: StateKey(k), Value: []byte(value), UpdatedAt: parseTime(updatedAt)})
	}
	return out, rows.Err()
}

func (r *SQLiteStateRepo) Put(ctx context.Context, key StateKey, value []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO client_state (key, value, updated_at) VALUES (?, ?, ?)`,
		string(key), string(value), nowUTC())
	if err != nil {
		return fmt.Errorf("storing client state %q: %w", key, err)
	}
	return nil
}

func (r *SQLiteStateRepo) Delete(ctx context.Context, key StateKey) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM client_state WHERE key = ?`, string(key)); err != nil {
		return fmt.Errorf("deleting client state %q: %w", key, err)
	}
	return nil
}
