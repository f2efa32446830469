package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/ejournal/internal/db"
)

// SQLiteInstanceRepo implements InstanceRepo using a SQLite database.
type SQLiteInstanceRepo struct {
	db db.DBTX
}

func NewSQLiteInstanceRepo(conn db.DBTX) *SQLiteInstanceRepo {
	return &SQLiteInstanceRepo{db: conn}
}

func (r *SQLiteInstanceRepo) Get(ctx context.Context) (*Instance, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT instance_id, api_url, created_at FROM client_instance WHERE id = 'default'`)

	var (
		in        Instance
		createdAt string
	)
	if err := row.Scan(&in.InstanceID, &in.APIURL, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("client instance: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning client instance: %w", err)
	}
	in.CreatedAt = parseTime(createdAt)
	return &in, nil
}

func (r *SQLiteInstanceRepo) SetAPIURL(ctx context.Context, url string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE client_instance SET api_url = ? WHERE id = 'default'`, url)
	if err != nil {
		return fmt.Errorf("updating client instance: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("client instance: %w", ErrNotFound)
	}
	return nil
}
