package testutil

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/ejournal/internal/db"
	"github.com/stretchr/testify/require"
)

// NewTestDB opens a migrated in-memory client state database that is closed
// with the test.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err, "opening client state database")
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func NewTestUoW(database *sql.DB) db.UnitOfWork {
	return db.NewSQLiteUnitOfWork(database)
}
