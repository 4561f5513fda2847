package testutil

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/crun/internal/history"
	"github.com/footprint-tools/crun/internal/history/migrations"
)

// NewTestDB creates an in-memory SQLite database with migrations applied.
// The database is automatically closed when the test finishes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err, "failed to open in-memory database")

	// Every pooled connection would otherwise get its own empty database.
	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	err = migrations.Run(db)
	require.NoError(t, err, "failed to run migrations")

	return db
}

// NewTestStore wraps NewTestDB in a history.Store.
func NewTestStore(t *testing.T) *history.Store {
	t.Helper()
	return history.NewWithDB(NewTestDB(t))
}

// SeedRuns records each run into store.
func SeedRuns(t *testing.T, store *history.Store, runs []history.Run) {
	t.Helper()

	for _, run := range runs {
		err := store.Record(run)
		require.NoError(t, err, "failed to seed run: %+v", run)
	}
}
