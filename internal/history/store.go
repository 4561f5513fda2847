// Package history persists a log of executed commands in sqlite.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/footprint-tools/crun/internal/history/migrations"
	"github.com/footprint-tools/crun/internal/log"
)

// Fixed width keeps started_at lexically sortable.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Store wraps the run history database.
type Store struct {
	db   *sql.DB
	path string
}

// New opens the database at path and runs pending migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err = migrations.Run(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	// After migrations so the file exists on disk.
	setDBPermissions(path)

	log.Debug("history: database ready at %s", path)
	return &Store{db: db, path: path}, nil
}

// NewWithDB creates a Store from an already migrated connection.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying connection.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func setDBPermissions(path string) {
	if path == ":memory:" {
		return
	}
	_ = os.Chmod(path, 0600)
	_ = os.Chmod(path+"-wal", 0600)
	_ = os.Chmod(path+"-shm", 0600)
}

// Record inserts run. A zero ID is replaced with a fresh UUID and a zero
// StartedAt with the current time.
func (s *Store) Record(run Run) error {
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := s.db.Exec(
		`INSERT INTO runs
		 (id, tree, path, command_line, working_directory, started_at, duration_ms, exit_code, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID.String(),
		run.Tree,
		run.Path,
		run.CommandLine,
		run.WorkingDirectory,
		run.StartedAt.UTC().Format(timeLayout),
		run.Duration.Milliseconds(),
		run.ExitCode,
		string(run.Status),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns runs newest first.
func (s *Store) List(filter Filter) ([]Run, error) {
	query := `
		SELECT id, tree, path, command_line, working_directory,
		       started_at, duration_ms, exit_code, status
		FROM runs
	`

	var (
		clauses []string
		args    []any
	)

	if filter.Tree != "" {
		clauses = append(clauses, "tree = ?")
		args = append(args, filter.Tree)
	}

	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}

	query += " ORDER BY started_at DESC, rowid DESC"

	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		r          Run
		id         string
		startedAt  string
		durationMS int64
		status     string
	)

	if err := rows.Scan(
		&id, &r.Tree, &r.Path, &r.CommandLine, &r.WorkingDirectory,
		&startedAt, &durationMS, &r.ExitCode, &status,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return Run{}, fmt.Errorf("parse run id %q: %w", id, err)
	}
	r.ID = parsed

	r.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return Run{}, fmt.Errorf("parse started_at %q: %w", startedAt, err)
	}

	r.Duration = time.Duration(durationMS) * time.Millisecond
	r.Status = Status(status)
	return r, nil
}

var _ Recorder = (*Store)(nil)
