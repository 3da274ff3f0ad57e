package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"shortreel/internal/config"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is bumped whenever schema.sql changes incompatibly.
const schemaVersion = 1

// DatabaseFile is the ledger file name beneath the log directory.
const DatabaseFile = "history.db"

// ErrSchemaMismatch indicates the database schema version doesn't match the expected version.
var ErrSchemaMismatch = errors.New("schema version mismatch")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
)

// Store manages the run ledger.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to the ledger in the configured log directory.
func Open(cfg *config.Config) (*Store, error) {
	return OpenPath(filepath.Join(cfg.Paths.LogDir, DatabaseFile))
}

// OpenPath connects to the ledger at dbPath, creating it when absent.
func OpenPath(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}
	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset history)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// Record appends a run to the ledger and returns it with its assigned ID.
func (s *Store) Record(ctx context.Context, run Run) (Run, error) {
	if s == nil || s.db == nil {
		return run, errors.New("history store not open")
	}
	if strings.TrimSpace(run.Project) == "" || strings.TrimSpace(run.Stage) == "" {
		return run, errors.New("history run requires project and stage")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = StatusCompleted
	}
	ctx = ensureContext(ctx)

	var res sql.Result
	err := retryOnBusy(ctx, func() error {
		var execErr error
		res, execErr = s.db.ExecContext(ctx,
			`INSERT INTO stage_runs (run_id, project, stage, status, output_path, error_message, started_at, duration_ms)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.RunID, run.Project, run.Stage, string(run.Status), run.Output, run.Error,
			run.StartedAt.UTC().Format(time.RFC3339Nano), run.Duration.Milliseconds(),
		)
		return execErr
	})
	if err != nil {
		return run, fmt.Errorf("insert stage run: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		run.ID = id
	}
	return run, nil
}

// List returns runs newest first.
func (s *Store) List(ctx context.Context, opts ListOptions) ([]Run, error) {
	if s == nil || s.db == nil {
		return nil, errors.New("history store not open")
	}
	query := `SELECT id, run_id, project, stage, status, output_path, error_message, started_at, duration_ms FROM stage_runs`
	var (
		where []string
		args  []any
	)
	if p := strings.TrimSpace(opts.Project); p != "" {
		where = append(where, "project = ?")
		args = append(args, p)
	}
	if r := strings.TrimSpace(opts.RunID); r != "" {
		where = append(where, "run_id = ?")
		args = append(args, r)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id DESC"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ensureContext(ctx), query, args...)
	if err != nil {
		return nil, fmt.Errorf("query stage runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			status     string
			startedAt  string
			durationMS int64
		)
		if err := rows.Scan(&run.ID, &run.RunID, &run.Project, &run.Stage, &status, &run.Output, &run.Error, &startedAt, &durationMS); err != nil {
			return nil, fmt.Errorf("scan stage run: %w", err)
		}
		run.Status = Status(status)
		run.Duration = time.Duration(durationMS) * time.Millisecond
		if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
			run.StartedAt = ts
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Latest returns the most recent run per stage for a project.
func (s *Store) Latest(ctx context.Context, project string) (map[string]Run, error) {
	runs, err := s.List(ctx, ListOptions{Project: project})
	if err != nil {
		return nil, err
	}
	latest := make(map[string]Run)
	for _, run := range runs {
		if _, ok := latest[run.Stage]; !ok {
			latest[run.Stage] = run
		}
	}
	return latest, nil
}

func ensureContext(ctx context.Context) context.Context {
	if ctx != nil {
		return ctx
	}
	return context.Background()
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}
