package runs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"mediasort/internal/config"
	"mediasort/internal/services"
)

// Store manages run-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const timeLayout = time.RFC3339Nano

// Open initializes or connects to the runs database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.DatabasePath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
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

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun persists a run and its entries atomically. A missing run ID is
// assigned. The stored run is returned.
func (s *Store) RecordRun(ctx context.Context, run Run, entries []Entry) (*Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin run tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, input_dir, output_dir, started_at, finished_at, moved, copied, skipped, renamed, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.InputDir, run.OutputDir,
		run.StartedAt.UTC().Format(timeLayout), run.FinishedAt.UTC().Format(timeLayout),
		run.Moved, run.Copied, run.Skipped, run.Renamed, run.Failed)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}

	for i, entry := range entries {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO run_entries (run_id, position, source_path, destination_path, outcome, reason, timestamp_source)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, entry.Source, nullableString(entry.Destination), entry.Outcome,
			nullableString(entry.Reason), nullableString(entry.TimestampSource))
		if err != nil {
			return nil, fmt.Errorf("insert run entry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run: %w", err)
	}
	return &run, nil
}

const runColumns = "id, input_dir, output_dir, started_at, finished_at, moved, copied, skipped, renamed, failed"

// ListRuns returns the most recent runs, newest first. A non-positive limit
// returns everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var result []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *run)
	}
	return result, rows.Err()
}

// GetRun fetches one run and its ordered entries.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id)
	run, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, services.Wrap(services.ErrNotFound, "runs", "get", id, nil)
		}
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, source_path, destination_path, outcome, reason, timestamp_source
		 FROM run_entries WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list run entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry  Entry
			dest   sql.NullString
			reason sql.NullString
			source sql.NullString
		)
		if err := rows.Scan(&entry.Position, &entry.Source, &dest, &entry.Outcome, &reason, &source); err != nil {
			return nil, nil, fmt.Errorf("scan run entry: %w", err)
		}
		entry.RunID = id
		entry.Destination = dest.String
		entry.Reason = reason.String
		entry.TimestampSource = source.String
		entries = append(entries, entry)
	}
	return run, entries, rows.Err()
}

// Clear removes all recorded runs and returns the number deleted.
func (s *Store) Clear(ctx context.Context) (int, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count cleared runs: %w", err)
	}
	return int(affected), nil
}

// CheckHealth returns diagnostic information about the runs database.
func (s *Store) CheckHealth(ctx context.Context) (DatabaseHealth, error) {
	health := DatabaseHealth{
		DBPath:        s.path,
		SchemaVersion: schemaVersion,
	}

	info, err := os.Stat(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return health, nil
		}
		return health, fmt.Errorf("stat runs database: %w", err)
	}
	if info.IsDir() {
		return health, fmt.Errorf("runs database path %q is a directory", s.path)
	}
	health.DatabaseExists = true

	connCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(connCtx); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("ping runs database: %w", err)
	}
	health.DatabaseReadable = true

	if err := s.db.QueryRowContext(connCtx, "SELECT COUNT(1) FROM runs").Scan(&health.TotalRuns); err != nil {
		health.Error = err.Error()
		return health, fmt.Errorf("count runs: %w", err)
	}
	return health, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (*Run, error) {
	var (
		run         Run
		startedRaw  string
		finishedRaw string
	)
	if err := scanner.Scan(&run.ID, &run.InputDir, &run.OutputDir, &startedRaw, &finishedRaw,
		&run.Moved, &run.Copied, &run.Skipped, &run.Renamed, &run.Failed); err != nil {
		return nil, err
	}

	var err error
	if run.StartedAt, err = time.Parse(timeLayout, startedRaw); err != nil {
		return nil, fmt.Errorf("parse started_at: %w", err)
	}
	if run.FinishedAt, err = time.Parse(timeLayout, finishedRaw); err != nil {
		return nil, fmt.Errorf("parse finished_at: %w", err)
	}
	return &run, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
