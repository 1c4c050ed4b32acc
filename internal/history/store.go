package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dnzrx/video-sub-creator/internal/batch"
)

// Statuses recorded per job.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Run is a persisted batch run.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	SourceDir  string
	OutputDir  string
	Total      int
	Succeeded  int
	Failed     int
}

// Job is a persisted per-file outcome.
type Job struct {
	RunID        string
	SourcePath   string
	Status       string
	VTTPath      string
	SRTPath      string
	SegmentCount int
	Elapsed      time.Duration
	ErrorMessage string
}

// Store manages run persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database at path and applies
// the schema. The parent directory is created when absent.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
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
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun persists a completed summary and all of its job results in one
// transaction.
func (s *Store) RecordRun(ctx context.Context, summary *batch.Summary) error {
	if summary == nil {
		return errors.New("summary is nil")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (id, started_at, finished_at, source_dir, output_dir, total, succeeded, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.RunID,
		summary.StartedAt.UTC().Format(time.RFC3339Nano),
		summary.FinishedAt.UTC().Format(time.RFC3339Nano),
		summary.SourceDir,
		summary.OutputDir,
		summary.Total(),
		summary.Succeeded(),
		summary.Failed(),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, result := range summary.Results {
		status := StatusCompleted
		var errorMessage any
		if result.Err != nil {
			status = StatusFailed
			errorMessage = result.Err.Error()
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_jobs (run_id, source_path, status, vtt_path, srt_path, segment_count, elapsed_ms, error_message)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			summary.RunID,
			result.Source,
			status,
			nullableString(result.VTTPath),
			nullableString(result.SRTPath),
			result.SegmentCount,
			result.Elapsed.Milliseconds(),
			errorMessage,
		)
		if err != nil {
			return fmt.Errorf("insert job: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, started_at, finished_at, source_dir, output_dir, total, succeeded, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.SourceDir, &run.OutputDir,
			&run.Total, &run.Succeeded, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if run.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if run.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunJobs returns the per-file outcomes of one run in source order.
func (s *Store) RunJobs(ctx context.Context, runID string) ([]Job, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, source_path, status, vtt_path, srt_path, segment_count, elapsed_ms, error_message
         FROM run_jobs WHERE run_id = ? ORDER BY source_path`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		var vtt, srt, errorMessage sql.NullString
		var elapsedMS int64
		if err := rows.Scan(&job.RunID, &job.SourcePath, &job.Status, &vtt, &srt,
			&job.SegmentCount, &elapsedMS, &errorMessage); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		job.VTTPath = vtt.String
		job.SRTPath = srt.String
		job.ErrorMessage = errorMessage.String
		job.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
