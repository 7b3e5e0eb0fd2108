package history

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one recorded scan or rename invocation.
type Run struct {
	ID         string
	Command    string
	Root       string
	DryRun     bool
	Total      int
	Identified int
	Renamed    int
	StartedAt  time.Time
	FinishedAt time.Time
}

// FileRecord is the per-file outcome stored under a run.
type FileRecord struct {
	RunID       string
	FilePath    string
	Identified  bool
	MatchType   string
	Confidence  float64
	CorrectName string
	Renamed     bool
	Status      string
	Message     string
}

// BeginRun inserts a new run row and returns its identifier.
func (s *Store) BeginRun(ctx context.Context, command, root string, dryRun bool) (string, error) {
	return s.beginRunAt(ctx, command, root, dryRun, time.Now())
}

// Timestamps are stored as Unix nanoseconds so ORDER BY sorts numerically;
// textual timestamps mis-sort when fractional seconds are absent.
func (s *Store) beginRunAt(ctx context.Context, command, root string, dryRun bool, startedAt time.Time) (string, error) {
	id := uuid.NewString()
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, command, root, dry_run, started_at) VALUES (?, ?, ?, ?, ?)`,
		id, command, root, boolToInt(dryRun), startedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return id, nil
}

// RecordFile appends one per-file outcome to a run.
func (s *Store) RecordFile(ctx context.Context, record FileRecord) error {
	err := s.execWithRetry(ctx,
		`INSERT INTO run_files (run_id, file_path, identified, match_type, confidence, correct_name, renamed, status, message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.RunID, record.FilePath, boolToInt(record.Identified), record.MatchType,
		record.Confidence, record.CorrectName, boolToInt(record.Renamed), record.Status, record.Message,
	)
	if err != nil {
		return fmt.Errorf("record file: %w", err)
	}
	return nil
}

// FinishRun stamps the run's totals and completion time.
func (s *Store) FinishRun(ctx context.Context, id string, total, identified, renamed int) error {
	err := s.execWithRetry(ctx,
		`UPDATE runs SET total = ?, identified = ?, renamed = ?, finished_at = ? WHERE id = ?`,
		total, identified, renamed, time.Now().UnixNano(), id,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. A limit of 0 returns
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT id, command, root, dry_run, total, identified, renamed, started_at, finished_at
		FROM runs ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run      Run
			dryRun   int
			started  int64
			finished int64
		)
		if err := rows.Scan(&run.ID, &run.Command, &run.Root, &dryRun, &run.Total,
			&run.Identified, &run.Renamed, &started, &finished); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.DryRun = dryRun != 0
		run.StartedAt = time.Unix(0, started).UTC()
		if finished != 0 {
			run.FinishedAt = time.Unix(0, finished).UTC()
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunFiles returns the per-file records for a run in insertion order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, file_path, identified, match_type, confidence, correct_name, renamed, status, message
		 FROM run_files WHERE run_id = ? ORDER BY id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("run files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var (
			record     FileRecord
			identified int
			renamed    int
		)
		if err := rows.Scan(&record.RunID, &record.FilePath, &identified, &record.MatchType,
			&record.Confidence, &record.CorrectName, &renamed, &record.Status, &record.Message); err != nil {
			return nil, fmt.Errorf("scan run file: %w", err)
		}
		record.Identified = identified != 0
		record.Renamed = renamed != 0
		records = append(records, record)
	}
	return records, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
