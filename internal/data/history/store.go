package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const (
	driverName  = "sqlite"
	maxAttempts = 5
	defaultKey  = "default"

	// Fixed width so ts_utc text orders chronologically.
	timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"
)

type Store struct {
	path string
	db   *sql.DB
	mu   sync.Mutex
}

func Open(path string, busyTimeout time.Duration) (*Store, error) {
	cleanPath := strings.TrimSpace(path)
	if cleanPath == "" {
		return nil, fmt.Errorf("history path must not be empty")
	}
	if info, err := os.Stat(cleanPath); err == nil && info.IsDir() {
		return nil, fmt.Errorf("history path %q is a directory, expected file", cleanPath)
	}

	dir := filepath.Dir(cleanPath)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create history directory %q: %w", dir, err)
		}
	}

	if busyTimeout <= 0 {
		busyTimeout = 2 * time.Second
	}
	// busy_timeout + WAL reduce lock conflicts during watch-mode churn.
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(%d)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)",
		cleanPath, busyTimeout.Milliseconds())
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite history %q: %w", cleanPath, err)
	}
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite history %q: %w", cleanPath, err)
	}
	if err := EnsureSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize sqlite schema %q: %w", cleanPath, err)
	}

	return &Store{path: cleanPath, db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// SaveRun stores run and its diagnostics in one transaction and returns the
// run id, generating one when run.ID is empty.
func (s *Store) SaveRun(run Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.ProjectKey = normalizeKey(run.ProjectKey)
	if strings.TrimSpace(run.MainFile) == "" {
		return "", fmt.Errorf("run main file must not be empty")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.Timestamp.IsZero() {
		run.Timestamp = time.Now().UTC()
	}
	if run.UnusedCount == 0 {
		run.UnusedCount = len(run.Diagnostics)
	}

	err := s.withRetry("save run", func() error {
		tx, err := s.db.Begin()
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
INSERT INTO runs (
  run_id, project_key, main_file, ts_utc, exit_code, event_count, dropped_count,
  candidate_count, unused_count, duration_ms
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.ProjectKey,
			run.MainFile,
			run.Timestamp.UTC().Format(timestampLayout),
			run.ExitCode,
			run.EventCount,
			run.DroppedCount,
			run.CandidateCount,
			run.UnusedCount,
			run.DurationMillis,
		)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		for _, d := range run.Diagnostics {
			if _, err := tx.Exec(
				`INSERT INTO run_diagnostics (run_id, line, scope, origin, symbol_count) VALUES (?, ?, ?, ?, ?)`,
				run.ID, d.Line, d.Scope, d.Origin, d.SymbolCount,
			); err != nil {
				_ = tx.Rollback()
				return err
			}
		}
		return tx.Commit()
	})
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// LoadRuns returns up to limit runs for mainFile, newest first. An empty
// mainFile matches every file in the project; limit <= 0 means no limit.
// Diagnostics are attached to each run.
func (s *Store) LoadRuns(projectKey, mainFile string, limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
SELECT
  run_id, project_key, main_file, ts_utc, exit_code, event_count, dropped_count,
  candidate_count, unused_count, duration_ms
FROM runs
WHERE project_key = ?`
	args := []any{normalizeKey(projectKey)}
	if mainFile = strings.TrimSpace(mainFile); mainFile != "" {
		query += " AND main_file = ?"
		args = append(args, mainFile)
	}
	query += " ORDER BY ts_utc DESC, run_id ASC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	var rows *sql.Rows
	err := s.withRetry("load runs", func() error {
		var qErr error
		rows, qErr = s.db.Query(query, args...)
		return qErr
	})
	if err != nil {
		return nil, err
	}

	runs := make([]Run, 0)
	for rows.Next() {
		var (
			tsRaw string
			run   Run
		)
		if err := rows.Scan(
			&run.ID,
			&run.ProjectKey,
			&run.MainFile,
			&tsRaw,
			&run.ExitCode,
			&run.EventCount,
			&run.DroppedCount,
			&run.CandidateCount,
			&run.UnusedCount,
			&run.DurationMillis,
		); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		ts, err := time.Parse(timestampLayout, tsRaw)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("parse run timestamp %q: %w", tsRaw, err)
		}
		run.Timestamp = ts.UTC()
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate run rows: %w", err)
	}
	rows.Close()

	for i := range runs {
		diags, err := s.loadDiagnostics(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Diagnostics = diags
	}
	return runs, nil
}

func (s *Store) loadDiagnostics(runID string) ([]Diagnostic, error) {
	var rows *sql.Rows
	err := s.withRetry("load diagnostics", func() error {
		var qErr error
		rows, qErr = s.db.Query(
			`SELECT line, scope, origin, symbol_count FROM run_diagnostics WHERE run_id = ? ORDER BY line ASC, scope ASC`,
			runID,
		)
		return qErr
	})
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	diags := make([]Diagnostic, 0)
	for rows.Next() {
		var d Diagnostic
		if err := rows.Scan(&d.Line, &d.Scope, &d.Origin, &d.SymbolCount); err != nil {
			return nil, fmt.Errorf("scan diagnostic row: %w", err)
		}
		diags = append(diags, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate diagnostic rows: %w", err)
	}
	return diags, nil
}

// Prune keeps the newest keep runs per main file and deletes the rest.
func (s *Store) Prune(projectKey string, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var deleted int64
	err := s.withRetry("prune runs", func() error {
		res, err := s.db.Exec(`
DELETE FROM runs
WHERE project_key = ?
  AND run_id IN (
    SELECT run_id FROM (
      SELECT run_id,
             ROW_NUMBER() OVER (PARTITION BY main_file ORDER BY ts_utc DESC, run_id ASC) AS rn
      FROM runs
      WHERE project_key = ?
    ) WHERE rn > ?
  )`, normalizeKey(projectKey), normalizeKey(projectKey), keep)
		if err != nil {
			return err
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

func (s *Store) withRetry(op string, fn func() error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err
		if !isLockError(err) || attempt == maxAttempts {
			break
		}
		time.Sleep(time.Duration(attempt*25) * time.Millisecond)
	}
	return fmt.Errorf("%s: %w", op, lastErr)
}

func isLockError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "busy")
}

func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return defaultKey
	}
	return key
}

func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

func IsCorruptError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "malformed") || strings.Contains(msg, "not a database") || errors.Is(err, os.ErrInvalid)
}
