// Package history persists check runs to SQLite so trends across a
// branch can be inspected later.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/prguard/prguard/internal/report"
)

// Store provides SQLite-based run history storage.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the history database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// WAL mode keeps concurrent readers cheap
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return store, nil
}

// migrate runs database migrations.
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			branch TEXT,
			commit_hash TEXT,
			title TEXT,
			files_changed INTEGER NOT NULL DEFAULT 0,
			lines_changed INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			warnings INTEGER NOT NULL DEFAULT 0,
			infos INTEGER NOT NULL DEFAULT 0,
			passed BOOLEAN NOT NULL DEFAULT TRUE
		)`,

		`CREATE TABLE IF NOT EXISTS findings (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			rule_id TEXT NOT NULL,
			severity TEXT NOT NULL,
			message TEXT NOT NULL,
			file TEXT,
			line INTEGER
		)`,

		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_branch ON runs(branch)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_run ON findings(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_findings_rule ON findings(rule_id)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// Record stores a finished run with all its findings and returns the run ID.
func (s *Store) Record(ctx context.Context, branch, commit string, rep *report.Report) (string, error) {
	if rep == nil {
		return "", fmt.Errorf("report cannot be nil")
	}

	runID := uuid.New().String()
	now := time.Now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs (
		id, created_at, branch, commit_hash, title,
		files_changed, lines_changed, failures, warnings, infos, passed
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, now, branch, commit, rep.Title,
		rep.FilesChanged, rep.LinesChanged,
		len(rep.Failures), len(rep.Warnings), len(rep.Infos), rep.Passed(),
	)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO findings (
		run_id, rule_id, severity, message, file, line
	) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, f := range rep.All() {
		if _, err := stmt.ExecContext(ctx, runID, f.RuleID, string(f.Severity), f.Message, f.File, f.Line); err != nil {
			return "", fmt.Errorf("inserting finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing run: %w", err)
	}

	return runID, nil
}

// ListRuns returns the most recent runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, branch, commit_hash, title,
		       files_changed, lines_changed, failures, warnings, infos, passed
		FROM runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0, limit)
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// GetRun returns one run and its findings.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, []RunFinding, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, branch, commit_hash, title,
		       files_changed, lines_changed, failures, warnings, infos, passed
		FROM runs
		WHERE id = ?
	`, id)

	r, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT run_id, rule_id, severity, message, file, line
		FROM findings
		WHERE run_id = ?
		ORDER BY id
	`, id)
	if err != nil {
		return nil, nil, fmt.Errorf("querying findings: %w", err)
	}
	defer rows.Close()

	var findings []RunFinding
	for rows.Next() {
		var f RunFinding
		var file sql.NullString
		var line sql.NullInt64
		if err := rows.Scan(&f.RunID, &f.RuleID, &f.Severity, &f.Message, &file, &line); err != nil {
			return nil, nil, fmt.Errorf("scanning finding: %w", err)
		}
		f.File = file.String
		f.Line = int(line.Int64)
		findings = append(findings, f)
	}

	return &r, findings, rows.Err()
}

// GetStats returns aggregate statistics over all stored runs.
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{
		ByRule:     make(map[string]int64),
		BySeverity: make(map[string]int64),
	}

	var first, last sql.NullTime
	var totalWarnings sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN passed THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(warnings), 0),
		       MIN(created_at), MAX(created_at)
		FROM runs
	`).Scan(&stats.TotalRuns, &stats.PassedRuns, &totalWarnings, &first, &last)
	if err != nil {
		return nil, fmt.Errorf("querying stats: %w", err)
	}

	if first.Valid {
		stats.FirstRunAt = first.Time
	}
	if last.Valid {
		stats.LastRunAt = last.Time
	}
	if stats.TotalRuns > 0 {
		stats.AvgWarnings = float64(totalWarnings.Int64) / float64(stats.TotalRuns)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT rule_id, COUNT(*) FROM findings GROUP BY rule_id`)
	if err != nil {
		return nil, fmt.Errorf("querying rule breakdown: %w", err)
	}
	for rows.Next() {
		var rule string
		var count int64
		if err := rows.Scan(&rule, &count); err == nil {
			stats.ByRule[rule] = count
		}
	}
	rows.Close()

	rows, err = s.db.QueryContext(ctx, `SELECT severity, COUNT(*) FROM findings GROUP BY severity`)
	if err != nil {
		return nil, fmt.Errorf("querying severity breakdown: %w", err)
	}
	for rows.Next() {
		var sev string
		var count int64
		if err := rows.Scan(&sev, &count); err == nil {
			stats.BySeverity[sev] = count
		}
	}
	rows.Close()

	return stats, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var r Run
	var branch, commit, title sql.NullString
	if err := row.Scan(
		&r.ID, &r.CreatedAt, &branch, &commit, &title,
		&r.FilesChanged, &r.LinesChanged, &r.Failures, &r.Warnings, &r.Infos, &r.Passed,
	); err != nil {
		if err == sql.ErrNoRows {
			return r, err
		}
		return r, fmt.Errorf("scanning run: %w", err)
	}
	r.Branch = branch.String
	r.Commit = commit.String
	r.Title = title.String
	return r, nil
}
