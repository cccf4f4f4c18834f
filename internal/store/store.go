// Package store handles SQLite persistence of analysis runs.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/stylo/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			input TEXT NOT NULL,
			paragraphs INTEGER NOT NULL,
			sentences INTEGER NOT NULL,
			phrases INTEGER NOT NULL,
			words INTEGER NOT NULL,
			oddwords INTEGER NOT NULL,
			distinct_words INTEGER NOT NULL,
			stats_report TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a completed analysis run.
func (s *Store) InsertRun(ctx context.Context, rec model.RunRecord) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (created_at, input, paragraphs, sentences, phrases, words, oddwords, distinct_words, stats_report)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.CreatedAt.Format(time.RFC3339Nano),
		rec.Input,
		rec.Paragraphs,
		rec.Sentences,
		rec.Phrases,
		rec.Words,
		rec.OddWords,
		rec.DistinctWords,
		rec.StatsReport,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// ListRuns returns run summaries, newest first. A limit <= 0 lists all.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]model.RunSummary, error) {
	query := `SELECT id, created_at, input, paragraphs, sentences, phrases, words, oddwords
		FROM runs
		ORDER BY created_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunSummary
	for rows.Next() {
		var run model.RunSummary
		var createdAt string
		if err := rows.Scan(&run.RunID, &createdAt, &run.Input, &run.Paragraphs, &run.Sentences, &run.Phrases, &run.Words, &run.OddWords); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		run.CreatedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// GetRunReport returns the stored stats report for a run.
func (s *Store) GetRunReport(ctx context.Context, id int64) (string, error) {
	var report string
	err := s.db.QueryRowContext(ctx,
		`SELECT stats_report FROM runs WHERE id = ?`, id).Scan(&report)
	if err != nil {
		return "", err
	}
	return report, nil
}
