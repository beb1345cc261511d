package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// ErrNotFound is returned by single-record lookups that match nothing.
var ErrNotFound = errors.New("record not found")

type Database struct {
	db *sql.DB
}

func New(ctx context.Context, path string, logger *zap.Logger) (*Database, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	d := &Database{db: db}
	if err := d.init(ctx); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("database initialized", zap.String("path", path))
	return d, nil
}

func (d *Database) init(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS daily_plans (
			date TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS coaching_logs (
			date TEXT PRIMARY KEY,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS tests (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS wellness_logs (
			date TEXT PRIMARY KEY,
			mood INTEGER NOT NULL CHECK(mood >= 1 AND mood <= 5),
			sleep_hours REAL NOT NULL CHECK(sleep_hours >= 0 AND sleep_hours <= 24),
			journal TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS doubts (
			id TEXT PRIMARY KEY,
			subject TEXT NOT NULL,
			topic TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL,
			status TEXT NOT NULL,
			context TEXT NOT NULL DEFAULT ''
		)`,

		`CREATE TABLE IF NOT EXISTS lectures (
			id TEXT PRIMARY KEY,
			date_added TEXT NOT NULL DEFAULT '',
			payload TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS teachers (
			name TEXT PRIMARY KEY,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS syllabus (
			id INTEGER PRIMARY KEY CHECK(id = 1),
			payload TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS upcoming_tests (
			id TEXT PRIMARY KEY,
			date TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS challenges (
			id TEXT PRIMARY KEY,
			start_date TEXT NOT NULL,
			end_date TEXT NOT NULL,
			payload TEXT NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_tests_date ON tests(date)`,
		`CREATE INDEX IF NOT EXISTS idx_doubts_date ON doubts(date)`,
		`CREATE INDEX IF NOT EXISTS idx_lectures_date_added ON lectures(date_added)`,
	}

	for _, query := range queries {
		if _, err := d.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}

	return nil
}

func (d *Database) Close() error {
	return d.db.Close()
}
