package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var (
	ErrNotFound = errors.New("not found")
)

// Open opens a pooled Postgres connection via pgx's database/sql driver.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Migrate creates the tables this app owns. Idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS event_records (
			id TEXT PRIMARY KEY,
			approval_state TEXT NOT NULL,
			approved_by TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			calendar_date DATE NOT NULL,
			start_time TEXT NOT NULL DEFAULT '',
			end_time TEXT NOT NULL DEFAULT '',
			audience TEXT NOT NULL DEFAULT '',
			space_request TEXT NOT NULL DEFAULT '',
			padding TEXT NOT NULL DEFAULT '',
			facility_event_id TEXT NOT NULL DEFAULT '',
			public_event_id TEXT NOT NULL DEFAULT '',
			sync_notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS recurring_event_records (
			id TEXT PRIMARY KEY,
			approval_state TEXT NOT NULL,
			approved_by TEXT NOT NULL DEFAULT '',
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			ordinal TEXT NOT NULL DEFAULT '',
			weekday TEXT NOT NULL,
			start_time TEXT NOT NULL DEFAULT '',
			end_time TEXT NOT NULL DEFAULT '',
			audience TEXT NOT NULL DEFAULT '',
			space_request TEXT NOT NULL DEFAULT '',
			padding TEXT NOT NULL DEFAULT '',
			skip_months TEXT NOT NULL DEFAULT '',
			facility_series_id TEXT NOT NULL DEFAULT '',
			public_series_id TEXT NOT NULL DEFAULT '',
			sync_notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS event_instances (
			ord INTEGER NOT NULL,
			record_id TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			audience TEXT NOT NULL DEFAULT '',
			space TEXT NOT NULL DEFAULT '',
			start_at TIMESTAMPTZ NOT NULL,
			end_at TIMESTAMPTZ NOT NULL,
			facility_series_id TEXT NOT NULL DEFAULT '',
			public_series_id TEXT NOT NULL DEFAULT ''
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
