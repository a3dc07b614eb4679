package repository

import (
	"context"
	"database/sql"
	"log/slog"

	_ "modernc.org/sqlite"
)

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id            TEXT PRIMARY KEY,
	source_path   TEXT NOT NULL,
	output_path   TEXT NOT NULL,
	languages     TEXT NOT NULL,
	pages         INTEGER NOT NULL DEFAULT 0,
	failed_pages  INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	started_at    TEXT NOT NULL,
	finished_at   TEXT NOT NULL
);`

// Open opens (creating if needed) the run-history database and applies the
// schema.
func Open(ctx context.Context, path string, logger *slog.Logger) (*sql.DB, error) {
	if logger == nil {
		logger = slog.Default()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open history db", "path", path, "error", err)
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		logger.Error("history db ping failed", "path", path, "error", err)
		_ = db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, runsSchema); err != nil {
		logger.Error("history db migration failed", "path", path, "error", err)
		_ = db.Close()
		return nil, err
	}
	logger.Debug("history db ready", "path", path)
	return db, nil
}
