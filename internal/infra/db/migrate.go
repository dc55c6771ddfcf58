package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS articles (
		id BIGSERIAL PRIMARY KEY,
		title TEXT NOT NULL,
		summary TEXT NOT NULL DEFAULT '',
		author TEXT,
		image TEXT,
		published_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_articles_published_at ON articles (published_at DESC)`,
}

// Migrate applies the schema migrations in order. Each statement is
// idempotent so Migrate is safe to run on every startup.
func Migrate(ctx context.Context, database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	slog.Info("database migrations applied", slog.Int("count", len(migrations)))
	return nil
}
