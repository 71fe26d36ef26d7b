package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		username      TEXT,
		email         TEXT NOT NULL,
		phone         TEXT,
		avatar_data   BYTEA,
		avatar_mime   TEXT,
		dob           DATE,
		gender        TEXT,
		bio           TEXT,
		password_hash BYTEA NOT NULL,
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_idx ON users (email)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_idx ON users (username) WHERE username IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS content_items (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL REFERENCES users (id),
		type              TEXT NOT NULL,
		prompt            TEXT NOT NULL,
		generated_content TEXT NOT NULL,
		created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS content_items_user_idx ON content_items (user_id, created_at DESC)`,
	`CREATE TABLE IF NOT EXISTS reviews (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL REFERENCES users (id),
		name        TEXT NOT NULL,
		rating      INT NOT NULL,
		comment     TEXT NOT NULL,
		is_approved BOOLEAN NOT NULL DEFAULT FALSE,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS reviews_user_idx ON reviews (user_id)`,
}

// Migrate applies the schema idempotently at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range migrations {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}
