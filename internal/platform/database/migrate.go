package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Schema statements are idempotent so Migrate can run on every startup.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY,
		email VARCHAR(255) UNIQUE NOT NULL,
		hashed_password VARCHAR(255) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS topics (
		id UUID PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS problems (
		id UUID PRIMARY KEY,
		topic_id UUID NOT NULL REFERENCES topics(id) ON DELETE CASCADE,
		title VARCHAR(255) NOT NULL,
		slug VARCHAR(255) UNIQUE NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		difficulty VARCHAR(50) NOT NULL CHECK (difficulty IN ('Easy', 'Medium', 'Hard')),
		leetcode_link TEXT,
		codeforces_link TEXT,
		youtube_link TEXT,
		article_link TEXT,
		order_index INTEGER NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS user_progress (
		id UUID PRIMARY KEY,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		problem_id UUID NOT NULL REFERENCES problems(id) ON DELETE CASCADE,
		completed BOOLEAN NOT NULL DEFAULT FALSE,
		completed_at TIMESTAMPTZ,
		created_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE (user_id, problem_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_topics_order ON topics(order_index)`,
	`CREATE INDEX IF NOT EXISTS idx_problems_topic ON problems(topic_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_user ON user_progress(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_user_progress_problem ON user_progress(problem_id)`,
}

// Migrate applies the full schema inside a single transaction. Any failure
// rolls everything back and is returned to the caller, leaving prior state
// untouched.
func Migrate(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database.Migrate begin: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.Migrate exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database.Migrate commit: %w", err)
	}
	return nil
}
