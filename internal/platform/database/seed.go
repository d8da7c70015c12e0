package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

type SeedTopic struct {
	Name        string
	Description string
	OrderIndex  int
}

// SeedTopics is the canonical topic catalog, inserted once on first startup.
var SeedTopics = []SeedTopic{
	{"Arrays", "Fundamental data structure", 1},
	{"Strings", "Character manipulation", 2},
	{"Linked Lists", "Node-based structure", 3},
	{"Trees", "Hierarchical data", 4},
	{"Graphs", "Connected nodes", 5},
	{"Dynamic Programming", "Optimization technique", 6},
	{"Sorting & Searching", "Algorithms", 7},
	{"Stack & Queue", "LIFO / FIFO", 8},
}

// Seed populates the topics table. It is gated on the existing row count, so
// a second run is a no-op rather than a duplicate catalog.
func Seed(ctx context.Context, db *sql.DB) error {
	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM topics`).Scan(&count); err != nil {
		return fmt.Errorf("database.Seed count: %w", err)
	}
	if count > 0 {
		fmt.Println("Database already seeded")
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("database.Seed begin: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO topics (id, name, slug, description, order_index)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT DO NOTHING`
	for _, t := range SeedTopics {
		if _, err := tx.ExecContext(ctx, query, uuid.NewString(), t.Name, slug.Make(t.Name), t.Description, t.OrderIndex); err != nil {
			return fmt.Errorf("database.Seed insert %q: %w", t.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("database.Seed commit: %w", err)
	}
	fmt.Println("Topics seeded")
	return nil
}
