package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dsa_sheet/internal/common"
	"dsa_sheet/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

type ProgressRepository interface {
	ListByUser(ctx context.Context, userID string) ([]model.Progress, error)
	Upsert(ctx context.Context, progress *model.Progress) error
}

type pgProgressRepository struct {
	db *sql.DB
}

func NewPgProgressRepository(db *sql.DB) ProgressRepository {
	return &pgProgressRepository{db: db}
}

func (r *pgProgressRepository) ListByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	query := `SELECT id, user_id, problem_id, completed, completed_at, created_at
	          FROM user_progress WHERE user_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	progress := []model.Progress{}
	for rows.Next() {
		var p model.Progress
		if err := rows.Scan(&p.ID, &p.UserID, &p.ProblemID, &p.Completed, &p.CompletedAt, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgProgressRepository.ListByUser scan: %w", err)
		}
		progress = append(progress, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProgressRepository.ListByUser rows.Err: %w", err)
	}
	return progress, nil
}

// Upsert inserts the (user, problem) row or flips its completed flag in a
// single statement. The unique (user_id, problem_id) constraint makes racing
// upserts converge on one row; the loser of an insert race lands in the
// ON CONFLICT update path. The resulting row is scanned back into progress.
func (r *pgProgressRepository) Upsert(ctx context.Context, progress *model.Progress) error {
	query := `INSERT INTO user_progress (id, user_id, problem_id, completed, completed_at)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (user_id, problem_id)
	          DO UPDATE SET completed = EXCLUDED.completed, completed_at = EXCLUDED.completed_at
	          RETURNING id, user_id, problem_id, completed, completed_at, created_at`
	err := r.db.QueryRowContext(ctx, query,
		progress.ID, progress.UserID, progress.ProblemID, progress.Completed, progress.CompletedAt,
	).Scan(&progress.ID, &progress.UserID, &progress.ProblemID, &progress.Completed, &progress.CompletedAt, &progress.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // FK violation: unknown problem
			return fmt.Errorf("problem %s does not exist: %w", progress.ProblemID, common.ErrNotFound)
		}
		return fmt.Errorf("pgProgressRepository.Upsert: %w", err)
	}
	return nil
}
