package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsa_sheet/internal/domain/model"
)

type ProblemRepository interface {
	List(ctx context.Context) ([]model.Problem, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

func (r *pgProblemRepository) List(ctx context.Context) ([]model.Problem, error) {
	query := `SELECT p.id, p.topic_id, p.title, p.slug, p.description, p.difficulty,
	                 p.leetcode_link, p.codeforces_link, p.youtube_link, p.article_link,
	                 p.order_index, p.created_at
	          FROM problems p
	          JOIN topics t ON p.topic_id = t.id
	          ORDER BY t.order_index ASC, p.order_index ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.List query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.TopicID, &p.Title, &p.Slug, &p.Description, &p.Difficulty,
			&p.LeetcodeLink, &p.CodeforcesLink, &p.YoutubeLink, &p.ArticleLink,
			&p.OrderIndex, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.List scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.List rows.Err: %w", err)
	}
	return problems, nil
}
