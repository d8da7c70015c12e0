package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsa_sheet/internal/domain/model"
)

type TopicRepository interface {
	List(ctx context.Context) ([]model.Topic, error)
}

type pgTopicRepository struct {
	db *sql.DB
}

func NewPgTopicRepository(db *sql.DB) TopicRepository {
	return &pgTopicRepository{db: db}
}

func (r *pgTopicRepository) List(ctx context.Context) ([]model.Topic, error) {
	query := `SELECT id, name, slug, description, order_index, created_at
	          FROM topics ORDER BY order_index ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgTopicRepository.List query: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.Slug, &t.Description, &t.OrderIndex, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgTopicRepository.List scan: %w", err)
		}
		topics = append(topics, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTopicRepository.List rows.Err: %w", err)
	}
	return topics, nil
}
