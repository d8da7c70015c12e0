package model

import (
	"time"
)

// Progress is a per-user, per-problem completion record. At most one row
// exists per (user, problem) pair; writes upsert that pair.
type Progress struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	ProblemID   string     `json:"problem_id"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
}
