package service

import (
	"context"
	"time"

	"dsa_sheet/internal/common"
	"dsa_sheet/internal/domain/model"
	"dsa_sheet/internal/domain/repository"

	"github.com/google/uuid"
)

type ProgressService struct {
	progressRepo repository.ProgressRepository
}

func NewProgressService(progressRepo repository.ProgressRepository) *ProgressService {
	return &ProgressService{progressRepo: progressRepo}
}

type UpdateProgressRequest struct {
	ProblemID string `json:"problem_id"`
	Completed bool   `json:"completed"`
}

func (s *ProgressService) ListProgress(ctx context.Context, userID string) ([]model.Progress, error) {
	return s.progressRepo.ListByUser(ctx, userID)
}

// UpdateProgress upserts the caller's completion state for one problem.
// Completing stamps completed_at with the current time; un-completing clears
// it. An unknown problem id surfaces as common.ErrNotFound from the repo.
func (s *ProgressService) UpdateProgress(ctx context.Context, userID string, req UpdateProgressRequest) (*model.Progress, error) {
	if req.ProblemID == "" {
		return nil, common.Errorf("problem_id required: %w", common.ErrValidation)
	}

	progress := &model.Progress{
		ID:        uuid.NewString(),
		UserID:    userID,
		ProblemID: req.ProblemID,
		Completed: req.Completed,
	}
	if req.Completed {
		now := time.Now()
		progress.CompletedAt = &now
	}

	if err := s.progressRepo.Upsert(ctx, progress); err != nil {
		return nil, err
	}
	return progress, nil
}
