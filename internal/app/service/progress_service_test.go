package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"dsa_sheet/internal/common"
	"dsa_sheet/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProgressRepo mimics the unique (user, problem) constraint and the
// upsert's keep-original-row semantics.
type fakeProgressRepo struct {
	knownProblems map[string]bool
	rows          map[string]*model.Progress // keyed user|problem
}

func newFakeProgressRepo(problemIDs ...string) *fakeProgressRepo {
	known := map[string]bool{}
	for _, id := range problemIDs {
		known[id] = true
	}
	return &fakeProgressRepo{knownProblems: known, rows: map[string]*model.Progress{}}
}

func progressKey(userID, problemID string) string {
	return userID + "|" + problemID
}

func (r *fakeProgressRepo) ListByUser(ctx context.Context, userID string) ([]model.Progress, error) {
	result := []model.Progress{}
	for _, row := range r.rows {
		if row.UserID == userID {
			result = append(result, *row)
		}
	}
	return result, nil
}

func (r *fakeProgressRepo) Upsert(ctx context.Context, progress *model.Progress) error {
	if !r.knownProblems[progress.ProblemID] {
		return fmt.Errorf("problem %s does not exist: %w", progress.ProblemID, common.ErrNotFound)
	}
	key := progressKey(progress.UserID, progress.ProblemID)
	if existing, ok := r.rows[key]; ok {
		existing.Completed = progress.Completed
		existing.CompletedAt = progress.CompletedAt
		*progress = *existing
		return nil
	}
	progress.CreatedAt = time.Now()
	stored := *progress
	r.rows[key] = &stored
	return nil
}

func TestUpdateProgressRequiresProblemID(t *testing.T) {
	svc := NewProgressService(newFakeProgressRepo())
	_, err := svc.UpdateProgress(context.Background(), "user-1", UpdateProgressRequest{})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdateProgressUnknownProblem(t *testing.T) {
	svc := NewProgressService(newFakeProgressRepo("prob-1"))
	_, err := svc.UpdateProgress(context.Background(), "user-1", UpdateProgressRequest{ProblemID: "prob-404", Completed: true})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 404, common.HTTPStatusFromError(err))
}

func TestUpdateProgressSetsAndClearsCompletedAt(t *testing.T) {
	svc := NewProgressService(newFakeProgressRepo("prob-1"))

	done, err := svc.UpdateProgress(context.Background(), "user-1", UpdateProgressRequest{ProblemID: "prob-1", Completed: true})
	require.NoError(t, err)
	assert.True(t, done.Completed)
	require.NotNil(t, done.CompletedAt)

	undone, err := svc.UpdateProgress(context.Background(), "user-1", UpdateProgressRequest{ProblemID: "prob-1", Completed: false})
	require.NoError(t, err)
	assert.False(t, undone.Completed)
	assert.Nil(t, undone.CompletedAt)
}

func TestDoubleToggleKeepsSingleRow(t *testing.T) {
	repo := newFakeProgressRepo("prob-1")
	svc := NewProgressService(repo)

	first, err := svc.UpdateProgress(context.Background(), "user-1", UpdateProgressRequest{ProblemID: "prob-1", Completed: true})
	require.NoError(t, err)

	second, err := svc.UpdateProgress(context.Background(), "user-1", UpdateProgressRequest{ProblemID: "prob-1", Completed: false})
	require.NoError(t, err)

	// Same row flipped back, never a duplicate.
	assert.Equal(t, first.ID, second.ID)
	rows, err := svc.ListProgress(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.False(t, rows[0].Completed)
}

func TestProgressScopedPerUser(t *testing.T) {
	repo := newFakeProgressRepo("prob-1")
	svc := NewProgressService(repo)

	_, err := svc.UpdateProgress(context.Background(), "user-a", UpdateProgressRequest{ProblemID: "prob-1", Completed: true})
	require.NoError(t, err)
	_, err = svc.UpdateProgress(context.Background(), "user-b", UpdateProgressRequest{ProblemID: "prob-1", Completed: true})
	require.NoError(t, err)

	rowsA, err := svc.ListProgress(context.Background(), "user-a")
	require.NoError(t, err)
	rowsB, err := svc.ListProgress(context.Background(), "user-b")
	require.NoError(t, err)

	require.Len(t, rowsA, 1)
	require.Len(t, rowsB, 1)
	assert.Equal(t, "user-a", rowsA[0].UserID)
	assert.Equal(t, "user-b", rowsB[0].UserID)
	assert.NotEqual(t, rowsA[0].ID, rowsB[0].ID)
}
