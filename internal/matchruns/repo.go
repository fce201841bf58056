package matchruns

import (
	"context"
	"time"
)

// Repo defines persistence operations for match runs.
type Repo interface {
	Create(ctx context.Context, run MatchRun) error
	GetByID(ctx context.Context, runID string) (MatchRun, error)
	MarkProcessing(ctx context.Context, runID string, startedAt time.Time) error
	Complete(ctx context.Context, runID string, outcome Outcome, completedAt time.Time) error
	Fail(ctx context.Context, runID, code, message string, retryable bool, completedAt time.Time) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]MatchRun, error)
}
