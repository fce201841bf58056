package matchruns

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryRepo stores runs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu   sync.RWMutex
	byID map[string]MatchRun
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]MatchRun)}
}

// Create inserts a new queued run.
func (r *MemoryRepo) Create(ctx context.Context, run MatchRun) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[run.ID] = run
	return nil
}

// GetByID returns a run by ID.
func (r *MemoryRepo) GetByID(ctx context.Context, runID string) (MatchRun, error) {
	if err := ctx.Err(); err != nil {
		return MatchRun{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	run, ok := r.byID[runID]
	if !ok {
		return MatchRun{}, ErrNotFound
	}
	return run, nil
}

// MarkProcessing transitions a run out of the queue.
func (r *MemoryRepo) MarkProcessing(ctx context.Context, runID string, startedAt time.Time) error {
	return r.update(ctx, runID, func(run *MatchRun) {
		run.Status = StatusProcessing
		t := startedAt
		run.StartedAt = &t
	})
}

// Complete records the reconciled outcome.
func (r *MemoryRepo) Complete(ctx context.Context, runID string, outcome Outcome, completedAt time.Time) error {
	return r.update(ctx, runID, func(run *MatchRun) {
		run.Status = StatusCompleted
		run.Source = outcome.Source
		run.AIState = outcome.AIState
		run.AIError = outcome.AIError
		run.Results = outcome.Results
		t := completedAt
		run.CompletedAt = &t
	})
}

// Fail records a terminal failure.
func (r *MemoryRepo) Fail(ctx context.Context, runID, code, message string, retryable bool, completedAt time.Time) error {
	return r.update(ctx, runID, func(run *MatchRun) {
		run.Status = StatusFailed
		run.ErrorCode = code
		run.ErrorMessage = message
		run.Retryable = retryable
		t := completedAt
		run.CompletedAt = &t
	})
}

// ListByUser returns a user's runs, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]MatchRun, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}

	r.mu.RLock()
	runs := make([]MatchRun, 0, len(r.byID))
	for _, run := range r.byID {
		if run.UserID == userID {
			runs = append(runs, run)
		}
	}
	r.mu.RUnlock()

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].CreatedAt.After(runs[j].CreatedAt)
	})

	if offset >= len(runs) {
		return []MatchRun{}, nil
	}
	end := len(runs)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return runs[offset:end], nil
}

func (r *MemoryRepo) update(ctx context.Context, runID string, apply func(*MatchRun)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	run, ok := r.byID[runID]
	if !ok {
		return ErrNotFound
	}
	apply(&run)
	r.byID[runID] = run
	return nil
}
