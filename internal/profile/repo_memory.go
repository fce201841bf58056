package profile

import (
	"context"
	"sync"
)

// MemoryRepo stores profiles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]StoredProfile
}

var _ ProfileRepo = (*MemoryRepo)(nil)

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]StoredProfile)}
}

// Upsert inserts or replaces the user's profile.
func (r *MemoryRepo) Upsert(ctx context.Context, row StoredProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[row.UserID] = row
	return nil
}

// GetByUser returns the user's stored profile.
func (r *MemoryRepo) GetByUser(ctx context.Context, userID string) (StoredProfile, error) {
	if err := ctx.Err(); err != nil {
		return StoredProfile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	row, ok := r.byUser[userID]
	if !ok {
		return StoredProfile{}, ErrNotFound
	}
	return row, nil
}
