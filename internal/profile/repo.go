package profile

import (
	"context"
	"time"
)

// StoredProfile is a persisted academic profile row.
type StoredProfile struct {
	UserID    string
	Profile   StoredAcademicProfile
	UpdatedAt time.Time
}

// ProfileRepo persists academic profiles keyed by user.
type ProfileRepo interface {
	Upsert(ctx context.Context, row StoredProfile) error
	GetByUser(ctx context.Context, userID string) (StoredProfile, error)
}
