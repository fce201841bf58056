package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements ProfileRepo using Postgres. The whole profile document is
// stored as one jsonb column so profile schema changes never need migrations.
type PGRepo struct {
	DB *sql.DB
}

var _ ProfileRepo = (*PGRepo)(nil)

// Upsert inserts or replaces the user's profile.
func (r *PGRepo) Upsert(ctx context.Context, row StoredProfile) error {
	const query = `
INSERT INTO academic_profiles (user_id, profile, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id) DO UPDATE SET profile = EXCLUDED.profile, updated_at = EXCLUDED.updated_at`

	payload, err := json.Marshal(row.Profile)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query, row.UserID, payload, row.UpdatedAt)
	return err
}

// GetByUser returns the user's stored profile.
func (r *PGRepo) GetByUser(ctx context.Context, userID string) (StoredProfile, error) {
	const query = `
SELECT user_id, profile, updated_at
FROM academic_profiles
WHERE user_id = $1
LIMIT 1`

	var row StoredProfile
	var payload []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&row.UserID, &payload, &row.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return StoredProfile{}, ErrNotFound
		}
		return StoredProfile{}, err
	}
	if err := json.Unmarshal(payload, &row.Profile); err != nil {
		return StoredProfile{}, err
	}
	return row, nil
}
