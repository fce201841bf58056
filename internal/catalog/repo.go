package catalog

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// Repo loads catalog data. The catalog is read-only from the pipeline's point
// of view; writes happen out of band (migrations, admin imports).
type Repo interface {
	// Snapshot returns the full catalog as one consistent read-only view.
	Snapshot(ctx context.Context) (Snapshot, error)
	// GetUniversity returns a single university by ID.
	GetUniversity(ctx context.Context, universityID string) (University, error)
}
