package llm

import (
	"context"
	"errors"
)

// Client abstracts recommendation providers. Recommend returns the raw model
// text; callers extract and validate the structured block themselves.
type Client interface {
	Recommend(ctx context.Context, input RecommendInput) (string, error)
}

// RecommendInput carries the compact prompt material for one matching run.
type RecommendInput struct {
	CandidateSummary string
	ProgramCatalog   string
}

// ErrNotConfigured is returned when no provider is wired.
var ErrNotConfigured = errors.New("LLM provider not configured")

// DisabledClient is used when LLM_PROVIDER=none; every call fails fast so the
// orchestrator goes straight to deterministic fallback.
type DisabledClient struct{}

// Recommend returns ErrNotConfigured.
func (DisabledClient) Recommend(ctx context.Context, input RecommendInput) (string, error) {
	_ = ctx
	_ = input
	return "", ErrNotConfigured
}
