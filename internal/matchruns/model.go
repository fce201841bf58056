package matchruns

import (
	"time"

	"gradmatch-backend/internal/matching"
)

// Run statuses.
const (
	StatusQueued     = "queued"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// MatchRun represents one matching job for a document.
type MatchRun struct {
	ID         string `json:"id"`
	DocumentID string `json:"documentId"`
	UserID     string `json:"userId"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Status     string `json:"status"`

	// Populated on completion.
	Source  string                 `json:"source,omitempty"`
	AIState string                 `json:"aiState,omitempty"`
	AIError string                 `json:"aiError,omitempty"`
	Results []matching.MatchResult `json:"results,omitempty"`

	// Populated on failure.
	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Retryable    bool   `json:"retryable,omitempty"`

	CreatedAt   time.Time  `json:"createdAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Outcome carries the reconciled result of a finished run into the repo.
type Outcome struct {
	Source  string
	AIState string
	AIError string
	Results []matching.MatchResult
}
