package matchruns

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/documents"
	"gradmatch-backend/internal/orchestrator"
	"gradmatch-backend/internal/parser"
	"gradmatch-backend/internal/profile"
	"gradmatch-backend/internal/queue"
	"gradmatch-backend/internal/shared/metrics"
	"gradmatch-backend/internal/shared/telemetry"
)

// Service contains business logic for match runs.
type Service struct {
	Repo     Repo
	Docs     *documents.Service
	Profiles *profile.Service
	Catalog  catalog.Repo
	Orch     *orchestrator.Orchestrator
	Queue    queue.Client
	Provider string
	Model    string
}

// Create enqueues a matching run for a validated document. Runs are handed to
// the queue when one is configured, otherwise completed in-process.
func (s *Service) Create(ctx context.Context, userID, documentID string) (MatchRun, error) {
	if userID == "" || documentID == "" {
		return MatchRun{}, errors.New("documentID and userID are required")
	}

	doc, err := s.Docs.Get(ctx, userID, documentID)
	if err != nil {
		return MatchRun{}, err
	}
	if !doc.IsValid {
		return MatchRun{}, ErrDocumentInvalid
	}

	run := MatchRun{
		ID:         uuid.NewString(),
		DocumentID: doc.ID,
		UserID:     userID,
		Provider:   s.Provider,
		Model:      s.Model,
		Status:     StatusQueued,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.Repo.Create(ctx, run); err != nil {
		return MatchRun{}, err
	}

	if s.Queue != nil {
		msg := queue.Message{
			MatchRunID: run.ID,
			RequestID:  requestIDFromContext(ctx),
			EnqueuedAt: run.CreatedAt.Format(time.RFC3339),
			Version:    1,
		}
		err := s.Queue.Send(ctx, msg)
		if err == nil {
			metrics.IncQueueSent()
			return run, nil
		}
		telemetry.Error("queue send failed, processing in-process", map[string]any{
			"match_run_id": run.ID,
			"err":          err.Error(),
		})
	}

	go func(ctx context.Context, runID string) {
		_ = s.Process(ctx, runID)
	}(backgroundWithRequestID(ctx), run.ID)

	return run, nil
}

// Get returns a run scoped to its owner.
func (s *Service) Get(ctx context.Context, userID, runID string) (MatchRun, error) {
	if runID == "" {
		return MatchRun{}, errors.New("runID is required")
	}
	run, err := s.Repo.GetByID(ctx, runID)
	if err != nil {
		return MatchRun{}, err
	}
	if run.UserID != userID {
		return MatchRun{}, ErrNotFound
	}
	return run, nil
}

// List returns a user's runs, newest first.
func (s *Service) List(ctx context.Context, userID string, limit, offset int) ([]MatchRun, error) {
	if userID == "" {
		return nil, errors.New("userID is required")
	}
	return s.Repo.ListByUser(ctx, userID, limit, offset)
}

// Process runs the matching pipeline for a queued run. It is invoked from the
// in-process goroutine or by the queue worker.
func (s *Service) Process(ctx context.Context, runID string) error {
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, runID, "", "", fmt.Errorf("panic: %v", r), nil)
		}
	}()

	startedAt := time.Now().UTC()
	if err := s.Repo.MarkProcessing(ctx, runID, startedAt); err != nil {
		s.fail(ctx, runID, "", "", fmt.Errorf("set processing failed: %w", err), &startedAt)
		return err
	}

	run, err := s.Repo.GetByID(ctx, runID)
	if err != nil {
		s.fail(ctx, runID, "", "", fmt.Errorf("match run lookup: %w", err), &startedAt)
		return err
	}
	metrics.IncMatchRunStarted()
	telemetry.Info("match_run.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           run.UserID,
		"document_id":       run.DocumentID,
		"match_run_id":      run.ID,
		"status":            StatusProcessing,
		"status_transition": "queued->processing",
	})

	candidate, err := s.buildCandidate(ctx, run)
	if err != nil {
		s.fail(ctx, runID, run.UserID, run.DocumentID, err, &startedAt)
		return err
	}

	snap, err := s.Catalog.Snapshot(ctx)
	if err != nil {
		s.fail(ctx, runID, run.UserID, run.DocumentID, fmt.Errorf("catalog snapshot: %w", err), &startedAt)
		return err
	}

	result, err := s.Orch.Run(ctx, candidate, snap, orchestrator.NewSessionCache())
	if err != nil {
		s.fail(ctx, runID, run.UserID, run.DocumentID, err, &startedAt)
		return err
	}

	completedAt := time.Now().UTC()
	outcome := Outcome{
		Source:  result.Source,
		AIState: string(result.AIState),
		AIError: result.AIError,
		Results: result.Matches,
	}
	if err := s.Repo.Complete(ctx, runID, outcome, completedAt); err != nil {
		s.fail(ctx, runID, run.UserID, run.DocumentID, fmt.Errorf("set match result failed: %w", err), &startedAt)
		return err
	}

	metrics.IncMatchRunCompleted()
	if result.Source == orchestrator.SourceFallback {
		metrics.IncMatchRunFallback()
	}
	metrics.ObserveMatchRunDurationMs(durationMs(&startedAt, &completedAt))
	telemetry.Info("match_run.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           run.UserID,
		"document_id":       run.DocumentID,
		"match_run_id":      run.ID,
		"status":            StatusCompleted,
		"status_transition": "processing->completed",
		"source":            result.Source,
		"ai_state":          string(result.AIState),
		"matches":           len(result.Matches),
		"duration_ms":       durationMs(&startedAt, &completedAt),
	})
	return nil
}

// buildCandidate merges the CV extraction with the stored profile into the
// canonical candidate view.
func (s *Service) buildCandidate(ctx context.Context, run MatchRun) (profile.CandidateProfile, error) {
	doc, err := s.Docs.Get(ctx, run.UserID, run.DocumentID)
	if err != nil {
		return profile.CandidateProfile{}, fmt.Errorf("document lookup id=%s: %w", run.DocumentID, err)
	}
	text, err := s.Docs.ExtractedText(ctx, doc)
	if err != nil {
		return profile.CandidateProfile{}, fmt.Errorf("document %s: load extracted text: %w", doc.ID, err)
	}

	parsed := parser.ParsedDocument{Text: text, Sections: parser.SplitSections(text)}
	cv := profile.ExtractFromDocument(parsed)

	var stored *profile.StoredAcademicProfile
	if s.Profiles != nil {
		stored, err = s.Profiles.GetOrNil(ctx, run.UserID)
		if err != nil {
			return profile.CandidateProfile{}, fmt.Errorf("profile lookup: %w", err)
		}
	}

	return profile.Enhance(profile.CandidateProfile{}, &cv, stored), nil
}

func (s *Service) fail(ctx context.Context, runID, userID, documentID string, err error, startedAt *time.Time) {
	code, retryable := classifyFailure(err)
	msg := sanitizeError(err)
	completedAt := time.Now().UTC()
	if updateErr := s.Repo.Fail(context.Background(), runID, code, msg, retryable, completedAt); updateErr != nil {
		telemetry.Error("match run fail update failed", map[string]any{
			"match_run_id": runID,
			"err":          updateErr.Error(),
			"orig":         err.Error(),
		})
	}
	metrics.IncMatchRunFailed()
	if startedAt != nil {
		metrics.ObserveMatchRunDurationMs(durationMs(startedAt, &completedAt))
	}
	telemetry.Info("match_run.status", map[string]any{
		"request_id":        requestIDFromContext(ctx),
		"user_id":           userID,
		"document_id":       documentID,
		"match_run_id":      runID,
		"status":            StatusFailed,
		"status_transition": "processing->failed",
		"error_code":        code,
		"duration_ms":       durationMs(startedAt, &completedAt),
	})
}

func durationMs(startedAt, completedAt *time.Time) float64 {
	if startedAt == nil || completedAt == nil {
		return 0
	}
	return float64(completedAt.Sub(*startedAt).Microseconds()) / 1000.0
}

func classifyFailure(err error) (string, bool) {
	if err == nil {
		return ErrorCodeInternal, false
	}
	if errors.Is(err, orchestrator.ErrNoCatalog) {
		return ErrorCodeNoCatalog, false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorCodeAITimeout, true
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "timeout") {
		return ErrorCodeAITimeout, true
	}
	if strings.Contains(msg, "document") || strings.Contains(msg, "storage") ||
		strings.Contains(msg, "extracted text") || strings.Contains(msg, "match result") ||
		strings.Contains(msg, "set processing") || strings.Contains(msg, "catalog snapshot") {
		return ErrorCodeStorage, true
	}
	if strings.Contains(msg, "validation") {
		return ErrorCodeValidation, false
	}
	return ErrorCodeInternal, false
}

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	msg := strings.ReplaceAll(err.Error(), "\n", " ")
	msg = strings.ReplaceAll(msg, "\r", " ")
	msg = strings.TrimSpace(msg)
	const maxLen = 500
	if len(msg) > maxLen {
		msg = msg[:maxLen]
	}
	return msg
}
