package matchruns

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

var _ Repo = (*PGRepo)(nil)

// Create inserts a new queued run.
func (r *PGRepo) Create(ctx context.Context, run MatchRun) error {
	const query = `
INSERT INTO match_runs (id, user_id, document_id, provider, model, status, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.DB.ExecContext(ctx, query,
		run.ID,
		run.UserID,
		run.DocumentID,
		run.Provider,
		run.Model,
		run.Status,
		run.CreatedAt,
	)
	return err
}

// GetByID returns a run by ID.
func (r *PGRepo) GetByID(ctx context.Context, runID string) (MatchRun, error) {
	const query = `
SELECT id, user_id, document_id, provider, model, status,
       source, ai_state, ai_error, results,
       error_code, error_message, retryable,
       created_at, started_at, completed_at
FROM match_runs
WHERE id = $1
LIMIT 1`
	run, err := scanRun(r.DB.QueryRowContext(ctx, query, runID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MatchRun{}, ErrNotFound
		}
		return MatchRun{}, err
	}
	return run, nil
}

// MarkProcessing transitions a run out of the queue.
func (r *PGRepo) MarkProcessing(ctx context.Context, runID string, startedAt time.Time) error {
	const query = `
UPDATE match_runs
SET status = $2, started_at = $3
WHERE id = $1`
	return r.exec(ctx, query, runID, StatusProcessing, startedAt)
}

// Complete records the reconciled outcome.
func (r *PGRepo) Complete(ctx context.Context, runID string, outcome Outcome, completedAt time.Time) error {
	results, err := json.Marshal(outcome.Results)
	if err != nil {
		return err
	}
	const query = `
UPDATE match_runs
SET status = $2, source = $3, ai_state = $4, ai_error = $5, results = $6, completed_at = $7
WHERE id = $1`
	return r.exec(ctx, query, runID, StatusCompleted, outcome.Source, outcome.AIState, nullString(outcome.AIError), results, completedAt)
}

// Fail records a terminal failure.
func (r *PGRepo) Fail(ctx context.Context, runID, code, message string, retryable bool, completedAt time.Time) error {
	const query = `
UPDATE match_runs
SET status = $2, error_code = $3, error_message = $4, retryable = $5, completed_at = $6
WHERE id = $1`
	return r.exec(ctx, query, runID, StatusFailed, code, message, retryable, completedAt)
}

// ListByUser returns a user's runs, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]MatchRun, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
SELECT id, user_id, document_id, provider, model, status,
       source, ai_state, ai_error, results,
       error_code, error_message, retryable,
       created_at, started_at, completed_at
FROM match_runs
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (r *PGRepo) exec(ctx context.Context, query string, args ...any) error {
	res, err := r.DB.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (MatchRun, error) {
	var run MatchRun
	var source, aiState, aiError, results, errorCode, errorMessage sql.NullString
	var retryable sql.NullBool
	var startedAt, completedAt sql.NullTime
	if err := row.Scan(
		&run.ID,
		&run.UserID,
		&run.DocumentID,
		&run.Provider,
		&run.Model,
		&run.Status,
		&source,
		&aiState,
		&aiError,
		&results,
		&errorCode,
		&errorMessage,
		&retryable,
		&run.CreatedAt,
		&startedAt,
		&completedAt,
	); err != nil {
		return MatchRun{}, err
	}
	if source.Valid {
		run.Source = source.String
	}
	if aiState.Valid {
		run.AIState = aiState.String
	}
	if aiError.Valid {
		run.AIError = aiError.String
	}
	if results.Valid && results.String != "" {
		if err := json.Unmarshal([]byte(results.String), &run.Results); err != nil {
			return MatchRun{}, err
		}
	}
	if errorCode.Valid {
		run.ErrorCode = errorCode.String
	}
	if errorMessage.Valid {
		run.ErrorMessage = errorMessage.String
	}
	if retryable.Valid {
		run.Retryable = retryable.Bool
	}
	if startedAt.Valid {
		t := startedAt.Time
		run.StartedAt = &t
	}
	if completedAt.Valid {
		t := completedAt.Time
		run.CompletedAt = &t
	}
	return run, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
