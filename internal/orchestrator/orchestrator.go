package orchestrator

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/llm"
	"gradmatch-backend/internal/matching"
	"gradmatch-backend/internal/profile"
	"gradmatch-backend/internal/shared/telemetry"
)

// State tracks one matching run through the orchestration lifecycle.
type State string

const (
	StateIdle       State = "idle"
	StateRequesting State = "requesting"
	StateSucceeded  State = "succeeded"
	StateTimedOut   State = "timed_out"
	StateFailed     State = "failed"
	StateReconciled State = "reconciled"
	StateDone       State = "done"
)

// Result sources.
const (
	SourceAI       = "ai"
	SourceFallback = "fallback"
	SourceMerged   = "merged"
)

const (
	// minAIResults is the resolved-result count below which the
	// deterministic fallback runs even after a successful AI call.
	minAIResults = 3

	defaultTimeout = 45 * time.Second
)

// ErrNoCatalog is the terminal failure for an empty catalog. It is surfaced
// to the caller rather than masked as zero relevant matches.
var ErrNoCatalog = errors.New("no catalog available")

// Orchestrator runs the AI recommendation call with a hard timeout and
// reconciles its output with deterministic scoring.
type Orchestrator struct {
	client  llm.Client
	timeout time.Duration
}

// New constructs an Orchestrator. A zero timeout falls back to the default.
func New(client llm.Client, timeout time.Duration) *Orchestrator {
	if client == nil {
		client = llm.DisabledClient{}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Orchestrator{client: client, timeout: timeout}
}

// RunResult is the reconciled outcome of one matching run.
type RunResult struct {
	Matches []matching.MatchResult
	Source  string
	AIState State
	AIError string
}

// Run executes one matching session: Idle -> Requesting -> {Succeeded,
// TimedOut, Failed} -> Reconciled -> Done. The catalog snapshot is read-only;
// the session cache is scoped to this call and discarded by the caller
// afterwards.
func (o *Orchestrator) Run(ctx context.Context, p profile.CandidateProfile, snap catalog.Snapshot, cache *SessionCache) (RunResult, error) {
	if snap.Empty() {
		return RunResult{AIState: StateFailed}, ErrNoCatalog
	}
	if cache == nil {
		cache = NewSessionCache()
	}
	entries := snap.Entries()

	aiResults, aiState, aiErr := o.requestAI(ctx, p, snap, entries, cache)

	result := RunResult{AIState: aiState}
	if aiErr != nil {
		result.AIError = aiErr.Error()
	}

	// Reconcile: a healthy AI leg with enough resolved results stands alone;
	// anything less is backed by the deterministic path.
	switch {
	case aiState == StateSucceeded && len(aiResults) >= minAIResults:
		result.Matches = aiResults
		result.Source = SourceAI
	default:
		fallback, err := o.fallback(ctx, p, entries, cache)
		if err != nil {
			return RunResult{AIState: aiState}, err
		}
		if len(aiResults) > 0 {
			result.Matches = mergeResults(aiResults, fallback)
			result.Source = SourceMerged
		} else {
			result.Matches = fallback
			result.Source = SourceFallback
		}
	}

	sort.SliceStable(result.Matches, func(i, j int) bool {
		return result.Matches[i].OverallScore > result.Matches[j].OverallScore
	})
	attachFaculty(result.Matches, p, snap)

	telemetry.Info("match run reconciled", map[string]any{
		"source":   result.Source,
		"ai_state": string(aiState),
		"matches":  len(result.Matches),
	})
	return result, nil
}

// requestAI performs the single outbound call under the hard timeout and
// resolves the model's recommendations against the catalog. The call is never
// retried; a failed leg just hands control to the fallback.
func (o *Orchestrator) requestAI(ctx context.Context, p profile.CandidateProfile, snap catalog.Snapshot, entries []catalog.Entry, cache *SessionCache) ([]matching.MatchResult, State, error) {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	raw, err := o.client.Recommend(callCtx, llm.RecommendInput{
		CandidateSummary: buildCandidateSummary(p),
		ProgramCatalog:   buildProgramCatalog(p, entries),
	})
	if err != nil {
		state := StateFailed
		if errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded {
			state = StateTimedOut
		}
		telemetry.Info("ai recommendation unavailable", map[string]any{
			"state": string(state),
			"err":   err.Error(),
		})
		return nil, state, err
	}

	recs, err := ParseRecommendations(raw)
	if err != nil {
		telemetry.Info("ai output not parseable", map[string]any{"err": err.Error()})
		return nil, StateFailed, err
	}

	results := make([]matching.MatchResult, 0, len(recs))
	for _, rec := range recs {
		results = append(results, o.resolveRecommendation(p, snap, cache, rec))
	}
	return results, StateSucceeded, nil
}

// resolveRecommendation maps one AI recommendation onto the catalog. An
// unresolved program degrades to a university-only match; an unresolved
// university still yields a best-effort entry so resolution failures never
// silently shrink the result list.
func (o *Orchestrator) resolveRecommendation(p profile.CandidateProfile, snap catalog.Snapshot, cache *SessionCache, rec Recommendation) matching.MatchResult {
	u, ok := cache.resolveUniversity(snap, rec.UniversityName)
	if !ok {
		telemetry.Info("university not in catalog", map[string]any{"name": rec.UniversityName})
		synthetic := catalog.University{
			ID:   "ai:" + slug(rec.UniversityName),
			Name: strings.TrimSpace(rec.UniversityName),
		}
		result := matching.ScoreUniversityOnly(p, synthetic, nil)
		result.Confidence = 0.3
		if rec.Reasoning != "" {
			result.Reasoning = rec.Reasoning + " (institution not found in catalog; scores are provisional)"
		}
		return result
	}

	program, ok := cache.resolveProgram(snap, u.ID, rec.ProgramName)
	if !ok {
		result := matching.ScoreUniversityOnly(p, u, universityAreas(snap, u.ID))
		if rec.Reasoning != "" {
			result.Reasoning = rec.Reasoning + " (program not found in catalog; scored on university-level factors)"
		}
		return result
	}

	result := matching.Score(p, catalog.Entry{University: u, Program: program})
	if rec.Reasoning != "" {
		result.Reasoning = rec.Reasoning
	}
	return result
}

func (o *Orchestrator) fallback(ctx context.Context, p profile.CandidateProfile, entries []catalog.Entry, cache *SessionCache) ([]matching.MatchResult, error) {
	if cached, ok := cache.getFallback(); ok {
		return cached, nil
	}
	results, err := matching.ScoreAll(ctx, p, entries)
	if err != nil {
		return nil, err
	}
	cache.putFallback(results)
	return results, nil
}

// mergeResults de-duplicates by (universityId, programId), preferring the
// AI-derived entry and its reasoning when both paths agree on a pair.
func mergeResults(ai, fallback []matching.MatchResult) []matching.MatchResult {
	seen := make(map[string]bool, len(ai)+len(fallback))
	out := make([]matching.MatchResult, 0, len(ai)+len(fallback))
	for _, r := range ai {
		key := mergeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	for _, r := range fallback {
		key := mergeKey(r)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}

func mergeKey(r matching.MatchResult) string {
	programID := ""
	if r.ProgramID != nil {
		programID = *r.ProgramID
	}
	return r.UniversityID + "|" + programID
}

// attachFaculty fills FacultyMatches for every result with a resolved program.
func attachFaculty(results []matching.MatchResult, p profile.CandidateProfile, snap catalog.Snapshot) {
	programsByID := make(map[string]catalog.Program, len(snap.Programs))
	for _, prog := range snap.Programs {
		programsByID[prog.ID] = prog
	}
	for i := range results {
		if results[i].ProgramID == nil {
			continue
		}
		program, ok := programsByID[*results[i].ProgramID]
		if !ok {
			continue
		}
		faculty := snap.FacultyOf(results[i].UniversityID, program.ID)
		results[i].FacultyMatches = matching.MatchFaculty(faculty, p.ResearchInterests, program.ResearchAreas, false)
	}
}

// universityAreas unions the research areas of a university's programs, for
// scoring university-only matches.
func universityAreas(snap catalog.Snapshot, universityID string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, prog := range snap.ProgramsOf(universityID) {
		for _, area := range prog.ResearchAreas {
			key := strings.ToLower(area)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, area)
		}
	}
	return out
}

func slug(name string) string {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(name)))
	if len(fields) == 0 {
		return "unknown"
	}
	return strings.Join(fields, "-")
}
