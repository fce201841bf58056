package matchruns

import (
	"math"
	"time"

	"gradmatch-backend/internal/matching"
)

// RunResponse is the outward-facing representation of a match run. Scores are
// converted from [0,1] to the 0-100 scale here, at the presentation boundary.
type RunResponse struct {
	MatchRunID  string     `json:"matchRunId"`
	DocumentID  string     `json:"documentId"`
	Status      string     `json:"status"`
	Source      string     `json:"source,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`

	Results []ResultResponse `json:"results,omitempty"`

	ErrorCode    string `json:"errorCode,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
	Retryable    bool   `json:"retryable,omitempty"`
}

// ResultResponse is one scored recommendation on the 0-100 scale.
type ResultResponse struct {
	UniversityID   string                  `json:"universityId"`
	UniversityName string                  `json:"universityName,omitempty"`
	ProgramID      *string                 `json:"programId"`
	ProgramName    string                  `json:"programName,omitempty"`
	OverallScore   int                     `json:"overallScore"`
	Category       string                  `json:"category"`
	FactorScores   FactorScoresResponse    `json:"factorScores"`
	Reasoning      string                  `json:"reasoning"`
	Confidence     int                     `json:"confidence"`
	FacultyMatches []matching.FacultyMatch `json:"facultyMatches,omitempty"`
}

// FactorScoresResponse mirrors FactorScores on the 0-100 scale.
type FactorScoresResponse struct {
	Academic             int `json:"academic"`
	Research             int `json:"research"`
	Financial            int `json:"financial"`
	Location             int `json:"location"`
	Reputation           int `json:"reputation"`
	AdmissionProbability int `json:"admissionProbability"`
}

func toResponse(run MatchRun) RunResponse {
	resp := RunResponse{
		MatchRunID:   run.ID,
		DocumentID:   run.DocumentID,
		Status:       run.Status,
		Source:       run.Source,
		CreatedAt:    run.CreatedAt,
		CompletedAt:  run.CompletedAt,
		ErrorCode:    run.ErrorCode,
		ErrorMessage: run.ErrorMessage,
		Retryable:    run.Retryable,
	}
	if run.Status == StatusCompleted {
		resp.Results = make([]ResultResponse, 0, len(run.Results))
		for _, r := range run.Results {
			resp.Results = append(resp.Results, toResultResponse(r))
		}
	}
	return resp
}

func toResultResponse(r matching.MatchResult) ResultResponse {
	return ResultResponse{
		UniversityID:   r.UniversityID,
		UniversityName: r.UniversityName,
		ProgramID:      r.ProgramID,
		ProgramName:    r.ProgramName,
		OverallScore:   scale100(r.OverallScore),
		Category:       r.Category,
		FactorScores: FactorScoresResponse{
			Academic:             scale100(r.FactorScores.Academic),
			Research:             scale100(r.FactorScores.Research),
			Financial:            scale100(r.FactorScores.Financial),
			Location:             scale100(r.FactorScores.Location),
			Reputation:           scale100(r.FactorScores.Reputation),
			AdmissionProbability: scale100(r.FactorScores.AdmissionProbability),
		},
		Reasoning:      r.Reasoning,
		Confidence:     scale100(r.Confidence),
		FacultyMatches: r.FacultyMatches,
	}
}

func scale100(v float64) int {
	scaled := int(math.Round(v * 100))
	if scaled < 0 {
		return 0
	}
	if scaled > 100 {
		return 100
	}
	return scaled
}
