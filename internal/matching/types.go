package matching

// Match categories describe competitiveness relative to estimated admission
// likelihood.
const (
	CategoryReach  = "reach"
	CategoryTarget = "target"
	CategorySafety = "safety"
)

// FactorScores are the per-dimension components behind an overall score. All
// values live in [0,1].
type FactorScores struct {
	Academic             float64 `json:"academic"`
	Research             float64 `json:"research"`
	Financial            float64 `json:"financial"`
	Location             float64 `json:"location"`
	Reputation           float64 `json:"reputation"`
	AdmissionProbability float64 `json:"admissionProbability"`
}

// MatchResult is one scored recommendation. ProgramID is nil for a
// university-only match where no specific program could be resolved. Scores
// stay on the [0,1] scale internally; conversion to 0-100 happens only at the
// presentation boundary.
type MatchResult struct {
	UniversityID   string         `json:"universityId"`
	UniversityName string         `json:"universityName,omitempty"`
	ProgramID      *string        `json:"programId"`
	ProgramName    string         `json:"programName,omitempty"`
	OverallScore   float64        `json:"overallScore"`
	Category       string         `json:"category"`
	FactorScores   FactorScores   `json:"factorScores"`
	Reasoning      string         `json:"reasoning"`
	Confidence     float64        `json:"confidence"`
	FacultyMatches []FacultyMatch `json:"facultyMatches,omitempty"`
}

// FacultyMatch ranks a faculty member within a matched program.
type FacultyMatch struct {
	FacultyID         string `json:"facultyId"`
	Name              string `json:"name,omitempty"`
	MatchReason       string `json:"matchReason"`
	AcceptingStudents bool   `json:"acceptingStudents"`
}
