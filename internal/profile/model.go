package profile

// Preferences captures the candidate's declared constraints for programs.
type Preferences struct {
	Countries        []string `json:"countries,omitempty"`
	Locations        []string `json:"locations,omitempty"`
	UniversityTypes  []string `json:"universityTypes,omitempty"`
	MaxTuition       *float64 `json:"maxTuition,omitempty"`
	MinAdmissionRate *float64 `json:"minAdmissionRate,omitempty"`
}

// CandidateProfile is the canonical merged view of a candidate used by the
// matching engine.
type CandidateProfile struct {
	GPA               *float64           `json:"gpa,omitempty"`
	TestScores        map[string]float64 `json:"testScores,omitempty"`
	ResearchInterests []string           `json:"researchInterests,omitempty"`
	TargetDegree      string             `json:"targetDegree,omitempty"`
	Preferences       Preferences        `json:"preferences"`

	Publications    []string `json:"publications,omitempty"`
	Projects        []string `json:"projects,omitempty"`
	Experience      []string `json:"experience,omitempty"`
	TechnicalSkills []string `json:"technicalSkills,omitempty"`
	Awards          []string `json:"awards,omitempty"`
}

// CVExtraction holds fields pulled out of the parsed CV text. It is the
// highest-precedence merge source.
type CVExtraction struct {
	GPA               *float64
	TestScores        map[string]float64
	ResearchInterests []string
	TargetDegree      string
	Publications      []string
	Projects          []string
	Experience        []string
	TechnicalSkills   []string
	Awards            []string
}

// StoredAcademicProfile is the previously saved profile, the middle-precedence
// merge source.
type StoredAcademicProfile struct {
	GPA               *float64           `json:"gpa,omitempty"`
	TestScores        map[string]float64 `json:"testScores,omitempty"`
	ResearchInterests []string           `json:"researchInterests,omitempty"`
	TargetDegree      string             `json:"targetDegree,omitempty"`
	Preferences       Preferences        `json:"preferences"`
}
