package catalog

// University is a catalog institution record.
type University struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Country       string         `json:"country,omitempty"`
	City          string         `json:"city,omitempty"`
	Type          string         `json:"type,omitempty"`
	RankingScores map[string]int `json:"rankingScores,omitempty"`
	AdmissionRate *float64       `json:"admissionRate,omitempty"`
	TuitionAnnual *float64       `json:"tuitionAnnual,omitempty"`
}

// Program is a degree program offered by a university.
type Program struct {
	ID            string   `json:"id"`
	UniversityID  string   `json:"universityId"`
	Name          string   `json:"name"`
	DegreeType    string   `json:"degreeType,omitempty"`
	FieldOfStudy  string   `json:"fieldOfStudy,omitempty"`
	ResearchAreas []string `json:"researchAreas,omitempty"`
	MinGPA        *float64 `json:"minGpa,omitempty"`
	TuitionAnnual *float64 `json:"tuitionAnnual,omitempty"`
	AdmissionRate *float64 `json:"admissionRate,omitempty"`
}

// Faculty is a faculty member attached to a program.
type Faculty struct {
	ID                string   `json:"id"`
	UniversityID      string   `json:"universityId"`
	ProgramID         string   `json:"programId,omitempty"`
	Name              string   `json:"name"`
	ResearchAreas     []string `json:"researchAreas,omitempty"`
	AcceptingStudents bool     `json:"acceptingStudents"`
}

// Entry joins a program with its parent university. It is the unit the scoring
// engine consumes.
type Entry struct {
	University University
	Program    Program
}

// Snapshot is a read-only view of the catalog taken at the start of a matching
// run. Slices keep repository order, which downstream sorting uses as the
// stable tie-break.
type Snapshot struct {
	Universities []University
	Programs     []Program
	Faculty      []Faculty
}

// Empty reports whether the snapshot has no universities at all.
func (s Snapshot) Empty() bool {
	return len(s.Universities) == 0
}

// Entries joins every program with its university, preserving university then
// program order. Universities without programs contribute no entries.
func (s Snapshot) Entries() []Entry {
	byID := s.universityIndex()
	out := make([]Entry, 0, len(s.Programs))
	for _, p := range s.Programs {
		u, ok := byID[p.UniversityID]
		if !ok {
			continue
		}
		out = append(out, Entry{University: u, Program: p})
	}
	return out
}

// UniversityByID looks up a university in the snapshot.
func (s Snapshot) UniversityByID(id string) (University, bool) {
	u, ok := s.universityIndex()[id]
	return u, ok
}

// ProgramsOf returns the programs of one university in snapshot order.
func (s Snapshot) ProgramsOf(universityID string) []Program {
	var out []Program
	for _, p := range s.Programs {
		if p.UniversityID == universityID {
			out = append(out, p)
		}
	}
	return out
}

// FacultyOf returns faculty attached to a program, falling back to
// university-level faculty when the program lists none.
func (s Snapshot) FacultyOf(universityID, programID string) []Faculty {
	var out []Faculty
	for _, f := range s.Faculty {
		if f.UniversityID == universityID && f.ProgramID == programID {
			out = append(out, f)
		}
	}
	if len(out) > 0 || programID == "" {
		return out
	}
	for _, f := range s.Faculty {
		if f.UniversityID == universityID && f.ProgramID == "" {
			out = append(out, f)
		}
	}
	return out
}

func (s Snapshot) universityIndex() map[string]University {
	byID := make(map[string]University, len(s.Universities))
	for _, u := range s.Universities {
		byID[u.ID] = u
	}
	return byID
}
