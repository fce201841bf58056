package catalog

import (
	"context"
	"sync"
)

// MemoryRepo serves a fixed in-memory catalog and is safe for concurrent use.
// It backs local development when no database is configured.
type MemoryRepo struct {
	mu   sync.RWMutex
	snap Snapshot
}

var _ Repo = (*MemoryRepo)(nil)

// NewMemoryRepo constructs a MemoryRepo holding the given snapshot.
func NewMemoryRepo(snap Snapshot) *MemoryRepo {
	return &MemoryRepo{snap: snap}
}

// NewSeededMemoryRepo constructs a MemoryRepo with a small built-in catalog.
func NewSeededMemoryRepo() *MemoryRepo {
	return NewMemoryRepo(seedSnapshot())
}

// Snapshot returns a copy of the stored catalog.
func (r *MemoryRepo) Snapshot(ctx context.Context) (Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return Snapshot{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Universities: append([]University(nil), r.snap.Universities...),
		Programs:     append([]Program(nil), r.snap.Programs...),
		Faculty:      append([]Faculty(nil), r.snap.Faculty...),
	}, nil
}

// GetUniversity returns one university by ID.
func (r *MemoryRepo) GetUniversity(ctx context.Context, universityID string) (University, error) {
	if err := ctx.Err(); err != nil {
		return University{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.snap.Universities {
		if u.ID == universityID {
			return u, nil
		}
	}
	return University{}, ErrNotFound
}

// Replace swaps the stored snapshot, for tests and local imports.
func (r *MemoryRepo) Replace(snap Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snap = snap
}

func floatVal(v float64) *float64 { return &v }

func seedSnapshot() Snapshot {
	return Snapshot{
		Universities: []University{
			{
				ID: "u-mit", Name: "Massachusetts Institute of Technology",
				Country: "USA", City: "Cambridge", Type: "private",
				RankingScores: map[string]int{"global": 1, "engineering": 1},
				AdmissionRate: floatVal(0.07), TuitionAnnual: floatVal(58000),
			},
			{
				ID: "u-cmu", Name: "Carnegie Mellon University",
				Country: "USA", City: "Pittsburgh", Type: "private",
				RankingScores: map[string]int{"global": 22, "cs": 1},
				AdmissionRate: floatVal(0.14), TuitionAnnual: floatVal(52000),
			},
			{
				ID: "u-toronto", Name: "University of Toronto",
				Country: "Canada", City: "Toronto", Type: "public",
				RankingScores: map[string]int{"global": 21},
				AdmissionRate: floatVal(0.43), TuitionAnnual: floatVal(35000),
			},
			{
				ID: "u-asu", Name: "Arizona State University",
				Country: "USA", City: "Tempe", Type: "public",
				RankingScores: map[string]int{"global": 130},
				AdmissionRate: floatVal(0.88), TuitionAnnual: floatVal(27000),
			},
		},
		Programs: []Program{
			{
				ID: "p-mit-cs-phd", UniversityID: "u-mit",
				Name: "PhD in Computer Science", DegreeType: "phd", FieldOfStudy: "Computer Science",
				ResearchAreas: []string{"Machine Learning", "Systems", "Robotics"},
				MinGPA:        floatVal(3.7), AdmissionRate: floatVal(0.05),
			},
			{
				ID: "p-cmu-ml-ms", UniversityID: "u-cmu",
				Name: "MS in Machine Learning", DegreeType: "masters", FieldOfStudy: "Machine Learning",
				ResearchAreas: []string{"Machine Learning", "Computer Vision", "NLP"},
				MinGPA:        floatVal(3.5), TuitionAnnual: floatVal(54000), AdmissionRate: floatVal(0.1),
			},
			{
				ID: "p-toronto-cs-ms", UniversityID: "u-toronto",
				Name: "MSc in Computer Science", DegreeType: "masters", FieldOfStudy: "Computer Science",
				ResearchAreas: []string{"Machine Learning", "Theory", "Databases"},
				MinGPA:        floatVal(3.3), AdmissionRate: floatVal(0.25),
			},
			{
				ID: "p-asu-cs-ms", UniversityID: "u-asu",
				Name: "MS in Computer Science", DegreeType: "masters", FieldOfStudy: "Computer Science",
				ResearchAreas: []string{"Software Engineering", "Data Mining"},
				AdmissionRate: floatVal(0.6),
			},
		},
		Faculty: []Faculty{
			{ID: "f-mit-1", UniversityID: "u-mit", ProgramID: "p-mit-cs-phd", Name: "R. Chen",
				ResearchAreas: []string{"Machine Learning", "Reinforcement Learning"}, AcceptingStudents: true},
			{ID: "f-mit-2", UniversityID: "u-mit", ProgramID: "p-mit-cs-phd", Name: "A. Novak",
				ResearchAreas: []string{"Robotics"}, AcceptingStudents: false},
			{ID: "f-cmu-1", UniversityID: "u-cmu", ProgramID: "p-cmu-ml-ms", Name: "S. Iyer",
				ResearchAreas: []string{"Computer Vision", "Machine Learning"}, AcceptingStudents: true},
			{ID: "f-toronto-1", UniversityID: "u-toronto", ProgramID: "", Name: "M. Laurent",
				ResearchAreas: []string{"Databases", "Distributed Systems"}, AcceptingStudents: true},
		},
	}
}
