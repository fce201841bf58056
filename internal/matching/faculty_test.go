package matching

import (
	"strings"
	"testing"

	"gradmatch-backend/internal/catalog"
)

func testFaculty() []catalog.Faculty {
	return []catalog.Faculty{
		{ID: "f-1", Name: "A", ResearchAreas: []string{"Machine Learning"}, AcceptingStudents: true},
		{ID: "f-2", Name: "B", ResearchAreas: []string{"Machine Learning", "Robotics"}, AcceptingStudents: true},
		{ID: "f-3", Name: "C", ResearchAreas: []string{"Robotics"}, AcceptingStudents: false},
		{ID: "f-4", Name: "D", ResearchAreas: []string{"Databases"}, AcceptingStudents: true},
		{ID: "f-5", Name: "E", ResearchAreas: []string{"Machine Learning", "Robotics", "Vision"}, AcceptingStudents: true},
	}
}

func TestMatchFacultyRankingAndCap(t *testing.T) {
	got := MatchFaculty(testFaculty(), []string{"machine learning"}, []string{"Robotics", "Vision"}, false)

	if len(got) != 2 {
		t.Fatalf("len = %d, want cap of 2", len(got))
	}
	if got[0].FacultyID != "f-5" || got[1].FacultyID != "f-2" {
		t.Fatalf("ranking wrong: %s, %s", got[0].FacultyID, got[1].FacultyID)
	}
	if !strings.Contains(got[0].MatchReason, "Machine Learning") {
		t.Fatalf("reason should name overlapping areas: %q", got[0].MatchReason)
	}
}

func TestMatchFacultyAcceptingFilter(t *testing.T) {
	faculty := []catalog.Faculty{
		{ID: "f-3", Name: "C", ResearchAreas: []string{"Robotics"}, AcceptingStudents: false},
	}
	if got := MatchFaculty(faculty, []string{"robotics"}, nil, false); len(got) != 0 {
		t.Fatalf("non-accepting faculty should be excluded, got %+v", got)
	}
	got := MatchFaculty(faculty, []string{"robotics"}, nil, true)
	if len(got) != 1 || got[0].AcceptingStudents {
		t.Fatalf("include flag should surface non-accepting faculty: %+v", got)
	}
}

func TestMatchFacultyNoTargets(t *testing.T) {
	if got := MatchFaculty(testFaculty(), nil, nil, false); got != nil {
		t.Fatalf("no targets should yield no matches, got %+v", got)
	}
}

func TestMatchFacultyTieKeepsInputOrder(t *testing.T) {
	got := MatchFaculty(testFaculty(), []string{"machine learning"}, nil, false)
	if len(got) != 2 || got[0].FacultyID != "f-1" {
		t.Fatalf("tie should keep input order, got %+v", got)
	}
}
