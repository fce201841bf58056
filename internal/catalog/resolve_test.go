package catalog

import "testing"

func testSnapshot() Snapshot {
	return Snapshot{
		Universities: []University{
			{ID: "u-mit", Name: "Massachusetts Institute of Technology"},
			{ID: "u-toronto", Name: "University of Toronto"},
			{ID: "u-state", Name: "Central State University"},
		},
		Programs: []Program{
			{ID: "p-1", UniversityID: "u-mit", Name: "PhD in Computer Science", FieldOfStudy: "Computer Science"},
			{ID: "p-2", UniversityID: "u-toronto", Name: "MSc in Computer Science", FieldOfStudy: "Computer Science"},
			{ID: "p-3", UniversityID: "u-toronto", Name: "MSc in Statistics", FieldOfStudy: "Statistics"},
		},
	}
}

func TestResolveUniversity(t *testing.T) {
	snap := testSnapshot()
	cases := []struct {
		name   string
		input  string
		wantID string
		wantOK bool
	}{
		{"exact", "Massachusetts Institute of Technology", "u-mit", true},
		{"exact different case", "university of toronto", "u-toronto", true},
		{"substring", "Toronto", "u-toronto", true},
		{"needle longer than name", "University of Toronto, St. George Campus", "u-toronto", true},
		{"abbreviation", "MIT", "u-mit", true},
		{"abbreviation spaced", "U of T", "u-toronto", true},
		{"unknown", "Rivertown Polytechnic", "", false},
		{"empty", "  ", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u, ok := snap.ResolveUniversity(tc.input)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if ok && u.ID != tc.wantID {
				t.Fatalf("resolved %s, want %s", u.ID, tc.wantID)
			}
		})
	}
}

func TestResolveProgram(t *testing.T) {
	snap := testSnapshot()

	if p, ok := snap.ResolveProgram("u-toronto", "MSc in Statistics"); !ok || p.ID != "p-3" {
		t.Fatalf("exact match failed: %v %v", p, ok)
	}
	// field-of-study fallback
	if p, ok := snap.ResolveProgram("u-toronto", "Computer Science"); !ok || p.ID != "p-2" {
		t.Fatalf("field match failed: %v %v", p, ok)
	}
	// program exists but at a different university
	if _, ok := snap.ResolveProgram("u-mit", "MSc in Statistics"); ok {
		t.Fatal("should not resolve a program across universities")
	}
	if _, ok := snap.ResolveProgram("u-toronto", "Quantum Basketweaving"); ok {
		t.Fatal("should not resolve an unknown program")
	}
}

func TestSnapshotEntriesAndFaculty(t *testing.T) {
	snap := testSnapshot()
	snap.Faculty = []Faculty{
		{ID: "f-1", UniversityID: "u-toronto", ProgramID: "p-2", Name: "A"},
		{ID: "f-2", UniversityID: "u-toronto", ProgramID: "", Name: "B"},
	}

	entries := snap.Entries()
	if len(entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(entries))
	}
	if entries[0].University.ID != "u-mit" || entries[0].Program.ID != "p-1" {
		t.Fatalf("entry order not stable: %+v", entries[0])
	}

	if got := snap.FacultyOf("u-toronto", "p-2"); len(got) != 1 || got[0].ID != "f-1" {
		t.Fatalf("program faculty lookup wrong: %+v", got)
	}
	// program with no attached faculty falls back to university-level faculty
	if got := snap.FacultyOf("u-toronto", "p-3"); len(got) != 1 || got[0].ID != "f-2" {
		t.Fatalf("university fallback wrong: %+v", got)
	}
	if got := snap.FacultyOf("u-mit", "p-1"); len(got) != 0 {
		t.Fatalf("expected no faculty, got %+v", got)
	}
}
