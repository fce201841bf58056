package profile

import (
	"reflect"
	"testing"

	"gradmatch-backend/internal/parser"
)

func TestExtractFromDocumentGPA(t *testing.T) {
	cases := []struct {
		name string
		text string
		want *float64
	}{
		{"plain", "GPA: 3.75", floatPtr(3.75)},
		{"no colon", "GPA 3.2 overall", floatPtr(3.2)},
		{"five scale", "GPA: 4.5/5", floatPtr(3.6)},
		{"absent", "no grade point anywhere", nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractFromDocument(parser.ParsedDocument{Text: tc.text})
			if tc.want == nil {
				if got.GPA != nil {
					t.Fatalf("GPA = %v, want nil", *got.GPA)
				}
				return
			}
			if got.GPA == nil {
				t.Fatal("GPA = nil, want value")
			}
			if diff := *got.GPA - *tc.want; diff > 0.001 || diff < -0.001 {
				t.Fatalf("GPA = %v, want %v", *got.GPA, *tc.want)
			}
		})
	}
}

func TestExtractFromDocumentScoresAndInterests(t *testing.T) {
	doc := parser.ParsedDocument{
		Text: "GRE: 325\nTOEFL 108\nResearch Interests: distributed systems, machine learning\nGRE: 310",
	}
	got := ExtractFromDocument(doc)

	wantScores := map[string]float64{"GRE": 325, "TOEFL": 108}
	if !reflect.DeepEqual(got.TestScores, wantScores) {
		t.Fatalf("TestScores = %v, want %v (first occurrence wins)", got.TestScores, wantScores)
	}
	wantInterests := []string{"distributed systems", "machine learning"}
	if !reflect.DeepEqual(got.ResearchInterests, wantInterests) {
		t.Fatalf("ResearchInterests = %v, want %v", got.ResearchInterests, wantInterests)
	}
}

func TestExtractFromDocumentSections(t *testing.T) {
	doc := parser.ParsedDocument{
		Text: "Jane Doe",
		Sections: map[string]string{
			parser.SectionSkills:     "Go, Python; Kubernetes\n- Terraform",
			parser.SectionExperience: "- Software Engineer at Acme\n• Intern at Beta Labs\n",
		},
	}
	got := ExtractFromDocument(doc)

	wantSkills := []string{"Go", "Python", "Kubernetes", "Terraform"}
	if !reflect.DeepEqual(got.TechnicalSkills, wantSkills) {
		t.Fatalf("TechnicalSkills = %v, want %v", got.TechnicalSkills, wantSkills)
	}
	wantExp := []string{"Software Engineer at Acme", "Intern at Beta Labs"}
	if !reflect.DeepEqual(got.Experience, wantExp) {
		t.Fatalf("Experience = %v, want %v", got.Experience, wantExp)
	}
}

func TestExtractFromDocumentTargetDegree(t *testing.T) {
	doc := parser.ParsedDocument{Text: "Applying for PhD in Computer Science starting fall 2026"}
	got := ExtractFromDocument(doc)
	if got.TargetDegree == "" {
		t.Fatal("expected a target degree to be extracted")
	}
}
