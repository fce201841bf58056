package orchestrator

import "testing"

func TestExtractJSONArray(t *testing.T) {
	cases := []struct {
		name   string
		raw    string
		want   string
		wantOK bool
	}{
		{"bare array", `[1,2]`, `[1,2]`, true},
		{"prose wrapped", "Here you go:\n[{\"a\":1}]\nHope that helps!", `[{"a":1}]`, true},
		{"code fence", "```json\n[true]\n```", `[true]`, true},
		{"nested arrays", `[[1],[2]]`, `[[1],[2]]`, true},
		{"bracket inside string", `[{"s":"a ] b"}]`, `[{"s":"a ] b"}]`, true},
		{"escaped quote inside string", `[{"s":"a \" ] b"}]`, `[{"s":"a \" ] b"}]`, true},
		{"unbalanced", `[1,2`, "", false},
		{"no array", `{"a":1}`, "", false},
		{"empty", "", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ExtractJSONArray(tc.raw)
			if ok != tc.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tc.wantOK)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestParseRecommendations(t *testing.T) {
	raw := `Sure! Here are my picks:
[
  {"universityName": "Test University", "programName": "MS in CS", "reasoning": "good fit", "matchScore": 0.9},
  {"universityName": "", "programName": "ignored"},
  {"universityName": "Other University", "programName": "PhD", "matchScore": 0.7}
]`
	recs, err := ParseRecommendations(raw)
	if err != nil {
		t.Fatalf("ParseRecommendations: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("len = %d, want 2 (blank names dropped)", len(recs))
	}
	if recs[0].UniversityName != "Test University" || recs[0].MatchScore != 0.9 {
		t.Fatalf("first rec wrong: %+v", recs[0])
	}
}

func TestParseRecommendationsRejectsNonArrays(t *testing.T) {
	for _, raw := range []string{"no structure here", `{"universityName":"X"}`, `["just","strings"]`} {
		if _, err := ParseRecommendations(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
