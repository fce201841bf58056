package matching

import (
	"math"
	"testing"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/profile"
)

func fp(v float64) *float64 { return &v }

func almostEqual(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestAcademicFactor(t *testing.T) {
	cases := []struct {
		name   string
		gpa    *float64
		minGPA *float64
		want   float64
	}{
		{"exceeds buffer", fp(3.9), fp(3.5), 1.0},
		{"exactly at buffer", fp(3.8), fp(3.5), 1.0},
		{"meets threshold exactly", fp(3.5), fp(3.5), meetsThresholdTier},
		{"within buffer", fp(3.6), fp(3.5), meetsThresholdTier},
		{"below threshold tapers", fp(2.8), fp(3.5), 2.8 / 3.5},
		{"far below floors at zero", fp(0.0), fp(3.5), 0.0},
		{"no minimum with gpa", fp(3.0), nil, 0.7 + 0.3*(3.0/4.0)},
		{"no minimum no gpa", nil, nil, 0.85},
		{"minimum but no gpa", nil, fp(3.5), 0.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := academicFactor(tc.gpa, tc.minGPA)
			if !almostEqual(got, tc.want) {
				t.Fatalf("academicFactor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAcademicFactorNeutralBand(t *testing.T) {
	for _, gpa := range []float64{0, 1.5, 2.8, 3.3, 4.0} {
		got := academicFactor(&gpa, nil)
		if got < 0.7 || got > 1.0 {
			t.Fatalf("neutral band violated for gpa %v: %v", gpa, got)
		}
	}
}

func TestResearchFactor(t *testing.T) {
	cases := []struct {
		name      string
		interests []string
		areas     []string
		want      float64
	}{
		{"substring overlap", []string{"machine learning"}, []string{"Machine Learning", "Robotics"}, 0.5},
		{"full overlap", []string{"robotics"}, []string{"Robotics"}, 1.0},
		{"no overlap", []string{"history"}, []string{"Robotics"}, 0.0},
		{"empty interests neutral", nil, []string{"Robotics"}, neutralResearch},
		{"empty areas neutral", []string{"robotics"}, nil, neutralResearch},
		{"abbreviation containment", []string{"ML systems"}, []string{"ML"}, 1.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := researchFactor(tc.interests, tc.areas)
			if !almostEqual(got, tc.want) {
				t.Fatalf("researchFactor = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReputationFactor(t *testing.T) {
	if got := reputationFactor(map[string]int{"global": 1}); !almostEqual(got, 1.0) {
		t.Fatalf("rank 1 = %v, want 1.0", got)
	}
	if got := reputationFactor(map[string]int{"global": 50}); !almostEqual(got, 0.3) {
		t.Fatalf("rank 50 = %v, want 0.3", got)
	}
	if got := reputationFactor(map[string]int{"global": 500}); !almostEqual(got, 0.1) {
		t.Fatalf("deep rank should clamp: %v", got)
	}
	if got := reputationFactor(nil); !almostEqual(got, neutralReputation) {
		t.Fatalf("missing rankings = %v, want neutral", got)
	}
	// averaging across sources
	got := reputationFactor(map[string]int{"global": 1, "national": 99})
	want := 1.0 - (50.0-1.0)*(0.7/49.0)
	if !almostEqual(got, want) {
		t.Fatalf("averaged rank = %v, want %v", got, want)
	}
}

func TestFinancialFactor(t *testing.T) {
	if got := financialFactor(fp(30000), fp(40000)); !almostEqual(got, 1.0) {
		t.Fatalf("within budget = %v", got)
	}
	if got := financialFactor(fp(60000), fp(40000)); !almostEqual(got, 0.5) {
		t.Fatalf("50%% over = %v, want 0.5", got)
	}
	if got := financialFactor(fp(90000), fp(40000)); !almostEqual(got, 0.0) {
		t.Fatalf("over 100%% over = %v, want 0", got)
	}
	if got := financialFactor(nil, fp(40000)); !almostEqual(got, neutralFinancial) {
		t.Fatalf("missing tuition = %v, want optimistic default", got)
	}
	if got := financialFactor(fp(30000), nil); !almostEqual(got, neutralFinancial) {
		t.Fatalf("missing budget = %v, want optimistic default", got)
	}
}

func TestLocationFactor(t *testing.T) {
	u := catalog.University{Country: "Canada", City: "Toronto"}
	if got := locationFactor(profile.Preferences{}, u); !almostEqual(got, neutralLocation) {
		t.Fatalf("no prefs = %v, want neutral", got)
	}
	if got := locationFactor(profile.Preferences{Countries: []string{"canada"}}, u); !almostEqual(got, 1.0) {
		t.Fatalf("country match = %v, want 1.0", got)
	}
	if got := locationFactor(profile.Preferences{Locations: []string{"Toronto"}}, u); !almostEqual(got, 1.0) {
		t.Fatalf("city match = %v, want 1.0", got)
	}
	if got := locationFactor(profile.Preferences{Countries: []string{"Germany"}}, u); !almostEqual(got, 0.2) {
		t.Fatalf("declared mismatch = %v, want 0.2", got)
	}
}

func TestAdmissionProbability(t *testing.T) {
	// strong GPA against a selective program
	got := admissionProbability(fp(3.9), fp(3.5), 0.06)
	want := 0.8 * (0.3 + 0.06*0.7)
	if !almostEqual(got, want) {
		t.Fatalf("probability = %v, want %v", got, want)
	}
	// clamp floor
	if got := admissionProbability(fp(2.0), fp(3.9), 0.01); !almostEqual(got, 0.1) {
		t.Fatalf("floor = %v, want 0.1", got)
	}
	// clamp ceiling
	if got := admissionProbability(fp(4.0), fp(3.0), 1.0); got > 0.95 {
		t.Fatalf("ceiling exceeded: %v", got)
	}
	// bounds over a grid
	for _, gpa := range []*float64{nil, fp(2.0), fp(3.0), fp(4.0)} {
		for _, min := range []*float64{nil, fp(3.0), fp(3.9)} {
			for _, rate := range []float64{0, 0.06, 0.5, 1.0} {
				p := admissionProbability(gpa, min, rate)
				if p < 0.1 || p > 0.95 {
					t.Fatalf("probability %v out of [0.1,0.95]", p)
				}
			}
		}
	}
}
