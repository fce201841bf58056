package matching

import (
	"strings"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/profile"
)

const (
	gpaBuffer         = 0.3
	meetsThresholdTier = 0.9

	neutralResearch   = 0.5
	neutralReputation = 0.5
	neutralLocation   = 0.5
	neutralFinancial  = 0.8
	neutralRate       = 0.5
)

// academicFactor scores GPA against the program's declared minimum. Meeting
// the threshold exactly lands on the meets-threshold tier; exceeding it by the
// buffer earns full credit; below it the score tapers by ratio. With no
// declared minimum the factor sits in a neutral 0.7-1.0 band.
func academicFactor(gpa, minGPA *float64) float64 {
	if minGPA == nil || *minGPA <= 0 {
		if gpa == nil {
			return 0.85
		}
		return clamp01(0.7 + 0.3*(*gpa/4.0))
	}
	if gpa == nil {
		return 0.5
	}
	switch {
	case *gpa >= *minGPA+gpaBuffer:
		return 1.0
	case *gpa >= *minGPA:
		return meetsThresholdTier
	default:
		return clamp01(*gpa / *minGPA)
	}
}

// researchFactor is a Jaccard-style overlap between candidate interests and
// program research areas, where two terms match on case-insensitive substring
// containment in either direction. Missing data on either side is neutral.
func researchFactor(interests, areas []string) float64 {
	if len(interests) == 0 || len(areas) == 0 {
		return neutralResearch
	}
	matched := 0
	for _, interest := range interests {
		for _, area := range areas {
			if termsOverlap(interest, area) {
				matched++
				break
			}
		}
	}
	union := len(interests) + len(areas) - matched
	if union <= 0 {
		return neutralResearch
	}
	return clamp01(float64(matched) / float64(union))
}

func termsOverlap(a, b string) bool {
	la := strings.ToLower(strings.TrimSpace(a))
	lb := strings.ToLower(strings.TrimSpace(b))
	if la == "" || lb == "" {
		return false
	}
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// reputationFactor averages ranks across sources and maps them through an
// inverse-linear curve: rank 1 is ~1.0, rank 50 is ~0.3, worse ranks clamp.
func reputationFactor(rankingScores map[string]int) float64 {
	if len(rankingScores) == 0 {
		return neutralReputation
	}
	sum := 0
	for _, rank := range rankingScores {
		sum += rank
	}
	avg := float64(sum) / float64(len(rankingScores))
	score := 1.0 - (avg-1.0)*(0.7/49.0)
	if score < 0.1 {
		return 0.1
	}
	return clamp01(score)
}

// financialFactor is full credit within budget, decaying linearly to zero as
// tuition exceeds the budget by 100%. Missing data is scored optimistically.
func financialFactor(tuition, maxBudget *float64) float64 {
	if tuition == nil || maxBudget == nil || *maxBudget <= 0 {
		return neutralFinancial
	}
	if *tuition <= *maxBudget {
		return 1.0
	}
	over := (*tuition - *maxBudget) / *maxBudget
	return clamp01(1.0 - over)
}

// locationFactor checks declared country/location preferences against the
// university. No declared preference is neutral.
func locationFactor(prefs profile.Preferences, u catalog.University) float64 {
	if len(prefs.Countries) == 0 && len(prefs.Locations) == 0 {
		return neutralLocation
	}
	for _, country := range prefs.Countries {
		if strings.EqualFold(strings.TrimSpace(country), u.Country) {
			return 1.0
		}
	}
	for _, loc := range prefs.Locations {
		if termsOverlap(loc, u.City) || termsOverlap(loc, u.Country) {
			return 1.0
		}
	}
	return 0.2
}

// admissionProbability starts from an even prior, adjusts for GPA standing
// against the program minimum, and rescales by the acceptance rate. Clamped to
// [0.1, 0.95] so no estimate reads as certain either way.
func admissionProbability(gpa, minGPA *float64, rate float64) float64 {
	p := 0.5
	if gpa != nil && minGPA != nil && *minGPA > 0 {
		switch {
		case *gpa >= *minGPA+gpaBuffer:
			p += 0.3
		case *gpa >= *minGPA:
			p += 0.1
		default:
			p -= 0.2
		}
	}
	p *= 0.3 + rate*0.7
	if p < 0.1 {
		return 0.1
	}
	if p > 0.95 {
		return 0.95
	}
	return p
}

// effectiveRate prefers the program's acceptance rate, then the university's,
// then a neutral default.
func effectiveRate(p catalog.Program, u catalog.University) float64 {
	if p.AdmissionRate != nil {
		return *p.AdmissionRate
	}
	if u.AdmissionRate != nil {
		return *u.AdmissionRate
	}
	return neutralRate
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
