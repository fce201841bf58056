package matching

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/profile"
)

// Factor weights for full program matches. They sum to 1.0; the location
// factor is reported but carries no weight unless the match is
// university-only.
const (
	weightAcademic   = 0.25
	weightResearch   = 0.30
	weightReputation = 0.20
	weightFinancial  = 0.15
	weightAdmission  = 0.10
)

// University-only renormalized weights.
const (
	uniWeightReputation = 0.40
	uniWeightLocation   = 0.30
	uniWeightResearch   = 0.30
)

// Category thresholds operate on the post-clamp overall score.
const (
	safetyScore  = 0.8
	safetyRate   = 0.3
	targetScore  = 0.6
	targetRate   = 0.15
	smallCatalog = 10

	scoreAllConcurrency = 8
)

// Score computes a full multi-factor match between a candidate and one
// catalog entry.
func Score(p profile.CandidateProfile, entry catalog.Entry) MatchResult {
	rate := effectiveRate(entry.Program, entry.University)
	factors := FactorScores{
		Academic:             academicFactor(p.GPA, entry.Program.MinGPA),
		Research:             researchFactor(p.ResearchInterests, entry.Program.ResearchAreas),
		Financial:            financialFactor(programTuition(entry), p.Preferences.MaxTuition),
		Location:             locationFactor(p.Preferences, entry.University),
		Reputation:           reputationFactor(entry.University.RankingScores),
		AdmissionProbability: admissionProbability(p.GPA, entry.Program.MinGPA, rate),
	}

	overall := clamp01(factors.Academic*weightAcademic +
		factors.Research*weightResearch +
		factors.Reputation*weightReputation +
		factors.Financial*weightFinancial +
		factors.AdmissionProbability*weightAdmission)

	programID := entry.Program.ID
	return MatchResult{
		UniversityID:   entry.University.ID,
		UniversityName: entry.University.Name,
		ProgramID:      &programID,
		ProgramName:    entry.Program.Name,
		OverallScore:   overall,
		Category:       categorize(overall, rate),
		FactorScores:   factors,
		Reasoning:      programReasoning(entry, factors),
		Confidence:     confidence(p, entry),
	}
}

// ScoreUniversityOnly scores a match where no specific program resolved.
// Weights are renormalized over reputation, location, and research; the
// research areas come from whatever the caller knows about the university
// (typically the union of its catalog programs).
func ScoreUniversityOnly(p profile.CandidateProfile, u catalog.University, researchAreas []string) MatchResult {
	rate := neutralRate
	if u.AdmissionRate != nil {
		rate = *u.AdmissionRate
	}
	factors := FactorScores{
		Academic:             academicFactor(p.GPA, nil),
		Research:             researchFactor(p.ResearchInterests, researchAreas),
		Financial:            financialFactor(u.TuitionAnnual, p.Preferences.MaxTuition),
		Location:             locationFactor(p.Preferences, u),
		Reputation:           reputationFactor(u.RankingScores),
		AdmissionProbability: admissionProbability(p.GPA, nil, rate),
	}

	overall := clamp01(factors.Reputation*uniWeightReputation +
		factors.Location*uniWeightLocation +
		factors.Research*uniWeightResearch)

	return MatchResult{
		UniversityID:   u.ID,
		UniversityName: u.Name,
		ProgramID:      nil,
		OverallScore:   overall,
		Category:       categorize(overall, rate),
		FactorScores:   factors,
		Reasoning:      fmt.Sprintf("%s matches on university-level factors; the specific program is provisional and was not found in the catalog.", u.Name),
		Confidence:     0.5,
	}
}

// ScoreAll scores every relevant catalog entry concurrently and returns the
// results ordered highest score first. Ties keep catalog order, so identical
// inputs always produce an identical list.
func ScoreAll(ctx context.Context, p profile.CandidateProfile, entries []catalog.Entry) ([]MatchResult, error) {
	eligible := entries
	if len(entries) > smallCatalog {
		eligible = make([]catalog.Entry, 0, len(entries))
		for _, e := range entries {
			if Relevant(p, e) {
				eligible = append(eligible, e)
			}
		}
	}

	results := make([]MatchResult, len(eligible))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(scoreAllConcurrency)
	for i, entry := range eligible {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Score(p, entry)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].OverallScore > results[j].OverallScore
	})
	return results, nil
}

// Relevant is the pre-filter that keeps scoring tractable on large catalogs: a
// program qualifies when its field overlaps the target degree, its research
// areas overlap declared interests, or it is a generic graduate program.
func Relevant(p profile.CandidateProfile, entry catalog.Entry) bool {
	field := strings.ToLower(entry.Program.FieldOfStudy + " " + entry.Program.Name)
	target := strings.ToLower(strings.TrimSpace(p.TargetDegree))
	if target != "" {
		for _, word := range strings.Fields(target) {
			if len(word) >= 3 && strings.Contains(field, word) {
				return true
			}
		}
	}
	for _, interest := range p.ResearchInterests {
		for _, area := range entry.Program.ResearchAreas {
			if termsOverlap(interest, area) {
				return true
			}
		}
	}
	degree := strings.ToLower(entry.Program.DegreeType)
	return degree == "masters" || degree == "master" || strings.Contains(field, "science")
}

func categorize(score, rate float64) string {
	switch {
	case score > safetyScore && rate > safetyRate:
		return CategorySafety
	case score > targetScore && rate > targetRate:
		return CategoryTarget
	default:
		return CategoryReach
	}
}

// confidence reflects how much of the score rests on real data rather than
// neutral defaults.
func confidence(p profile.CandidateProfile, entry catalog.Entry) float64 {
	present := 0
	if p.GPA != nil && entry.Program.MinGPA != nil {
		present++
	}
	if len(p.ResearchInterests) > 0 && len(entry.Program.ResearchAreas) > 0 {
		present++
	}
	if len(entry.University.RankingScores) > 0 {
		present++
	}
	if programTuition(entry) != nil && p.Preferences.MaxTuition != nil {
		present++
	}
	if entry.Program.AdmissionRate != nil || entry.University.AdmissionRate != nil {
		present++
	}
	return clamp01(0.4 + 0.12*float64(present))
}

func programTuition(entry catalog.Entry) *float64 {
	if entry.Program.TuitionAnnual != nil {
		return entry.Program.TuitionAnnual
	}
	return entry.University.TuitionAnnual
}

func programReasoning(entry catalog.Entry, f FactorScores) string {
	var strengths []string
	if f.Research >= 0.5 && f.Research != neutralResearch {
		strengths = append(strengths, "strong research-interest overlap")
	}
	if f.Academic >= meetsThresholdTier {
		strengths = append(strengths, "GPA meets the program requirement")
	}
	if f.Reputation >= 0.7 {
		strengths = append(strengths, "highly ranked institution")
	}
	if f.Financial >= 1.0 {
		strengths = append(strengths, "tuition within budget")
	}
	if len(strengths) == 0 {
		return fmt.Sprintf("%s at %s is a possible fit based on overall profile alignment.",
			entry.Program.Name, entry.University.Name)
	}
	return fmt.Sprintf("%s at %s: %s.", entry.Program.Name, entry.University.Name,
		strings.Join(strengths, "; "))
}
