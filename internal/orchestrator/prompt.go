package orchestrator

import (
	"fmt"
	"sort"
	"strings"

	"gradmatch-backend/internal/catalog"
	"gradmatch-backend/internal/matching"
	"gradmatch-backend/internal/profile"
)

// promptCatalogMax bounds how many catalog entries go into the prompt so its
// size stays controlled on large catalogs.
const promptCatalogMax = 40

// buildCandidateSummary renders the candidate's key attributes as compact
// labeled lines.
func buildCandidateSummary(p profile.CandidateProfile) string {
	var b strings.Builder
	if p.GPA != nil {
		fmt.Fprintf(&b, "GPA: %.2f\n", *p.GPA)
	}
	if len(p.TestScores) > 0 {
		b.WriteString("Test scores: ")
		b.WriteString(formatScores(p.TestScores))
		b.WriteString("\n")
	}
	if p.TargetDegree != "" {
		fmt.Fprintf(&b, "Target degree: %s\n", p.TargetDegree)
	}
	if len(p.ResearchInterests) > 0 {
		fmt.Fprintf(&b, "Research interests: %s\n", strings.Join(p.ResearchInterests, ", "))
	}
	if len(p.TechnicalSkills) > 0 {
		fmt.Fprintf(&b, "Technical skills: %s\n", strings.Join(capList(p.TechnicalSkills, 10), ", "))
	}
	if len(p.Preferences.Countries) > 0 {
		fmt.Fprintf(&b, "Preferred countries: %s\n", strings.Join(p.Preferences.Countries, ", "))
	}
	if p.Preferences.MaxTuition != nil {
		fmt.Fprintf(&b, "Max annual tuition: %.0f\n", *p.Preferences.MaxTuition)
	}
	summary := strings.TrimSpace(b.String())
	if summary == "" {
		return "No structured attributes available."
	}
	return summary
}

// buildProgramCatalog renders a bounded, relevance-filtered subset of catalog
// entries as numbered lines.
func buildProgramCatalog(p profile.CandidateProfile, entries []catalog.Entry) string {
	selected := make([]catalog.Entry, 0, promptCatalogMax)
	for _, e := range entries {
		if matching.Relevant(p, e) {
			selected = append(selected, e)
			if len(selected) == promptCatalogMax {
				break
			}
		}
	}
	// pad with whatever remains when the filter was too aggressive
	if len(selected) < promptCatalogMax {
		seen := make(map[string]bool, len(selected))
		for _, e := range selected {
			seen[e.Program.ID] = true
		}
		for _, e := range entries {
			if len(selected) == promptCatalogMax {
				break
			}
			if !seen[e.Program.ID] {
				selected = append(selected, e)
			}
		}
	}

	var b strings.Builder
	for i, e := range selected {
		fmt.Fprintf(&b, "%d. %s at %s", i+1, e.Program.Name, e.University.Name)
		if len(e.Program.ResearchAreas) > 0 {
			fmt.Fprintf(&b, " (areas: %s)", strings.Join(e.Program.ResearchAreas, ", "))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func formatScores(scores map[string]float64) string {
	parts := make([]string, 0, len(scores))
	for _, name := range sortedKeys(scores) {
		parts = append(parts, fmt.Sprintf("%s %g", name, scores[name]))
	}
	return strings.Join(parts, ", ")
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func capList(items []string, n int) []string {
	if len(items) <= n {
		return items
	}
	return items[:n]
}
