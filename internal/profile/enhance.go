package profile

import "strings"

// Enhance merges up to three sources into one canonical profile with
// field-level precedence CV > stored profile > base/declared preferences.
// Arrays are unioned and de-duplicated rather than overwritten. Absent sources
// contribute nothing; running Enhance twice with the same inputs yields an
// identical profile.
func Enhance(base CandidateProfile, cv *CVExtraction, stored *StoredAcademicProfile) CandidateProfile {
	out := base

	if stored != nil {
		if stored.GPA != nil {
			out.GPA = stored.GPA
		}
		out.TestScores = mergeScores(out.TestScores, stored.TestScores)
		out.ResearchInterests = unionStrings(out.ResearchInterests, stored.ResearchInterests)
		if strings.TrimSpace(stored.TargetDegree) != "" {
			out.TargetDegree = stored.TargetDegree
		}
		out.Preferences = mergePreferences(out.Preferences, stored.Preferences)
	}

	if cv != nil {
		if cv.GPA != nil {
			out.GPA = cv.GPA
		}
		out.TestScores = mergeScores(out.TestScores, cv.TestScores)
		out.ResearchInterests = unionStrings(out.ResearchInterests, cv.ResearchInterests)
		if strings.TrimSpace(cv.TargetDegree) != "" {
			out.TargetDegree = cv.TargetDegree
		}
		out.Publications = unionStrings(out.Publications, cv.Publications)
		out.Projects = unionStrings(out.Projects, cv.Projects)
		out.Experience = unionStrings(out.Experience, cv.Experience)
		out.TechnicalSkills = unionStrings(out.TechnicalSkills, cv.TechnicalSkills)
		out.Awards = unionStrings(out.Awards, cv.Awards)
	}

	return out
}

// mergeScores overlays entries from overlay onto base without mutating either.
func mergeScores(base, overlay map[string]float64) map[string]float64 {
	if len(overlay) == 0 {
		return base
	}
	out := make(map[string]float64, len(base)+len(overlay))
	for k, v := range base {
		out[normalizeScoreName(k)] = v
	}
	for k, v := range overlay {
		out[normalizeScoreName(k)] = v
	}
	return out
}

func normalizeScoreName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// unionStrings appends items not already present (case-insensitive), keeping
// first-seen casing and order.
func unionStrings(base, extra []string) []string {
	if len(extra) == 0 {
		return base
	}
	seen := make(map[string]bool, len(base)+len(extra))
	out := make([]string, 0, len(base)+len(extra))
	for _, item := range base {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	for _, item := range extra {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func mergePreferences(base, overlay Preferences) Preferences {
	out := base
	out.Countries = unionStrings(out.Countries, overlay.Countries)
	out.Locations = unionStrings(out.Locations, overlay.Locations)
	out.UniversityTypes = unionStrings(out.UniversityTypes, overlay.UniversityTypes)
	if overlay.MaxTuition != nil {
		out.MaxTuition = overlay.MaxTuition
	}
	if overlay.MinAdmissionRate != nil {
		out.MinAdmissionRate = overlay.MinAdmissionRate
	}
	return out
}
