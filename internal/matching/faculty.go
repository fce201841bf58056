package matching

import (
	"fmt"
	"sort"
	"strings"

	"gradmatch-backend/internal/catalog"
)

// maxFacultyMatches caps the faculty list per program.
const maxFacultyMatches = 2

// MatchFaculty ranks faculty by research overlap with the union of candidate
// interests and program research areas. Only faculty accepting students are
// eligible unless includeNotAccepting is set. At most two entries are
// returned, ties keeping input order.
func MatchFaculty(faculty []catalog.Faculty, candidateInterests, programAreas []string, includeNotAccepting bool) []FacultyMatch {
	targets := append(append([]string(nil), candidateInterests...), programAreas...)
	if len(targets) == 0 {
		return nil
	}

	type ranked struct {
		match   FacultyMatch
		overlap int
	}
	var candidates []ranked
	for _, f := range faculty {
		if !f.AcceptingStudents && !includeNotAccepting {
			continue
		}
		overlapping := overlappingAreas(f.ResearchAreas, targets)
		if len(overlapping) == 0 {
			continue
		}
		candidates = append(candidates, ranked{
			overlap: len(overlapping),
			match: FacultyMatch{
				FacultyID:         f.ID,
				Name:              f.Name,
				MatchReason:       fmt.Sprintf("research overlap: %s", strings.Join(overlapping, ", ")),
				AcceptingStudents: f.AcceptingStudents,
			},
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].overlap > candidates[j].overlap
	})
	if len(candidates) > maxFacultyMatches {
		candidates = candidates[:maxFacultyMatches]
	}

	out := make([]FacultyMatch, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, c.match)
	}
	return out
}

// overlappingAreas returns the faculty areas that overlap any target term,
// de-duplicated, in declaration order.
func overlappingAreas(areas, targets []string) []string {
	var out []string
	seen := make(map[string]bool, len(areas))
	for _, area := range areas {
		key := strings.ToLower(strings.TrimSpace(area))
		if key == "" || seen[key] {
			continue
		}
		for _, target := range targets {
			if termsOverlap(area, target) {
				seen[key] = true
				out = append(out, area)
				break
			}
		}
	}
	return out
}
