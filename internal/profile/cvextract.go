package profile

import (
	"regexp"
	"strconv"
	"strings"

	"gradmatch-backend/internal/parser"
)

var (
	gpaRe       = regexp.MustCompile(`(?i)\bGPA[:\s]*([0-4](?:\.\d{1,2})?)\s*(?:/\s*([45](?:\.0)?))?`)
	testScoreRe = regexp.MustCompile(`(?i)\b(GRE|TOEFL|IELTS|GMAT|SAT)[:\s]+(\d{1,3}(?:\.\d)?)`)
	interestsRe = regexp.MustCompile(`(?i)research interests?[:\s]+([^\n]+)`)
	degreeRe    = regexp.MustCompile(`(?i)\b(ph\.?d|doctorate|master(?:'s)?|m\.?sc?|m\.?eng|mba|bachelor(?:'s)?|b\.?sc?)\b[^\n,;.]*`)
)

// ExtractFromDocument derives structured candidate fields from a parsed CV
// using rule-based heuristics. It is deliberately conservative: a field that
// cannot be confidently extracted is left unset so lower-precedence sources
// fill it during enhancement.
func ExtractFromDocument(doc parser.ParsedDocument) CVExtraction {
	text := doc.Text
	var out CVExtraction

	if m := gpaRe.FindStringSubmatch(text); m != nil {
		if value, err := strconv.ParseFloat(m[1], 64); err == nil {
			// normalize 5.0-scale reports onto 4.0
			if m[2] != "" {
				if scale, err := strconv.ParseFloat(m[2], 64); err == nil && scale > 4 {
					value = value * 4.0 / scale
				}
			}
			if value >= 0 && value <= 4.0 {
				out.GPA = &value
			}
		}
	}

	for _, m := range testScoreRe.FindAllStringSubmatch(text, -1) {
		if score, err := strconv.ParseFloat(m[2], 64); err == nil {
			if out.TestScores == nil {
				out.TestScores = make(map[string]float64)
			}
			name := strings.ToUpper(m[1])
			if _, ok := out.TestScores[name]; !ok {
				out.TestScores[name] = score
			}
		}
	}

	if m := interestsRe.FindStringSubmatch(text); m != nil {
		out.ResearchInterests = splitList(m[1])
	}

	if m := degreeRe.FindString(text); m != "" {
		out.TargetDegree = strings.TrimSpace(m)
	}

	if skills, ok := doc.Sections[parser.SectionSkills]; ok {
		out.TechnicalSkills = splitList(skills)
	}
	if projects, ok := doc.Sections[parser.SectionProjects]; ok {
		out.Projects = splitLines(projects)
	}
	if experience, ok := doc.Sections[parser.SectionExperience]; ok {
		out.Experience = splitLines(experience)
	}
	if certifications, ok := doc.Sections[parser.SectionCertifications]; ok {
		out.Awards = splitLines(certifications)
	}

	return out
}

// splitList breaks a comma/bullet separated blob into trimmed items.
func splitList(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == '\n' || r == '•' || r == '|'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		item := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(f), "-"))
		if item == "" || len(item) > 80 {
			continue
		}
		out = append(out, item)
	}
	return out
}

// splitLines keeps one item per non-empty line, stripping bullet markers.
func splitLines(raw string) []string {
	lines := strings.Split(raw, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		item := strings.TrimSpace(line)
		item = strings.TrimPrefix(item, "- ")
		item = strings.TrimPrefix(item, "• ")
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
