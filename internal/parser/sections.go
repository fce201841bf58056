package parser

import (
	"strings"
	"unicode"
)

// Section keys form a fixed vocabulary shared with downstream consumers.
const (
	SectionPersonalInfo   = "personalInfo"
	SectionEducation      = "education"
	SectionExperience     = "experience"
	SectionSkills         = "skills"
	SectionProjects       = "projects"
	SectionCertifications = "certifications"
)

const (
	headerMarkerOpen  = "<<SECTION:"
	headerMarkerClose = ">>"
	maxHeaderLen      = 50
)

type sectionAlias struct {
	alias string
	key   string
}

// sectionAliases maps header keywords onto canonical section keys. Order
// matters for substring fallback: more specific aliases come first.
var sectionAliases = []sectionAlias{
	{"work history", SectionExperience},
	{"experience", SectionExperience},
	{"employment", SectionExperience},
	{"accomplishments", SectionExperience},
	{"education", SectionEducation},
	{"academic", SectionEducation},
	{"qualifications", SectionEducation},
	{"skills", SectionSkills},
	{"technologies", SectionSkills},
	{"competencies", SectionSkills},
	{"projects", SectionProjects},
	{"publications", SectionProjects},
	{"research", SectionProjects},
	{"certifications", SectionCertifications},
	{"certificates", SectionCertifications},
	{"licenses", SectionCertifications},
	{"contact", SectionPersonalInfo},
	{"personal", SectionPersonalInfo},
	{"profile", SectionPersonalInfo},
	{"summary", SectionPersonalInfo},
	{"about", SectionPersonalInfo},
}

func lookupAlias(normalized string) (string, bool) {
	for _, entry := range sectionAliases {
		if entry.alias == normalized {
			return entry.key, true
		}
	}
	return "", false
}

// MarkSectionHeaders wraps lines that look like section headers with delimiter
// markers so downstream splitting does not have to re-run the heuristics.
func MarkSectionHeaders(text string) string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		nextBlank := i+1 >= len(lines) || strings.TrimSpace(lines[i+1]) == ""
		if isSectionHeader(line, nextBlank) {
			out = append(out, headerMarkerOpen+strings.TrimSpace(line)+headerMarkerClose)
			continue
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// isSectionHeader treats a line as a header when it is short and either
// followed by a blank line or fully upper-case, and does not look like
// contact info.
func isSectionHeader(line string, followedByBlank bool) bool {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimSuffix(trimmed, ":")
	if trimmed == "" || len(trimmed) >= maxHeaderLen {
		return false
	}
	if strings.ContainsAny(trimmed, "@()") {
		return false
	}
	if !containsLetter(trimmed) {
		return false
	}
	if _, ok := lookupAlias(normalizeHeader(trimmed)); ok {
		return true
	}
	return followedByBlank || isAllUpper(trimmed)
}

// SplitSections maps marked text into the fixed section vocabulary. Text before
// the first recognized header lands in personalInfo.
func SplitSections(marked string) map[string]string {
	sections := make(map[string]string)
	current := SectionPersonalInfo
	var buf strings.Builder

	commit := func() {
		content := strings.TrimSpace(buf.String())
		buf.Reset()
		if content == "" {
			return
		}
		if existing, ok := sections[current]; ok {
			sections[current] = existing + "\n" + content
			return
		}
		sections[current] = content
	}

	for _, line := range strings.Split(marked, "\n") {
		if strings.HasPrefix(line, headerMarkerOpen) && strings.HasSuffix(line, headerMarkerClose) {
			header := strings.TrimSuffix(strings.TrimPrefix(line, headerMarkerOpen), headerMarkerClose)
			commit()
			if key, ok := canonicalSection(header); ok {
				current = key
			}
			// unrecognized headers keep accumulating into the current section
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	commit()

	if len(sections) == 0 {
		return nil
	}
	return sections
}

func canonicalSection(header string) (string, bool) {
	normalized := normalizeHeader(header)
	if key, ok := lookupAlias(normalized); ok {
		return key, true
	}
	for _, entry := range sectionAliases {
		if strings.Contains(normalized, entry.alias) {
			return entry.key, true
		}
	}
	return "", false
}

func normalizeHeader(header string) string {
	lower := strings.ToLower(strings.TrimSpace(header))
	lower = strings.TrimSuffix(lower, ":")
	return strings.Join(strings.Fields(lower), " ")
}

func isAllUpper(s string) bool {
	hasLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			hasLetter = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return hasLetter
}

func containsLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}
