package parser

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	spaceRunRe       = regexp.MustCompile(`[ \t]{2,}`)
	blankRunRe       = regexp.MustCompile(`\n{3,}`)
	spaceBeforePunct = regexp.MustCompile(`\s+([,.;:!?])`)
	punctNoSpace     = regexp.MustCompile(`([,;:])([A-Za-z])`)
)

// CleanText normalizes extracted text: collapses repeated whitespace, caps
// consecutive blank lines at one, strips control characters, and normalizes
// spacing around punctuation.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '\n' || r == '\t' || unicode.IsPrint(r) {
			b.WriteRune(r)
		}
	}
	text = b.String()

	text = spaceRunRe.ReplaceAllString(text, " ")
	text = blankRunRe.ReplaceAllString(text, "\n\n")
	text = spaceBeforePunct.ReplaceAllString(text, "$1")
	text = punctNoSpace.ReplaceAllString(text, "$1 $2")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
