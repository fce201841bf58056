package orchestrator

import (
	"encoding/json"
	"errors"
	"strings"
)

// Recommendation is one element of the fixed-shape array the model is asked
// to return.
type Recommendation struct {
	UniversityName string  `json:"universityName"`
	ProgramName    string  `json:"programName"`
	Reasoning      string  `json:"reasoning"`
	MatchScore     float64 `json:"matchScore"`
}

var errNoJSONArray = errors.New("no JSON array in model output")

// ParseRecommendations extracts the first well-formed [...] block from raw
// model text and decodes it. Models wrap output in prose or code fences often
// enough that responses are never trusted to be bare JSON.
func ParseRecommendations(raw string) ([]Recommendation, error) {
	block, ok := ExtractJSONArray(raw)
	if !ok {
		return nil, errNoJSONArray
	}
	var out []Recommendation
	if err := json.Unmarshal([]byte(block), &out); err != nil {
		return nil, err
	}
	var kept []Recommendation
	for _, rec := range out {
		if strings.TrimSpace(rec.UniversityName) == "" {
			continue
		}
		kept = append(kept, rec)
	}
	if len(kept) == 0 {
		return nil, errNoJSONArray
	}
	return kept, nil
}

// ExtractJSONArray scans for the first balanced top-level [...] block,
// tracking string literals and escapes so brackets inside text don't
// terminate the scan early.
func ExtractJSONArray(raw string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if start < 0 {
			if c == '[' {
				start = i
				depth = 1
			}
			continue
		}
		if escaped {
			escaped = false
			continue
		}
		switch c {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '[':
			if !inString {
				depth++
			}
		case ']':
			if !inString {
				depth--
				if depth == 0 {
					return raw[start : i+1], true
				}
			}
		}
	}
	return "", false
}
