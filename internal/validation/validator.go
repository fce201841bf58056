// Package validation scores extracted document text for CV-likeness and gates
// downstream processing. Validate is a pure function over the text.
package validation

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Result reports whether text looks like a CV and how confident we are.
type Result struct {
	IsValid    bool     `json:"isValid"`
	Confidence int      `json:"confidence"`
	Reasons    []string `json:"reasons"`
}

// Validate scores the text against the weighted rule tables. No I/O.
func Validate(text string) Result {
	lower := strings.ToLower(text)
	length := utf8.RuneCountInString(text)

	score := 0
	var reasons []string

	for _, rule := range keywordRules {
		distinct := 0
		for _, kw := range rule.Keywords {
			if strings.Contains(lower, kw) {
				distinct++
			}
		}
		if distinct == 0 {
			continue
		}
		points := distinct * rule.PerMatch
		if points > rule.Cap {
			points = rule.Cap
		}
		score += points
		reasons = append(reasons, fmt.Sprintf("%s: %d distinct matches (+%d)", rule.Name, distinct, points))
	}

	dateBand := 0
	for _, pattern := range datePatterns {
		if pattern.MatchString(text) {
			dateBand += datePatternPoints
		}
	}
	if dateBand > dateBandCap {
		dateBand = dateBandCap
	}
	if dateBand > 0 {
		score += dateBand
		reasons = append(reasons, fmt.Sprintf("date patterns (+%d)", dateBand))
	}

	structureBand := 0
	for _, rule := range structureRules {
		if rule.Pattern.MatchString(text) {
			structureBand += rule.Points
		}
	}
	if structureBand > structureBandCap {
		structureBand = structureBandCap
	}
	if structureBand > 0 {
		score += structureBand
		reasons = append(reasons, fmt.Sprintf("structural patterns (+%d)", structureBand))
	}

	lengthBonus := length / lengthBonusDivisor
	if lengthBonus > lengthBonusCap {
		lengthBonus = lengthBonusCap
	}
	if lengthBonus > 0 {
		score += lengthBonus
		reasons = append(reasons, fmt.Sprintf("length bonus (+%d)", lengthBonus))
	}

	switch {
	case score >= minScore:
		return Result{IsValid: true, Confidence: flooredConfidence(score), Reasons: reasons}
	case length >= failsafeLength:
		// Recall over precision: a very long document passes with a fixed
		// moderate confidence even when the weighted score falls short.
		reasons = append(reasons, "forced pass: document length exceeds failsafe threshold")
		return Result{IsValid: true, Confidence: forcedPassConfidence, Reasons: reasons}
	case length >= minLength:
		reasons = append(reasons, "passed on length despite low score")
		return Result{IsValid: true, Confidence: flooredConfidence(score), Reasons: reasons}
	default:
		reasons = append(reasons, fmt.Sprintf("score %d below minimum %d and length %d below minimum %d", score, minScore, length, minLength))
		return Result{IsValid: false, Confidence: clampConfidence(score), Reasons: reasons}
	}
}

func flooredConfidence(score int) int {
	confidence := clampConfidence(score)
	if confidence < confidenceFloor {
		return confidenceFloor
	}
	return confidence
}

func clampConfidence(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
