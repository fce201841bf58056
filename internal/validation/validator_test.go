package validation

import (
	"strings"
	"testing"
)

const richCV = `Jane Doe
jane@example.edu | phone: 555-0100 | linkedin.com/in/janedoe

EDUCATION:
Master of Science, Computer Science, State University, 2021-2023, GPA 3.9
Bachelor of Engineering, Tech College, 2017-2021

EXPERIENCE:
Software Engineer, Acme Corp, Jun 2023 - present
- Developed and implemented data pipelines in Python and SQL
- Improved throughput by 35% over 2 years
- Led a team of 4 engineers

SKILLS:
Python, Java, SQL, AWS, Docker, TensorFlow

AWARDS:
Dean's List scholarship winner, published two papers
`

func TestValidateRichCV(t *testing.T) {
	res := Validate(richCV)
	if !res.IsValid {
		t.Fatalf("expected valid, got %+v", res)
	}
	if res.Confidence < confidenceFloor || res.Confidence > 100 {
		t.Fatalf("confidence out of range: %d", res.Confidence)
	}
	if len(res.Reasons) == 0 {
		t.Fatal("expected scoring reasons")
	}
}

func TestValidateShortProseRejected(t *testing.T) {
	res := Validate("the quick brown fox jumps over a dog")
	if res.IsValid {
		t.Fatalf("expected invalid for 40 chars of prose, got %+v", res)
	}
	if res.Confidence < 0 || res.Confidence > 100 {
		t.Fatalf("confidence out of range: %d", res.Confidence)
	}
}

func TestValidateFailsafeForcesPass(t *testing.T) {
	// long, but with none of the CV vocabulary
	text := strings.Repeat("lorem ipsum dolor sit amet conseq ", 60)
	if len(text) < failsafeLength {
		t.Fatalf("test text too short: %d", len(text))
	}
	res := Validate(text)
	if !res.IsValid {
		t.Fatalf("expected forced pass, got %+v", res)
	}
	if res.Confidence != forcedPassConfidence {
		t.Fatalf("confidence = %d, want fixed %d", res.Confidence, forcedPassConfidence)
	}
}

func TestValidateMonotonicBeyondFailsafe(t *testing.T) {
	base := strings.Repeat("lorem ipsum dolor sit amet conseq ", 60)
	prev := Validate(base)
	for i := 1; i <= 3; i++ {
		longer := base + strings.Repeat("lorem ipsum ", 50*i)
		cur := Validate(longer)
		if prev.IsValid && !cur.IsValid {
			t.Fatalf("validity regressed with longer text at step %d", i)
		}
		prev = cur
	}
}

func TestValidateConfidenceRange(t *testing.T) {
	cases := []string{
		"",
		"x",
		richCV,
		strings.Repeat(richCV, 10),
		strings.Repeat("word ", 1000),
	}
	for _, text := range cases {
		res := Validate(text)
		if res.Confidence < 0 || res.Confidence > 100 {
			t.Fatalf("confidence %d out of [0,100] for input len %d", res.Confidence, len(text))
		}
	}
}

func TestKeywordBreadthOverRepetition(t *testing.T) {
	repeated := strings.Repeat("university ", 20)
	broad := "university college degree bachelor master phd gpa graduated"
	repScore := Validate(repeated)
	broadScore := Validate(broad)
	if broadScore.Confidence <= repScore.Confidence {
		t.Fatalf("breadth (%d) should outscore repetition (%d)", broadScore.Confidence, repScore.Confidence)
	}
}
