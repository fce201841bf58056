package validation

import "regexp"

// keywordRule awards perMatch points per distinct keyword found, capped so
// breadth is rewarded over repetition.
type keywordRule struct {
	Name     string
	Keywords []string
	PerMatch int
	Cap      int
}

// keywordRules is the weighted category table. Tuning happens here, not in
// control flow.
var keywordRules = []keywordRule{
	{
		Name:     "education terms",
		Keywords: []string{"education", "university", "college", "degree", "bachelor", "master", "phd", "gpa", "graduated", "thesis", "coursework", "diploma"},
		PerMatch: 4,
		Cap:      16,
	},
	{
		Name:     "experience terms",
		Keywords: []string{"experience", "employment", "worked", "internship", "intern", "position", "role", "responsibilities", "promoted", "team"},
		PerMatch: 4,
		Cap:      16,
	},
	{
		Name:     "skills terms",
		Keywords: []string{"skills", "proficient", "fluent", "languages", "tools", "frameworks", "technologies", "expertise"},
		PerMatch: 3,
		Cap:      12,
	},
	{
		Name:     "contact markers",
		Keywords: []string{"email", "phone", "linkedin", "github", "@", "address"},
		PerMatch: 5,
		Cap:      10,
	},
	{
		Name:     "achievement terms",
		Keywords: []string{"award", "honor", "scholarship", "dean's list", "published", "patent", "winner", "certified"},
		PerMatch: 3,
		Cap:      9,
	},
	{
		Name:     "job titles",
		Keywords: []string{"engineer", "developer", "analyst", "manager", "researcher", "scientist", "consultant", "assistant", "director", "designer"},
		PerMatch: 3,
		Cap:      9,
	},
	{
		Name:     "technical nouns",
		Keywords: []string{"python", "java", "javascript", "sql", "c++", "golang", "matlab", "excel", "aws", "docker", "kubernetes", "tensorflow", "react"},
		PerMatch: 2,
		Cap:      10,
	},
	{
		Name:     "action verbs",
		Keywords: []string{"developed", "designed", "implemented", "managed", "led", "created", "built", "improved", "analyzed", "coordinated", "launched", "optimized"},
		PerMatch: 2,
		Cap:      12,
	},
}

// datePatterns detect the chronology markers that CVs almost always carry.
// Each matching pattern adds datePatternPoints, capped at dateBandCap.
var datePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(19|20)\d{2}\b`),
	regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\.?\s+(19|20)\d{2}\b`),
	regexp.MustCompile(`\b(19|20)\d{2}\s*[-–—]\s*(19|20)\d{2}\b`),
	regexp.MustCompile(`(?i)\b(present|current)\b`),
}

const (
	datePatternPoints = 5
	dateBandCap       = 15
)

// structureRule detects layout patterns typical of formatted CVs.
type structureRule struct {
	Name    string
	Pattern *regexp.Regexp
	Points  int
}

var structureRules = []structureRule{
	{"bullet markers", regexp.MustCompile(`(?m)^\s*[-•*·]\s+`), 5},
	{"caps header with colon", regexp.MustCompile(`(?m)^[A-Z][A-Z &]{2,30}:`), 5},
	{"proper-noun pairs", regexp.MustCompile(`\b[A-Z][a-z]+\s+[A-Z][a-z]+\b`), 3},
	{"numeric metrics", regexp.MustCompile(`\b\d+(\.\d+)?\s*(%|percent|years?|months?)\b`), 4},
}

const structureBandCap = 15

const (
	// lengthBonusDivisor converts rune count into bonus points.
	lengthBonusDivisor = 200
	lengthBonusCap     = 10

	// minScore is the weighted score needed for a pass.
	minScore = 40
	// minLength passes regardless of score: a substantial document is
	// probably a CV with unusual wording.
	minLength = 300
	// failsafeLength forces a pass even below minScore; blocking a long
	// legitimate document is worse than accepting an odd one.
	failsafeLength = 1500

	// forcedPassConfidence is reported on a failsafe pass.
	forcedPassConfidence = 60
	// confidenceFloor keeps valid results from reporting unusably low confidence.
	confidenceFloor = 40
)
