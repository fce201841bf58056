package catalog

import "strings"

// abbreviations maps common institution acronyms onto name fragments that the
// substring pass can find in the catalog.
var abbreviations = map[string]string{
	"mit":      "massachusetts institute of technology",
	"cmu":      "carnegie mellon",
	"caltech":  "california institute of technology",
	"ucla":     "university of california, los angeles",
	"ucb":      "university of california, berkeley",
	"uc":       "university of california",
	"nyu":      "new york university",
	"usc":      "university of southern california",
	"gatech":   "georgia institute of technology",
	"uiuc":     "university of illinois",
	"umich":    "university of michigan",
	"ut":       "university of texas",
	"eth":      "eth zurich",
	"epfl":     "ecole polytechnique federale de lausanne",
	"uoft":     "university of toronto",
	"ubc":      "university of british columbia",
	"lse":      "london school of economics",
	"ucl":      "university college london",
	"tum":      "technical university of munich",
	"kaist":    "korea advanced institute",
	"nus":      "national university of singapore",
	"ntu":      "nanyang technological university",
	"asu":      "arizona state",
	"utaustin": "university of texas at austin",
}

// ResolveUniversity finds a catalog university by name: exact match first,
// then case-insensitive substring in either direction, then the abbreviation
// table. Returns false when nothing in the catalog matches.
func (s Snapshot) ResolveUniversity(name string) (University, bool) {
	needle := normalizeName(name)
	if needle == "" {
		return University{}, false
	}

	for _, u := range s.Universities {
		if normalizeName(u.Name) == needle {
			return u, true
		}
	}
	for _, u := range s.Universities {
		candidate := normalizeName(u.Name)
		if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
			return u, true
		}
	}
	if expanded, ok := abbreviations[strings.ReplaceAll(needle, " ", "")]; ok {
		for _, u := range s.Universities {
			if strings.Contains(normalizeName(u.Name), expanded) {
				return u, true
			}
		}
	}
	return University{}, false
}

// ResolveProgram finds a program of the given university by name, exact then
// substring, also checking the field of study. Returns false when the AI named
// a program the catalog does not carry.
func (s Snapshot) ResolveProgram(universityID, name string) (Program, bool) {
	needle := normalizeName(name)
	if needle == "" {
		return Program{}, false
	}

	programs := s.ProgramsOf(universityID)
	for _, p := range programs {
		if normalizeName(p.Name) == needle {
			return p, true
		}
	}
	for _, p := range programs {
		pname := normalizeName(p.Name)
		field := normalizeName(p.FieldOfStudy)
		if strings.Contains(pname, needle) || strings.Contains(needle, pname) {
			return p, true
		}
		if field != "" && (strings.Contains(field, needle) || strings.Contains(needle, field)) {
			return p, true
		}
	}
	return Program{}, false
}

func normalizeName(name string) string {
	lower := strings.ToLower(strings.TrimSpace(name))
	lower = strings.TrimSuffix(lower, ".")
	return strings.Join(strings.Fields(lower), " ")
}
