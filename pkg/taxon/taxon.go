// Package taxon normalizes free-text scientific names into structured
// taxonomy. It strips author citations, rejects non-taxonomic identifiers
// such as sequence codes, and splits names into genus, species epithet and
// subspecies.
//
// The stripping rules are an ordered list of heuristic patterns. Rare hybrid
// or unusual trinomial formats may be rejected instead of parsed; callers
// treat a rejection as a dropped row, not as an error.
package taxon

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	// "(Reakirt, 1866)" anywhere in the name.
	parenAuthorRx = regexp.MustCompile(`\s*\([A-Z][a-zA-Z&\s.\-]+,?\s*\d{4}\)`)
	// trailing "Reakirt, 1866" without parentheses.
	commaAuthorRx = regexp.MustCompile(`\s+[A-Z][a-zA-Z&\s.\-]+,\s*\d{4}$`)
	// trailing "Reakirt 1866" without a comma.
	bareAuthorRx = regexp.MustCompile(`\s+[A-Z][a-zA-Z]+\s+\d{4}$`)
)

// EpithetUnknown is the sentinel used for the species epithet when a name
// cannot provide one.
const EpithetUnknown = "sp."

// Parts holds the structured components of a scientific name.
type Parts struct {
	// ScientificName is the cleaned name without author citation.
	// It may be a trinomial when the subspecies came from the name itself.
	ScientificName string
	Genus          string
	// Species is the species epithet only, never the full binomial.
	Species    string
	Subspecies string
}

// statusTokens are taxonomic-status values that leak into subspecies
// columns from mis-mapped sources. They are never real subspecies.
var statusTokens = map[string]struct{}{
	"accepted": {},
	"synonym":  {},
	"doubtful": {},
	"unknown":  {},
	"na":       {},
}

// Clean strips author citations from a scientific name and validates the
// result. It returns an empty string when the input is empty, is a
// non-taxonomic identifier (BOLD code, specimen or sequence code), or does
// not look like a binomial after cleaning.
//
// Citation patterns are removed in a fixed order: parenthesized
// "(Author, Year)" first, then a trailing "Author, Year", then a bare
// "Author Year". Each pattern requires a 4-digit year.
func Clean(raw string) string {
	name := strings.TrimSpace(raw)
	if name == "" {
		return ""
	}

	if strings.HasPrefix(name, "BOLD:") || isSequenceCode(name) {
		return ""
	}

	name = parenAuthorRx.ReplaceAllString(name, "")
	name = commaAuthorRx.ReplaceAllString(name, "")
	name = bareAuthorRx.ReplaceAllString(name, "")

	name = strings.Join(strings.Fields(name), " ")

	parts := strings.Fields(name)
	if len(parts) < 2 {
		return ""
	}
	if !startsUpper(parts[0]) || !startsLower(parts[1]) {
		return ""
	}

	return name
}

// SplitParts derives structured taxonomy from per-source fields.
//
// When both genus and epithet columns are populated they are authoritative
// and the binomial is composed directly, skipping Clean. Otherwise the
// full-name fallback is cleaned and split positionally. The boolean is
// false when no usable name could be derived.
func SplitParts(genus, epithet, infra, fallback string) (Parts, bool) {
	genus = strings.TrimSpace(genus)
	epithet = strings.TrimSpace(epithet)

	if genus != "" && epithet != "" {
		res := Parts{
			ScientificName: genus + " " + epithet,
			Genus:          genus,
			Species:        epithet,
			Subspecies:     NormalizeSubspecies(infra),
		}
		return res, true
	}

	name := Clean(fallback)
	if name == "" {
		return Parts{}, false
	}

	parts := strings.Fields(name)
	res := Parts{
		ScientificName: name,
		Genus:          parts[0],
		Species:        parts[1],
	}
	if len(parts) > 2 {
		res.Subspecies = NormalizeSubspecies(strings.Join(parts[2:], " "))
	}
	return res, true
}

// NormalizeSubspecies normalizes a subspecies value. Placeholders and
// taxonomic-status tokens collapse to an empty string (absent).
func NormalizeSubspecies(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	low := strings.ToLower(s)
	if low == "nan" || low == "none" {
		return ""
	}
	if _, ok := statusTokens[low]; ok {
		return ""
	}
	return s
}

// isSequenceCode reports whether the name starts with two or more uppercase
// letters immediately followed by a digit, e.g. "CAM012345" or "AA1234".
func isSequenceCode(s string) bool {
	var letters int
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			letters++
		case r >= '0' && r <= '9':
			return letters >= 2
		default:
			return false
		}
	}
	return false
}

func startsUpper(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}

func startsLower(s string) bool {
	for _, r := range s {
		return unicode.IsLower(r)
	}
	return false
}
