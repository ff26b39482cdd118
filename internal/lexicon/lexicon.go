package lexicon

import (
	"regexp"
	"sort"
	"strings"
)

// Lexicon holds the three base lookup tables together with the derived
// state the grammar is compiled from: alternation patterns, the reverse
// directional map and the per-abbreviation street-type patterns.
//
// The base tables may be edited through the Add* helpers; Compile must be
// called afterwards to refresh everything derived. A compiled Lexicon is
// never mutated by lookups and is safe for concurrent readers.
type Lexicon struct {
	Directionals map[string]string
	StreetTypes  map[string]string
	Provinces    map[string]string

	directionalNames map[string]string // code -> full name
	typeCanon        map[string]string // every spelling -> abbreviation

	typeAlternation     string
	directAlternation   string
	provinceAlternation string

	typePatterns map[string]*regexp.Regexp // abbreviation -> whole-word pattern
}

// New builds a Lexicon from the built-in Canadian tables and compiles it.
func New() *Lexicon {
	l := &Lexicon{
		Directionals: copyTable(directionalTable),
		StreetTypes:  copyTable(streetTypeTable),
		Provinces:    copyTable(provinceTable),
	}
	l.Compile()
	return l
}

// Clone returns a deep copy with independent base tables, already compiled.
func (l *Lexicon) Clone() *Lexicon {
	c := &Lexicon{
		Directionals: copyTable(l.Directionals),
		StreetTypes:  copyTable(l.StreetTypes),
		Provinces:    copyTable(l.Provinces),
	}
	c.Compile()
	return c
}

// Compile rebuilds all derived state from the current base tables. It is
// idempotent and must be re-run after any table edit. Callers that share a
// Lexicon across goroutines should compile a fresh copy instead of
// recompiling one that is in use.
func (l *Lexicon) Compile() {
	l.directionalNames = make(map[string]string, len(l.Directionals))
	for name, code := range l.Directionals {
		l.directionalNames[strings.ToUpper(code)] = name
	}

	l.typeCanon = make(map[string]string, len(l.StreetTypes)*2)
	perAbbrev := make(map[string][]string)
	for alias, abbrev := range l.StreetTypes {
		abbrev = strings.ToLower(abbrev)
		l.typeCanon[strings.ToLower(alias)] = abbrev
		l.typeCanon[abbrev] = abbrev
		perAbbrev[abbrev] = append(perAbbrev[abbrev], strings.ToLower(alias))
	}
	for abbrev := range perAbbrev {
		perAbbrev[abbrev] = append(perAbbrev[abbrev], abbrev)
	}

	l.typeAlternation = alternation(mapKeys(l.typeCanon))
	l.directAlternation = l.buildDirectAlternation()
	l.provinceAlternation = l.buildProvinceAlternation()

	l.typePatterns = make(map[string]*regexp.Regexp, len(perAbbrev))
	for abbrev, spellings := range perAbbrev {
		l.typePatterns[abbrev] = regexp.MustCompile(`(?i)\b(?:` + alternation(spellings) + `)\b`)
	}
}

// TypeAlternation returns one pattern alternative covering every street-type
// spelling and abbreviation.
func (l *Lexicon) TypeAlternation() string { return l.typeAlternation }

// DirectionalAlternation covers the full compass names plus their codes with
// optional periods ("NE", "N.E.", "NE.").
func (l *Lexicon) DirectionalAlternation() string { return l.directAlternation }

// ProvinceAlternation covers province full names and their two-letter codes.
func (l *Lexicon) ProvinceAlternation() string { return l.provinceAlternation }

// PostalCodePattern matches the Canadian FSA+LDU format with an optional
// hyphen or space between the halves.
func (l *Lexicon) PostalCodePattern() string {
	return `[a-z][0-9][a-z][\- ]?[0-9][a-z][0-9]`
}

// CornerPattern matches the tokens that mark a street intersection.
func (l *Lexicon) CornerPattern() string {
	return `(?:\band\b|\bat\b|&|@)`
}

// CanonicalDirectional looks up a lowercased directional spelling.
func (l *Lexicon) CanonicalDirectional(s string) (string, bool) {
	code, ok := l.Directionals[s]
	return code, ok
}

// CanonicalType looks up a lowercased street-type spelling.
func (l *Lexicon) CanonicalType(s string) (string, bool) {
	abbrev, ok := l.typeCanon[s]
	return abbrev, ok
}

// CanonicalProvince looks up a lowercased province spelling.
func (l *Lexicon) CanonicalProvince(s string) (string, bool) {
	code, ok := l.Provinces[s]
	return code, ok
}

// DirectionalName resolves a directional code back to its full name.
func (l *Lexicon) DirectionalName(code string) (string, bool) {
	name, ok := l.directionalNames[strings.ToUpper(code)]
	return name, ok
}

// IsStreetType reports whether s (lowercased) is a known street-type
// spelling or abbreviation.
func (l *Lexicon) IsStreetType(s string) bool {
	_, ok := l.typeCanon[s]
	return ok
}

// TypePattern returns the whole-word pattern matching every spelling of the
// given abbreviation, or nil when the abbreviation is unknown.
func (l *Lexicon) TypePattern(abbrev string) *regexp.Regexp {
	return l.typePatterns[strings.ToLower(abbrev)]
}

// AddDirectional registers an extra directional alias. Compile must follow.
func (l *Lexicon) AddDirectional(alias, code string) {
	l.Directionals[strings.ToLower(alias)] = strings.ToUpper(code)
}

// AddStreetType registers an extra street-type alias. Compile must follow.
func (l *Lexicon) AddStreetType(alias, abbrev string) {
	l.StreetTypes[strings.ToLower(alias)] = strings.ToLower(abbrev)
}

// AddProvince registers an extra province alias. Compile must follow.
func (l *Lexicon) AddProvince(alias, code string) {
	l.Provinces[strings.ToLower(alias)] = strings.ToUpper(code)
}

// Stats reports table sizes, used by the admin endpoints.
type Stats struct {
	Directionals int `json:"directionals"`
	StreetTypes  int `json:"street_types"`
	Provinces    int `json:"provinces"`
}

// Stats returns the current base table sizes.
func (l *Lexicon) Stats() Stats {
	return Stats{
		Directionals: len(l.Directionals),
		StreetTypes:  len(l.StreetTypes),
		Provinces:    len(l.Provinces),
	}
}

func (l *Lexicon) buildDirectAlternation() string {
	parts := make([]string, 0, len(l.Directionals)*2)
	for name := range l.Directionals {
		parts = append(parts, regexp.QuoteMeta(name))
	}
	for _, code := range l.Directionals {
		parts = append(parts, dottedCode(code))
	}
	sortLongestFirst(parts)
	return strings.Join(parts, "|")
}

func (l *Lexicon) buildProvinceAlternation() string {
	seen := make(map[string]bool)
	var parts []string
	for name, code := range l.Provinces {
		for _, s := range []string{name, code} {
			s = strings.ToLower(s)
			if !seen[s] {
				seen[s] = true
				parts = append(parts, regexp.QuoteMeta(s))
			}
		}
	}
	sortLongestFirst(parts)
	return strings.Join(parts, "|")
}

// dottedCode turns a directional code into a pattern accepting an optional
// period after each letter, so "NE" also matches "N.E." and "NE.".
func dottedCode(code string) string {
	var b strings.Builder
	for _, r := range code {
		b.WriteRune(r)
		b.WriteString(`\.?`)
	}
	return b.String()
}

// alternation joins spellings longest-first so greedy alternation prefers
// the longer match ("southwest" before "south").
func alternation(spellings []string) string {
	quoted := make([]string, len(spellings))
	for i, s := range spellings {
		quoted[i] = regexp.QuoteMeta(s)
	}
	sortLongestFirst(quoted)
	return strings.Join(quoted, "|")
}

func sortLongestFirst(parts []string) {
	sort.Slice(parts, func(i, j int) bool {
		if len(parts[i]) != len(parts[j]) {
			return len(parts[i]) > len(parts[j])
		}
		return parts[i] < parts[j]
	})
}

func mapKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func copyTable(m map[string]string) map[string]string {
	c := make(map[string]string, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}
