package normalizer

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/street-parser/internal/lexicon"
)

// Normalizer canonicalizes the field map a successful parse produced.
// It never adds or removes keys except for the redundant-type rule and
// leaves unrecognized values untouched, so running it twice gives the
// same result as running it once.
type Normalizer struct {
	lex                *lexicon.Lexicon
	avoidRedundantType bool
	strip              *regexp.Regexp
}

// Letters, digits, underscore, whitespace, #, & and - survive; every
// other character is dropped from field values.
var stripPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s#&-]`)

func New(lex *lexicon.Lexicon, avoidRedundantType bool) *Normalizer {
	return &Normalizer{
		lex:                lex,
		avoidRedundantType: avoidRedundantType,
		strip:              stripPattern,
	}
}

// Normalize rewrites fields in place and returns the same map.
func (n *Normalizer) Normalize(fields map[string]string) map[string]string {
	for k, v := range fields {
		fields[k] = strings.TrimSpace(n.strip.ReplaceAllString(v, ""))
	}

	for _, k := range []string{"prefix", "prefix1", "prefix2", "suffix", "suffix1", "suffix2"} {
		if v, ok := fields[k]; ok {
			if code, ok := n.lex.CanonicalDirectional(strings.ToLower(v)); ok {
				fields[k] = code
			}
		}
	}

	for _, k := range []string{"type", "type1", "type2"} {
		v, ok := fields[k]
		if !ok {
			continue
		}
		if abbrev, ok := n.lex.CanonicalType(strings.ToLower(v)); ok {
			v = abbrev
		}
		fields[k] = titlecase(v)
	}

	if v, ok := fields["province"]; ok {
		if code, ok := n.lex.CanonicalProvince(strings.ToLower(v)); ok {
			fields["province"] = code
		}
	}

	if n.avoidRedundantType {
		n.dropRedundantType(fields)
	}

	if city, ok := fields["city"]; ok {
		fields["city"] = n.expandCityDirectional(city)
	}

	return fields
}

// dropRedundantType clears a type field when the matching street name
// already contains a spelling of the same type, so "Country Road 7"
// does not also report type "Rd". Intersections carry two street/type
// pairs, each checked independently.
func (n *Normalizer) dropRedundantType(fields map[string]string) {
	for _, sfx := range []string{"", "1", "2"} {
		t, ok := fields["type"+sfx]
		if !ok || t == "" {
			continue
		}
		pat := n.lex.TypePattern(strings.ToLower(t))
		if pat == nil {
			continue
		}
		if pat.MatchString(fields["street"+sfx]) {
			fields["type"+sfx] = ""
		}
	}
}

// expandCityDirectional rewrites a leading directional token in a city
// name to the full word, so "N Bay" becomes "North Bay". A city that is
// only a directional word is left alone.
func (n *Normalizer) expandCityDirectional(city string) string {
	tok, rest, found := strings.Cut(city, " ")
	if !found || rest == "" {
		return city
	}
	lower := strings.ToLower(tok)
	name, ok := n.lex.DirectionalName(lower)
	if !ok {
		if _, isName := n.lex.CanonicalDirectional(lower); !isName {
			return city
		}
		name = lower
	}
	return titlecase(name) + " " + rest
}

func titlecase(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
