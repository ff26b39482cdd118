package grammar

import (
	"regexp"

	"github.com/street-parser/internal/lexicon"
)

// Grammar is the compiled pattern set: the three top-level entry grammars
// plus the corner probe used for dispatch. It is built once from a compiled
// Lexicon, immutable afterwards, and safe to share across concurrent parse
// calls. Rebuilding after a lexicon edit means constructing a new Grammar,
// never mutating one in use.
type Grammar struct {
	lex *lexicon.Lexicon

	address      matchFn
	informal     matchFn
	intersection matchFn
	corner       *regexp.Regexp
}

// New compiles the full pattern set from the given lexicon.
func New(lex *lexicon.Lexicon) *Grammar {
	g := &Grammar{lex: lex}

	direct := lex.DirectionalAlternation()
	stype := lex.TypeAlternation()
	province := lex.ProvinceAlternation()

	number := re(`(\d+-?\d*)`, "number")
	fraction := re(`\d+/\d+`)

	// Street shapes, tried in order: a directional used as the street name
	// ("100 South Street"), a grid-style name ending in a digit, a name with
	// a required type, and last the bare-name fallback. The trial order is
	// the disambiguation mechanism and must not be reordered.
	dirAsName := re(`(`+direct+`)\W+((?:`+stype+`)s?)\b`, "street", "type")
	prefix := opt(re(`(`+direct+`)\W+`, "prefix"))
	grid := seq(
		digitRun("street"),
		opt(re(`[^\w,]*(`+direct+`)\b`, "suffix")),
	)
	typed := seq(
		extent("street", notCommaHash, true),
		re(`[^\w,]+((?:`+stype+`)s?)\b`, "type"),
		opt(re(`[^\w,]+(`+direct+`)\b`, "suffix")),
	)
	bare := seq(
		extent("street", notCommaHash, true),
		opt(re(`[^\w,]+((?:`+stype+`)s?)\b`, "type")),
		opt(re(`[^\w,]+(`+direct+`)\b`, "suffix")),
	)
	street := alt(dirAsName, seq(prefix, alt(grid, typed, bare)))

	// Secondary units: keyword-plus-identifier or a bare "#", with the
	// unnumbered designators as fallback. The fuzzy keyword spellings carry
	// an explicit not-followed-by-a-letter check so "lot" never fires
	// inside "lottery".
	numberedKeyword := noLetterAfter(re(
		`(su?i?te|p\W*[om]\W*b(?:ox)?|(?:ap|dep)(?:ar)?t(?:me?nt)?|ro*m|flo*r?|uni?t|bu?i?ld?i?n?g|ha?nga?r|lo?t|pier|slip|spa?ce?|stop|tra?i?le?r|box)`,
		"sec_unit_type"))
	numbered := seq(
		alt(seq(numberedKeyword, re(`\W*`)), re(`(#)\W*`, "sec_unit_type")),
		re(`([\w-]+)`, "sec_unit_num"),
	)
	unnumbered := re(`(ba?se?me?n?t|fro?nt|lo?bby|lowe?r|off?i?ce?|pe?n?t?ho?u?s?e?|rear|side|uppe?r)\b`, "sec_unit_type")
	secUnit := alt(numbered, unnumbered)

	cityProvince := seq(
		extent("city", cityRune, false),
		re(`\W+(`+province+`)\b`, "province"),
	)
	place := seq(
		opt(seq(cityProvince, re(`\W*`))),
		opt(re(`(`+lex.PostalCodePattern()+`)\b`, "postalcode")),
	)

	sep := alt(re(`\W+`), matchFn(eos))

	// Formal address: anchored at both ends, place required to leave no
	// unmatched trailing content.
	g.address = seq(
		re(`[^\w#]*`),
		number,
		re(`\W*`),
		opt(seq(fraction, re(`\W*`))),
		street,
		re(`\W+`),
		opt(seq(secUnit, re(`\W+`))),
		place,
		re(`\W*`),
		matchFn(eos),
	)

	// Informal address: anchored at the start only, everything around the
	// street optional, trailing text tolerated.
	g.informal = seq(
		re(`\s*`),
		opt(seq(secUnit, sep)),
		opt(seq(number, re(`\W*`))),
		opt(seq(fraction, re(`\W*`))),
		street,
		sep,
		opt(seq(secUnit, sep)),
		opt(place),
	)

	corner := lex.CornerPattern()
	g.intersection = seq(
		re(`\W*`),
		renamed(street, renameMap("1")),
		skipLazy(nonWord),
		re(`\s+`+corner+`\s+`),
		renamed(street, renameMap("2")),
		sep,
		place,
		re(`\W*`),
		matchFn(eos),
	)

	g.corner = regexp.MustCompile(`(?i)` + corner)
	return g
}

// Lexicon returns the lexicon this grammar was compiled from.
func (g *Grammar) Lexicon() *lexicon.Lexicon { return g.lex }

// Address runs the formal address grammar. It returns nil on no match,
// never a partial set of bindings.
func (g *Grammar) Address(input string) Bindings { return run(g.address, input) }

// Informal runs the informal address grammar.
func (g *Grammar) Informal(input string) Bindings { return run(g.informal, input) }

// Intersection runs the intersection grammar.
func (g *Grammar) Intersection(input string) Bindings { return run(g.intersection, input) }

// HasCorner reports whether a corner token appears anywhere in the input.
func (g *Grammar) HasCorner(input string) bool { return g.corner.MatchString(input) }

func run(m matchFn, input string) Bindings {
	var out Bindings
	ok := m(input, 0, Bindings{}, func(end int, b Bindings) bool {
		out = b
		return true
	})
	if !ok {
		return nil
	}
	return out
}

func renameMap(n string) map[string]string {
	return map[string]string{
		"prefix": "prefix" + n,
		"street": "street" + n,
		"type":   "type" + n,
		"suffix": "suffix" + n,
	}
}
