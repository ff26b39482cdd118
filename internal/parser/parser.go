package parser

import (
	"strings"

	"go.uber.org/zap"

	"github.com/street-parser/internal/grammar"
	"github.com/street-parser/internal/normalizer"
)

// Options configures parsing behavior.
type Options struct {
	// AvoidRedundantType clears the type field when the street name
	// already spells the type out, as in "Country Road 7".
	AvoidRedundantType bool
}

// Parser ties a compiled grammar to the normalization pass. A Parser is
// immutable and safe for concurrent use; swapping in an edited lexicon
// means building a new Parser.
type Parser struct {
	g    *grammar.Grammar
	norm *normalizer.Normalizer
	log  *zap.Logger
}

func New(g *grammar.Grammar, opts Options, log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{
		g:    g,
		norm: normalizer.New(g.Lexicon(), opts.AvoidRedundantType),
		log:  log,
	}
}

// Grammar returns the compiled grammar this parser runs.
func (p *Parser) Grammar() *grammar.Grammar { return p.g }

// ParseAddress matches the formal address grammar: civic number, street,
// optional secondary unit, place, nothing else. Returns nil on no match,
// never a partially filled map.
func (p *Parser) ParseAddress(input string) map[string]string {
	b := p.g.Address(input)
	if b == nil {
		p.log.Debug("no formal address match", zap.String("input", input))
		return nil
	}
	return p.norm.Normalize(b)
}

// ParseInformalAddress matches the tolerant grammar: the civic number and
// place are optional and trailing text is ignored. A match consisting of
// nothing but a bare street name is rejected, otherwise any word at all
// would parse.
func (p *Parser) ParseInformalAddress(input string) map[string]string {
	b := p.g.Informal(input)
	if b == nil {
		return nil
	}
	if len(b) == 1 {
		if _, only := b["street"]; only {
			p.log.Debug("rejecting bare street match", zap.String("input", input))
			return nil
		}
	}
	return p.norm.Normalize(b)
}

// ParseIntersection matches "street corner street" with an optional
// place. When the second street carries a pluralized type shared by both
// streets ("Main & 2nd Streets"), the depluralized type is copied onto
// both before normalization.
func (p *Parser) ParseIntersection(input string) map[string]string {
	b := p.g.Intersection(input)
	if b == nil {
		return nil
	}
	depluralizeSharedType(b, p.g)
	return p.norm.Normalize(b)
}

// ParseLocation dispatches on shape: input containing a corner token goes
// to the intersection grammar, everything else tries the formal grammar
// and falls back to the informal one.
func (p *Parser) ParseLocation(input string) map[string]string {
	if p.g.HasCorner(input) {
		return p.ParseIntersection(input)
	}
	if fields := p.ParseAddress(input); fields != nil {
		return fields
	}
	return p.ParseInformalAddress(input)
}

// depluralizeSharedType handles the shared plural type of an
// intersection. It applies only when the first street has no type of its
// own (or the same one) and stripping a trailing s from the second type
// still yields a recognized street type.
func depluralizeSharedType(b grammar.Bindings, g *grammar.Grammar) {
	t2, ok := b["type2"]
	if !ok || t2 == "" {
		return
	}
	if t1, ok := b["type1"]; ok && t1 != "" && !strings.EqualFold(t1, t2) {
		return
	}
	lower := strings.ToLower(t2)
	if !strings.HasSuffix(lower, "s") {
		return
	}
	singular := t2[:len(t2)-1]
	if !g.Lexicon().IsStreetType(strings.ToLower(singular)) {
		return
	}
	b["type1"] = singular
	b["type2"] = singular
}
