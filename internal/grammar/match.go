package grammar

import (
	"regexp"
	"unicode"
	"unicode/utf8"
)

// Bindings maps captured field names to the matched text.
type Bindings map[string]string

func (b Bindings) with(name, value string) Bindings {
	nb := make(Bindings, len(b)+1)
	for k, v := range b {
		nb[k] = v
	}
	nb[name] = value
	return nb
}

// acceptFn is the continuation a matcher calls for every candidate match.
// It returns true when the rest of the enclosing pattern succeeded, which
// tells the matcher to stop offering candidates.
type acceptFn func(end int, b Bindings) bool

// matchFn tries to match input starting at pos. Candidates are offered to
// accept in preference order; the return value is whatever the winning
// accept returned, or false when no candidate leads to overall success.
type matchFn func(input string, pos int, b Bindings, accept acceptFn) bool

// seq matches every sub-matcher in order, threading position and bindings.
func seq(ms ...matchFn) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		var step func(i, p int, bb Bindings) bool
		step = func(i, p int, bb Bindings) bool {
			if i == len(ms) {
				return accept(p, bb)
			}
			return ms[i](input, p, bb, func(end int, nb Bindings) bool {
				return step(i+1, end, nb)
			})
		}
		return step(0, pos, b)
	}
}

// alt tries each alternative in order. A later alternative is attempted not
// only when an earlier one fails outright but also when every candidate of
// the earlier one is rejected downstream, so trial order stays meaningful
// on ambiguous input.
func alt(ms ...matchFn) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		for _, m := range ms {
			if m(input, pos, b, accept) {
				return true
			}
		}
		return false
	}
}

// opt prefers matching m and falls back to consuming nothing.
func opt(m matchFn) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		if m(input, pos, b, accept) {
			return true
		}
		return accept(pos, b)
	}
}

// re builds a leaf matcher from a case-insensitive anchored pattern.
// Capture group i binds to names[i-1]; an empty name discards the group.
// A leaf offers a single candidate: the engine's preferred match.
func re(pattern string, names ...string) matchFn {
	rx := regexp.MustCompile(`\A(?i:` + pattern + `)`)
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		m := rx.FindStringSubmatchIndex(input[pos:])
		if m == nil {
			return false
		}
		nb := b
		for i, name := range names {
			if name == "" {
				continue
			}
			lo, hi := m[2*(i+1)], m[2*(i+1)+1]
			if lo < 0 {
				continue
			}
			nb = nb.with(name, input[pos+lo:pos+hi])
		}
		return accept(pos+m[1], nb)
	}
}

// extent binds name to a run of runes allowed by keep. Every non-empty run
// length is a candidate; greedy extents offer the longest first, lazy ones
// the shortest first, mirroring greedy and lazy quantifier preference.
func extent(name string, keep func(rune) bool, greedy bool) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		ends := runEnds(input, pos, keep)
		if greedy {
			for i := len(ends) - 1; i >= 0; i-- {
				if accept(ends[i], b.with(name, input[pos:ends[i]])) {
					return true
				}
			}
		} else {
			for _, end := range ends {
				if accept(end, b.with(name, input[pos:end])) {
					return true
				}
			}
		}
		return false
	}
}

// digitRun binds name to non-comma text that ends in a digit, longest
// candidate first. This is the grid-style street name shape.
func digitRun(name string) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		var ends []int
		for i := pos; i < len(input); {
			r, size := utf8.DecodeRuneInString(input[i:])
			if r == ',' {
				break
			}
			i += size
			if r >= '0' && r <= '9' {
				ends = append(ends, i)
			}
		}
		for i := len(ends) - 1; i >= 0; i-- {
			if accept(ends[i], b.with(name, input[pos:ends[i]])) {
				return true
			}
		}
		return false
	}
}

// skipLazy consumes a run of runes allowed by keep without binding
// anything, preferring to consume as little as possible.
func skipLazy(keep func(rune) bool) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		if accept(pos, b) {
			return true
		}
		for i := pos; i < len(input); {
			r, size := utf8.DecodeRuneInString(input[i:])
			if !keep(r) {
				return false
			}
			i += size
			if accept(i, b) {
				return true
			}
		}
		return false
	}
}

// eos matches the empty string at end of input only.
func eos(input string, pos int, b Bindings, accept acceptFn) bool {
	if pos != len(input) {
		return false
	}
	return accept(pos, b)
}

// noLetterAfter rejects candidates of m that are immediately followed by a
// letter, so abbreviated unit keywords do not fire inside longer words.
func noLetterAfter(m matchFn) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		return m(input, pos, b, func(end int, nb Bindings) bool {
			if end < len(input) {
				r, _ := utf8.DecodeRuneInString(input[end:])
				if unicode.IsLetter(r) {
					return false
				}
			}
			return accept(end, nb)
		})
	}
}

// renamed runs m with fresh bindings and merges them back after applying
// the rename mapping, so a sub-grammar's captures can be relocated (street
// to street1 and so on) by the parent.
func renamed(m matchFn, mapping map[string]string) matchFn {
	return func(input string, pos int, b Bindings, accept acceptFn) bool {
		return m(input, pos, Bindings{}, func(end int, inner Bindings) bool {
			merged := b
			for k, v := range inner {
				if nk, ok := mapping[k]; ok {
					k = nk
				}
				merged = merged.with(k, v)
			}
			return accept(end, merged)
		})
	}
}

func runEnds(input string, pos int, keep func(rune) bool) []int {
	var ends []int
	for i := pos; i < len(input); {
		r, size := utf8.DecodeRuneInString(input[i:])
		if !keep(r) {
			break
		}
		i += size
		ends = append(ends, i)
	}
	return ends
}

func notCommaHash(r rune) bool { return r != ',' && r != '#' }

func cityRune(r rune) bool { return r != ',' && !unicode.IsDigit(r) }

func nonWord(r rune) bool {
	return !(r == '_' || (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
}
