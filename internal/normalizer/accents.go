package normalizer

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// StripDiacritics removes combining marks while leaving base letters
// intact, so "Montréal" becomes "Montreal". The chain is built per call
// because chained transformers carry state.
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// ASCIIFold transliterates to plain ASCII. Unlike StripDiacritics this
// also rewrites letters with no combining-mark decomposition.
func ASCIIFold(s string) string {
	return unidecode.Unidecode(s)
}

// FoldKey produces the lowercase ASCII form used for cache fingerprints
// and fuzzy lookup keys.
func FoldKey(s string) string {
	return strings.ToLower(ASCIIFold(s))
}
