package lexicon

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/mozillazg/go-unidecode"
	"github.com/xrash/smetrics"
)

// Suggestion is a near-miss table entry offered for an unrecognized token.
type Suggestion struct {
	Token string  `json:"token"`
	Table string  `json:"table"`
	Score float64 `json:"score"`
}

// minSuggestScore filters out candidates that are barely related.
const minSuggestScore = 0.78

// Suggest returns up to limit table entries closest to the given token,
// scored with Jaro-Winkler and tie-broken by Levenshtein distance.
// Comparison is done on lowercased ASCII-folded text so accented input
// still finds plain-ASCII table entries.
func (l *Lexicon) Suggest(token string, limit int) []Suggestion {
	token = strings.ToLower(strings.TrimSpace(unidecode.Unidecode(token)))
	if token == "" || limit <= 0 {
		return nil
	}

	var out []Suggestion
	collect := func(table string, entries map[string]string) {
		for entry := range entries {
			score := smetrics.JaroWinkler(token, entry, 0.7, 4)
			if score < minSuggestScore {
				continue
			}
			out = append(out, Suggestion{Token: entry, Table: table, Score: score})
		}
	}
	collect("street_type", l.StreetTypes)
	collect("province", l.Provinces)
	collect("directional", l.Directionals)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		di := levenshtein.ComputeDistance(token, out[i].Token)
		dj := levenshtein.ComputeDistance(token, out[j].Token)
		if di != dj {
			return di < dj
		}
		return out[i].Token < out[j].Token
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
