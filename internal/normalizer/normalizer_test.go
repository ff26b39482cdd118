package normalizer

import (
	"testing"

	"github.com/street-parser/internal/lexicon"
)

func newTestNormalizer(t *testing.T, avoidRedundantType bool) *Normalizer {
	t.Helper()
	lex := lexicon.New()
	lex.Compile()
	return New(lex, avoidRedundantType)
}

func TestNormalizeCanonicalization(t *testing.T) {
	n := newTestNormalizer(t, false)

	tests := []struct {
		name   string
		fields map[string]string
		want   map[string]string
	}{
		{
			name: "type abbreviated and titlecased",
			fields: map[string]string{
				"street": "Main", "type": "Street",
			},
			want: map[string]string{
				"street": "Main", "type": "St",
			},
		},
		{
			name: "full type word abbreviated",
			fields: map[string]string{
				"type": "Boulevard",
			},
			want: map[string]string{
				"type": "Blvd",
			},
		},
		{
			name: "directional prefix and suffix become codes",
			fields: map[string]string{
				"prefix": "North", "suffix": "West",
			},
			want: map[string]string{
				"prefix": "N", "suffix": "W",
			},
		},
		{
			name: "intersection fields canonicalized independently",
			fields: map[string]string{
				"type1": "Streets", "type2": "avenue", "suffix2": "east",
			},
			want: map[string]string{
				"type1": "Streets", "type2": "Ave", "suffix2": "E",
			},
		},
		{
			name: "province name becomes code",
			fields: map[string]string{
				"province": "Ontario",
			},
			want: map[string]string{
				"province": "ON",
			},
		},
		{
			name: "quebec full name keeps the legacy code",
			fields: map[string]string{
				"province": "Quebec",
			},
			want: map[string]string{
				"province": "PQ",
			},
		},
		{
			name: "pq alias maps to QC",
			fields: map[string]string{
				"province": "PQ",
			},
			want: map[string]string{
				"province": "QC",
			},
		},
		{
			name: "QC has no table entry and passes through",
			fields: map[string]string{
				"province": "QC",
			},
			want: map[string]string{
				"province": "QC",
			},
		},
		{
			name: "punctuation stripped but word characters kept",
			fields: map[string]string{
				"street": "St. Laurent!", "city": "Montréal?",
			},
			want: map[string]string{
				"street": "St Laurent", "city": "Montréal",
			},
		},
		{
			name: "city leading directional code expanded",
			fields: map[string]string{
				"city": "N Bay",
			},
			want: map[string]string{
				"city": "North Bay",
			},
		},
		{
			name: "city leading directional name titlecased",
			fields: map[string]string{
				"city": "north Vancouver",
			},
			want: map[string]string{
				"city": "North Vancouver",
			},
		},
		{
			name: "city that is only a directional is untouched",
			fields: map[string]string{
				"city": "North",
			},
			want: map[string]string{
				"city": "North",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := n.Normalize(tt.fields)
			assertFields(t, got, tt.want)
		})
	}
}

func TestNormalizeRedundantType(t *testing.T) {
	n := newTestNormalizer(t, true)

	got := n.Normalize(map[string]string{
		"number": "4321",
		"street": "Country Road 7",
		"type":   "Rd",
	})
	if got["type"] != "" {
		t.Errorf("type = %q, want empty when street already names it", got["type"])
	}

	got = n.Normalize(map[string]string{
		"street": "Main",
		"type":   "Rd",
	})
	if got["type"] != "Rd" {
		t.Errorf("type = %q, want Rd kept when street does not repeat it", got["type"])
	}

	// "Broadway" contains "road" as a substring but not as a word.
	got = n.Normalize(map[string]string{
		"street": "Broadway",
		"type":   "Rd",
	})
	if got["type"] != "Rd" {
		t.Errorf("type = %q, want Rd kept for substring-only overlap", got["type"])
	}
}

func TestNormalizeRedundantTypeIntersection(t *testing.T) {
	n := newTestNormalizer(t, true)

	got := n.Normalize(map[string]string{
		"street1": "Country Road 7",
		"type1":   "Rd",
		"street2": "River Road 9",
		"type2":   "Rd",
	})
	if got["type1"] != "" {
		t.Errorf("type1 = %q, want empty when street1 already names it", got["type1"])
	}
	if got["type2"] != "" {
		t.Errorf("type2 = %q, want empty when street2 already names it", got["type2"])
	}

	got = n.Normalize(map[string]string{
		"street1": "Country Road 7",
		"type1":   "Rd",
		"street2": "Main",
		"type2":   "Rd",
	})
	if got["type1"] != "" || got["type2"] != "Rd" {
		t.Errorf("types = (%q, %q), want only the redundant pair cleared", got["type1"], got["type2"])
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	n := newTestNormalizer(t, true)

	fields := map[string]string{
		"number":     "845",
		"street":     "Rue Sherbrooke O",
		"city":       "N Bay",
		"province":   "ontario",
		"postalcode": "H3A 0G4",
		"type":       "Street",
	}
	once := n.Normalize(cloneFields(fields))
	twice := n.Normalize(cloneFields(once))
	assertFields(t, twice, once)
}

func TestStripDiacritics(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Montréal", "Montreal"},
		{"Québec", "Quebec"},
		{"Main", "Main"},
	}
	for _, tt := range tests {
		if got := StripDiacritics(tt.in); got != tt.want {
			t.Errorf("StripDiacritics(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFoldKey(t *testing.T) {
	if got := FoldKey("Montréal"); got != "montreal" {
		t.Errorf("FoldKey = %q, want montreal", got)
	}
}

func assertFields(t *testing.T, got, want map[string]string) {
	t.Helper()
	for k, v := range want {
		if got[k] != v {
			t.Errorf("field %q = %q, want %q", k, got[k], v)
		}
	}
}

func cloneFields(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
