package grammar

import (
	"testing"

	"github.com/street-parser/internal/lexicon"
)

func newTestGrammar(t *testing.T) *Grammar {
	t.Helper()
	lex := lexicon.New()
	lex.Compile()
	return New(lex)
}

func TestAddressBindings(t *testing.T) {
	g := newTestGrammar(t)

	tests := []struct {
		name  string
		input string
		want  Bindings
	}{
		{
			name:  "typed street with suffix and postal code",
			input: "845 Rue Sherbrooke O, Montréal, QC H3A 0G4",
			want: Bindings{
				"number":     "845",
				"street":     "Rue Sherbrooke O",
				"city":       "Montréal",
				"province":   "QC",
				"postalcode": "H3A 0G4",
			},
		},
		{
			name:  "street type between name and city",
			input: "123 Main Street, Winnipeg, MB",
			want: Bindings{
				"number":   "123",
				"street":   "Main",
				"type":     "Street",
				"city":     "Winnipeg",
				"province": "MB",
			},
		},
		{
			name:  "prefix directional",
			input: "200 N Main St, Brandon, MB R7A 0A1",
			want: Bindings{
				"number":     "200",
				"prefix":     "N",
				"street":     "Main",
				"type":       "St",
				"city":       "Brandon",
				"province":   "MB",
				"postalcode": "R7A 0A1",
			},
		},
		{
			name:  "directional as street name",
			input: "100 South Street, Halifax, NS",
			want: Bindings{
				"number":   "100",
				"street":   "South",
				"type":     "Street",
				"city":     "Halifax",
				"province": "NS",
			},
		},
		{
			name:  "secondary unit with keyword",
			input: "425 5th Ave, Suite 901, Calgary, AB",
			want: Bindings{
				"number":        "425",
				"street":        "5th",
				"type":          "Ave",
				"sec_unit_type": "Suite",
				"sec_unit_num":  "901",
				"city":          "Calgary",
				"province":      "AB",
			},
		},
		{
			name:  "secondary unit with hash",
			input: "425 5th Ave, #901, Calgary, AB",
			want: Bindings{
				"number":        "425",
				"street":        "5th",
				"type":          "Ave",
				"sec_unit_type": "#",
				"sec_unit_num":  "901",
				"city":          "Calgary",
				"province":      "AB",
			},
		},
		{
			name:  "hyphenated civic number",
			input: "12-34 King St W, Toronto, ON",
			want: Bindings{
				"number":   "12-34",
				"street":   "King",
				"type":     "St",
				"suffix":   "W",
				"city":     "Toronto",
				"province": "ON",
			},
		},
		{
			name:  "grid style street ending in digit",
			input: "4321 Country Road 7, Guelph, ON",
			want: Bindings{
				"number":   "4321",
				"street":   "Country Road 7",
				"city":     "Guelph",
				"province": "ON",
			},
		},
		{
			name:  "postal code without province",
			input: "99 Bank St, K1P 6B9",
			want: Bindings{
				"number":     "99",
				"street":     "Bank",
				"type":       "St",
				"postalcode": "K1P 6B9",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Address(tt.input)
			assertBindings(t, got, tt.want)
		})
	}
}

func TestAddressNoMatch(t *testing.T) {
	g := newTestGrammar(t)

	inputs := []string{
		"",
		"hello",
		"Main Street",          // no civic number
		"2900 Boulevard Edouard-Montpetit", // no separator after street
	}
	for _, input := range inputs {
		if got := g.Address(input); got != nil {
			t.Errorf("Address(%q) = %v, want no match", input, got)
		}
	}
}

func TestInformalBindings(t *testing.T) {
	g := newTestGrammar(t)

	tests := []struct {
		name  string
		input string
		want  Bindings
	}{
		{
			name:  "number and street only",
			input: "2900 Boulevard Edouard-Montpetit",
			want: Bindings{
				"number": "2900",
				"street": "Boulevard Edouard-Montpetit",
			},
		},
		{
			name:  "number street and type",
			input: "123 Main St",
			want: Bindings{
				"number": "123",
				"street": "Main",
				"type":   "St",
			},
		},
		{
			name:  "leading secondary unit",
			input: "Apt 4 123 Main St",
			want: Bindings{
				"sec_unit_type": "Apt",
				"sec_unit_num":  "4",
				"number":        "123",
				"street":        "Main",
				"type":          "St",
			},
		},
		{
			name:  "street without number",
			input: "Main Street",
			want: Bindings{
				"street": "Main",
				"type":   "Street",
			},
		},
		{
			name:  "trailing place still captured",
			input: "240 Sparks St Ottawa ON",
			want: Bindings{
				"number":   "240",
				"street":   "Sparks",
				"type":     "St",
				"city":     "Ottawa",
				"province": "ON",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Informal(tt.input)
			assertBindings(t, got, tt.want)
		})
	}
}

func TestIntersectionBindings(t *testing.T) {
	g := newTestGrammar(t)

	tests := []struct {
		name  string
		input string
		want  Bindings
	}{
		{
			name:  "ampersand corner with place",
			input: "Portage Ave & Main St, Winnipeg, MB",
			want: Bindings{
				"street1":  "Portage",
				"type1":    "Ave",
				"street2":  "Main",
				"type2":    "St",
				"city":     "Winnipeg",
				"province": "MB",
			},
		},
		{
			name:  "word corner",
			input: "Yonge Street and Dundas Street, Toronto, ON",
			want: Bindings{
				"street1":  "Yonge",
				"type1":    "Street",
				"street2":  "Dundas",
				"type2":    "Street",
				"city":     "Toronto",
				"province": "ON",
			},
		},
		{
			name:  "shared plural type binds to second street",
			input: "Main & 2nd Streets",
			want: Bindings{
				"street1": "Main",
				"street2": "2nd",
				"type2":   "Streets",
			},
		},
		{
			name:  "punctuation before corner",
			input: "Hollywood Blvd. & Vine St., Vancouver, BC",
			want: Bindings{
				"street1":  "Hollywood",
				"type1":    "Blvd",
				"street2":  "Vine",
				"type2":    "St",
				"city":     "Vancouver",
				"province": "BC",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Intersection(tt.input)
			assertBindings(t, got, tt.want)
		})
	}
}

func TestHasCorner(t *testing.T) {
	g := newTestGrammar(t)

	tests := []struct {
		input string
		want  bool
	}{
		{"Portage & Main", true},
		{"Yonge and Dundas", true},
		{"5th at Burrard", true},
		{"123 Main St", false},
		{"845 Rue Sherbrooke O, Montréal, QC", false},
		{"200 Strand Ave", false}, // "and" inside a word is not a corner
	}
	for _, tt := range tests {
		if got := g.HasCorner(tt.input); got != tt.want {
			t.Errorf("HasCorner(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func assertBindings(t *testing.T, got, want Bindings) {
	t.Helper()
	if got == nil {
		t.Fatalf("no match, want %v", want)
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("binding %q = %q, want %q", k, got[k], v)
		}
	}
	for k := range got {
		if _, ok := want[k]; !ok {
			t.Errorf("unexpected binding %q = %q", k, got[k])
		}
	}
}
