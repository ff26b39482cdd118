package lexicon

import (
	"regexp"
	"strings"
	"testing"
)

func TestCanonicalLookups(t *testing.T) {
	lex := New()

	tests := []struct {
		lookup func(string) (string, bool)
		in     string
		want   string
	}{
		{lex.CanonicalDirectional, "north", "N"},
		{lex.CanonicalDirectional, "northeast", "NE"},
		{lex.CanonicalDirectional, "west", "W"},
		{lex.CanonicalType, "street", "st"},
		{lex.CanonicalType, "st", "st"},
		{lex.CanonicalType, "boulevard", "blvd"},
		{lex.CanonicalType, "hiway", "hwy"},
		{lex.CanonicalProvince, "ontario", "ON"},
		{lex.CanonicalProvince, "quebec", "PQ"},
		{lex.CanonicalProvince, "pq", "QC"},
		{lex.CanonicalProvince, "british columbia", "BC"},
	}

	for _, tc := range tests {
		got, ok := tc.lookup(tc.in)
		if !ok {
			t.Errorf("lookup(%q) not found", tc.in)
			continue
		}
		if got != tc.want {
			t.Errorf("lookup(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}

	if _, ok := lex.CanonicalProvince("qc"); ok {
		t.Error("qc resolved; it is not a table key")
	}
	if !lex.IsStreetType("avenue") || lex.IsStreetType("zzz") {
		t.Error("IsStreetType misclassifies")
	}
}

func TestDirectionalName(t *testing.T) {
	lex := New()

	name, ok := lex.DirectionalName("n")
	if !ok || name != "north" {
		t.Errorf("DirectionalName(n) = %q, %v", name, ok)
	}
	if _, ok := lex.DirectionalName("x"); ok {
		t.Error("unknown code resolved")
	}
}

func TestAlternationsMatch(t *testing.T) {
	lex := New()

	direct := regexp.MustCompile(`(?i)\A(?:` + lex.DirectionalAlternation() + `)\z`)
	for _, s := range []string{"N", "N.E.", "NE.", "northwest", "SW"} {
		if !direct.MatchString(s) {
			t.Errorf("directional alternation rejects %q", s)
		}
	}

	types := regexp.MustCompile(`(?i)\A(?:` + lex.TypeAlternation() + `)\z`)
	for _, s := range []string{"Street", "St", "Boulevard", "Cres", "Hiway"} {
		if !types.MatchString(s) {
			t.Errorf("type alternation rejects %q", s)
		}
	}

	prov := regexp.MustCompile(`(?i)\A(?:` + lex.ProvinceAlternation() + `)\z`)
	for _, s := range []string{"Ontario", "ON", "QC", "PQ", "Newfoundland and Labrador"} {
		if !prov.MatchString(s) {
			t.Errorf("province alternation rejects %q", s)
		}
	}

	postal := regexp.MustCompile(`(?i)\A(?:` + lex.PostalCodePattern() + `)\z`)
	for _, s := range []string{"K1P 6B9", "K1P6B9", "k1p-6b9"} {
		if !postal.MatchString(s) {
			t.Errorf("postal pattern rejects %q", s)
		}
	}
	if postal.MatchString("12345") {
		t.Error("postal pattern accepts a ZIP-style number")
	}
}

func TestAlternationLongestFirst(t *testing.T) {
	lex := New()

	// "southwest" must appear before "south" or prefix matching would stop
	// at the shorter spelling.
	alt := lex.DirectionalAlternation()
	if strings.Index(alt, "southwest") > strings.Index(alt, "south|") && strings.Contains(alt, "south|") {
		t.Error("shorter directional sorted before its extension")
	}
}

func TestTypePattern(t *testing.T) {
	lex := New()

	p := lex.TypePattern("Rd")
	if p == nil {
		t.Fatal("no pattern for rd")
	}
	if !p.MatchString("Country Road 7") {
		t.Error("rd pattern misses the full spelling")
	}
	if p.MatchString("Broadway") {
		t.Error("rd pattern matches inside a word")
	}
	if lex.TypePattern("zzz") != nil {
		t.Error("unknown abbreviation yields a pattern")
	}
}

func TestAddAliasAndClone(t *testing.T) {
	lex := New()
	lex.AddStreetType("Carrefour", "carref")
	lex.Compile()

	if got, ok := lex.CanonicalType("carrefour"); !ok || got != "carref" {
		t.Errorf("added alias lookup = %q, %v", got, ok)
	}

	clone := lex.Clone()
	clone.AddProvince("Nunavut Territory", "NU")
	clone.Compile()

	if _, ok := clone.CanonicalProvince("nunavut territory"); !ok {
		t.Error("clone missing its own alias")
	}
	if _, ok := lex.CanonicalProvince("nunavut territory"); ok {
		t.Error("clone alias leaked into the original")
	}
	if _, ok := clone.CanonicalType("carrefour"); !ok {
		t.Error("clone dropped an inherited alias")
	}
}

func TestStats(t *testing.T) {
	lex := New()
	before := lex.Stats()
	if before.Directionals == 0 || before.StreetTypes == 0 || before.Provinces == 0 {
		t.Fatalf("empty stats: %+v", before)
	}

	lex.AddDirectional("uptown", "N")
	lex.Compile()
	if got := lex.Stats().Directionals; got != before.Directionals+1 {
		t.Errorf("directionals = %d, want %d", got, before.Directionals+1)
	}
}
