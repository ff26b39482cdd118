package models

// ParseResult is the outcome of running one grammar entry point over one
// input string.
type ParseResult struct {
	Input            string            `json:"input"`                  // Raw input text
	Command          string            `json:"command"`                // Entry point that produced the result
	Status           string            `json:"status"`                 // Processing status
	Kind             string            `json:"kind,omitempty"`         // Shape of the field mapping
	Fields           map[string]string `json:"fields"`                 // Named captures after normalization
	ASCIIFolded      string            `json:"ascii_folded,omitempty"` // Input transliterated to ASCII
	Unaccented       string            `json:"unaccented,omitempty"`   // Input with combining marks removed
	Suggestions      []string          `json:"suggestions,omitempty"`  // Near-miss tokens on unmatched input
	GrammarVersion   string            `json:"grammar_version"`        // Lexicon revision the match used
	ProcessingTimeMs float64           `json:"processing_time_ms"`
}

// Command constants name the four entry points.
const (
	CommandLocation     = "location"
	CommandAddress      = "address"
	CommandInformal     = "informal"
	CommandIntersection = "intersection"
)

// Status constants
const (
	StatusMatched   = "matched"
	StatusUnmatched = "unmatched"
)

// Kind constants
const (
	KindAddress      = "address"
	KindIntersection = "intersection"
)

// IsValidCommand reports whether the command names a known entry point.
func IsValidCommand(command string) bool {
	switch command {
	case CommandLocation, CommandAddress, CommandInformal, CommandIntersection:
		return true
	}
	return false
}

// Matched reports whether the result carries a field mapping.
func (r *ParseResult) Matched() bool {
	return r.Status == StatusMatched
}
