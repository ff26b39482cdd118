package requests

// ParseRequest asks for one input to be run through one entry point.
type ParseRequest struct {
	Address string       `json:"address" binding:"required"`
	Command string       `json:"command,omitempty"` // Defaults to location
	Options ParseOptions `json:"options,omitempty"`
}

// ParseOptions tunes a single parse call.
type ParseOptions struct {
	UseCache    bool `json:"use_cache,omitempty"`    // Consult the result cache
	Suggestions bool `json:"suggestions,omitempty"`  // Fuzzy near-miss tokens on unmatched input
	ASCIIFold   bool `json:"ascii_fold,omitempty"`   // Include the transliterated input
	QueueReview bool `json:"queue_review,omitempty"` // Queue unmatched input for human review
}

// BatchParseRequest submits many inputs as one background job.
type BatchParseRequest struct {
	Addresses []string     `json:"addresses" binding:"required,min=1,max=20000"`
	Command   string       `json:"command,omitempty"`
	Options   ParseOptions `json:"options,omitempty"`
}

// AliasRequest adds a spelling to one of the lexical tables.
type AliasRequest struct {
	Table     string `json:"table" binding:"required,oneof=directional street_type province"`
	Alias     string `json:"alias" binding:"required"`
	Canonical string `json:"canonical" binding:"required"`
}

// ReviewResolveRequest closes a review entry.
type ReviewResolveRequest struct {
	ReviewerID string `json:"reviewer_id" binding:"required"`
	Resolution string `json:"resolution,omitempty"` // What was done, usually the alias added
	Ignore     bool   `json:"ignore,omitempty"`     // Mark as noise instead of resolved
}
