package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ParseCache is the persisted form of a parse result, keyed by the input
// fingerprint so repeated batch inputs hit the store instead of the
// grammar.
type ParseCache struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Fingerprint    string             `bson:"fingerprint" json:"fingerprint"`         // sha256 of the cache key
	CacheKey       string             `bson:"cache_key" json:"cache_key"`             // command|revision|folded input
	Input          string             `bson:"input" json:"input"`                     // Raw input text
	Command        string             `bson:"command" json:"command"`                 // Entry point used
	Result         ParseResult        `bson:"result" json:"result"`                   // Stored parse outcome
	GrammarVersion string             `bson:"grammar_version" json:"grammar_version"` // Lexicon revision at parse time
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	LastAccessed   time.Time          `bson:"last_accessed" json:"last_accessed"`
	AccessCount    int64              `bson:"access_count" json:"access_count"`
}

// NewParseCache builds a cache document for a fresh result.
func NewParseCache(fingerprint, cacheKey string, result ParseResult) *ParseCache {
	now := time.Now()
	return &ParseCache{
		Fingerprint:    fingerprint,
		CacheKey:       cacheKey,
		Input:          result.Input,
		Command:        result.Command,
		Result:         result,
		GrammarVersion: result.GrammarVersion,
		CreatedAt:      now,
		LastAccessed:   now,
		AccessCount:    1,
	}
}

// UpdateAccess bumps the access statistics.
func (pc *ParseCache) UpdateAccess() {
	pc.LastAccessed = time.Now()
	pc.AccessCount++
}

// IsExpired reports whether the document outlived its TTL.
func (pc *ParseCache) IsExpired(ttlHours int) bool {
	return time.Since(pc.CreatedAt) > time.Duration(ttlHours)*time.Hour
}

// MatchesGrammarVersion reports whether the document was produced by the
// currently loaded lexicon revision.
func (pc *ParseCache) MatchesGrammarVersion(current string) bool {
	return pc.GrammarVersion == current
}
