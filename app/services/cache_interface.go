package services

import (
	"context"
	"time"

	"github.com/street-parser/app/models"
)

// CacheStats summarizes cache effectiveness.
type CacheStats struct {
	HitRate    float64 `json:"hit_rate"`
	TotalHits  int64   `json:"total_hits"`
	TotalMiss  int64   `json:"total_miss"`
	TotalItems int64   `json:"total_items"`
}

// CacheStore is the storage boundary for parse results. Implementations
// cover in-memory, Redis, MongoDB and the layered hybrid of the last two.
type CacheStore interface {
	// Get returns the cached result for key, with a found flag.
	Get(ctx context.Context, key string) (*models.ParseResult, bool, error)

	// Set stores a result under key.
	Set(ctx context.Context, key string, result *models.ParseResult) error

	// Delete removes one key.
	Delete(ctx context.Context, key string) error

	// Clear removes everything.
	Clear(ctx context.Context) error

	// InvalidateByGrammarVersion removes entries produced by a different
	// lexicon revision. Called after an admin rebuild.
	InvalidateByGrammarVersion(ctx context.Context, grammarVersion string) error

	// GetStats returns hit/miss counters.
	GetStats(ctx context.Context) (*CacheStats, error)

	// Exists reports whether key is present.
	Exists(ctx context.Context, key string) (bool, error)

	// GetTTL returns the remaining lifetime of key.
	GetTTL(ctx context.Context, key string) (time.Duration, error)

	// Close releases the underlying connection, if any.
	Close() error
}
