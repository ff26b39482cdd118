package services

import (
	"context"
	"sync"
	"time"

	"github.com/street-parser/app/models"
)

// MemoryCacheService is the in-process CacheStore, used when no external
// store is configured and in tests.
type MemoryCacheService struct {
	cache      map[string]*models.ParseResult
	timestamps map[string]time.Time
	mu         sync.RWMutex
	ttl        time.Duration

	hits   int64
	misses int64
}

func NewMemoryCacheService(ttl time.Duration) *MemoryCacheService {
	return &MemoryCacheService{
		cache:      make(map[string]*models.ParseResult),
		timestamps: make(map[string]time.Time),
		ttl:        ttl,
	}
}

func (cs *MemoryCacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	if result, exists := cs.cache[key]; exists {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
			cs.misses++
			return nil, false, nil
		}
		cs.hits++
		return result, true, nil
	}

	cs.misses++
	return nil, false, nil
}

func (cs *MemoryCacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.timestamps[key] = time.Now()
	cs.cache[key] = result
	return nil
}

func (cs *MemoryCacheService) Delete(ctx context.Context, key string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	delete(cs.cache, key)
	delete(cs.timestamps, key)
	return nil
}

func (cs *MemoryCacheService) Clear(ctx context.Context) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache = make(map[string]*models.ParseResult)
	cs.timestamps = make(map[string]time.Time)
	return nil
}

// InvalidateByGrammarVersion drops every entry parsed by a different
// lexicon revision.
func (cs *MemoryCacheService) InvalidateByGrammarVersion(ctx context.Context, grammarVersion string) error {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key, result := range cs.cache {
		if result.GrammarVersion != grammarVersion {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
		}
	}
	return nil
}

func (cs *MemoryCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	stats := &CacheStats{
		TotalHits:  cs.hits,
		TotalMiss:  cs.misses,
		TotalItems: int64(len(cs.cache)),
	}
	if total := cs.hits + cs.misses; total > 0 {
		stats.HitRate = float64(cs.hits) / float64(total)
	}
	return stats, nil
}

func (cs *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	_, exists := cs.cache[key]
	return exists && !cs.isExpired(key), nil
}

func (cs *MemoryCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	timestamp, exists := cs.timestamps[key]
	if !exists {
		return 0, nil
	}
	remaining := cs.ttl - time.Since(timestamp)
	if remaining < 0 {
		return 0, nil
	}
	return remaining, nil
}

// Size returns the number of stored entries, expired ones included.
func (cs *MemoryCacheService) Size() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.cache)
}

// CleanupExpired removes entries past their TTL.
func (cs *MemoryCacheService) CleanupExpired() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	for key := range cs.cache {
		if cs.isExpired(key) {
			delete(cs.cache, key)
			delete(cs.timestamps, key)
		}
	}
}

// StartCleanupWorker sweeps expired entries on a fixed interval.
func (cs *MemoryCacheService) StartCleanupWorker(interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			cs.CleanupExpired()
		}
	}()
}

func (cs *MemoryCacheService) isExpired(key string) bool {
	timestamp, exists := cs.timestamps[key]
	if !exists {
		return true
	}
	return time.Since(timestamp) > cs.ttl
}

func (cs *MemoryCacheService) Close() error {
	return nil
}
