package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/street-parser/app/models"
)

// HybridCacheService layers Redis in front of MongoDB. Reads fall
// through Redis to the persistent store and backfill asynchronously;
// writes go to both.
type HybridCacheService struct {
	redisCache *RedisCacheService
	mongoCache *MongoCacheService
	logger     *zap.Logger
}

func NewHybridCacheService(redisCache *RedisCacheService, mongoCache *MongoCacheService, logger *zap.Logger) *HybridCacheService {
	return &HybridCacheService{
		redisCache: redisCache,
		mongoCache: mongoCache,
		logger:     logger,
	}
}

func (hcs *HybridCacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	result, found, err := hcs.redisCache.Get(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis cache error, falling back to mongo", zap.Error(err))
	} else if found {
		return result, true, nil
	}

	result, found, err = hcs.mongoCache.Get(ctx, key)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}

	// Backfill Redis off the request path.
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := hcs.redisCache.Set(bgCtx, key, result); err != nil {
			hcs.logger.Warn("mongo to redis backfill failed", zap.Error(err), zap.String("key", key))
		}
	}()

	return result, true, nil
}

func (hcs *HybridCacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	errCh := make(chan error, 2)

	go func() {
		err := hcs.redisCache.Set(ctx, key, result)
		if err != nil {
			hcs.logger.Warn("redis set failed", zap.Error(err))
		}
		errCh <- err
	}()

	go func() {
		err := hcs.mongoCache.Set(ctx, key, result)
		if err != nil {
			hcs.logger.Warn("mongo set failed", zap.Error(err))
		}
		errCh <- err
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("cache errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) Delete(ctx context.Context, key string) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.redisCache.Delete(ctx, key)
	}()
	go func() {
		errCh <- hcs.mongoCache.Delete(ctx, key)
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("delete errors: %v", errs)
	}
	return nil
}

func (hcs *HybridCacheService) Clear(ctx context.Context) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.redisCache.Clear(ctx)
	}()
	go func() {
		errCh <- hcs.mongoCache.Clear(ctx)
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("clear errors: %v", errs)
	}

	hcs.logger.Info("hybrid cache cleared")
	return nil
}

func (hcs *HybridCacheService) InvalidateByGrammarVersion(ctx context.Context, grammarVersion string) error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.redisCache.InvalidateByGrammarVersion(ctx, grammarVersion)
	}()
	go func() {
		errCh <- hcs.mongoCache.InvalidateByGrammarVersion(ctx, grammarVersion)
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalidate errors: %v", errs)
	}

	hcs.logger.Info("hybrid cache invalidated", zap.String("grammar_version", grammarVersion))
	return nil
}

func (hcs *HybridCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	redisStats, redisErr := hcs.redisCache.GetStats(ctx)
	mongoStats, mongoErr := hcs.mongoCache.GetStats(ctx)

	if redisErr != nil && mongoErr != nil {
		return nil, fmt.Errorf("both cache layers failed: %v, %v", redisErr, mongoErr)
	}

	combinedStats := &CacheStats{}
	switch {
	case redisErr == nil && mongoErr == nil:
		totalHits := redisStats.TotalHits + mongoStats.TotalHits
		totalMiss := redisStats.TotalMiss + mongoStats.TotalMiss
		if total := totalHits + totalMiss; total > 0 {
			combinedStats.HitRate = float64(totalHits) / float64(total)
		}
		combinedStats.TotalHits = totalHits
		combinedStats.TotalMiss = totalMiss
		combinedStats.TotalItems = redisStats.TotalItems + mongoStats.TotalItems
	case redisErr == nil:
		*combinedStats = *redisStats
	default:
		*combinedStats = *mongoStats
	}

	return combinedStats, nil
}

func (hcs *HybridCacheService) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := hcs.redisCache.Exists(ctx, key)
	if err != nil {
		hcs.logger.Warn("redis exists check failed, falling back to mongo", zap.Error(err))
	} else if exists {
		return true, nil
	}

	return hcs.mongoCache.Exists(ctx, key)
}

// GetTTL answers from the Redis layer; the persistent layer has none.
func (hcs *HybridCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return hcs.redisCache.GetTTL(ctx, key)
}

func (hcs *HybridCacheService) Close() error {
	errCh := make(chan error, 2)

	go func() {
		errCh <- hcs.redisCache.Close()
	}()
	go func() {
		errCh <- hcs.mongoCache.Close()
	}()

	var errs []error
	for i := 0; i < 2; i++ {
		if err := <-errCh; err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// WarmUpFromMongoDB preloads the persistent layer's hottest entries.
func (hcs *HybridCacheService) WarmUpFromMongoDB(ctx context.Context, limit int) error {
	return hcs.mongoCache.WarmUp(ctx, limit)
}
