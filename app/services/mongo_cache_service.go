package services

import (
	"context"
	"crypto/sha256"
	"fmt"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/street-parser/app/models"
)

// MongoCacheService is the persistent CacheStore: an in-memory LRU in
// front of a MongoDB collection. Documents never expire on their own;
// invalidation happens by grammar revision after a lexicon rebuild.
type MongoCacheService struct {
	db         *mongo.Database
	collection *mongo.Collection
	l1Cache    *lru.Cache[string, *models.ParseResult]
	logger     *zap.Logger

	totalHits int64
	totalMiss int64
	l1Hits    int64
	l1Miss    int64
	mongoHits int64
	mongoMiss int64
}

func NewMongoCacheService(db *mongo.Database, l1Size int, logger *zap.Logger) (*MongoCacheService, error) {
	l1Cache, err := lru.New[string, *models.ParseResult](l1Size)
	if err != nil {
		return nil, fmt.Errorf("create lru cache: %w", err)
	}

	collection := db.Collection("parse_cache")

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{bson.E{Key: "fingerprint", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{bson.E{Key: "grammar_version", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "created_at", Value: 1}},
		},
		{
			Keys: bson.D{bson.E{Key: "last_accessed", Value: 1}},
		},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := collection.Indexes().CreateMany(ctx, indexModels); err != nil {
		logger.Warn("could not create parse_cache indexes", zap.Error(err))
	}

	return &MongoCacheService{
		db:         db,
		collection: collection,
		l1Cache:    l1Cache,
		logger:     logger,
	}, nil
}

// Get checks the LRU first, then MongoDB, backfilling the LRU on a
// persistent hit.
func (mcs *MongoCacheService) Get(ctx context.Context, key string) (*models.ParseResult, bool, error) {
	if result, found := mcs.l1Cache.Get(key); found {
		atomic.AddInt64(&mcs.l1Hits, 1)
		atomic.AddInt64(&mcs.totalHits, 1)
		mcs.logger.Debug("l1 cache hit", zap.String("key", key))
		return result, true, nil
	}
	atomic.AddInt64(&mcs.l1Miss, 1)

	fingerprint := mcs.generateFingerprint(key)

	var cacheEntry models.ParseCache
	err := mcs.collection.FindOne(ctx, bson.M{"fingerprint": fingerprint}).Decode(&cacheEntry)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			atomic.AddInt64(&mcs.mongoMiss, 1)
			atomic.AddInt64(&mcs.totalMiss, 1)
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("query parse cache: %w", err)
	}

	atomic.AddInt64(&mcs.mongoHits, 1)
	atomic.AddInt64(&mcs.totalHits, 1)

	go mcs.updateAccessStats(context.Background(), cacheEntry.ID)

	mcs.l1Cache.Add(key, &cacheEntry.Result)

	mcs.logger.Debug("mongo cache hit",
		zap.String("key", key),
		zap.String("fingerprint", fingerprint))

	return &cacheEntry.Result, true, nil
}

func (mcs *MongoCacheService) Set(ctx context.Context, key string, result *models.ParseResult) error {
	mcs.l1Cache.Add(key, result)

	fingerprint := mcs.generateFingerprint(key)
	cacheEntry := models.NewParseCache(fingerprint, key, *result)

	opts := options.Replace().SetUpsert(true)
	_, err := mcs.collection.ReplaceOne(ctx, bson.M{"fingerprint": fingerprint}, cacheEntry, opts)
	if err != nil {
		mcs.logger.Error("store parse cache failed",
			zap.Error(err),
			zap.String("fingerprint", fingerprint))
		return fmt.Errorf("store parse cache: %w", err)
	}

	return nil
}

func (mcs *MongoCacheService) Delete(ctx context.Context, key string) error {
	mcs.l1Cache.Remove(key)

	fingerprint := mcs.generateFingerprint(key)
	if _, err := mcs.collection.DeleteOne(ctx, bson.M{"fingerprint": fingerprint}); err != nil {
		return fmt.Errorf("delete parse cache entry: %w", err)
	}
	return nil
}

func (mcs *MongoCacheService) Clear(ctx context.Context) error {
	mcs.l1Cache.Purge()

	if _, err := mcs.collection.DeleteMany(ctx, bson.M{}); err != nil {
		return fmt.Errorf("clear parse cache: %w", err)
	}

	atomic.StoreInt64(&mcs.totalHits, 0)
	atomic.StoreInt64(&mcs.totalMiss, 0)
	atomic.StoreInt64(&mcs.l1Hits, 0)
	atomic.StoreInt64(&mcs.l1Miss, 0)
	atomic.StoreInt64(&mcs.mongoHits, 0)
	atomic.StoreInt64(&mcs.mongoMiss, 0)

	return nil
}

// InvalidateByGrammarVersion drops the whole LRU and every persisted
// document from a different lexicon revision.
func (mcs *MongoCacheService) InvalidateByGrammarVersion(ctx context.Context, grammarVersion string) error {
	mcs.l1Cache.Purge()

	filter := bson.M{"grammar_version": bson.M{"$ne": grammarVersion}}
	result, err := mcs.collection.DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("invalidate parse cache by grammar version: %w", err)
	}

	mcs.logger.Info("parse cache invalidated",
		zap.String("grammar_version", grammarVersion),
		zap.Int64("deleted_count", result.DeletedCount))

	return nil
}

func (mcs *MongoCacheService) GetStats(ctx context.Context) (*CacheStats, error) {
	mongoCount, err := mcs.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("count parse cache documents: %w", err)
	}

	hits := atomic.LoadInt64(&mcs.totalHits)
	misses := atomic.LoadInt64(&mcs.totalMiss)
	hitRate := float64(0)
	if total := hits + misses; total > 0 {
		hitRate = float64(hits) / float64(total)
	}

	return &CacheStats{
		HitRate:    hitRate,
		TotalHits:  hits,
		TotalMiss:  misses,
		TotalItems: mongoCount,
	}, nil
}

func (mcs *MongoCacheService) Exists(ctx context.Context, key string) (bool, error) {
	if mcs.l1Cache.Contains(key) {
		return true, nil
	}

	fingerprint := mcs.generateFingerprint(key)
	count, err := mcs.collection.CountDocuments(ctx, bson.M{"fingerprint": fingerprint})
	if err != nil {
		return false, fmt.Errorf("check parse cache existence: %w", err)
	}
	return count > 0, nil
}

// GetTTL always reports zero; the persistent cache has no entry lifetime.
func (mcs *MongoCacheService) GetTTL(ctx context.Context, key string) (time.Duration, error) {
	return 0, nil
}

// Close is a no-op, the mongo client belongs to the caller.
func (mcs *MongoCacheService) Close() error {
	return nil
}

// generateFingerprint hashes the cache key into the stored fingerprint.
func (mcs *MongoCacheService) generateFingerprint(key string) string {
	hash := sha256.Sum256([]byte(key))
	return fmt.Sprintf("sha256:%x", hash)
}

// updateAccessStats bumps the access counters off the request path.
func (mcs *MongoCacheService) updateAccessStats(ctx context.Context, id primitive.ObjectID) {
	filter := bson.M{"_id": id}
	update := bson.M{
		"$set": bson.M{"last_accessed": time.Now()},
		"$inc": bson.M{"access_count": 1},
	}

	if _, err := mcs.collection.UpdateOne(ctx, filter, update); err != nil {
		mcs.logger.Warn("update access stats failed", zap.Error(err))
	}
}

// GetL1Stats exposes the layered counters for the admin endpoint.
func (mcs *MongoCacheService) GetL1Stats() map[string]interface{} {
	return map[string]interface{}{
		"l1_size":    mcs.l1Cache.Len(),
		"l1_hits":    atomic.LoadInt64(&mcs.l1Hits),
		"l1_miss":    atomic.LoadInt64(&mcs.l1Miss),
		"mongo_hits": atomic.LoadInt64(&mcs.mongoHits),
		"mongo_miss": atomic.LoadInt64(&mcs.mongoMiss),
		"total_hits": atomic.LoadInt64(&mcs.totalHits),
		"total_miss": atomic.LoadInt64(&mcs.totalMiss),
	}
}

// WarmUp preloads the most used documents into the LRU.
func (mcs *MongoCacheService) WarmUp(ctx context.Context, limit int) error {
	opts := options.Find().
		SetSort(bson.D{bson.E{Key: "access_count", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := mcs.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return fmt.Errorf("warm up parse cache: %w", err)
	}
	defer cursor.Close(ctx)

	count := 0
	for cursor.Next(ctx) {
		var cacheEntry models.ParseCache
		if err := cursor.Decode(&cacheEntry); err != nil {
			mcs.logger.Warn("decode parse cache entry failed during warm up", zap.Error(err))
			continue
		}

		mcs.l1Cache.Add(cacheEntry.CacheKey, &cacheEntry.Result)
		count++
	}

	mcs.logger.Info("parse cache warm up finished",
		zap.Int("loaded_items", count),
		zap.Int("l1_size", mcs.l1Cache.Len()))

	return nil
}
