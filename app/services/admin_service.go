package services

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/street-parser/helpers/utils"
	"github.com/street-parser/internal/grammar"
	"github.com/street-parser/internal/lexicon"
	"github.com/street-parser/internal/parser"
)

// Lexical table names accepted by AddAlias.
const (
	TableDirectional = "directional"
	TableStreetType  = "street_type"
	TableProvince    = "province"
)

// AdminService owns the editable lexicon. Edits accumulate on a working
// copy; Rebuild compiles it into a fresh grammar and parser and swaps
// them into the parse service atomically.
type AdminService struct {
	mu         sync.Mutex
	lex        *lexicon.Lexicon
	parserOpts parser.Options

	parseService *ParseService
	cache        CacheStore
	db           *mongo.Database
	logger       *zap.Logger
}

// RebuildResult reports one grammar rebuild.
type RebuildResult struct {
	GrammarVersion   string  `json:"grammar_version"`
	PreviousVersion  string  `json:"previous_version"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
	CacheInvalidated bool    `json:"cache_invalidated"`
}

// SystemStats is the admin-facing snapshot of the running service.
type SystemStats struct {
	GrammarVersion  string                 `json:"grammar_version"`
	Lexicon         lexicon.Stats          `json:"lexicon"`
	ReviewQueueSize int64                  `json:"review_queue_size"`
	MemoryUsage     map[string]interface{} `json:"memory_usage"`
	DatabaseStats   DatabaseStats          `json:"database_stats"`
}

// DatabaseStats counts the persisted collections.
type DatabaseStats struct {
	ParseCache   int64 `json:"parse_cache"`
	ParseReviews int64 `json:"parse_reviews"`
}

// NewAdminService clones lex so alias edits stay on a private working
// copy until Rebuild swaps a freshly compiled lexicon into service.
func NewAdminService(lex *lexicon.Lexicon, parserOpts parser.Options, parseService *ParseService, cache CacheStore, db *mongo.Database, logger *zap.Logger) *AdminService {
	return &AdminService{
		lex:          lex.Clone(),
		parserOpts:   parserOpts,
		parseService: parseService,
		cache:        cache,
		db:           db,
		logger:       logger,
	}
}

// LexiconStats reports the working copy's table sizes.
func (as *AdminService) LexiconStats() lexicon.Stats {
	as.mu.Lock()
	defer as.mu.Unlock()
	return as.lex.Stats()
}

// GrammarVersion returns the revision currently serving parses.
func (as *AdminService) GrammarVersion() string {
	return as.parseService.GrammarVersion()
}

// AddAlias records a new spelling on the working copy. It takes effect
// only after Rebuild.
func (as *AdminService) AddAlias(table, alias, canonical string) error {
	alias = strings.ToLower(strings.TrimSpace(alias))
	canonical = strings.TrimSpace(canonical)
	if alias == "" || canonical == "" {
		return fmt.Errorf("alias and canonical must not be empty")
	}

	as.mu.Lock()
	defer as.mu.Unlock()

	switch table {
	case TableDirectional:
		as.lex.AddDirectional(alias, canonical)
	case TableStreetType:
		as.lex.AddStreetType(alias, strings.ToLower(canonical))
	case TableProvince:
		as.lex.AddProvince(alias, canonical)
	default:
		return fmt.Errorf("unknown table %q", table)
	}

	as.logger.Info("alias added",
		zap.String("table", table),
		zap.String("alias", alias),
		zap.String("canonical", canonical))
	return nil
}

// Rebuild compiles the working lexicon into a new grammar, swaps the
// parse service over to it and invalidates cached results from the old
// revision. In-flight parses keep the parser they started with.
func (as *AdminService) Rebuild(ctx context.Context) (*RebuildResult, error) {
	start := time.Now()

	// The serving parser gets its own compiled clone. The working copy
	// stays private so later alias edits never touch live tables.
	as.mu.Lock()
	rebuilt := as.lex.Clone()
	as.mu.Unlock()
	rebuilt.Compile()

	version := utils.GenerateUUID()
	p := parser.New(grammar.New(rebuilt), as.parserOpts, as.logger)
	previous := as.parseService.SwapParser(p, version)

	invalidated := false
	if as.cache != nil {
		if err := as.cache.InvalidateByGrammarVersion(ctx, version); err != nil {
			as.logger.Warn("cache invalidation after rebuild failed", zap.Error(err))
		} else {
			invalidated = true
		}
	}

	elapsed := float64(time.Since(start).Microseconds()) / 1000.0
	as.logger.Info("grammar rebuilt",
		zap.String("grammar_version", version),
		zap.String("previous_version", previous),
		zap.Float64("elapsed_ms", elapsed))

	return &RebuildResult{
		GrammarVersion:   version,
		PreviousVersion:  previous,
		ProcessingTimeMs: elapsed,
		CacheInvalidated: invalidated,
	}, nil
}

// GetSystemStats gathers the admin snapshot.
func (as *AdminService) GetSystemStats(ctx context.Context) (*SystemStats, error) {
	dbStats := DatabaseStats{}
	if as.db != nil {
		var err error
		if dbStats.ParseCache, err = as.db.Collection("parse_cache").CountDocuments(ctx, bson.M{}); err != nil {
			return nil, fmt.Errorf("count parse_cache: %w", err)
		}
		if dbStats.ParseReviews, err = as.db.Collection("parse_reviews").CountDocuments(ctx, bson.M{}); err != nil {
			return nil, fmt.Errorf("count parse_reviews: %w", err)
		}
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	memoryUsage := map[string]interface{}{
		"alloc_mb":       m.Alloc / 1024 / 1024,
		"total_alloc_mb": m.TotalAlloc / 1024 / 1024,
		"sys_mb":         m.Sys / 1024 / 1024,
		"num_gc":         m.NumGC,
	}

	return &SystemStats{
		GrammarVersion:  as.parseService.GrammarVersion(),
		Lexicon:         as.LexiconStats(),
		ReviewQueueSize: dbStats.ParseReviews,
		MemoryUsage:     memoryUsage,
		DatabaseStats:   dbStats,
	}, nil
}
