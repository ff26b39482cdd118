package services

import (
	"context"
	"testing"
	"time"

	"github.com/street-parser/app/models"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	cs := NewMemoryCacheService(time.Minute)
	ctx := context.Background()

	result := &models.ParseResult{
		Input:          "123 Main St",
		Command:        models.CommandLocation,
		Status:         models.StatusMatched,
		Fields:         map[string]string{"number": "123", "street": "Main", "type": "St"},
		GrammarVersion: "v1",
	}

	if err := cs.Set(ctx, "key1", result); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, found, err := cs.Get(ctx, "key1")
	if err != nil || !found {
		t.Fatalf("get: found=%v err=%v", found, err)
	}
	if got.Fields["street"] != "Main" {
		t.Errorf("street = %q, want Main", got.Fields["street"])
	}

	if _, found, _ := cs.Get(ctx, "missing"); found {
		t.Error("found a key that was never set")
	}

	stats, err := cs.GetStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalHits != 1 || stats.TotalMiss != 1 {
		t.Errorf("hits=%d miss=%d, want 1/1", stats.TotalHits, stats.TotalMiss)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	cs := NewMemoryCacheService(10 * time.Millisecond)
	ctx := context.Background()

	result := &models.ParseResult{Input: "x", Status: models.StatusMatched}
	if err := cs.Set(ctx, "key1", result); err != nil {
		t.Fatalf("set: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, found, _ := cs.Get(ctx, "key1"); found {
		t.Error("expired entry still served")
	}
	if exists, _ := cs.Exists(ctx, "key1"); exists {
		t.Error("expired entry reported as existing")
	}
}

func TestMemoryCacheInvalidateByGrammarVersion(t *testing.T) {
	cs := NewMemoryCacheService(time.Minute)
	ctx := context.Background()

	old := &models.ParseResult{Input: "a", GrammarVersion: "v1"}
	current := &models.ParseResult{Input: "b", GrammarVersion: "v2"}
	cs.Set(ctx, "old", old)
	cs.Set(ctx, "current", current)

	if err := cs.InvalidateByGrammarVersion(ctx, "v2"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}

	if _, found, _ := cs.Get(ctx, "old"); found {
		t.Error("stale revision entry survived invalidation")
	}
	if _, found, _ := cs.Get(ctx, "current"); !found {
		t.Error("current revision entry was dropped")
	}
}

func TestMemoryCacheClear(t *testing.T) {
	cs := NewMemoryCacheService(time.Minute)
	ctx := context.Background()

	cs.Set(ctx, "key1", &models.ParseResult{Input: "a"})
	cs.Set(ctx, "key2", &models.ParseResult{Input: "b"})

	if err := cs.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if cs.Size() != 0 {
		t.Errorf("size = %d after clear, want 0", cs.Size())
	}
}
