package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/street-parser/app/models"
	"github.com/street-parser/app/requests"
	"github.com/street-parser/internal/grammar"
	"github.com/street-parser/internal/lexicon"
	"github.com/street-parser/internal/parser"
)

func newTestParseService(t *testing.T) *ParseService {
	t.Helper()
	lex := lexicon.New()
	lex.Compile()
	p := parser.New(grammar.New(lex), parser.Options{}, zap.NewNop())
	cache := NewMemoryCacheService(time.Minute)
	return NewParseService(p, "test-v1", cache, zap.NewNop())
}

func TestParseCommands(t *testing.T) {
	ps := newTestParseService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		command string
		input   string
		status  string
		kind    string
	}{
		{
			name:    "formal via location",
			command: models.CommandLocation,
			input:   "123 Main St, Toronto, ON M5V 2T6",
			status:  models.StatusMatched,
			kind:    models.KindAddress,
		},
		{
			name:    "intersection via location",
			command: models.CommandLocation,
			input:   "Yonge St & Bloor St, Toronto, ON",
			status:  models.StatusMatched,
			kind:    models.KindIntersection,
		},
		{
			name:    "explicit informal",
			command: models.CommandInformal,
			input:   "Main St, Ottawa",
			status:  models.StatusMatched,
			kind:    models.KindAddress,
		},
		{
			name:    "no match",
			command: models.CommandAddress,
			input:   "hello",
			status:  models.StatusUnmatched,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, cacheHit, err := ps.Parse(ctx, tc.command, tc.input, requests.ParseOptions{})
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if cacheHit {
				t.Error("cache hit without caching enabled")
			}
			if result.Status != tc.status {
				t.Errorf("status = %q, want %q", result.Status, tc.status)
			}
			if tc.kind != "" && result.Kind != tc.kind {
				t.Errorf("kind = %q, want %q", result.Kind, tc.kind)
			}
			if result.GrammarVersion != "test-v1" {
				t.Errorf("grammar version = %q", result.GrammarVersion)
			}
		})
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	ps := newTestParseService(t)
	ctx := context.Background()

	if _, _, err := ps.Parse(ctx, models.CommandLocation, "   ", requests.ParseOptions{}); err == nil {
		t.Error("blank input accepted")
	}
	if _, _, err := ps.Parse(ctx, "bogus", "123 Main St", requests.ParseOptions{}); err == nil {
		t.Error("unknown command accepted")
	}
}

func TestParseCaching(t *testing.T) {
	ps := newTestParseService(t)
	ctx := context.Background()
	opts := requests.ParseOptions{UseCache: true}
	input := "123 Main St, Toronto, ON"

	first, hit, err := ps.Parse(ctx, models.CommandLocation, input, opts)
	if err != nil || hit {
		t.Fatalf("first parse: hit=%v err=%v", hit, err)
	}

	second, hit, err := ps.Parse(ctx, models.CommandLocation, input, opts)
	if err != nil {
		t.Fatalf("second parse: %v", err)
	}
	if !hit {
		t.Error("second parse missed the cache")
	}
	if second.Fields["street"] != first.Fields["street"] {
		t.Errorf("cached fields diverge: %v vs %v", second.Fields, first.Fields)
	}

	// Folding makes the key case and accent insensitive.
	if _, hit, _ := ps.Parse(ctx, models.CommandLocation, "123 MAIN ST, TORONTO, ON", opts); !hit {
		t.Error("case variant missed the cache")
	}

	// Unmatched results are never cached.
	ps.Parse(ctx, models.CommandAddress, "hello", opts)
	if _, hit, _ := ps.Parse(ctx, models.CommandAddress, "hello", opts); hit {
		t.Error("unmatched result served from cache")
	}
}

func TestParseSuggestions(t *testing.T) {
	ps := newTestParseService(t)
	ctx := context.Background()

	result, _, err := ps.Parse(ctx, models.CommandAddress, "Steret near nothing", requests.ParseOptions{Suggestions: true})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.Status != models.StatusUnmatched {
		t.Fatalf("status = %q", result.Status)
	}
	if len(result.Suggestions) == 0 {
		t.Error("no suggestion for a near-miss street type")
	}
}

func TestParseASCIIFold(t *testing.T) {
	ps := newTestParseService(t)
	ctx := context.Background()

	result, _, err := ps.Parse(ctx, models.CommandLocation, "845 Rue Sherbrooke O, Montréal, QC", requests.ParseOptions{ASCIIFold: true})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.ASCIIFolded == "" {
		t.Fatal("ascii_folded empty with folding requested")
	}
	for _, r := range result.ASCIIFolded {
		if r > 127 {
			t.Errorf("non-ASCII rune %q in folded output %q", r, result.ASCIIFolded)
		}
	}
	if !strings.Contains(result.Unaccented, "Montreal") {
		t.Errorf("unaccented = %q, want combining marks removed", result.Unaccented)
	}
}

func TestSwapParserInvalidatesVersion(t *testing.T) {
	ps := newTestParseService(t)

	lex := lexicon.New()
	lex.Compile()
	rebuilt := parser.New(grammar.New(lex), parser.Options{}, zap.NewNop())

	previous := ps.SwapParser(rebuilt, "test-v2")
	if previous != "test-v1" {
		t.Errorf("previous version = %q, want test-v1", previous)
	}
	if ps.GrammarVersion() != "test-v2" {
		t.Errorf("version = %q, want test-v2", ps.GrammarVersion())
	}
}

func TestBatchJobLifecycle(t *testing.T) {
	ps := newTestParseService(t)

	addresses := []string{
		"123 Main St, Toronto, ON",
		"425 5th Ave, Calgary, AB",
		"hello",
	}

	jobID := "job-1"
	ps.ProcessBatchJob(jobID, addresses, models.CommandLocation, requests.ParseOptions{})

	status, err := ps.GetJobStatus(jobID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.Status != "done" {
		t.Errorf("status = %q, want done", status.Status)
	}
	if status.Processed != len(addresses) {
		t.Errorf("processed = %d, want %d", status.Processed, len(addresses))
	}

	results, err := ps.GetJobResults(jobID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != len(addresses) {
		t.Fatalf("got %d results, want %d", len(results), len(addresses))
	}
	if results[0].Status != models.StatusMatched {
		t.Errorf("first result unmatched: %v", results[0])
	}
	if results[2].Status != models.StatusUnmatched {
		t.Errorf("garbage input matched: %v", results[2])
	}

	stream, err := ps.GetJobResultsStream(jobID)
	if err != nil {
		t.Fatalf("stream: %v", err)
	}
	var streamed int
	for range stream {
		streamed++
	}
	if streamed != len(addresses) {
		t.Errorf("streamed %d results, want %d", streamed, len(addresses))
	}

	if _, err := ps.GetJobStatus("missing"); err == nil {
		t.Error("unknown job id accepted")
	}
}

// A poller that observes status done must be able to fetch the results
// on its very next call.
func TestBatchJobResultsVisibleWhenDone(t *testing.T) {
	ps := newTestParseService(t)

	addresses := make([]string, 50)
	for i := range addresses {
		addresses[i] = "123 Main St, Toronto, ON"
	}

	jobID := "job-2"
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ps.ProcessBatchJob(jobID, addresses, models.CommandLocation, requests.ParseOptions{})
	}()

	deadline := time.Now().Add(10 * time.Second)
	for {
		if status, err := ps.GetJobStatus(jobID); err == nil && status.Status == "done" {
			results, err := ps.GetJobResults(jobID)
			if err != nil {
				t.Fatalf("status is done but results are missing: %v", err)
			}
			if len(results) != len(addresses) {
				t.Fatalf("got %d results, want %d", len(results), len(addresses))
			}
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("job never reported done")
		}
	}
	<-finished
}
