package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/street-parser/app/models"
	"github.com/street-parser/app/requests"
	"github.com/street-parser/internal/normalizer"
	"github.com/street-parser/internal/parser"
)

// ParseService runs the grammar entry points, consults the result cache
// and manages batch jobs. The active parser can be swapped after an
// admin lexicon rebuild; readers always see a complete parser, never a
// half-built one.
type ParseService struct {
	mu             sync.RWMutex
	parser         *parser.Parser
	grammarVersion string

	cache   CacheStore
	reviews *ReviewService
	logger  *zap.Logger

	startTime time.Time

	jobMu      sync.RWMutex
	jobs       map[string]*JobStatus
	jobResults map[string][]*models.ParseResult
}

// JobStatus tracks one batch job.
type JobStatus struct {
	JobID     string
	Status    string
	Progress  float64
	Processed int
	Total     int
	Message   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewParseService(p *parser.Parser, grammarVersion string, cache CacheStore, logger *zap.Logger) *ParseService {
	return &ParseService{
		parser:         p,
		grammarVersion: grammarVersion,
		cache:          cache,
		logger:         logger,
		startTime:      time.Now(),
		jobs:           make(map[string]*JobStatus),
		jobResults:     make(map[string][]*models.ParseResult),
	}
}

// SetReviewService wires the optional review queue for unmatched inputs.
func (ps *ParseService) SetReviewService(reviews *ReviewService) {
	ps.reviews = reviews
}

// Parse runs one input through the named entry point. The bool reports a
// cache hit.
func (ps *ParseService) Parse(ctx context.Context, command, input string, options requests.ParseOptions) (*models.ParseResult, bool, error) {
	if strings.TrimSpace(input) == "" {
		return nil, false, errors.New("address must not be empty")
	}
	if command == "" {
		command = models.CommandLocation
	}
	if !models.IsValidCommand(command) {
		return nil, false, fmt.Errorf("unknown command %q", command)
	}

	p, version := ps.currentParser()
	cacheKey := ps.cacheKey(command, version, input)

	if options.UseCache && ps.cache != nil {
		if cached, found, err := ps.cache.Get(ctx, cacheKey); err != nil {
			ps.logger.Warn("cache lookup failed", zap.Error(err))
		} else if found {
			return cached, true, nil
		}
	}

	start := time.Now()
	fields := ps.runCommand(p, command, input)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	result := &models.ParseResult{
		Input:            input,
		Command:          command,
		Fields:           fields,
		GrammarVersion:   version,
		ProcessingTimeMs: elapsed,
	}
	if fields != nil {
		result.Status = models.StatusMatched
		result.Kind = resultKind(fields)
	} else {
		result.Status = models.StatusUnmatched
		result.Fields = map[string]string{}
		if options.Suggestions {
			result.Suggestions = ps.suggestTokens(p, input)
		}
		if options.QueueReview && ps.reviews != nil {
			folded := normalizer.FoldKey(input)
			if err := ps.reviews.Enqueue(ctx, models.NewParseReview(input, command, folded, result.Suggestions)); err != nil {
				ps.logger.Warn("queueing review failed", zap.Error(err))
			}
		}
	}
	if options.ASCIIFold {
		result.ASCIIFolded = normalizer.ASCIIFold(input)
		result.Unaccented = normalizer.StripDiacritics(input)
	}

	if options.UseCache && ps.cache != nil && result.Matched() {
		if err := ps.cache.Set(ctx, cacheKey, result); err != nil {
			ps.logger.Warn("cache store failed", zap.Error(err))
		}
	}

	return result, false, nil
}

// runCommand dispatches to the parser entry point. A nil return means no
// match.
func (ps *ParseService) runCommand(p *parser.Parser, command, input string) map[string]string {
	switch command {
	case models.CommandAddress:
		return p.ParseAddress(input)
	case models.CommandInformal:
		return p.ParseInformalAddress(input)
	case models.CommandIntersection:
		return p.ParseIntersection(input)
	default:
		return p.ParseLocation(input)
	}
}

// suggestTokens runs the fuzzy table lookup over each input token and
// reports the best near-miss per token.
func (ps *ParseService) suggestTokens(p *parser.Parser, input string) []string {
	lex := p.Grammar().Lexicon()
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.Fields(input) {
		tok = strings.Trim(tok, ",.#&")
		if tok == "" || seen[tok] {
			continue
		}
		seen[tok] = true
		for _, s := range lex.Suggest(tok, 1) {
			out = append(out, fmt.Sprintf("%s: %s (%s)", tok, s.Token, s.Table))
		}
	}
	return out
}

// resultKind classifies a field mapping by shape.
func resultKind(fields map[string]string) string {
	if _, ok := fields["street1"]; ok {
		return models.KindIntersection
	}
	return models.KindAddress
}

// cacheKey embeds the grammar revision so entries parsed by an older
// lexicon never serve after a rebuild.
func (ps *ParseService) cacheKey(command, version, input string) string {
	return command + "|" + version + "|" + normalizer.FoldKey(input)
}

// currentParser snapshots the active parser and revision together.
func (ps *ParseService) currentParser() (*parser.Parser, string) {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.parser, ps.grammarVersion
}

// SwapParser installs a rebuilt parser. Returns the previous revision.
func (ps *ParseService) SwapParser(p *parser.Parser, grammarVersion string) string {
	ps.mu.Lock()
	defer ps.mu.Unlock()
	previous := ps.grammarVersion
	ps.parser = p
	ps.grammarVersion = grammarVersion
	return previous
}

// GrammarVersion returns the active lexicon revision.
func (ps *ParseService) GrammarVersion() string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()
	return ps.grammarVersion
}

// EstimateBatchProcessingTime guesses seconds for a batch, assuming a
// conservative per-address cost.
func (ps *ParseService) EstimateBatchProcessingTime(addressCount int) int {
	return addressCount * 2 / 1000
}

// ProcessBatchJob parses a slice of inputs in the background, updating
// progress as it goes. Meant to run in its own goroutine.
func (ps *ParseService) ProcessBatchJob(jobID string, addresses []string, command string, options requests.ParseOptions) {
	ps.jobMu.Lock()
	ps.jobs[jobID] = &JobStatus{
		JobID:     jobID,
		Status:    "running",
		Total:     len(addresses),
		Message:   "processing",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	ps.jobMu.Unlock()

	ctx := context.Background()
	results := make([]*models.ParseResult, len(addresses))

	for i, address := range addresses {
		result, _, err := ps.Parse(ctx, command, address, options)
		if err != nil {
			result = &models.ParseResult{
				Input:   address,
				Command: command,
				Status:  models.StatusUnmatched,
				Fields:  map[string]string{},
			}
		}
		results[i] = result

		ps.jobMu.Lock()
		if job, exists := ps.jobs[jobID]; exists {
			job.Processed = i + 1
			job.Progress = float64(i+1) / float64(len(addresses))
			job.UpdatedAt = time.Now()
		}
		ps.jobMu.Unlock()
	}

	// Results must be retrievable the moment the status reads done, so
	// both are published under the same lock acquisition.
	ps.jobMu.Lock()
	ps.jobResults[jobID] = results
	if job, exists := ps.jobs[jobID]; exists {
		job.Status = "done"
		job.Message = "completed"
		job.UpdatedAt = time.Now()
	}
	ps.jobMu.Unlock()

	ps.logger.Info("batch job completed",
		zap.String("job_id", jobID),
		zap.Int("total_addresses", len(addresses)))
}

// GetJobStatus returns a snapshot of one job. Callers may poll while
// the worker is still updating, so the live struct never escapes.
func (ps *ParseService) GetJobStatus(jobID string) (*JobStatus, error) {
	ps.jobMu.RLock()
	defer ps.jobMu.RUnlock()

	job, exists := ps.jobs[jobID]
	if !exists {
		return nil, errors.New("job not found")
	}
	snapshot := *job
	return &snapshot, nil
}

// GetJobResults returns the finished results of one job.
func (ps *ParseService) GetJobResults(jobID string) ([]*models.ParseResult, error) {
	ps.jobMu.RLock()
	defer ps.jobMu.RUnlock()

	results, exists := ps.jobResults[jobID]
	if !exists {
		return nil, errors.New("job results not found")
	}
	return results, nil
}

// GetJobResultsStream returns job results over a channel, for NDJSON
// streaming without holding the whole response in one buffer.
func (ps *ParseService) GetJobResultsStream(jobID string) (<-chan *models.ParseResult, error) {
	results, err := ps.GetJobResults(jobID)
	if err != nil {
		return nil, err
	}

	resultChannel := make(chan *models.ParseResult, 100)
	go func() {
		defer close(resultChannel)
		for _, result := range results {
			resultChannel <- result
		}
	}()
	return resultChannel, nil
}

// GetStartTime returns when the service came up.
func (ps *ParseService) GetStartTime() time.Time {
	return ps.startTime
}

// GetStats reports service-level counters for the health endpoint.
func (ps *ParseService) GetStats() map[string]interface{} {
	ps.jobMu.RLock()
	defer ps.jobMu.RUnlock()

	uptime := time.Since(ps.startTime)
	return map[string]interface{}{
		"uptime_seconds":  int64(uptime.Seconds()),
		"start_time":      ps.startTime.Format(time.RFC3339),
		"grammar_version": ps.GrammarVersion(),
		"jobs_tracked":    len(ps.jobs),
		"status":          "running",
	}
}
