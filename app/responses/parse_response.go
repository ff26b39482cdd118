package responses

import (
	"github.com/street-parser/app/models"
)

// ParseResponse wraps a single parse outcome.
type ParseResponse struct {
	Result           models.ParseResult `json:"result"`
	GrammarVersion   string             `json:"grammar_version"`
	ProcessingTimeMs float64            `json:"processing_time_ms"`
	CacheHit         bool               `json:"cache_hit"`
}

// BatchParseResponse acknowledges a submitted batch job.
type BatchParseResponse struct {
	JobID            string `json:"job_id"`
	EstimatedSeconds int    `json:"estimated_seconds"`
	TotalAddresses   int    `json:"total_addresses"`
	Message          string `json:"message"`
}

// JobStatusResponse reports batch job progress.
type JobStatusResponse struct {
	JobID     string  `json:"job_id"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"` // 0.0 - 1.0
	Processed int     `json:"processed"`
	Total     int     `json:"total"`
	Message   string  `json:"message"`
}

// JobStatus constants
const (
	JobStatusPending = "pending"
	JobStatusRunning = "running"
	JobStatusDone    = "done"
	JobStatusFailed  = "failed"
)

// ReviewListResponse pages through the review queue.
type ReviewListResponse struct {
	Reviews []models.ParseReview `json:"reviews"`
	Total   int64                `json:"total"`
	Pending int64                `json:"pending"`
	Limit   int                  `json:"limit"`
	Offset  int                  `json:"offset"`
}

// LexiconStatsResponse reports table sizes and the active revision.
type LexiconStatsResponse struct {
	Directionals   int    `json:"directionals"`
	StreetTypes    int    `json:"street_types"`
	Provinces      int    `json:"provinces"`
	GrammarVersion string `json:"grammar_version"`
}

// RebuildResponse acknowledges a grammar rebuild.
type RebuildResponse struct {
	GrammarVersion   string  `json:"grammar_version"`
	PreviousVersion  string  `json:"previous_version"`
	ProcessingTimeMs float64 `json:"processing_time_ms"`
	CacheInvalidated bool    `json:"cache_invalidated"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Error     string      `json:"error"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// SuccessResponse is the uniform acknowledgement body.
type SuccessResponse struct {
	Success   bool        `json:"success"`
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Timestamp string      `json:"timestamp"`
}

// HealthCheckResponse reports service liveness.
type HealthCheckResponse struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Uptime    string            `json:"uptime"`
	Version   string            `json:"version"`
	Services  map[string]string `json:"services"`
}
