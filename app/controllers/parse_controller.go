package controllers

import (
	"compress/gzip"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/street-parser/app/requests"
	"github.com/street-parser/app/responses"
	"github.com/street-parser/app/services"
	"github.com/street-parser/helpers/utils"
)

// ParseController handles the parse endpoints.
type ParseController struct {
	parseService *services.ParseService
	logger       *zap.Logger
}

func NewParseController(parseService *services.ParseService, logger *zap.Logger) *ParseController {
	return &ParseController{
		parseService: parseService,
		logger:       logger,
	}
}

// Parse runs one input through the requested entry point.
func (pc *ParseController) Parse(c *gin.Context) {
	var req requests.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "invalid request: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	result, cacheHit, err := pc.parseService.Parse(c.Request.Context(), req.Command, req.Address, req.Options)
	if err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "PARSE_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.ParseResponse{
		Result:           *result,
		GrammarVersion:   result.GrammarVersion,
		ProcessingTimeMs: result.ProcessingTimeMs,
		CacheHit:         cacheHit,
	})
}

// BatchParse submits a background job for a list of inputs.
func (pc *ParseController) BatchParse(c *gin.Context) {
	var req requests.BatchParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "invalid request: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	jobID := utils.GenerateUUID()
	estimatedTime := pc.parseService.EstimateBatchProcessingTime(len(req.Addresses))

	go pc.parseService.ProcessBatchJob(jobID, req.Addresses, req.Command, req.Options)

	c.JSON(http.StatusAccepted, responses.BatchParseResponse{
		JobID:            jobID,
		EstimatedSeconds: estimatedTime,
		TotalAddresses:   len(req.Addresses),
		Message:          "job accepted",
	})
}

// GetJobStatus reports progress of one batch job.
func (pc *ParseController) GetJobStatus(c *gin.Context) {
	jobID := c.Param("jobID")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_JOB_ID",
			Message:   "job id is required",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	status, err := pc.parseService.GetJobStatus(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.JobStatusResponse{
		JobID:     jobID,
		Status:    status.Status,
		Progress:  status.Progress,
		Processed: status.Processed,
		Total:     status.Total,
		Message:   status.Message,
	})
}

// GetJobResults returns finished job results, either as one JSON body or
// streamed as NDJSON (format=ndjson), optionally gzip compressed (gzip=1).
func (pc *ParseController) GetJobResults(c *gin.Context) {
	jobID := c.Param("jobID")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_JOB_ID",
			Message:   "job id is required",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	if c.Query("format") == "ndjson" {
		pc.streamNDJSONResults(c, jobID, c.Query("gzip") == "1")
		return
	}

	results, err := pc.parseService.GetJobResults(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "job results",
		Data:      results,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// HealthCheck reports service liveness.
func (pc *ParseController) HealthCheck(c *gin.Context) {
	uptime := time.Since(pc.parseService.GetStartTime())

	c.JSON(http.StatusOK, responses.HealthCheckResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339),
		Uptime:    uptime.String(),
		Version:   pc.parseService.GrammarVersion(),
		Services: map[string]string{
			"parser": "healthy",
			"cache":  "healthy",
		},
	})
}

// streamNDJSONResults writes one JSON document per line so large jobs never
// sit fully buffered in memory.
func (pc *ParseController) streamNDJSONResults(c *gin.Context, jobID string, gzipEnabled bool) {
	resultChannel, err := pc.parseService.GetJobResultsStream(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "JOB_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.Header("Content-Type", "application/x-ndjson")

	var writer gin.ResponseWriter = c.Writer
	if gzipEnabled {
		c.Header("Content-Encoding", "gzip")
		gzWriter := gzip.NewWriter(c.Writer)
		defer gzWriter.Close()
		writer = &gzipResponseWriter{
			ResponseWriter: c.Writer,
			gzWriter:       gzWriter,
		}
	}

	encoder := json.NewEncoder(writer)
	for result := range resultChannel {
		if err := encoder.Encode(result); err != nil {
			pc.logger.Error("ndjson encode failed", zap.Error(err))
			break
		}
		if flusher, ok := writer.(http.Flusher); ok {
			flusher.Flush()
		}
	}
}

// gzipResponseWriter compresses the NDJSON stream while keeping the gin
// writer's flush behavior.
type gzipResponseWriter struct {
	gin.ResponseWriter
	gzWriter *gzip.Writer
}

func (w *gzipResponseWriter) Write(data []byte) (int, error) {
	return w.gzWriter.Write(data)
}

func (w *gzipResponseWriter) Flush() {
	w.gzWriter.Flush()
	if flusher, ok := w.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}
