package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/street-parser/app/requests"
	"github.com/street-parser/app/responses"
	"github.com/street-parser/app/services"
)

// AdminController handles lexicon maintenance, the review queue and cache
// administration.
type AdminController struct {
	adminService  *services.AdminService
	reviewService *services.ReviewService
	cacheService  services.CacheStore
	logger        *zap.Logger
}

func NewAdminController(adminService *services.AdminService, reviewService *services.ReviewService, cacheService services.CacheStore, logger *zap.Logger) *AdminController {
	return &AdminController{
		adminService:  adminService,
		reviewService: reviewService,
		cacheService:  cacheService,
		logger:        logger,
	}
}

// GetLexiconStats reports current table sizes and the active revision.
func (ac *AdminController) GetLexiconStats(c *gin.Context) {
	stats := ac.adminService.LexiconStats()

	c.JSON(http.StatusOK, responses.LexiconStatsResponse{
		Directionals:   stats.Directionals,
		StreetTypes:    stats.StreetTypes,
		Provinces:      stats.Provinces,
		GrammarVersion: ac.adminService.GrammarVersion(),
	})
}

// AddAlias registers a spelling on the working lexicon. The alias takes
// effect on the next rebuild.
func (ac *AdminController) AddAlias(c *gin.Context) {
	var req requests.AliasRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "invalid request: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	if err := ac.adminService.AddAlias(req.Table, req.Alias, req.Canonical); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "ALIAS_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	ac.logger.Info("alias added",
		zap.String("table", req.Table),
		zap.String("alias", req.Alias),
		zap.String("canonical", req.Canonical))

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "alias added; rebuild to activate",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// Rebuild compiles the working lexicon into a fresh grammar and swaps it in.
func (ac *AdminController) Rebuild(c *gin.Context) {
	result, err := ac.adminService.Rebuild(c.Request.Context())
	if err != nil {
		ac.logger.Error("rebuild failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "REBUILD_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.RebuildResponse{
		GrammarVersion:   result.GrammarVersion,
		PreviousVersion:  result.PreviousVersion,
		ProcessingTimeMs: result.ProcessingTimeMs,
		CacheInvalidated: result.CacheInvalidated,
	})
}

// ListReviews pages through the review queue, optionally filtered by status.
func (ac *AdminController) ListReviews(c *gin.Context) {
	status := c.Query("status")
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	reviews, total, err := ac.reviewService.List(c.Request.Context(), status, limit, offset)
	if err != nil {
		ac.logger.Error("listing reviews failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "REVIEW_LIST_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	pending, err := ac.reviewService.CountPending(c.Request.Context())
	if err != nil {
		ac.logger.Warn("counting pending reviews failed", zap.Error(err))
	}

	c.JSON(http.StatusOK, responses.ReviewListResponse{
		Reviews: reviews,
		Total:   total,
		Pending: pending,
		Limit:   limit,
		Offset:  offset,
	})
}

// ResolveReview closes one review entry.
func (ac *AdminController) ResolveReview(c *gin.Context) {
	id := c.Param("reviewID")
	if id == "" {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "MISSING_REVIEW_ID",
			Message:   "review id is required",
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	var req requests.ReviewResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, responses.ErrorResponse{
			Error:     "INVALID_REQUEST",
			Message:   "invalid request: " + err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	review, err := ac.reviewService.Resolve(c.Request.Context(), id, req.ReviewerID, req.Resolution, req.Ignore)
	if err != nil {
		c.JSON(http.StatusNotFound, responses.ErrorResponse{
			Error:     "REVIEW_NOT_FOUND",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "review " + review.Status,
		Data:      review,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetCacheStats reports hit rates and item counts from the cache backend.
func (ac *AdminController) GetCacheStats(c *gin.Context) {
	stats, err := ac.cacheService.GetStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("cache stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CACHE_STATS_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "cache stats",
		Data:      stats,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// ClearCache drops every cached parse result.
func (ac *AdminController) ClearCache(c *gin.Context) {
	if err := ac.cacheService.Clear(c.Request.Context()); err != nil {
		ac.logger.Error("cache clear failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "CACHE_CLEAR_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	ac.logger.Info("cache cleared")
	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "cache cleared",
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// InvalidateCache drops entries parsed by any revision other than the one
// given.
func (ac *AdminController) InvalidateCache(c *gin.Context) {
	version := c.Query("grammar_version")
	if version == "" {
		version = ac.adminService.GrammarVersion()
	}

	if err := ac.cacheService.InvalidateByGrammarVersion(c.Request.Context(), version); err != nil {
		ac.logger.Error("cache invalidation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "INVALIDATE_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success: true,
		Message: "cache invalidated",
		Data: map[string]interface{}{
			"grammar_version": version,
		},
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

// GetSystemStats reports the full admin snapshot.
func (ac *AdminController) GetSystemStats(c *gin.Context) {
	stats, err := ac.adminService.GetSystemStats(c.Request.Context())
	if err != nil {
		ac.logger.Error("system stats failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, responses.ErrorResponse{
			Error:     "STATS_ERROR",
			Message:   err.Error(),
			Timestamp: time.Now().Format(time.RFC3339),
		})
		return
	}

	c.JSON(http.StatusOK, responses.SuccessResponse{
		Success:   true,
		Message:   "system stats",
		Data:      stats,
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}
