package routes

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/street-parser/app/config"
	"github.com/street-parser/app/controllers"
)

// SetupAPIRoutes wires the versioned API surface.
func SetupAPIRoutes(router *gin.Engine, parseController *controllers.ParseController, adminController *controllers.AdminController) {
	v1 := router.Group("/v1")
	{
		addresses := v1.Group("/addresses")
		{
			addresses.POST("/parse", parseController.Parse)
			addresses.POST("/jobs", parseController.BatchParse)
			addresses.GET("/jobs/:jobID/status", parseController.GetJobStatus)
			addresses.GET("/jobs/:jobID/results", parseController.GetJobResults)
		}

		admin := v1.Group("/admin")
		{
			admin.GET("/lexicon", adminController.GetLexiconStats)
			admin.POST("/lexicon/aliases", adminController.AddAlias)
			admin.POST("/lexicon/rebuild", adminController.Rebuild)
			admin.GET("/reviews", adminController.ListReviews)
			admin.POST("/reviews/:reviewID/resolve", adminController.ResolveReview)
			admin.GET("/cache/stats", adminController.GetCacheStats)
			admin.POST("/cache/clear", adminController.ClearCache)
			admin.POST("/cache/invalidate", adminController.InvalidateCache)
			admin.GET("/stats", adminController.GetSystemStats)
		}

		v1.GET("/health", parseController.HealthCheck)
	}
}

// SetupHealthRoutes exposes the probes outside the versioned group.
func SetupHealthRoutes(router *gin.Engine, parseController *controllers.ParseController) {
	router.GET("/health", parseController.HealthCheck)
	router.GET("/ready", parseController.HealthCheck)
	router.GET("/live", parseController.HealthCheck)
}

// SetupAllRoutes assembles middleware and every route group.
func SetupAllRoutes(router *gin.Engine, parseController *controllers.ParseController, adminController *controllers.AdminController) {
	setupMiddleware(router)

	SetupWebRoutes(router)
	SetupHealthRoutes(router, parseController)
	SetupAPIRoutes(router, parseController, adminController)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})
}

func setupMiddleware(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(requestTimeout())
}

// requestTimeout puts a deadline on each request context. Handlers that
// parse or touch a cache backend give up when the deadline passes
// instead of holding the connection.
func requestTimeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), config.RequestTimeout())
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
