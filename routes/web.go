package routes

import (
	"github.com/gin-gonic/gin"
)

// SetupWebRoutes serves the landing and self-documentation pages.
func SetupWebRoutes(router *gin.Engine) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "Street Address Parser Service",
			"docs":    "/docs",
		})
	})

	router.GET("/docs", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"api": "Street Address Parser API v1",
			"endpoints": map[string]string{
				"parse":       "POST /v1/addresses/parse",
				"batch":       "POST /v1/addresses/jobs",
				"job_status":  "GET /v1/addresses/jobs/:jobID/status",
				"job_results": "GET /v1/addresses/jobs/:jobID/results",
				"health":      "GET /health",
			},
			"commands": []string{"location", "address", "informal", "intersection"},
		})
	})
}
