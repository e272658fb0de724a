package api

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter wires the HTTP surface. CORS is wide open on purpose:
// the chrome extension calls this API from arbitrary video pages.
func SetupRouter(h *Handler) *gin.Engine {
	r := gin.Default()
	r.Use(corsMiddleware())

	r.GET("/health", h.HealthCheck)
	r.POST("/analyze", h.AnalyzeComments)
	r.POST("/fetch-comments", h.FetchComments)
	r.POST("/analyze-video", h.AnalyzeVideo)
	r.GET("/training-runs", h.TrainingRuns)

	return r
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
