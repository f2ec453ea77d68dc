package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"classifieds-hub/internal/metrics"
)

// HTTPMetrics records request latency per route template and status.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		startedAt := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		metrics.ObserveHTTPRequest(c.Request.Method, path, c.Writer.Status(), time.Since(startedAt))
	}
}
