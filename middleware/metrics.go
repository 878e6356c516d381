package middleware

import (
	"time"

	"blog-api/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency keyed by the route template, so
// /blogs/1/ and /blogs/2/ share a series.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		metrics.RecordHTTPRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}
