package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"travelplanner/internal/metrics"
)

// Metrics records request counts and latency by matched route template.
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.ObserveHTTP(route, c.Request.Method, c.Writer.Status(), time.Since(start))
	}
}
