package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/homescope/homescope/pkg/metrics"
)

// HTTPMetrics records request counts and latencies per route. The route
// template (not the raw path) is used as the label to keep cardinality low.
func HTTPMetrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTPRequest(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
