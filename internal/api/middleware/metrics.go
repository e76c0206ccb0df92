package middleware

import (
	"strconv"
	"time"

	"kelly-montecarlo/internal/observability"

	"github.com/gin-gonic/gin"
)

// Metrics records request counts and latency by matched route.
// Unmatched paths share the "unmatched" label to bound cardinality.
func Metrics(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RecordHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
