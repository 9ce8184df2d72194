package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"table-booking/internal/infra/metrics"
)

// HTTPMetrics records request latency labelled by the matched route pattern.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.ObserveHTTP(c.Request.Method, route, strconv.Itoa(c.Writer.Status()), time.Since(start).Seconds())
	}
}
