package middleware

import (
	"strconv"
	"time"

	"github.com/dhis2-sre/channel-admin/internal/metrics"
	"github.com/gin-gonic/gin"
)

// Metrics records count, duration and in-flight requests. Requests are labelled by route rather
// than by path so IDs in the path don't blow up the label cardinality.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		metrics.HTTPRequestsInFlight.Inc()
		defer metrics.HTTPRequestsInFlight.Dec()

		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		status := strconv.Itoa(c.Writer.Status())

		metrics.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}
