package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bunkerpal-api/internal/service"
)

// unmatchedRoute labels 404s so probing random paths cannot grow label cardinality.
const unmatchedRoute = "unmatched"

// Metrics observes every request under its route pattern (/attendance/days/:date, not the concrete date).
// Scrapes of /metrics are not counted.
func Metrics(metricsSvc *service.MetricsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if metricsSvc == nil || c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}
		metricsSvc.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), time.Since(start))
	}
}
