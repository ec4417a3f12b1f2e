package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/janhq/playground-api/internal/infrastructure/metrics"
)

// OutcomeKey is the gin context key under which routes store the envelope
// error kind of a failed playground operation.
const OutcomeKey = "playground_outcome"

// MetricsMiddleware records HTTP request metrics
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		metrics.RecordRequest(
			c.Request.Method,
			routeOf(c),
			strconv.Itoa(c.Writer.Status()),
			time.Since(start).Seconds(),
		)
	}
}
