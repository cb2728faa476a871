package middleware

import (
	"log"
	"time"

	"realestate-sim/internal/observability"

	"github.com/gin-gonic/gin"
)

// Logger logs one line per request and records it in metrics (which may be nil).
func Logger(m *observability.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		elapsed := time.Since(start)
		status := c.Writer.Status()
		m.ObserveRequest(route, c.Request.Method, status, elapsed)

		if len(c.Errors) > 0 {
			log.Printf("%s %s -> %d (%s) errors: %s", c.Request.Method, c.Request.URL.Path, status, elapsed, c.Errors.String())
			return
		}
		log.Printf("%s %s -> %d (%s)", c.Request.Method, c.Request.URL.Path, status, elapsed)
	}
}
