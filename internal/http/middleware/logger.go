package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
)

// Logger writes one access line per request. Server errors also get the
// matched route so failures can be grouped by endpoint.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)

		status := c.Writer.Status()
		line := "[HTTP] request_id=%s method=%s path=%s status=%d latency_ms=%.3f ip=%s"
		args := []any{
			GetRequestID(c),
			c.Request.Method,
			c.Request.URL.Path,
			status,
			float64(latency.Microseconds()) / 1000.0,
			c.ClientIP(),
		}
		if status >= 500 {
			line += " route=%q"
			args = append(args, c.FullPath())
		}
		log.Printf(line, args...)
	}
}
