package middleware

import (
	"time"

	"html-extract-go/pkg/cli/logger"

	"github.com/gin-gonic/gin"
)

// RequestLogger logs one line per request after it completes.
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Log("%s %s %d %s request=%s",
			c.Request.Method,
			c.Request.URL.Path,
			c.Writer.Status(),
			time.Since(start).Round(time.Millisecond),
			c.Writer.Header().Get("X-Request-ID"),
		)
	}
}
