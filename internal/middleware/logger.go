package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/digitalwellness/guardian/backend/internal/logger"
)

// Logger logs one structured line per completed request.
func Logger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		fields := []logger.Field{
			logger.String("method", method),
			logger.String("path", path),
			logger.Int("status", c.Writer.Status()),
			logger.Duration("latency", time.Since(start)),
		}
		if requestID := logger.RequestIDFromContext(c.Request.Context()); requestID != "" {
			fields = append(fields, logger.String("request_id", requestID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, logger.String("errors", c.Errors.String()))
		}

		log.Info("request completed", fields...)
	}
}
