package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/digitalwellness/guardian/backend/internal/logger"
)

const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a unique ID, honoring an incoming
// X-Request-ID header when present. The ID is stored in the request
// context and echoed back in the response so clients can correlate
// problem responses with server logs.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := logger.WithRequestID(c.Request.Context(), requestID)
		c.Request = c.Request.WithContext(ctx)
		c.Set("request_id", requestID)
		c.Header(requestIDHeader, requestID)

		c.Next()
	}
}
