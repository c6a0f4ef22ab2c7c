package httpapi

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zfogg/sonicindex/internal/logger"
)

// requestIDMiddleware tags each request with a correlation ID, reusing
// X-Request-ID from the client when present, and logs request start/finish.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		logger.DebugWithFields("request started", logger.WithRequestID(requestID))
		c.Next()
		logger.DebugWithFields("request completed",
			logger.WithRequestID(requestID),
			logger.WithCount("status", c.Writer.Status()),
		)
	}
}
