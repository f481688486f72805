package middleware

import (
	"Showcase/internal/pkg/consts"
	"Showcase/internal/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxTraceIDLen = 64

// TraceMiddleware 沿用上游传入的 trace id，过长或缺失时重新生成
func TraceMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		traceID := c.GetHeader(consts.TraceIDHeader)
		if traceID == "" || len(traceID) > maxTraceIDLen {
			traceID = uuid.NewString()
		}

		c.Set(logger.TraceIDKey, traceID)
		c.Request = c.Request.WithContext(logger.WithTraceID(c.Request.Context(), traceID))
		c.Header(consts.TraceIDHeader, traceID)
		c.Next()
	}
}
