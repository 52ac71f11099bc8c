package middleware

import (
	"context"

	"toolhub/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HTTP 头常量
const HeaderRequestID = "X-Request-ID"

// RequestIDMiddleware 请求 ID 中间件
// 为每个请求生成唯一 ID，注入日志上下文并回写响应头
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 支持上游传递
		requestID := c.GetHeader(HeaderRequestID)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		c.Set("request_id", requestID)

		ctx := logger.WithTraceID(c.Request.Context(), requestID)
		ctx = context.WithValue(ctx, requestIDKey, requestID)
		c.Request = c.Request.WithContext(ctx)

		c.Header(HeaderRequestID, requestID)

		c.Next()
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

// GetRequestID 从上下文获取请求 ID
func GetRequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}
