package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"site-cms/internal/pkg/logger"
)

// LoggerMiddleware 日志中间件
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		query := c.Request.URL.RawQuery

		c.Next()

		cost := time.Since(start)
		fields := []zap.Field{
			zap.String("request_id", c.GetString(RequestIDKey)),
			zap.String("ip", c.ClientIP()),
			zap.String("user-agent", c.Request.UserAgent()),
		}
		if username := c.GetString("username"); username != "" {
			fields = append(fields, zap.String("user", username))
		}
		if errs := c.Errors.ByType(gin.ErrorTypePrivate); len(errs) > 0 {
			fields = append(fields, zap.String("errors", errs.String()))
		}

		msg := fmt.Sprintf("%s %s %s %v %.3fs %v", c.Request.Proto, c.Request.Method, path, c.Writer.Status(), cost.Seconds(), query)
		if len(c.Errors) > 0 {
			logger.Warn(msg, fields...)
			return
		}
		logger.Info(msg, fields...)
	}
}
