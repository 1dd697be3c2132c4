package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"site-cms/pkg/constants"
)

// RequestIDKey gin.Context 中的请求ID
const RequestIDKey = "request_id"

// RequestIDMiddleware 沿用调用方传入的 X-Request-ID, 没有时生成
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(constants.HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.NewString()
		}
		c.Set(RequestIDKey, id)
		c.Header(constants.HeaderRequestID, id)
		c.Next()
	}
}
