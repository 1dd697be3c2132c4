package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"site-cms/pkg/constants"
)

// CORSMiddleware 跨域; allowOrigins 为空或包含 * 时允许任意来源, 但不带凭证
func CORSMiddleware(allowOrigins []string) gin.HandlerFunc {
	allowAll := len(allowOrigins) == 0 || lo.Contains(allowOrigins, "*")
	allowed := lo.SliceToMap(allowOrigins, func(o string) (string, struct{}) {
		return strings.TrimRight(o, "/"), struct{}{}
	})

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			if allowAll {
				c.Header("Access-Control-Allow-Origin", "*")
			} else if _, ok := allowed[origin]; ok {
				c.Header("Access-Control-Allow-Origin", origin)
				c.Header("Access-Control-Allow-Credentials", "true")
				c.Header("Vary", "Origin")
			}
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", strings.Join([]string{
				"Content-Type", constants.HeaderAuthorization, constants.HeaderRequestID,
			}, ", "))
			c.Header("Access-Control-Expose-Headers", constants.HeaderRequestID)
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
