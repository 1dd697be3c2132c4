package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"site-cms/internal/service"
	"site-cms/pkg/constants"
	"site-cms/pkg/utils"
)

// AuthMiddleware JWT认证中间件
// Token 取自 Authorization: Bearer, 没有时读取 admin_session Cookie
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractToken(c)
		if !ok {
			utils.ErrorWithCode(c, 401, "未登录")
			c.Abort()
			return
		}

		userInfo, err := authService.VerifyToken(token)
		if err != nil {
			utils.Error(c, err)
			c.Abort()
			return
		}

		c.Set(constants.JWTContextKey, userInfo)
		c.Set("username", userInfo.Username)

		c.Next()
	}
}

func extractToken(c *gin.Context) (string, bool) {
	if authHeader := c.GetHeader(constants.HeaderAuthorization); authHeader != "" {
		if !strings.HasPrefix(authHeader, constants.HeaderBearerPrefix) {
			return "", false
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, constants.HeaderBearerPrefix))
		return token, token != ""
	}

	token, err := c.Cookie(constants.SessionCookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}
