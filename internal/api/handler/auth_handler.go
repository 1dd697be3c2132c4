package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"site-cms/internal/dto"
	"site-cms/internal/service"
	"site-cms/pkg/constants"
	"site-cms/pkg/utils"
)

type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

// Login 登录
// @Summary 管理员登录
// @Description 支持LDAP和本地管理员登录, 访问Token同时写入 admin_session Cookie
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录请求"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.setSession(c, resp.AccessToken, resp.ExpiresIn)
	utils.Success(c, resp)
}

// Refresh 刷新Token
// @Summary 刷新访问Token
// @Description 使用RefreshToken获取新的AccessToken
// @Tags 认证
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "刷新Token请求"
// @Success 200 {object} utils.Response{data=dto.LoginResponse}
// @Router /api/v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorWithDetail(c, 400, "请求参数错误", utils.FormatValidationError(err))
		return
	}

	resp, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		utils.Error(c, err)
		return
	}

	h.setSession(c, resp.AccessToken, resp.ExpiresIn)
	utils.Success(c, resp)
}

// Logout 退出登录
// @Summary 退出登录
// @Description 清除 admin_session Cookie
// @Tags 认证
// @Produce json
// @Success 200 {object} utils.Response
// @Router /api/v1/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.setSession(c, "", -1)
	utils.SuccessWithMessage(c, "已退出登录", nil)
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 从JWT Token中获取当前登录用户信息
// @Tags 认证
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} utils.Response{data=dto.UserInfo}
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(c *gin.Context) {
	// 由认证中间件设置
	userInfo, exists := c.Get(constants.JWTContextKey)
	if !exists {
		utils.ErrorWithCode(c, 401, "未登录")
		return
	}

	utils.Success(c, userInfo)
}

func (h *AuthHandler) setSession(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookieName, token, maxAge, "/", "", h.secureCookie, true)
}
