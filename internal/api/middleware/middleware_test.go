package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/logger"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeAuth struct {
	tokens map[string]string
}

func (f *fakeAuth) Login(context.Context, *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuth) RefreshToken(context.Context, string) (*dto.LoginResponse, error) {
	return nil, errors.New("not used")
}

func (f *fakeAuth) VerifyToken(token string) (*dto.UserInfo, error) {
	if name, ok := f.tokens[token]; ok {
		return &dto.UserInfo{Username: name, AuthType: constants.AuthTypeLocal}, nil
	}
	return nil, pkgErrors.ErrInvalidToken
}

func newAuthEngine() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(&fakeAuth{tokens: map[string]string{"good": "admin"}}))
	r.GET("/me", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("username"))
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newAuthEngine()

	cases := []struct {
		name   string
		header string
		cookie string
		want   string
	}{
		{name: "bearer", header: "Bearer good", want: "admin"},
		{name: "cookie", cookie: "good", want: "admin"},
		{name: "header wins over cookie", header: "Bearer bad", cookie: "good", want: `"code":401`},
		{name: "missing", want: `"code":401`},
		{name: "wrong scheme", header: "Basic good", want: `"code":401`},
		{name: "empty bearer", header: "Bearer ", want: `"code":401`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tc.header != "" {
				req.Header.Set(constants.HeaderAuthorization, tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: constants.SessionCookieName, Value: tc.cookie})
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"https://admin.example.com/"}))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://admin.example.com", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "pong", w.Body.String())
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware(nil))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://anywhere.example.com")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), constants.HeaderAuthorization)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/id", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(constants.HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Body.String())
	assert.Equal(t, "abc-123", w.Header().Get(constants.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/id", nil)
	req.Header.Set(constants.HeaderRequestID, strings.Repeat("x", 65))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Len(t, w.Body.String(), 36)
	assert.Equal(t, w.Body.String(), w.Header().Get(constants.HeaderRequestID))
}

func TestLoggerMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger.Replace(zap.New(core))
	t.Cleanup(func() { logger.Replace(zap.NewNop()) })

	r := gin.New()
	r.Use(RequestIDMiddleware(), LoggerMiddleware())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errors.New("boom"))
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/ok", "/fail"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(constants.HeaderRequestID, "req-"+strings.TrimPrefix(path, "/"))
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-ok", entries[0].ContextMap()["request_id"])
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Contains(t, entries[1].ContextMap()["errors"], "boom")
}
