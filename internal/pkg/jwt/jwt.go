package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"site-cms/internal/pkg/config"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

// AdminClaims 管理员Claims
type AdminClaims struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AuthType    string `json:"auth_type"` // ldap or local
	Type        string `json:"type"`      // access or refresh
	jwt.RegisteredClaims
}

// Identity 签发 Token 所需的用户信息
type Identity struct {
	Username    string
	Email       string
	DisplayName string
	AuthType    string
}

// Manager 负责签发与校验 Token
type Manager struct {
	secret        []byte
	accessExpire  time.Duration
	refreshExpire time.Duration
	now           func() time.Time
}

func NewManager(cfg *config.JWTConfig) *Manager {
	return &Manager{
		secret:        []byte(cfg.Secret),
		accessExpire:  time.Duration(cfg.AccessTokenExpire) * time.Second,
		refreshExpire: time.Duration(cfg.RefreshTokenExpire) * time.Second,
		now:           time.Now,
	}
}

// AccessExpire 访问Token有效期
func (m *Manager) AccessExpire() time.Duration {
	return m.accessExpire
}

// GenerateAccessToken 生成访问Token
func (m *Manager) GenerateAccessToken(id Identity) (string, error) {
	return m.sign(id, constants.JWTTypeAccess, m.accessExpire)
}

// GenerateRefreshToken 生成刷新Token
func (m *Manager) GenerateRefreshToken(id Identity) (string, error) {
	return m.sign(id, constants.JWTTypeRefresh, m.refreshExpire)
}

func (m *Manager) sign(id Identity, tokenType string, ttl time.Duration) (string, error) {
	now := m.now()
	claims := AdminClaims{
		Username:    id.Username,
		Email:       id.Email,
		DisplayName: id.DisplayName,
		AuthType:    id.AuthType,
		Type:        tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.Username,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ParseToken 解析并校验Token, expectType 为空时不校验类型
func (m *Manager) ParseToken(tokenString, expectType string) (*AdminClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, pkgErrors.ErrTokenExpired
		}
		return nil, pkgErrors.Wrap(pkgErrors.CodeUnauthorized, "解析Token失败", err)
	}

	claims, ok := token.Claims.(*AdminClaims)
	if !ok || !token.Valid {
		return nil, pkgErrors.ErrInvalidToken
	}
	if expectType != "" && claims.Type != expectType {
		return nil, pkgErrors.ErrInvalidToken
	}

	return claims, nil
}
