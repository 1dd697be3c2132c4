package service

import (
	"context"
	"crypto/subtle"

	"go.uber.org/zap"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/config"
	"site-cms/internal/pkg/crypto"
	"site-cms/internal/pkg/jwt"
	"site-cms/internal/pkg/logger"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

type AuthService interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	VerifyToken(token string) (*dto.UserInfo, error)
}

type authService struct {
	cfg         *config.AuthConfig
	tokens      *jwt.Manager
	ldapService LDAPService
}

func NewAuthService(cfg *config.AuthConfig, tokens *jwt.Manager, ldapService LDAPService) AuthService {
	return &authService{
		cfg:         cfg,
		tokens:      tokens,
		ldapService: ldapService,
	}
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	var userInfo *dto.UserInfo
	var err error

	authType := req.AuthType
	if authType == "" {
		authType = constants.AuthTypeLocal
	}

	switch authType {
	case constants.AuthTypeLDAP:
		if !s.cfg.LDAP.Enabled || s.ldapService == nil {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "LDAP认证未启用")
		}
		userInfo, err = s.ldapService.Authenticate(ctx, req.Username, req.Password)
		if err != nil {
			return nil, err
		}

	case constants.AuthTypeLocal:
		if !s.cfg.Local.Enabled {
			return nil, pkgErrors.New(pkgErrors.CodeAuthError, "本地认证未启用")
		}
		userInfo, err = s.authenticateLocal(req.Username, req.Password)
		if err != nil {
			return nil, err
		}

	default:
		return nil, pkgErrors.New(pkgErrors.CodeBadRequest, "不支持的认证类型")
	}

	resp, err := s.issue(userInfo)
	if err != nil {
		return nil, err
	}

	logger.Info("管理员登录", zap.String("username", userInfo.Username), zap.String("auth_type", userInfo.AuthType))
	return resp, nil
}

// authenticateLocal 配置中的单个管理员账号, 密码为 bcrypt 哈希
func (s *authService) authenticateLocal(username, password string) (*dto.UserInfo, error) {
	expected := s.cfg.Local.Username
	if expected == "" || s.cfg.Local.PasswordHash == "" {
		return nil, pkgErrors.New(pkgErrors.CodeAuthError, "未配置本地管理员")
	}

	// 用户名不匹配时也执行一次哈希比较
	nameOK := subtle.ConstantTimeCompare([]byte(username), []byte(expected)) == 1
	passOK := crypto.CheckPassword(password, s.cfg.Local.PasswordHash)
	if !nameOK || !passOK {
		logger.Warn("本地登录失败", zap.String("username", username))
		return nil, pkgErrors.ErrInvalidCredentials
	}

	return &dto.UserInfo{
		Username:    expected,
		DisplayName: expected,
		AuthType:    constants.AuthTypeLocal,
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	claims, err := s.tokens.ParseToken(refreshToken, constants.JWTTypeRefresh)
	if err != nil {
		return nil, err
	}

	return s.issue(&dto.UserInfo{
		Username:    claims.Username,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		AuthType:    claims.AuthType,
	})
}

// VerifyToken 校验访问 Token
func (s *authService) VerifyToken(token string) (*dto.UserInfo, error) {
	claims, err := s.tokens.ParseToken(token, constants.JWTTypeAccess)
	if err != nil {
		return nil, err
	}

	return &dto.UserInfo{
		Username:    claims.Username,
		Email:       claims.Email,
		DisplayName: claims.DisplayName,
		AuthType:    claims.AuthType,
	}, nil
}

func (s *authService) issue(userInfo *dto.UserInfo) (*dto.LoginResponse, error) {
	id := jwt.Identity{
		Username:    userInfo.Username,
		Email:       userInfo.Email,
		DisplayName: userInfo.DisplayName,
		AuthType:    userInfo.AuthType,
	}

	accessToken, err := s.tokens.GenerateAccessToken(id)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成AccessToken失败", err)
	}
	refreshToken, err := s.tokens.GenerateRefreshToken(id)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成RefreshToken失败", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(s.tokens.AccessExpire().Seconds()),
		User:         userInfo,
	}, nil
}
