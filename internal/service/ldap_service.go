package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"
	"github.com/samber/lo"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/config"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

type LDAPService interface {
	Authenticate(ctx context.Context, username, password string) (*dto.UserInfo, error)
}

// ldapConn 认证用到的连接操作
type ldapConn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
}

type ldapService struct {
	cfg  *config.LDAPConfig
	dial func(cfg *config.LDAPConfig) (ldapConn, func(), error)
}

func NewLDAPService(cfg *config.LDAPConfig) LDAPService {
	return &ldapService{
		cfg:  cfg,
		dial: dialLDAP,
	}
}

func (s *ldapService) Authenticate(ctx context.Context, username, password string) (*dto.UserInfo, error) {
	if !s.cfg.Enabled {
		return nil, pkgErrors.New(pkgErrors.CodeAuthError, "LDAP认证未启用")
	}
	// 空密码会被部分服务器当作匿名绑定
	if password == "" {
		return nil, pkgErrors.ErrInvalidCredentials
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, closeConn, err := s.dial(s.cfg)
	if err != nil {
		return nil, err
	}
	defer closeConn()

	entry, err := s.searchUser(conn, username)
	if err != nil {
		return nil, err
	}

	if err := conn.Bind(entry.DN, password); err != nil {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	if s.cfg.AdminGroupDN != "" {
		groups := entry.GetAttributeValues(s.memberOfAttr())
		isAdmin := lo.ContainsBy(groups, func(g string) bool { return strings.EqualFold(g, s.cfg.AdminGroupDN) })
		if !isAdmin {
			return nil, pkgErrors.New(pkgErrors.CodeForbidden, "用户不在管理员组中")
		}
	}

	return &dto.UserInfo{
		Username:    lo.CoalesceOrEmpty(entry.GetAttributeValue(s.cfg.Attributes.Username), username),
		Email:       entry.GetAttributeValue(s.cfg.Attributes.Email),
		DisplayName: entry.GetAttributeValue(s.cfg.Attributes.DisplayName),
		AuthType:    constants.AuthTypeLDAP,
	}, nil
}

func (s *ldapService) memberOfAttr() string {
	return lo.CoalesceOrEmpty(s.cfg.Attributes.MemberOf, "memberOf")
}

// dialLDAP 连接并使用管理员账号绑定
func dialLDAP(cfg *config.LDAPConfig) (ldapConn, func(), error) {
	scheme := "ldap"
	if cfg.UseSSL {
		scheme = "ldaps"
	}
	conn, err := ldap.DialURL(fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port))
	if err != nil {
		return nil, nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP连接失败", err)
	}

	if err := conn.Bind(cfg.BindDN, cfg.BindPassword); err != nil {
		conn.Close()
		return nil, nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP绑定失败", err)
	}
	return conn, func() { conn.Close() }, nil
}

func (s *ldapService) searchUser(conn ldapConn, username string) (*ldap.Entry, error) {
	filter := fmt.Sprintf(s.cfg.UserFilter, ldap.EscapeFilter(username))

	searchRequest := ldap.NewSearchRequest(
		s.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0,
		0,
		false,
		filter,
		[]string{s.cfg.Attributes.Username, s.cfg.Attributes.Email, s.cfg.Attributes.DisplayName, s.memberOfAttr()},
		nil,
	)

	result, err := conn.Search(searchRequest)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeAuthError, "LDAP搜索失败", err)
	}

	if len(result.Entries) == 0 {
		return nil, pkgErrors.ErrUserNotFound
	}
	if len(result.Entries) > 1 {
		return nil, pkgErrors.New(pkgErrors.CodeAuthError, "找到多个匹配的用户")
	}
	return result.Entries[0], nil
}
