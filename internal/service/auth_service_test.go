package service

import (
	"context"
	"errors"
	"testing"

	"github.com/go-ldap/ldap/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-cms/internal/dto"
	"site-cms/internal/pkg/config"
	"site-cms/internal/pkg/crypto"
	"site-cms/internal/pkg/jwt"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

type fakeLDAPConn struct {
	entries  []*ldap.Entry
	password string
	binds    []string
}

func (c *fakeLDAPConn) Bind(username, password string) error {
	c.binds = append(c.binds, username)
	if password != c.password {
		return errors.New("invalid credentials")
	}
	return nil
}

func (c *fakeLDAPConn) Search(*ldap.SearchRequest) (*ldap.SearchResult, error) {
	return &ldap.SearchResult{Entries: c.entries}, nil
}

func newLocalAuth(t *testing.T) (AuthService, *jwt.Manager) {
	t.Helper()
	hash, err := crypto.HashPassword("s3cret")
	require.NoError(t, err)

	cfg := &config.AuthConfig{
		JWT:   config.JWTConfig{Secret: "test", AccessTokenExpire: 60, RefreshTokenExpire: 600},
		Local: config.LocalConfig{Enabled: true, Username: "admin", PasswordHash: hash},
	}
	tokens := jwt.NewManager(&cfg.JWT)
	return NewAuthService(cfg, tokens, nil), tokens
}

func TestAuthService_LocalLogin(t *testing.T) {
	auth, _ := newLocalAuth(t)

	resp, err := auth.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, 60, resp.ExpiresIn)
	assert.Equal(t, constants.AuthTypeLocal, resp.User.AuthType)

	user, err := auth.VerifyToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	// refresh token 不能当作访问 token
	_, err = auth.VerifyToken(resp.RefreshToken)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}

func TestAuthService_LocalLoginRejectsBadCredentials(t *testing.T) {
	auth, _ := newLocalAuth(t)

	_, err := auth.Login(context.Background(), &dto.LoginRequest{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)

	_, err = auth.Login(context.Background(), &dto.LoginRequest{Username: "root", Password: "s3cret"})
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestAuthService_LDAPDisabled(t *testing.T) {
	auth, _ := newLocalAuth(t)
	_, err := auth.Login(context.Background(), &dto.LoginRequest{Username: "a", Password: "b", AuthType: constants.AuthTypeLDAP})
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeAuthError))
}

func TestAuthService_Refresh(t *testing.T) {
	auth, _ := newLocalAuth(t)
	ctx := context.Background()

	resp, err := auth.Login(ctx, &dto.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)

	refreshed, err := auth.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "admin", refreshed.User.Username)

	_, err = auth.RefreshToken(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)
}

func newFakeLDAP(conn *fakeLDAPConn, adminGroup string) *ldapService {
	return &ldapService{
		cfg: &config.LDAPConfig{
			Enabled:      true,
			BaseDN:       "dc=example,dc=com",
			UserFilter:   "(uid=%s)",
			AdminGroupDN: adminGroup,
			Attributes: config.LDAPAttributes{
				Username:    "uid",
				Email:       "mail",
				DisplayName: "cn",
			},
		},
		dial: func(*config.LDAPConfig) (ldapConn, func(), error) { return conn, func() {}, nil },
	}
}

func TestLDAPService_Authenticate(t *testing.T) {
	conn := &fakeLDAPConn{
		password: "pw",
		entries: []*ldap.Entry{ldap.NewEntry("uid=jane,dc=example,dc=com", map[string][]string{
			"uid":      {"jane"},
			"mail":     {"jane@example.com"},
			"cn":       {"Jane Doe"},
			"memberOf": {"CN=Site Admins,dc=example,dc=com"},
		})},
	}
	svc := newFakeLDAP(conn, "cn=site admins,dc=example,dc=com")

	user, err := svc.Authenticate(context.Background(), "jane", "pw")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
	assert.Equal(t, "Jane Doe", user.DisplayName)
	assert.Equal(t, constants.AuthTypeLDAP, user.AuthType)
	assert.Equal(t, []string{"uid=jane,dc=example,dc=com"}, conn.binds)

	_, err = svc.Authenticate(context.Background(), "jane", "nope")
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "jane", "")
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidCredentials)
}

func TestLDAPService_RequiresAdminGroup(t *testing.T) {
	conn := &fakeLDAPConn{
		password: "pw",
		entries:  []*ldap.Entry{ldap.NewEntry("uid=bob,dc=example,dc=com", map[string][]string{"uid": {"bob"}})},
	}
	svc := newFakeLDAP(conn, "cn=site admins,dc=example,dc=com")

	_, err := svc.Authenticate(context.Background(), "bob", "pw")
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeForbidden))
}

func TestLDAPService_UserNotFound(t *testing.T) {
	svc := newFakeLDAP(&fakeLDAPConn{password: "pw"}, "")
	_, err := svc.Authenticate(context.Background(), "ghost", "pw")
	assert.ErrorIs(t, err, pkgErrors.ErrUserNotFound)
}
