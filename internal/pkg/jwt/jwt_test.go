package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"site-cms/internal/pkg/config"
	"site-cms/pkg/constants"
	pkgErrors "site-cms/pkg/errors"
)

func newTestManager() *Manager {
	return NewManager(&config.JWTConfig{
		Secret:             "test-secret",
		AccessTokenExpire:  60,
		RefreshTokenExpire: 3600,
	})
}

func TestManager_AccessToken(t *testing.T) {
	m := newTestManager()
	token, err := m.GenerateAccessToken(Identity{Username: "admin", AuthType: constants.AuthTypeLocal})
	require.NoError(t, err)

	claims, err := m.ParseToken(token, constants.JWTTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)
	assert.Equal(t, constants.AuthTypeLocal, claims.AuthType)
	assert.Equal(t, constants.JWTTypeAccess, claims.Type)
}

func TestManager_RejectsWrongType(t *testing.T) {
	m := newTestManager()
	token, err := m.GenerateRefreshToken(Identity{Username: "admin"})
	require.NoError(t, err)

	_, err = m.ParseToken(token, constants.JWTTypeAccess)
	assert.ErrorIs(t, err, pkgErrors.ErrInvalidToken)

	_, err = m.ParseToken(token, constants.JWTTypeRefresh)
	assert.NoError(t, err)
}

func TestManager_Expired(t *testing.T) {
	m := newTestManager()
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }
	token, err := m.GenerateAccessToken(Identity{Username: "admin"})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseToken(token, constants.JWTTypeAccess)
	assert.ErrorIs(t, err, pkgErrors.ErrTokenExpired)
}

func TestManager_WrongSecret(t *testing.T) {
	token, err := newTestManager().GenerateAccessToken(Identity{Username: "admin"})
	require.NoError(t, err)

	other := NewManager(&config.JWTConfig{Secret: "other", AccessTokenExpire: 60})
	_, err = other.ParseToken(token, "")
	assert.True(t, pkgErrors.IsCode(err, pkgErrors.CodeUnauthorized))
}
