package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulsepoll/internal/config"
)

func newTestAuthService() *AuthService {
	return NewAuthService(&config.Config{
		OwnerUsername: "admin",
		OwnerPassword: "secret",
		JWTSecret:     "test-secret",
	})
}

func TestLogin(t *testing.T) {
	svc := newTestAuthService()

	t.Run("valid credentials", func(t *testing.T) {
		resp, err := svc.Login("admin", "secret")
		require.NoError(t, err)
		assert.NotEmpty(t, resp.Token)
		assert.True(t, strings.HasPrefix(resp.OwnerID, "owner_"))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login("admin", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong username", func(t *testing.T) {
		_, err := svc.Login("root", "secret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateOwnerToken(t *testing.T) {
	svc := newTestAuthService()

	t.Run("round trip", func(t *testing.T) {
		resp, err := svc.Login("admin", "secret")
		require.NoError(t, err)

		claims, err := svc.ValidateOwnerToken(resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.OwnerID, claims.OwnerID)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ValidateOwnerToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := NewAuthService(&config.Config{
			OwnerUsername: "admin",
			OwnerPassword: "secret",
			JWTSecret:     "different-secret",
		})
		resp, err := other.Login("admin", "secret")
		require.NoError(t, err)

		_, err = svc.ValidateOwnerToken(resp.Token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
