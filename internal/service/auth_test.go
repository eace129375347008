package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-arena/internal/apperror"
)

const testSecret = "test-secret"

func signed(t *testing.T, method jwt.SigningMethod, key any, claims jwt.MapClaims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return token
}

func TestAuthService_ResolveIdentity(t *testing.T) {
	auth := NewAuthService(testSecret)

	t.Run("Token issued by GenerateToken resolves to its identity", func(t *testing.T) {
		// Given: a token for alice
		token, err := auth.GenerateToken("alice")
		require.NoError(t, err)

		// When: resolving it
		identity, err := auth.ResolveIdentity(token)

		// Then: alice is returned
		require.NoError(t, err)
		assert.Equal(t, "alice", identity)
	})

	t.Run("Email claim is used when subject is missing", func(t *testing.T) {
		token := signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
			"email": "bob@example.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})

		identity, err := auth.ResolveIdentity(token)

		require.NoError(t, err)
		assert.Equal(t, "bob@example.com", identity)
	})

	t.Run("Rejected credentials", func(t *testing.T) {
		tests := []struct {
			name       string
			credential string
		}{
			{
				name:       "empty",
				credential: "",
			},
			{
				name:       "garbage",
				credential: "not-a-token",
			},
			{
				name: "wrong secret",
				credential: signed(t, jwt.SigningMethodHS256, []byte("other"), jwt.MapClaims{
					"sub": "alice",
					"exp": time.Now().Add(time.Hour).Unix(),
				}),
			},
			{
				name: "expired",
				credential: signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
					"sub": "alice",
					"exp": time.Now().Add(-time.Hour).Unix(),
				}),
			},
			{
				name: "no expiry",
				credential: signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
					"sub": "alice",
				}),
			},
			{
				name: "no identity",
				credential: signed(t, jwt.SigningMethodHS256, []byte(testSecret), jwt.MapClaims{
					"exp": time.Now().Add(time.Hour).Unix(),
				}),
			},
			{
				name: "other algorithm",
				credential: signed(t, jwt.SigningMethodHS512, []byte(testSecret), jwt.MapClaims{
					"sub": "alice",
					"exp": time.Now().Add(time.Hour).Unix(),
				}),
			},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				identity, err := auth.ResolveIdentity(tt.credential)

				require.ErrorIs(t, err, apperror.ErrUnauthenticated)
				assert.Empty(t, identity)
			})
		}
	})
}
