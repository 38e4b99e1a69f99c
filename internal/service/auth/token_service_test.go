package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsurf/adsurf-api/internal/config"
	"github.com/adsurf/adsurf-api/internal/domain"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:         testSecret,
		TokenLifetimeDays: 30,
	}
}

func testUser(t *testing.T) *domain.User {
	t.Helper()
	user, err := domain.NewUser("a@x.com", "A", "provider-1")
	require.NoError(t, err)
	return user
}

func TestNewTokenService(t *testing.T) {
	t.Parallel()

	t.Run("valid config", func(t *testing.T) {
		t.Parallel()
		_, err := NewTokenService(testAuthConfig())
		assert.NoError(t, err)
	})

	t.Run("secret too short", func(t *testing.T) {
		t.Parallel()
		_, err := NewTokenService(config.AuthConfig{JWTSecret: "short", TokenLifetimeDays: 30})
		assert.Error(t, err)
	})

	t.Run("non-positive lifetime", func(t *testing.T) {
		t.Parallel()
		_, err := NewTokenService(config.AuthConfig{JWTSecret: testSecret, TokenLifetimeDays: 0})
		assert.Error(t, err)
	})
}

func TestGenerateAndValidateToken(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)

	user := testUser(t)
	user.SurfingBalance = 42

	token, err := svc.GenerateToken(context.Background(), user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(context.Background(), token)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "A", claims.Name)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, int64(42), claims.SurfingBalance)
	assert.Zero(t, claims.AdvertisingBalance)
	assert.Equal(t, user.ID.String(), claims.Subject)
	assert.NotEmpty(t, claims.ID, "tokens carry a unique JTI")

	// Expiry is the fixed 30-day window.
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt)
	assert.Equal(t, 30*24*time.Hour, lifetime)
}

func TestValidateTokenFailures(t *testing.T) {
	t.Parallel()

	svc, err := NewTokenService(testAuthConfig())
	require.NoError(t, err)

	user := testUser(t)

	t.Run("malformed token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("empty token", func(t *testing.T) {
		t.Parallel()
		_, err := svc.ValidateToken(context.Background(), "")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong signing key", func(t *testing.T) {
		t.Parallel()

		other, err := NewTokenService(config.AuthConfig{
			JWTSecret:         "ffffffffffffffffffffffffffffffff",
			TokenLifetimeDays: 30,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(context.Background(), user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("expired token", func(t *testing.T) {
		t.Parallel()

		// Issue a token in the past, beyond lifetime plus clock skew.
		issuer := &hmacTokenService{
			signingKey:    []byte(testSecret),
			tokenLifetime: 30 * 24 * time.Hour,
			timeFunc: func() time.Time {
				return time.Now().Add(-31 * 24 * time.Hour)
			},
			clockSkew: 2 * time.Minute,
		}

		token, err := issuer.GenerateToken(context.Background(), user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("token within clock skew still valid", func(t *testing.T) {
		t.Parallel()

		issuer := &hmacTokenService{
			signingKey:    []byte(testSecret),
			tokenLifetime: time.Minute,
			timeFunc: func() time.Time {
				// Expired 90 seconds ago, inside the 2 minute leeway.
				return time.Now().Add(-150 * time.Second)
			},
			clockSkew: 2 * time.Minute,
		}

		token, err := issuer.GenerateToken(context.Background(), user)
		require.NoError(t, err)

		_, err = svc.ValidateToken(context.Background(), token)
		assert.NoError(t, err)
	})
}
