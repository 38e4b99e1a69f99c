package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsurf/adsurf-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()

		user, err := domain.NewUser("a@x.com", "A", "provider-123")
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, user.ID)
		assert.Equal(t, "a@x.com", user.Email)
		assert.Equal(t, "A", user.Name)
		assert.Equal(t, "provider-123", user.ProviderID)
		assert.Zero(t, user.SurfingBalance, "surfing balance starts at zero")
		assert.Zero(t, user.AdvertisingBalance, "advertising balance starts at zero")
		assert.False(t, user.CreatedAt.IsZero())
	})

	tests := []struct {
		name       string
		email      string
		userName   string
		providerID string
		wantErr    error
	}{
		{"empty email", "", "A", "p", domain.ErrEmptyEmail},
		{"no at sign", "ax.com", "A", "p", domain.ErrInvalidEmail},
		{"no domain dot", "a@xcom", "A", "p", domain.ErrInvalidEmail},
		{"dot at domain end", "a@xcom.", "A", "p", domain.ErrInvalidEmail},
		{"empty name", "a@x.com", "  ", "p", domain.ErrEmptyName},
		{"empty provider id", "a@x.com", "A", "", domain.ErrEmptyProviderID},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewUser(tt.email, tt.userName, tt.providerID)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUserValidateBalances(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("a@x.com", "A", "p")
	require.NoError(t, err)

	user.SurfingBalance = -1
	assert.ErrorIs(t, user.Validate(), domain.ErrNegativeBalance)

	user.SurfingBalance = 10
	user.AdvertisingBalance = -5
	assert.ErrorIs(t, user.Validate(), domain.ErrNegativeBalance)
}

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	assert.NoError(t, domain.ValidatePassword("longenough"))
	assert.ErrorIs(t, domain.ValidatePassword("short"), domain.ErrPasswordTooShort)

	long := make([]byte, 73)
	for i := range long {
		long[i] = 'a'
	}
	assert.ErrorIs(t, domain.ValidatePassword(string(long)), domain.ErrPasswordTooLong)
}
