package domain_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsurf/adsurf-api/internal/domain"
)

func TestNewAd(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("valid ad", func(t *testing.T) {
		t.Parallel()

		ad, err := domain.NewAd(ownerID, "Earn sats", "watch and earn", "https://example.com/offer", 5)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, ad.ID)
		assert.Equal(t, ownerID, ad.OwnerID)
		assert.True(t, ad.Published, "ads start published")
		assert.Zero(t, ad.SatoshiBalance, "budget starts empty")
	})

	tests := []struct {
		name      string
		title     string
		targetURL string
		reward    int64
		wantErr   error
	}{
		{"empty title", " ", "https://example.com", 5, domain.ErrEmptyAdTitle},
		{"relative url", "t", "/offer", 5, domain.ErrInvalidTargetURL},
		{"garbage url", "t", "://nope", 5, domain.ErrInvalidTargetURL},
		{"zero reward", "t", "https://example.com", 0, domain.ErrInvalidReward},
		{"negative reward", "t", "https://example.com", -3, domain.ErrInvalidReward},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := domain.NewAd(ownerID, tt.title, "", tt.targetURL, tt.reward)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("empty owner", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewAd(uuid.Nil, "t", "", "https://example.com", 5)
		assert.ErrorIs(t, err, domain.ErrEmptyAdOwner)
	})
}

func TestAdSurfable(t *testing.T) {
	t.Parallel()

	ad, err := domain.NewAd(uuid.New(), "t", "", "https://example.com", 5)
	require.NoError(t, err)

	assert.False(t, ad.Surfable(), "empty budget is not surfable")

	ad.SatoshiBalance = 4
	assert.False(t, ad.Surfable(), "budget below one reward is not surfable")

	ad.SatoshiBalance = 5
	assert.True(t, ad.Surfable())

	ad.Published = false
	assert.False(t, ad.Surfable(), "unpublished ads are not surfable")
}

func TestNewSurf(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()
	ad, err := domain.NewAd(ownerID, "t", "", "https://example.com", 5)
	require.NoError(t, err)

	t.Run("valid surf", func(t *testing.T) {
		t.Parallel()

		viewerID := uuid.New()
		surf, err := domain.NewSurf(ad, viewerID)
		require.NoError(t, err)

		assert.Equal(t, ad.ID, surf.AdID)
		assert.Equal(t, viewerID, surf.ViewerID)
		assert.Equal(t, ad.Reward, surf.Reward, "surf pays the ad's reward")
	})

	t.Run("owner cannot surf own ad", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewSurf(ad, ownerID)
		assert.ErrorIs(t, err, domain.ErrOwnAdSurf)
	})

	t.Run("nil viewer", func(t *testing.T) {
		t.Parallel()

		_, err := domain.NewSurf(ad, uuid.Nil)
		assert.ErrorIs(t, err, domain.ErrEmptySurfViewer)
	})
}
