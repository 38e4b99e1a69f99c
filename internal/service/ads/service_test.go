package ads_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/mocks"
	"github.com/adsurf/adsurf-api/internal/service/ads"
	"github.com/adsurf/adsurf-api/internal/store"
)

// passthroughTx runs the transactional function directly against the mock
// stores; their WithTx(nil) returns the mock itself.
func passthroughTx(ctx context.Context, fn store.TxFn) error {
	return fn(ctx, nil)
}

func newTestUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "Test User", uuid.New().String())
	require.NoError(t, err)
	return user
}

func newTestAd(t *testing.T, ownerID uuid.UUID, reward, balance int64) *domain.Ad {
	t.Helper()
	ad, err := domain.NewAd(ownerID, "Test Ad", "A test ad", "https://example.com/landing", reward)
	require.NoError(t, err)
	ad.SatoshiBalance = balance
	return ad
}

func newService(adStore *mocks.MockAdStore, userStore *mocks.MockUserStore) ads.AdService {
	return ads.NewAdService(adStore, userStore, passthroughTx, nil)
}

func TestNewAdService_NilDependencies(t *testing.T) {
	t.Parallel()

	adStore := mocks.NewMockAdStore()
	userStore := mocks.NewMockUserStore()

	assert.Panics(t, func() { ads.NewAdService(nil, userStore, passthroughTx, nil) })
	assert.Panics(t, func() { ads.NewAdService(adStore, nil, passthroughTx, nil) })
	assert.Panics(t, func() { ads.NewAdService(adStore, userStore, nil, nil) })
	assert.NotPanics(t, func() { ads.NewAdService(adStore, userStore, passthroughTx, nil) })
}

func TestCreate(t *testing.T) {
	t.Parallel()

	ownerID := uuid.New()

	t.Run("stores a valid ad", func(t *testing.T) {
		t.Parallel()

		adStore := mocks.NewMockAdStore()
		svc := newService(adStore, mocks.NewMockUserStore())

		ad, err := svc.Create(context.Background(), ownerID, "Visit my shop", "Handmade goods", "https://shop.example.com", 25)
		require.NoError(t, err)

		assert.Equal(t, ownerID, ad.OwnerID)
		assert.Equal(t, int64(25), ad.Reward)
		assert.Equal(t, int64(0), ad.SatoshiBalance)
		assert.True(t, ad.Published)

		stored, err := adStore.GetByID(context.Background(), ad.ID)
		require.NoError(t, err)
		assert.Equal(t, ad.ID, stored.ID)
	})

	t.Run("rejects invalid reward", func(t *testing.T) {
		t.Parallel()

		svc := newService(mocks.NewMockAdStore(), mocks.NewMockUserStore())

		_, err := svc.Create(context.Background(), ownerID, "Visit my shop", "", "https://shop.example.com", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidReward)
	})

	t.Run("rejects relative target URL", func(t *testing.T) {
		t.Parallel()

		svc := newService(mocks.NewMockAdStore(), mocks.NewMockUserStore())

		_, err := svc.Create(context.Background(), ownerID, "Visit my shop", "", "/relative/path", 25)
		assert.ErrorIs(t, err, domain.ErrInvalidTargetURL)
	})

	t.Run("propagates store errors", func(t *testing.T) {
		t.Parallel()

		adStore := mocks.NewMockAdStore()
		adStore.CreateFn = func(ctx context.Context, ad *domain.Ad) error {
			return store.ErrInvalidEntity
		}
		svc := newService(adStore, mocks.NewMockUserStore())

		_, err := svc.Create(context.Background(), ownerID, "Visit my shop", "", "https://shop.example.com", 25)
		assert.ErrorIs(t, err, store.ErrInvalidEntity)
	})
}

func TestSurf(t *testing.T) {
	t.Parallel()

	t.Run("pays the viewer from the ad budget", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		viewer := newTestUser(t, "viewer@example.com")
		viewer.SurfingBalance = 100
		ad := newTestAd(t, owner.ID, 25, 200)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		userStore.AddUser(viewer)

		svc := newService(adStore, userStore)

		result, err := svc.Surf(context.Background(), ad.ID, viewer.ID)
		require.NoError(t, err)

		assert.Equal(t, int64(25), result.Reward)
		assert.Equal(t, int64(125), result.SurfingBalance)
		assert.Equal(t, int64(175), ad.SatoshiBalance)
		require.Len(t, adStore.Surfs, 1)
		assert.Equal(t, viewer.ID, adStore.Surfs[0].ViewerID)
	})

	t.Run("unknown ad", func(t *testing.T) {
		t.Parallel()

		svc := newService(mocks.NewMockAdStore(), mocks.NewMockUserStore())

		_, err := svc.Surf(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrAdNotFound)
	})

	t.Run("unpublished ad is not surfable", func(t *testing.T) {
		t.Parallel()

		ad := newTestAd(t, uuid.New(), 25, 200)
		ad.Published = false

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		_, err := svc.Surf(context.Background(), ad.ID, uuid.New())
		assert.ErrorIs(t, err, ads.ErrAdNotSurfable)
	})

	t.Run("owner cannot surf their own ad", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		ad := newTestAd(t, owner.ID, 25, 200)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		svc := newService(adStore, userStore)

		_, err := svc.Surf(context.Background(), ad.ID, owner.ID)
		assert.ErrorIs(t, err, domain.ErrOwnAdSurf)
		assert.Empty(t, adStore.Surfs)
		assert.Equal(t, int64(200), ad.SatoshiBalance)
	})

	t.Run("second surf of the same ad is rejected", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		viewer := newTestUser(t, "viewer@example.com")
		ad := newTestAd(t, owner.ID, 25, 200)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		userStore.AddUser(viewer)
		svc := newService(adStore, userStore)

		_, err := svc.Surf(context.Background(), ad.ID, viewer.ID)
		require.NoError(t, err)

		_, err = svc.Surf(context.Background(), ad.ID, viewer.ID)
		assert.ErrorIs(t, err, store.ErrAlreadySurfed)
		assert.Equal(t, int64(175), ad.SatoshiBalance)
		assert.Equal(t, int64(25), viewer.SurfingBalance)
	})

	t.Run("exhausted budget", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		viewer := newTestUser(t, "viewer@example.com")
		ad := newTestAd(t, owner.ID, 25, 10)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		userStore.AddUser(viewer)
		svc := newService(adStore, userStore)

		_, err := svc.Surf(context.Background(), ad.ID, viewer.ID)
		assert.ErrorIs(t, err, store.ErrBudgetExhausted)
		assert.Equal(t, int64(0), viewer.SurfingBalance)
	})

	t.Run("credit failure aborts the transaction", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		viewer := newTestUser(t, "viewer@example.com")
		ad := newTestAd(t, owner.ID, 25, 200)

		creditErr := errors.New("credit failed")
		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		userStore.AddUser(viewer)
		userStore.CreditSurfingBalanceFn = func(ctx context.Context, id uuid.UUID, amount int64) error {
			return creditErr
		}

		var rolledBack bool
		failingTx := func(ctx context.Context, fn store.TxFn) error {
			if err := fn(ctx, nil); err != nil {
				rolledBack = true
				return err
			}
			return nil
		}

		svc := ads.NewAdService(adStore, userStore, failingTx, nil)

		_, err := svc.Surf(context.Background(), ad.ID, viewer.ID)
		assert.ErrorIs(t, err, creditErr)
		assert.True(t, rolledBack)
	})
}

func TestDeposit(t *testing.T) {
	t.Parallel()

	t.Run("moves satoshi from owner wallet into the ad budget", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		owner.AdvertisingBalance = 1000
		ad := newTestAd(t, owner.ID, 25, 0)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		svc := newService(adStore, userStore)

		updated, err := svc.Deposit(context.Background(), ad.ID, owner.ID, 400)
		require.NoError(t, err)

		assert.Equal(t, int64(400), updated.SatoshiBalance)
		assert.Equal(t, int64(600), owner.AdvertisingBalance)
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		t.Parallel()

		svc := newService(mocks.NewMockAdStore(), mocks.NewMockUserStore())

		for _, amount := range []int64{0, -5} {
			_, err := svc.Deposit(context.Background(), uuid.New(), uuid.New(), amount)
			assert.ErrorIs(t, err, domain.ErrValidation)
		}
	})

	t.Run("unknown ad", func(t *testing.T) {
		t.Parallel()

		svc := newService(mocks.NewMockAdStore(), mocks.NewMockUserStore())

		_, err := svc.Deposit(context.Background(), uuid.New(), uuid.New(), 100)
		assert.ErrorIs(t, err, store.ErrAdNotFound)
	})

	t.Run("only the owner can deposit", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		ad := newTestAd(t, owner.ID, 25, 0)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		_, err := svc.Deposit(context.Background(), ad.ID, uuid.New(), 100)
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("insufficient advertising balance", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		owner.AdvertisingBalance = 50
		ad := newTestAd(t, owner.ID, 25, 0)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		userStore := mocks.NewMockUserStore()
		userStore.AddUser(owner)
		svc := newService(adStore, userStore)

		_, err := svc.Deposit(context.Background(), ad.ID, owner.ID, 100)
		assert.ErrorIs(t, err, store.ErrInsufficientFunds)
		assert.Equal(t, int64(0), ad.SatoshiBalance)
		assert.Equal(t, int64(50), owner.AdvertisingBalance)
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()

	t.Run("applies the patch for the owner", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		ad := newTestAd(t, owner.ID, 25, 100)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		published := false
		updated, err := svc.Update(context.Background(), ad.ID, owner.ID, ads.AdPatch{
			Title:       "New title",
			Description: "New description",
			TargetURL:   "https://new.example.com",
			Reward:      50,
			Published:   &published,
		})
		require.NoError(t, err)

		assert.Equal(t, "New title", updated.Title)
		assert.Equal(t, int64(50), updated.Reward)
		assert.False(t, updated.Published)
		// Budget is untouched by content updates.
		assert.Equal(t, int64(100), updated.SatoshiBalance)
	})

	t.Run("nil Published leaves publication state alone", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		ad := newTestAd(t, owner.ID, 25, 100)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		updated, err := svc.Update(context.Background(), ad.ID, owner.ID, ads.AdPatch{
			Title:     "New title",
			TargetURL: "https://new.example.com",
			Reward:    50,
		})
		require.NoError(t, err)
		assert.True(t, updated.Published)
	})

	t.Run("only the owner can update", func(t *testing.T) {
		t.Parallel()

		ad := newTestAd(t, uuid.New(), 25, 100)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		_, err := svc.Update(context.Background(), ad.ID, uuid.New(), ads.AdPatch{
			Title:     "New title",
			TargetURL: "https://new.example.com",
			Reward:    50,
		})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("rejects an invalid patch", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		ad := newTestAd(t, owner.ID, 25, 100)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		_, err := svc.Update(context.Background(), ad.ID, owner.ID, ads.AdPatch{
			Title:     "",
			TargetURL: "https://new.example.com",
			Reward:    50,
		})
		assert.ErrorIs(t, err, domain.ErrEmptyAdTitle)
	})
}

func TestDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes the owner's ad", func(t *testing.T) {
		t.Parallel()

		owner := newTestUser(t, "owner@example.com")
		ad := newTestAd(t, owner.ID, 25, 100)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		require.NoError(t, svc.Delete(context.Background(), ad.ID, owner.ID))

		_, err := adStore.GetByID(context.Background(), ad.ID)
		assert.ErrorIs(t, err, store.ErrAdNotFound)
	})

	t.Run("only the owner can delete", func(t *testing.T) {
		t.Parallel()

		ad := newTestAd(t, uuid.New(), 25, 100)

		adStore := mocks.NewMockAdStore()
		adStore.AddAd(ad)
		svc := newService(adStore, mocks.NewMockUserStore())

		err := svc.Delete(context.Background(), ad.ID, uuid.New())
		assert.ErrorIs(t, err, domain.ErrUnauthorized)

		_, getErr := adStore.GetByID(context.Background(), ad.ID)
		assert.NoError(t, getErr)
	})

	t.Run("unknown ad", func(t *testing.T) {
		t.Parallel()

		svc := newService(mocks.NewMockAdStore(), mocks.NewMockUserStore())

		err := svc.Delete(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrAdNotFound)
	})
}

func TestListing(t *testing.T) {
	t.Parallel()

	owner := newTestUser(t, "owner@example.com")
	other := newTestUser(t, "other@example.com")

	funded := newTestAd(t, owner.ID, 25, 200)
	broke := newTestAd(t, owner.ID, 25, 0)
	foreign := newTestAd(t, other.ID, 10, 50)

	adStore := mocks.NewMockAdStore()
	adStore.AddAd(funded)
	adStore.AddAd(broke)
	adStore.AddAd(foreign)
	svc := newService(adStore, mocks.NewMockUserStore())

	t.Run("ListPublished returns only surfable ads", func(t *testing.T) {
		t.Parallel()

		ads, err := svc.ListPublished(context.Background())
		require.NoError(t, err)

		ids := make([]uuid.UUID, 0, len(ads))
		for _, ad := range ads {
			ids = append(ids, ad.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{funded.ID, foreign.ID}, ids)
	})

	t.Run("ListMine returns all of the owner's ads", func(t *testing.T) {
		t.Parallel()

		ads, err := svc.ListMine(context.Background(), owner.ID)
		require.NoError(t, err)

		ids := make([]uuid.UUID, 0, len(ads))
		for _, ad := range ads {
			ids = append(ids, ad.ID)
		}
		assert.ElementsMatch(t, []uuid.UUID{funded.ID, broke.ID}, ids)
	})
}
