package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adsurf/adsurf-api/internal/api"
	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/mocks"
	"github.com/adsurf/adsurf-api/internal/service/ads"
	"github.com/adsurf/adsurf-api/internal/store"
)

func newAdRouter(adService *mocks.MockAdService, actingUser uuid.UUID) http.Handler {
	handler := api.NewAdHandler(adService, nil)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		if actingUser != uuid.Nil {
			r.Use(withAuthenticatedUser(actingUser))
		}
		r.Post("/api/createAds", handler.CreateAd)
		r.Get("/api/getAllAds", handler.ListPublishedAds)
		r.Get("/api/getMyAds", handler.ListMyAds)
		r.Get("/api/surfAds/{id}", handler.SurfAd)
		r.Get("/api/depositSatoshi/{id}", handler.DepositSatoshi)
		r.Put("/api/updateAds/{id}", handler.UpdateAd)
		r.Delete("/api/deleteAds/{id}", handler.DeleteAd)
	})
	return r
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestCreateAd(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	validBody := map[string]interface{}{
		"title":       "Visit my shop",
		"description": "Handmade goods",
		"target_url":  "https://shop.example.com",
		"reward":      25,
	}

	t.Run("creates an ad owned by the token subject", func(t *testing.T) {
		t.Parallel()

		var gotOwner uuid.UUID
		adService := &mocks.MockAdService{
			CreateFn: func(ctx context.Context, ownerID uuid.UUID, title, description, targetURL string, reward int64) (*domain.Ad, error) {
				gotOwner = ownerID
				return domain.NewAd(ownerID, title, description, targetURL, reward)
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodPost, "/api/createAds", validBody)

		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, userID, gotOwner)

		var ad domain.Ad
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&ad))
		assert.Equal(t, int64(25), ad.Reward)
		assert.Equal(t, int64(0), ad.SatoshiBalance)
	})

	t.Run("validation failures are 400", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name string
			body map[string]interface{}
		}{
			{"missing title", map[string]interface{}{"target_url": "https://x.example.com", "reward": 25}},
			{"missing url", map[string]interface{}{"title": "t", "reward": 25}},
			{"zero reward", map[string]interface{}{"title": "t", "target_url": "https://x.example.com", "reward": 0}},
			{"negative reward", map[string]interface{}{"title": "t", "target_url": "https://x.example.com", "reward": -3}},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				router := newAdRouter(&mocks.MockAdService{}, userID)
				rec := doJSON(t, router, http.MethodPost, "/api/createAds", tc.body)
				assert.Equal(t, http.StatusBadRequest, rec.Code)
			})
		}
	})

	t.Run("unauthenticated request is a 401", func(t *testing.T) {
		t.Parallel()

		router := newAdRouter(&mocks.MockAdService{}, uuid.Nil)
		rec := doJSON(t, router, http.MethodPost, "/api/createAds", validBody)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestListAds(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	t.Run("getAllAds returns the published list", func(t *testing.T) {
		t.Parallel()

		ad, err := domain.NewAd(uuid.New(), "Ad", "", "https://x.example.com", 10)
		require.NoError(t, err)
		ad.SatoshiBalance = 100

		adService := &mocks.MockAdService{
			ListPublishedFn: func(ctx context.Context) ([]*domain.Ad, error) {
				return []*domain.Ad{ad}, nil
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodGet, "/api/getAllAds", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var got []domain.Ad
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		require.Len(t, got, 1)
		assert.Equal(t, ad.ID, got[0].ID)
	})

	t.Run("getMyAds scopes to the subject", func(t *testing.T) {
		t.Parallel()

		var gotOwner uuid.UUID
		adService := &mocks.MockAdService{
			ListMineFn: func(ctx context.Context, ownerID uuid.UUID) ([]*domain.Ad, error) {
				gotOwner = ownerID
				return []*domain.Ad{}, nil
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodGet, "/api/getMyAds", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotOwner)
	})
}

func TestSurfAd(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	adID := uuid.New()

	t.Run("returns the reward and new balance", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			SurfFn: func(ctx context.Context, gotAd, gotViewer uuid.UUID) (*ads.SurfResult, error) {
				assert.Equal(t, adID, gotAd)
				assert.Equal(t, userID, gotViewer)
				return &ads.SurfResult{Reward: 25, SurfingBalance: 125}, nil
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodGet, "/api/surfAds/"+adID.String(), nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.SurfResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, int64(25), resp.Reward)
		assert.Equal(t, int64(125), resp.SurfingBalance)
	})

	t.Run("service errors map to status codes", func(t *testing.T) {
		t.Parallel()

		cases := []struct {
			name       string
			err        error
			wantStatus int
		}{
			{"unknown ad", store.ErrAdNotFound, http.StatusNotFound},
			{"unpublished ad", ads.ErrAdNotSurfable, http.StatusNotFound},
			{"own ad", domain.ErrOwnAdSurf, http.StatusForbidden},
			{"already surfed", store.ErrAlreadySurfed, http.StatusConflict},
			{"budget exhausted", store.ErrBudgetExhausted, http.StatusConflict},
		}

		for _, tc := range cases {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				adService := &mocks.MockAdService{
					SurfFn: func(ctx context.Context, adID, viewerID uuid.UUID) (*ads.SurfResult, error) {
						return nil, tc.err
					},
				}

				router := newAdRouter(adService, userID)
				rec := doJSON(t, router, http.MethodGet, "/api/surfAds/"+adID.String(), nil)
				assert.Equal(t, tc.wantStatus, rec.Code)
			})
		}
	})
}

func TestDepositSatoshi(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	adID := uuid.New()

	t.Run("funds the ad budget", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			DepositFn: func(ctx context.Context, gotAd, gotOwner uuid.UUID, amount int64) (*domain.Ad, error) {
				assert.Equal(t, adID, gotAd)
				assert.Equal(t, userID, gotOwner)
				assert.Equal(t, int64(500), amount)

				ad, err := domain.NewAd(gotOwner, "Ad", "", "https://x.example.com", 10)
				require.NoError(t, err)
				ad.SatoshiBalance = 500
				return ad, nil
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodGet, "/api/depositSatoshi/"+adID.String()+"?amount=500", nil)

		require.Equal(t, http.StatusOK, rec.Code)

		var ad domain.Ad
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&ad))
		assert.Equal(t, int64(500), ad.SatoshiBalance)
	})

	t.Run("bad amounts are 400", func(t *testing.T) {
		t.Parallel()

		for _, query := range []string{"", "?amount=abc", "?amount=0", "?amount=-10"} {
			router := newAdRouter(&mocks.MockAdService{}, userID)
			rec := doJSON(t, router, http.MethodGet, "/api/depositSatoshi/"+adID.String()+query, nil)
			assert.Equalf(t, http.StatusBadRequest, rec.Code, "query %q", query)
		}
	})

	t.Run("insufficient funds is a 409", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			DepositFn: func(ctx context.Context, adID, ownerID uuid.UUID, amount int64) (*domain.Ad, error) {
				return nil, store.ErrInsufficientFunds
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodGet, "/api/depositSatoshi/"+adID.String()+"?amount=500", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("foreign ad is a 403", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			DepositFn: func(ctx context.Context, adID, ownerID uuid.UUID, amount int64) (*domain.Ad, error) {
				return nil, domain.ErrUnauthorized
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodGet, "/api/depositSatoshi/"+adID.String()+"?amount=500", nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestUpdateAd(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	adID := uuid.New()

	validBody := map[string]interface{}{
		"title":      "New title",
		"target_url": "https://new.example.com",
		"reward":     50,
	}

	t.Run("applies the patch", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			UpdateFn: func(ctx context.Context, gotAd, gotOwner uuid.UUID, patch ads.AdPatch) (*domain.Ad, error) {
				assert.Equal(t, adID, gotAd)
				assert.Equal(t, userID, gotOwner)
				assert.Equal(t, "New title", patch.Title)
				assert.Nil(t, patch.Published)
				return domain.NewAd(gotOwner, patch.Title, patch.Description, patch.TargetURL, patch.Reward)
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodPut, "/api/updateAds/"+adID.String(), validBody)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("foreign ad is a 403", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			UpdateFn: func(ctx context.Context, adID, ownerID uuid.UUID, patch ads.AdPatch) (*domain.Ad, error) {
				return nil, domain.ErrUnauthorized
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodPut, "/api/updateAds/"+adID.String(), validBody)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown ad is a 404", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			UpdateFn: func(ctx context.Context, adID, ownerID uuid.UUID, patch ads.AdPatch) (*domain.Ad, error) {
				return nil, store.ErrAdNotFound
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodPut, "/api/updateAds/"+adID.String(), validBody)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeleteAd(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	adID := uuid.New()

	t.Run("deletes and returns no content", func(t *testing.T) {
		t.Parallel()

		var deleted bool
		adService := &mocks.MockAdService{
			DeleteFn: func(ctx context.Context, gotAd, gotOwner uuid.UUID) error {
				assert.Equal(t, adID, gotAd)
				assert.Equal(t, userID, gotOwner)
				deleted = true
				return nil
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodDelete, "/api/deleteAds/"+adID.String(), nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.True(t, deleted)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("foreign ad is a 403", func(t *testing.T) {
		t.Parallel()

		adService := &mocks.MockAdService{
			DeleteFn: func(ctx context.Context, adID, ownerID uuid.UUID) error {
				return domain.ErrUnauthorized
			},
		}

		router := newAdRouter(adService, userID)
		rec := doJSON(t, router, http.MethodDelete, "/api/deleteAds/"+adID.String(), nil)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
