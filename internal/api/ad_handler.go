package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/adsurf/adsurf-api/internal/api/shared"
	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/service/ads"
)

// AdHandler serves the ad lifecycle endpoints. All routes sit behind the
// authentication middleware; the acting user comes from the request context.
type AdHandler struct {
	adService ads.AdService
	logger    *slog.Logger
}

// NewAdHandler creates a new AdHandler with the given dependencies.
func NewAdHandler(adService ads.AdService, logger *slog.Logger) *AdHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AdHandler{
		adService: adService,
		logger:    logger.With(slog.String("component", "ad_handler")),
	}
}

// CreateAd handles POST /api/createAds. The authenticated user becomes the
// ad's owner.
func (h *AdHandler) CreateAd(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	var req CreateAdRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	ad, err := h.adService.Create(r.Context(), userID, req.Title, req.Description, req.TargetURL, req.Reward)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, ad)
}

// ListPublishedAds handles GET /api/getAllAds. Only ads whose budget still
// covers a payout are returned.
func (h *AdHandler) ListPublishedAds(w http.ResponseWriter, r *http.Request) {
	adList, err := h.adService.ListPublished(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list ads")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, adList)
}

// ListMyAds handles GET /api/getMyAds.
func (h *AdHandler) ListMyAds(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "User ID not found or invalid")
		return
	}

	adList, err := h.adService.ListMine(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list ads")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, adList)
}

// SurfAd handles GET /api/surfAds/{id}: the authenticated user is paid the
// ad's reward for the view.
func (h *AdHandler) SurfAd(w http.ResponseWriter, r *http.Request) {
	userID, adID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	result, err := h.adService.Surf(r.Context(), adID, userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SurfResponse{
		Reward:         result.Reward,
		SurfingBalance: result.SurfingBalance,
	})
}

// DepositSatoshi handles GET /api/depositSatoshi/{id}?amount=N, moving
// satoshi from the owner's advertising balance into the ad's budget.
func (h *AdHandler) DepositSatoshi(w http.ResponseWriter, r *http.Request) {
	userID, adID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	rawAmount := r.URL.Query().Get("amount")
	if rawAmount == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Query parameter amount is required")
		return
	}

	amount, err := strconv.ParseInt(rawAmount, 10, 64)
	if err != nil || amount <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Amount must be a positive integer")
		return
	}

	ad, err := h.adService.Deposit(r.Context(), adID, userID, amount)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ad)
}

// UpdateAd handles PUT /api/updateAds/{id}.
func (h *AdHandler) UpdateAd(w http.ResponseWriter, r *http.Request) {
	userID, adID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	var req UpdateAdRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	ad, err := h.adService.Update(r.Context(), adID, userID, ads.AdPatch{
		Title:       req.Title,
		Description: req.Description,
		TargetURL:   req.TargetURL,
		Reward:      req.Reward,
		Published:   req.Published,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ad)
}

// DeleteAd handles DELETE /api/deleteAds/{id}.
func (h *AdHandler) DeleteAd(w http.ResponseWriter, r *http.Request) {
	userID, adID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.adService.Delete(r.Context(), adID, userID); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
