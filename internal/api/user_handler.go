package api

import (
	"log/slog"
	"net/http"

	"github.com/adsurf/adsurf-api/internal/api/shared"
	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/store"
)

// UserHandler serves the authenticated user endpoints. Both routes take the
// acting user's ID in the path and require it to match the token subject;
// balances always come from the store, never from token claims.
type UserHandler struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserHandler creates a new UserHandler with the given dependencies.
func NewUserHandler(userStore store.UserStore, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userStore: userStore,
		logger:    logger.With(slog.String("component", "user_handler")),
	}
}

// GetMe handles GET /api/me/{id}. It re-fetches the user record so the
// response reflects current balances rather than the issuance-time snapshot
// in the token.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, pathID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if pathID != userID {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	user, err := h.userStore.GetByID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, user)
}

// ListUsers handles GET /api/users/{id}. A mismatched or missing subject is
// an explicit 403/401, never a dropped request.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	userID, pathID, ok := requireUserAndPathID(w, r, "id")
	if !ok {
		return
	}

	if pathID != userID {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	users, err := h.userStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list users")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, users)
}
