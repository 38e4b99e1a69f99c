package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/adsurf/adsurf-api/internal/api/shared"
	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/platform/identity"
	"github.com/adsurf/adsurf-api/internal/platform/logger"
	"github.com/adsurf/adsurf-api/internal/service/auth"
	"github.com/adsurf/adsurf-api/internal/store"
)

// AuthHandler handles registration, login, third-party sign-in and password
// reset requests.
type AuthHandler struct {
	userStore    store.UserStore
	provider     identity.Provider
	tokenService auth.TokenService
	logger       *slog.Logger
}

// NewAuthHandler creates a new AuthHandler with the given dependencies.
func NewAuthHandler(
	userStore store.UserStore,
	provider identity.Provider,
	tokenService auth.TokenService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		userStore:    userStore,
		provider:     provider,
		tokenService: tokenService,
		logger:       logger.With(slog.String("component", "auth_handler")),
	}
}

// Register handles POST /api/register. It creates the credential account
// with the identity provider, persists the marketplace user with zeroed
// balances, and responds with a session token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	providerID, err := h.provider.CreateAccount(r.Context(), req.Email, req.Password)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	user, err := domain.NewUser(req.Email, req.Name, providerID)
	if err != nil {
		HandleAPIError(w, r, err, "Invalid user data")
		return
	}

	if err := h.userStore.Create(r.Context(), user); err != nil {
		// The provider account exists at this point; registering again with
		// the same email surfaces ErrEmailTaken from the provider instead.
		log.Warn("provider account created but user insert failed",
			slog.String("email", req.Email),
			slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// RegisterWithGoogle handles POST /api/registerWithGoogle. The client posts
// the provider ID token obtained from the sign-in flow; the server verifies
// it and creates or signs in the matching user. Verification failures are
// explicit 400s, never silent drops.
func (h *AuthHandler) RegisterWithGoogle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GoogleSignInRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	ext, err := h.provider.VerifyIDToken(r.Context(), req.IDToken)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	// Returning users sign in; unknown emails get a fresh account.
	user, err := h.userStore.GetByEmail(r.Context(), ext.Email)
	switch {
	case err == nil:
		h.respondWithToken(w, r, http.StatusCreated, user)
		return

	case errors.Is(err, store.ErrUserNotFound):
		user, err = domain.NewUser(ext.Email, ext.Name, ext.ProviderID)
		if err != nil {
			HandleAPIError(w, r, err, "Invalid user data")
			return
		}
		if err := h.userStore.Create(r.Context(), user); err != nil {
			HandleAPIError(w, r, err, "")
			return
		}
		log.Info("user registered via third-party sign-in",
			slog.String("user_id", user.ID.String()))
		h.respondWithToken(w, r, http.StatusCreated, user)
		return

	default:
		HandleAPIError(w, r, err, "Failed to sign in")
		return
	}
}

// Login handles POST /api/login. An unknown email is a 404 naming the
// address; a wrong password is a 401.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userStore.GetByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound,
				fmt.Sprintf("No account found for %s", req.Email))
			return
		}
		HandleAPIError(w, r, err, "Failed to authenticate user")
		return
	}

	if err := h.provider.SignInWithPassword(r.Context(), req.Email, req.Password); err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) ||
			errors.Is(err, identity.ErrAccountNotFound) {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithToken(w, r, http.StatusCreated, user)
}

// ResetPassword handles POST /api/resetPassword. Provider failures surface
// as explicit error responses rather than being logged and dropped.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	if err := h.provider.SendPasswordReset(r.Context(), req.Email); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{
		Message: "Password reset email sent",
	})
}

// respondWithToken issues a session token for user and writes the auth
// response.
func (h *AuthHandler) respondWithToken(
	w http.ResponseWriter,
	r *http.Request,
	status int,
	user *domain.User,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	token, err := h.tokenService.GenerateToken(r.Context(), user)
	if err != nil {
		log.Error("failed to generate token",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token")
		return
	}

	shared.RespondWithJSON(w, r, status, AuthResponse{
		Token: token,
		User:  user,
	})
}
