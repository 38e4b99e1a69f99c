package api

import (
	"github.com/adsurf/adsurf-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=1,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// GoogleSignInRequest defines the payload for third-party sign-in. The
// client obtains the ID token from the provider's sign-in flow and posts it
// here for server-side verification.
type GoogleSignInRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// ResetPasswordRequest defines the payload for the password reset endpoint.
type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// AuthResponse defines the successful response for authentication endpoints.
// The token embeds a snapshot of the user fields at issuance time; User is
// the authoritative current record.
type AuthResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// MessageResponse is a simple acknowledgement payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateAdRequest defines the payload for creating an ad.
type CreateAdRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	TargetURL   string `json:"target_url"  validate:"required,url"`
	Reward      int64  `json:"reward"      validate:"required,gt=0"`
}

// UpdateAdRequest defines the payload for updating an ad's content fields.
// Published is optional; omitting it leaves the publication state unchanged.
type UpdateAdRequest struct {
	Title       string `json:"title"       validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=2000"`
	TargetURL   string `json:"target_url"  validate:"required,url"`
	Reward      int64  `json:"reward"      validate:"required,gt=0"`
	Published   *bool  `json:"published,omitempty"`
}

// SurfResponse reports a successful paid ad view.
type SurfResponse struct {
	Reward         int64 `json:"reward"`
	SurfingBalance int64 `json:"surfingBalance"`
}
