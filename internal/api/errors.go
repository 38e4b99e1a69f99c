package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/adsurf/adsurf-api/internal/api/shared"
	"github.com/adsurf/adsurf-api/internal/domain"
	"github.com/adsurf/adsurf-api/internal/platform/identity"
	"github.com/adsurf/adsurf-api/internal/service/ads"
	"github.com/adsurf/adsurf-api/internal/service/auth"
	"github.com/adsurf/adsurf-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, identity.ErrInvalidCredentials):
		return http.StatusUnauthorized

	// Authorization errors
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrOwnAdSurf):
		return http.StatusForbidden

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrAdNotFound),
		errors.Is(err, identity.ErrAccountNotFound),
		errors.Is(err, ads.ErrAdNotSurfable):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, identity.ErrEmailTaken),
		errors.Is(err, store.ErrAlreadySurfed),
		errors.Is(err, store.ErrInsufficientFunds),
		errors.Is(err, store.ErrBudgetExhausted):
		return http.StatusConflict

	// Upstream identity provider failures
	case errors.Is(err, identity.ErrProviderUnavailable):
		return http.StatusBadGateway

	// Bad request errors
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, identity.ErrInvalidIDToken):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid):
		return "Invalid token"

	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"

	case errors.Is(err, identity.ErrInvalidCredentials):
		return "Invalid credentials"

	// Authorization errors
	case errors.Is(err, domain.ErrOwnAdSurf):
		return "You cannot surf your own ad"

	case errors.Is(err, domain.ErrUnauthorized):
		return "You do not have access to this resource"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrAdNotFound):
		return "Ad not found"

	case errors.Is(err, identity.ErrAccountNotFound):
		return "Account not found"

	case errors.Is(err, ads.ErrAdNotSurfable):
		return "Ad is not available for surfing"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, identity.ErrEmailTaken):
		return "Email already exists"

	case errors.Is(err, store.ErrAlreadySurfed):
		return "You have already surfed this ad"

	case errors.Is(err, store.ErrInsufficientFunds):
		return "Insufficient advertising balance"

	case errors.Is(err, store.ErrBudgetExhausted):
		return "Ad budget exhausted"

	// Upstream identity provider failures
	case errors.Is(err, identity.ErrProviderUnavailable):
		return "Identity provider unavailable"

	// Bad request errors
	case errors.Is(err, identity.ErrInvalidIDToken):
		return "Invalid identity token"

	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"

	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidID):
		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) {
			return fmt.Sprintf("Invalid %s: %s", validationErr.Field, validationErr.Message)
		}
		return "Validation error"

	// Default case for unknown errors
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError maps err to a status code and sanitized message and writes
// the JSON error response, logging the underlying error. When userMessage is
// non-empty it overrides the derived message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, userMessage string) {
	status := MapErrorToStatusCode(err)
	if userMessage == "" {
		userMessage = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, userMessage, err)
}

// SanitizeValidationError removes sensitive details from validator errors
// and returns a user-friendly message.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example format:
		// "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}

				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

// getValidationTagMessage maps validation tags to user-friendly error messages
func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "url":
		return "invalid URL"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "gt":
		return "must be positive"
	default:
		return "validation failed"
	}
}
