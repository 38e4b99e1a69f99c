package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common user validation errors.
var (
	ErrEmptyUserID      = errors.New("user ID cannot be empty")
	ErrEmptyEmail       = errors.New("email cannot be empty")
	ErrInvalidEmail     = errors.New("invalid email format")
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyProviderID  = errors.New("identity provider ID cannot be empty")
	ErrNegativeBalance  = errors.New("balance cannot be negative")
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 72 characters long")
)

// User represents a registered member of the marketplace. A user both earns
// satoshi by surfing ads (SurfingBalance) and funds their own ads from a
// separate advertising wallet (AdvertisingBalance). Credentials live with
// the identity provider; only the provider reference is stored here.
type User struct {
	ID                 uuid.UUID `json:"id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	ProviderID         string    `json:"-"` // identity provider reference, never exposed
	SurfingBalance     int64     `json:"surfingBalance"`
	AdvertisingBalance int64     `json:"advertisingBalance"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given email, name, and identity
// provider reference. It generates a new UUID for the user ID, zeroes both
// balances, and sets the creation/update timestamps.
// Returns an error if validation fails.
func NewUser(email, name, providerID string) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:         uuid.New(),
		Email:      email,
		Name:       name,
		ProviderID: providerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !validateEmailFormat(u.Email) {
		return ErrInvalidEmail
	}

	if strings.TrimSpace(u.Name) == "" {
		return ErrEmptyName
	}

	if u.ProviderID == "" {
		return ErrEmptyProviderID
	}

	if u.SurfingBalance < 0 || u.AdvertisingBalance < 0 {
		return ErrNegativeBalance
	}

	return nil
}

// validateEmailFormat performs basic validation of email format.
// Returns true if the email appears to be in a valid format: a local part,
// an @, and a domain containing an interior dot.
func validateEmailFormat(email string) bool {
	atIndex := strings.Index(email, "@")
	if atIndex <= 0 || atIndex == len(email)-1 {
		return false
	}

	domainPart := email[atIndex+1:]
	if len(domainPart) < 3 {
		return false
	}

	dotIndex := strings.Index(domainPart, ".")
	return dotIndex > 0 && dotIndex < len(domainPart)-1
}

// ValidatePassword checks a registration password against length
// requirements. Longer is the only complexity rule; 72 bytes is bcrypt's
// practical limit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	return nil
}
