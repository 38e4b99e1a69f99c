package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/adsurf/adsurf-api/internal/config"
	"github.com/adsurf/adsurf-api/internal/platform/logger"
)

// HTTPProvider talks to an identity-toolkit-style REST service. Every call
// runs through a circuit breaker so a struggling provider fails fast
// instead of hanging requests, and through a per-request timeout.
type HTTPProvider struct {
	client  *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	baseURL string
	apiKey  string
	logger  *slog.Logger
}

// Ensure HTTPProvider implements Provider interface
var _ Provider = (*HTTPProvider)(nil)

// NewHTTPProvider creates an HTTP identity provider client from config.
// If logger is nil, the default logger is used.
func NewHTTPProvider(cfg config.IdentityConfig, logger *slog.Logger) *HTTPProvider {
	if logger == nil {
		logger = slog.Default()
	}

	cb := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:        "identity-provider",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 5
		},
	})

	return &HTTPProvider{
		client: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeoutSeconds) * time.Second,
		},
		breaker: cb,
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		logger:  logger.With(slog.String("component", "identity_http")),
	}
}

// providerError is the error envelope the identity service returns.
type providerError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// post sends a JSON payload to the given provider action and decodes the
// response into out. Provider error codes come back as the returned string;
// transport and 5xx failures map to ErrProviderUnavailable.
func (p *HTTPProvider) post(ctx context.Context, action string, payload, out any) (string, error) {
	log := logger.FromContextOrDefault(ctx, p.logger)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode identity request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/accounts:%s?key=%s", p.baseURL, action, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build identity request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.breaker.Execute(func() (*http.Response, error) {
		r, doErr := p.client.Do(req)
		if doErr != nil {
			return nil, doErr
		}
		// Treat 5xx as errors so the breaker counts them.
		if r.StatusCode >= 500 {
			if closeErr := r.Body.Close(); closeErr != nil {
				log.Debug("failed to close response body", slog.String("error", closeErr.Error()))
			}
			return nil, fmt.Errorf("identity provider returned %d", r.StatusCode)
		}
		return r, nil
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			log.Warn("identity circuit breaker open", slog.String("action", action))
			return "", fmt.Errorf("%w: circuit breaker open", ErrProviderUnavailable)
		}
		log.Error("identity provider call failed",
			slog.String("action", action),
			slog.String("error", err.Error()))
		return "", fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Debug("failed to close response body", slog.String("error", closeErr.Error()))
		}
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read response: %v", ErrProviderUnavailable, err)
	}

	if resp.StatusCode >= 400 {
		var pe providerError
		if err := json.Unmarshal(respBody, &pe); err != nil || pe.Error.Message == "" {
			return "", fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
		}
		return pe.Error.Message, nil
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return "", fmt.Errorf("%w: malformed response: %v", ErrProviderUnavailable, err)
		}
	}

	return "", nil
}

// CreateAccount implements Provider.CreateAccount
func (p *HTTPProvider) CreateAccount(ctx context.Context, email, password string) (string, error) {
	var result struct {
		LocalID string `json:"localId"`
	}

	code, err := p.post(ctx, "signUp", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": false,
	}, &result)
	if err != nil {
		return "", err
	}

	switch code {
	case "":
		// fallthrough to success below
	case "EMAIL_EXISTS":
		return "", ErrEmailTaken
	default:
		return "", fmt.Errorf("%w: %s", ErrProviderUnavailable, code)
	}

	if result.LocalID == "" {
		return "", fmt.Errorf("%w: provider returned no account ID", ErrProviderUnavailable)
	}
	return result.LocalID, nil
}

// SignInWithPassword implements Provider.SignInWithPassword
func (p *HTTPProvider) SignInWithPassword(ctx context.Context, email, password string) error {
	code, err := p.post(ctx, "signInWithPassword", map[string]any{
		"email":             email,
		"password":          password,
		"returnSecureToken": false,
	}, nil)
	if err != nil {
		return err
	}

	switch code {
	case "":
		return nil
	case "EMAIL_NOT_FOUND":
		return ErrAccountNotFound
	case "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS":
		return ErrInvalidCredentials
	default:
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, code)
	}
}

// SendPasswordReset implements Provider.SendPasswordReset
func (p *HTTPProvider) SendPasswordReset(ctx context.Context, email string) error {
	code, err := p.post(ctx, "sendOobCode", map[string]any{
		"requestType": "PASSWORD_RESET",
		"email":       email,
	}, nil)
	if err != nil {
		return err
	}

	switch code {
	case "":
		return nil
	case "EMAIL_NOT_FOUND":
		return ErrAccountNotFound
	default:
		return fmt.Errorf("%w: %s", ErrProviderUnavailable, code)
	}
}

// VerifyIDToken implements Provider.VerifyIDToken
func (p *HTTPProvider) VerifyIDToken(ctx context.Context, idToken string) (*ExternalIdentity, error) {
	var result struct {
		Users []struct {
			LocalID     string `json:"localId"`
			Email       string `json:"email"`
			DisplayName string `json:"displayName"`
		} `json:"users"`
	}

	code, err := p.post(ctx, "lookup", map[string]any{
		"idToken": idToken,
	}, &result)
	if err != nil {
		return nil, err
	}

	if code != "" {
		// Token problems all come back as INVALID_ID_TOKEN variants.
		if strings.Contains(code, "INVALID_ID_TOKEN") || strings.Contains(code, "TOKEN_EXPIRED") {
			return nil, ErrInvalidIDToken
		}
		return nil, fmt.Errorf("%w: %s", ErrProviderUnavailable, code)
	}

	if len(result.Users) == 0 || result.Users[0].LocalID == "" {
		return nil, ErrInvalidIDToken
	}

	u := result.Users[0]
	return &ExternalIdentity{
		ProviderID: u.LocalID,
		Email:      u.Email,
		Name:       u.DisplayName,
	}, nil
}
