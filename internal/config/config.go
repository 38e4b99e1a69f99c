package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Identity IdentityConfig `mapstructure:"identity" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs session tokens. Minimum length enforced here so a
	// missing or weak secret fails at startup rather than at issuance time.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeDays is the fixed lifetime of issued session tokens.
	TokenLifetimeDays int `mapstructure:"token_lifetime_days" validate:"required,gt=0"`
}

// IdentityConfig configures the external identity provider integration.
type IdentityConfig struct {
	// Mode selects the provider implementation: "http" delegates to an
	// external identity service, "postgres" keeps credentials locally.
	Mode string `mapstructure:"mode" validate:"required,oneof=http postgres"`

	// BaseURL is the identity service endpoint. Required in http mode.
	BaseURL string `mapstructure:"base_url" validate:"required_if=Mode http,omitempty,url"`

	// APIKey authenticates requests to the identity service.
	APIKey string `mapstructure:"api_key" validate:"required_if=Mode http"`

	// RequestTimeoutSeconds bounds each outbound identity call.
	RequestTimeoutSeconds int `mapstructure:"request_timeout_seconds" validate:"required,gt=0"`
}
