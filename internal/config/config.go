package config

import (
	"errors"
	"fmt"
	"log"
	"net/url"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Fallback modes for a failed registration status check.
const (
	FallbackNotRegistered = "not_registered"
	FallbackUnknown       = "unknown"
)

// Config holds all configuration for the portal.
type Config struct {
	Addr string `env:"PORTAL_ADDR" envDefault:":8080"`

	// BackendURL is the base of the club API, e.g. http://localhost:5000/api.
	BackendURL string `env:"BACKEND_URL" envDefault:"http://localhost:5000/api"`
	// AdminURL is the base the admin login endpoint hangs off. It sits outside /api.
	AdminURL       string        `env:"ADMIN_URL" envDefault:"http://localhost:5000"`
	BackendTimeout time.Duration `env:"BACKEND_TIMEOUT" envDefault:"10s"`

	SessionSecret string `env:"SESSION_SECRET,required,notEmpty"`
	// SessionEncryptionKey is the AES-256 key for the session cookie.
	SessionEncryptionKey string `env:"SESSION_ENCRYPTION_KEY,required,notEmpty"`
	CSRFKey              string `env:"CSRF_KEY,required,notEmpty"`
	SecureCookies        bool   `env:"SECURE_COOKIES" envDefault:"false"`

	FeedbackTTL    time.Duration `env:"FEEDBACK_TTL" envDefault:"4s"`
	StatusFallback string        `env:"STATUS_FETCH_FALLBACK" envDefault:"not_registered"`

	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"debug"`
}

// New loads configuration from a .env file (when present) and the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		// slog is not configured yet at this point.
		log.Println("No .env file found, relying on environment variables")
	}
	return Parse()
}

// Parse reads the configuration from the current environment only.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values env tags cannot express.
func (c *Config) Validate() error {
	if _, err := url.ParseRequestURI(c.BackendURL); err != nil {
		return fmt.Errorf("BACKEND_URL is not a valid URL: %w", err)
	}
	if _, err := url.ParseRequestURI(c.AdminURL); err != nil {
		return fmt.Errorf("ADMIN_URL is not a valid URL: %w", err)
	}
	if len(c.SessionEncryptionKey) != 32 {
		return errors.New("SESSION_ENCRYPTION_KEY must be exactly 32 bytes")
	}
	if len(c.CSRFKey) != 32 {
		return errors.New("CSRF_KEY must be exactly 32 bytes")
	}
	if c.FeedbackTTL <= 0 {
		return errors.New("FEEDBACK_TTL must be positive")
	}
	switch c.StatusFallback {
	case FallbackNotRegistered, FallbackUnknown:
	default:
		return fmt.Errorf("STATUS_FETCH_FALLBACK must be %q or %q, got %q",
			FallbackNotRegistered, FallbackUnknown, c.StatusFallback)
	}
	return nil
}
