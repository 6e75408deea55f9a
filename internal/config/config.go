// Package config loads the process configuration.
//
// Settings come from three layers, lowest precedence first: an optional TOML
// file for server tuning, a .env file if present, and the process
// environment. Credentials are environment-only. The resulting Config is
// loaded once at startup and treated as immutable for the process lifetime.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Eventbrite endpoint defaults. Overridable through the environment so tests
// and staging setups can point at a mock provider.
const (
	defaultAuthURL = "https://www.eventbrite.com/oauth/authorize"
	//nolint:gosec // G101: Not credentials, OAuth endpoint URL
	defaultTokenURL = "https://www.eventbrite.com/oauth/token"
	defaultAPIBase  = "https://www.eventbriteapi.com/v3"
)

// Config holds all settings for the britecal service.
type Config struct {
	// ClientID and ClientSecret identify the Eventbrite OAuth app.
	ClientID     string
	ClientSecret string
	// FrontendURL is where the callback redirects the browser, carrying the
	// access token as a query parameter.
	FrontendURL string
	// RedirectURI is the callback URL registered with the OAuth app.
	RedirectURI string

	// AuthURL and TokenURL are the provider OAuth endpoints.
	AuthURL  string
	TokenURL string
	// APIBaseURL is the Eventbrite REST API base (no trailing slash).
	APIBaseURL string

	// ListenAddr is the address the HTTP server binds to.
	ListenAddr string
	// HTTPTimeout bounds every outbound provider call.
	HTTPTimeout time.Duration
	// PageSize is the requested page size for order listings.
	PageSize int
	// RequestsPerSecond and BurstSize tune the outbound rate limiter.
	RequestsPerSecond float64
	BurstSize         int
}

// fileConfig is the TOML shape for server tuning. Credentials deliberately
// have no file representation.
type fileConfig struct {
	ListenAddr         string  `toml:"listen_addr"`
	HTTPTimeoutSeconds int     `toml:"http_timeout_seconds"`
	PageSize           int     `toml:"page_size"`
	RequestsPerSecond  float64 `toml:"requests_per_second"`
	BurstSize          int     `toml:"burst_size"`
}

// Default returns the configuration defaults applied before any source.
func Default() *Config {
	return &Config{
		AuthURL:     defaultAuthURL,
		TokenURL:    defaultTokenURL,
		APIBaseURL:  defaultAPIBase,
		ListenAddr:  ":8080",
		HTTPTimeout: 30 * time.Second,
		PageSize:    50,

		// Eventbrite allows 2,000 calls per hour per token; stay well under.
		RequestsPerSecond: 0.5,
		BurstSize:         5,
	}
}

// Load builds the configuration from the optional TOML file at path, a .env
// file in the working directory if one exists, and the process environment.
// An empty path skips the file layer.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := applyFile(cfg, path); err != nil {
			return nil, err
		}
	}

	// Missing .env is fine; the environment may carry everything.
	_ = godotenv.Load()

	applyEnv(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyFile overlays TOML file settings onto cfg.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if fc.ListenAddr != "" {
		cfg.ListenAddr = fc.ListenAddr
	}
	if fc.HTTPTimeoutSeconds > 0 {
		cfg.HTTPTimeout = time.Duration(fc.HTTPTimeoutSeconds) * time.Second
	}
	if fc.PageSize > 0 {
		cfg.PageSize = fc.PageSize
	}
	if fc.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = fc.RequestsPerSecond
	}
	if fc.BurstSize > 0 {
		cfg.BurstSize = fc.BurstSize
	}

	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	setString(&cfg.ClientID, "CLIENT_ID")
	setString(&cfg.ClientSecret, "CLIENT_SECRET")
	setString(&cfg.FrontendURL, "FRONTEND_URL")
	setString(&cfg.RedirectURI, "REDIRECT_URI")
	setString(&cfg.AuthURL, "EVENTBRITE_AUTH_URL")
	setString(&cfg.TokenURL, "EVENTBRITE_TOKEN_URL")
	setString(&cfg.APIBaseURL, "EVENTBRITE_API_BASE_URL")
	setString(&cfg.ListenAddr, "LISTEN_ADDR")

	if val := os.Getenv("PAGE_SIZE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	if val := os.Getenv("HTTP_TIMEOUT_SECONDS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			cfg.HTTPTimeout = time.Duration(n) * time.Second
		}
	}
}

func setString(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}

// validate checks that all required settings are present and coherent.
func (c *Config) validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "CLIENT_SECRET")
	}
	if c.FrontendURL == "" {
		missing = append(missing, "FRONTEND_URL")
	}
	if c.RedirectURI == "" {
		missing = append(missing, "REDIRECT_URI")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	if _, err := url.ParseRequestURI(c.FrontendURL); err != nil {
		return fmt.Errorf("invalid FRONTEND_URL: %w", err)
	}
	if _, err := url.ParseRequestURI(c.RedirectURI); err != nil {
		return fmt.Errorf("invalid REDIRECT_URI: %w", err)
	}

	return nil
}

// FrontendOrigin returns the scheme://host[:port] portion of FrontendURL,
// used as the CORS allow-origin value.
func (c *Config) FrontendOrigin() (string, error) {
	u, err := url.Parse(c.FrontendURL)
	if err != nil {
		return "", fmt.Errorf("parse frontend URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", errors.New("frontend URL must be absolute")
	}
	return u.Scheme + "://" + u.Host, nil
}
