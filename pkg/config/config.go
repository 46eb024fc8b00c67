// Package config loads process settings from the environment (and an
// optional .env file) once at startup.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/worldofchami/shopify-mcp/pkg/platforms/shopify"
	"github.com/worldofchami/shopify-mcp/pkg/ratings"
)

const (
	KeyStore          = "SHOPIFY_STORE"
	KeyAccessToken    = "SHOPIFY_ACCESS_TOKEN"
	KeyAPIBase        = "SHOPIFY_API_BASE"
	KeyAPIVersion     = "SHOPIFY_API_VERSION"
	KeyTimeout        = "SHOPIFY_TIMEOUT"
	KeyRatingsBackend = "RATINGS_BACKEND"
	KeyTransport      = "MCP_TRANSPORT"
	KeyHTTPAddr       = "MCP_HTTP_ADDR"
	KeyLogLevel       = "LOG_LEVEL"
)

const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

type Config struct {
	Credential     shopify.Credential
	APIVersion     string
	Timeout        time.Duration
	RatingsBackend string
	Transport      string
	HTTPAddr       string
	LogLevel       string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyAPIVersion, shopify.DefaultAPIVersion)
	v.SetDefault(KeyTimeout, shopify.DefaultTimeout.String())
	v.SetDefault(KeyRatingsBackend, ratings.BackendMemory)
	v.SetDefault(KeyTransport, TransportStdio)
	v.SetDefault(KeyHTTPAddr, ":8080")
	v.SetDefault(KeyLogLevel, "info")
}

// Load reads .env files if present, then the environment.
func Load(envFiles ...string) (Config, error) {
	// Missing .env files are fine; real environment variables win.
	_ = godotenv.Load(envFiles...)
	return FromViper(newViper())
}

func FromViper(v *viper.Viper) (Config, error) {
	cred, err := shopify.NewCredential(
		v.GetString(KeyStore),
		v.GetString(KeyAccessToken),
		v.GetString(KeyAPIBase),
	)
	if err != nil {
		return Config{}, fmt.Errorf("invalid shopify settings (%s, %s): %w", KeyAccessToken, KeyAPIBase, err)
	}

	timeout, err := parseTimeout(v.GetString(KeyTimeout))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Credential:     cred,
		APIVersion:     strings.TrimSpace(v.GetString(KeyAPIVersion)),
		Timeout:        timeout,
		RatingsBackend: strings.ToLower(strings.TrimSpace(v.GetString(KeyRatingsBackend))),
		Transport:      strings.ToLower(strings.TrimSpace(v.GetString(KeyTransport))),
		HTTPAddr:       strings.TrimSpace(v.GetString(KeyHTTPAddr)),
		LogLevel:       strings.TrimSpace(v.GetString(KeyLogLevel)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.RatingsBackend {
	case ratings.BackendMemory, ratings.BackendSQLite:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", KeyRatingsBackend, ratings.BackendMemory, ratings.BackendSQLite, c.RatingsBackend)
	}
	switch c.Transport {
	case TransportStdio, TransportHTTP:
	default:
		return fmt.Errorf("%s must be %q or %q, got %q", KeyTransport, TransportStdio, TransportHTTP, c.Transport)
	}
	if c.Transport == TransportHTTP && c.HTTPAddr == "" {
		return fmt.Errorf("%s is required for the http transport", KeyHTTPAddr)
	}
	return nil
}

// parseTimeout accepts Go durations ("10s") or a bare number of seconds.
func parseTimeout(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return shopify.DefaultTimeout, nil
	}
	if d, err := time.ParseDuration(raw); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("%s must be positive, got %q", KeyTimeout, raw)
		}
		return d, nil
	}
	d, err := time.ParseDuration(raw + "s")
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s %q", KeyTimeout, raw)
	}
	return d, nil
}
