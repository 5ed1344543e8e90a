package fetcher

import (
	"fmt"
	"net/url"
	"time"

	pkgconfig "booksaetong/pkg/config"
)

// Config holds the configuration of the around-listing API client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8080". Required.
	BaseURL string

	// Timeout bounds a single page request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the largest response body accepted, in bytes. The body is read
	// through a limit, so the Content-Length header is not trusted.
	// Default: 2MB
	MaxBodySize int64

	// MaxRedirects is the number of redirects followed before giving up.
	// Default: 3
	MaxRedirects int

	// UserAgent identifies the client to the API.
	UserAgent string
}

// DefaultConfig returns the default client configuration without a BaseURL.
func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		MaxBodySize:  2 * 1024 * 1024,
		MaxRedirects: 3,
		UserAgent:    "booksaetong-feed/1.0",
	}
}

// LoadConfigFromEnv reads FEED_API_* variables over the defaults.
func LoadConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.BaseURL = pkgconfig.GetEnvString("FEED_API_URL", "")
	cfg.Timeout = pkgconfig.GetEnvDuration("FEED_API_TIMEOUT", cfg.Timeout)
	cfg.MaxBodySize = int64(pkgconfig.GetEnvInt("FEED_API_MAX_BODY_SIZE", int(cfg.MaxBodySize)))
	cfg.MaxRedirects = pkgconfig.GetEnvInt("FEED_API_MAX_REDIRECTS", cfg.MaxRedirects)
	return cfg
}

// Validate checks that the configuration can build a working client.
//
// Validation rules:
//   - BaseURL: absolute http(s) URL with a host
//   - Timeout: > 0
//   - MaxBodySize: 1KB-100MB
//   - MaxRedirects: 0-10
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || c.BaseURL == "" {
		return fmt.Errorf("base URL is required and must be a valid URL, got %q", c.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("base URL must have a host, got %q", c.BaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodySize < 1024 || c.MaxBodySize > 100*1024*1024 {
		return fmt.Errorf("max body size must be between 1KB and 100MB, got %d", c.MaxBodySize)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}
	return nil
}
