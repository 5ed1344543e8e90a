// Package pagination provides keyset (cursor) pagination shared by the product store,
// the HTTP API and the feed fetchers: page size configuration, opaque cursor encoding,
// query parameter parsing and the page response envelope.
package pagination

import (
	"fmt"

	pkgconfig "booksaetong/pkg/config"
)

// DefaultPageSize matches the listing page of the marketplace.
const DefaultPageSize = 12

// Config holds pagination configuration settings.
type Config struct {
	DefaultLimit int // Items per page when the request does not say (12)
	MaxLimit     int // Largest page a client may ask for (50)
}

// DefaultConfig returns the default pagination configuration.
func DefaultConfig() Config {
	return Config{
		DefaultLimit: DefaultPageSize,
		MaxLimit:     50,
	}
}

// LoadFromEnv loads pagination config from environment variables.
//   - PAGINATION_PAGE_SIZE: default items per page
//   - PAGINATION_MAX_PAGE_SIZE: maximum items per page
//
// Unset or unparsable values fall back to DefaultConfig().
func LoadFromEnv() Config {
	d := DefaultConfig()
	return Config{
		DefaultLimit: pkgconfig.GetEnvInt("PAGINATION_PAGE_SIZE", d.DefaultLimit),
		MaxLimit:     pkgconfig.GetEnvInt("PAGINATION_MAX_PAGE_SIZE", d.MaxLimit),
	}
}

// Validate checks that the default fits under the maximum.
func (c Config) Validate() error {
	if c.DefaultLimit < 1 {
		return fmt.Errorf("pagination: default page size must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("pagination: max page size %d is below default %d", c.MaxLimit, c.DefaultLimit)
	}
	return nil
}
