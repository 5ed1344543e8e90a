// Package config holds the runtime configuration shared by the api and feed binaries.
//
// Values are layered: built-in defaults, then an optional YAML file, then environment
// variables. A malformed environment value falls back to the layer below it and is
// reported as a Fallback instead of failing startup.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"booksaetong/internal/common/pagination"
	pkgconfig "booksaetong/internal/pkg/config"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// DatabaseConfig selects the catalogue store.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	URL    string `yaml:"url"`
	// AutoMigrate applies the schema on open. Turn it off when migrations are run
	// out of band against a shared database.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// APIConfig points the browse client at a remote feed endpoint. An empty URL means
// the local catalogue is read directly.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// FeedSettings tunes pagination and scroll detection.
type FeedSettings struct {
	PageSize            int           `yaml:"page_size"`
	SentinelThreshold   float64       `yaml:"sentinel_threshold"`
	SentinelMinInterval time.Duration `yaml:"sentinel_min_interval"`
}

// LogConfig selects the slog level and handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FeedConfig is the full runtime configuration.
type FeedConfig struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	API      APIConfig      `yaml:"api"`
	Feed     FeedSettings   `yaml:"feed"`
	Log      LogConfig      `yaml:"log"`
}

// Fallback records an environment value that was rejected.
type Fallback struct {
	Field   string
	Warning string
}

const (
	maxPageSize  = 100
	maxThreshold = 10000
)

var drivers = []string{"postgres", "postgresql", "pgx", "sqlite", "sqlite3"}

// DefaultFeedConfig returns the built-in defaults: a local SQLite catalogue, no remote
// API and twelve items per page.
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:      "sqlite",
			URL:         "file:booksaetong.db?_foreign_keys=on",
			AutoMigrate: true,
		},
		API: APIConfig{
			Timeout: 10 * time.Second,
		},
		Feed: FeedSettings{
			PageSize:          12,
			SentinelThreshold: 2,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadFeedConfig builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
// The path parameter is expected to come from a trusted source (command-line flag).
func LoadFeedConfig(path string) (*FeedConfig, []Fallback, error) {
	cfg := DefaultFeedConfig()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, nil, err
		}
	}
	fallbacks := cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fallbacks, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, fallbacks, nil
}

func (c *FeedConfig) decodeFile(path string) error {
	// #nosec G304 -- path is provided by trusted source (CLI flag), not user input
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// ApplyEnv overlays environment variables on c. Each rejected value keeps the
// current setting and is returned as a Fallback.
func (c *FeedConfig) ApplyEnv() []Fallback {
	var fbs []Fallback
	track := func(field string, warnings []string) {
		for _, w := range warnings {
			fbs = append(fbs, Fallback{Field: field, Warning: w})
		}
	}

	addr := pkgconfig.LoadEnvWithFallback("SERVER_ADDR", c.Server.Addr, nil)
	c.Server.Addr = addr.Value
	shutdown := pkgconfig.LoadEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout, pkgconfig.ValidatePositiveDuration)
	c.Server.ShutdownTimeout = shutdown.Value
	track("server.shutdown_timeout", shutdown.Warnings)

	driver := pkgconfig.LoadEnvWithFallback("DATABASE_DRIVER", c.Database.Driver, pkgconfig.ValidateOneOf(drivers...))
	c.Database.Driver = driver.Value
	track("database.driver", driver.Warnings)
	c.Database.URL = pkgconfig.LoadEnvString("DATABASE_URL", c.Database.URL)
	migrate := pkgconfig.LoadEnvBool("DATABASE_AUTO_MIGRATE", c.Database.AutoMigrate)
	c.Database.AutoMigrate = migrate.Value
	track("database.auto_migrate", migrate.Warnings)

	apiURL := pkgconfig.LoadEnvWithFallback("FEED_API_URL", c.API.URL, pkgconfig.ValidateHTTPURL)
	c.API.URL = apiURL.Value
	track("api.url", apiURL.Warnings)
	apiTimeout := pkgconfig.LoadEnvDuration("FEED_API_TIMEOUT", c.API.Timeout, pkgconfig.ValidatePositiveDuration)
	c.API.Timeout = apiTimeout.Value
	track("api.timeout", apiTimeout.Warnings)

	pageSize := pkgconfig.LoadEnvInt("FEED_PAGE_SIZE", c.Feed.PageSize, func(n int) error {
		return pkgconfig.ValidateIntRange(n, 1, maxPageSize)
	})
	c.Feed.PageSize = pageSize.Value
	track("feed.page_size", pageSize.Warnings)
	threshold := pkgconfig.LoadEnvFloat("FEED_SENTINEL_THRESHOLD", c.Feed.SentinelThreshold, func(f float64) error {
		return pkgconfig.ValidateFloatRange(f, 0, maxThreshold)
	})
	c.Feed.SentinelThreshold = threshold.Value
	track("feed.sentinel_threshold", threshold.Warnings)
	interval := pkgconfig.LoadEnvDuration("FEED_SENTINEL_MIN_INTERVAL", c.Feed.SentinelMinInterval, func(d time.Duration) error {
		return pkgconfig.ValidateDuration(d, 0, time.Minute)
	})
	c.Feed.SentinelMinInterval = interval.Value
	track("feed.sentinel_min_interval", interval.Warnings)

	level := pkgconfig.LoadEnvWithFallback("LOG_LEVEL", c.Log.Level, pkgconfig.ValidateOneOf("debug", "info", "warn", "warning", "error"))
	c.Log.Level = level.Value
	track("log.level", level.Warnings)
	format := pkgconfig.LoadEnvWithFallback("LOG_FORMAT", c.Log.Format, pkgconfig.ValidateOneOf("json", "text"))
	c.Log.Format = format.Value
	track("log.format", format.Warnings)

	return fbs
}

// Validate checks the merged configuration. YAML values are not range-checked on load,
// so this is where a bad file is caught.
func (c *FeedConfig) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server addr is required")
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("server shutdown_timeout: %w", err)
	}
	if err := pkgconfig.ValidateOneOf(drivers...)(c.Database.Driver); err != nil {
		return fmt.Errorf("database driver: %w", err)
	}
	if strings.TrimSpace(c.Database.URL) == "" {
		return fmt.Errorf("database url is required")
	}
	if c.API.URL != "" {
		if err := pkgconfig.ValidateHTTPURL(c.API.URL); err != nil {
			return fmt.Errorf("api url: %w", err)
		}
	}
	if err := pkgconfig.ValidatePositiveDuration(c.API.Timeout); err != nil {
		return fmt.Errorf("api timeout: %w", err)
	}
	if err := pkgconfig.ValidateIntRange(c.Feed.PageSize, 1, maxPageSize); err != nil {
		return fmt.Errorf("feed page_size: %w", err)
	}
	if err := pkgconfig.ValidateFloatRange(c.Feed.SentinelThreshold, 0, maxThreshold); err != nil {
		return fmt.Errorf("feed sentinel_threshold: %w", err)
	}
	if c.Feed.SentinelMinInterval < 0 {
		return fmt.Errorf("feed sentinel_min_interval must not be negative")
	}
	if err := pkgconfig.ValidateOneOf("json", "text")(c.Log.Format); err != nil {
		return fmt.Errorf("log format: %w", err)
	}
	return nil
}

// RecordFallbacks updates the config metrics after one load.
func RecordFallbacks(m *pkgconfig.ConfigMetrics, fbs []Fallback) {
	if m == nil {
		return
	}
	m.RecordLoadTimestamp()
	m.SetFallbackActive(len(fbs) > 0)
	for _, fb := range fbs {
		m.RecordFallback(fb.Field)
	}
}

// Pagination returns the page bounds for the product service. The configured page
// size is the default; the maximum comes from PAGINATION_MAX_PAGE_SIZE and never drops
// below it.
func (c *FeedConfig) Pagination() pagination.Config {
	p := pagination.LoadFromEnv()
	p.DefaultLimit = c.Feed.PageSize
	p.MaxLimit = max(p.MaxLimit, c.Feed.PageSize)
	return p
}
