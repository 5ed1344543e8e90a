// Package config reads single settings from the environment for packages that have no
// configuration struct of their own. Malformed values are logged and replaced by the
// default.
package config

import (
	"log/slog"
	"time"

	loader "booksaetong/internal/pkg/config"
)

// GetEnvString returns the variable or defaultValue when it is unset or empty.
//
//	apiURL := GetEnvString("FEED_API_URL", "http://localhost:8080")
func GetEnvString(key, defaultValue string) string {
	return loader.LoadEnvString(key, defaultValue)
}

// GetEnvInt parses the variable as a base-10 integer.
//
//	maxConns := GetEnvInt("DB_MAX_OPEN_CONNS", 25)
func GetEnvInt(key string, defaultValue int) int {
	return logged(loader.LoadEnvInt(key, defaultValue, nil))
}

// GetEnvDuration parses the variable with time.ParseDuration ("30s", "1h30m").
//
//	timeout := GetEnvDuration("FEED_API_TIMEOUT", 10*time.Second)
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return logged(loader.LoadEnvDuration(key, defaultValue, nil))
}

func logged[T any](r loader.LoadResult[T]) T {
	for _, w := range r.Warnings {
		slog.Warn("invalid environment variable, using default",
			slog.String("key", r.Key),
			slog.String("detail", w))
	}
	return r.Value
}
