// Package logging provides structured logging helpers on top of log/slog.
//
// Loggers write JSON for services and text for the interactive CLI. The level comes
// from LOG_LEVEL (debug, info, warn, error; default info).
//
// Example usage:
//
//	import "booksaetong/internal/observability/logging"
//
//	logger := logging.New(os.Stdout, "json", logging.ParseLevel(os.Getenv("LOG_LEVEL")))
//	slog.SetDefault(logger)
//
//	// inside a handler behind the Logging middleware
//	logging.FromContext(r.Context()).Info("processing request")
package logging
