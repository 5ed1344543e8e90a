package pagination

import (
	"log/slog"
	"time"
)

// LogRequest logs a paginated request.
func LogRequest(logger *slog.Logger, requestID string, params Params) {
	logger.Info("paginated request",
		slog.String("request_id", requestID),
		slog.String("page", pageLabel(params)),
		slog.Int("limit", params.Limit))
}

// LogResponse logs a paginated response with its duration and status.
func LogResponse(logger *slog.Logger, requestID string, params Params, returnedCount int, hasMore bool, duration time.Duration, statusCode int) {
	logger.Info("paginated response",
		slog.String("request_id", requestID),
		slog.String("page", pageLabel(params)),
		slog.Int("limit", params.Limit),
		slog.Int("returned_count", returnedCount),
		slog.Bool("has_more", hasMore),
		slog.Int64("duration_ms", duration.Milliseconds()),
		slog.Int("status", statusCode))
}

// LogError logs a pagination error.
func LogError(logger *slog.Logger, requestID string, params Params, err error, errorType string) {
	logger.Error("pagination error",
		slog.String("request_id", requestID),
		slog.String("page", pageLabel(params)),
		slog.Int("limit", params.Limit),
		slog.Any("error", err),
		slog.String("error_type", errorType))
}
