package pagination

import (
	"fmt"
	"net/http"
	"strconv"
)

// Params represents pagination query parameters from an HTTP request.
type Params struct {
	Cursor string // Opaque cursor; empty for the first page
	Limit  int    // Items per page
}

// First reports whether the request is for the first page.
func (p Params) First() bool { return p.Cursor == "" }

// ParseQueryParams parses pagination parameters from the query string.
//
// Query parameters:
//   - cursor: continuation token from a previous response (optional)
//   - limit: items per page, between 1 and config.MaxLimit
//
// A cursor that does not decode is rejected here so the store never sees it.
func ParseQueryParams(r *http.Request, config Config) (Params, error) {
	params := Params{Limit: config.DefaultLimit}
	q := r.URL.Query()

	if limitStr := q.Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || limit < 1 || limit > config.MaxLimit {
			return params, fmt.Errorf("invalid query parameter: limit must be between 1 and %d", config.MaxLimit)
		}
		params.Limit = limit
	}

	if cursor := q.Get("cursor"); cursor != "" {
		if _, err := DecodeCursor(cursor); err != nil {
			return params, fmt.Errorf("invalid query parameter: cursor: %w", err)
		}
		params.Cursor = cursor
	}

	return params, nil
}
