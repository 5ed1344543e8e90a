// Package persistence holds the SQL adapters behind the repository interfaces.
// The postgres and sqlite subpackages share the Querier seam declared here.
package persistence

import (
	"context"
	"database/sql"
)

// Querier is the subset of *sql.DB the repositories use. It is also satisfied by
// circuitbreaker.DBCircuitBreaker, which lets the API guard the store without the
// repositories knowing.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
