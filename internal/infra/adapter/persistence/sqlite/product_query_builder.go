// Package sqlite provides SQLite implementations of repository interfaces.
package sqlite

import (
	"strings"

	"booksaetong/internal/common/pagination"
	"booksaetong/internal/pkg/search"
	"booksaetong/internal/repository"
)

// ProductQueryBuilder builds WHERE clauses for product listings in SQLite.
// LIKE is case-insensitive for ASCII only; Hangul has no case so this matches the
// PostgreSQL ILIKE behavior for the catalogue.
type ProductQueryBuilder struct{}

// NewProductQueryBuilder creates a new query builder instance.
func NewProductQueryBuilder() *ProductQueryBuilder {
	return &ProductQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and its arguments for a listing page.
// Returns an empty clause when nothing filters.
func (qb *ProductQueryBuilder) BuildWhereClause(filters repository.ProductFilters, after *pagination.Position) (clause string, args []any) {
	var conditions []string

	if filters.Keyword != "" {
		conditions = append(conditions, `title LIKE ? ESCAPE '\'`)
		args = append(args, search.EscapeLike(filters.Keyword))
	}
	if filters.Address != "" {
		conditions = append(conditions, `address LIKE ? ESCAPE '\'`)
		args = append(args, search.EscapeLike(filters.Address))
	}
	if after != nil {
		conditions = append(conditions, "(created_at, id) < (?, ?)")
		args = append(args, after.CreatedAt.UTC(), after.ID)
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
