// Package postgres provides PostgreSQL implementations of repository interfaces.
package postgres

import (
	"fmt"
	"strings"

	"booksaetong/internal/common/pagination"
	"booksaetong/internal/pkg/search"
	"booksaetong/internal/repository"
)

// ProductQueryBuilder builds WHERE clauses for product listings in PostgreSQL.
// It uses ILIKE for case-insensitive substring search and $N placeholders.
type ProductQueryBuilder struct{}

// NewProductQueryBuilder creates a new query builder instance.
func NewProductQueryBuilder() *ProductQueryBuilder {
	return &ProductQueryBuilder{}
}

// BuildWhereClause builds the WHERE clause and its arguments for a listing page.
// Conditions are ANDed: keyword on title, address substring, and the keyset position.
// Returns an empty clause when nothing filters.
func (qb *ProductQueryBuilder) BuildWhereClause(filters repository.ProductFilters, after *pagination.Position, tableAlias string) (clause string, args []any) {
	col := func(name string) string {
		if tableAlias != "" {
			return tableAlias + "." + name
		}
		return name
	}
	param := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	var conditions []string
	if filters.Keyword != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", col("title"), param(search.EscapeLike(filters.Keyword))))
	}
	if filters.Address != "" {
		conditions = append(conditions, fmt.Sprintf("%s ILIKE %s", col("address"), param(search.EscapeLike(filters.Address))))
	}
	if after != nil {
		conditions = append(conditions, fmt.Sprintf("(%s, %s) < (%s, %s)",
			col("created_at"), col("id"), param(after.CreatedAt), param(after.ID)))
	}

	if len(conditions) == 0 {
		return "", args
	}
	return "WHERE " + strings.Join(conditions, " AND "), args
}
