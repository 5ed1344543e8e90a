package repository

import (
	"context"

	"booksaetong/internal/common/pagination"
	"booksaetong/internal/domain/entity"
)

// ProductFilters narrows a product listing. Empty fields do not filter.
type ProductFilters struct {
	Keyword string // Substring of the title, case-insensitive
	Address string // Substring of the seller's address
}

type ProductRepository interface {
	// SearchAround returns up to limit products matching filters, ordered by
	// created_at DESC, id DESC, starting strictly after the given position.
	// A nil position starts at the newest product.
	SearchAround(ctx context.Context, filters ProductFilters, after *pagination.Position, limit int) ([]*entity.Product, error)
	// Get returns (nil, nil) if the product does not exist.
	Get(ctx context.Context, id string) (*entity.Product, error)
	Create(ctx context.Context, product *entity.Product) error
	Count(ctx context.Context) (int64, error)
}
