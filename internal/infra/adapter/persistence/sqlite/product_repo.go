package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"booksaetong/internal/common/pagination"
	"booksaetong/internal/domain/entity"
	"booksaetong/internal/infra/adapter/persistence"
	"booksaetong/internal/observability/metrics"
	"booksaetong/internal/repository"
)

const productColumns = `id, user_id, title, category, price, contents, address, latitude, longitude, created_at`

type ProductRepo struct {
	db           persistence.Querier
	queryBuilder *ProductQueryBuilder
}

func NewProductRepo(db persistence.Querier) repository.ProductRepository {
	return &ProductRepo{db: db, queryBuilder: NewProductQueryBuilder()}
}

func scanProduct(s interface{ Scan(dest ...any) error }) (*entity.Product, error) {
	var p entity.Product
	if err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Category, &p.Price,
		&p.Contents, &p.Address, &p.Latitude, &p.Longitude, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

func (repo *ProductRepo) SearchAround(ctx context.Context, filters repository.ProductFilters, after *pagination.Position, limit int) ([]*entity.Product, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("search_around", time.Since(start)) }()

	clause, args := repo.queryBuilder.BuildWhereClause(filters, after)
	query := `
SELECT ` + productColumns + `
FROM products
` + clause + `
ORDER BY created_at DESC, id DESC
LIMIT ?`
	args = append(args, limit)

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchAround: QueryContext: %w", err)
	}
	defer func() { _ = rows.Close() }()

	products := make([]*entity.Product, 0, limit)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("SearchAround: Scan: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("SearchAround: %w", err)
	}
	return products, nil
}

func (repo *ProductRepo) Get(ctx context.Context, id string) (*entity.Product, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("get_product", time.Since(start)) }()

	const query = `
SELECT ` + productColumns + `
FROM products
WHERE id = ?
LIMIT 1`
	p, err := scanProduct(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: QueryRowContext: %w", err)
	}
	return p, nil
}

// Create inserts the product, assigning an ID and creation time when unset.
// Times are stored in UTC so their text form sorts chronologically.
func (repo *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	p.CreatedAt = p.CreatedAt.UTC()
	const query = `
INSERT INTO products
(id, user_id, title, category, price, contents, address, latitude, longitude, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`
	_, err := repo.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Title, p.Category, p.Price,
		p.Contents, p.Address, p.Latitude, p.Longitude, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: ExecContext: %w", err)
	}
	return nil
}

func (repo *ProductRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := repo.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM products`).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
