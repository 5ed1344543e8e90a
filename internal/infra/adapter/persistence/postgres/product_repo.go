package postgres

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
	return &ProductRepo{
		db:           db,
		queryBuilder: NewProductQueryBuilder(),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(s rowScanner) (*entity.Product, error) {
	var p entity.Product
	err := s.Scan(&p.ID, &p.UserID, &p.Title, &p.Category, &p.Price,
		&p.Contents, &p.Address, &p.Latitude, &p.Longitude, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// SearchAround reads one keyset page. Callers ask for one row more than they show
// to learn whether another page follows.
func (repo *ProductRepo) SearchAround(ctx context.Context, filters repository.ProductFilters, after *pagination.Position, limit int) ([]*entity.Product, error) {
	start := time.Now()
	defer func() { metrics.RecordDBQuery("search_around", time.Since(start)) }()

	clause, args := repo.queryBuilder.BuildWhereClause(filters, after, "")
	args = append(args, limit)
	query := fmt.Sprintf(`
SELECT %s
FROM products
%s
ORDER BY created_at DESC, id DESC
LIMIT $%d`, productColumns, clause, len(args))

	rows, err := repo.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("SearchAround: %w", err)
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
WHERE id = $1
LIMIT 1`
	p, err := scanProduct(repo.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return p, nil
}

// Create inserts the product, assigning an ID and creation time when unset.
func (repo *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	const query = `
INSERT INTO products
       (id, user_id, title, category, price, contents, address, latitude, longitude, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := repo.db.ExecContext(ctx, query,
		p.ID, p.UserID, p.Title, p.Category, p.Price,
		p.Contents, p.Address, p.Latitude, p.Longitude, p.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *ProductRepo) Count(ctx context.Context) (int64, error) {
	const query = `SELECT COUNT(*) FROM products`
	var count int64
	if err := repo.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("Count: %w", err)
	}
	return count, nil
}
