package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"booksaetong/internal/common/pagination"
	"booksaetong/internal/domain/entity"
	"booksaetong/internal/feed"
	"booksaetong/internal/repository"
)

// CreateInput represents the input parameters for listing a new product.
type CreateInput struct {
	UserID    string
	Title     string
	Category  string
	Price     int64
	Contents  string
	Address   string
	Latitude  float64
	Longitude float64
}

// Service provides product listing use cases. It is the storage-backed Fetcher of
// the feed engine.
type Service struct {
	Repo  repository.ProductRepository
	Users repository.UserRepository
	// Pagination bounds the page size; the zero value means pagination.DefaultConfig.
	Pagination pagination.Config
}

var _ feed.Fetcher[entity.Product] = (*Service)(nil)

func (s *Service) limits() pagination.Config {
	if s.Pagination.MaxLimit <= 0 {
		return pagination.DefaultConfig()
	}
	return s.Pagination
}

// FetchPage reads one page of listings for the query identity, resuming after cursor.
//
// Listings are ordered newest first. The returned NextCursor is empty when no listing
// follows the page. Invalid filters, page sizes and cursors are reported as
// *feed.QueryError; storage failures as *feed.TransportError.
func (s *Service) FetchPage(ctx context.Context, id feed.QueryIdentity, cursor feed.Cursor) (feed.Page[entity.Product], error) {
	if err := entity.ValidateKeyword(id.Keyword); err != nil {
		return feed.Page[entity.Product]{}, &feed.QueryError{Field: "keyword", Err: err}
	}
	if err := entity.ValidateLocationScope(id.LocationScope); err != nil {
		return feed.Page[entity.Product]{}, &feed.QueryError{Field: "location", Err: err}
	}
	if err := (pagination.Params{Limit: id.PageSize}).Validate(s.limits()); err != nil {
		return feed.Page[entity.Product]{}, &feed.QueryError{Field: "limit", Err: err}
	}

	var after *pagination.Position
	if !cursor.IsStart() {
		pos, err := pagination.DecodeCursor(string(cursor))
		if err != nil {
			return feed.Page[entity.Product]{}, &feed.QueryError{Field: "cursor", Err: err}
		}
		after = &pos
	}

	filters := repository.ProductFilters{Keyword: id.Keyword, Address: id.LocationScope}
	rows, err := s.Repo.SearchAround(ctx, filters, after, pagination.FetchLimit(id.PageSize))
	if err != nil {
		return feed.Page[entity.Product]{}, &feed.TransportError{Op: "search products", Err: err}
	}

	rows, hasMore := pagination.SplitPage(rows, id.PageSize)
	items := make([]entity.Product, 0, len(rows))
	for _, p := range rows {
		items = append(items, *p)
	}

	page := feed.Page[entity.Product]{Items: items}
	if hasMore && len(rows) > 0 {
		last := rows[len(rows)-1]
		page.NextCursor = feed.Cursor(pagination.EncodeCursor(pagination.Position{
			CreatedAt: last.CreatedAt,
			ID:        last.ID,
		}))
	}
	return page, nil
}

// ListAround serves one page of the around listing to an HTTP client.
func (s *Service) ListAround(ctx context.Context, filter feed.FilterState, params pagination.Params) (pagination.Response[entity.Product], error) {
	params = params.WithDefaults(s.limits())
	id := feed.NewKeyBuilder(params.Limit).Build(filter)

	page, err := s.FetchPage(ctx, id, feed.Cursor(params.Cursor))
	if err != nil {
		return pagination.Response[entity.Product]{}, err
	}
	return pagination.NewResponse(page.Items, pagination.NewMetadata(string(page.NextCursor))), nil
}

// LocationScopeFor returns the location scope the feed applies for userID, the
// user's registered address. An empty scope means the user has not set one.
func (s *Service) LocationScopeFor(ctx context.Context, userID string) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrUserNotFound
	}
	u, err := s.Users.Get(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return u.LocationScope(), nil
}

// Get retrieves a single listing by its ID.
// Returns ErrInvalidProductID for an empty ID and ErrProductNotFound if it does not exist.
func (s *Service) Get(ctx context.Context, id string) (*entity.Product, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidProductID
	}
	p, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}
	return p, nil
}

// Create validates and stores a new listing. The seller must exist.
func (s *Service) Create(ctx context.Context, in CreateInput) (*entity.Product, error) {
	p := &entity.Product{
		UserID:    in.UserID,
		Title:     strings.TrimSpace(in.Title),
		Category:  in.Category,
		Price:     in.Price,
		Contents:  in.Contents,
		Address:   strings.TrimSpace(in.Address),
		Latitude:  in.Latitude,
		Longitude: in.Longitude,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if s.Users != nil {
		u, err := s.Users.Get(ctx, in.UserID)
		if err != nil {
			return nil, fmt.Errorf("get user: %w", err)
		}
		if u == nil {
			return nil, ErrUserNotFound
		}
	}
	if err := s.Repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return p, nil
}

// IsNotFound reports whether err means the requested listing or user is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) || errors.Is(err, ErrUserNotFound)
}
