// Package app wires the catalogue store, its circuit breaker and the product service
// for the api and feed binaries.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"booksaetong/internal/config"
	pgRepo "booksaetong/internal/infra/adapter/persistence/postgres"
	sqliteRepo "booksaetong/internal/infra/adapter/persistence/sqlite"
	"booksaetong/internal/infra/db"
	"booksaetong/internal/repository"
	"booksaetong/internal/resilience/circuitbreaker"
	productUC "booksaetong/internal/usecase/product"
)

// Catalogue is an opened, migrated product store.
type Catalogue struct {
	DB      *sql.DB
	Dialect db.Dialect
	Breaker *circuitbreaker.DBCircuitBreaker
	Service *productUC.Service
}

// OpenCatalogue connects to the configured database, applies the schema unless
// auto_migrate is off and builds the product service on breaker-guarded repositories.
func OpenCatalogue(ctx context.Context, cfg *config.FeedConfig, logger *slog.Logger) (*Catalogue, error) {
	dialect, err := db.ParseDialect(cfg.Database.Driver)
	if err != nil {
		return nil, err
	}
	conn, err := db.Open(ctx, dialect, cfg.Database.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Database.AutoMigrate {
		if err := db.MigrateUp(conn, dialect); err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("migrate %s: %w", dialect, err)
		}
	}
	logger.Info("catalogue ready",
		slog.String("dialect", string(dialect)),
		slog.Bool("auto_migrate", cfg.Database.AutoMigrate))
	return NewCatalogue(conn, dialect, cfg), nil
}

// NewCatalogue builds the service on an already migrated connection.
func NewCatalogue(conn *sql.DB, dialect db.Dialect, cfg *config.FeedConfig) *Catalogue {
	breaker := circuitbreaker.NewDBCircuitBreaker(conn)

	var products repository.ProductRepository
	var users repository.UserRepository
	switch dialect {
	case db.DialectPostgres:
		products, users = pgRepo.NewProductRepo(breaker), pgRepo.NewUserRepo(breaker)
	default:
		products, users = sqliteRepo.NewProductRepo(breaker), sqliteRepo.NewUserRepo(breaker)
	}

	return &Catalogue{
		DB:      conn,
		Dialect: dialect,
		Breaker: breaker,
		Service: &productUC.Service{
			Repo:       products,
			Users:      users,
			Pagination: cfg.Pagination(),
		},
	}
}

// Close closes the connection pool.
func (c *Catalogue) Close() error {
	return c.DB.Close()
}
