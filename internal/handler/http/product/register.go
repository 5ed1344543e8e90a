package product

import (
	"log/slog"
	"net/http"

	"booksaetong/internal/common/pagination"
	productUC "booksaetong/internal/usecase/product"
)

// Register registers the product listing and profile handlers with the given mux.
func Register(mux *http.ServeMux, svc *productUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	mux.Handle("GET /products/around", AroundHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
	mux.Handle("GET /products/{id}", GetHandler{Svc: svc})
	mux.Handle("PATCH /users/{id}/profile", ProfileHandler{Svc: svc})
}
