package product

import (
	"errors"
	"log/slog"
	"net/http"

	"booksaetong/internal/handler/http/respond"
	"booksaetong/internal/observability/logging"
	productUC "booksaetong/internal/usecase/product"
)

// GetHandler serves GET /products/{id}.
type GetHandler struct {
	Svc *productUC.Service
}

func (h GetHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	p, err := h.Svc.Get(r.Context(), r.PathValue("id"))
	switch {
	case errors.Is(err, productUC.ErrInvalidProductID):
		respond.Error(w, http.StatusBadRequest, err)
	case errors.Is(err, productUC.ErrProductNotFound):
		respond.Error(w, http.StatusNotFound, err)
	case err != nil:
		logging.FromContext(r.Context()).Error("product lookup failed",
			slog.String("product_id", r.PathValue("id")),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, toDTO(*p))
	}
}
