package product

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"booksaetong/internal/common/pagination"
	"booksaetong/internal/feed"
	"booksaetong/internal/handler/http/requestid"
	"booksaetong/internal/handler/http/respond"
	"booksaetong/internal/resilience/circuitbreaker"
	productUC "booksaetong/internal/usecase/product"
)

// AroundHandler serves GET /products/around.
//
// Query parameters:
//   - keyword: title substring, optional
//   - location: address substring, optional
//   - user_id: when location is absent, the user's registered address is used
//   - limit: page size, 1 to the configured maximum
//   - cursor: next_cursor of the previous page
type AroundHandler struct {
	Svc           *productUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h AroundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx := r.Context()
	reqID := requestid.FromContext(ctx)
	logger := h.logger()

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		pagination.RecordError("invalid_params")
		pagination.RecordRequest(http.StatusBadRequest, params)
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	pagination.LogRequest(logger, reqID, params)

	q := r.URL.Query()
	filter := feed.FilterState{
		Keyword:       q.Get("keyword"),
		LocationScope: q.Get("location"),
	}
	if filter.LocationScope == "" {
		if userID := q.Get("user_id"); userID != "" {
			scope, err := h.Svc.LocationScopeFor(ctx, userID)
			if err != nil {
				h.fail(w, r, params, err)
				return
			}
			filter.LocationScope = scope
		}
	}

	resp, err := h.Svc.ListAround(ctx, filter, params)
	if err != nil {
		h.fail(w, r, params, err)
		return
	}

	out := make([]DTO, 0, len(resp.Data))
	for _, p := range resp.Data {
		out = append(out, toDTO(p))
	}
	respond.JSON(w, http.StatusOK, pagination.NewResponse(out, resp.Metadata))

	elapsed := time.Since(start)
	pagination.RecordRequest(http.StatusOK, params)
	pagination.RecordDuration("around", elapsed.Seconds())
	pagination.LogResponse(logger, reqID, params, len(out), resp.HasMore, elapsed, http.StatusOK)
}

func (h AroundHandler) fail(w http.ResponseWriter, r *http.Request, params pagination.Params, err error) {
	code, errType := statusFor(err)
	pagination.RecordError(errType)
	pagination.RecordRequest(code, params)
	if code >= 500 {
		pagination.LogError(h.logger(), requestid.FromContext(r.Context()), params, err, errType)
	}

	switch {
	case code == http.StatusServiceUnavailable:
		respond.Fail(w, code, respond.NewAppError(code, "feed temporarily unavailable", err))
	case code < 500:
		respond.Error(w, code, err)
	default:
		respond.SafeError(w, code, err)
	}
}

func (h AroundHandler) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.Default()
	}
	return h.Logger
}

// statusFor maps a use case error to an HTTP status and a metrics label.
func statusFor(err error) (int, string) {
	switch {
	case feed.IsQueryError(err):
		return http.StatusBadRequest, "invalid_query"
	case errors.Is(err, productUC.ErrUserNotFound):
		return http.StatusNotFound, "user_not_found"
	case circuitbreaker.IsRejected(err):
		return http.StatusServiceUnavailable, "circuit_open"
	default:
		return http.StatusInternalServerError, "storage"
	}
}
