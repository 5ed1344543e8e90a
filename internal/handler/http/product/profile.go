package product

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"booksaetong/internal/domain/entity"
	"booksaetong/internal/handler/http/respond"
	"booksaetong/internal/observability/logging"
	productUC "booksaetong/internal/usecase/product"
)

const maxProfileBody = 16 << 10

// ProfileHandler serves PATCH /users/{id}/profile. Omitted fields keep their value;
// the address is the area the user's "near me" feed is scoped to.
type ProfileHandler struct {
	Svc *productUC.Service
}

type profileRequest struct {
	Nickname   *string `json:"nickname"`
	Address    *string `json:"address"`
	ProfileURL *string `json:"profile_url"`
}

// UserDTO is the public view of a user. The email is never returned.
type UserDTO struct {
	ID         string `json:"id"`
	Nickname   string `json:"nickname"`
	Address    string `json:"address"`
	ProfileURL string `json:"profile_url"`
}

func (h ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req profileRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxProfileBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		respond.Error(w, http.StatusBadRequest, errors.New("invalid profile body"))
		return
	}

	u, err := h.Svc.UpdateProfile(r.Context(), productUC.UpdateProfileInput{
		UserID:     r.PathValue("id"),
		Nickname:   req.Nickname,
		Address:    req.Address,
		ProfileURL: req.ProfileURL,
	})
	switch {
	case errors.Is(err, productUC.ErrUserNotFound):
		respond.Error(w, http.StatusNotFound, err)
	case errors.Is(err, entity.ErrValidationFailed):
		respond.Error(w, http.StatusBadRequest, err)
	case err != nil:
		logging.FromContext(r.Context()).Error("profile update failed",
			slog.String("user_id", r.PathValue("id")),
			slog.Any("error", err))
		respond.SafeError(w, http.StatusInternalServerError, err)
	default:
		respond.JSON(w, http.StatusOK, UserDTO{
			ID:         u.ID,
			Nickname:   u.Nickname,
			Address:    u.Address,
			ProfileURL: u.ProfileURL,
		})
	}
}
