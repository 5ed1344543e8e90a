package product

import (
	"context"
	"fmt"
	"strings"

	"booksaetong/internal/domain/entity"
)

// UpdateProfileInput carries a profile edit. Nil fields are left unchanged; an empty
// Address clears the user's trading area.
type UpdateProfileInput struct {
	UserID     string
	Nickname   *string
	Address    *string
	ProfileURL *string
}

// UpdateProfile applies a profile edit and returns the stored user. A changed address
// changes the scope LocationScopeFor reports from then on.
func (s *Service) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*entity.User, error) {
	if strings.TrimSpace(in.UserID) == "" {
		return nil, ErrUserNotFound
	}
	cur, err := s.Users.Get(ctx, in.UserID)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if cur == nil {
		return nil, ErrUserNotFound
	}
	u := *cur

	if in.Nickname != nil {
		u.Nickname = strings.TrimSpace(*in.Nickname)
	}
	if in.Address != nil {
		u.Address = strings.TrimSpace(*in.Address)
	}
	if in.ProfileURL != nil {
		u.ProfileURL = strings.TrimSpace(*in.ProfileURL)
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	if err := s.Users.Update(ctx, &u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return &u, nil
}
