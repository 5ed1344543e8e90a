package repository

import (
	"context"

	"booksaetong/internal/domain/entity"
)

type UserRepository interface {
	// Get returns (nil, nil) if the user does not exist.
	Get(ctx context.Context, id string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// Update overwrites the profile fields of an existing user.
	Update(ctx context.Context, user *entity.User) error
}
