package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"booksaetong/internal/domain/entity"
	"booksaetong/internal/infra/adapter/persistence"
	"booksaetong/internal/repository"
)

type UserRepo struct {
	db persistence.Querier
}

func NewUserRepo(db persistence.Querier) repository.UserRepository {
	return &UserRepo{db: db}
}

func (repo *UserRepo) Get(ctx context.Context, id string) (*entity.User, error) {
	const query = `
SELECT id, email, nickname, address, profile_url
FROM users
WHERE id = $1
LIMIT 1`
	var u entity.User
	err := repo.db.QueryRowContext(ctx, query, id).
		Scan(&u.ID, &u.Email, &u.Nickname, &u.Address, &u.ProfileURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("Get: %w", err)
	}
	return &u, nil
}

func (repo *UserRepo) Create(ctx context.Context, u *entity.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	const query = `
INSERT INTO users (id, email, nickname, address, profile_url)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := repo.db.ExecContext(ctx, query, u.ID, u.Email, u.Nickname, u.Address, u.ProfileURL); err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (repo *UserRepo) Update(ctx context.Context, u *entity.User) error {
	const query = `
UPDATE users SET
       nickname    = $1,
       address     = $2,
       profile_url = $3
WHERE id = $4`
	res, err := repo.db.ExecContext(ctx, query, u.Nickname, u.Address, u.ProfileURL, u.ID)
	if err != nil {
		return fmt.Errorf("Update: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("Update: no rows affected")
	}
	return nil
}
