package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// UserRepository defines persistence access for identity accounts.
type UserRepository interface {
	Create(ctx context.Context, account *domain.UserAccount) error
	GetByUsername(ctx context.Context, username string) (*domain.UserAccount, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, account *domain.UserAccount) error {
	const query = `
        INSERT INTO accounts (username, password_hash, roles, active)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		account.Username,
		account.PasswordHash,
		account.Roles,
		account.Active,
	).Scan(&account.ID, &account.CreatedAt, &account.UpdatedAt)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.UserAccount, error) {
	const query = `
        SELECT id, username, password_hash, roles, active, created_at, updated_at
        FROM accounts WHERE username=$1`

	var account domain.UserAccount
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.PasswordHash,
		&account.Roles,
		&account.Active,
		&account.CreatedAt,
		&account.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &account, nil
}
