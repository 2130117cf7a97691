package persistence

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/domain"
)

// devAccounts are the bootstrap credentials for non-production environments.
var devAccounts = []struct {
	username string
	password string
	roles    []string
}{
	{username: "admin", password: "admin123", roles: []string{domain.RoleAdmin, domain.RoleUser}},
	{username: "pepe", password: "pepe123", roles: []string{domain.RoleUser}},
}

// SeedDevAccounts inserts the development accounts when they do not exist.
// Hashing happens here rather than in a SQL file so the bcrypt cost follows
// configuration.
func SeedDevAccounts(ctx context.Context, pool *pgxpool.Pool, bcryptCost int, logger *zap.Logger) error {
	if pool == nil {
		logger.Warn("no postgres pool available; skipping dev account seed")
		return nil
	}

	const query = `
        INSERT INTO accounts (username, password_hash, roles, active)
        VALUES ($1, $2, $3, TRUE)
        ON CONFLICT (username) DO NOTHING`

	for _, account := range devAccounts {
		hash, err := auth.HashPassword(account.password, bcryptCost)
		if err != nil {
			return fmt.Errorf("hash seed password for %s: %w", account.username, err)
		}
		if _, err := pool.Exec(ctx, query, account.username, hash, account.roles); err != nil {
			return fmt.Errorf("seed account %s: %w", account.username, err)
		}
	}

	logger.Info("dev accounts seeded", zap.Int("count", len(devAccounts)))
	return nil
}
