package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/domain"
	"github.com/trackerhq/project-tracker/internal/repository"
)

// dummyHash is compared against when the username is unknown, so the failure
// path costs a bcrypt comparison either way and account existence cannot be
// inferred from response timing.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

// IdentityService is the identity store: it owns the permanent account
// records and validates submitted credentials against them.
type IdentityService struct {
	users  repository.UserRepository
	logger *zap.Logger
}

// NewIdentityService builds the store over the accounts repository.
func NewIdentityService(users repository.UserRepository, logger *zap.Logger) *IdentityService {
	return &IdentityService{users: users, logger: logger}
}

// Validate implements auth.IdentityStore. The returned principal carries the
// account's role set exactly as stored.
func (s *IdentityService) Validate(ctx context.Context, username, password string) (domain.Principal, error) {
	account, err := s.users.GetByUsername(ctx, username)
	if err != nil || account == nil || !account.Active {
		_ = auth.ComparePassword(dummyHash, password)
		return domain.Principal{}, auth.ErrInvalidCredentials
	}

	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return domain.Principal{}, auth.ErrInvalidCredentials
	}

	return domain.Principal{Name: account.Username, Roles: account.Roles}, nil
}
