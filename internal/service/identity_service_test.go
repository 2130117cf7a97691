package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/trackerhq/project-tracker/internal/auth"
	"github.com/trackerhq/project-tracker/internal/domain"
)

// stubUserRepo serves accounts from a map.
type stubUserRepo struct {
	accounts map[string]*domain.UserAccount
}

func (r *stubUserRepo) Create(_ context.Context, account *domain.UserAccount) error {
	r.accounts[account.Username] = account
	return nil
}

func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.UserAccount, error) {
	account, ok := r.accounts[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return account, nil
}

func newIdentityService(t *testing.T) *IdentityService {
	t.Helper()

	hash := func(password string) string {
		hashed, err := auth.HashPassword(password, bcrypt.MinCost)
		require.NoError(t, err)
		return hashed
	}

	repo := &stubUserRepo{accounts: map[string]*domain.UserAccount{
		"admin": {
			Username:     "admin",
			PasswordHash: hash("admin123"),
			Roles:        []string{domain.RoleAdmin, domain.RoleUser},
			Active:       true,
		},
		"pepe": {
			Username:     "pepe",
			PasswordHash: hash("pepe123"),
			Roles:        []string{domain.RoleUser},
			Active:       true,
		},
		"ghost": {
			Username:     "ghost",
			PasswordHash: hash("ghost123"),
			Roles:        []string{domain.RoleUser},
			Active:       false,
		},
	}}
	return NewIdentityService(repo, zap.NewNop())
}

func TestIdentityService_ValidCredentials(t *testing.T) {
	svc := newIdentityService(t)

	principal, err := svc.Validate(context.Background(), "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Name)
	assert.ElementsMatch(t, []string{domain.RoleAdmin, domain.RoleUser}, principal.Roles)
}

func TestIdentityService_RolesReturnedAsStored(t *testing.T) {
	svc := newIdentityService(t)

	principal, err := svc.Validate(context.Background(), "pepe", "pepe123")
	require.NoError(t, err)
	assert.Equal(t, []string{domain.RoleUser}, principal.Roles)
	assert.False(t, principal.HasRole(domain.RoleAdmin))
}

// Wrong password, unknown username and disabled account all surface the same
// sentinel.
func TestIdentityService_UniformRejection(t *testing.T) {
	svc := newIdentityService(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "admin", "nope"},
		{"unknown user", "nobody", "admin123"},
		{"inactive account", "ghost", "ghost123"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			principal, err := svc.Validate(context.Background(), tc.username, tc.password)
			assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
			assert.True(t, principal.Anonymous())
		})
	}
}
