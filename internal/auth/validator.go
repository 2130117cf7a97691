package auth

import (
	"context"

	"go.uber.org/zap"

	"github.com/trackerhq/project-tracker/internal/domain"
)

// IdentityStore validates a submitted credential against the permanent
// identity records. Implementations live outside this package; the gateway
// never stores or compares secrets itself. The call may block on I/O, so the
// gateway holds no lock while it is in flight.
type IdentityStore interface {
	Validate(ctx context.Context, username, password string) (domain.Principal, error)
}

// CredentialValidator normalizes identity store results into the outcome both
// trust models consume.
type CredentialValidator struct {
	store  IdentityStore
	logger *zap.Logger
}

// NewCredentialValidator builds the façade.
func NewCredentialValidator(store IdentityStore, logger *zap.Logger) *CredentialValidator {
	return &CredentialValidator{store: store, logger: logger}
}

// Validate returns the resolved principal or ErrInvalidCredentials. Every
// store failure collapses into the same error so callers cannot enumerate
// usernames. The role set is returned exactly as reported, un-expanded.
func (v *CredentialValidator) Validate(ctx context.Context, username, password string) (domain.Principal, error) {
	principal, err := v.store.Validate(ctx, username, password)
	if err != nil {
		v.logger.Debug("credential validation failed")
		return domain.Principal{}, ErrInvalidCredentials
	}
	return principal, nil
}
