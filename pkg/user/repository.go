package user

import (
	"context"
	"errors"
)

// Common errors used by repository/use cases
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailTaken         = errors.New("email already taken")
	ErrCodeTaken          = errors.New("user code already taken")
	ErrInvalidInput       = errors.New("invalid input")
	ErrProvisioningFailed = errors.New("provisioning failed")
)

// Repository abstracts persistence concerns from the domain layer.
// Lookups are exact-match. Implementations must enforce uniqueness of
// email and user_code and report violations as ErrEmailTaken/ErrCodeTaken.
type Repository interface {
	Create(ctx context.Context, user User) error
	Delete(ctx context.Context, userCode string) error
	FindByUserCode(ctx context.Context, userCode string) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
	FindByUsername(ctx context.Context, username string) ([]User, error)
	FindByUsernameAndEmail(ctx context.Context, username, email string) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// CodeGenerator produces opaque public identifiers for new users.
// Generation is salted and therefore non-deterministic; uniqueness is
// enforced by the store, not by the generator.
type CodeGenerator interface {
	Generate(username string) (string, error)
}

// WalletProvisioner provisions the dependent wallet resource for a new
// user. The call is synchronous and may fail or time out.
type WalletProvisioner interface {
	Provision(ctx context.Context, userCode, currency string) error
}

// EventPublisher publishes user lifecycle events. Publishing is
// fire-and-forget: implementations must not block on broker
// acknowledgment, and the orchestrator only logs failures.
type EventPublisher interface {
	UserCreated(ctx context.Context, user User) error
}
