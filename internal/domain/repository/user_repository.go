// Package repository defines the persistence interfaces the domain depends
// on. Implementations live under internal/infra and are injected by Fx.
package repository

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user lookup finds nothing.
var ErrUserNotFound = errors.New("user not found")

// UserRepository manages User entities.
type UserRepository interface {
	// Create persists a new user.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a user by its unique username.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// ExistsByUsername reports whether a user with the given username exists.
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// ExistsByEmail reports whether a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// Update persists changes to an existing user.
	Update(ctx context.Context, user *entity.User) error

	// AdjustReputation applies a signed, clamped reputation delta atomically
	// and returns the updated user. Concurrent adjustments to the same user
	// never interleave.
	AdjustReputation(ctx context.Context, id uuid.UUID, delta int) (*entity.User, error)

	// SetStatus flips the account standing atomically and returns the
	// updated user. A concurrent reputation delta is never overwritten.
	SetStatus(ctx context.Context, id uuid.UUID, status entity.UserStatus) (*entity.User, error)

	// AddRole grants a role atomically, as a no-op when already held, and
	// returns the updated user.
	AddRole(ctx context.Context, id uuid.UUID, role entity.Role) (*entity.User, error)
}
