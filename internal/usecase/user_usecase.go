// Package usecase defines the application's use case interfaces and their
// input/output DTOs. Implementations live in internal/usecase/impl.
package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// RegisterInput carries a new account registration.
type RegisterInput struct {
	Username string `json:"username" validate:"required,min=3,max=32"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginInput carries a login attempt.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginOutput carries the issued tokens and the authenticated user.
type LoginOutput struct {
	User         *entity.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// UserUsecase covers registration, login and profile access.
type UserUsecase interface {
	// Register creates a new active account with the buyer role.
	Register(ctx context.Context, input *RegisterInput) (*entity.User, error)

	// Login verifies credentials and issues JWT tokens.
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)

	// BecomeSeller adds the seller role to an existing account.
	BecomeSeller(ctx context.Context, userID uuid.UUID) (*entity.User, error)

	// GetProfile returns the account identified by userID.
	GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error)
}
