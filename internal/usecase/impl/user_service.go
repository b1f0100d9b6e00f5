package impl

import (
	"context"
	"log/slog"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	notifier     usecase.NotificationUsecase
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Notifier     usecase.NotificationUsecase
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		notifier:     params.Notifier,
		logger:       params.Logger,
	}
}

// Register creates a new active account holding the buyer role.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	if taken, err := srv.userRepo.ExistsByUsername(ctx, input.Username); err != nil {
		return nil, errors.Wrap(err, "failed to check username")
	} else if taken {
		return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
	}
	if taken, err := srv.userRepo.ExistsByEmail(ctx, input.Email); err != nil {
		return nil, errors.Wrap(err, "failed to check email")
	} else if taken {
		return nil, errors.WithStack(domainerrors.ErrUserAlreadyExists)
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := entity.NewUser(input.Username, input.Email, hash, entity.Roles{entity.RoleBuyer})
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.logger.Info("User registered", slog.Any("userID", user.ID), slog.String("username", user.Username))

	if err := srv.notifier.Publish(ctx, user.ID, "歡迎加入，祝交易愉快！"); err != nil {
		srv.logger.Warn("Failed to send welcome message", slog.Any("userID", user.ID), slog.Any("error", err))
	}

	return user, nil
}

// Login verifies credentials and issues a JWT token pair.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}
	if user.Status == entity.UserStatusDeleted {
		return nil, errors.WithStack(domainerrors.ErrInvalidCredentials)
	}

	accessToken, refreshToken, err := srv.tokenService.GenerateTokens(user.ID, user.Roles.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return &usecase.LoginOutput{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// BecomeSeller grants the seller role to an existing active account.
func (srv *userService) BecomeSeller(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanTransact() {
		return nil, errors.WithStack(domainerrors.ErrAccountSuspended)
	}
	if user.Roles.Contains(entity.RoleSeller) {
		return user, nil
	}

	user, err = srv.userRepo.AddRole(ctx, userID, entity.RoleSeller)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

// GetProfile returns the account identified by userID.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
