package impl

import (
	"context"
	"log/slog"
	"sort"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface. Bans only flip the
// account standing; every transactional flow re-checks standing itself, so
// a ban takes effect immediately without touching in-flight entities.
type adminService struct {
	userRepo   repository.UserRepository
	appealRepo repository.AppealRepository
	notifier   usecase.NotificationUsecase
	locks      *AggregateLocks
	logger     *slog.Logger
}

// AdminServiceParams holds dependencies for AdminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	AppealRepo repository.AppealRepository
	Notifier   usecase.NotificationUsecase
	Locks      *AggregateLocks
	Logger     *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		userRepo:   params.UserRepo,
		appealRepo: params.AppealRepo,
		notifier:   params.Notifier,
		locks:      params.Locks,
		logger:     params.Logger,
	}
}

// BanUser sets the target account to banned status.
func (srv *adminService) BanUser(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	user, err := srv.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.UserStatusBanned {
		return user, nil
	}

	user, err = srv.userRepo.SetStatus(ctx, userID, entity.UserStatusBanned)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.logger.Info("User banned", slog.Any("userID", userID), slog.Any("adminID", adminID))

	if err := srv.notifier.Publish(ctx, userID, "您的帳號已遭停權，如有異議可提出申訴"); err != nil {
		srv.logger.Warn("Failed to notify banned user", slog.Any("userID", userID), slog.Any("error", err))
	}

	return user, nil
}

// UnbanUser restores a banned account to active status.
func (srv *adminService) UnbanUser(ctx context.Context, adminID, userID uuid.UUID) (*entity.User, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	user, err := srv.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != entity.UserStatusBanned {
		return user, nil
	}

	user, err = srv.userRepo.SetStatus(ctx, userID, entity.UserStatusActive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	srv.logger.Info("User unbanned", slog.Any("userID", userID), slog.Any("adminID", adminID))

	if err := srv.notifier.Publish(ctx, userID, "您的帳號已恢復使用"); err != nil {
		srv.logger.Warn("Failed to notify unbanned user", slog.Any("userID", userID), slog.Any("error", err))
	}

	return user, nil
}

// SubmitAppeal files a reinstatement request for a banned account. Active
// accounts have nothing to appeal.
func (srv *adminService) SubmitAppeal(ctx context.Context, userID uuid.UUID, input *usecase.SubmitAppealInput) (*entity.Appeal, error) {
	user, err := srv.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Status != entity.UserStatusBanned {
		return nil, errors.WithStack(domainerrors.NewInvalidStateError(
			"appeal from " + string(user.Status) + " account",
		))
	}

	appeal := entity.NewAppeal(userID, input.Content)
	if err := srv.appealRepo.Create(ctx, appeal); err != nil {
		return nil, errors.Wrap(err, "failed to create appeal")
	}

	return appeal, nil
}

// ListPendingAppeals returns all unresolved appeals, oldest first.
func (srv *adminService) ListPendingAppeals(ctx context.Context, adminID uuid.UUID) ([]*entity.Appeal, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	appeals, err := srv.appealRepo.Filter(ctx, func(a *entity.Appeal) bool {
		return a.Status == entity.AppealStatusPending
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to filter appeals")
	}

	sort.Slice(appeals, func(i, j int) bool {
		return appeals[i].CreatedAt.Before(appeals[j].CreatedAt)
	})

	return appeals, nil
}

// ResolveAppeal records an admin ruling; accepting lifts the ban.
func (srv *adminService) ResolveAppeal(ctx context.Context, adminID, appealID uuid.UUID, input *usecase.ResolveAppealInput) (*entity.Appeal, error) {
	if err := srv.requireAdmin(ctx, adminID); err != nil {
		return nil, err
	}

	// Serialize per appeal so two admins cannot both rule on it.
	unlock := srv.locks.Lock(appealID)
	defer unlock()

	appeal, err := srv.appealRepo.FindByID(ctx, appealID)
	if err != nil {
		if errors.Is(err, repository.ErrAppealNotFound) {
			return nil, errors.WithStack(domainerrors.ErrAppealNotFound)
		}

		return nil, errors.Wrap(err, "failed to find appeal")
	}
	if appeal.Status != entity.AppealStatusPending {
		return nil, errors.WithStack(domainerrors.ErrAppealResolved)
	}

	appeal.Resolve(adminID, input.Accepted, input.Note)
	if err := srv.appealRepo.Update(ctx, appeal); err != nil {
		return nil, errors.Wrap(err, "failed to update appeal")
	}

	if input.Accepted {
		if _, err := srv.UnbanUser(ctx, adminID, appeal.UserID); err != nil {
			return nil, err
		}
	} else {
		if err := srv.notifier.Publish(ctx, appeal.UserID, "您的申訴未獲受理"); err != nil {
			srv.logger.Warn("Failed to notify appellant", slog.Any("appealID", appealID), slog.Any("error", err))
		}
	}

	return appeal, nil
}

func (srv *adminService) requireAdmin(ctx context.Context, adminID uuid.UUID) error {
	admin, err := srv.loadUser(ctx, adminID)
	if err != nil {
		return err
	}
	if !admin.CanTransact() {
		return errors.WithStack(domainerrors.ErrAccountSuspended)
	}
	if !admin.Roles.Contains(entity.RoleAdmin) {
		return errors.WithStack(domainerrors.ErrMissingRole.WithDetails(entity.RoleAdmin.String()))
	}

	return nil
}

func (srv *adminService) loadUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}
