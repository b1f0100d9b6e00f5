package impl

import (
	"context"
	"fmt"
	"log/slog"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/reputation"
	"market/internal/domain/repository"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// reviewService implements the ReviewUsecase interface.
type reviewService struct {
	userRepo   repository.UserRepository
	orderRepo  repository.OrderRepository
	reviewRepo repository.ReviewRepository
	notifier   usecase.NotificationUsecase
	locks      *AggregateLocks
	logger     *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	OrderRepo  repository.OrderRepository
	ReviewRepo repository.ReviewRepository
	Notifier   usecase.NotificationUsecase
	Locks      *AggregateLocks
	Logger     *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		userRepo:   params.UserRepo,
		orderRepo:  params.OrderRepo,
		reviewRepo: params.ReviewRepo,
		notifier:   params.Notifier,
		locks:      params.Locks,
		logger:     params.Logger,
	}
}

// CreateReview writes the single review allowed on a completed order and
// applies the rating's reputation delta to the seller. Only the buyer of the
// order may review it.
func (srv *reviewService) CreateReview(ctx context.Context, reviewerID, orderID uuid.UUID, input *usecase.CreateReviewInput) (*entity.Review, error) {
	if !entity.ValidRating(input.Rating) {
		return nil, errors.WithStack(domainerrors.ErrInvalidRating)
	}

	reviewer, err := srv.userRepo.FindByID(ctx, reviewerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if !reviewer.CanTransact() {
		return nil, errors.WithStack(domainerrors.ErrAccountSuspended)
	}

	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.WithStack(domainerrors.ErrOrderNotFound)
		}

		return nil, errors.Wrap(err, "failed to find order")
	}
	if order.BuyerID != reviewerID {
		return nil, errors.WithStack(domainerrors.ErrPermissionDenied)
	}
	if !order.CanBeReviewed() {
		return nil, errors.WithStack(domainerrors.ErrOrderNotCompleted)
	}

	// Serialize per order so two concurrent submissions cannot both pass
	// the uniqueness check.
	unlock := srv.locks.Lock(orderID)
	defer unlock()

	if _, err := srv.reviewRepo.FindByOrder(ctx, orderID); err == nil {
		return nil, errors.WithStack(domainerrors.ErrOrderAlreadyReviewed)
	} else if !errors.Is(err, repository.ErrReviewNotFound) {
		return nil, errors.Wrap(err, "failed to find review")
	}

	review := entity.NewReview(order, input.Rating, input.Content)
	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, errors.Wrap(err, "failed to create review")
	}

	delta := reputation.ReviewDelta(input.Rating)
	if delta != 0 {
		if _, err := srv.userRepo.AdjustReputation(ctx, order.SellerID, delta); err != nil {
			return nil, errors.Wrap(err, "failed to adjust seller reputation")
		}
	}

	text := fmt.Sprintf("您收到一則 %d 星評價", input.Rating)
	if delta != 0 {
		text = fmt.Sprintf("%s，信譽 %+d", text, delta)
	}
	if err := srv.notifier.Publish(ctx, order.SellerID, text); err != nil {
		srv.logger.Warn("Failed to notify seller", slog.Any("orderID", orderID), slog.Any("error", err))
	}

	return review, nil
}

// ListSellerReviews returns all reviews targeting the given seller, newest
// first.
func (srv *reviewService) ListSellerReviews(ctx context.Context, sellerID uuid.UUID) ([]*entity.Review, error) {
	reviews, err := srv.reviewRepo.FindByReviewee(ctx, sellerID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find reviews")
	}

	return reviews, nil
}
