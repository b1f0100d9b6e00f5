package repository

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/errors"

	"github.com/google/uuid"
)

// ErrReviewNotFound is returned when a review lookup finds nothing.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository manages Review entities.
type ReviewRepository interface {
	// Create persists a new review.
	Create(ctx context.Context, review *entity.Review) error

	// FindByOrder retrieves the review written for the given order, if any.
	FindByOrder(ctx context.Context, orderID uuid.UUID) (*entity.Review, error)

	// FindByReviewee retrieves all reviews targeting the given seller.
	FindByReviewee(ctx context.Context, revieweeID uuid.UUID) ([]*entity.Review, error)
}
