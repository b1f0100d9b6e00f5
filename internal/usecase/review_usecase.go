package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateReviewInput carries a buyer's review of a completed order.
type CreateReviewInput struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Content string `json:"content" validate:"max=1000"`
}

// ReviewUsecase covers review creation and seller review listings.
type ReviewUsecase interface {
	// CreateReview writes the single review allowed for a completed order
	// and applies the rating's reputation delta to the seller.
	CreateReview(ctx context.Context, reviewerID, orderID uuid.UUID, input *CreateReviewInput) (*entity.Review, error)

	// ListSellerReviews returns all reviews targeting the given seller,
	// newest first.
	ListSellerReviews(ctx context.Context, sellerID uuid.UUID) ([]*entity.Review, error)
}
