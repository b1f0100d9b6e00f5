package entity

import (
	"time"

	"github.com/google/uuid"
)

// Review rating bounds.
const (
	RatingMin = 1
	RatingMax = 5
)

// Review is the buyer's verdict on a completed order. At most one review
// exists per order, and it always targets the seller.
type Review struct {
	ID         uuid.UUID `json:"id"`          // The Global Unique Identifier (GUID) for the review.
	OrderID    uuid.UUID `json:"order_id"`    // The completed order being reviewed.
	ReviewerID uuid.UUID `json:"reviewer_id"` // The buyer who wrote the review.
	RevieweeID uuid.UUID `json:"reviewee_id"` // The seller being reviewed.
	Rating     int       `json:"rating"`      // Star rating in [1,5].
	Content    string    `json:"content"`     // Free-text review body.
	CreatedAt  time.Time `json:"created_at"`  // Timestamp of when the review was written.
}

// NewReview constructs a review of order written by its buyer.
func NewReview(order *Order, rating int, content string) *Review {
	return &Review{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ReviewerID: order.BuyerID,
		RevieweeID: order.SellerID,
		Rating:     rating,
		Content:    content,
		CreatedAt:  time.Now(),
	}
}

// ValidRating reports whether rating is within [RatingMin, RatingMax].
func ValidRating(rating int) bool {
	return rating >= RatingMin && rating <= RatingMax
}
