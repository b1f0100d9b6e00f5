package impl

import (
	"context"
	"testing"

	domainerrors "market/internal/domain/errors"
	"market/internal/domain/reputation"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// completeOrder walks one order through the full happy path so review tests
// start from a COMPLETED order.
func (f *marketFixtures) completeOrder(t *testing.T, sellerID, buyerID, productID uuid.UUID) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	order, err := f.orders.CreateOrder(ctx, buyerID, productID)
	require.NoError(t, err)
	_, err = f.orders.ConfirmOrder(ctx, sellerID, order.ID)
	require.NoError(t, err)
	_, err = f.orders.ConfirmReceipt(ctx, buyerID, order.ID)
	require.NoError(t, err)

	return order.ID
}

func TestReviewService_CreateReview_FiveStars(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)
	orderID := f.completeOrder(t, seller.ID, buyer.ID, product.ID)

	before := f.reputationOf(t, seller.ID)

	review, err := f.reviews.CreateReview(ctx, buyer.ID, orderID, &usecase.CreateReviewInput{
		Rating:  5,
		Content: "快速出貨，商品如描述",
	})
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, review.ReviewerID)
	assert.Equal(t, seller.ID, review.RevieweeID)
	assert.Equal(t, 5, review.Rating)

	assert.Equal(t, before+reputation.ReviewDelta(5), f.reputationOf(t, seller.ID))
}

func TestReviewService_CreateReview_OneStarPenalizesSeller(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)
	orderID := f.completeOrder(t, seller.ID, buyer.ID, product.ID)

	before := f.reputationOf(t, seller.ID)

	_, err := f.reviews.CreateReview(ctx, buyer.ID, orderID, &usecase.CreateReviewInput{Rating: 1})
	require.NoError(t, err)

	assert.Equal(t, before-3, f.reputationOf(t, seller.ID))
	// The buyer's reputation never moves on a review.
	assert.Equal(t, reputation.Initial+reputation.CompletionReward, f.reputationOf(t, buyer.ID))
}

func TestReviewService_CreateReview_ThreeStarsIsNeutral(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)
	orderID := f.completeOrder(t, seller.ID, buyer.ID, product.ID)

	before := f.reputationOf(t, seller.ID)

	_, err := f.reviews.CreateReview(ctx, buyer.ID, orderID, &usecase.CreateReviewInput{Rating: 3})
	require.NoError(t, err)

	assert.Equal(t, before, f.reputationOf(t, seller.ID))
}

func TestReviewService_CreateReview_Twice(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)
	orderID := f.completeOrder(t, seller.ID, buyer.ID, product.ID)

	_, err := f.reviews.CreateReview(ctx, buyer.ID, orderID, &usecase.CreateReviewInput{Rating: 4})
	require.NoError(t, err)

	before := f.reputationOf(t, seller.ID)

	_, err = f.reviews.CreateReview(ctx, buyer.ID, orderID, &usecase.CreateReviewInput{Rating: 1})
	require.ErrorIs(t, err, domainerrors.ErrOrderAlreadyReviewed)

	// A rejected duplicate applies no delta.
	assert.Equal(t, before, f.reputationOf(t, seller.ID))
}

func TestReviewService_CreateReview_OrderNotCompleted(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)

	order, err := f.orders.CreateOrder(ctx, buyer.ID, product.ID)
	require.NoError(t, err)

	_, err = f.reviews.CreateReview(ctx, buyer.ID, order.ID, &usecase.CreateReviewInput{Rating: 5})
	require.ErrorIs(t, err, domainerrors.ErrOrderNotCompleted)
}

func TestReviewService_CreateReview_CancelledOrder(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)

	order, err := f.orders.CreateOrder(ctx, buyer.ID, product.ID)
	require.NoError(t, err)
	_, err = f.orders.CancelOrder(ctx, buyer.ID, order.ID, "changed my mind about it")
	require.NoError(t, err)

	_, err = f.reviews.CreateReview(ctx, buyer.ID, order.ID, &usecase.CreateReviewInput{Rating: 5})
	require.ErrorIs(t, err, domainerrors.ErrOrderNotCompleted)
}

func TestReviewService_CreateReview_SellerCannotReview(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)
	orderID := f.completeOrder(t, seller.ID, buyer.ID, product.ID)

	_, err := f.reviews.CreateReview(ctx, seller.ID, orderID, &usecase.CreateReviewInput{Rating: 5})
	require.ErrorIs(t, err, domainerrors.ErrPermissionDenied)
}

func TestReviewService_CreateReview_RatingOutOfRange(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	buyer := f.createBuyer(t, "buyer")
	product := f.createListing(t, seller, "Used camera", 12000)
	orderID := f.completeOrder(t, seller.ID, buyer.ID, product.ID)

	for _, rating := range []int{0, 6, -1} {
		_, err := f.reviews.CreateReview(ctx, buyer.ID, orderID, &usecase.CreateReviewInput{Rating: rating})
		require.ErrorIs(t, err, domainerrors.ErrInvalidRating)
	}
}

func TestReviewService_ListSellerReviews_NewestFirst(t *testing.T) {
	f := createMarketFixtures(t)
	ctx := context.Background()

	seller := f.createSeller(t, "seller")
	first := f.createBuyer(t, "first")
	second := f.createBuyer(t, "second")

	firstProduct := f.createListing(t, seller, "Used camera", 12000)
	secondProduct := f.createListing(t, seller, "Old phone", 4000)

	firstOrder := f.completeOrder(t, seller.ID, first.ID, firstProduct.ID)
	secondOrder := f.completeOrder(t, seller.ID, second.ID, secondProduct.ID)

	_, err := f.reviews.CreateReview(ctx, first.ID, firstOrder, &usecase.CreateReviewInput{Rating: 5, Content: "great"})
	require.NoError(t, err)
	_, err = f.reviews.CreateReview(ctx, second.ID, secondOrder, &usecase.CreateReviewInput{Rating: 2, Content: "slow"})
	require.NoError(t, err)

	reviews, err := f.reviews.ListSellerReviews(ctx, seller.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.False(t, reviews[0].CreatedAt.Before(reviews[1].CreatedAt))
}
