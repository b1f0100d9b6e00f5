package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CancelOrderInput carries the mandatory cancellation reason.
type CancelOrderInput struct {
	Reason string `json:"reason" validate:"required,min=5,max=200"`
}

// OrderUsecase is the transaction core: it orchestrates the coupled order
// and product state machines, applies reputation deltas, and fans out
// notifications. Within a single call the ordering is fixed: entity
// mutation, then reputation adjustment, then notification. All calls that
// touch one product are serialized against each other.
type OrderUsecase interface {
	// CreateOrder places a PENDING order on an AVAILABLE product and
	// reserves it. The buyer must hold the buyer role, be active, and not
	// be the product's seller.
	CreateOrder(ctx context.Context, buyerID, productID uuid.UUID) (*entity.Order, error)

	// ConfirmOrder lets the order's seller accept a PENDING order.
	ConfirmOrder(ctx context.Context, sellerID, orderID uuid.UUID) (*entity.Order, error)

	// ConfirmReceipt lets the order's buyer complete a CONFIRMED order,
	// marking the product sold and rewarding both parties.
	ConfirmReceipt(ctx context.Context, buyerID, orderID uuid.UUID) (*entity.Order, error)

	// CancelOrder lets either party cancel a PENDING or CONFIRMED order.
	// The product returns to AVAILABLE, the canceller is penalized and the
	// counterparty compensated.
	CancelOrder(ctx context.Context, actorID, orderID uuid.UUID, reason string) (*entity.Order, error)

	// GetOrder returns an order to one of its parties.
	GetOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error)

	// ListOrders returns all orders actorID takes part in, as buyer or
	// seller.
	ListOrders(ctx context.Context, actorID uuid.UUID) ([]*entity.Order, error)
}
