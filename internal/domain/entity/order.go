package entity

import (
	"fmt"
	"time"

	domainerrors "market/internal/domain/errors"

	"github.com/google/uuid"
)

// OrderStatus represents the progress of an order.
type OrderStatus string

const (
	// OrderStatusPending is the initial state, waiting for the seller.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed means the seller accepted; waiting for receipt.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusCompleted is terminal; the buyer confirmed receipt.
	OrderStatusCompleted OrderStatus = "COMPLETED"
	// OrderStatusCancelled is terminal; either party backed out.
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// validOrderNext enumerates the allowed order status edges.
var validOrderNext = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPending:   {OrderStatusConfirmed: true, OrderStatusCancelled: true},
	OrderStatusConfirmed: {OrderStatusCompleted: true, OrderStatusCancelled: true},
	OrderStatusCompleted: {},
	OrderStatusCancelled: {},
}

// CanOrderTransition reports whether the order status edge from->to is allowed.
func CanOrderTransition(from, to OrderStatus) bool {
	return validOrderNext[from][to]
}

// Order records one purchase attempt for a single product. The agreed price
// is copied from the product at creation and never changes afterwards, even
// if the seller later edits the listing.
type Order struct {
	ID           uuid.UUID   `json:"id"`                     // The Global Unique Identifier (GUID) for the order.
	ProductID    uuid.UUID   `json:"product_id"`             // The product this order reserves.
	BuyerID      uuid.UUID   `json:"buyer_id"`               // The purchasing user; always distinct from SellerID.
	SellerID     uuid.UUID   `json:"seller_id"`              // The product owner at order creation.
	PriceCents   int64       `json:"price_cents"`            // Agreed price, frozen at creation.
	Status       OrderStatus `json:"status"`                 // Current lifecycle state.
	CancelReason string      `json:"cancel_reason,omitempty"` // Free-text reason, set on cancellation only.
	CreatedAt    time.Time   `json:"created_at"`             // Timestamp of order creation.
	ConfirmedAt  *time.Time  `json:"confirmed_at,omitempty"` // Set when the seller confirms.
	CompletedAt  *time.Time  `json:"completed_at,omitempty"` // Set on completion, or on cancellation as the cancel time.
}

// NewOrder constructs a PENDING order for product, copying the current
// asking price as the agreed price.
func NewOrder(product *Product, buyerID uuid.UUID) *Order {
	return &Order{
		ID:         uuid.New(),
		ProductID:  product.ID,
		BuyerID:    buyerID,
		SellerID:   product.SellerID,
		PriceCents: product.PriceCents,
		Status:     OrderStatusPending,
		CreatedAt:  time.Now(),
	}
}

// IsParty reports whether userID is the buyer or the seller of this order.
func (o *Order) IsParty(userID uuid.UUID) bool {
	return o.BuyerID == userID || o.SellerID == userID
}

// Counterparty returns the other side of the order relative to userID.
func (o *Order) Counterparty(userID uuid.UUID) uuid.UUID {
	if o.BuyerID == userID {
		return o.SellerID
	}

	return o.BuyerID
}

// Confirm moves the order from PENDING to CONFIRMED and records the
// confirmation time.
func (o *Order) Confirm() error {
	if err := o.transition(OrderStatusConfirmed); err != nil {
		return err
	}
	now := time.Now()
	o.ConfirmedAt = &now

	return nil
}

// Complete moves the order from CONFIRMED to its terminal COMPLETED state
// and records the completion time.
func (o *Order) Complete() error {
	if err := o.transition(OrderStatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	o.CompletedAt = &now

	return nil
}

// Cancel moves a PENDING or CONFIRMED order to CANCELLED, storing the reason
// and recording the cancellation time in the completion timestamp.
func (o *Order) Cancel(reason string) error {
	if err := o.transition(OrderStatusCancelled); err != nil {
		return err
	}
	o.CancelReason = reason
	now := time.Now()
	o.CompletedAt = &now

	return nil
}

// CanBeReviewed reports whether the order is eligible for a review; only
// completed orders are.
func (o *Order) CanBeReviewed() bool {
	return o.Status == OrderStatusCompleted
}

func (o *Order) transition(to OrderStatus) error {
	if !CanOrderTransition(o.Status, to) {
		return domainerrors.NewInvalidStateError(
			fmt.Sprintf("order %s: %s -> %s", o.ID, o.Status, to),
		)
	}
	o.Status = to

	return nil
}
