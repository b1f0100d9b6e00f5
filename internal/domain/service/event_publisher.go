package service

import (
	"context"
	"time"
)

// Order event types published on lifecycle transitions.
const (
	EventOrderCreated   = "order_created"
	EventOrderConfirmed = "order_confirmed"
	EventOrderCompleted = "order_completed"
	EventOrderCancelled = "order_cancelled"
)

// OrderEvent announces one order lifecycle transition to external consumers.
// It is emitted after the transition has been committed to the store.
type OrderEvent struct {
	EventID    string    `json:"event_id"`
	EventType  string    `json:"event_type"`
	OccurredAt time.Time `json:"occurred_at"`
	OrderID    string    `json:"order_id"`
	ProductID  string    `json:"product_id"`
	BuyerID    string    `json:"buyer_id"`
	SellerID   string    `json:"seller_id"`
	PriceCents int64     `json:"price_cents"`
	Reason     string    `json:"reason,omitempty"` // Cancel reason, for order_cancelled only.
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event for async consumers.
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
