package repository

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/errors"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order lookup finds nothing.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository manages Order entities.
type OrderRepository interface {
	// Create persists a new order.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves an order by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// Update persists changes to an existing order.
	Update(ctx context.Context, order *entity.Order) error

	// Filter returns all orders matching the predicate.
	Filter(ctx context.Context, pred func(*entity.Order) bool) ([]*entity.Order, error)
}
