package repository

import (
	"context"

	"market/internal/domain/entity"
	"market/internal/errors"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a product lookup finds nothing.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository manages Product entities.
type ProductRepository interface {
	// Create persists a new product listing.
	Create(ctx context.Context, product *entity.Product) error

	// FindByID retrieves a product by its ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// Update persists changes to an existing product.
	Update(ctx context.Context, product *entity.Product) error

	// Filter returns all products matching the predicate.
	Filter(ctx context.Context, pred func(*entity.Product) bool) ([]*entity.Product, error)
}
