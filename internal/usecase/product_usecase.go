package usecase

import (
	"context"

	"market/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateProductInput carries a new listing.
type CreateProductInput struct {
	Title       string `json:"title" validate:"required,max=120"`
	Description string `json:"description" validate:"max=2000"`
	PriceCents  int64  `json:"price_cents" validate:"required,gt=0"`
	Category    string `json:"category" validate:"max=64"`
	Condition   string `json:"condition" validate:"max=64"`
}

// UpdateProductInput carries listing edits. Nil fields are left unchanged.
type UpdateProductInput struct {
	Title       *string `json:"title" validate:"omitempty,max=120"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
	PriceCents  *int64  `json:"price_cents" validate:"omitempty,gt=0"`
}

// ProductFilter narrows a listing query. Zero values match everything.
type ProductFilter struct {
	SellerID *uuid.UUID
	Status   *entity.ProductStatus
	Category string
}

// ProductUsecase covers listing management and product share QR codes.
type ProductUsecase interface {
	// CreateProduct publishes a new AVAILABLE listing owned by sellerID.
	CreateProduct(ctx context.Context, sellerID uuid.UUID, input *CreateProductInput) (*entity.Product, error)

	// GetProduct returns the product identified by productID.
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)

	// ListProducts returns all products matching the filter.
	ListProducts(ctx context.Context, filter *ProductFilter) ([]*entity.Product, error)

	// UpdateProduct edits a listing owned by sellerID. Sold products are
	// immutable.
	UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input *UpdateProductInput) (*entity.Product, error)

	// RemoveProduct pulls an AVAILABLE listing off the market.
	RemoveProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error)

	// RelistProduct returns a REMOVED listing to the market.
	RelistProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error)

	// ProductQR renders a share QR code PNG for an existing listing.
	ProductQR(ctx context.Context, productID uuid.UUID) ([]byte, error)

	// ResolveProductQR looks up the listing a scanned QR payload points at.
	ResolveProductQR(ctx context.Context, qrData string) (*entity.Product, error)
}
