package entity

import (
	"fmt"
	"time"

	domainerrors "market/internal/domain/errors"

	"github.com/google/uuid"
)

// ProductStatus represents the saleability of a product.
type ProductStatus string

const (
	// ProductStatusAvailable means the product can be reserved by an order.
	ProductStatusAvailable ProductStatus = "AVAILABLE"
	// ProductStatusReserved means exactly one in-flight order holds the product.
	ProductStatusReserved ProductStatus = "RESERVED"
	// ProductStatusSold is terminal; a sold product never returns to the market.
	ProductStatusSold ProductStatus = "SOLD"
	// ProductStatusRemoved means the seller pulled the listing; it may be re-listed.
	ProductStatusRemoved ProductStatus = "REMOVED"
)

// validProductNext enumerates the allowed product status edges. The RESERVED
// intermediate state exists so a cancelled order can tell "never touched"
// apart from "already sold" when recovering to AVAILABLE.
var validProductNext = map[ProductStatus]map[ProductStatus]bool{
	ProductStatusAvailable: {ProductStatusReserved: true, ProductStatusRemoved: true},
	ProductStatusReserved:  {ProductStatusSold: true, ProductStatusAvailable: true},
	ProductStatusSold:      {},
	ProductStatusRemoved:   {ProductStatusAvailable: true},
}

// CanProductTransition reports whether the product status edge from->to is allowed.
func CanProductTransition(from, to ProductStatus) bool {
	return validProductNext[from][to]
}

// Product is a single listed good. Title, description and price become
// immutable once the product is sold; the agreed price of an order is copied
// out at order creation regardless.
type Product struct {
	ID          uuid.UUID     `json:"id"`           // The Global Unique Identifier (GUID) for the product.
	Title       string        `json:"title"`        // Short listing title.
	Description string        `json:"description"`  // Free-text description of the good.
	PriceCents  int64         `json:"price_cents"`  // Asking price in cents.
	Category    string        `json:"category"`     // Category tag, e.g. "electronics".
	Condition   string        `json:"condition"`    // Condition tag, e.g. "used - good".
	SellerID    uuid.UUID     `json:"seller_id"`    // The user who owns this listing.
	Status      ProductStatus `json:"status"`       // Current saleability state.
	PublishedAt time.Time     `json:"published_at"` // Timestamp of when the listing was published.
	UpdatedAt   time.Time     `json:"updated_at"`   // Timestamp of the last modification.
}

// NewProduct constructs an AVAILABLE listing owned by sellerID.
func NewProduct(sellerID uuid.UUID, title, description string, priceCents int64, category, condition string) *Product {
	now := time.Now()

	return &Product{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		PriceCents:  priceCents,
		Category:    category,
		Condition:   condition,
		SellerID:    sellerID,
		Status:      ProductStatusAvailable,
		PublishedAt: now,
		UpdatedAt:   now,
	}
}

// IsAvailable reports whether the product can currently be reserved.
func (p *Product) IsAvailable() bool {
	return p.Status == ProductStatusAvailable
}

// Reserve moves the product from AVAILABLE to RESERVED on behalf of a newly
// created order. Any other starting state is rejected.
func (p *Product) Reserve() error {
	if err := p.transition(ProductStatusReserved); err != nil {
		return err
	}

	return nil
}

// CancelReservation returns a RESERVED product to AVAILABLE. It is a silent
// no-op in every other state; the cancellation flow calls it defensively.
func (p *Product) CancelReservation() {
	if p.Status != ProductStatusReserved {
		return
	}
	p.Status = ProductStatusAvailable
	p.UpdatedAt = time.Now()
}

// MarkSold moves the product from RESERVED to its terminal SOLD state.
func (p *Product) MarkSold() error {
	return p.transition(ProductStatusSold)
}

// Remove pulls an AVAILABLE listing off the market.
func (p *Product) Remove() error {
	return p.transition(ProductStatusRemoved)
}

// Relist returns a REMOVED listing to the market. It is a no-op in every
// other state.
func (p *Product) Relist() {
	if p.Status != ProductStatusRemoved {
		return
	}
	p.Status = ProductStatusAvailable
	p.UpdatedAt = time.Now()
}

func (p *Product) transition(to ProductStatus) error {
	if !CanProductTransition(p.Status, to) {
		return domainerrors.NewInvalidStateError(
			fmt.Sprintf("product %s: %s -> %s", p.ID, p.Status, to),
		)
	}
	p.Status = to
	p.UpdatedAt = time.Now()

	return nil
}
