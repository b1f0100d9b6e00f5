package impl

import (
	"context"
	"log/slog"
	"sort"

	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// productService implements the ProductUsecase interface.
type productService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	qrService   service.QRCodeService
	locks       *AggregateLocks
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	QRService   service.QRCodeService
	Locks       *AggregateLocks
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		qrService:   params.QRService,
		locks:       params.Locks,
		logger:      params.Logger,
	}
}

// CreateProduct publishes a new AVAILABLE listing owned by sellerID.
func (srv *productService) CreateProduct(ctx context.Context, sellerID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	if _, err := srv.loadSeller(ctx, sellerID); err != nil {
		return nil, err
	}

	product := entity.NewProduct(sellerID, input.Title, input.Description, input.PriceCents, input.Category, input.Condition)
	if err := srv.productRepo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.logger.Debug("Product listed",
		slog.Any("productID", product.ID),
		slog.Any("sellerID", sellerID),
	)

	return product, nil
}

// GetProduct returns the product identified by productID.
func (srv *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.WithStack(domainerrors.ErrProductNotFound)
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// ListProducts returns all products matching the filter, newest first.
func (srv *productService) ListProducts(ctx context.Context, filter *usecase.ProductFilter) ([]*entity.Product, error) {
	products, err := srv.productRepo.Filter(ctx, func(p *entity.Product) bool {
		if filter == nil {
			return true
		}
		if filter.SellerID != nil && p.SellerID != *filter.SellerID {
			return false
		}
		if filter.Status != nil && p.Status != *filter.Status {
			return false
		}
		if filter.Category != "" && p.Category != filter.Category {
			return false
		}

		return true
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to filter products")
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].PublishedAt.After(products[j].PublishedAt)
	})

	return products, nil
}

// UpdateProduct edits a listing owned by sellerID. Only AVAILABLE and
// REMOVED listings are editable; reserved and sold listings are frozen.
func (srv *productService) UpdateProduct(ctx context.Context, sellerID, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	unlock := srv.locks.Lock(productID)
	defer unlock()

	product, err := srv.loadOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	if product.Status == entity.ProductStatusReserved || product.Status == entity.ProductStatusSold {
		return nil, errors.WithStack(domainerrors.NewInvalidStateError(
			"product " + product.ID.String() + ": edit in " + string(product.Status),
		))
	}

	if input.Title != nil {
		product.Title = *input.Title
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.PriceCents != nil {
		product.PriceCents = *input.PriceCents
	}
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// RemoveProduct pulls an AVAILABLE listing off the market.
func (srv *productService) RemoveProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error) {
	unlock := srv.locks.Lock(productID)
	defer unlock()

	product, err := srv.loadOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	if err := product.Remove(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// RelistProduct returns a REMOVED listing to the market. Calling it on a
// listing that is already on the market changes nothing.
func (srv *productService) RelistProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error) {
	unlock := srv.locks.Lock(productID)
	defer unlock()

	product, err := srv.loadOwnedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	product.Relist()
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	return product, nil
}

// ProductQR renders a share QR code PNG for an existing listing.
func (srv *productService) ProductQR(ctx context.Context, productID uuid.UUID) ([]byte, error) {
	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrService.GenerateProductQR(product.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate product QR code")
	}

	return png, nil
}

// ResolveProductQR decodes a scanned QR payload and returns the listing it
// points at.
func (srv *productService) ResolveProductQR(ctx context.Context, qrData string) (*entity.Product, error) {
	productID, err := srv.qrService.ParseProductQR(qrData)
	if err != nil {
		return nil, errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("invalid QR payload"))
	}

	return srv.GetProduct(ctx, productID)
}

// loadSeller loads a user and checks standing plus the seller role.
func (srv *productService) loadSeller(ctx context.Context, sellerID uuid.UUID) (*entity.User, error) {
	seller, err := srv.userRepo.FindByID(ctx, sellerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}
	if !seller.CanTransact() {
		return nil, errors.WithStack(domainerrors.ErrAccountSuspended)
	}
	if !seller.Roles.Contains(entity.RoleSeller) {
		return nil, errors.WithStack(domainerrors.ErrMissingRole.WithDetails(entity.RoleSeller.String()))
	}

	return seller, nil
}

// loadOwnedProduct loads a product and checks sellerID owns it.
func (srv *productService) loadOwnedProduct(ctx context.Context, sellerID, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, errors.WithStack(domainerrors.ErrPermissionDenied)
	}

	return product, nil
}
