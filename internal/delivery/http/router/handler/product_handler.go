package handler

import (
	"log/slog"
	"net/http"

	"market/internal/delivery/http/response"
	"market/internal/domain/entity"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProductHandler holds dependencies for listing-related handlers.
type ProductHandler struct {
	uc     usecase.ProductUsecase
	logger *slog.Logger
}

// NewProductHandler is the constructor for ProductHandler, injected by Fx.
func NewProductHandler(uc usecase.ProductUsecase, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateProduct publishes a new listing for the authenticated seller.
func (h *ProductHandler) CreateProduct(c echo.Context) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var input *usecase.CreateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.CreateProduct(c.Request().Context(), sellerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, product, "Product listed successfully")
}

// GetProduct returns a single listing.
func (h *ProductHandler) GetProduct(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.GetProduct(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved")
}

// ListProducts returns listings matching the query filters.
func (h *ProductHandler) ListProducts(c echo.Context) error {
	filter := &usecase.ProductFilter{
		Category: c.QueryParam("category"),
	}

	if sellerParam := c.QueryParam("seller_id"); sellerParam != "" {
		sellerID, err := uuid.Parse(sellerParam)
		if err != nil {
			return response.BadRequest(c, "INVALID_INPUT", "Invalid seller_id")
		}
		filter.SellerID = &sellerID
	}
	if statusParam := c.QueryParam("status"); statusParam != "" {
		status := entity.ProductStatus(statusParam)
		filter.Status = &status
	}

	products, err := h.uc.ListProducts(c.Request().Context(), filter)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Products retrieved")
}

// UpdateProduct edits a listing owned by the authenticated seller.
func (h *ProductHandler) UpdateProduct(c echo.Context) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.UpdateProductInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid product input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.UpdateProduct(c.Request().Context(), sellerID, productID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product updated")
}

// RemoveProduct pulls a listing off the market.
func (h *ProductHandler) RemoveProduct(c echo.Context) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.RemoveProduct(c.Request().Context(), sellerID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product removed")
}

// RelistProduct returns a removed listing to the market.
func (h *ProductHandler) RelistProduct(c echo.Context) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	product, err := h.uc.RelistProduct(c.Request().Context(), sellerID, productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product relisted")
}

// ProductQR streams a share QR code PNG for a listing.
func (h *ProductHandler) ProductQR(c echo.Context) error {
	productID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.ProductQR(c.Request().Context(), productID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}

// ScanProductQRRequest carries a scanned QR payload.
type ScanProductQRRequest struct {
	QRData string `json:"qr_data" validate:"required"`
}

// ScanProductQR resolves a scanned QR payload to its listing.
func (h *ProductHandler) ScanProductQR(c echo.Context) error {
	var input *ScanProductQRRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid QR payload")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	product, err := h.uc.ResolveProductQR(c.Request().Context(), input.QRData)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Product retrieved")
}
