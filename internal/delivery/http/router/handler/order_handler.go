package handler

import (
	"log/slog"
	"net/http"

	"market/internal/delivery/http/response"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler holds dependencies for order-related handlers.
type OrderHandler struct {
	uc     usecase.OrderUsecase
	logger *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: logger,
	}
}

// CreateOrderRequest carries the order creation body.
type CreateOrderRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
}

// CreateOrder places an order on a product for the authenticated buyer.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	buyerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return errors.WithStack(err)
	}

	order, err := h.uc.CreateOrder(c.Request().Context(), buyerID, req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, order, "Order created")
}

// ConfirmOrder lets the seller accept a pending order.
func (h *OrderHandler) ConfirmOrder(c echo.Context) error {
	sellerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.ConfirmOrder(c.Request().Context(), sellerID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order confirmed")
}

// ConfirmReceipt lets the buyer complete a confirmed order.
func (h *OrderHandler) ConfirmReceipt(c echo.Context) error {
	buyerID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.ConfirmReceipt(c.Request().Context(), buyerID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Receipt confirmed")
}

// CancelOrder lets either party cancel an in-flight order.
func (h *OrderHandler) CancelOrder(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var input *usecase.CancelOrderInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cancel input")
	}

	order, err := h.uc.CancelOrder(c.Request().Context(), actorID, orderID, input.Reason)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order cancelled")
}

// GetOrder returns one of the authenticated user's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}
	orderID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	order, err := h.uc.GetOrder(c.Request().Context(), actorID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, order, "Order retrieved")
}

// ListOrders returns every order the authenticated user takes part in.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	actorID, err := currentUserID(c)
	if err != nil {
		return err
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), actorID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, orders, "Orders retrieved")
}
