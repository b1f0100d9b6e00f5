// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"market/config"
	"market/internal/domain/entity"
	domainerrors "market/internal/domain/errors"
	"market/internal/domain/reputation"
	"market/internal/domain/repository"
	"market/internal/domain/service"
	"market/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// orderService implements the OrderUsecase interface. It is the single
// writer of the cross-entity invariants of one transaction: order status,
// product status and the reputation of both parties. Every mutating call
// runs under the product aggregate lock and follows the same ordering:
// entity mutation first, reputation next, notification last.
type orderService struct {
	userRepo    repository.UserRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	notifier    usecase.NotificationUsecase
	publisher   service.EventPublisher
	locks       *AggregateLocks
	marketplace *config.MarketplaceConfig
	logger      *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	OrderRepo   repository.OrderRepository
	Notifier    usecase.NotificationUsecase
	Publisher   service.EventPublisher
	Locks       *AggregateLocks
	Config      *config.Config
	Logger      *slog.Logger
}

// NewOrderService is the constructor for orderService. It receives all dependencies as interfaces.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		userRepo:    params.UserRepo,
		productRepo: params.ProductRepo,
		orderRepo:   params.OrderRepo,
		notifier:    params.Notifier,
		publisher:   params.Publisher,
		locks:       params.Locks,
		marketplace: params.Config.Marketplace,
		logger:      params.Logger,
	}
}

// CreateOrder places a PENDING order on an AVAILABLE product and reserves it.
func (srv *orderService) CreateOrder(ctx context.Context, buyerID, productID uuid.UUID) (*entity.Order, error) {
	buyer, err := srv.loadActor(ctx, buyerID, entity.RoleBuyer)
	if err != nil {
		return nil, err
	}

	// Resolve the product once outside the lock so a missing ID fails fast.
	if _, err := srv.loadProduct(ctx, productID); err != nil {
		return nil, err
	}

	unlock := srv.locks.Lock(productID)
	defer unlock()

	// Re-read under the lock; a concurrent order may have won the race.
	product, err := srv.loadProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	if product.SellerID == buyer.ID {
		return nil, errors.WithStack(domainerrors.ErrSelfPurchase)
	}
	if !product.IsAvailable() {
		return nil, errors.WithStack(domainerrors.ErrProductUnavailable)
	}

	order := entity.NewOrder(product, buyer.ID)
	if err := product.Reserve(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}
	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}

	srv.notifyParties(ctx, order,
		fmt.Sprintf("您的訂單已成立：%s（%s）", product.Title, formatPrice(order.PriceCents)),
		fmt.Sprintf("您的商品「%s」有新訂單，請確認出貨", product.Title),
	)
	srv.publishEvent(ctx, service.EventOrderCreated, order, "")

	srv.logger.Debug("Order created",
		slog.Any("orderID", order.ID),
		slog.Any("productID", product.ID),
		slog.Any("buyerID", buyer.ID),
	)

	return order, nil
}

// ConfirmOrder lets the order's seller accept a PENDING order.
func (srv *orderService) ConfirmOrder(ctx context.Context, sellerID, orderID uuid.UUID) (*entity.Order, error) {
	if _, err := srv.loadActor(ctx, sellerID, entity.RoleSeller); err != nil {
		return nil, err
	}

	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.SellerID != sellerID {
		return nil, errors.WithStack(domainerrors.ErrPermissionDenied)
	}

	unlock := srv.locks.Lock(order.ProductID)
	defer unlock()

	order, err = srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := order.Confirm(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	srv.notifyParties(ctx, order,
		"賣家已確認您的訂單，請在收到商品後確認收貨",
		"您已確認訂單，請儘速出貨",
	)
	srv.publishEvent(ctx, service.EventOrderConfirmed, order, "")

	return order, nil
}

// ConfirmReceipt lets the order's buyer complete a CONFIRMED order. The
// product becomes SOLD and both parties earn the completion reward.
func (srv *orderService) ConfirmReceipt(ctx context.Context, buyerID, orderID uuid.UUID) (*entity.Order, error) {
	if _, err := srv.loadActor(ctx, buyerID, entity.RoleBuyer); err != nil {
		return nil, err
	}

	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.BuyerID != buyerID {
		return nil, errors.WithStack(domainerrors.ErrPermissionDenied)
	}

	unlock := srv.locks.Lock(order.ProductID)
	defer unlock()

	order, err = srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	product, err := srv.loadProduct(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	if err := order.Complete(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := product.MarkSold(); err != nil {
		return nil, errors.WithStack(err)
	}
	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	// Reputation after entity mutation, before notification.
	if _, err := srv.userRepo.AdjustReputation(ctx, order.BuyerID, reputation.CompletionReward); err != nil {
		return nil, errors.Wrap(err, "failed to adjust buyer reputation")
	}
	if _, err := srv.userRepo.AdjustReputation(ctx, order.SellerID, reputation.CompletionReward); err != nil {
		return nil, errors.Wrap(err, "failed to adjust seller reputation")
	}

	srv.notifyParties(ctx, order,
		fmt.Sprintf("交易完成：%s，信譽 +%d", product.Title, reputation.CompletionReward),
		fmt.Sprintf("買家已確認收貨：%s，信譽 +%d", product.Title, reputation.CompletionReward),
	)
	srv.publishEvent(ctx, service.EventOrderCompleted, order, "")

	return order, nil
}

// CancelOrder lets either party cancel a PENDING or CONFIRMED order. The
// reservation is released, the canceller penalized, and the counterparty
// compensated.
func (srv *orderService) CancelOrder(ctx context.Context, actorID, orderID uuid.UUID, reason string) (*entity.Order, error) {
	if length := len([]rune(reason)); length < srv.marketplace.CancelReasonMinLen || length > srv.marketplace.CancelReasonMaxLen {
		return nil, errors.WithStack(domainerrors.ErrInvalidCancelReason)
	}

	actor, err := srv.loadUser(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.CanTransact() {
		return nil, errors.WithStack(domainerrors.ErrAccountSuspended)
	}

	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(actorID) {
		return nil, errors.WithStack(domainerrors.ErrPermissionDenied)
	}

	unlock := srv.locks.Lock(order.ProductID)
	defer unlock()

	order, err = srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	product, err := srv.loadProduct(ctx, order.ProductID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(reason); err != nil {
		return nil, errors.WithStack(err)
	}
	// No-op unless the product is still RESERVED.
	product.CancelReservation()

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}
	if err := srv.productRepo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "failed to update product")
	}

	counterpartyID := order.Counterparty(actorID)
	if _, err := srv.userRepo.AdjustReputation(ctx, actorID, -reputation.CancellationPenalty); err != nil {
		return nil, errors.Wrap(err, "failed to adjust canceller reputation")
	}
	if _, err := srv.userRepo.AdjustReputation(ctx, counterpartyID, reputation.CancellationCompensation); err != nil {
		return nil, errors.Wrap(err, "failed to adjust counterparty reputation")
	}

	cancellerText := fmt.Sprintf("您已取消訂單（%s），信譽 -%d", reason, reputation.CancellationPenalty)
	counterpartyText := fmt.Sprintf("對方已取消訂單（%s），信譽 +%d", reason, reputation.CancellationCompensation)
	if actorID == order.BuyerID {
		srv.notifyParties(ctx, order, cancellerText, counterpartyText)
	} else {
		srv.notifyParties(ctx, order, counterpartyText, cancellerText)
	}
	srv.publishEvent(ctx, service.EventOrderCancelled, order, reason)

	return order, nil
}

// GetOrder returns an order to one of its parties.
func (srv *orderService) GetOrder(ctx context.Context, actorID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.loadOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.IsParty(actorID) {
		return nil, errors.WithStack(domainerrors.ErrPermissionDenied)
	}

	return order, nil
}

// ListOrders returns all orders actorID takes part in.
func (srv *orderService) ListOrders(ctx context.Context, actorID uuid.UUID) ([]*entity.Order, error) {
	orders, err := srv.orderRepo.Filter(ctx, func(o *entity.Order) bool {
		return o.IsParty(actorID)
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to filter orders")
	}

	return orders, nil
}

// loadActor loads a user and checks standing plus the required role.
func (srv *orderService) loadActor(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error) {
	user, err := srv.loadUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanTransact() {
		return nil, errors.WithStack(domainerrors.ErrAccountSuspended)
	}
	if !user.Roles.Contains(role) {
		return nil, errors.WithStack(domainerrors.ErrMissingRole.WithDetails(role.String()))
	}

	return user, nil
}

func (srv *orderService) loadUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.WithStack(domainerrors.ErrUserNotFound)
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	return user, nil
}

func (srv *orderService) loadProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.WithStack(domainerrors.ErrProductNotFound)
		}

		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

func (srv *orderService) loadOrder(ctx context.Context, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, errors.WithStack(domainerrors.ErrOrderNotFound)
		}

		return nil, errors.Wrap(err, "failed to find order")
	}

	return order, nil
}

// notifyParties publishes one text to the buyer and one to the seller.
// Failures are logged, not propagated: the transaction is already committed
// and the persisted-or-not message must not undo it.
func (srv *orderService) notifyParties(ctx context.Context, order *entity.Order, buyerText, sellerText string) {
	if err := srv.notifier.Publish(ctx, order.BuyerID, buyerText); err != nil {
		srv.logger.Warn("Failed to notify buyer", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
	if err := srv.notifier.Publish(ctx, order.SellerID, sellerText); err != nil {
		srv.logger.Warn("Failed to notify seller", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

// publishEvent emits an order lifecycle event; publish failures are logged
// and swallowed for the same reason as notification failures.
func (srv *orderService) publishEvent(ctx context.Context, eventType string, order *entity.Order, reason string) {
	event := &service.OrderEvent{
		EventID:    uuid.New().String(),
		EventType:  eventType,
		OccurredAt: time.Now(),
		OrderID:    order.ID.String(),
		ProductID:  order.ProductID.String(),
		BuyerID:    order.BuyerID.String(),
		SellerID:   order.SellerID.String(),
		PriceCents: order.PriceCents,
		Reason:     reason,
	}
	if err := srv.publisher.PublishOrderEvent(ctx, event); err != nil {
		srv.logger.Warn("Failed to publish order event",
			slog.String("eventType", eventType),
			slog.Any("orderID", order.ID),
			slog.Any("error", err),
		)
	}
}

func formatPrice(cents int64) string {
	return fmt.Sprintf("$%d.%02d", cents/100, cents%100)
}
