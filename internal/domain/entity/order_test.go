package entity

import (
	"testing"

	domainerrors "market/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder() (*Order, uuid.UUID) {
	product := newTestProduct()
	buyerID := uuid.New()

	return NewOrder(product, buyerID), buyerID
}

func TestNewOrder_CopiesPrice(t *testing.T) {
	product := newTestProduct()
	order := NewOrder(product, uuid.New())

	assert.Equal(t, OrderStatusPending, order.Status)
	assert.Equal(t, product.PriceCents, order.PriceCents)
	assert.Equal(t, product.SellerID, order.SellerID)

	// Later listing edits never touch the agreed price.
	product.PriceCents = 99999
	assert.Equal(t, int64(12000), order.PriceCents)
}

func TestOrder_Lifecycle_HappyPath(t *testing.T) {
	order, _ := newTestOrder()

	require.NoError(t, order.Confirm())
	assert.Equal(t, OrderStatusConfirmed, order.Status)
	require.NotNil(t, order.ConfirmedAt)

	require.NoError(t, order.Complete())
	assert.Equal(t, OrderStatusCompleted, order.Status)
	require.NotNil(t, order.CompletedAt)
	assert.True(t, order.CanBeReviewed())
}

func TestOrder_Complete_RequiresConfirmation(t *testing.T) {
	order, _ := newTestOrder()

	err := order.Complete()
	require.Error(t, err)
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindInvalidState))
}

func TestOrder_Cancel_FromPendingAndConfirmed(t *testing.T) {
	pending, _ := newTestOrder()
	require.NoError(t, pending.Cancel("changed my mind"))
	assert.Equal(t, OrderStatusCancelled, pending.Status)
	assert.Equal(t, "changed my mind", pending.CancelReason)
	require.NotNil(t, pending.CompletedAt)

	confirmed, _ := newTestOrder()
	require.NoError(t, confirmed.Confirm())
	require.NoError(t, confirmed.Cancel("item damaged"))
	assert.Equal(t, OrderStatusCancelled, confirmed.Status)
}

func TestOrder_TerminalStatesRejectEverything(t *testing.T) {
	completed, _ := newTestOrder()
	require.NoError(t, completed.Confirm())
	require.NoError(t, completed.Complete())
	assert.Error(t, completed.Confirm())
	assert.Error(t, completed.Cancel("too late"))

	cancelled, _ := newTestOrder()
	require.NoError(t, cancelled.Cancel("early out"))
	assert.Error(t, cancelled.Confirm())
	assert.Error(t, cancelled.Complete())
	assert.Error(t, cancelled.Cancel("again"))
	assert.False(t, cancelled.CanBeReviewed())
}

func TestOrder_IsPartyAndCounterparty(t *testing.T) {
	order, buyerID := newTestOrder()
	outsider := uuid.New()

	assert.True(t, order.IsParty(buyerID))
	assert.True(t, order.IsParty(order.SellerID))
	assert.False(t, order.IsParty(outsider))

	assert.Equal(t, order.SellerID, order.Counterparty(buyerID))
	assert.Equal(t, buyerID, order.Counterparty(order.SellerID))
}

func TestCanOrderTransition(t *testing.T) {
	assert.True(t, CanOrderTransition(OrderStatusPending, OrderStatusConfirmed))
	assert.True(t, CanOrderTransition(OrderStatusPending, OrderStatusCancelled))
	assert.True(t, CanOrderTransition(OrderStatusConfirmed, OrderStatusCompleted))
	assert.True(t, CanOrderTransition(OrderStatusConfirmed, OrderStatusCancelled))

	assert.False(t, CanOrderTransition(OrderStatusPending, OrderStatusCompleted))
	assert.False(t, CanOrderTransition(OrderStatusCompleted, OrderStatusCancelled))
	assert.False(t, CanOrderTransition(OrderStatusCancelled, OrderStatusPending))
}
