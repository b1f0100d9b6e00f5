package entity

import (
	"testing"

	domainerrors "market/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct() *Product {
	return NewProduct(uuid.New(), "Used camera", "Light scratches", 12000, "electronics", "used - good")
}

func TestProduct_Lifecycle_HappyPath(t *testing.T) {
	p := newTestProduct()
	assert.Equal(t, ProductStatusAvailable, p.Status)
	assert.True(t, p.IsAvailable())

	require.NoError(t, p.Reserve())
	assert.Equal(t, ProductStatusReserved, p.Status)
	assert.False(t, p.IsAvailable())

	require.NoError(t, p.MarkSold())
	assert.Equal(t, ProductStatusSold, p.Status)
}

func TestProduct_Reserve_OnlyFromAvailable(t *testing.T) {
	p := newTestProduct()
	require.NoError(t, p.Reserve())

	err := p.Reserve()
	require.Error(t, err)
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindInvalidState))
}

func TestProduct_CancelReservation(t *testing.T) {
	p := newTestProduct()
	require.NoError(t, p.Reserve())

	p.CancelReservation()
	assert.Equal(t, ProductStatusAvailable, p.Status)

	// Outside RESERVED the call changes nothing.
	require.NoError(t, p.Reserve())
	require.NoError(t, p.MarkSold())
	p.CancelReservation()
	assert.Equal(t, ProductStatusSold, p.Status)
}

func TestProduct_SoldIsTerminal(t *testing.T) {
	p := newTestProduct()
	require.NoError(t, p.Reserve())
	require.NoError(t, p.MarkSold())

	assert.Error(t, p.Reserve())
	assert.Error(t, p.Remove())
	assert.Error(t, p.MarkSold())
}

func TestProduct_RemoveAndRelist(t *testing.T) {
	p := newTestProduct()
	require.NoError(t, p.Remove())
	assert.Equal(t, ProductStatusRemoved, p.Status)

	// A removed product cannot be reserved or sold.
	assert.Error(t, p.Reserve())
	assert.Error(t, p.MarkSold())

	p.Relist()
	assert.Equal(t, ProductStatusAvailable, p.Status)

	// Relist outside REMOVED is a no-op.
	p.Relist()
	assert.Equal(t, ProductStatusAvailable, p.Status)
}

func TestProduct_Remove_OnlyFromAvailable(t *testing.T) {
	p := newTestProduct()
	require.NoError(t, p.Reserve())

	err := p.Remove()
	require.Error(t, err)
	assert.True(t, domainerrors.IsKind(err, domainerrors.KindInvalidState))
}

func TestCanProductTransition(t *testing.T) {
	assert.True(t, CanProductTransition(ProductStatusAvailable, ProductStatusReserved))
	assert.True(t, CanProductTransition(ProductStatusAvailable, ProductStatusRemoved))
	assert.True(t, CanProductTransition(ProductStatusReserved, ProductStatusSold))
	assert.True(t, CanProductTransition(ProductStatusReserved, ProductStatusAvailable))
	assert.True(t, CanProductTransition(ProductStatusRemoved, ProductStatusAvailable))

	assert.False(t, CanProductTransition(ProductStatusAvailable, ProductStatusSold))
	assert.False(t, CanProductTransition(ProductStatusRemoved, ProductStatusReserved))
	assert.False(t, CanProductTransition(ProductStatusSold, ProductStatusAvailable))
	assert.False(t, CanProductTransition(ProductStatusSold, ProductStatusReserved))
}
