package cart_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCart(t *testing.T) {
	c, err := cart.NewCart(kernel.NewUUID(), time.Now())

	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.True(t, c.IsAvailable())
	assert.Zero(t, c.OrdersCount())

	_, err = cart.NewCart(kernel.UUID{}, time.Now())
	assert.Error(t, err)

	var zero cart.Cart
	assert.ErrorIs(t, zero.Validate(), cart.ErrCartIsNotConstructed)
}

func TestRestoreCart_RejectsNegativeCounter(t *testing.T) {
	_, err := cart.RestoreCart(kernel.NewUUID(), -1, true, time.Now())

	assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestCart_AdmitRelease(t *testing.T) {
	c, _ := cart.NewCart(kernel.NewUUID(), time.Now())

	require.NoError(t, c.Admit())
	require.NoError(t, c.Admit())
	assert.Equal(t, 2, c.OrdersCount())

	c.Release()
	c.Release()
	c.Release()
	assert.Zero(t, c.OrdersCount())

	closed, _ := cart.RestoreCart(kernel.NewUUID(), 3, false, time.Now())
	assert.ErrorIs(t, closed.Admit(), errs.ErrConflict)
	assert.Equal(t, 3, closed.OrdersCount())
}

func TestCart_CloseIfComplete(t *testing.T) {
	tests := []struct {
		name    string
		members []order.Position
		closes  bool
	}{
		{"empty cart stays open", nil, false},
		{"one member still under purchase", []order.Position{order.Purchased, order.UnderPurchase}, false},
		{"all purchased", []order.Position{order.Purchased, order.Purchased}, true},
		{"purchased and moved on", []order.Position{order.Purchased, order.Shipping, order.Delivered}, true},
		{"cancelled after purchase is ignored", []order.Position{order.Purchased, order.Cancelled}, true},
		{"only cancelled members", []order.Position{order.Cancelled}, false},
		{"new member", []order.Position{order.New}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := cart.RestoreCart(kernel.NewUUID(), len(tt.members), true, time.Now())

			closed := c.CloseIfComplete(tt.members)

			assert.Equal(t, tt.closes, closed)
			assert.Equal(t, !tt.closes, c.IsAvailable())
		})
	}

	t.Run("closed cart is never reopened or reclosed", func(t *testing.T) {
		c, _ := cart.RestoreCart(kernel.NewUUID(), 1, false, time.Now())

		assert.False(t, c.CloseIfComplete([]order.Position{order.Purchased}))
		assert.False(t, c.IsAvailable())
	})
}

func TestCart_RepairCount(t *testing.T) {
	c, _ := cart.RestoreCart(kernel.NewUUID(), 5, true, time.Now())

	assert.True(t, c.RepairCount(3))
	assert.Equal(t, 3, c.OrdersCount())
	assert.False(t, c.RepairCount(3))
}
