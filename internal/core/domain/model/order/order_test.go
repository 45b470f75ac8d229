package order_test

import (
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func validDetail(t *testing.T) order.Detail {
	t.Helper()
	d, err := order.NewDetail("Sneakers", "white", "42", "https://shop.example/item/1", "", order.Destination{City: "Erbil", Address: "60m street"})
	require.NoError(t, err)
	return d
}

func quotedPricing() order.Pricing {
	return order.Pricing{
		ForeignPrice:  decimal.RequireFromString("100"),
		Quantity:      1,
		ExchangeRate:  decimal.RequireFromString("1.5"),
		CommissionPct: decimal.RequireFromString("10"),
		DepositPct:    decimal.RequireFromString("20"),
		LocalPrice:    decimal.RequireFromString("150"),
		Commission:    decimal.RequireFromString("15"),
		Total:         decimal.RequireFromString("165"),
		Deposit:       decimal.RequireFromString("33"),
	}
}

func newOrder(t *testing.T) *order.Order {
	t.Helper()
	collectionID := kernel.NewUUID()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), &collectionID, validDetail(t), quotedPricing(), now)
	require.NoError(t, err)
	return o
}

func orderAt(t *testing.T, p order.Position) *order.Order {
	t.Helper()
	o := newOrder(t)
	if p != order.New {
		require.NoError(t, o.AdvanceTo(p, now))
	}
	return o
}

func TestNewOrder(t *testing.T) {
	t.Run("should create order at NEW with empty invoice", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.Validate())
		assert.Equal(t, order.New, o.Position())
		assert.Nil(t, o.CartID())
		assert.Nil(t, o.BoxID())
		assert.NotNil(t, o.CollectionID())
		assert.False(t, o.IsArchived())
		assert.False(t, o.Invoice().IsConfirmed())
		assert.True(t, o.Invoice().CashAmount.IsZero())
		assert.True(t, o.Invoice().CardPaidAmount.IsZero())
		assert.NoError(t, o.Invoice().ID.Validate())
	})

	t.Run("should report every invalid argument", func(t *testing.T) {
		var invalidID, invalidCustomer kernel.UUID

		o, err := order.NewOrder(invalidID, invalidCustomer, nil, order.Detail{}, order.Pricing{Quantity: 0, ForeignPrice: decimal.NewFromInt(5)}, now)

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "customer id")
		assert.ErrorIs(t, err, order.ErrDetailIsNotConstructed)
		assert.Contains(t, err.Error(), "quantity")
	})

	t.Run("should accept an unquoted order", func(t *testing.T) {
		o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, validDetail(t), order.Pricing{}, now)

		require.NoError(t, err)
		assert.False(t, o.Pricing().IsQuoted())
	})
}

func TestOrder_Validate(t *testing.T) {
	var o order.Order
	assert.ErrorIs(t, o.Validate(), order.ErrOrderIsNotConstructed)

	var nilOrder *order.Order
	assert.ErrorIs(t, nilOrder.Validate(), order.ErrOrderIsNotConstructed)
}

func TestRestore(t *testing.T) {
	original := newOrder(t)
	require.NoError(t, original.JoinCart(kernel.NewUUID(), now))

	restored, err := order.Restore(original.Snapshot())

	require.NoError(t, err)
	assert.True(t, restored.IsEqual(original))
	assert.Equal(t, original.Snapshot(), restored.Snapshot())

	t.Run("should reject unknown position code", func(t *testing.T) {
		s := original.Snapshot()
		s.Position = order.Position(99)

		_, err := order.Restore(s)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestOrder_AdvanceTo(t *testing.T) {
	t.Run("should write any valid position", func(t *testing.T) {
		o := newOrder(t)

		require.NoError(t, o.AdvanceTo(order.ReadyForDelivery, now))
		assert.Equal(t, order.ReadyForDelivery, o.Position())

		require.NoError(t, o.AdvanceTo(order.Preparing, now))
		assert.Equal(t, order.Preparing, o.Position())
	})

	t.Run("should reject invalid position", func(t *testing.T) {
		o := newOrder(t)

		err := o.AdvanceTo(order.Position(42), now)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, order.New, o.Position())
	})

	t.Run("should route cancellation through Cancel", func(t *testing.T) {
		o := newOrder(t)

		err := o.AdvanceTo(order.Cancelled, now)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.False(t, o.IsArchived())
	})

	t.Run("should reject archived order", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.Cancel(now)
		require.NoError(t, err)

		err = o.AdvanceTo(order.Purchased, now)

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Equal(t, order.Cancelled, o.Position())
	})
}

func TestOrder_AmountToPay(t *testing.T) {
	o := newOrder(t)

	tests := []struct {
		name     string
		discount string
		expenses string
		want     string
		wantErr  error
	}{
		{"plain balance", "0", "0", "132", nil},
		{"discount and expenses", "10", "2.5", "124.5", nil},
		{"discount consumes balance", "132", "0", "0", nil},
		{"negative result", "140", "0", "", errs.ErrValueIsInvalid},
		{"negative discount", "-1", "0", "", errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := o.AmountToPay(decimal.RequireFromString(tt.discount), decimal.RequireFromString(tt.expenses))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestOrder_ConfirmPurchase(t *testing.T) {
	settlement := func(method order.PaymentMethod) order.Settlement {
		cartID := kernel.NewUUID()
		return order.Settlement{
			ItemPrice:      decimal.RequireFromString("100"),
			Quantity:       1,
			Total:          decimal.RequireFromString("165"),
			AmountPaid:     decimal.RequireFromString("132"),
			PaymentMethod:  method,
			PurchaseMethod: order.PurchaseOnline,
			CartID:         &cartID,
			ConfirmedAt:    now.Add(time.Hour),
		}
	}

	t.Run("should populate invoice for cash payment", func(t *testing.T) {
		o := orderAt(t, order.UnderPurchase)
		invoiceID := o.Invoice().ID

		require.NoError(t, o.ConfirmPurchase(settlement(order.PaymentCash)))

		inv := o.Invoice()
		assert.Equal(t, order.Purchased, o.Position())
		assert.True(t, inv.ID.IsEqual(invoiceID))
		assert.True(t, inv.IsConfirmed())
		assert.True(t, decimal.RequireFromString("132").Equal(inv.CashAmount))
		assert.True(t, inv.CardPaidAmount.IsZero())
		assert.True(t, decimal.RequireFromString("132").Equal(inv.SettledAmount()))
	})

	t.Run("should populate invoice for card payment", func(t *testing.T) {
		o := orderAt(t, order.UnderPurchase)

		require.NoError(t, o.ConfirmPurchase(settlement(order.PaymentCard)))

		assert.True(t, o.Invoice().CashAmount.IsZero())
		assert.True(t, decimal.RequireFromString("132").Equal(o.Invoice().CardPaidAmount))
	})

	t.Run("should conflict outside UNDER_PURCHASE", func(t *testing.T) {
		for _, p := range []order.Position{order.New, order.Purchased, order.ReceivedAbroad} {
			o := orderAt(t, p)

			err := o.ConfirmPurchase(settlement(order.PaymentCash))

			assert.ErrorIs(t, err, errs.ErrConflict, p.String())
			assert.False(t, o.Invoice().IsConfirmed())
		}
	})

	t.Run("should reject unknown payment method", func(t *testing.T) {
		o := orderAt(t, order.UnderPurchase)

		err := o.ConfirmPurchase(settlement("cheque"))

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, order.UnderPurchase, o.Position())
	})
}

func TestOrder_Cancel(t *testing.T) {
	t.Run("should detach pre-purchase order from its cart", func(t *testing.T) {
		o := newOrder(t)
		cartID := kernel.NewUUID()
		require.NoError(t, o.JoinCart(cartID, now))

		d, err := o.Cancel(now)

		require.NoError(t, err)
		require.NotNil(t, d.CartID)
		assert.True(t, d.CartID.IsEqual(cartID))
		assert.Nil(t, d.BoxID)
		assert.Nil(t, o.CartID())
		assert.True(t, o.IsArchived())
		assert.Equal(t, order.Cancelled, o.Position())
	})

	t.Run("should keep purchased order in cart and leave its box", func(t *testing.T) {
		o := newOrder(t)
		cartID, boxID := kernel.NewUUID(), kernel.NewUUID()
		require.NoError(t, o.JoinCart(cartID, now))
		require.NoError(t, o.AdvanceTo(order.Purchased, now))
		require.NoError(t, o.JoinBox(boxID, now))

		d, err := o.Cancel(now)

		require.NoError(t, err)
		assert.Nil(t, d.CartID)
		require.NotNil(t, d.BoxID)
		assert.True(t, d.BoxID.IsEqual(boxID))
		assert.NotNil(t, o.CartID())
		assert.Nil(t, o.BoxID())
	})

	t.Run("should conflict when cancelled twice", func(t *testing.T) {
		o := newOrder(t)
		_, err := o.Cancel(now)
		require.NoError(t, err)

		_, err = o.Cancel(now)

		assert.ErrorIs(t, err, errs.ErrConflict)
	})
}

func TestOrder_CartMembership(t *testing.T) {
	t.Run("should join and leave", func(t *testing.T) {
		o := newOrder(t)
		cartID := kernel.NewUUID()

		require.NoError(t, o.JoinCart(cartID, now))
		assert.Equal(t, order.UnderPurchase, o.Position())
		assert.True(t, kernel.SameOptional(o.CartID(), &cartID))

		require.NoError(t, o.LeaveCart(cartID, now))
		assert.Equal(t, order.New, o.Position())
		assert.Nil(t, o.CartID())
	})

	t.Run("should refuse a second cart", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.JoinCart(kernel.NewUUID(), now))

		assert.ErrorIs(t, o.JoinCart(kernel.NewUUID(), now), errs.ErrConflict)
	})

	t.Run("should refuse purchased order", func(t *testing.T) {
		o := orderAt(t, order.Purchased)

		assert.ErrorIs(t, o.JoinCart(kernel.NewUUID(), now), errs.ErrConflict)
	})

	t.Run("should refuse to leave foreign cart", func(t *testing.T) {
		o := newOrder(t)
		require.NoError(t, o.JoinCart(kernel.NewUUID(), now))

		assert.ErrorIs(t, o.LeaveCart(kernel.NewUUID(), now), errs.ErrConflict)
	})

	t.Run("should keep purchased order in its cart", func(t *testing.T) {
		o := newOrder(t)
		cartID := kernel.NewUUID()
		require.NoError(t, o.JoinCart(cartID, now))
		require.NoError(t, o.AdvanceTo(order.Purchased, now))

		assert.ErrorIs(t, o.LeaveCart(cartID, now), errs.ErrConflict)
	})
}

func TestOrder_BoxMembership(t *testing.T) {
	t.Run("should box purchased and received orders", func(t *testing.T) {
		for _, p := range []order.Position{order.Purchased, order.ReceivedAbroad} {
			o := orderAt(t, p)
			boxID := kernel.NewUUID()

			require.NoError(t, o.JoinBox(boxID, now))
			assert.True(t, kernel.SameOptional(o.BoxID(), &boxID))
			require.NoError(t, o.LeaveBox(boxID, now))
			assert.Nil(t, o.BoxID())
		}
	})

	t.Run("should refuse orders outside boxable range", func(t *testing.T) {
		for _, p := range []order.Position{order.New, order.UnderPurchase, order.Shipping, order.Delivered} {
			o := orderAt(t, p)

			err := o.JoinBox(kernel.NewUUID(), now)

			assert.ErrorIs(t, err, errs.ErrConflict, p.String())
		}
	})

	t.Run("should refuse double boxing", func(t *testing.T) {
		o := orderAt(t, order.Purchased)
		require.NoError(t, o.JoinBox(kernel.NewUUID(), now))

		assert.ErrorIs(t, o.JoinBox(kernel.NewUUID(), now), errs.ErrConflict)
	})

	t.Run("should keep shipping order in its box", func(t *testing.T) {
		o := orderAt(t, order.Purchased)
		boxID := kernel.NewUUID()
		require.NoError(t, o.JoinBox(boxID, now))
		require.NoError(t, o.AdvanceTo(order.Shipping, now))

		assert.ErrorIs(t, o.LeaveBox(boxID, now), errs.ErrConflict)
	})
}

func TestOrder_SendToDelivery(t *testing.T) {
	o := orderAt(t, order.ReadyForDelivery)
	require.NoError(t, o.SendToDelivery(now))
	assert.Equal(t, order.OutForDelivery, o.Position())

	err := orderAt(t, order.Preparing).SendToDelivery(now)
	var conflict *errs.ConflictError
	assert.True(t, errors.As(err, &conflict))
}
