package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var settledAt = time.Date(2026, 4, 10, 9, 30, 0, 0, time.UTC)

func orderUnderPurchase(t *testing.T) *order.Order {
	t.Helper()
	detail, err := order.NewDetail("Watch", "", "", "https://shop.example/watch", "", order.Destination{City: "Basra"})
	require.NoError(t, err)
	pricing, err := services.Quote(services.QuoteInput{
		ForeignPrice:  d("100"),
		Quantity:      1,
		ExchangeRate:  d("1.5"),
		CommissionPct: d("10"),
		DepositPct:    d("20"),
	})
	require.NoError(t, err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, detail, pricing, settledAt)
	require.NoError(t, err)
	require.NoError(t, o.JoinCart(kernel.NewUUID(), settledAt))
	return o
}

func foreign(t *testing.T, cash, card string) *treasury.Ledger {
	t.Helper()
	l, err := treasury.RestoreLedger(treasury.KindForeign, map[treasury.SubAccount]decimal.Decimal{
		treasury.Cash: d(cash),
		treasury.Card: d(card),
	}, settledAt)
	require.NoError(t, err)
	return l
}

func TestPurchaseSettler_Settle(t *testing.T) {
	settler := services.NewPurchaseSettler()
	cashTerms := services.PurchaseTerms{PaymentMethod: order.PaymentCash, PurchaseMethod: order.PurchaseOnline}

	t.Run("should debit cash and confirm", func(t *testing.T) {
		o := orderUnderPurchase(t)
		l := foreign(t, "500", "0")

		paid, err := settler.Settle(o, l, cashTerms, settledAt)

		require.NoError(t, err)
		assert.Equal(t, "132.00", paid.StringFixed(2))
		cash, _ := l.Balance(treasury.Cash)
		assert.Equal(t, "368.00", cash.StringFixed(2))
		assert.Equal(t, order.Purchased, o.Position())
		assert.Equal(t, "132.00", o.Invoice().CashAmount.StringFixed(2))
		assert.True(t, kernel.SameOptional(o.CartID(), o.Invoice().CartID))
		require.Len(t, l.PendingMovements(), 1)
		assert.Equal(t, treasury.ReasonPurchase, l.PendingMovements()[0].Reason)
	})

	t.Run("should debit card with discount and expenses", func(t *testing.T) {
		o := orderUnderPurchase(t)
		l := foreign(t, "0", "200")
		terms := services.PurchaseTerms{
			PaymentMethod:  order.PaymentCard,
			PurchaseMethod: order.PurchaseInPerson,
			Discount:       d("12"),
			Expenses:       d("5"),
		}

		paid, err := settler.Settle(o, l, terms, settledAt)

		require.NoError(t, err)
		assert.Equal(t, "125.00", paid.StringFixed(2))
		card, _ := l.Balance(treasury.Card)
		assert.Equal(t, "75.00", card.StringFixed(2))
		assert.Equal(t, "125.00", o.Invoice().CardPaidAmount.StringFixed(2))
		assert.True(t, o.Invoice().CashAmount.IsZero())
	})

	t.Run("should fail on insufficient funds without side effects", func(t *testing.T) {
		o := orderUnderPurchase(t)
		l := foreign(t, "100", "1000")

		_, err := settler.Settle(o, l, cashTerms, settledAt)

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		cash, _ := l.Balance(treasury.Cash)
		assert.Equal(t, "100.00", cash.StringFixed(2))
		assert.Equal(t, order.UnderPurchase, o.Position())
		assert.False(t, o.Invoice().IsConfirmed())
	})

	t.Run("should conflict for an order not under purchase", func(t *testing.T) {
		o := orderUnderPurchase(t)
		require.NoError(t, o.AdvanceTo(order.Purchased, settledAt))
		l := foreign(t, "500", "0")

		_, err := settler.Settle(o, l, cashTerms, settledAt)

		assert.ErrorIs(t, err, errs.ErrConflict)
		assert.Empty(t, l.PendingMovements())
	})

	t.Run("should reject negative amount to pay", func(t *testing.T) {
		o := orderUnderPurchase(t)
		l := foreign(t, "500", "0")
		terms := cashTerms
		terms.Discount = d("200")

		_, err := settler.Settle(o, l, terms, settledAt)

		assert.Equal(t, errs.KindValidation, errs.KindOf(err))
		assert.Equal(t, order.UnderPurchase, o.Position())
	})

	t.Run("should reject unknown payment method", func(t *testing.T) {
		o := orderUnderPurchase(t)
		terms := cashTerms
		terms.PaymentMethod = "barter"

		_, err := settler.Settle(o, foreign(t, "500", "0"), terms, settledAt)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestCurrencyConverter_Convert(t *testing.T) {
	converter := services.NewCurrencyConverter()
	newLocal := func(main string) *treasury.Ledger {
		l, err := treasury.RestoreLedger(treasury.KindLocal, map[treasury.SubAccount]decimal.Decimal{treasury.Main: d(main)}, settledAt)
		require.NoError(t, err)
		return l
	}

	t.Run("should move local into foreign cash", func(t *testing.T) {
		local, f := newLocal("1500"), foreign(t, "10", "0")

		credited, err := converter.Convert(local, f, d("1000"), d("0.00068"), settledAt)

		require.NoError(t, err)
		assert.Equal(t, "0.68", credited.StringFixed(2))
		main, _ := local.Balance(treasury.Main)
		cash, _ := f.Balance(treasury.Cash)
		assert.Equal(t, "500.00", main.StringFixed(2))
		assert.Equal(t, "10.68", cash.StringFixed(2))
	})

	t.Run("should leave both ledgers untouched when local is short", func(t *testing.T) {
		local, f := newLocal("50"), foreign(t, "10", "0")

		_, err := converter.Convert(local, f, d("100"), d("2"), settledAt)

		require.ErrorIs(t, err, errs.ErrInsufficientFunds)
		assert.Empty(t, local.PendingMovements())
		assert.Empty(t, f.PendingMovements())
	})

	t.Run("should reject non-positive rate", func(t *testing.T) {
		_, err := converter.Convert(newLocal("50"), foreign(t, "0", "0"), d("10"), decimal.Zero, settledAt)

		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject swapped ledgers", func(t *testing.T) {
		_, err := converter.Convert(foreign(t, "0", "0"), newLocal("50"), d("10"), d("1"), settledAt)

		assert.Error(t, err)
	})
}
