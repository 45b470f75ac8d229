package commands_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/treasury"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr(id kernel.UUID) *kernel.UUID {
	return &id
}

func testDetail(t *testing.T) order.Detail {
	t.Helper()
	detail, err := order.NewDetail("Sneakers", "white", "42", "https://shop.example/item/1", "",
		order.Destination{City: "Erbil", Address: "Street 60"})
	require.NoError(t, err)
	return detail
}

// testOrder restores an order at the given position priced at a total of
// 150.00 with a 50.00 deposit.
func testOrder(t *testing.T, position order.Position, tweak func(*order.Snapshot)) *order.Order {
	t.Helper()
	now := time.Now().UTC()
	s := order.Snapshot{
		ID:         kernel.NewUUID(),
		CustomerID: kernel.NewUUID(),
		Position:   position,
		Detail:     testDetail(t),
		Pricing: order.Pricing{
			ForeignPrice:  d("100"),
			Quantity:      1,
			ExchangeRate:  d("1.5"),
			CommissionPct: d("0"),
			DepositPct:    d("33.33"),
			LocalPrice:    d("150"),
			Total:         d("150"),
			Deposit:       d("50"),
		},
		Invoice:   order.NewInvoiceShell(kernel.NewUUID()),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if tweak != nil {
		tweak(&s)
	}
	o, err := order.Restore(s)
	require.NoError(t, err)
	return o
}

func testCart(t *testing.T, count int, available bool) *cart.Cart {
	t.Helper()
	c, err := cart.RestoreCart(kernel.NewUUID(), count, available, time.Now().UTC())
	require.NoError(t, err)
	return c
}

func testBox(t *testing.T, count int, available bool) *box.Box {
	t.Helper()
	b, err := box.RestoreBox(kernel.NewUUID(), 7, count, available, time.Now().UTC())
	require.NoError(t, err)
	return b
}

func testCollection(t *testing.T, status collection.Status, createdAt time.Time) *collection.Collection {
	t.Helper()
	c, err := collection.RestoreCollection(kernel.NewUUID(), kernel.NewUUID(), status, d("50"), d("150"), createdAt)
	require.NoError(t, err)
	return c
}

func testLedger(t *testing.T, kind treasury.Kind, balances map[treasury.SubAccount]decimal.Decimal) *treasury.Ledger {
	t.Helper()
	l, err := treasury.RestoreLedger(kind, balances, time.Now().UTC())
	require.NoError(t, err)
	return l
}
