package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCartReportQueryIsNotConstructed = errors.New("GetCartReportQuery must be created via NewGetCartReportQuery constructor")

// GetCartReportQuery lists the invoices purchased under one cart. Invoices
// keep their cart reference after the order leaves the cart.
type GetCartReportQuery struct {
	cartID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCartReportQuery(cartID kernel.UUID) (GetCartReportQuery, error) {
	if err := cartID.Validate(); err != nil {
		return GetCartReportQuery{}, err
	}
	return GetCartReportQuery{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCartReportQuery) Validate() error {
	return q.guard.Validate(ErrGetCartReportQueryIsNotConstructed)
}

func (q GetCartReportQuery) CartID() kernel.UUID { return q.cartID }

type GetCartReportQueryResponse struct {
	CartID      kernel.UUID
	OrdersCount int
	IsAvailable bool
	CreatedAt   time.Time
	Invoices    []CartInvoiceView
	TotalPaid   decimal.Decimal
}

type CartInvoiceView struct {
	OrderID        kernel.UUID
	Title          string
	ItemPrice      decimal.Decimal
	Quantity       int
	Total          decimal.Decimal
	PaymentMethod  string
	PurchaseMethod string
	Paid           decimal.Decimal
	ConfirmedAt    time.Time
}
