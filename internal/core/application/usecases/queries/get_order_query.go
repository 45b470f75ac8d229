package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New("GetOrderQuery must be created via NewGetOrderQuery constructor")

// GetOrderQuery retrieves one order with its product detail, pricing snapshot
// and invoice.
//
// Example:
//
//	query, err := NewGetOrderQuery(orderID)
//	if err != nil {
//	    return err
//	}
//	view, err := handler.Handle(ctx, query)
type GetOrderQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(orderID kernel.UUID) (GetOrderQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

// GetOrderQueryResponse is the read model of one order.
type GetOrderQueryResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	Position     string
	PositionCode int
	CartID       *kernel.UUID
	BoxID        *kernel.UUID
	CollectionID *kernel.UUID
	Archived     bool

	Title   string
	Color   string
	Size    string
	Link    string
	Image   string
	City    string
	Address string

	ForeignPrice decimal.Decimal
	Quantity     int
	ExchangeRate decimal.Decimal
	LocalPrice   decimal.Decimal
	Commission   decimal.Decimal
	Total        decimal.Decimal
	Deposit      decimal.Decimal

	Invoice InvoiceView

	CreatedAt time.Time
	UpdatedAt time.Time
}

// InvoiceView is the invoice part of an order read model. ConfirmedAt is nil
// until the purchase is confirmed.
type InvoiceView struct {
	ID             kernel.UUID
	ItemPrice      decimal.Decimal
	Quantity       int
	Total          decimal.Decimal
	PaymentMethod  string
	PurchaseMethod string
	Discount       decimal.Decimal
	Expenses       decimal.Decimal
	CashAmount     decimal.Decimal
	CardPaidAmount decimal.Decimal
	ConfirmedAt    *time.Time
}
