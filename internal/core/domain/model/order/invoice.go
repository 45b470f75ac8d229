package order

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PaymentMethod selects the foreign treasury sub-balance that funds a purchase.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

func (m PaymentMethod) Validate() error {
	if m != PaymentCash && m != PaymentCard {
		return errs.NewValueIsInvalidErrorWithCause("payment method", fmt.Errorf("%q is not cash or card", string(m)))
	}
	return nil
}

// PurchaseMethod records how the buyer acquired the product.
type PurchaseMethod string

const (
	PurchaseInPerson PurchaseMethod = "in_person"
	PurchaseOnline   PurchaseMethod = "online"
)

func (m PurchaseMethod) Validate() error {
	if m != PurchaseInPerson && m != PurchaseOnline {
		return errs.NewValueIsInvalidErrorWithCause("purchase method", fmt.Errorf("%q is not in_person or online", string(m)))
	}
	return nil
}

// Settlement carries everything recorded on the invoice when the purchase
// is confirmed.
type Settlement struct {
	ItemPrice      decimal.Decimal
	Quantity       int
	Total          decimal.Decimal
	AmountPaid     decimal.Decimal
	PaymentMethod  PaymentMethod
	PurchaseMethod PurchaseMethod
	Discount       decimal.Decimal
	Expenses       decimal.Decimal
	CartID         *kernel.UUID
	ConfirmedAt    time.Time
}

// Invoice is the financial record of one order. It exists from order
// creation as an empty shell and is populated in place on confirmation.
// Once confirmed, CashAmount + CardPaidAmount equals the settled amount.
type Invoice struct {
	ID             kernel.UUID
	ItemPrice      decimal.Decimal
	Quantity       int
	Total          decimal.Decimal
	PaymentMethod  PaymentMethod
	PurchaseMethod PurchaseMethod
	Discount       decimal.Decimal
	Expenses       decimal.Decimal
	CashAmount     decimal.Decimal
	CardPaidAmount decimal.Decimal
	CartID         *kernel.UUID
	ConfirmedAt    *time.Time
}

// NewInvoiceShell returns the empty invoice attached to a new order.
func NewInvoiceShell(id kernel.UUID) Invoice {
	return Invoice{ID: id}
}

func (i Invoice) IsConfirmed() bool {
	return i.ConfirmedAt != nil
}

// SettledAmount is what the treasury paid for the purchase.
func (i Invoice) SettledAmount() decimal.Decimal {
	return i.CashAmount.Add(i.CardPaidAmount)
}

func (i *Invoice) confirm(s Settlement) error {
	if i.IsConfirmed() {
		return errs.NewConflictError("invoice", "invoice is already confirmed")
	}
	if err := s.PaymentMethod.Validate(); err != nil {
		return err
	}
	if err := s.PurchaseMethod.Validate(); err != nil {
		return err
	}
	if err := kernel.ValidateNonNegativeAmount("amount to pay", s.AmountPaid); err != nil {
		return err
	}

	i.ItemPrice = s.ItemPrice
	i.Quantity = s.Quantity
	i.Total = s.Total
	i.PaymentMethod = s.PaymentMethod
	i.PurchaseMethod = s.PurchaseMethod
	i.Discount = s.Discount
	i.Expenses = s.Expenses
	i.CartID = s.CartID
	confirmedAt := s.ConfirmedAt
	i.ConfirmedAt = &confirmedAt

	switch s.PaymentMethod {
	case PaymentCash:
		i.CashAmount, i.CardPaidAmount = s.AmountPaid, decimal.Zero
	case PaymentCard:
		i.CashAmount, i.CardPaidAmount = decimal.Zero, s.AmountPaid
	}
	return nil
}
