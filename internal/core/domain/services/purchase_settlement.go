package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// PurchaseTerms are the operator's inputs when confirming a purchase.
type PurchaseTerms struct {
	PaymentMethod  order.PaymentMethod
	PurchaseMethod order.PurchaseMethod
	Discount       decimal.Decimal
	Expenses       decimal.Decimal
}

func (t PurchaseTerms) Validate() error {
	return errors.Join(t.PaymentMethod.Validate(), t.PurchaseMethod.Validate())
}

// FundingAccount maps a payment method onto the foreign sub-balance it draws from.
func FundingAccount(method order.PaymentMethod) (treasury.SubAccount, error) {
	switch method {
	case order.PaymentCash:
		return treasury.Cash, nil
	case order.PaymentCard:
		return treasury.Card, nil
	default:
		return "", method.Validate()
	}
}

// PurchaseSettler pays for an order out of the foreign ledger and records the
// settlement on its invoice.
//
// Business rules:
//   - the order must be UnderPurchase and not archived
//   - amount to pay = total - deposit - discount + expenses, never negative
//   - the funding sub-balance must cover the whole amount; nothing is debited otherwise
//
// Settle mutates both aggregates in memory only. The caller persists them in
// a single transaction with the ledger row locked.
type PurchaseSettler struct{}

func NewPurchaseSettler() PurchaseSettler {
	return PurchaseSettler{}
}

func (PurchaseSettler) Settle(
	o *order.Order,
	foreign *treasury.Ledger,
	terms PurchaseTerms,
	now time.Time,
) (decimal.Decimal, error) {
	if err := errors.Join(o.Validate(), foreign.Validate()); err != nil {
		return decimal.Zero, err
	}
	if foreign.Kind() != treasury.KindForeign {
		return decimal.Zero, fmt.Errorf("purchases are funded from the foreign ledger, got %s", foreign.Kind())
	}
	if err := terms.Validate(); err != nil {
		return decimal.Zero, err
	}
	if o.IsArchived() || o.Position() != order.UnderPurchase {
		return decimal.Zero, errs.NewConflictError("order",
			fmt.Sprintf("purchase can only be confirmed from %s, order is %s", order.UnderPurchase, o.Position()))
	}

	amount, err := o.AmountToPay(terms.Discount, terms.Expenses)
	if err != nil {
		return decimal.Zero, err
	}

	account, err := FundingAccount(terms.PaymentMethod)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsPositive() {
		memo := treasury.Memo{Reason: treasury.ReasonPurchase, Reference: "order:" + o.ID().String(), At: now}
		if err = foreign.Debit(account, amount, memo); err != nil {
			return decimal.Zero, err
		}
	}

	pricing := o.Pricing()
	if err = o.ConfirmPurchase(order.Settlement{
		ItemPrice:      pricing.ForeignPrice,
		Quantity:       pricing.Quantity,
		Total:          pricing.Total,
		AmountPaid:     amount,
		PaymentMethod:  terms.PaymentMethod,
		PurchaseMethod: terms.PurchaseMethod,
		Discount:       terms.Discount,
		Expenses:       terms.Expenses,
		CartID:         o.CartID(),
		ConfirmedAt:    now,
	}); err != nil {
		return decimal.Zero, err
	}
	return amount, nil
}
