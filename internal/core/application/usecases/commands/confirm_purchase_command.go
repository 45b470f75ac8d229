package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrConfirmPurchaseCommandIsNotConstructed = errors.New(
	"ConfirmPurchaseCommand must be created via NewConfirmPurchaseCommand constructor",
)

// ConfirmPurchaseCommand records that the buyer paid for an order.
type ConfirmPurchaseCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	terms   services.PurchaseTerms

	guard guard.ConstructorGuard
}

func NewConfirmPurchaseCommand(
	orderID kernel.UUID,
	paymentMethod order.PaymentMethod,
	purchaseMethod order.PurchaseMethod,
	discount, expenses decimal.Decimal,
) (ConfirmPurchaseCommand, error) {
	terms := services.PurchaseTerms{
		PaymentMethod:  paymentMethod,
		PurchaseMethod: purchaseMethod,
		Discount:       discount,
		Expenses:       expenses,
	}
	if err := errors.Join(orderID.Validate(), terms.Validate()); err != nil {
		return ConfirmPurchaseCommand{}, err
	}

	return ConfirmPurchaseCommand{
		orderID: orderID,
		terms:   terms,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPurchaseCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPurchaseCommandIsNotConstructed)
}

func (c ConfirmPurchaseCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmPurchaseCommand) Terms() services.PurchaseTerms {
	return c.terms
}
