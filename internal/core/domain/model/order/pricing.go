package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Pricing is the snapshot of the quote an order was created with: the inputs
// given to the pricing engine and the amounts it derived. A zero Pricing
// means no product price was supplied and nothing is owed yet.
type Pricing struct {
	ForeignPrice    decimal.Decimal
	Quantity        int
	ExchangeRate    decimal.Decimal
	CommissionPct   decimal.Decimal
	DepositPct      decimal.Decimal
	ShippingCost    decimal.Decimal
	PayerIsReceiver bool

	LocalPrice decimal.Decimal
	Commission decimal.Decimal
	Total      decimal.Decimal
	Deposit    decimal.Decimal
}

// IsQuoted reports whether a product price was supplied.
func (p Pricing) IsQuoted() bool {
	return p.ForeignPrice.IsPositive()
}

// Validate checks the snapshot is internally plausible: no negative amounts,
// and a positive quantity when quoted.
func (p Pricing) Validate() error {
	problems := []error{
		kernel.ValidateNonNegativeAmount("foreign price", p.ForeignPrice),
		kernel.ValidateNonNegativeAmount("exchange rate", p.ExchangeRate),
		kernel.ValidatePercent("commission percent", p.CommissionPct),
		kernel.ValidatePercent("deposit percent", p.DepositPct),
		kernel.ValidateNonNegativeAmount("shipping cost", p.ShippingCost),
		kernel.ValidateNonNegativeAmount("total", p.Total),
		kernel.ValidateNonNegativeAmount("deposit", p.Deposit),
	}
	if p.IsQuoted() && p.Quantity <= 0 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", p.Quantity)))
	}
	if p.Deposit.GreaterThan(p.Total) {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("deposit", fmt.Errorf("%s exceeds total %s", p.Deposit, p.Total)))
	}
	return errors.Join(problems...)
}
