package services

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// QuoteInput is what the operator supplies when pricing a new order.
// ShippingCost is expressed in local currency. Every field must fit the
// column it is stored in; extra precision is rejected, not rounded.
type QuoteInput struct {
	ForeignPrice    decimal.Decimal
	Quantity        int
	ExchangeRate    decimal.Decimal
	CommissionPct   decimal.Decimal
	DepositPct      decimal.Decimal
	ShippingCost    decimal.Decimal
	PayerIsReceiver bool
}

func (in QuoteInput) Validate() error {
	problems := []error{
		kernel.ValidatePositiveAmount("foreign price", in.ForeignPrice),
		kernel.ValidatePositiveAmount("exchange rate", in.ExchangeRate),
		kernel.ValidatePercent("commission percent", in.CommissionPct),
		kernel.ValidatePercent("deposit percent", in.DepositPct),
		kernel.ValidateNonNegativeAmount("shipping cost", in.ShippingCost),
		kernel.ValidateDigits("foreign price", in.ForeignPrice, kernel.MoneyPrecision, kernel.MoneyPlaces),
		kernel.ValidateDigits("exchange rate", in.ExchangeRate, kernel.RatePrecision, kernel.RatePlaces),
		kernel.ValidateDigits("commission percent", in.CommissionPct, kernel.PercentPrecision, kernel.PercentPlaces),
		kernel.ValidateDigits("deposit percent", in.DepositPct, kernel.PercentPrecision, kernel.PercentPlaces),
		kernel.ValidateDigits("shipping cost", in.ShippingCost, kernel.MoneyPrecision, kernel.MoneyPlaces),
	}
	if in.Quantity <= 0 {
		problems = append(problems,
			errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", in.Quantity)))
	}
	return errors.Join(problems...)
}

// ToLocalPrice converts a foreign amount at the given rate.
func ToLocalPrice(foreign, rate decimal.Decimal) decimal.Decimal {
	return kernel.RoundMoney(foreign.Mul(rate))
}

// WithCommission returns the commission on a local price and the price with
// the commission added.
func WithCommission(local, pct decimal.Decimal) (commission, total decimal.Decimal) {
	commission = kernel.PercentOf(local, pct)
	return commission, kernel.RoundMoney(local.Add(commission))
}

// DepositAmount is the share of the total the customer prepays.
func DepositAmount(total, pct decimal.Decimal) decimal.Decimal {
	return kernel.PercentOf(total, pct)
}

// AdjustForShipping adds the shipping cost when the receiver pays for it.
// When the sender absorbs shipping the total is unchanged.
func AdjustForShipping(total, shipping decimal.Decimal, payerIsReceiver bool) decimal.Decimal {
	if !payerIsReceiver {
		return total
	}
	return kernel.RoundMoney(total.Add(shipping))
}

// Quote runs the full pricing pipeline:
//
//	local    = round(foreign * rate) * quantity
//	total    = local + commission(local) [+ shipping when the receiver pays]
//	deposit  = deposit%(total)
func Quote(in QuoteInput) (order.Pricing, error) {
	if err := in.Validate(); err != nil {
		return order.Pricing{}, err
	}

	local := ToLocalPrice(in.ForeignPrice, in.ExchangeRate).Mul(decimal.NewFromInt(int64(in.Quantity)))
	commission, total := WithCommission(local, in.CommissionPct)
	total = AdjustForShipping(total, in.ShippingCost, in.PayerIsReceiver)

	return order.Pricing{
		ForeignPrice:    in.ForeignPrice,
		Quantity:        in.Quantity,
		ExchangeRate:    in.ExchangeRate,
		CommissionPct:   in.CommissionPct,
		DepositPct:      in.DepositPct,
		ShippingCost:    in.ShippingCost,
		PayerIsReceiver: in.PayerIsReceiver,
		LocalPrice:      local,
		Commission:      commission,
		Total:           total,
		Deposit:         DepositAmount(total, in.DepositPct),
	}, nil
}
