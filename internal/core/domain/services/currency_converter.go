package services

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/treasury"

	"github.com/shopspring/decimal"
)

// CurrencyConverter buys foreign cash with local money: the local main
// balance is debited by the local amount and the foreign cash balance is
// credited with amount * rate. Either both ledgers change or neither does.
type CurrencyConverter struct{}

func NewCurrencyConverter() CurrencyConverter {
	return CurrencyConverter{}
}

// Convert returns the foreign amount credited.
func (CurrencyConverter) Convert(
	local, foreign *treasury.Ledger,
	amountLocal, rate decimal.Decimal,
	now time.Time,
) (decimal.Decimal, error) {
	if err := errors.Join(local.Validate(), foreign.Validate()); err != nil {
		return decimal.Zero, err
	}
	if local.Kind() != treasury.KindLocal || foreign.Kind() != treasury.KindForeign {
		return decimal.Zero, fmt.Errorf("conversion needs the local and foreign ledgers, got %s and %s", local.Kind(), foreign.Kind())
	}
	if err := errors.Join(
		kernel.ValidatePositiveAmount("amount", amountLocal),
		kernel.ValidatePositiveAmount("rate", rate),
	); err != nil {
		return decimal.Zero, err
	}

	credited := kernel.RoundMoney(amountLocal.Mul(rate))
	if err := kernel.ValidatePositiveAmount("converted amount", credited); err != nil {
		return decimal.Zero, err
	}

	memo := treasury.Memo{
		Reason:    treasury.ReasonConversion,
		Reference: fmt.Sprintf("rate:%s", rate),
		At:        now,
	}
	if err := local.Debit(treasury.Main, amountLocal, memo); err != nil {
		return decimal.Zero, err
	}
	if err := foreign.Credit(treasury.Cash, credited, memo); err != nil {
		return decimal.Zero, err
	}
	return credited, nil
}
