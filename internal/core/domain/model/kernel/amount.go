package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// MoneyPlaces is the number of fractional digits every monetary amount is rounded to.
const MoneyPlaces int32 = 2

// Column shapes of the stored quote inputs: numeric(precision, scale).
const (
	MoneyPrecision   int32 = 14
	PercentPrecision int32 = 5
	PercentPlaces    int32 = 2
	RatePrecision    int32 = 14
	RatePlaces       int32 = 6
)

var (
	// MoneyTolerance is the largest difference at which two amounts are treated as equal.
	MoneyTolerance = decimal.New(1, -MoneyPlaces)

	hundred = decimal.NewFromInt(100)
)

// RoundMoney rounds half away from zero to MoneyPlaces.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyPlaces)
}

// ApproxEqual reports whether a and b differ by at most MoneyTolerance.
func ApproxEqual(a, b decimal.Decimal) bool {
	return a.Sub(b).Abs().LessThanOrEqual(MoneyTolerance)
}

// PercentOf returns pct percent of amount, rounded to money precision.
func PercentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(pct).Div(hundred))
}

func ValidatePositiveAmount(param string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is not greater than 0", amount))
	}
	return nil
}

func ValidateNonNegativeAmount(param string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s is negative", amount))
	}
	return nil
}

// ValidatePercent accepts values in [0, 100].
func ValidatePercent(param string, pct decimal.Decimal) error {
	if pct.IsNegative() || pct.GreaterThan(hundred) {
		return errs.NewValueIsOutOfRangeError(param, pct, 0, 100)
	}
	return nil
}

// ValidateDigits rejects values that do not fit numeric(precision, scale):
// more than scale fractional digits, or more than precision-scale integer
// digits. Nothing is rounded silently.
func ValidateDigits(param string, d decimal.Decimal, precision, scale int32) error {
	if !d.Round(scale).Equal(d) {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s has more than %d decimal places", d, scale))
	}
	if d.Abs().Cmp(decimal.New(1, precision-scale)) >= 0 {
		return errs.NewValueIsInvalidErrorWithCause(param, fmt.Errorf("%s has more than %d integer digits", d, precision-scale))
	}
	return nil
}
