package queries

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetFinancialSummaryQueryIsNotConstructed = errors.New(
	"GetFinancialSummaryQuery must be created via NewGetFinancialSummaryQuery constructor",
)

// GetFinancialSummaryQuery aggregates settled invoices, deposits and ledger
// movements. A nil bound leaves that side of the period open.
type GetFinancialSummaryQuery struct {
	from *time.Time
	to   *time.Time

	guard guard.ConstructorGuard
}

func NewGetFinancialSummaryQuery(from, to *time.Time) (GetFinancialSummaryQuery, error) {
	if from != nil && to != nil && to.Before(*from) {
		return GetFinancialSummaryQuery{}, errs.NewValueIsInvalidErrorWithCause("period",
			fmt.Errorf("end %s is before start %s", to.Format(time.RFC3339), from.Format(time.RFC3339)))
	}
	return GetFinancialSummaryQuery{from: from, to: to, guard: guard.NewConstructorGuard()}, nil
}

func (q GetFinancialSummaryQuery) Validate() error {
	return q.guard.Validate(ErrGetFinancialSummaryQueryIsNotConstructed)
}

func (q GetFinancialSummaryQuery) From() *time.Time { return q.from }
func (q GetFinancialSummaryQuery) To() *time.Time   { return q.to }

type GetFinancialSummaryQueryResponse struct {
	ConfirmedInvoices int64
	Settled           decimal.Decimal
	Cash              decimal.Decimal
	Card              decimal.Decimal
	Discounts         decimal.Decimal
	Expenses          decimal.Decimal
	DepositsCollected decimal.Decimal

	Local   LedgerView
	Foreign LedgerView

	Movements []MovementTotal
}

// MovementTotal sums the signed journal amounts of one ledger for one reason.
type MovementTotal struct {
	Ledger string
	Reason string
	Count  int64
	Amount decimal.Decimal
}
