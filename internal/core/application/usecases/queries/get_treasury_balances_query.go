package queries

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetTreasuryBalancesQueryIsNotConstructed = errors.New(
	"GetTreasuryBalancesQuery must be created via NewGetTreasuryBalancesQuery constructor",
)

type GetTreasuryBalancesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetTreasuryBalancesQuery() GetTreasuryBalancesQuery {
	return GetTreasuryBalancesQuery{guard: guard.NewConstructorGuard()}
}

func (q GetTreasuryBalancesQuery) Validate() error {
	return q.guard.Validate(ErrGetTreasuryBalancesQueryIsNotConstructed)
}

// LedgerView is one ledger with its sub-account balances and their sum.
type LedgerView struct {
	Kind      string
	Balances  map[string]decimal.Decimal
	Total     decimal.Decimal
	UpdatedAt time.Time
}

type GetTreasuryBalancesQueryResponse struct {
	Local   LedgerView
	Foreign LedgerView
}
