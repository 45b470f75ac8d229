package treasury

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Reason classifies a ledger movement.
type Reason string

const (
	ReasonPurchase     Reason = "purchase"
	ReasonDebit        Reason = "debit"
	ReasonCredit       Reason = "credit"
	ReasonSetBalance   Reason = "set_balance"
	ReasonConversion   Reason = "conversion"
	ReasonRedistribute Reason = "redistribute"
)

// Movement is one journal line: a signed change to a single sub-account.
type Movement struct {
	ID         kernel.UUID
	Ledger     Kind
	SubAccount SubAccount
	Amount     decimal.Decimal
	Reason     Reason
	Reference  string
	At         time.Time
}

func newMovement(kind Kind, sub SubAccount, delta decimal.Decimal, memo Memo) Movement {
	return Movement{
		ID:         kernel.NewUUID(),
		Ledger:     kind,
		SubAccount: sub,
		Amount:     delta,
		Reason:     memo.Reason,
		Reference:  memo.Reference,
		At:         memo.At,
	}
}
