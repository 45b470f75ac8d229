// Package treasuryrepo persists the two singleton ledgers. Each sub-account
// balance is one row keyed by (ledger, sub_account); every change is also
// appended to the movements journal.
package treasuryrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/treasury"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BalanceDTO is one sub-account balance row.
type BalanceDTO struct {
	Ledger     string          `gorm:"type:varchar(16);primaryKey"`
	SubAccount string          `gorm:"type:varchar(16);primaryKey"`
	Amount     decimal.Decimal `gorm:"type:numeric(16,2);not null;default:0;check:amount >= 0"`
	UpdatedAt  time.Time       `gorm:"not null;autoUpdateTime:false"`
}

func (BalanceDTO) TableName() string {
	return "treasury_balances"
}

// MovementDTO is one journal line. Amount is signed.
type MovementDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Ledger     string          `gorm:"type:varchar(16);not null;index"`
	SubAccount string          `gorm:"type:varchar(16);not null"`
	Amount     decimal.Decimal `gorm:"type:numeric(16,2);not null"`
	Reason     string          `gorm:"type:varchar(32);not null;index"`
	Reference  string          `gorm:"type:varchar(255)"`
	At         time.Time       `gorm:"not null;index"`
}

func (MovementDTO) TableName() string {
	return "treasury_movements"
}

func movementFromDomain(m treasury.Movement) MovementDTO {
	return MovementDTO{
		ID:         m.ID.Bytes(),
		Ledger:     string(m.Ledger),
		SubAccount: string(m.SubAccount),
		Amount:     m.Amount,
		Reason:     string(m.Reason),
		Reference:  m.Reference,
		At:         m.At,
	}
}

func toDomain(kind treasury.Kind, rows []BalanceDTO) (*treasury.Ledger, error) {
	balances := make(map[treasury.SubAccount]decimal.Decimal, len(rows))
	var updatedAt time.Time
	for _, row := range rows {
		sub, err := treasury.ParseSubAccount(row.SubAccount)
		if err != nil {
			return nil, err
		}
		balances[sub] = row.Amount
		if row.UpdatedAt.After(updatedAt) {
			updatedAt = row.UpdatedAt
		}
	}
	return treasury.RestoreLedger(kind, balances, updatedAt)
}
