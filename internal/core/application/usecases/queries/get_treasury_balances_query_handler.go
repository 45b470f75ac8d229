package queries

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/treasury"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetTreasuryBalancesQueryHandler struct {
	db *gorm.DB
}

func NewGetTreasuryBalancesQueryHandler(db *gorm.DB) GetTreasuryBalancesQueryHandler {
	return GetTreasuryBalancesQueryHandler{db: db}
}

func (h GetTreasuryBalancesQueryHandler) Handle(
	ctx context.Context,
	query GetTreasuryBalancesQuery,
) (GetTreasuryBalancesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTreasuryBalancesQueryResponse{}, err
	}

	ledgers, err := readLedgers(ctx, h.db)
	if err != nil {
		return GetTreasuryBalancesQueryResponse{}, err
	}

	return GetTreasuryBalancesQueryResponse{
		Local:   ledgers[treasury.KindLocal],
		Foreign: ledgers[treasury.KindForeign],
	}, nil
}

// readLedgers loads every balance row. Sub-accounts without a row read as zero.
func readLedgers(ctx context.Context, db *gorm.DB) (map[treasury.Kind]LedgerView, error) {
	ledgers := make(map[treasury.Kind]LedgerView, 2)
	for _, kind := range []treasury.Kind{treasury.KindLocal, treasury.KindForeign} {
		view := LedgerView{
			Kind:     string(kind),
			Balances: make(map[string]decimal.Decimal),
			Total:    decimal.Zero,
		}
		for _, sub := range kind.SubAccounts() {
			view.Balances[string(sub)] = decimal.Zero
		}
		ledgers[kind] = view
	}

	rows, err := db.WithContext(ctx).Raw(`
		SELECT ledger, sub_account, amount, updated_at
		FROM treasury_balances
		ORDER BY ledger, sub_account
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ledger, sub string
			amount      decimal.Decimal
			updatedAt   time.Time
		)
		if err := rows.Scan(&ledger, &sub, &amount, &updatedAt); err != nil {
			return nil, err
		}
		kind, err := treasury.ParseKind(ledger)
		if err != nil {
			return nil, err
		}
		view := ledgers[kind]
		view.Balances[sub] = amount
		view.Total = view.Total.Add(amount)
		if updatedAt.After(view.UpdatedAt) {
			view.UpdatedAt = updatedAt
		}
		ledgers[kind] = view
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ledgers, nil
}
