package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/treasury"
)

// TreasuryRepository persists the two singleton ledgers and their journal.
type TreasuryRepository interface {
	// Get reads a ledger without locking.
	Get(ctx context.Context, kind treasury.Kind) (*treasury.Ledger, error)

	// GetForUpdate reads a ledger with SELECT ... FOR UPDATE. Every write path
	// must use it before evaluating balance predicates.
	GetForUpdate(ctx context.Context, kind treasury.Kind) (*treasury.Ledger, error)

	// Save writes the balances and appends the ledger's pending movements,
	// then clears them from the aggregate.
	Save(ctx context.Context, ledger *treasury.Ledger) error
}
