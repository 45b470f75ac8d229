// Package commands contains the state-changing operations of the fulfillment
// core. Every handler validates its command, runs inside one Unit of Work,
// commits, and only then notifies the audit recorder.
package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// Unit of Work interfaces give each handler exactly the repositories it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	CartRepoFactory interface {
		CartRepository() ports.CartRepository
	}

	BoxRepoFactory interface {
		BoxRepository() ports.BoxRepository
	}

	CollectionRepoFactory interface {
		CollectionRepository() ports.CollectionRepository
	}

	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	TreasuryRepoFactory interface {
		TreasuryRepository() ports.TreasuryRepository
	}

	// TreasuryUoW manages transactions that touch the ledgers only.
	TreasuryUoW interface {
		TxManager
		TreasuryRepoFactory
	}

	// TreasuryUoWFactory creates new treasury unit of work instances.
	TreasuryUoWFactory interface {
		Create() TreasuryUoW
	}

	// UoW spans orders, containers and the treasury. Used by commands that
	// move an order and its containers together, and by purchase confirmation
	// which also debits the foreign ledger.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   o, err := uow.OrderRepository().GetForUpdate(ctx, id)
	//   // ... mutate and save
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		OrderRepoFactory
		CartRepoFactory
		BoxRepoFactory
		CollectionRepoFactory
		ShipmentRepoFactory
		TreasuryRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate operations.
	UoWFactory interface {
		Create() UoW
	}
)
