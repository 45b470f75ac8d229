package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is one business transaction. Repositories obtained after Begin
// share its transaction; client code commits explicitly and defers Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	CartRepository() CartRepository
	BoxRepository() BoxRepository
	CollectionRepository() CollectionRepository
	ShipmentRepository() ShipmentRepository
	TreasuryRepository() TreasuryRepository
}
