package postgres

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres/boxrepo"
	"fulfillment/internal/adapters/out/postgres/cartrepo"
	"fulfillment/internal/adapters/out/postgres/collectionrepo"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/shipmentrepo"
	"fulfillment/internal/adapters/out/postgres/treasuryrepo"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// Models lists every table the core owns, in dependency order.
func Models() []any {
	return []any{
		&customerrepo.CustomerDTO{},
		&collectionrepo.CollectionDTO{},
		&cartrepo.CartDTO{},
		&boxrepo.BoxDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.InvoiceDTO{},
		&shipmentrepo.ShipmentDTO{},
		&treasuryrepo.BalanceDTO{},
		&treasuryrepo.MovementDTO{},
	}
}

// Migrate creates or updates the schema and seeds the zero ledger rows.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(Models()...); err != nil {
		return err
	}
	return treasuryrepo.NewGormTreasuryRepository(db, noTracking{}).Seed(ctx, time.Now().UTC())
}

type noTracking struct{}

func (noTracking) TrackAggregate(kernel.UUID, any) {}
