package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
)

// CartRepository persists purchase carts. GetForUpdate locks the row; every
// counter change goes through a locked read.
type CartRepository interface {
	Add(ctx context.Context, aggregate *cart.Cart) error
	Update(ctx context.Context, aggregate *cart.Cart) error
	Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*cart.Cart, error)
	ListForUpdate(ctx context.Context) ([]*cart.Cart, error)
}

// BoxRepository persists shipping boxes. Add fails with a ConflictError when
// the box number is taken.
type BoxRepository interface {
	Add(ctx context.Context, aggregate *box.Box) error
	Update(ctx context.Context, aggregate *box.Box) error
	Get(ctx context.Context, id kernel.UUID) (*box.Box, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*box.Box, error)
	ListForUpdate(ctx context.Context) ([]*box.Box, error)
}

// CollectionRepository persists customer collections.
type CollectionRepository interface {
	Add(ctx context.Context, aggregate *collection.Collection) error
	Update(ctx context.Context, aggregate *collection.Collection) error
	Get(ctx context.Context, id kernel.UUID) (*collection.Collection, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*collection.Collection, error)

	// FindLatestForCustomerForUpdate returns the customer's most recent
	// collection, locked, or an ObjectNotFoundError when there is none.
	FindLatestForCustomerForUpdate(ctx context.Context, customerID kernel.UUID) (*collection.Collection, error)

	// ListIDsByStatus returns the identifiers of collections whose cached
	// status is one of the given values.
	ListIDsByStatus(ctx context.Context, statuses ...collection.Status) ([]kernel.UUID, error)
}

// ShipmentRepository persists carrier shipments. A box has at most one
// shipment; Add fails with a ConflictError otherwise.
type ShipmentRepository interface {
	Add(ctx context.Context, aggregate *shipment.Shipment) error
	Update(ctx context.Context, aggregate *shipment.Shipment) error
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)
	ExistsForBox(ctx context.Context, boxID kernel.UUID) (bool, error)
}
