// Package ports defines the contracts between the fulfillment core and its
// infrastructure: repositories, the unit of work, and the external
// collaborators (customer directory, authorizer, audit sink, carrier).
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates,
// including their detail, pricing snapshot and invoice.
type OrderRepository interface {
	// Add persists a new order with its detail and empty invoice.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists position, memberships and invoice changes.
	Update(ctx context.Context, aggregate *order.Order) error

	// Delete removes the order and its invoice. Used by the administrative
	// delete only.
	Delete(ctx context.Context, id kernel.UUID) error

	// Get retrieves an order by id without locking.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetForUpdate retrieves an order and holds its row lock until the
	// transaction ends.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error)

	ListByCart(ctx context.Context, cartID kernel.UUID) ([]*order.Order, error)
	ListByBox(ctx context.Context, boxID kernel.UUID) ([]*order.Order, error)
	ListByCollection(ctx context.Context, collectionID kernel.UUID) ([]*order.Order, error)

	// ListByCollectionForUpdate is ListByCollection holding every member's
	// row lock until the transaction ends.
	ListByCollectionForUpdate(ctx context.Context, collectionID kernel.UUID) ([]*order.Order, error)

	// AdvanceBoxMembers moves every member of the box currently at one of the
	// from positions to the target position in a single statement. It
	// returns the number of orders moved.
	AdvanceBoxMembers(ctx context.Context, boxID kernel.UUID, from []order.Position, to order.Position) (int64, error)

	// AdvanceCollectionMembers is AdvanceBoxMembers for collection members.
	AdvanceCollectionMembers(ctx context.Context, collectionID kernel.UUID, from []order.Position, to order.Position) (int64, error)

	// CountCartMembers returns the actual membership count of every cart
	// with at least one member.
	CountCartMembers(ctx context.Context) (map[kernel.UUID]int, error)

	// CountBoxMembers returns the actual membership count of every box with
	// at least one member.
	CountBoxMembers(ctx context.Context) (map[kernel.UUID]int, error)
}
