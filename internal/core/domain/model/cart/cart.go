// Package cart implements the purchase Cart: a batch of pre-purchase orders
// bought together. A cart is created open and closes itself the moment its
// last member's purchase is confirmed. It is never closed by hand and never
// reopened.
package cart

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCartIsNotConstructed = errors.New("Cart must be created via NewCart constructor")

type Cart struct {
	id          kernel.UUID
	ordersCount int
	available   bool
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewCart returns an open, empty cart.
func NewCart(id kernel.UUID, now time.Time) (*Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return &Cart{
		id:        id,
		available: true,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func RestoreCart(id kernel.UUID, ordersCount int, available bool, createdAt time.Time) (*Cart, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if ordersCount < 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("orders count", fmt.Errorf("%d is negative", ordersCount))
	}
	return &Cart{
		id:          id,
		ordersCount: ordersCount,
		available:   available,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c *Cart) Validate() error {
	if c == nil {
		return ErrCartIsNotConstructed
	}
	return c.guard.Validate(ErrCartIsNotConstructed)
}

func (c *Cart) ID() kernel.UUID {
	return c.id
}

func (c *Cart) OrdersCount() int {
	return c.ordersCount
}

// IsAvailable reports whether the cart still accepts orders.
func (c *Cart) IsAvailable() bool {
	return c.available
}

func (c *Cart) CreatedAt() time.Time {
	return c.createdAt
}

// Admit counts a new member. Closed carts refuse.
func (c *Cart) Admit() error {
	if !c.available {
		return errs.NewConflictError("cart", "cart "+c.id.String()+" is closed")
	}
	c.ordersCount++
	return nil
}

// Release uncounts a member that left the cart.
func (c *Cart) Release() {
	if c.ordersCount > 0 {
		c.ordersCount--
	}
}

// CloseIfComplete closes the cart when it has members and every one of them
// is purchased. Members cancelled after purchase are ignored, but at least one
// purchased member is required. It reports whether the cart was closed by
// this call.
func (c *Cart) CloseIfComplete(members []order.Position) bool {
	if !c.available || len(members) == 0 {
		return false
	}

	purchased := 0
	for _, p := range members {
		switch {
		case p.IsPurchased():
			purchased++
		case p == order.Cancelled:
		default:
			return false
		}
	}
	if purchased == 0 {
		return false
	}

	c.available = false
	return true
}

// RepairCount overwrites the cached counter with the membership count.
// It reports whether the counter drifted.
func (c *Cart) RepairCount(actual int) bool {
	if c.ordersCount == actual {
		return false
	}
	c.ordersCount = actual
	return true
}
