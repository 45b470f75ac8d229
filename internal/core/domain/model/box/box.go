// Package box implements the shipping Box: purchased orders packed together
// abroad and handed to a carrier as one shipment. Boxes are numbered,
// closed explicitly, and carry at most one shipment.
package box

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrBoxIsNotConstructed = errors.New("Box must be created via NewBox constructor")

type Box struct {
	id          kernel.UUID
	number      int
	ordersCount int
	available   bool
	createdAt   time.Time

	guard guard.ConstructorGuard
}

// NewBox returns an open, empty box. The number must be positive; its
// uniqueness is enforced by storage.
func NewBox(id kernel.UUID, number int, now time.Time) (*Box, error) {
	b := &Box{available: true, createdAt: now, guard: guard.NewConstructorGuard()}
	if err := errors.Join(b.setID(id), b.setNumber(number)); err != nil {
		return nil, err
	}
	return b, nil
}

func RestoreBox(id kernel.UUID, number, ordersCount int, available bool, createdAt time.Time) (*Box, error) {
	b := &Box{
		ordersCount: ordersCount,
		available:   available,
		createdAt:   createdAt,
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(b.setID(id), b.setNumber(number)); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Box) Validate() error {
	if b == nil {
		return ErrBoxIsNotConstructed
	}
	return b.guard.Validate(ErrBoxIsNotConstructed)
}

func (b *Box) ID() kernel.UUID { return b.id }
func (b *Box) Number() int { return b.number }
func (b *Box) OrdersCount() int { return b.ordersCount }
func (b *Box) IsAvailable() bool { return b.available }
func (b *Box) CreatedAt() time.Time { return b.createdAt }

// Admit counts a newly packed order.
func (b *Box) Admit() error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	b.ordersCount++
	return nil
}

// Release uncounts an order unpacked by an operator. The box must be open.
func (b *Box) Release() error {
	if err := b.ensureOpen(); err != nil {
		return err
	}
	b.Forget()
	return nil
}

// Forget uncounts a member that left through cancellation or deletion,
// whether or not the box is still open.
func (b *Box) Forget() {
	if b.ordersCount > 0 {
		b.ordersCount--
	}
}

func (b *Box) Close() error {
	if !b.available {
		return errs.NewConflictError("box", fmt.Sprintf("box %d is already closed", b.number))
	}
	b.available = false
	return nil
}

// EnsureShippable checks the box can be handed to a carrier.
func (b *Box) EnsureShippable() error {
	if b.available {
		return errs.NewConflictError("box", fmt.Sprintf("box %d must be closed before shipping", b.number))
	}
	return nil
}

// RepairCount overwrites the cached counter with the membership count.
func (b *Box) RepairCount(actual int) bool {
	if b.ordersCount == actual {
		return false
	}
	b.ordersCount = actual
	return true
}

func (b *Box) ensureOpen() error {
	if !b.available {
		return errs.NewConflictError("box", fmt.Sprintf("box %d is closed", b.number))
	}
	return nil
}

func (b *Box) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Box) setNumber(number int) error {
	if number <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("box number", fmt.Errorf("%d is not greater than 0", number))
	}
	b.number = number
	return nil
}
