package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateCartCommandIsNotConstructed = errors.New(
		"CreateCartCommand must be created via NewCreateCartCommand constructor",
	)
	ErrCartOrderCommandIsNotConstructed = errors.New(
		"CartOrderCommand must be created via NewCartOrderCommand constructor",
	)
	ErrCloseCartIfCompleteCommandIsNotConstructed = errors.New(
		"CloseCartIfCompleteCommand must be created via NewCloseCartIfCompleteCommand constructor",
	)
)

type CreateCartCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewCreateCartCommand(cartID kernel.UUID) (CreateCartCommand, error) {
	if err := cartID.Validate(); err != nil {
		return CreateCartCommand{}, err
	}
	return CreateCartCommand{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateCartCommand) Validate() error {
	return c.guard.Validate(ErrCreateCartCommandIsNotConstructed)
}

func (c CreateCartCommand) CartID() kernel.UUID {
	return c.cartID
}

// CartOrderCommand names an order and a cart; it drives both adding the
// order to the cart and removing it.
type CartOrderCommand struct { //nolint:recvcheck //using for validation
	cartID  kernel.UUID
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewCartOrderCommand(cartID, orderID kernel.UUID) (CartOrderCommand, error) {
	if err := errors.Join(cartID.Validate(), orderID.Validate()); err != nil {
		return CartOrderCommand{}, err
	}
	return CartOrderCommand{cartID: cartID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c CartOrderCommand) Validate() error {
	return c.guard.Validate(ErrCartOrderCommandIsNotConstructed)
}

func (c CartOrderCommand) CartID() kernel.UUID {
	return c.cartID
}

func (c CartOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

type CloseCartIfCompleteCommand struct { //nolint:recvcheck //using for validation
	cartID kernel.UUID
	guard  guard.ConstructorGuard
}

func NewCloseCartIfCompleteCommand(cartID kernel.UUID) (CloseCartIfCompleteCommand, error) {
	if err := cartID.Validate(); err != nil {
		return CloseCartIfCompleteCommand{}, err
	}
	return CloseCartIfCompleteCommand{cartID: cartID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseCartIfCompleteCommand) Validate() error {
	return c.guard.Validate(ErrCloseCartIfCompleteCommandIsNotConstructed)
}

func (c CloseCartIfCompleteCommand) CartID() kernel.UUID {
	return c.cartID
}
