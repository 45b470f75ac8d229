package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateBoxCommandIsNotConstructed = errors.New(
		"CreateBoxCommand must be created via NewCreateBoxCommand constructor",
	)
	ErrCloseBoxCommandIsNotConstructed = errors.New(
		"CloseBoxCommand must be created via NewCloseBoxCommand constructor",
	)
	ErrBoxOrderCommandIsNotConstructed = errors.New(
		"BoxOrderCommand must be created via NewBoxOrderCommand constructor",
	)
)

type CreateBoxCommand struct { //nolint:recvcheck //using for validation
	boxID  kernel.UUID
	number int
	guard  guard.ConstructorGuard
}

func NewCreateBoxCommand(boxID kernel.UUID, number int) (CreateBoxCommand, error) {
	var numberErr error
	if number <= 0 {
		numberErr = errs.NewValueIsInvalidErrorWithCause("box number", fmt.Errorf("%d is not greater than 0", number))
	}
	if err := errors.Join(boxID.Validate(), numberErr); err != nil {
		return CreateBoxCommand{}, err
	}
	return CreateBoxCommand{boxID: boxID, number: number, guard: guard.NewConstructorGuard()}, nil
}

func (c CreateBoxCommand) Validate() error {
	return c.guard.Validate(ErrCreateBoxCommandIsNotConstructed)
}

func (c CreateBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c CreateBoxCommand) Number() int {
	return c.number
}

type CloseBoxCommand struct { //nolint:recvcheck //using for validation
	boxID kernel.UUID
	guard guard.ConstructorGuard
}

func NewCloseBoxCommand(boxID kernel.UUID) (CloseBoxCommand, error) {
	if err := boxID.Validate(); err != nil {
		return CloseBoxCommand{}, err
	}
	return CloseBoxCommand{boxID: boxID, guard: guard.NewConstructorGuard()}, nil
}

func (c CloseBoxCommand) Validate() error {
	return c.guard.Validate(ErrCloseBoxCommandIsNotConstructed)
}

func (c CloseBoxCommand) BoxID() kernel.UUID {
	return c.boxID
}

// BoxOrderCommand names an order and a box; it drives packing and unpacking.
type BoxOrderCommand struct { //nolint:recvcheck //using for validation
	boxID   kernel.UUID
	orderID kernel.UUID
	guard   guard.ConstructorGuard
}

func NewBoxOrderCommand(boxID, orderID kernel.UUID) (BoxOrderCommand, error) {
	if err := errors.Join(boxID.Validate(), orderID.Validate()); err != nil {
		return BoxOrderCommand{}, err
	}
	return BoxOrderCommand{boxID: boxID, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (c BoxOrderCommand) Validate() error {
	return c.guard.Validate(ErrBoxOrderCommandIsNotConstructed)
}

func (c BoxOrderCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c BoxOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
