package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrAdvancePositionCommandIsNotConstructed = errors.New(
	"AdvancePositionCommand must be created via NewAdvancePositionCommand constructor",
)

// AdvancePositionCommand is the administrative write of an order position.
type AdvancePositionCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	position order.Position

	guard guard.ConstructorGuard
}

func NewAdvancePositionCommand(orderID kernel.UUID, position order.Position) (AdvancePositionCommand, error) {
	if err := errors.Join(orderID.Validate(), position.Validate()); err != nil {
		return AdvancePositionCommand{}, err
	}
	return AdvancePositionCommand{
		orderID:  orderID,
		position: position,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c AdvancePositionCommand) Validate() error {
	return c.guard.Validate(ErrAdvancePositionCommandIsNotConstructed)
}

func (c AdvancePositionCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvancePositionCommand) Position() order.Position {
	return c.position
}
