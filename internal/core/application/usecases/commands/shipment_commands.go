package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrCreateShipmentCommandIsNotConstructed = errors.New(
		"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
	)
	ErrShipmentIDCommandIsNotConstructed = errors.New(
		"ShipmentIDCommand must be created via NewShipmentIDCommand constructor",
	)
)

type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	boxID      kernel.UUID
	manifest   shipment.Manifest
	guard      guard.ConstructorGuard
}

func NewCreateShipmentCommand(
	shipmentID, boxID kernel.UUID,
	manifest shipment.Manifest,
) (CreateShipmentCommand, error) {
	if err := errors.Join(shipmentID.Validate(), boxID.Validate(), manifest.Validate()); err != nil {
		return CreateShipmentCommand{}, err
	}
	return CreateShipmentCommand{
		shipmentID: shipmentID,
		boxID:      boxID,
		manifest:   manifest,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

func (c CreateShipmentCommand) BoxID() kernel.UUID {
	return c.boxID
}

func (c CreateShipmentCommand) Manifest() shipment.Manifest {
	return c.manifest
}

// ShipmentIDCommand addresses an existing shipment. Sending and marking
// arrival both take it.
type ShipmentIDCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	guard      guard.ConstructorGuard
}

func NewShipmentIDCommand(shipmentID kernel.UUID) (ShipmentIDCommand, error) {
	if err := shipmentID.Validate(); err != nil {
		return ShipmentIDCommand{}, err
	}
	return ShipmentIDCommand{shipmentID: shipmentID, guard: guard.NewConstructorGuard()}, nil
}

func (c ShipmentIDCommand) Validate() error {
	return c.guard.Validate(ErrShipmentIDCommandIsNotConstructed)
}

func (c ShipmentIDCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}
