package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRecomputeCollectionStatusCommandIsNotConstructed = errors.New(
		"RecomputeCollectionStatusCommand must be created via NewRecomputeCollectionStatusCommand constructor",
	)
	ErrSendCollectionToDeliveryCommandIsNotConstructed = errors.New(
		"SendCollectionToDeliveryCommand must be created via NewSendCollectionToDeliveryCommand constructor",
	)
	ErrSendOrderToDeliveryCommandIsNotConstructed = errors.New(
		"SendOrderToDeliveryCommand must be created via NewSendOrderToDeliveryCommand constructor",
	)
)

type RecomputeCollectionStatusCommand struct { //nolint:recvcheck //using for validation
	collectionID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewRecomputeCollectionStatusCommand(collectionID kernel.UUID) (RecomputeCollectionStatusCommand, error) {
	if err := collectionID.Validate(); err != nil {
		return RecomputeCollectionStatusCommand{}, err
	}
	return RecomputeCollectionStatusCommand{collectionID: collectionID, guard: guard.NewConstructorGuard()}, nil
}

func (c RecomputeCollectionStatusCommand) Validate() error {
	return c.guard.Validate(ErrRecomputeCollectionStatusCommandIsNotConstructed)
}

func (c RecomputeCollectionStatusCommand) CollectionID() kernel.UUID {
	return c.collectionID
}

type SendCollectionToDeliveryCommand struct { //nolint:recvcheck //using for validation
	collectionID kernel.UUID
	guard        guard.ConstructorGuard
}

func NewSendCollectionToDeliveryCommand(collectionID kernel.UUID) (SendCollectionToDeliveryCommand, error) {
	if err := collectionID.Validate(); err != nil {
		return SendCollectionToDeliveryCommand{}, err
	}
	return SendCollectionToDeliveryCommand{collectionID: collectionID, guard: guard.NewConstructorGuard()}, nil
}

func (c SendCollectionToDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSendCollectionToDeliveryCommandIsNotConstructed)
}

func (c SendCollectionToDeliveryCommand) CollectionID() kernel.UUID {
	return c.collectionID
}

// SendOrderToDeliveryCommand sends a single ready member of a collection.
type SendOrderToDeliveryCommand struct { //nolint:recvcheck //using for validation
	collectionID kernel.UUID
	orderID      kernel.UUID
	guard        guard.ConstructorGuard
}

func NewSendOrderToDeliveryCommand(collectionID, orderID kernel.UUID) (SendOrderToDeliveryCommand, error) {
	if err := errors.Join(collectionID.Validate(), orderID.Validate()); err != nil {
		return SendOrderToDeliveryCommand{}, err
	}
	return SendOrderToDeliveryCommand{
		collectionID: collectionID,
		orderID:      orderID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SendOrderToDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrSendOrderToDeliveryCommandIsNotConstructed)
}

func (c SendOrderToDeliveryCommand) CollectionID() kernel.UUID {
	return c.collectionID
}

func (c SendOrderToDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}
