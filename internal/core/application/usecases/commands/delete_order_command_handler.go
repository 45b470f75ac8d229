package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// DeleteOrderCommandHandler removes an order outright. It bypasses the state
// machine but keeps the derived data consistent: container counters are
// decremented and the collection sums lose the order's total and deposit.
type DeleteOrderCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewDeleteOrderCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) DeleteOrderCommandHandler {
	return DeleteOrderCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h DeleteOrderCommandHandler) Handle(ctx context.Context, cmd DeleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = orderRepo.Delete(ctx, o.ID()); err != nil {
		return err
	}

	if err = releaseFromContainers(ctx, uow, order.Detachment{CartID: o.CartID(), BoxID: o.BoxID()}); err != nil {
		return err
	}

	if collectionID := o.CollectionID(); collectionID != nil {
		collectionRepo := uow.CollectionRepository()
		coll, getErr := collectionRepo.GetForUpdate(ctx, *collectionID)
		if getErr != nil {
			return getErr
		}

		coll.Exclude(o.Pricing().Total, o.Pricing().Deposit)
		members, listErr := orderRepo.ListByCollection(ctx, coll.ID())
		if listErr != nil {
			return listErr
		}
		coll.Recompute(positionsOf(members))

		if err = collectionRepo.Update(ctx, coll); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionDeleteOrder, auditEntry{
		entity: ports.EntityOrder,
		id:     o.ID(),
		before: orderState(o),
	})
	return nil
}
