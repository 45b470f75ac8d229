package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CancelOrderCommandHandler archives an order at CANCELLED. A not-yet
// purchased order leaves its cart and any order leaves its box; the
// container counters are decremented in the same transaction. The cart is
// then re-checked for auto-close, since the cancelled order may have been the
// last member still waiting for purchase. The collection's cached status is
// refreshed as cancelled members no longer count.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	before := orderState(o)
	detached, err := o.Cancel(clock())
	if err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = releaseFromContainers(ctx, uow, detached); err != nil {
		return err
	}

	if err = refreshCollection(ctx, uow, o.CollectionID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionCancelOrder, auditEntry{
		entity: ports.EntityOrder,
		id:     o.ID(),
		before: before,
		after:  orderState(o),
		details: map[string]any{
			"left_cart": detached.CartID != nil,
			"left_box":  detached.BoxID != nil,
		},
	})
	return nil
}

// releaseFromContainers decrements the counters of the containers an order
// left and closes the cart if its remaining members are all purchased.
// The order must already be saved so the cart sees the current membership.
func releaseFromContainers(ctx context.Context, uow UoW, detached order.Detachment) error {
	if detached.CartID != nil {
		cartRepo := uow.CartRepository()
		c, err := cartRepo.GetForUpdate(ctx, *detached.CartID)
		if err != nil {
			return err
		}
		c.Release()

		members, err := uow.OrderRepository().ListByCart(ctx, c.ID())
		if err != nil {
			return err
		}
		c.CloseIfComplete(positionsOf(members))

		if err = cartRepo.Update(ctx, c); err != nil {
			return err
		}
	}

	if detached.BoxID != nil {
		boxRepo := uow.BoxRepository()
		b, err := boxRepo.GetForUpdate(ctx, *detached.BoxID)
		if err != nil {
			return err
		}
		b.Forget()
		if err = boxRepo.Update(ctx, b); err != nil {
			return err
		}
	}

	return nil
}

// refreshCollection recomputes and persists a collection's cached status.
func refreshCollection(ctx context.Context, uow UoW, collectionID *kernel.UUID) error {
	if collectionID == nil {
		return nil
	}

	collectionRepo := uow.CollectionRepository()
	coll, err := collectionRepo.GetForUpdate(ctx, *collectionID)
	if err != nil {
		return err
	}

	members, err := uow.OrderRepository().ListByCollection(ctx, coll.ID())
	if err != nil {
		return err
	}
	if !coll.Recompute(positionsOf(members)) {
		return nil
	}
	return collectionRepo.Update(ctx, coll)
}
