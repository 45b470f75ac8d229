package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// AdvancePositionCommandHandler writes a position chosen by an operator.
// It has no side effects beyond the order row.
type AdvancePositionCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewAdvancePositionCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) AdvancePositionCommandHandler {
	return AdvancePositionCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h AdvancePositionCommandHandler) Handle(ctx context.Context, cmd AdvancePositionCommand) error {
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
	if err = o.AdvanceTo(cmd.Position(), clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionAdvanceOrder, auditEntry{
		entity: ports.EntityOrder,
		id:     o.ID(),
		before: before,
		after:  orderState(o),
	})
	return nil
}
