package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

// RepairReport counts the containers whose stored counter was corrected.
type RepairReport struct {
	CartsRepaired int
	BoxesRepaired int
}

// RepairCountersCommandHandler recomputes orders_count of every cart and box
// from actual membership. All containers are locked and updated in a single
// transaction.
//
// Example:
//
//	handler := NewRepairCountersCommandHandler(uowFactory, audit)
//	report, err := handler.Handle(ctx, NewRepairCountersCommand())
//	if err != nil {
//	    return fmt.Errorf("counter repair failed: %w", err)
//	}
type RepairCountersCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

// NewRepairCountersCommandHandler creates a handler for counter repair.
func NewRepairCountersCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) RepairCountersCommandHandler {
	return RepairCountersCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

// Handle locks all carts, then all boxes, compares each stored counter with
// the membership count and saves the ones that drifted.
func (h *RepairCountersCommandHandler) Handle(ctx context.Context, cmd RepairCountersCommand) (RepairReport, error) {
	if err := cmd.Validate(); err != nil {
		return RepairReport{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return RepairReport{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	carts, err := h.repairCarts(ctx, uow)
	if err != nil {
		return RepairReport{}, err
	}

	boxes, err := h.repairBoxes(ctx, uow)
	if err != nil {
		return RepairReport{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return RepairReport{}, err
	}

	for _, entry := range append(carts, boxes...) {
		recordAudit(ctx, h.audit, ports.ActionRepairCounters, entry)
	}

	return RepairReport{CartsRepaired: len(carts), BoxesRepaired: len(boxes)}, nil
}

// repairCarts returns one audit entry per cart whose counter was corrected.
func (h *RepairCountersCommandHandler) repairCarts(ctx context.Context, uow UoW) ([]auditEntry, error) {
	cartRepo := uow.CartRepository()
	carts, err := cartRepo.ListForUpdate(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := uow.OrderRepository().CountCartMembers(ctx)
	if err != nil {
		return nil, err
	}

	var repaired []auditEntry
	for _, c := range carts {
		before := cartState(c)
		if !c.RepairCount(counts[c.ID()]) {
			continue
		}
		if err = cartRepo.Update(ctx, c); err != nil {
			return nil, err
		}
		repaired = append(repaired, auditEntry{entity: ports.EntityCart, id: c.ID(), before: before, after: cartState(c)})
	}
	return repaired, nil
}

func (h *RepairCountersCommandHandler) repairBoxes(ctx context.Context, uow UoW) ([]auditEntry, error) {
	boxRepo := uow.BoxRepository()
	boxes, err := boxRepo.ListForUpdate(ctx)
	if err != nil {
		return nil, err
	}

	counts, err := uow.OrderRepository().CountBoxMembers(ctx)
	if err != nil {
		return nil, err
	}

	var repaired []auditEntry
	for _, b := range boxes {
		before := boxState(b)
		if !b.RepairCount(counts[b.ID()]) {
			continue
		}
		if err = boxRepo.Update(ctx, b); err != nil {
			return nil, err
		}
		repaired = append(repaired, auditEntry{entity: ports.EntityBox, id: b.ID(), before: before, after: boxState(b)})
	}
	return repaired, nil
}
