package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type RecomputeCollectionStatusCommandHandler struct {
	uowFactory UoWFactory
}

func NewRecomputeCollectionStatusCommandHandler(uowFactory UoWFactory) RecomputeCollectionStatusCommandHandler {
	return RecomputeCollectionStatusCommandHandler{uowFactory: uowFactory}
}

// Handle derives the status from current membership, persists it when it
// changed and returns it.
func (h RecomputeCollectionStatusCommandHandler) Handle(
	ctx context.Context,
	cmd RecomputeCollectionStatusCommand,
) (collection.Status, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return "", err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	collectionRepo := uow.CollectionRepository()
	coll, err := collectionRepo.GetForUpdate(ctx, cmd.CollectionID())
	if err != nil {
		return "", err
	}

	members, err := uow.OrderRepository().ListByCollection(ctx, coll.ID())
	if err != nil {
		return "", err
	}

	if coll.Recompute(positionsOf(members)) {
		if err = collectionRepo.Update(ctx, coll); err != nil {
			return "", err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return "", err
	}
	return coll.Status(), nil
}

// SendCollectionToDeliveryCommandHandler dispatches a whole collection once
// every active member is ready. It returns the number of orders moved to
// OUT_FOR_DELIVERY. Member rows are locked before the collection row, the
// same order cancel and single-order delivery take.
type SendCollectionToDeliveryCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewSendCollectionToDeliveryCommandHandler(
	uowFactory UoWFactory,
	audit ports.AuditRecorder,
) SendCollectionToDeliveryCommandHandler {
	return SendCollectionToDeliveryCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h SendCollectionToDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd SendCollectionToDeliveryCommand,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	collectionRepo := uow.CollectionRepository()

	if _, err := orderRepo.ListByCollectionForUpdate(ctx, cmd.CollectionID()); err != nil {
		return 0, err
	}

	coll, err := collectionRepo.GetForUpdate(ctx, cmd.CollectionID())
	if err != nil {
		return 0, err
	}

	// Orders created before the collection lock was granted are not locked
	// above, so the check runs on a fresh read.
	members, err := orderRepo.ListByCollection(ctx, coll.ID())
	if err != nil {
		return 0, err
	}
	before := collectionState(coll)
	if err = coll.EnsureDeliverable(positionsOf(members)); err != nil {
		return 0, err
	}

	moved, err := orderRepo.AdvanceCollectionMembers(
		ctx, coll.ID(), []order.Position{order.ReadyForDelivery}, order.OutForDelivery,
	)
	if err != nil {
		return 0, err
	}

	coll.MarkComplete()
	if err = collectionRepo.Update(ctx, coll); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	recordAudit(ctx, h.audit, ports.ActionDeliverCollection, auditEntry{
		entity:  ports.EntityCollection,
		id:      coll.ID(),
		before:  before,
		after:   collectionState(coll),
		details: map[string]any{"moved": moved},
	})
	return moved, nil
}

type SendOrderToDeliveryCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewSendOrderToDeliveryCommandHandler(
	uowFactory UoWFactory,
	audit ports.AuditRecorder,
) SendOrderToDeliveryCommandHandler {
	return SendOrderToDeliveryCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h SendOrderToDeliveryCommandHandler) Handle(ctx context.Context, cmd SendOrderToDeliveryCommand) error {
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

	collectionID := o.CollectionID()
	if collectionID == nil || *collectionID != cmd.CollectionID() {
		return errs.NewConflictError("order",
			"order "+o.ID().String()+" does not belong to collection "+cmd.CollectionID().String())
	}

	before := orderState(o)
	if err = o.SendToDelivery(clock()); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	if err = refreshCollection(ctx, uow, collectionID); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionDeliverCollection, auditEntry{
		entity: ports.EntityOrder,
		id:     o.ID(),
		before: before,
		after:  orderState(o),
	})
	return nil
}
