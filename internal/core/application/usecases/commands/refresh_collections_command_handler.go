package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// RefreshCollectionStatusesCommandHandler sweeps every collection and
// rewrites stale cached statuses. Each collection is refreshed in its own
// transaction, so the sweep never holds more than one collection lock and a
// failure on one collection does not stop the rest. It returns how many
// changed, together with the joined failures.
type RefreshCollectionStatusesCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewRefreshCollectionStatusesCommandHandler(
	uowFactory UoWFactory,
	audit ports.AuditRecorder,
) RefreshCollectionStatusesCommandHandler {
	return RefreshCollectionStatusesCommandHandler{
		uowFactory: uowFactory,
		audit:      audit,
	}
}

func (h *RefreshCollectionStatusesCommandHandler) Handle(
	ctx context.Context,
	cmd RefreshCollectionStatusesCommand,
) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	// Complete collections are included: an operator moving a member back
	// makes their cached status stale too.
	ids, err := h.uowFactory.Create().CollectionRepository().ListIDsByStatus(ctx,
		collection.StatusInProgress, collection.StatusPartial, collection.StatusComplete)
	if err != nil {
		return 0, err
	}

	changed := 0
	var failures []error
	for _, id := range ids {
		if err = ctx.Err(); err != nil {
			return changed, errors.Join(append(failures, err)...)
		}

		refreshed, refreshErr := h.refresh(ctx, id)
		if refreshErr != nil {
			failures = append(failures, fmt.Errorf("collection %s: %w", id, refreshErr))
			continue
		}
		if refreshed {
			changed++
		}
	}

	return changed, errors.Join(failures...)
}

func (h *RefreshCollectionStatusesCommandHandler) refresh(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	collectionRepo := uow.CollectionRepository()
	coll, err := collectionRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	members, err := uow.OrderRepository().ListByCollection(ctx, id)
	if err != nil {
		return false, err
	}

	before := collectionState(coll)
	if !coll.Recompute(positionsOf(members)) {
		return false, nil
	}
	if err = collectionRepo.Update(ctx, coll); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	recordAudit(ctx, h.audit, ports.ActionRefreshCollections, auditEntry{
		entity: ports.EntityCollection,
		id:     coll.ID(),
		before: before,
		after:  collectionState(coll),
	})
	return true, nil
}
