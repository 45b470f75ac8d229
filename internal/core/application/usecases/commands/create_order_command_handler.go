package commands

import (
	"context"
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateOrderCommandHandler creates an order at NEW for a known customer,
// prices it when a quote is supplied, and attaches it to the customer's
// open collection (opening a new one when the latest is older than the
// membership window). The order's total and deposit are added to the
// collection in the same transaction.
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	customers  ports.CustomerDirectory
	audit      ports.AuditRecorder
}

func NewCreateOrderCommandHandler(
	uowFactory UoWFactory,
	customers ports.CustomerDirectory,
	audit ports.AuditRecorder,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		customers:  customers,
		audit:      audit,
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	customer, err := h.customers.ResolveByHandle(ctx, cmd.CustomerHandle())
	if err != nil {
		return err
	}

	var pricing order.Pricing
	if q := cmd.Quote(); q != nil {
		if pricing, err = services.Quote(*q); err != nil {
			return err
		}
	}

	now := clock()
	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	collectionRepo := uow.CollectionRepository()
	orderRepo := uow.OrderRepository()

	coll, isNew, err := resolveCollection(ctx, collectionRepo, customer.ID, now)
	if err != nil {
		return err
	}

	collectionID := coll.ID()
	o, err := order.NewOrder(cmd.OrderID(), customer.ID, &collectionID, cmd.Detail(), pricing, now)
	if err != nil {
		return err
	}
	coll.Include(pricing.Total, pricing.Deposit)

	if isNew {
		err = collectionRepo.Add(ctx, coll)
	} else {
		err = collectionRepo.Update(ctx, coll)
	}
	if err != nil {
		return err
	}

	if err = orderRepo.Add(ctx, o); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionCreateOrder, auditEntry{
		entity:  ports.EntityOrder,
		id:      o.ID(),
		after:   orderState(o),
		details: map[string]any{"customer_id": customer.ID.String()},
	})
	return nil
}

// resolveCollection returns the customer's latest collection if it is still
// joinable at now, or a fresh one. The bool reports a fresh collection.
func resolveCollection(
	ctx context.Context,
	repo ports.CollectionRepository,
	customerID kernel.UUID,
	now time.Time,
) (*collection.Collection, bool, error) {
	latest, err := repo.FindLatestForCustomerForUpdate(ctx, customerID)
	switch {
	case err == nil && latest.IsJoinableAt(now):
		return latest, false, nil
	case err != nil && !errors.Is(err, errs.ErrObjectNotFound):
		return nil, false, err
	}

	fresh, err := collection.NewCollection(kernel.NewUUID(), customerID, now)
	if err != nil {
		return nil, false, err
	}
	return fresh, true, nil
}
