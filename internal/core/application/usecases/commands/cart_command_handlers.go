package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/ports"
)

// CreateCartCommandHandler opens an empty purchase cart.
type CreateCartCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewCreateCartCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) CreateCartCommandHandler {
	return CreateCartCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h CreateCartCommandHandler) Handle(ctx context.Context, cmd CreateCartCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	c, err := cart.NewCart(cmd.CartID(), clock())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.CartRepository().Add(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageCart, auditEntry{
		entity:  ports.EntityCart,
		id:      c.ID(),
		after:   cartState(c),
		details: map[string]any{"op": "create"},
	})
	return nil
}

// AddOrderToCartCommandHandler puts a pre-purchase order into an open cart
// and marks it UNDER_PURCHASE.
type AddOrderToCartCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewAddOrderToCartCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) AddOrderToCartCommandHandler {
	return AddOrderToCartCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h AddOrderToCartCommandHandler) Handle(ctx context.Context, cmd CartOrderCommand) error {
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
	cartRepo := uow.CartRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	c, err := cartRepo.GetForUpdate(ctx, cmd.CartID())
	if err != nil {
		return err
	}

	before := mergeStates(cartState(c), memberState(o))
	if err = c.Admit(); err != nil {
		return err
	}
	if err = o.JoinCart(c.ID(), clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = cartRepo.Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageCart, auditEntry{
		entity:  ports.EntityCart,
		id:      c.ID(),
		before:  before,
		after:   mergeStates(cartState(c), memberState(o)),
		details: map[string]any{"op": "add"},
	})
	return nil
}

// RemoveOrderFromCartCommandHandler takes a not-yet-purchased order out of
// its cart and returns it to NEW.
type RemoveOrderFromCartCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewRemoveOrderFromCartCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) RemoveOrderFromCartCommandHandler {
	return RemoveOrderFromCartCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h RemoveOrderFromCartCommandHandler) Handle(ctx context.Context, cmd CartOrderCommand) error {
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
	cartRepo := uow.CartRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	c, err := cartRepo.GetForUpdate(ctx, cmd.CartID())
	if err != nil {
		return err
	}

	before := mergeStates(cartState(c), memberState(o))
	if err = o.LeaveCart(c.ID(), clock()); err != nil {
		return err
	}
	c.Release()

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = cartRepo.Update(ctx, c); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageCart, auditEntry{
		entity:  ports.EntityCart,
		id:      c.ID(),
		before:  before,
		after:   mergeStates(cartState(c), memberState(o)),
		details: map[string]any{"op": "remove"},
	})
	return nil
}

// CloseCartIfCompleteCommandHandler closes a cart whose members are all
// purchased. It reports whether the cart was closed by this call.
type CloseCartIfCompleteCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewCloseCartIfCompleteCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) CloseCartIfCompleteCommandHandler {
	return CloseCartIfCompleteCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h CloseCartIfCompleteCommandHandler) Handle(ctx context.Context, cmd CloseCartIfCompleteCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	cartRepo := uow.CartRepository()
	c, err := cartRepo.GetForUpdate(ctx, cmd.CartID())
	if err != nil {
		return false, err
	}

	members, err := uow.OrderRepository().ListByCart(ctx, c.ID())
	if err != nil {
		return false, err
	}
	before := cartState(c)
	if !c.CloseIfComplete(positionsOf(members)) {
		return false, nil
	}

	if err = cartRepo.Update(ctx, c); err != nil {
		return false, err
	}
	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	recordAudit(ctx, h.audit, ports.ActionManageCart, auditEntry{
		entity:  ports.EntityCart,
		id:      c.ID(),
		before:  before,
		after:   cartState(c),
		details: map[string]any{"op": "close"},
	})
	return true, nil
}
