package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/ports"
)

// CreateBoxCommandHandler opens a numbered box. A taken number surfaces as a
// ConflictError from the repository.
type CreateBoxCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewCreateBoxCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) CreateBoxCommandHandler {
	return CreateBoxCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h CreateBoxCommandHandler) Handle(ctx context.Context, cmd CreateBoxCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	b, err := box.NewBox(cmd.BoxID(), cmd.Number(), clock())
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

	if err = uow.BoxRepository().Add(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageBox, auditEntry{
		entity:  ports.EntityBox,
		id:      b.ID(),
		after:   boxState(b),
		details: map[string]any{"op": "create"},
	})
	return nil
}

type CloseBoxCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewCloseBoxCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) CloseBoxCommandHandler {
	return CloseBoxCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h CloseBoxCommandHandler) Handle(ctx context.Context, cmd CloseBoxCommand) error {
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

	boxRepo := uow.BoxRepository()
	b, err := boxRepo.GetForUpdate(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	before := boxState(b)
	if err = b.Close(); err != nil {
		return err
	}

	if err = boxRepo.Update(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageBox, auditEntry{
		entity:  ports.EntityBox,
		id:      b.ID(),
		before:  before,
		after:   boxState(b),
		details: map[string]any{"op": "close"},
	})
	return nil
}

// AddOrderToBoxCommandHandler packs a purchased order into an open box.
type AddOrderToBoxCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewAddOrderToBoxCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) AddOrderToBoxCommandHandler {
	return AddOrderToBoxCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h AddOrderToBoxCommandHandler) Handle(ctx context.Context, cmd BoxOrderCommand) error {
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
	boxRepo := uow.BoxRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	b, err := boxRepo.GetForUpdate(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	before := mergeStates(boxState(b), memberState(o))
	if err = b.Admit(); err != nil {
		return err
	}
	if err = o.JoinBox(b.ID(), clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = boxRepo.Update(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageBox, auditEntry{
		entity:  ports.EntityBox,
		id:      b.ID(),
		before:  before,
		after:   mergeStates(boxState(b), memberState(o)),
		details: map[string]any{"op": "add"},
	})
	return nil
}

// RemoveOrderFromBoxCommandHandler unpacks an order that has not been
// handed to the carrier yet.
type RemoveOrderFromBoxCommandHandler struct {
	uowFactory UoWFactory
	audit      ports.AuditRecorder
}

func NewRemoveOrderFromBoxCommandHandler(uowFactory UoWFactory, audit ports.AuditRecorder) RemoveOrderFromBoxCommandHandler {
	return RemoveOrderFromBoxCommandHandler{uowFactory: uowFactory, audit: audit}
}

func (h RemoveOrderFromBoxCommandHandler) Handle(ctx context.Context, cmd BoxOrderCommand) error {
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
	boxRepo := uow.BoxRepository()

	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	b, err := boxRepo.GetForUpdate(ctx, cmd.BoxID())
	if err != nil {
		return err
	}

	before := mergeStates(boxState(b), memberState(o))
	if err = b.Release(); err != nil {
		return err
	}
	if err = o.LeaveBox(b.ID(), clock()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}
	if err = boxRepo.Update(ctx, b); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageBox, auditEntry{
		entity:  ports.EntityBox,
		id:      b.ID(),
		before:  before,
		after:   mergeStates(boxState(b), memberState(o)),
		details: map[string]any{"op": "remove"},
	})
	return nil
}
