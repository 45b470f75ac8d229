package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CreateShipmentCommandHandler registers a closed box with the carrier. The
// registration runs inside the transaction, so a carrier failure leaves no
// shipment behind.
type CreateShipmentCommandHandler struct {
	uowFactory UoWFactory
	carrier    ports.CarrierGateway
	audit      ports.AuditRecorder
}

func NewCreateShipmentCommandHandler(
	uowFactory UoWFactory,
	carrier ports.CarrierGateway,
	audit ports.AuditRecorder,
) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{uowFactory: uowFactory, carrier: carrier, audit: audit}
}

func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) error {
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

	b, err := uow.BoxRepository().GetForUpdate(ctx, cmd.BoxID())
	if err != nil {
		return err
	}
	if err = b.EnsureShippable(); err != nil {
		return err
	}

	shipmentRepo := uow.ShipmentRepository()
	exists, err := shipmentRepo.ExistsForBox(ctx, b.ID())
	if err != nil {
		return err
	}
	if exists {
		return errs.NewConflictError("shipment", "box "+b.ID().String()+" already has a shipment")
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), b.ID(), cmd.Manifest(), clock())
	if err != nil {
		return err
	}

	manifest := s.Manifest()
	ref, err := h.carrier.RegisterShipment(ctx, ports.CarrierShipment{
		ShipmentID: s.ID(),
		BoxNumber:  b.Number(),
		Carrier:    manifest.Carrier,
		Sender:     manifest.Sender,
		Weight:     manifest.Weight,
		Images:     manifest.Images,
	})
	if err != nil {
		return err
	}
	if err = s.AttachCarrierRef(ref); err != nil {
		return err
	}

	if err = shipmentRepo.Add(ctx, s); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	recordAudit(ctx, h.audit, ports.ActionManageShipment, auditEntry{
		entity:  ports.EntityShipment,
		id:      s.ID(),
		after:   shipmentState(s),
		details: map[string]any{"op": "create", "box_number": b.Number()},
	})
	return nil
}

// SendShipmentCommandHandler hands a ready shipment to the carrier and moves
// the box's purchased members to SHIPPING. It returns the number moved.
type SendShipmentCommandHandler struct {
	uowFactory UoWFactory
	carrier    ports.CarrierGateway
	audit      ports.AuditRecorder
}

func NewSendShipmentCommandHandler(
	uowFactory UoWFactory,
	carrier ports.CarrierGateway,
	audit ports.AuditRecorder,
) SendShipmentCommandHandler {
	return SendShipmentCommandHandler{uowFactory: uowFactory, carrier: carrier, audit: audit}
}

func (h SendShipmentCommandHandler) Handle(ctx context.Context, cmd ShipmentIDCommand) (int64, error) {
	return advanceShipment(ctx, h.uowFactory, h.carrier, h.audit, cmd, shipmentStep{
		op:   "send",
		move: (*shipment.Shipment).Send,
		from: []order.Position{order.Purchased, order.ReceivedAbroad},
		to:   order.Shipping,
	})
}

// MarkShipmentArrivedCommandHandler records arrival and moves the box's
// shipping members to ARRIVED_LOCAL. It returns the number moved.
type MarkShipmentArrivedCommandHandler struct {
	uowFactory UoWFactory
	carrier    ports.CarrierGateway
	audit      ports.AuditRecorder
}

func NewMarkShipmentArrivedCommandHandler(
	uowFactory UoWFactory,
	carrier ports.CarrierGateway,
	audit ports.AuditRecorder,
) MarkShipmentArrivedCommandHandler {
	return MarkShipmentArrivedCommandHandler{uowFactory: uowFactory, carrier: carrier, audit: audit}
}

func (h MarkShipmentArrivedCommandHandler) Handle(ctx context.Context, cmd ShipmentIDCommand) (int64, error) {
	return advanceShipment(ctx, h.uowFactory, h.carrier, h.audit, cmd, shipmentStep{
		op:   "arrive",
		move: (*shipment.Shipment).Arrive,
		from: []order.Position{order.Shipping},
		to:   order.ArrivedLocal,
	})
}

type shipmentStep struct {
	op   string
	move func(*shipment.Shipment) error
	from []order.Position
	to   order.Position
}

func advanceShipment(
	ctx context.Context,
	uowFactory UoWFactory,
	carrier ports.CarrierGateway,
	audit ports.AuditRecorder,
	cmd ShipmentIDCommand,
	step shipmentStep,
) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	shipmentRepo := uow.ShipmentRepository()
	s, err := shipmentRepo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return 0, err
	}

	before := shipmentState(s)
	if err = step.move(s); err != nil {
		return 0, err
	}

	moved, err := uow.OrderRepository().AdvanceBoxMembers(ctx, s.BoxID(), step.from, step.to)
	if err != nil {
		return 0, err
	}

	if err = shipmentRepo.Update(ctx, s); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	if s.CarrierRef() != "" {
		if notifyErr := carrier.UpdateShipmentStatus(ctx, s.CarrierRef(), string(s.Status())); notifyErr != nil {
			slog.WarnContext(ctx, "carrier status update failed",
				"shipment_id", s.ID().String(),
				"status", string(s.Status()),
				"error", notifyErr,
			)
		}
	}

	recordAudit(ctx, audit, ports.ActionManageShipment, auditEntry{
		entity:  ports.EntityShipment,
		id:      s.ID(),
		before:  before,
		after:   shipmentState(s),
		details: map[string]any{"op": step.op, "moved": moved},
	})
	return moved, nil
}
