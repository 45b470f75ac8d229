package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// Customer is the directory's view of a customer.
type Customer struct {
	ID     kernel.UUID
	Handle string
	Name   string
}

// CustomerDirectory resolves customers by the handle operators type in.
// An unknown handle yields an ObjectNotFoundError.
type CustomerDirectory interface {
	ResolveByHandle(ctx context.Context, handle string) (Customer, error)
}

// Action names a state-changing operation for authorization and audit.
type Action string

const (
	ActionCreateOrder        Action = "order.create"
	ActionAdvanceOrder       Action = "order.advance"
	ActionConfirmPurchase    Action = "order.confirm_purchase"
	ActionCancelOrder        Action = "order.cancel"
	ActionDeleteOrder        Action = "order.delete"
	ActionManageCart         Action = "cart.manage"
	ActionManageBox          Action = "box.manage"
	ActionDeliverCollection  Action = "collection.deliver"
	ActionManageShipment     Action = "shipment.manage"
	ActionManageTreasury     Action = "treasury.manage"
	ActionRepairCounters     Action = "maintenance.repair_counters"
	ActionRefreshCollections Action = "maintenance.refresh_collections"
)

// Authorizer decides whether an actor may perform an action. It is evaluated
// by the transport layer before a command is dispatched.
type Authorizer interface {
	MayPerform(ctx context.Context, actor string, action Action) (bool, error)
}

// EntityType names the kind of record an audit event is about.
type EntityType string

const (
	EntityOrder      EntityType = "order"
	EntityCart       EntityType = "cart"
	EntityBox        EntityType = "box"
	EntityCollection EntityType = "collection"
	EntityShipment   EntityType = "shipment"
	EntityTreasury   EntityType = "treasury"
)

// AuditState is a flat view of an entity at one moment, with amounts as
// fixed two-place strings.
type AuditState map[string]any

// AuditEvent describes a committed state change. Before is nil for a
// creation and After is nil for a deletion.
type AuditEvent struct {
	Action     Action
	Actor      string
	EntityType EntityType
	EntityID   string
	Before     AuditState
	After      AuditState
	Details    map[string]any
	At         time.Time
}

// AuditRecorder receives an event after each successful commit. Recording
// failures never undo the committed change.
type AuditRecorder interface {
	Record(ctx context.Context, event AuditEvent)
}

// CarrierShipment is what the carrier needs to register a box.
type CarrierShipment struct {
	ShipmentID kernel.UUID
	BoxNumber  int
	Carrier    string
	Sender     string
	Weight     decimal.Decimal
	Images     []string
}

// CarrierGateway is the remote carrier integration. RegisterShipment returns
// the carrier's tracking reference.
type CarrierGateway interface {
	RegisterShipment(ctx context.Context, shipment CarrierShipment) (string, error)
	UpdateShipmentStatus(ctx context.Context, carrierRef string, status string) error
}
