package commands

import (
	"context"
	"fmt"
	"maps"
	"time"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/actor"
)

// clock is overridden in tests that assert on timestamps.
var clock = func() time.Time { return time.Now().UTC() }

// treasurySubject names the ledgers in audit events; they have no identifier.
var treasurySubject = namedSubject("treasury")

type namedSubject string

func (n namedSubject) String() string { return string(n) }

// auditEntry is one committed change as handed to the recorder.
type auditEntry struct {
	entity  ports.EntityType
	id      fmt.Stringer
	before  ports.AuditState
	after   ports.AuditState
	details map[string]any
}

func recordAudit(ctx context.Context, recorder ports.AuditRecorder, action ports.Action, entry auditEntry) {
	recorder.Record(ctx, ports.AuditEvent{
		Action:     action,
		Actor:      actor.FromContext(ctx),
		EntityType: entry.entity,
		EntityID:   entry.id.String(),
		Before:     entry.before,
		After:      entry.after,
		Details:    entry.details,
		At:         clock(),
	})
}

func orderState(o *order.Order) ports.AuditState {
	invoice := o.Invoice()
	return ports.AuditState{
		"position":         o.Position().String(),
		"archived":         o.IsArchived(),
		"cart_id":          optionalID(o.CartID()),
		"box_id":           optionalID(o.BoxID()),
		"collection_id":    optionalID(o.CollectionID()),
		"total":            o.Pricing().Total.StringFixed(2),
		"deposit":          o.Pricing().Deposit.StringFixed(2),
		"cash_amount":      invoice.CashAmount.StringFixed(2),
		"card_paid_amount": invoice.CardPaidAmount.StringFixed(2),
	}
}

func cartState(c *cart.Cart) ports.AuditState {
	return ports.AuditState{
		"orders_count": c.OrdersCount(),
		"is_available": c.IsAvailable(),
	}
}

func boxState(b *box.Box) ports.AuditState {
	return ports.AuditState{
		"number":       b.Number(),
		"orders_count": b.OrdersCount(),
		"is_available": b.IsAvailable(),
	}
}

func collectionState(c *collection.Collection) ports.AuditState {
	return ports.AuditState{
		"status":        string(c.Status()),
		"prepaid_value": c.PrepaidValue().StringFixed(2),
		"total":         c.Total().StringFixed(2),
	}
}

func shipmentState(s *shipment.Shipment) ports.AuditState {
	return ports.AuditState{
		"status":      string(s.Status()),
		"box_id":      s.BoxID().String(),
		"carrier_ref": s.CarrierRef(),
	}
}

// memberState describes the order a container change moved.
func memberState(o *order.Order) ports.AuditState {
	return ports.AuditState{
		"order_id":       o.ID().String(),
		"order_position": o.Position().String(),
	}
}

// ledgerState keys each balance as "kind/sub-account", so the state of a
// conversion spanning both ledgers fits in one map.
func ledgerState(ledgers ...*treasury.Ledger) ports.AuditState {
	state := ports.AuditState{}
	for _, l := range ledgers {
		for sub, balance := range l.Balances() {
			state[string(l.Kind())+"/"+string(sub)] = balance.StringFixed(2)
		}
	}
	return state
}

// mergeStates copies states left to right into one map; later keys win.
func mergeStates(states ...ports.AuditState) ports.AuditState {
	merged := ports.AuditState{}
	for _, s := range states {
		maps.Copy(merged, s)
	}
	return merged
}

func optionalID(id *kernel.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}

func positionsOf(orders []*order.Order) []order.Position {
	positions := make([]order.Position, 0, len(orders))
	for _, o := range orders {
		positions = append(positions, o.Position())
	}
	return positions
}
