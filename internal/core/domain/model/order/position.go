package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Position is the order's place in the fulfillment state machine.
// The integer values are the codes persisted in the orders table; call sites
// always refer to the named constants.
//
// Delivery chain:
//
//	New -> UnderPurchase -> Purchased -> ReceivedAbroad -> Shipping -> ArrivedLocal
//	    -> Preparing -> ReadyForDelivery -> OutForDelivery -> Delivered
//
// Off-chain: Cancelled (terminal, archives the order), ReturnPending,
// ReturnedAbroad, Returned and Partial.
type Position int

const (
	// Unknown is the zero value and never a valid position.
	Unknown Position = iota
	New
	UnderPurchase
	Purchased
	ReceivedAbroad
	// Shipping covers orders packed in a box that has been handed to the carrier.
	Shipping
	ArrivedLocal
	Preparing
	ReadyForDelivery
	OutForDelivery
	Delivered
	Cancelled
	ReturnPending
	ReturnedAbroad
	Returned
	Partial
)

func getPositionNames() map[Position]string {
	//nolint:exhaustive // Unknown is rendered by String's fallback
	return map[Position]string{
		New:              "NEW",
		UnderPurchase:    "UNDER_PURCHASE",
		Purchased:        "PURCHASED",
		ReceivedAbroad:   "RECEIVED_ABROAD",
		Shipping:         "SHIPPING",
		ArrivedLocal:     "ARRIVED_LOCAL",
		Preparing:        "PREPARING",
		ReadyForDelivery: "READY_FOR_DELIVERY",
		OutForDelivery:   "OUT_FOR_DELIVERY",
		Delivered:        "DELIVERED",
		Cancelled:        "CANCELLED",
		ReturnPending:    "RETURN_PENDING",
		ReturnedAbroad:   "RETURNED_ABROAD",
		Returned:         "RETURNED",
		Partial:          "PARTIAL",
	}
}

// AllPositions lists every valid position in code order.
func AllPositions() []Position {
	positions := make([]Position, 0, Partial)
	for p := New; p <= Partial; p++ {
		positions = append(positions, p)
	}
	return positions
}

// PositionFromCode decodes a persisted code, rejecting anything outside the enumeration.
func PositionFromCode(code int) (Position, error) {
	p := Position(code)
	if err := p.Validate(); err != nil {
		return Unknown, err
	}
	return p, nil
}

// ParsePosition resolves a position by its name (e.g. "READY_FOR_DELIVERY").
func ParsePosition(name string) (Position, error) {
	for p, n := range getPositionNames() {
		if n == name {
			return p, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("position", fmt.Errorf("%q is not a valid position", name))
}

func (p Position) Validate() error {
	if _, ok := getPositionNames()[p]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("position", fmt.Errorf("%d is not a valid position", p))
	}
	return nil
}

func (p Position) String() string {
	if name, ok := getPositionNames()[p]; ok {
		return name
	}
	return "UNKNOWN"
}

// Code is the persisted integer encoding.
func (p Position) Code() int {
	return int(p)
}

// IsPrePurchase reports whether the order is still waiting to be bought.
func (p Position) IsPrePurchase() bool {
	return p == New || p == UnderPurchase
}

// IsPurchased reports whether the purchase has happened: every valid
// position past UnderPurchase except Cancelled.
func (p Position) IsPurchased() bool {
	return p.Validate() == nil && !p.IsPrePurchase() && p != Cancelled
}

// IsBoxable reports whether the order is bought but not yet handed to a carrier.
func (p Position) IsBoxable() bool {
	return p == Purchased || p == ReceivedAbroad
}

// IsReady reports whether the order has reached the delivery stage.
func (p Position) IsReady() bool {
	return p == ReadyForDelivery || p == OutForDelivery || p == Delivered
}

// IsTerminal reports positions marked final in the state machine.
func (p Position) IsTerminal() bool {
	return p == Delivered || p == Cancelled || p == Returned
}
