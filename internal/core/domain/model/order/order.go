package order

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or Restore.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the aggregate root for one customer purchase request. It tracks the
// position in the fulfillment state machine, membership in the batching
// containers, the pricing snapshot and the invoice.
//
// Order follows these invariants:
//   - position is always a member of the Position enumeration
//   - it joins a cart only while pre-purchase
//   - it joins a box only while Purchased or ReceivedAbroad, and only one box
//   - once cancelled it is archived and accepts no further transitions
//   - the invoice settlement amounts stay zero until the purchase is confirmed
type Order struct {
	id         kernel.UUID
	customerID kernel.UUID
	position   Position

	cartID       *kernel.UUID
	boxID        *kernel.UUID
	collectionID *kernel.UUID

	archived bool
	detail   Detail
	pricing  Pricing
	invoice  Invoice

	createdAt time.Time
	updatedAt time.Time

	isConstructed bool
}

// NewOrder creates an order at New with an empty invoice shell, attached to
// the customer's collection.
//
// Example:
//
//	detail, _ := order.NewDetail("Sneakers", "white", "42", "https://shop/item", "", order.Destination{City: "Baghdad"})
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, &collectionID, detail, quote, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	collectionID *kernel.UUID,
	detail Detail,
	pricing Pricing,
	now time.Time,
) (*Order, error) {
	o := &Order{
		position:      New,
		collectionID:  collectionID,
		createdAt:     now,
		updatedAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setDetail(detail),
		o.setPricing(pricing),
	); err != nil {
		return nil, err
	}

	o.invoice = NewInvoiceShell(kernel.NewUUID())
	return o, nil
}

// Snapshot is the full persisted state of an order. Restore rebuilds an
// aggregate from it; Order.Snapshot produces it.
type Snapshot struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	Position     Position
	CartID       *kernel.UUID
	BoxID        *kernel.UUID
	CollectionID *kernel.UUID
	Archived     bool
	Detail       Detail
	Pricing      Pricing
	Invoice      Invoice
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Restore rebuilds an order loaded from storage. Only structural checks are
// applied; business preconditions are not re-evaluated.
func Restore(s Snapshot) (*Order, error) {
	if err := errors.Join(
		s.ID.Validate(),
		s.CustomerID.Validate(),
		s.Position.Validate(),
		s.Detail.Validate(),
	); err != nil {
		return nil, err
	}

	return &Order{
		id:            s.ID,
		customerID:    s.CustomerID,
		position:      s.Position,
		cartID:        s.CartID,
		boxID:         s.BoxID,
		collectionID:  s.CollectionID,
		archived:      s.Archived,
		detail:        s.Detail,
		pricing:       s.Pricing,
		invoice:       s.Invoice,
		createdAt:     s.CreatedAt,
		updatedAt:     s.UpdatedAt,
		isConstructed: true,
	}, nil
}

func (o *Order) Snapshot() Snapshot {
	return Snapshot{
		ID:           o.id,
		CustomerID:   o.customerID,
		Position:     o.position,
		CartID:       o.cartID,
		BoxID:        o.boxID,
		CollectionID: o.collectionID,
		Archived:     o.archived,
		Detail:       o.detail,
		Pricing:      o.pricing,
		Invoice:      o.invoice,
		CreatedAt:    o.createdAt,
		UpdatedAt:    o.updatedAt,
	}
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) Position() Position { return o.position }
func (o *Order) CartID() *kernel.UUID { return o.cartID }
func (o *Order) BoxID() *kernel.UUID { return o.boxID }
func (o *Order) CollectionID() *kernel.UUID { return o.collectionID }
func (o *Order) IsArchived() bool { return o.archived }
func (o *Order) Detail() Detail { return o.detail }
func (o *Order) Pricing() Pricing { return o.pricing }
func (o *Order) Invoice() Invoice { return o.invoice }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// AdvanceTo is the administrative position write. It accepts any valid
// position except Cancelled, which must go through Cancel so the order is
// archived and detached.
func (o *Order) AdvanceTo(p Position, now time.Time) error {
	if err := p.Validate(); err != nil {
		return err
	}
	if p == Cancelled {
		return errs.NewValueIsInvalidErrorWithCause("position", errors.New("use cancel to move an order to CANCELLED"))
	}
	if err := o.ensureActive(); err != nil {
		return err
	}

	o.moveTo(p, now)
	return nil
}

// AmountToPay is what the treasury pays the vendor at confirmation:
// total - deposit - discount + expenses. A negative result is rejected.
func (o *Order) AmountToPay(discount, expenses decimal.Decimal) (decimal.Decimal, error) {
	if err := errors.Join(
		kernel.ValidateNonNegativeAmount("discount", discount),
		kernel.ValidateNonNegativeAmount("expenses", expenses),
	); err != nil {
		return decimal.Zero, err
	}

	amount := kernel.RoundMoney(o.pricing.Total.Sub(o.pricing.Deposit).Sub(discount).Add(expenses))
	if amount.IsNegative() {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause("amount to pay",
			fmt.Errorf("total %s - deposit %s - discount %s + expenses %s is negative",
				o.pricing.Total, o.pricing.Deposit, discount, expenses))
	}
	return amount, nil
}

// ConfirmPurchase populates the invoice and moves the order to Purchased.
// The order must be UnderPurchase.
func (o *Order) ConfirmPurchase(s Settlement) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	if o.position != UnderPurchase {
		return errs.NewConflictError("order",
			fmt.Sprintf("purchase can only be confirmed from %s, order is %s", UnderPurchase, o.position))
	}
	if err := o.invoice.confirm(s); err != nil {
		return err
	}

	o.moveTo(Purchased, s.ConfirmedAt)
	return nil
}

// Detachment lists the containers an order left when it was cancelled; the
// caller decrements their counters.
type Detachment struct {
	CartID *kernel.UUID
	BoxID  *kernel.UUID
}

// Cancel archives the order. A not-yet-purchased order leaves its cart; any
// order leaves its box.
func (o *Order) Cancel(now time.Time) (Detachment, error) {
	if err := o.ensureActive(); err != nil {
		return Detachment{}, err
	}

	var d Detachment
	if o.cartID != nil && o.position.IsPrePurchase() {
		d.CartID = o.cartID
		o.cartID = nil
	}
	if o.boxID != nil {
		d.BoxID = o.boxID
		o.boxID = nil
	}

	o.archived = true
	o.moveTo(Cancelled, now)
	return d, nil
}

// JoinCart adds the order to a purchase cart and marks it UnderPurchase.
func (o *Order) JoinCart(cartID kernel.UUID, now time.Time) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	if !o.position.IsPrePurchase() {
		return errs.NewConflictError("order", fmt.Sprintf("only pre-purchase orders can join a cart, order is %s", o.position))
	}
	if o.cartID != nil {
		return errs.NewConflictError("order", "order already belongs to cart "+o.cartID.String())
	}

	o.cartID = &cartID
	o.moveTo(UnderPurchase, now)
	return nil
}

// LeaveCart removes the order from the cart and returns it to New.
func (o *Order) LeaveCart(cartID kernel.UUID, now time.Time) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	if o.cartID == nil || !o.cartID.IsEqual(cartID) {
		return errs.NewConflictError("order", "order is not a member of cart "+cartID.String())
	}
	if !o.position.IsPrePurchase() {
		return errs.NewConflictError("order", "purchased orders cannot leave their cart")
	}

	o.cartID = nil
	o.moveTo(New, now)
	return nil
}

func (o *Order) JoinBox(boxID kernel.UUID, now time.Time) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	if !o.position.IsBoxable() {
		return errs.NewConflictError("order", fmt.Sprintf("only purchased orders can be boxed, order is %s", o.position))
	}
	if o.boxID != nil {
		return errs.NewConflictError("order", "order is already packed in box "+o.boxID.String())
	}

	o.boxID = &boxID
	o.updatedAt = now
	return nil
}

// LeaveBox unpacks the order. Orders already handed to the carrier stay.
func (o *Order) LeaveBox(boxID kernel.UUID, now time.Time) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	if o.boxID == nil || !o.boxID.IsEqual(boxID) {
		return errs.NewConflictError("order", "order is not packed in box "+boxID.String())
	}
	if !o.position.IsBoxable() {
		return errs.NewConflictError("order", fmt.Sprintf("order is already %s", o.position))
	}

	o.boxID = nil
	o.updatedAt = now
	return nil
}

// SendToDelivery hands a ready order to the local courier.
func (o *Order) SendToDelivery(now time.Time) error {
	if err := o.ensureActive(); err != nil {
		return err
	}
	if o.position != ReadyForDelivery {
		return errs.NewConflictError("order",
			fmt.Sprintf("only %s orders can be sent to delivery, order is %s", ReadyForDelivery, o.position))
	}

	o.moveTo(OutForDelivery, now)
	return nil
}

func (o *Order) ensureActive() error {
	if o.archived {
		return errs.NewConflictError("order", "order "+o.id.String()+" is archived")
	}
	return nil
}

func (o *Order) moveTo(p Position, now time.Time) {
	o.position = p
	o.updatedAt = now
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setDetail(detail Detail) error {
	if err := detail.Validate(); err != nil {
		return err
	}
	o.detail = detail
	return nil
}

func (o *Order) setPricing(pricing Pricing) error {
	if err := pricing.Validate(); err != nil {
		return err
	}
	o.pricing = pricing
	return nil
}
