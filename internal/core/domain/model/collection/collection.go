package collection

import (
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// MembershipWindow is how long after creation a collection keeps accepting
// the customer's new orders.
const MembershipWindow = 96 * time.Hour

var ErrCollectionIsNotConstructed = errors.New("Collection must be created via NewCollection constructor")

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusPartial    Status = "partial"
	StatusComplete   Status = "complete"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusInProgress, StatusPartial, StatusComplete:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("collection status", fmt.Errorf("%q is not a known status", s))
	}
}

// Progress counts the members of a collection that count towards delivery.
type Progress struct {
	Ready  int
	Active int
}

func (p Progress) String() string {
	return fmt.Sprintf("%d/%d", p.Ready, p.Active)
}

// Derive computes the status from member positions. Cancelled members are
// excluded; ready means ReadyForDelivery or later in the delivery chain.
func Derive(members []order.Position) (Status, Progress) {
	var progress Progress
	for _, p := range members {
		if p == order.Cancelled {
			continue
		}
		progress.Active++
		if p.IsReady() {
			progress.Ready++
		}
	}

	switch {
	case progress.Ready == 0:
		return StatusInProgress, progress
	case progress.Ready < progress.Active:
		return StatusPartial, progress
	default:
		return StatusComplete, progress
	}
}

// Collection groups one customer's orders placed within the membership window
// so they are delivered together. Its status is a cache of Derive over the
// member positions.
type Collection struct {
	id           kernel.UUID
	customerID   kernel.UUID
	status       Status
	prepaidValue decimal.Decimal
	total        decimal.Decimal
	createdAt    time.Time

	guard guard.ConstructorGuard
}

func NewCollection(id, customerID kernel.UUID, now time.Time) (*Collection, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	return &Collection{
		id:         id,
		customerID: customerID,
		status:     StatusInProgress,
		createdAt:  now,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func RestoreCollection(
	id, customerID kernel.UUID,
	status Status,
	prepaidValue, total decimal.Decimal,
	createdAt time.Time,
) (*Collection, error) {
	if err := errors.Join(id.Validate(), customerID.Validate()); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Collection{
		id:           id,
		customerID:   customerID,
		status:       status,
		prepaidValue: prepaidValue,
		total:        total,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c *Collection) Validate() error {
	if c == nil {
		return ErrCollectionIsNotConstructed
	}
	return c.guard.Validate(ErrCollectionIsNotConstructed)
}

func (c *Collection) ID() kernel.UUID { return c.id }
func (c *Collection) CustomerID() kernel.UUID { return c.customerID }
func (c *Collection) Status() Status { return c.status }
func (c *Collection) PrepaidValue() decimal.Decimal { return c.prepaidValue }
func (c *Collection) Total() decimal.Decimal { return c.total }
func (c *Collection) CreatedAt() time.Time { return c.createdAt }

// IsJoinableAt reports whether an order created at now may join.
func (c *Collection) IsJoinableAt(now time.Time) bool {
	return now.Sub(c.createdAt) <= MembershipWindow
}

// Include adds an order's total and deposit to the running sums.
func (c *Collection) Include(total, deposit decimal.Decimal) {
	c.total = kernel.RoundMoney(c.total.Add(total))
	c.prepaidValue = kernel.RoundMoney(c.prepaidValue.Add(deposit))
}

// Exclude removes an order's amounts when it is deleted. Sums never go below zero.
func (c *Collection) Exclude(total, deposit decimal.Decimal) {
	c.total = decimal.Max(decimal.Zero, kernel.RoundMoney(c.total.Sub(total)))
	c.prepaidValue = decimal.Max(decimal.Zero, kernel.RoundMoney(c.prepaidValue.Sub(deposit)))
}

// Recompute refreshes the cached status and reports whether it changed.
func (c *Collection) Recompute(members []order.Position) bool {
	status, _ := Derive(members)
	if status == c.status {
		return false
	}
	c.status = status
	return true
}

// EnsureDeliverable checks every active member is ready. The conflict names
// the ready/active ratio.
func (c *Collection) EnsureDeliverable(members []order.Position) error {
	_, progress := Derive(members)
	if progress.Active == 0 || progress.Ready < progress.Active {
		return errs.NewConflictError("collection",
			fmt.Sprintf("only %s orders of collection %s are ready for delivery", progress, c.id))
	}
	return nil
}

func (c *Collection) MarkComplete() {
	c.status = StatusComplete
}
