// Package shipment implements the carrier Shipment created for a closed box.
package shipment

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrShipmentIsNotConstructed = errors.New("Shipment must be created via NewShipment constructor")

type Status string

const (
	StatusReady    Status = "ready"
	StatusShipping Status = "shipping"
	StatusArrived  Status = "arrived"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusReady, StatusShipping, StatusArrived:
		return Status(s), nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("shipment status", fmt.Errorf("%q is not a known status", s))
	}
}

// Manifest is what the operator declares when handing a box to a carrier.
type Manifest struct {
	Carrier string
	Sender  string
	Weight  decimal.Decimal
	Images  []string
}

func (m Manifest) Validate() error {
	var problems []error
	if strings.TrimSpace(m.Carrier) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("carrier"))
	}
	if strings.TrimSpace(m.Sender) == "" {
		problems = append(problems, errs.NewValueIsRequiredError("sender"))
	}
	problems = append(problems, kernel.ValidatePositiveAmount("weight", m.Weight))
	for _, img := range m.Images {
		if u, err := url.Parse(img); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("image", fmt.Errorf("%q is not an absolute URL", img)))
		}
	}
	return errors.Join(problems...)
}

// Shipment tracks one box through the carrier: ready -> shipping -> arrived.
type Shipment struct {
	id         kernel.UUID
	boxID      kernel.UUID
	status     Status
	manifest   Manifest
	carrierRef string
	createdAt  time.Time

	guard guard.ConstructorGuard
}

func NewShipment(id, boxID kernel.UUID, manifest Manifest, now time.Time) (*Shipment, error) {
	if err := errors.Join(id.Validate(), boxID.Validate(), manifest.Validate()); err != nil {
		return nil, err
	}
	return &Shipment{
		id:        id,
		boxID:     boxID,
		status:    StatusReady,
		manifest:  manifest,
		createdAt: now,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func RestoreShipment(
	id, boxID kernel.UUID,
	status Status,
	manifest Manifest,
	carrierRef string,
	createdAt time.Time,
) (*Shipment, error) {
	if err := errors.Join(id.Validate(), boxID.Validate()); err != nil {
		return nil, err
	}
	if _, err := ParseStatus(string(status)); err != nil {
		return nil, err
	}
	return &Shipment{
		id:         id,
		boxID:      boxID,
		status:     status,
		manifest:   manifest,
		carrierRef: carrierRef,
		createdAt:  createdAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (s *Shipment) Validate() error {
	if s == nil {
		return ErrShipmentIsNotConstructed
	}
	return s.guard.Validate(ErrShipmentIsNotConstructed)
}

func (s *Shipment) ID() kernel.UUID {
	return s.id
}

func (s *Shipment) BoxID() kernel.UUID {
	return s.boxID
}

func (s *Shipment) Status() Status {
	return s.status
}

func (s *Shipment) Manifest() Manifest {
	return s.manifest
}

// CarrierRef is the tracking reference issued by the carrier, empty until registered.
func (s *Shipment) CarrierRef() string {
	return s.carrierRef
}

func (s *Shipment) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Shipment) AttachCarrierRef(ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return errs.NewValueIsRequiredError("carrier reference")
	}
	s.carrierRef = ref
	return nil
}

// Send marks the shipment as handed to the carrier.
func (s *Shipment) Send() error {
	return s.transition(StatusReady, StatusShipping)
}

// Arrive marks the shipment as received in the destination country.
func (s *Shipment) Arrive() error {
	return s.transition(StatusShipping, StatusArrived)
}

func (s *Shipment) transition(from, to Status) error {
	if s.status != from {
		return errs.NewConflictError("shipment",
			fmt.Sprintf("shipment must be %s to become %s, it is %s", from, to, s.status))
	}
	s.status = to
	return nil
}
