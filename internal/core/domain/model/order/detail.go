package order

import (
	"errors"
	"strings"

	"fulfillment/internal/pkg/errs"
)

var ErrDetailIsNotConstructed = errors.New("Detail must be created via NewDetail constructor")

// Destination is where the customer expects the parcel.
type Destination struct {
	City    string
	Address string
}

// Detail describes the product being bought on the customer's behalf and
// where it goes. Title, link and destination city are required.
type Detail struct {
	title       string
	color       string
	size        string
	link        string
	image       string
	destination Destination

	isConstructed bool
}

// NewDetail validates and trims the product attributes. All missing required
// fields are reported together.
func NewDetail(title, color, size, link, image string, destination Destination) (Detail, error) {
	d := Detail{
		title:       strings.TrimSpace(title),
		color:       strings.TrimSpace(color),
		size:        strings.TrimSpace(size),
		link:        strings.TrimSpace(link),
		image:       strings.TrimSpace(image),
		destination: Destination{City: strings.TrimSpace(destination.City), Address: strings.TrimSpace(destination.Address)},
	}

	var problems []error
	if d.title == "" {
		problems = append(problems, errs.NewValueIsRequiredError("title"))
	}
	if d.link == "" {
		problems = append(problems, errs.NewValueIsRequiredError("link"))
	}
	if d.destination.City == "" {
		problems = append(problems, errs.NewValueIsRequiredError("destination city"))
	}
	if err := errors.Join(problems...); err != nil {
		return Detail{}, err
	}

	d.isConstructed = true
	return d, nil
}

func (d Detail) Validate() error {
	if !d.isConstructed {
		return ErrDetailIsNotConstructed
	}
	return nil
}

func (d Detail) Title() string { return d.title }
func (d Detail) Color() string { return d.color }
func (d Detail) Size() string { return d.size }
func (d Detail) Link() string { return d.link }
func (d Detail) Image() string { return d.image }
func (d Detail) Destination() Destination { return d.destination }
