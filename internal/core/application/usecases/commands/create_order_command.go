package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a customer's purchase request. The quote is
// optional: without a product price the order is created unpriced.
//
// Example:
//
//	detail, _ := order.NewDetail("Sneakers", "white", "42", link, "", order.Destination{City: "Erbil"})
//	cmd, err := NewCreateOrderCommand(kernel.NewUUID(), "@sara", detail, &services.QuoteInput{...})
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID        kernel.UUID
	customerHandle string
	detail         order.Detail
	quote          *services.QuoteInput

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	orderID kernel.UUID,
	customerHandle string,
	detail order.Detail,
	quote *services.QuoteInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		quote: quote,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setCustomerHandle(customerHandle),
		cmd.setDetail(detail),
		cmd.validateQuote(),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) CustomerHandle() string {
	return c.customerHandle
}

func (c CreateOrderCommand) Detail() order.Detail {
	return c.detail
}

// Quote returns the pricing inputs, or nil for an unpriced order.
func (c CreateOrderCommand) Quote() *services.QuoteInput {
	return c.quote
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setCustomerHandle(handle string) error {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return errs.NewValueIsRequiredError("customer handle")
	}
	c.customerHandle = handle
	return nil
}

func (c *CreateOrderCommand) setDetail(detail order.Detail) error {
	if err := detail.Validate(); err != nil {
		return err
	}
	c.detail = detail
	return nil
}

func (c *CreateOrderCommand) validateQuote() error {
	if c.quote == nil {
		return nil
	}
	return c.quote.Validate()
}
