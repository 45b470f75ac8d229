package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

// RepairCountersCommand triggers a recount of cart and box membership.
// Counters are kept in step with membership by every transition; the repair
// only fixes drift left by manual data corrections.
//
// Example:
//
//	cmd := NewRepairCountersCommand()
//	handler := NewRepairCountersCommandHandler(uowFactory, audit)
//
//	// Scheduled by the counter repair job
//	report, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    log.Printf("Counter repair failed: %v", err)
//	}
type RepairCountersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrRepairCountersCommandIsNotConstructed = errors.New(
		"RepairCountersCommand must be created via NewRepairCountersCommand constructor",
	)
)

// NewRepairCountersCommand creates a parameterless repair command covering
// every cart and box.
func NewRepairCountersCommand() RepairCountersCommand {
	command := RepairCountersCommand{
		guard: guard.NewConstructorGuard(),
	}

	return command
}

// Validate ensures the command was created through the constructor.
// Returns ErrRepairCountersCommandIsNotConstructed if validation fails.
func (c *RepairCountersCommand) Validate() error {
	return c.guard.Validate(ErrRepairCountersCommandIsNotConstructed)
}
