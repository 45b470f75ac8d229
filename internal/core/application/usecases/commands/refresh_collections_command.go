package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRefreshCollectionStatusesCommandIsNotConstructed = errors.New(
	"RefreshCollectionStatusesCommand must be created via NewRefreshCollectionStatusesCommand constructor",
)

// RefreshCollectionStatusesCommand recomputes the cached status of every
// collection.
//
// Example:
//
//	cmd := NewRefreshCollectionStatusesCommand()
//	handler := NewRefreshCollectionStatusesCommandHandler(uowFactory, audit)
//	changed, err := handler.Handle(ctx, cmd)
type RefreshCollectionStatusesCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshCollectionStatusesCommand creates a parameterless refresh command.
func NewRefreshCollectionStatusesCommand() RefreshCollectionStatusesCommand {
	return RefreshCollectionStatusesCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *RefreshCollectionStatusesCommand) Validate() error {
	return c.guard.Validate(ErrRefreshCollectionStatusesCommandIsNotConstructed)
}
