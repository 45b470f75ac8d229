package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRepairCountersCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRepairCountersCommand()

	drifted := testCart(t, 5, true)
	accurate := testCart(t, 2, true)
	emptied := testBox(t, 3, false)

	factory, uow := expectTx(ctx)
	mock.InOrder(
		uow.carts.On("ListForUpdate", ctx).Return([]*cart.Cart{drifted, accurate}, nil).Once(),
		uow.orders.On("CountCartMembers", ctx).Return(map[kernel.UUID]int{
			drifted.ID():  4,
			accurate.ID(): 2,
		}, nil).Once(),
		uow.carts.On("Update", ctx, drifted).Return(nil).Once(),
		uow.boxes.On("ListForUpdate", ctx).Return([]*box.Box{emptied}, nil).Once(),
		uow.orders.On("CountBoxMembers", ctx).Return(map[kernel.UUID]int{}, nil).Once(),
		uow.boxes.On("Update", ctx, emptied).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
	)

	// Act
	audit := &auditSpy{}
	handler := commands.NewRepairCountersCommandHandler(factory, audit)
	report, err := handler.Handle(ctx, cmd)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, commands.RepairReport{CartsRepaired: 1, BoxesRepaired: 1}, report)
	assert.Equal(t, 4, drifted.OrdersCount())
	assert.Equal(t, 0, emptied.OrdersCount())
	require.Len(t, audit.events, 2)
	assert.Equal(t, ports.ActionRepairCounters, audit.events[0].Action)
	assert.Equal(t, ports.EntityCart, audit.events[0].EntityType)
	assert.Equal(t, drifted.ID().String(), audit.events[0].EntityID)
	assert.Equal(t, 5, audit.events[0].Before["orders_count"])
	assert.Equal(t, 4, audit.events[0].After["orders_count"])
	assert.Equal(t, ports.EntityBox, audit.events[1].EntityType)
	assert.Equal(t, 3, audit.events[1].Before["orders_count"])
	assert.Equal(t, 0, audit.events[1].After["orders_count"])
	factory.AssertExpectations(t)
	uow.AssertAll(t)
}

func TestRepairCountersCommandHandler_Handle_NothingToRepair(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRepairCountersCommand()

	factory, uow := expectTx(ctx)
	uow.carts.On("ListForUpdate", ctx).Return([]*cart.Cart{}, nil).Once()
	uow.orders.On("CountCartMembers", ctx).Return(map[kernel.UUID]int{}, nil).Once()
	uow.boxes.On("ListForUpdate", ctx).Return([]*box.Box{}, nil).Once()
	uow.orders.On("CountBoxMembers", ctx).Return(map[kernel.UUID]int{}, nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()

	audit := &auditSpy{}
	handler := commands.NewRepairCountersCommandHandler(factory, audit)
	report, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, report)
	assert.Empty(t, audit.events)
	uow.AssertAll(t)
}

func TestRepairCountersCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.RepairCountersCommand{} // not constructed properly
	factory := new(MockUoWFactory)

	handler := commands.NewRepairCountersCommandHandler(factory, &auditSpy{})
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be created via NewRepairCountersCommand constructor")
}

func TestRepairCountersCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRepairCountersCommand()

	uow := newMockUoW()
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewRepairCountersCommandHandler(factory, &auditSpy{})
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "begin error")
	factory.AssertExpectations(t)
	uow.AssertAll(t)
}

func TestRepairCountersCommandHandler_Handle_CountError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRepairCountersCommand()

	factory, uow := expectTx(ctx)
	uow.carts.On("ListForUpdate", ctx).Return([]*cart.Cart{testCart(t, 1, true)}, nil).Once()
	uow.orders.On("CountCartMembers", ctx).Return(nil, errors.New("repository error")).Once()

	handler := commands.NewRepairCountersCommandHandler(factory, &auditSpy{})
	_, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository error")
	uow.AssertAll(t)
	uow.AssertNotCalled(t, "Commit", ctx)
}

func TestRefreshCollectionStatusesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRefreshCollectionStatusesCommand()

	stale := testCollection(t, collection.StatusInProgress, time.Now().UTC())
	current := testCollection(t, collection.StatusPartial, time.Now().UTC())
	reopened := testCollection(t, collection.StatusComplete, time.Now().UTC())

	listing := newMockUoW()
	listing.collections.On("ListIDsByStatus", ctx,
		[]collection.Status{collection.StatusInProgress, collection.StatusPartial, collection.StatusComplete}).
		Return([]kernel.UUID{stale.ID(), current.ID(), reopened.ID()}, nil).Once()

	staleTx := refreshTx(ctx)
	mock.InOrder(
		staleTx.collections.On("GetForUpdate", ctx, stale.ID()).Return(stale, nil).Once(),
		staleTx.orders.On("ListByCollection", ctx, stale.ID()).Return([]*order.Order{
			testOrder(t, order.Delivered, nil),
		}, nil).Once(),
		staleTx.collections.On("Update", ctx, stale).Return(nil).Once(),
		staleTx.On("Commit", ctx).Return(nil).Once(),
	)

	currentTx := refreshTx(ctx)
	currentTx.collections.On("GetForUpdate", ctx, current.ID()).Return(current, nil).Once()
	currentTx.orders.On("ListByCollection", ctx, current.ID()).Return([]*order.Order{
		testOrder(t, order.ReadyForDelivery, nil),
		testOrder(t, order.Shipping, nil),
	}, nil).Once()

	reopenedTx := refreshTx(ctx)
	mock.InOrder(
		reopenedTx.collections.On("GetForUpdate", ctx, reopened.ID()).Return(reopened, nil).Once(),
		reopenedTx.orders.On("ListByCollection", ctx, reopened.ID()).Return([]*order.Order{
			testOrder(t, order.Delivered, nil),
			testOrder(t, order.Preparing, nil),
		}, nil).Once(),
		reopenedTx.collections.On("Update", ctx, reopened).Return(nil).Once(),
		reopenedTx.On("Commit", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listing).Once()
	factory.On("Create").Return(staleTx).Once()
	factory.On("Create").Return(currentTx).Once()
	factory.On("Create").Return(reopenedTx).Once()

	audit := &auditSpy{}
	handler := commands.NewRefreshCollectionStatusesCommandHandler(factory, audit)
	changed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 2, changed)
	assert.Equal(t, collection.StatusComplete, stale.Status())
	assert.Equal(t, collection.StatusPartial, current.Status())
	assert.Equal(t, collection.StatusPartial, reopened.Status())
	currentTx.AssertNotCalled(t, "Commit", ctx)

	require.Len(t, audit.events, 2)
	assert.Equal(t, ports.EntityCollection, audit.events[1].EntityType)
	assert.Equal(t, reopened.ID().String(), audit.events[1].EntityID)
	assert.Equal(t, "complete", audit.events[1].Before["status"])
	assert.Equal(t, "partial", audit.events[1].After["status"])

	factory.AssertExpectations(t)
	for _, uow := range []*MockUoW{listing, staleTx, currentTx, reopenedTx} {
		uow.AssertAll(t)
	}
}

func TestRefreshCollectionStatusesCommandHandler_Handle_ContinuesPastFailure(t *testing.T) {
	ctx := t.Context()
	cmd := commands.NewRefreshCollectionStatusesCommand()

	missing := kernel.NewUUID()
	stale := testCollection(t, collection.StatusInProgress, time.Now().UTC())

	listing := newMockUoW()
	listing.collections.On("ListIDsByStatus", ctx, mock.Anything).
		Return([]kernel.UUID{missing, stale.ID()}, nil).Once()

	failingTx := refreshTx(ctx)
	failingTx.collections.On("GetForUpdate", ctx, missing).Return(nil, errors.New("lock timeout")).Once()

	staleTx := refreshTx(ctx)
	staleTx.collections.On("GetForUpdate", ctx, stale.ID()).Return(stale, nil).Once()
	staleTx.orders.On("ListByCollection", ctx, stale.ID()).Return([]*order.Order{
		testOrder(t, order.Delivered, nil),
	}, nil).Once()
	staleTx.collections.On("Update", ctx, stale).Return(nil).Once()
	staleTx.On("Commit", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(listing).Once()
	factory.On("Create").Return(failingTx).Once()
	factory.On("Create").Return(staleTx).Once()

	handler := commands.NewRefreshCollectionStatusesCommandHandler(factory, &auditSpy{})
	changed, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "lock timeout")
	assert.Contains(t, err.Error(), missing.String())
	assert.Equal(t, 1, changed)
	assert.Equal(t, collection.StatusComplete, stale.Status())
	failingTx.AssertAll(t)
	staleTx.AssertAll(t)
}

// refreshTx is a unit of work for one collection of the sweep.
func refreshTx(ctx context.Context) *MockUoW {
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Maybe()
	return uow
}
