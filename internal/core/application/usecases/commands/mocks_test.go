package commands_test

import (
	"context"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCart(ctx context.Context, cartID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, cartID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByBox(ctx context.Context, boxID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, boxID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCollectionForUpdate(ctx context.Context, collectionID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListByCollection(ctx context.Context, collectionID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AdvanceBoxMembers(
	ctx context.Context,
	boxID kernel.UUID,
	from []order.Position,
	to order.Position,
) (int64, error) {
	args := m.Called(ctx, boxID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) AdvanceCollectionMembers(
	ctx context.Context,
	collectionID kernel.UUID,
	from []order.Position,
	to order.Position,
) (int64, error) {
	args := m.Called(ctx, collectionID, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) CountCartMembers(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

func (m *MockOrderRepository) CountBoxMembers(ctx context.Context) (map[kernel.UUID]int, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[kernel.UUID]int), args.Error(1)
}

type MockCartRepository struct{ mock.Mock }

func (m *MockCartRepository) Add(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Update(ctx context.Context, c *cart.Cart) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCartRepository) Get(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cart.Cart, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockCartRepository) ListForUpdate(ctx context.Context) ([]*cart.Cart, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.Cart), args.Error(1)
}

type MockBoxRepository struct{ mock.Mock }

func (m *MockBoxRepository) Add(ctx context.Context, b *box.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Update(ctx context.Context, b *box.Box) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBoxRepository) Get(ctx context.Context, id kernel.UUID) (*box.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*box.Box), args.Error(1)
}

func (m *MockBoxRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*box.Box, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*box.Box), args.Error(1)
}

func (m *MockBoxRepository) ListForUpdate(ctx context.Context) ([]*box.Box, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*box.Box), args.Error(1)
}

type MockCollectionRepository struct{ mock.Mock }

func (m *MockCollectionRepository) Add(ctx context.Context, c *collection.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) Update(ctx context.Context, c *collection.Collection) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCollectionRepository) Get(ctx context.Context, id kernel.UUID) (*collection.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*collection.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindLatestForCustomerForUpdate(
	ctx context.Context,
	customerID kernel.UUID,
) (*collection.Collection, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*collection.Collection), args.Error(1)
}

func (m *MockCollectionRepository) ListIDsByStatus(
	ctx context.Context,
	statuses ...collection.Status,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shipment.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) ExistsForBox(ctx context.Context, boxID kernel.UUID) (bool, error) {
	args := m.Called(ctx, boxID)
	return args.Bool(0), args.Error(1)
}

type MockTreasuryRepository struct{ mock.Mock }

func (m *MockTreasuryRepository) Get(ctx context.Context, kind treasury.Kind) (*treasury.Ledger, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treasury.Ledger), args.Error(1)
}

func (m *MockTreasuryRepository) GetForUpdate(ctx context.Context, kind treasury.Kind) (*treasury.Ledger, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*treasury.Ledger), args.Error(1)
}

func (m *MockTreasuryRepository) Save(ctx context.Context, l *treasury.Ledger) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

// MockUoW hands out the repositories configured on it. Repository accessors
// are not recorded as calls so expectations stay focused on data access.
type MockUoW struct {
	mock.Mock

	orders      *MockOrderRepository
	carts       *MockCartRepository
	boxes       *MockBoxRepository
	collections *MockCollectionRepository
	shipments   *MockShipmentRepository
	treasury    *MockTreasuryRepository
}

func newMockUoW() *MockUoW {
	return &MockUoW{
		orders:      new(MockOrderRepository),
		carts:       new(MockCartRepository),
		boxes:       new(MockBoxRepository),
		collections: new(MockCollectionRepository),
		shipments:   new(MockShipmentRepository),
		treasury:    new(MockTreasuryRepository),
	}
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository           { return m.orders }
func (m *MockUoW) CartRepository() ports.CartRepository             { return m.carts }
func (m *MockUoW) BoxRepository() ports.BoxRepository               { return m.boxes }
func (m *MockUoW) CollectionRepository() ports.CollectionRepository { return m.collections }
func (m *MockUoW) ShipmentRepository() ports.ShipmentRepository     { return m.shipments }
func (m *MockUoW) TreasuryRepository() ports.TreasuryRepository     { return m.treasury }

// AssertAll checks the unit of work and every repository it handed out.
func (m *MockUoW) AssertAll(t mock.TestingT) {
	m.AssertExpectations(t)
	m.orders.AssertExpectations(t)
	m.carts.AssertExpectations(t)
	m.boxes.AssertExpectations(t)
	m.collections.AssertExpectations(t)
	m.shipments.AssertExpectations(t)
	m.treasury.AssertExpectations(t)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockTreasuryUoWFactory struct{ mock.Mock }

func (m *MockTreasuryUoWFactory) Create() commands.TreasuryUoW {
	args := m.Called()
	return args.Get(0).(commands.TreasuryUoW)
}

type MockCustomerDirectory struct{ mock.Mock }

func (m *MockCustomerDirectory) ResolveByHandle(ctx context.Context, handle string) (ports.Customer, error) {
	args := m.Called(ctx, handle)
	return args.Get(0).(ports.Customer), args.Error(1)
}

type MockCarrierGateway struct{ mock.Mock }

func (m *MockCarrierGateway) RegisterShipment(ctx context.Context, s ports.CarrierShipment) (string, error) {
	args := m.Called(ctx, s)
	return args.String(0), args.Error(1)
}

func (m *MockCarrierGateway) UpdateShipmentStatus(ctx context.Context, ref string, status string) error {
	args := m.Called(ctx, ref, status)
	return args.Error(0)
}

// auditSpy collects recorded events.
type auditSpy struct {
	events []ports.AuditEvent
}

func (s *auditSpy) Record(_ context.Context, event ports.AuditEvent) {
	s.events = append(s.events, event)
}

// expectTx wires a factory to a fresh unit of work whose Begin succeeds and
// whose deferred Rollback is tolerated.
func expectTx(ctx context.Context) (*MockUoWFactory, *MockUoW) {
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Maybe()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}

func expectTreasuryTx(ctx context.Context) (*MockTreasuryUoWFactory, *MockUoW) {
	uow := newMockUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Maybe()

	factory := new(MockTreasuryUoWFactory)
	factory.On("Create").Return(uow).Once()
	return factory, uow
}
