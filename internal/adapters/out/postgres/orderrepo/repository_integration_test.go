package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite verifies order persistence against a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
	now        time.Time
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	container, db, err := pgtest.Start(context.Background())
	suite.container = container
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(pgtest.Truncate(context.Background(), suite.db))

	suite.tracker = new(MockAggregateTracker)
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.now = time.Now().UTC().Truncate(time.Microsecond)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_RoundTripsDetailPricingAndInvoice() {
	ctx := context.Background()
	o := suite.newOrder(nil)

	suite.Require().NoError(suite.repository.Add(ctx, o))
	suite.tracker.AssertCalled(suite.T(), "TrackAggregate", o.ID(), o)

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Equal(order.New, loaded.Position())
	suite.Equal("Sneakers", loaded.Detail().Title())
	suite.Equal("Erbil", loaded.Detail().Destination().City)
	suite.True(decimal.RequireFromString("165").Equal(loaded.Pricing().Total))
	suite.True(decimal.RequireFromString("33").Equal(loaded.Pricing().Deposit))
	suite.Equal(o.Invoice().ID, loaded.Invoice().ID)
	suite.False(loaded.Invoice().IsConfirmed())
	suite.True(loaded.Invoice().SettledAmount().IsZero())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateIsConflict() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.repository.Add(ctx, o)

	suite.Require().Error(err)
	suite.Equal(errs.KindConflict, errs.KindOf(err))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsMembershipAndFillsInvoice() {
	ctx := context.Background()
	cartID := kernel.NewUUID()
	o := suite.newOrder(nil)
	suite.Require().NoError(o.JoinCart(cartID, suite.now))
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.ConfirmPurchase(order.Settlement{
		ItemPrice:      decimal.RequireFromString("100"),
		Quantity:       1,
		Total:          decimal.RequireFromString("165"),
		AmountPaid:     decimal.RequireFromString("132"),
		PaymentMethod:  order.PaymentCard,
		PurchaseMethod: order.PurchaseOnline,
		Discount:       decimal.Zero,
		Expenses:       decimal.Zero,
		CartID:         &cartID,
		ConfirmedAt:    suite.now,
	}))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Purchased, loaded.Position())
	suite.True(loaded.Invoice().IsConfirmed())
	suite.True(decimal.RequireFromString("132").Equal(loaded.Invoice().CardPaidAmount))
	suite.True(loaded.Invoice().CashAmount.IsZero())
	suite.Require().NotNil(loaded.Invoice().CartID)
	suite.Equal(cartID, *loaded.Invoice().CartID)

	boxID := kernel.NewUUID()
	suite.Require().NoError(loaded.JoinBox(boxID, suite.now))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	// Cancelling unpacks the order; the nil box_id must be written, not skipped.
	detached, err := loaded.Cancel(suite.now)
	suite.Require().NoError(err)
	suite.Require().NotNil(detached.BoxID)
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	cancelled, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, cancelled.Position())
	suite.True(cancelled.IsArchived())
	suite.Nil(cancelled.BoxID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrderIsNotFound() {
	err := suite.repository.Update(context.Background(), suite.newOrder(nil))

	suite.Require().Error(err)
	suite.Equal(errs.KindNotFound, errs.KindOf(err))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().Error(err)
	suite.ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestListByCollection() {
	ctx := context.Background()
	collectionID := kernel.NewUUID()
	first := suite.newOrder(&collectionID)
	second := suite.newOrder(&collectionID)
	other := suite.newOrder(nil)
	for _, o := range []*order.Order{first, second, other} {
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}

	members, err := suite.repository.ListByCollection(ctx, collectionID)

	suite.Require().NoError(err)
	suite.Len(members, 2)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdvanceBoxMembers_MovesOnlyMatchingPositions() {
	ctx := context.Background()
	boxID := kernel.NewUUID()

	purchased := suite.boxedOrder(boxID, order.Purchased)
	abroad := suite.boxedOrder(boxID, order.ReceivedAbroad)
	arrived := suite.boxedOrder(boxID, order.ArrivedLocal)

	moved, err := suite.repository.AdvanceBoxMembers(ctx, boxID,
		[]order.Position{order.Purchased, order.ReceivedAbroad}, order.Shipping)

	suite.Require().NoError(err)
	suite.Equal(int64(2), moved)
	suite.assertPosition(purchased.ID(), order.Shipping)
	suite.assertPosition(abroad.ID(), order.Shipping)
	suite.assertPosition(arrived.ID(), order.ArrivedLocal)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestCountCartMembers() {
	ctx := context.Background()
	cartA, cartB := kernel.NewUUID(), kernel.NewUUID()
	for _, cartID := range []kernel.UUID{cartA, cartA, cartB} {
		o := suite.newOrder(nil)
		suite.Require().NoError(o.JoinCart(cartID, suite.now))
		suite.Require().NoError(suite.repository.Add(ctx, o))
	}
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder(nil)))

	counts, err := suite.repository.CountCartMembers(ctx)

	suite.Require().NoError(err)
	suite.Equal(map[kernel.UUID]int{cartA: 2, cartB: 1}, counts)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_RemovesOrderAndInvoice() {
	ctx := context.Background()
	o := suite.newOrder(nil)
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))

	var invoices int64
	suite.Require().NoError(suite.db.Model(&orderrepo.InvoiceDTO{}).Count(&invoices).Error)
	suite.Zero(invoices)

	err := suite.repository.Delete(ctx, o.ID())
	suite.Equal(errs.KindNotFound, errs.KindOf(err))
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(collectionID *kernel.UUID) *order.Order {
	detail, err := order.NewDetail("Sneakers", "white", "42", "https://shop.example/item/1", "",
		order.Destination{City: "Erbil", Address: "60m street"})
	suite.Require().NoError(err)

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), collectionID, detail, order.Pricing{
		ForeignPrice:  decimal.RequireFromString("100"),
		Quantity:      1,
		ExchangeRate:  decimal.RequireFromString("1.5"),
		CommissionPct: decimal.RequireFromString("10"),
		DepositPct:    decimal.RequireFromString("20"),
		LocalPrice:    decimal.RequireFromString("150"),
		Commission:    decimal.RequireFromString("15"),
		Total:         decimal.RequireFromString("165"),
		Deposit:       decimal.RequireFromString("33"),
	}, suite.now)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) boxedOrder(boxID kernel.UUID, p order.Position) *order.Order {
	o := suite.newOrder(nil)
	suite.Require().NoError(o.AdvanceTo(order.Purchased, suite.now))
	suite.Require().NoError(o.JoinBox(boxID, suite.now))
	suite.Require().NoError(o.AdvanceTo(p, suite.now))
	suite.Require().NoError(suite.repository.Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertPosition(id kernel.UUID, want order.Position) {
	loaded, err := suite.repository.Get(context.Background(), id)
	suite.Require().NoError(err)
	suite.Equal(want, loaded.Position())
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
