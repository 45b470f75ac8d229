package cmd

import (
	"errors"
	"log/slog"
	"os"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/audit"
	"fulfillment/internal/adapters/out/authz"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/customerrepo"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/jobs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	logger      *slog.Logger
	audit       *audit.ZapRecorder
	authorizer  *authz.StaticAuthorizer
	carrierConn *grpc.ClientConn
	carrier     *carrier.GRPCGateway
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB) (*CompositionRoot, error) {
	authorizer, err := authz.ParseGrants(configs.AuthorizedActors)
	if err != nil {
		return nil, err
	}

	conn, err := carrier.Dial(configs.CarrierGrpcHost)
	if err != nil {
		return nil, err
	}

	auditLogger, err := zap.NewProduction()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:      slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()})),
		audit:       audit.NewZapRecorder(auditLogger),
		authorizer:  authorizer,
		carrierConn: conn,
		carrier:     carrier.NewGRPCGateway(conn, carrier.DefaultTimeout),
	}, nil
}

// Logger is the structured logger shared by jobs and read paths.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

// Close releases the carrier connection and flushes the audit log.
func (c *CompositionRoot) Close() error {
	return errors.Join(c.carrierConn.Close(), c.audit.Sync())
}

func (c *CompositionRoot) unitOfWorkFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) treasuryUoWFactory() commands.TreasuryUoWFactory {
	return FuncTreasuryUoWFactory(func() commands.TreasuryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(
		c.unitOfWorkFactory(),
		customerrepo.NewGormCustomerDirectory(c.gormDB),
		c.audit,
	)
}

func (c *CompositionRoot) CreateConvertCurrencyCommandHandler() commands.ConvertCurrencyCommandHandler {
	return commands.NewConvertCurrencyCommandHandler(c.treasuryUoWFactory(), services.NewCurrencyConverter(), c.audit)
}

func (c *CompositionRoot) CreateRefreshCollectionStatusesCommandHandler() *commands.RefreshCollectionStatusesCommandHandler {
	handler := commands.NewRefreshCollectionStatusesCommandHandler(c.unitOfWorkFactory(), c.audit)
	return &handler
}

func (c *CompositionRoot) CreateRepairCountersCommandHandler() *commands.RepairCountersCommandHandler {
	handler := commands.NewRepairCountersCommandHandler(c.unitOfWorkFactory(), c.audit)
	return &handler
}

func (c *CompositionRoot) CreateGetCollectionQueryHandler() queries.GetCollectionQueryHandler {
	return queries.NewGetCollectionQueryHandler(c.gormDB, c.logger)
}

// CreateHTTPHandlers wires every use case the HTTP surface exposes.
func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	f := c.unitOfWorkFactory()
	tf := c.treasuryUoWFactory()

	return httpin.Handlers{
		CreateOrder:       c.CreateCreateOrderCommandHandler(),
		AdvancePosition:   commands.NewAdvancePositionCommandHandler(f, c.audit),
		ConfirmPurchase:   commands.NewConfirmPurchaseCommandHandler(f, c.audit),
		CancelOrder:       commands.NewCancelOrderCommandHandler(f, c.audit),
		DeleteOrder:       commands.NewDeleteOrderCommandHandler(f, c.audit),
		CreateCart:        commands.NewCreateCartCommandHandler(f, c.audit),
		AddOrderToCart:    commands.NewAddOrderToCartCommandHandler(f, c.audit),
		RemoveFromCart:    commands.NewRemoveOrderFromCartCommandHandler(f, c.audit),
		CloseCart:         commands.NewCloseCartIfCompleteCommandHandler(f, c.audit),
		CreateBox:         commands.NewCreateBoxCommandHandler(f, c.audit),
		CloseBox:          commands.NewCloseBoxCommandHandler(f, c.audit),
		AddOrderToBox:     commands.NewAddOrderToBoxCommandHandler(f, c.audit),
		RemoveFromBox:     commands.NewRemoveOrderFromBoxCommandHandler(f, c.audit),
		RecomputeStatus:   commands.NewRecomputeCollectionStatusCommandHandler(f),
		DeliverCollection: commands.NewSendCollectionToDeliveryCommandHandler(f, c.audit),
		DeliverOrder:      commands.NewSendOrderToDeliveryCommandHandler(f, c.audit),
		CreateShipment:    commands.NewCreateShipmentCommandHandler(f, c.carrier, c.audit),
		SendShipment:      commands.NewSendShipmentCommandHandler(f, c.carrier, c.audit),
		ShipmentArrived:   commands.NewMarkShipmentArrivedCommandHandler(f, c.carrier, c.audit),
		PostEntry:         commands.NewPostTreasuryEntryCommandHandler(tf, c.audit),
		ConvertCurrency:   c.CreateConvertCurrencyCommandHandler(),
		Redistribute:      commands.NewRedistributeForeignCommandHandler(tf, c.audit),
		RepairCounters:    c.CreateRepairCountersCommandHandler(),

		GetOrder:         queries.NewGetOrderQueryHandler(c.gormDB),
		StatusCounts:     queries.NewGetOrderStatusCountsQueryHandler(c.gormDB),
		GetCollection:    c.CreateGetCollectionQueryHandler(),
		CartReport:       queries.NewGetCartReportQueryHandler(c.gormDB),
		TreasuryBalances: queries.NewGetTreasuryBalancesQueryHandler(c.gormDB),
		FinancialSummary: queries.NewGetFinancialSummaryQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) NewEcho() (*echo.Echo, error) {
	return httpin.NewEcho(httpin.NewServer(c.CreateHTTPHandlers()), c.authorizer)
}

func (c *CompositionRoot) NewJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateRefreshCollectionStatusesCommandHandler(),
		c.CreateRepairCountersCommandHandler(),
		jobs.Schedules{
			CollectionRefresh: c.configs.CollectionRefreshSchedule,
			CounterRepair:     c.configs.CounterRepairSchedule,
		},
		c.logger,
	)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncTreasuryUoWFactory func() commands.TreasuryUoW

func (f FuncTreasuryUoWFactory) Create() commands.TreasuryUoW {
	return f()
}
