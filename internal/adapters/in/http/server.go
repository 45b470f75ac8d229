package http

import (
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/shipment"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Handlers bundles the use cases the HTTP surface drives.
type Handlers struct {
	CreateOrder       commands.CreateOrderCommandHandler
	AdvancePosition   commands.AdvancePositionCommandHandler
	ConfirmPurchase   commands.ConfirmPurchaseCommandHandler
	CancelOrder       commands.CancelOrderCommandHandler
	DeleteOrder       commands.DeleteOrderCommandHandler
	CreateCart        commands.CreateCartCommandHandler
	AddOrderToCart    commands.AddOrderToCartCommandHandler
	RemoveFromCart    commands.RemoveOrderFromCartCommandHandler
	CloseCart         commands.CloseCartIfCompleteCommandHandler
	CreateBox         commands.CreateBoxCommandHandler
	CloseBox          commands.CloseBoxCommandHandler
	AddOrderToBox     commands.AddOrderToBoxCommandHandler
	RemoveFromBox     commands.RemoveOrderFromBoxCommandHandler
	RecomputeStatus   commands.RecomputeCollectionStatusCommandHandler
	DeliverCollection commands.SendCollectionToDeliveryCommandHandler
	DeliverOrder      commands.SendOrderToDeliveryCommandHandler
	CreateShipment    commands.CreateShipmentCommandHandler
	SendShipment      commands.SendShipmentCommandHandler
	ShipmentArrived   commands.MarkShipmentArrivedCommandHandler
	PostEntry         commands.PostTreasuryEntryCommandHandler
	ConvertCurrency   commands.ConvertCurrencyCommandHandler
	Redistribute      commands.RedistributeForeignCommandHandler
	RepairCounters    *commands.RepairCountersCommandHandler

	GetOrder         queries.GetOrderQueryHandler
	StatusCounts     queries.GetOrderStatusCountsQueryHandler
	GetCollection    queries.GetCollectionQueryHandler
	CartReport       queries.GetCartReportQueryHandler
	TreasuryBalances queries.GetTreasuryBalancesQueryHandler
	FinancialSummary queries.GetFinancialSummaryQueryHandler
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

func pathID(ctx echo.Context, name string) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(raw[:])
}

func bodyID(name string, raw openapi_types.UUID) (kernel.UUID, error) {
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func bind(ctx echo.Context, body any) error {
	if err := ctx.Bind(body); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("body", err)
	}
	return nil
}

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var body NewOrder
	if err := bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}

	detail, err := order.NewDetail(body.Title, body.Color, body.Size, body.Link, body.Image,
		order.Destination{City: body.City, Address: body.Address})
	if err != nil {
		return respondError(ctx, err)
	}

	var quote *services.QuoteInput
	if body.Quote != nil {
		quote = &services.QuoteInput{
			ForeignPrice:    body.Quote.ForeignPrice,
			Quantity:        body.Quote.Quantity,
			ExchangeRate:    body.Quote.ExchangeRate,
			CommissionPct:   body.Quote.CommissionPct,
			DepositPct:      body.Quote.DepositPct,
			ShippingCost:    body.Quote.ShippingCost,
			PayerIsReceiver: body.Quote.PayerIsReceiver,
		}
	}

	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(orderID, body.CustomerHandle, detail, quote)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, Created{ID: orderID.Bytes()})
}

// GetOrderStatusCounts handles GET /api/v1/orders/status-counts.
func (s *Server) GetOrderStatusCounts(ctx echo.Context) error {
	counts, err := s.h.StatusCounts.Handle(ctx.Request().Context(), queries.NewGetOrderStatusCountsQuery())
	if err != nil {
		return respondError(ctx, err)
	}

	type statusCount struct {
		Position string `json:"position"`
		Code     int    `json:"code"`
		Count    int64  `json:"count"`
	}
	response := make([]statusCount, len(counts))
	for i, c := range counts {
		response[i] = statusCount{Position: c.Position, Code: c.Code, Count: c.Count}
	}
	return ctx.JSON(http.StatusOK, response)
}

// GetOrder handles GET /api/v1/orders/{orderId}.
func (s *Server) GetOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	query, err := queries.NewGetOrderQuery(orderID)
	if err != nil {
		return respondError(ctx, err)
	}

	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, orderFromView(view))
}

// DeleteOrder handles DELETE /api/v1/orders/{orderId}.
func (s *Server) DeleteOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewDeleteOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.DeleteOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// AdvanceOrderPosition handles POST /api/v1/orders/{orderId}/position.
func (s *Server) AdvanceOrderPosition(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	var body PositionChange
	if err = bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}
	position, err := order.ParsePosition(body.Position)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewAdvancePositionCommand(orderID, position)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.AdvancePosition.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// ConfirmPurchase handles POST /api/v1/orders/{orderId}/confirm-purchase.
func (s *Server) ConfirmPurchase(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	var body PurchaseConfirmation
	if err = bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewConfirmPurchaseCommand(orderID,
		order.PaymentMethod(body.PaymentMethod), order.PurchaseMethod(body.PurchaseMethod),
		body.Discount, body.Expenses)
	if err != nil {
		return respondError(ctx, err)
	}

	result, err := s.h.ConfirmPurchase.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, struct {
		AmountPaid decimal.Decimal `json:"amount_paid"`
		CartClosed bool            `json:"cart_closed"`
	}{result.AmountPaid, result.CartClosed})
}

// CancelOrder handles POST /api/v1/orders/{orderId}/cancel.
func (s *Server) CancelOrder(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewCancelOrderCommand(orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CancelOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateCart handles POST /api/v1/carts.
func (s *Server) CreateCart(ctx echo.Context) error {
	cartID := kernel.NewUUID()
	cmd, err := commands.NewCreateCartCommand(cartID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CreateCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: cartID.Bytes()})
}

func (s *Server) cartOrderCommand(ctx echo.Context, orderID *kernel.UUID) (commands.CartOrderCommand, error) {
	cartID, err := pathID(ctx, "cartId")
	if err != nil {
		return commands.CartOrderCommand{}, err
	}
	if orderID == nil {
		var body OrderRef
		if err = bind(ctx, &body); err != nil {
			return commands.CartOrderCommand{}, err
		}
		id, err := bodyID("order_id", body.OrderID)
		if err != nil {
			return commands.CartOrderCommand{}, err
		}
		orderID = &id
	}
	return commands.NewCartOrderCommand(cartID, *orderID)
}

// AddOrderToCart handles POST /api/v1/carts/{cartId}/orders.
func (s *Server) AddOrderToCart(ctx echo.Context) error {
	cmd, err := s.cartOrderCommand(ctx, nil)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.AddOrderToCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderFromCart handles DELETE /api/v1/carts/{cartId}/orders/{orderId}.
func (s *Server) RemoveOrderFromCart(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := s.cartOrderCommand(ctx, &orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.RemoveFromCart.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CloseCartIfComplete handles POST /api/v1/carts/{cartId}/close-if-complete.
func (s *Server) CloseCartIfComplete(ctx echo.Context) error {
	cartID, err := pathID(ctx, "cartId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewCloseCartIfCompleteCommand(cartID)
	if err != nil {
		return respondError(ctx, err)
	}
	closed, err := s.h.CloseCart.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"closed": closed})
}

// GetCartReport handles GET /api/v1/carts/{cartId}/report.
func (s *Server) GetCartReport(ctx echo.Context) error {
	cartID, err := pathID(ctx, "cartId")
	if err != nil {
		return respondError(ctx, err)
	}
	query, err := queries.NewGetCartReportQuery(cartID)
	if err != nil {
		return respondError(ctx, err)
	}
	report, err := s.h.CartReport.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type invoice struct {
		OrderID       openapi_types.UUID `json:"order_id"`
		Title         string             `json:"title"`
		Total         decimal.Decimal    `json:"total"`
		PaymentMethod string             `json:"payment_method"`
		Paid          decimal.Decimal    `json:"paid"`
		ConfirmedAt   time.Time          `json:"confirmed_at"`
	}
	invoices := make([]invoice, len(report.Invoices))
	for i, inv := range report.Invoices {
		invoices[i] = invoice{
			OrderID:       inv.OrderID.Bytes(),
			Title:         inv.Title,
			Total:         inv.Total,
			PaymentMethod: inv.PaymentMethod,
			Paid:          inv.Paid,
			ConfirmedAt:   inv.ConfirmedAt,
		}
	}

	return ctx.JSON(http.StatusOK, struct {
		CartID      openapi_types.UUID `json:"cart_id"`
		OrdersCount int                `json:"orders_count"`
		IsAvailable bool               `json:"is_available"`
		TotalPaid   decimal.Decimal    `json:"total_paid"`
		Invoices    []invoice          `json:"invoices"`
	}{report.CartID.Bytes(), report.OrdersCount, report.IsAvailable, report.TotalPaid, invoices})
}

// CreateBox handles POST /api/v1/boxes.
func (s *Server) CreateBox(ctx echo.Context) error {
	var body NewBox
	if err := bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}
	boxID := kernel.NewUUID()
	cmd, err := commands.NewCreateBoxCommand(boxID, body.Number)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CreateBox.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: boxID.Bytes()})
}

// CloseBox handles POST /api/v1/boxes/{boxId}/close.
func (s *Server) CloseBox(ctx echo.Context) error {
	boxID, err := pathID(ctx, "boxId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewCloseBoxCommand(boxID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CloseBox.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) boxOrderCommand(ctx echo.Context, orderID *kernel.UUID) (commands.BoxOrderCommand, error) {
	boxID, err := pathID(ctx, "boxId")
	if err != nil {
		return commands.BoxOrderCommand{}, err
	}
	if orderID == nil {
		var body OrderRef
		if err = bind(ctx, &body); err != nil {
			return commands.BoxOrderCommand{}, err
		}
		id, err := bodyID("order_id", body.OrderID)
		if err != nil {
			return commands.BoxOrderCommand{}, err
		}
		orderID = &id
	}
	return commands.NewBoxOrderCommand(boxID, *orderID)
}

// AddOrderToBox handles POST /api/v1/boxes/{boxId}/orders.
func (s *Server) AddOrderToBox(ctx echo.Context) error {
	cmd, err := s.boxOrderCommand(ctx, nil)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.AddOrderToBox.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// RemoveOrderFromBox handles DELETE /api/v1/boxes/{boxId}/orders/{orderId}.
func (s *Server) RemoveOrderFromBox(ctx echo.Context) error {
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := s.boxOrderCommand(ctx, &orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.RemoveFromBox.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetCollection handles GET /api/v1/collections/{collectionId}.
func (s *Server) GetCollection(ctx echo.Context) error {
	collectionID, err := pathID(ctx, "collectionId")
	if err != nil {
		return respondError(ctx, err)
	}
	query, err := queries.NewGetCollectionQuery(collectionID)
	if err != nil {
		return respondError(ctx, err)
	}
	view, err := s.h.GetCollection.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type member struct {
		ID       openapi_types.UUID `json:"id"`
		Title    string             `json:"title"`
		Position string             `json:"position"`
		Archived bool               `json:"archived"`
		Total    decimal.Decimal    `json:"total"`
	}
	members := make([]member, len(view.Members))
	for i, m := range view.Members {
		members[i] = member{ID: m.ID.Bytes(), Title: m.Title, Position: m.Position, Archived: m.Archived, Total: m.Total}
	}

	return ctx.JSON(http.StatusOK, struct {
		ID           openapi_types.UUID `json:"id"`
		CustomerID   openapi_types.UUID `json:"customer_id"`
		Status       string             `json:"status"`
		Ready        int                `json:"ready"`
		Active       int                `json:"active"`
		PrepaidValue decimal.Decimal    `json:"prepaid_value"`
		Total        decimal.Decimal    `json:"total"`
		Members      []member           `json:"members"`
	}{
		view.ID.Bytes(), view.CustomerID.Bytes(), view.Status, view.Ready, view.Active,
		view.PrepaidValue, view.Total, members,
	})
}

// RecomputeCollectionStatus handles POST /api/v1/collections/{collectionId}/status.
func (s *Server) RecomputeCollectionStatus(ctx echo.Context) error {
	collectionID, err := pathID(ctx, "collectionId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewRecomputeCollectionStatusCommand(collectionID)
	if err != nil {
		return respondError(ctx, err)
	}
	status, err := s.h.RecomputeStatus.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]string{"status": string(status)})
}

// SendCollectionToDelivery handles POST /api/v1/collections/{collectionId}/deliver.
func (s *Server) SendCollectionToDelivery(ctx echo.Context) error {
	collectionID, err := pathID(ctx, "collectionId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewSendCollectionToDeliveryCommand(collectionID)
	if err != nil {
		return respondError(ctx, err)
	}
	moved, err := s.h.DeliverCollection.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Advanced{Advanced: moved})
}

// SendOrderToDelivery handles POST /api/v1/collections/{collectionId}/orders/{orderId}/deliver.
func (s *Server) SendOrderToDelivery(ctx echo.Context) error {
	collectionID, err := pathID(ctx, "collectionId")
	if err != nil {
		return respondError(ctx, err)
	}
	orderID, err := pathID(ctx, "orderId")
	if err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewSendOrderToDeliveryCommand(collectionID, orderID)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.DeliverOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body NewShipment
	if err := bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}
	boxID, err := bodyID("box_id", body.BoxID)
	if err != nil {
		return respondError(ctx, err)
	}

	shipmentID := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(shipmentID, boxID, shipment.Manifest{
		Carrier: body.Carrier,
		Sender:  body.Sender,
		Weight:  body.Weight,
		Images:  body.Images,
	})
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.CreateShipment.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusCreated, Created{ID: shipmentID.Bytes()})
}

func (s *Server) shipmentCommand(ctx echo.Context) (commands.ShipmentIDCommand, error) {
	shipmentID, err := pathID(ctx, "shipmentId")
	if err != nil {
		return commands.ShipmentIDCommand{}, err
	}
	return commands.NewShipmentIDCommand(shipmentID)
}

// SendShipment handles POST /api/v1/shipments/{shipmentId}/send.
func (s *Server) SendShipment(ctx echo.Context) error {
	cmd, err := s.shipmentCommand(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	moved, err := s.h.SendShipment.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Advanced{Advanced: moved})
}

// MarkShipmentArrived handles POST /api/v1/shipments/{shipmentId}/arrive.
func (s *Server) MarkShipmentArrived(ctx echo.Context) error {
	cmd, err := s.shipmentCommand(ctx)
	if err != nil {
		return respondError(ctx, err)
	}
	moved, err := s.h.ShipmentArrived.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, Advanced{Advanced: moved})
}

// GetTreasuryBalances handles GET /api/v1/treasury.
func (s *Server) GetTreasuryBalances(ctx echo.Context) error {
	balances, err := s.h.TreasuryBalances.Handle(ctx.Request().Context(), queries.NewGetTreasuryBalancesQuery())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]Ledger{
		"local":   ledgerFromView(balances.Local),
		"foreign": ledgerFromView(balances.Foreign),
	})
}

// PostTreasuryEntry handles POST /api/v1/treasury/entries.
func (s *Server) PostTreasuryEntry(ctx echo.Context) error {
	var body TreasuryEntry
	if err := bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}

	operation, err := commands.ParseEntryOperation(body.Operation)
	if err != nil {
		return respondError(ctx, err)
	}
	kind, err := treasury.ParseKind(body.Ledger)
	if err != nil {
		return respondError(ctx, err)
	}
	subAccount, err := treasury.ParseSubAccount(body.SubAccount)
	if err != nil {
		return respondError(ctx, err)
	}

	cmd, err := commands.NewPostTreasuryEntryCommand(operation, kind, subAccount, body.Amount, body.Reference)
	if err != nil {
		return respondError(ctx, err)
	}
	balance, err := s.h.PostEntry.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]decimal.Decimal{"balance": balance})
}

// ConvertCurrency handles POST /api/v1/treasury/conversions.
func (s *Server) ConvertCurrency(ctx echo.Context) error {
	var body Conversion
	if err := bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewConvertCurrencyCommand(body.AmountLocal, body.Rate)
	if err != nil {
		return respondError(ctx, err)
	}
	credited, err := s.h.ConvertCurrency.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]decimal.Decimal{"credited": credited})
}

// RedistributeForeign handles POST /api/v1/treasury/redistribution.
func (s *Server) RedistributeForeign(ctx echo.Context) error {
	var body Redistribution
	if err := bind(ctx, &body); err != nil {
		return respondError(ctx, err)
	}
	cmd, err := commands.NewRedistributeForeignCommand(body.Card, body.Cash)
	if err != nil {
		return respondError(ctx, err)
	}
	if err = s.h.Redistribute.Handle(ctx.Request().Context(), cmd); err != nil {
		return respondError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

// GetFinancialSummary handles GET /api/v1/reports/financial-summary.
func (s *Server) GetFinancialSummary(ctx echo.Context) error {
	var from, to *time.Time
	if err := runtime.BindQueryParameter("form", true, false, "from", ctx.QueryParams(), &from); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("from", err))
	}
	if err := runtime.BindQueryParameter("form", true, false, "to", ctx.QueryParams(), &to); err != nil {
		return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("to", err))
	}

	query, err := queries.NewGetFinancialSummaryQuery(from, to)
	if err != nil {
		return respondError(ctx, err)
	}
	summary, err := s.h.FinancialSummary.Handle(ctx.Request().Context(), query)
	if err != nil {
		return respondError(ctx, err)
	}

	type movement struct {
		Ledger string          `json:"ledger"`
		Reason string          `json:"reason"`
		Count  int64           `json:"count"`
		Amount decimal.Decimal `json:"amount"`
	}
	movements := make([]movement, len(summary.Movements))
	for i, m := range summary.Movements {
		movements[i] = movement{Ledger: m.Ledger, Reason: m.Reason, Count: m.Count, Amount: m.Amount}
	}

	return ctx.JSON(http.StatusOK, struct {
		ConfirmedInvoices int64           `json:"confirmed_invoices"`
		Settled           decimal.Decimal `json:"settled"`
		Cash              decimal.Decimal `json:"cash"`
		Card              decimal.Decimal `json:"card"`
		Discounts         decimal.Decimal `json:"discounts"`
		Expenses          decimal.Decimal `json:"expenses"`
		DepositsCollected decimal.Decimal `json:"deposits_collected"`
		Local             Ledger          `json:"local"`
		Foreign           Ledger          `json:"foreign"`
		Movements         []movement      `json:"movements"`
	}{
		summary.ConfirmedInvoices, summary.Settled, summary.Cash, summary.Card,
		summary.Discounts, summary.Expenses, summary.DepositsCollected,
		ledgerFromView(summary.Local), ledgerFromView(summary.Foreign), movements,
	})
}

// RepairCounters handles POST /api/v1/maintenance/repair-counters.
func (s *Server) RepairCounters(ctx echo.Context) error {
	report, err := s.h.RepairCounters.Handle(ctx.Request().Context(), commands.NewRepairCountersCommand())
	if err != nil {
		return respondError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, map[string]int{
		"carts_repaired": report.CartsRepaired,
		"boxes_repaired": report.BoxesRepaired,
	})
}
