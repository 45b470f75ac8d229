package http

import (
	"encoding/json"
	"net/http"
	"sync"

	"fulfillment/internal/adapters/in/http/api"
	"fulfillment/internal/core/ports"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
	"github.com/swaggo/swag"
)

var registerDocOnce sync.Once

// swaggerDoc serves the loaded document to the swagger UI.
type swaggerDoc struct {
	raw string
}

func (d swaggerDoc) ReadDoc() string { return d.raw }

func registerDoc(doc *openapi3.T) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, swaggerDoc{raw: string(raw)})
	})
	return nil
}

// NewEcho builds the HTTP surface: health check, swagger UI and every API
// route, with requests validated against the embedded OpenAPI document.
func NewEcho(s *Server, authorizer ports.Authorizer) (*echo.Echo, error) {
	doc, err := api.Load()
	if err != nil {
		return nil, err
	}
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}
	if err = registerDoc(doc); err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Use(WithActor(), ValidateRequests(router))
	RegisterHandlers(e, s, authorizer)
	return e, nil
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	DELETE(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// RegisterHandlers mounts the API routes. State-changing routes require an
// authorized actor.
func RegisterHandlers(g EchoRouter, s *Server, authorizer ports.Authorizer) {
	may := func(action ports.Action) echo.MiddlewareFunc { return Requires(authorizer, action) }

	g.POST("/api/v1/orders", s.CreateOrder, may(ports.ActionCreateOrder))
	g.GET("/api/v1/orders/status-counts", s.GetOrderStatusCounts)
	g.GET("/api/v1/orders/:orderId", s.GetOrder)
	g.DELETE("/api/v1/orders/:orderId", s.DeleteOrder, may(ports.ActionDeleteOrder))
	g.POST("/api/v1/orders/:orderId/position", s.AdvanceOrderPosition, may(ports.ActionAdvanceOrder))
	g.POST("/api/v1/orders/:orderId/confirm-purchase", s.ConfirmPurchase, may(ports.ActionConfirmPurchase))
	g.POST("/api/v1/orders/:orderId/cancel", s.CancelOrder, may(ports.ActionCancelOrder))

	g.POST("/api/v1/carts", s.CreateCart, may(ports.ActionManageCart))
	g.POST("/api/v1/carts/:cartId/orders", s.AddOrderToCart, may(ports.ActionManageCart))
	g.DELETE("/api/v1/carts/:cartId/orders/:orderId", s.RemoveOrderFromCart, may(ports.ActionManageCart))
	g.POST("/api/v1/carts/:cartId/close-if-complete", s.CloseCartIfComplete, may(ports.ActionManageCart))
	g.GET("/api/v1/carts/:cartId/report", s.GetCartReport)

	g.POST("/api/v1/boxes", s.CreateBox, may(ports.ActionManageBox))
	g.POST("/api/v1/boxes/:boxId/close", s.CloseBox, may(ports.ActionManageBox))
	g.POST("/api/v1/boxes/:boxId/orders", s.AddOrderToBox, may(ports.ActionManageBox))
	g.DELETE("/api/v1/boxes/:boxId/orders/:orderId", s.RemoveOrderFromBox, may(ports.ActionManageBox))

	g.GET("/api/v1/collections/:collectionId", s.GetCollection)
	g.POST("/api/v1/collections/:collectionId/status", s.RecomputeCollectionStatus, may(ports.ActionRefreshCollections))
	g.POST("/api/v1/collections/:collectionId/deliver", s.SendCollectionToDelivery, may(ports.ActionDeliverCollection))
	g.POST("/api/v1/collections/:collectionId/orders/:orderId/deliver", s.SendOrderToDelivery,
		may(ports.ActionDeliverCollection))

	g.POST("/api/v1/shipments", s.CreateShipment, may(ports.ActionManageShipment))
	g.POST("/api/v1/shipments/:shipmentId/send", s.SendShipment, may(ports.ActionManageShipment))
	g.POST("/api/v1/shipments/:shipmentId/arrive", s.MarkShipmentArrived, may(ports.ActionManageShipment))

	g.GET("/api/v1/treasury", s.GetTreasuryBalances)
	g.POST("/api/v1/treasury/entries", s.PostTreasuryEntry, may(ports.ActionManageTreasury))
	g.POST("/api/v1/treasury/conversions", s.ConvertCurrency, may(ports.ActionManageTreasury))
	g.POST("/api/v1/treasury/redistribution", s.RedistributeForeign, may(ports.ActionManageTreasury))

	g.GET("/api/v1/reports/financial-summary", s.GetFinancialSummary)
	g.POST("/api/v1/maintenance/repair-counters", s.RepairCounters, may(ports.ActionRepairCounters))
}
