package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request bodies. Amounts are decimal strings.
type (
	NewOrder struct {
		CustomerHandle string `json:"customer_handle"`
		Title          string `json:"title"`
		Color          string `json:"color"`
		Size           string `json:"size"`
		Link           string `json:"link"`
		Image          string `json:"image"`
		City           string `json:"city"`
		Address        string `json:"address"`
		Quote          *Quote `json:"quote,omitempty"`
	}

	Quote struct {
		ForeignPrice    decimal.Decimal `json:"foreign_price"`
		Quantity        int             `json:"quantity"`
		ExchangeRate    decimal.Decimal `json:"exchange_rate"`
		CommissionPct   decimal.Decimal `json:"commission_pct"`
		DepositPct      decimal.Decimal `json:"deposit_pct"`
		ShippingCost    decimal.Decimal `json:"shipping_cost"`
		PayerIsReceiver bool            `json:"payer_is_receiver"`
	}

	PositionChange struct {
		Position string `json:"position"`
	}

	PurchaseConfirmation struct {
		PaymentMethod  string          `json:"payment_method"`
		PurchaseMethod string          `json:"purchase_method"`
		Discount       decimal.Decimal `json:"discount"`
		Expenses       decimal.Decimal `json:"expenses"`
	}

	OrderRef struct {
		OrderID openapi_types.UUID `json:"order_id"`
	}

	NewBox struct {
		Number int `json:"number"`
	}

	NewShipment struct {
		BoxID   openapi_types.UUID `json:"box_id"`
		Carrier string             `json:"carrier"`
		Sender  string             `json:"sender"`
		Weight  decimal.Decimal    `json:"weight"`
		Images  []string           `json:"images"`
	}

	TreasuryEntry struct {
		Operation  string          `json:"operation"`
		Ledger     string          `json:"ledger"`
		SubAccount string          `json:"sub_account"`
		Amount     decimal.Decimal `json:"amount"`
		Reference  string          `json:"reference"`
	}

	Conversion struct {
		AmountLocal decimal.Decimal `json:"amount_local"`
		Rate        decimal.Decimal `json:"rate"`
	}

	Redistribution struct {
		Card decimal.Decimal `json:"card"`
		Cash decimal.Decimal `json:"cash"`
	}
)

type Created struct {
	ID openapi_types.UUID `json:"id"`
}

type Advanced struct {
	Advanced int64 `json:"advanced"`
}

type Invoice struct {
	ID             openapi_types.UUID `json:"id"`
	ItemPrice      decimal.Decimal    `json:"item_price"`
	Quantity       int                `json:"quantity"`
	Total          decimal.Decimal    `json:"total"`
	PaymentMethod  string             `json:"payment_method"`
	PurchaseMethod string             `json:"purchase_method"`
	Discount       decimal.Decimal    `json:"discount"`
	Expenses       decimal.Decimal    `json:"expenses"`
	CashAmount     decimal.Decimal    `json:"cash_amount"`
	CardPaidAmount decimal.Decimal    `json:"card_paid_amount"`
	ConfirmedAt    *time.Time         `json:"confirmed_at"`
}

type Order struct {
	ID           openapi_types.UUID  `json:"id"`
	CustomerID   openapi_types.UUID  `json:"customer_id"`
	Position     string              `json:"position"`
	CartID       *openapi_types.UUID `json:"cart_id"`
	BoxID        *openapi_types.UUID `json:"box_id"`
	CollectionID *openapi_types.UUID `json:"collection_id"`
	Archived     bool                `json:"archived"`
	Title        string              `json:"title"`
	Color        string              `json:"color"`
	Size         string              `json:"size"`
	Link         string              `json:"link"`
	Image        string              `json:"image"`
	City         string              `json:"city"`
	Address      string              `json:"address"`
	ForeignPrice decimal.Decimal     `json:"foreign_price"`
	Quantity     int                 `json:"quantity"`
	ExchangeRate decimal.Decimal     `json:"exchange_rate"`
	LocalPrice   decimal.Decimal     `json:"local_price"`
	Commission   decimal.Decimal     `json:"commission"`
	Total        decimal.Decimal     `json:"total"`
	Deposit      decimal.Decimal     `json:"deposit"`
	Invoice      Invoice             `json:"invoice"`
}

type Ledger struct {
	Kind     string                     `json:"kind"`
	Balances map[string]decimal.Decimal `json:"balances"`
	Total    decimal.Decimal            `json:"total"`
}

func optionalID(id *kernel.UUID) *openapi_types.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func orderFromView(v queries.GetOrderQueryResponse) Order {
	return Order{
		ID:           v.ID.Bytes(),
		CustomerID:   v.CustomerID.Bytes(),
		Position:     v.Position,
		CartID:       optionalID(v.CartID),
		BoxID:        optionalID(v.BoxID),
		CollectionID: optionalID(v.CollectionID),
		Archived:     v.Archived,
		Title:        v.Title,
		Color:        v.Color,
		Size:         v.Size,
		Link:         v.Link,
		Image:        v.Image,
		City:         v.City,
		Address:      v.Address,
		ForeignPrice: v.ForeignPrice,
		Quantity:     v.Quantity,
		ExchangeRate: v.ExchangeRate,
		LocalPrice:   v.LocalPrice,
		Commission:   v.Commission,
		Total:        v.Total,
		Deposit:      v.Deposit,
		Invoice: Invoice{
			ID:             v.Invoice.ID.Bytes(),
			ItemPrice:      v.Invoice.ItemPrice,
			Quantity:       v.Invoice.Quantity,
			Total:          v.Invoice.Total,
			PaymentMethod:  v.Invoice.PaymentMethod,
			PurchaseMethod: v.Invoice.PurchaseMethod,
			Discount:       v.Invoice.Discount,
			Expenses:       v.Invoice.Expenses,
			CashAmount:     v.Invoice.CashAmount,
			CardPaidAmount: v.Invoice.CardPaidAmount,
			ConfirmedAt:    v.Invoice.ConfirmedAt,
		},
	}
}

func ledgerFromView(v queries.LedgerView) Ledger {
	return Ledger{Kind: v.Kind, Balances: v.Balances, Total: v.Total}
}
