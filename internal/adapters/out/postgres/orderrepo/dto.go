// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order aggregate, storing the order
// row with its embedded product detail and pricing snapshot, and the one-to-one invoice row.
package orderrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Position is stored as its integer code; container memberships are nullable
// foreign keys indexed for the membership scans.
type OrderDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID  `gorm:"type:uuid;not null;index"`
	Position     int        `gorm:"type:smallint;not null;index"`
	CartID       *uuid.UUID `gorm:"type:uuid;index"`
	BoxID        *uuid.UUID `gorm:"type:uuid;index"`
	CollectionID *uuid.UUID `gorm:"type:uuid;index"`
	Archived     bool       `gorm:"not null;default:false"`
	Detail       DetailDTO  `gorm:"embedded;embeddedPrefix:detail_"`
	Pricing      PricingDTO `gorm:"embedded;embeddedPrefix:pricing_"`
	Invoice      InvoiceDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time  `gorm:"not null"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime:false"`
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// DetailDTO holds the product attributes and destination embedded in the order row.
type DetailDTO struct {
	Title   string `gorm:"type:varchar(255);not null"`
	Color   string `gorm:"type:varchar(64)"`
	Size    string `gorm:"type:varchar(64)"`
	Link    string `gorm:"type:text;not null"`
	Image   string `gorm:"type:text"`
	City    string `gorm:"type:varchar(128);not null"`
	Address string `gorm:"type:text"`
}

// PricingDTO is the quote snapshot embedded in the order row.
type PricingDTO struct {
	ForeignPrice    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Quantity        int             `gorm:"not null;default:0"`
	ExchangeRate    decimal.Decimal `gorm:"type:numeric(14,6);not null;default:0"`
	CommissionPct   decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	DepositPct      decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0"`
	ShippingCost    decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PayerIsReceiver bool            `gorm:"not null;default:false"`
	LocalPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Commission      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Total           decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Deposit         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
}

// InvoiceDTO represents the invoice row. It is inserted empty with the order
// and filled in place when the purchase is confirmed. CartID records the cart
// the purchase was made under for batch reporting.
type InvoiceDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID        uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	ItemPrice      decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Quantity       int             `gorm:"not null;default:0"`
	Total          decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PaymentMethod  string          `gorm:"type:varchar(16)"`
	PurchaseMethod string          `gorm:"type:varchar(16)"`
	Discount       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Expenses       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CashAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CardPaidAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CartID         *uuid.UUID      `gorm:"type:uuid;index"`
	ConfirmedAt    *time.Time
}

// TableName specifies the database table name for invoices.
func (InvoiceDTO) TableName() string {
	return "invoices"
}

// fromDomain converts an order aggregate to its database representation.
func fromDomain(o *order.Order) OrderDTO {
	detail := o.Detail()
	pricing := o.Pricing()
	invoice := o.Invoice()
	orderID := o.ID().Bytes()

	return OrderDTO{
		ID:           orderID,
		CustomerID:   o.CustomerID().Bytes(),
		Position:     o.Position().Code(),
		CartID:       kernel.OptionalBytes(o.CartID()),
		BoxID:        kernel.OptionalBytes(o.BoxID()),
		CollectionID: kernel.OptionalBytes(o.CollectionID()),
		Archived:     o.IsArchived(),
		Detail: DetailDTO{
			Title:   detail.Title(),
			Color:   detail.Color(),
			Size:    detail.Size(),
			Link:    detail.Link(),
			Image:   detail.Image(),
			City:    detail.Destination().City,
			Address: detail.Destination().Address,
		},
		Pricing: PricingDTO{
			ForeignPrice:    pricing.ForeignPrice,
			Quantity:        pricing.Quantity,
			ExchangeRate:    pricing.ExchangeRate,
			CommissionPct:   pricing.CommissionPct,
			DepositPct:      pricing.DepositPct,
			ShippingCost:    pricing.ShippingCost,
			PayerIsReceiver: pricing.PayerIsReceiver,
			LocalPrice:      pricing.LocalPrice,
			Commission:      pricing.Commission,
			Total:           pricing.Total,
			Deposit:         pricing.Deposit,
		},
		Invoice: InvoiceDTO{
			ID:             invoice.ID.Bytes(),
			OrderID:        orderID,
			ItemPrice:      invoice.ItemPrice,
			Quantity:       invoice.Quantity,
			Total:          invoice.Total,
			PaymentMethod:  string(invoice.PaymentMethod),
			PurchaseMethod: string(invoice.PurchaseMethod),
			Discount:       invoice.Discount,
			Expenses:       invoice.Expenses,
			CashAmount:     invoice.CashAmount,
			CardPaidAmount: invoice.CardPaidAmount,
			CartID:         kernel.OptionalBytes(invoice.CartID),
			ConfirmedAt:    invoice.ConfirmedAt,
		},
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

// toDomain converts a database DTO back into an order aggregate via order.Restore.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	position, err := order.PositionFromCode(dto.Position)
	if err != nil {
		return nil, err
	}

	cartID, err := kernel.OptionalUUIDFromBytes(dto.CartID)
	if err != nil {
		return nil, err
	}
	boxID, err := kernel.OptionalUUIDFromBytes(dto.BoxID)
	if err != nil {
		return nil, err
	}
	collectionID, err := kernel.OptionalUUIDFromBytes(dto.CollectionID)
	if err != nil {
		return nil, err
	}

	detail, err := order.NewDetail(
		dto.Detail.Title,
		dto.Detail.Color,
		dto.Detail.Size,
		dto.Detail.Link,
		dto.Detail.Image,
		order.Destination{City: dto.Detail.City, Address: dto.Detail.Address},
	)
	if err != nil {
		return nil, err
	}

	invoice, err := invoiceToDomain(dto.Invoice)
	if err != nil {
		return nil, err
	}

	return order.Restore(order.Snapshot{
		ID:           id,
		CustomerID:   customerID,
		Position:     position,
		CartID:       cartID,
		BoxID:        boxID,
		CollectionID: collectionID,
		Archived:     dto.Archived,
		Detail:       detail,
		Pricing: order.Pricing{
			ForeignPrice:    dto.Pricing.ForeignPrice,
			Quantity:        dto.Pricing.Quantity,
			ExchangeRate:    dto.Pricing.ExchangeRate,
			CommissionPct:   dto.Pricing.CommissionPct,
			DepositPct:      dto.Pricing.DepositPct,
			ShippingCost:    dto.Pricing.ShippingCost,
			PayerIsReceiver: dto.Pricing.PayerIsReceiver,
			LocalPrice:      dto.Pricing.LocalPrice,
			Commission:      dto.Pricing.Commission,
			Total:           dto.Pricing.Total,
			Deposit:         dto.Pricing.Deposit,
		},
		Invoice:   invoice,
		CreatedAt: dto.CreatedAt,
		UpdatedAt: dto.UpdatedAt,
	})
}

func invoiceToDomain(dto InvoiceDTO) (order.Invoice, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return order.Invoice{}, err
	}
	cartID, err := kernel.OptionalUUIDFromBytes(dto.CartID)
	if err != nil {
		return order.Invoice{}, err
	}

	return order.Invoice{
		ID:             id,
		ItemPrice:      dto.ItemPrice,
		Quantity:       dto.Quantity,
		Total:          dto.Total,
		PaymentMethod:  order.PaymentMethod(dto.PaymentMethod),
		PurchaseMethod: order.PurchaseMethod(dto.PurchaseMethod),
		Discount:       dto.Discount,
		Expenses:       dto.Expenses,
		CashAmount:     dto.CashAmount,
		CardPaidAmount: dto.CardPaidAmount,
		CartID:         cartID,
		ConfirmedAt:    dto.ConfirmedAt,
	}, nil
}
