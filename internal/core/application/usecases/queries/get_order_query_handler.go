package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its invoice in one statement.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError when the order does not exist.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id, o.customer_id, o.position, o.cart_id, o.box_id, o.collection_id, o.archived,
			o.detail_title, o.detail_color, o.detail_size, o.detail_link, o.detail_image,
			o.detail_city, o.detail_address,
			o.pricing_foreign_price, o.pricing_quantity, o.pricing_exchange_rate,
			o.pricing_local_price, o.pricing_commission, o.pricing_total, o.pricing_deposit,
			i.id, i.item_price, i.quantity, i.total, COALESCE(i.payment_method, ''),
			COALESCE(i.purchase_method, ''), i.discount, i.expenses, i.cash_amount,
			i.card_paid_amount, i.confirmed_at,
			o.created_at, o.updated_at
		FROM orders o
		JOIN invoices i ON i.order_id = o.id
		WHERE o.id = ?
	`, query.OrderID().Bytes()).Row()

	var (
		resp                        GetOrderQueryResponse
		id, customerID, invoiceID   uuid.UUID
		cartID, boxID, collectionID uuid.NullUUID
		positionCode                int
		confirmedAt                 sql.NullTime
	)
	err := row.Scan(
		&id, &customerID, &positionCode, &cartID, &boxID, &collectionID, &resp.Archived,
		&resp.Title, &resp.Color, &resp.Size, &resp.Link, &resp.Image,
		&resp.City, &resp.Address,
		&resp.ForeignPrice, &resp.Quantity, &resp.ExchangeRate,
		&resp.LocalPrice, &resp.Commission, &resp.Total, &resp.Deposit,
		&invoiceID, &resp.Invoice.ItemPrice, &resp.Invoice.Quantity, &resp.Invoice.Total, &resp.Invoice.PaymentMethod,
		&resp.Invoice.PurchaseMethod, &resp.Invoice.Discount, &resp.Invoice.Expenses, &resp.Invoice.CashAmount,
		&resp.Invoice.CardPaidAmount, &confirmedAt,
		&resp.CreatedAt, &resp.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	position, err := order.PositionFromCode(positionCode)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	resp.Position = position.String()
	resp.PositionCode = positionCode

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CustomerID, err = kernel.UUIDFromBytes(customerID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.Invoice.ID, err = kernel.UUIDFromBytes(invoiceID[:]); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CartID, err = optionalID(cartID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.BoxID, err = optionalID(boxID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if resp.CollectionID, err = optionalID(collectionID); err != nil {
		return GetOrderQueryResponse{}, err
	}
	if confirmedAt.Valid {
		at := confirmedAt.Time
		resp.Invoice.ConfirmedAt = &at
	}

	return resp, nil
}

func optionalID(raw uuid.NullUUID) (*kernel.UUID, error) {
	if !raw.Valid {
		return nil, nil
	}
	return kernel.OptionalUUIDFromBytes(&raw.UUID)
}
