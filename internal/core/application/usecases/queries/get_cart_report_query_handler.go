package queries

import (
	"context"
	"database/sql"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetCartReportQueryHandler struct {
	db *gorm.DB
}

func NewGetCartReportQueryHandler(db *gorm.DB) GetCartReportQueryHandler {
	return GetCartReportQueryHandler{db: db}
}

// Handle returns an ObjectNotFoundError for an unknown cart. An open cart with
// nothing purchased yet reports no invoices.
func (h GetCartReportQueryHandler) Handle(ctx context.Context, query GetCartReportQuery) (GetCartReportQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCartReportQueryResponse{}, err
	}

	resp := GetCartReportQueryResponse{
		CartID:    query.CartID(),
		Invoices:  make([]CartInvoiceView, 0),
		TotalPaid: decimal.Zero,
	}
	err := h.db.WithContext(ctx).Raw(`
		SELECT orders_count, is_available, created_at
		FROM carts
		WHERE id = ?
	`, query.CartID().Bytes()).Row().Scan(&resp.OrdersCount, &resp.IsAvailable, &resp.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetCartReportQueryResponse{}, errs.NewObjectNotFoundError("cart", query.CartID().String())
	}
	if err != nil {
		return GetCartReportQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			i.order_id, o.detail_title, i.item_price, i.quantity, i.total,
			COALESCE(i.payment_method, ''), COALESCE(i.purchase_method, ''),
			i.cash_amount + i.card_paid_amount, i.confirmed_at
		FROM invoices i
		JOIN orders o ON o.id = i.order_id
		WHERE i.cart_id = ? AND i.confirmed_at IS NOT NULL
		ORDER BY i.confirmed_at, i.order_id
	`, query.CartID().Bytes()).Rows()
	if err != nil {
		return GetCartReportQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			line    CartInvoiceView
			orderID uuid.UUID
		)
		err := rows.Scan(
			&orderID, &line.Title, &line.ItemPrice, &line.Quantity, &line.Total,
			&line.PaymentMethod, &line.PurchaseMethod,
			&line.Paid, &line.ConfirmedAt,
		)
		if err != nil {
			return GetCartReportQueryResponse{}, err
		}
		if line.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return GetCartReportQueryResponse{}, err
		}
		resp.Invoices = append(resp.Invoices, line)
		resp.TotalPaid = resp.TotalPaid.Add(line.Paid)
	}
	if err := rows.Err(); err != nil {
		return GetCartReportQueryResponse{}, err
	}

	return resp, nil
}
