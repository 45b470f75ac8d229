package queries

import (
	"context"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/treasury"

	"gorm.io/gorm"
)

// GetFinancialSummaryQueryHandler reports what was settled, collected and
// moved in a period. Invoices are filtered by confirmation time, deposits by
// order creation time and movements by journal time. Balances are current.
type GetFinancialSummaryQueryHandler struct {
	db *gorm.DB
}

func NewGetFinancialSummaryQueryHandler(db *gorm.DB) GetFinancialSummaryQueryHandler {
	return GetFinancialSummaryQueryHandler{db: db}
}

func (h GetFinancialSummaryQueryHandler) Handle(
	ctx context.Context,
	query GetFinancialSummaryQuery,
) (GetFinancialSummaryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetFinancialSummaryQueryResponse{}, err
	}

	var resp GetFinancialSummaryQueryResponse

	where, args := periodClause("confirmed_at", query.From(), query.To())
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(total), 0),
			COALESCE(SUM(cash_amount), 0),
			COALESCE(SUM(card_paid_amount), 0),
			COALESCE(SUM(discount), 0),
			COALESCE(SUM(expenses), 0)
		FROM invoices
		WHERE confirmed_at IS NOT NULL`+where, args...).Row().Scan(
		&resp.ConfirmedInvoices,
		&resp.Settled,
		&resp.Cash,
		&resp.Card,
		&resp.Discounts,
		&resp.Expenses,
	)
	if err != nil {
		return GetFinancialSummaryQueryResponse{}, err
	}

	where, args = periodClause("created_at", query.From(), query.To())
	err = h.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(pricing_deposit), 0)
		FROM orders
		WHERE position <> ?`+where, append([]any{order.Cancelled.Code()}, args...)...).Row().Scan(
		&resp.DepositsCollected,
	)
	if err != nil {
		return GetFinancialSummaryQueryResponse{}, err
	}

	ledgers, err := readLedgers(ctx, h.db)
	if err != nil {
		return GetFinancialSummaryQueryResponse{}, err
	}
	resp.Local = ledgers[treasury.KindLocal]
	resp.Foreign = ledgers[treasury.KindForeign]

	if resp.Movements, err = h.movementTotals(ctx, query); err != nil {
		return GetFinancialSummaryQueryResponse{}, err
	}

	return resp, nil
}

func (h GetFinancialSummaryQueryHandler) movementTotals(
	ctx context.Context,
	query GetFinancialSummaryQuery,
) ([]MovementTotal, error) {
	where, args := periodClause("at", query.From(), query.To())
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT ledger, reason, COUNT(*), COALESCE(SUM(amount), 0)
		FROM treasury_movements
		WHERE TRUE`+where+`
		GROUP BY ledger, reason
		ORDER BY ledger, reason
	`, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make([]MovementTotal, 0)
	for rows.Next() {
		var total MovementTotal
		if err := rows.Scan(&total.Ledger, &total.Reason, &total.Count, &total.Amount); err != nil {
			return nil, err
		}
		totals = append(totals, total)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return totals, nil
}

// periodClause returns the AND-prefixed bounds on column, start inclusive and
// end exclusive, with their arguments.
func periodClause(column string, from, to *time.Time) (string, []any) {
	var (
		clause strings.Builder
		args   []any
	)
	if from != nil {
		clause.WriteString(" AND " + column + " >= ?")
		args = append(args, *from)
	}
	if to != nil {
		clause.WriteString(" AND " + column + " < ?")
		args = append(args, *to)
	}
	return clause.String(), args
}

