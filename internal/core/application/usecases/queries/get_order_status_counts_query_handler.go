package queries

import (
	"context"

	"fulfillment/internal/core/domain/model/order"

	"gorm.io/gorm"
)

type GetOrderStatusCountsQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderStatusCountsQueryHandler(db *gorm.DB) GetOrderStatusCountsQueryHandler {
	return GetOrderStatusCountsQueryHandler{db: db}
}

func (h GetOrderStatusCountsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatusCountsQuery,
) ([]GetOrderStatusCountsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT position, COUNT(*)
		FROM orders
		GROUP BY position
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counted := make(map[int]int64)
	for rows.Next() {
		var code int
		var count int64
		if err := rows.Scan(&code, &count); err != nil {
			return nil, err
		}
		counted[code] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	positions := order.AllPositions()
	counts := make([]GetOrderStatusCountsQueryResponse, 0, len(positions))
	for _, p := range positions {
		counts = append(counts, GetOrderStatusCountsQueryResponse{
			Position: p.String(),
			Code:     p.Code(),
			Count:    counted[p.Code()],
		})
	}

	return counts, nil
}
