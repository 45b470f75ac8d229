package queries

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrGetOrderStatusCountsQueryIsNotConstructed = errors.New(
	"GetOrderStatusCountsQuery must be created via NewGetOrderStatusCountsQuery constructor",
)

// GetOrderStatusCountsQuery counts orders per position. Archived orders count
// under their position like any other.
type GetOrderStatusCountsQuery struct {
	guard guard.ConstructorGuard
}

func NewGetOrderStatusCountsQuery() GetOrderStatusCountsQuery {
	return GetOrderStatusCountsQuery{guard: guard.NewConstructorGuard()}
}

func (q GetOrderStatusCountsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatusCountsQueryIsNotConstructed)
}

// GetOrderStatusCountsQueryResponse has one entry per position, in code order,
// including positions with no orders.
type GetOrderStatusCountsQueryResponse struct {
	Position string
	Code     int
	Count    int64
}
