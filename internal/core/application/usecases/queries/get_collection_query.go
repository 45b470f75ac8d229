package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCollectionQueryIsNotConstructed = errors.New("GetCollectionQuery must be created via NewGetCollectionQuery constructor")

// GetCollectionQuery reads a collection with its members. Reading it refreshes
// the cached status.
type GetCollectionQuery struct {
	collectionID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetCollectionQuery(collectionID kernel.UUID) (GetCollectionQuery, error) {
	if err := collectionID.Validate(); err != nil {
		return GetCollectionQuery{}, err
	}
	return GetCollectionQuery{collectionID: collectionID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetCollectionQuery) Validate() error {
	return q.guard.Validate(ErrGetCollectionQueryIsNotConstructed)
}

func (q GetCollectionQuery) CollectionID() kernel.UUID { return q.collectionID }

type GetCollectionQueryResponse struct {
	ID           kernel.UUID
	CustomerID   kernel.UUID
	Status       string
	Ready        int
	Active       int
	PrepaidValue decimal.Decimal
	Total        decimal.Decimal
	CreatedAt    time.Time
	Members      []CollectionMemberView
}

type CollectionMemberView struct {
	ID       kernel.UUID
	Title    string
	Position string
	Archived bool
	Total    decimal.Decimal
}
