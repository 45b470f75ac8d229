// Package collectionrepo persists customer collections. The stored status is
// a cache of the value derived from member positions.
package collectionrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CollectionDTO is the collections row. The (customer_id, created_at) index
// serves the latest-collection lookup.
type CollectionDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_collections_customer_created,priority:1"`
	Status       string          `gorm:"type:varchar(16);not null;index"`
	PrepaidValue decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Total        decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt    time.Time       `gorm:"not null;index:idx_collections_customer_created,priority:2"`
}

func (CollectionDTO) TableName() string {
	return "collections"
}

func fromDomain(c *collection.Collection) CollectionDTO {
	return CollectionDTO{
		ID:           c.ID().Bytes(),
		CustomerID:   c.CustomerID().Bytes(),
		Status:       string(c.Status()),
		PrepaidValue: c.PrepaidValue(),
		Total:        c.Total(),
		CreatedAt:    c.CreatedAt(),
	}
}

func toDomain(dto CollectionDTO) (*collection.Collection, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}
	return collection.RestoreCollection(
		id,
		customerID,
		collection.Status(dto.Status),
		dto.PrepaidValue,
		dto.Total,
		dto.CreatedAt,
	)
}
