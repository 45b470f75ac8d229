// Package boxrepo persists shipping boxes. Box numbers are unique at the
// storage level.
package boxrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// BoxDTO is the boxes row.
type BoxDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      int       `gorm:"not null;uniqueIndex"`
	OrdersCount int       `gorm:"not null;default:0;check:orders_count >= 0"`
	IsAvailable bool      `gorm:"not null;default:true"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (BoxDTO) TableName() string {
	return "boxes"
}

func fromDomain(b *box.Box) BoxDTO {
	return BoxDTO{
		ID:          b.ID().Bytes(),
		Number:      b.Number(),
		OrdersCount: b.OrdersCount(),
		IsAvailable: b.IsAvailable(),
		CreatedAt:   b.CreatedAt(),
	}
}

func toDomain(dto BoxDTO) (*box.Box, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return box.RestoreBox(id, dto.Number, dto.OrdersCount, dto.IsAvailable, dto.CreatedAt)
}
