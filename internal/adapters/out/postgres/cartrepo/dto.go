// Package cartrepo persists purchase carts.
package cartrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/cart"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// CartDTO is the carts row. OrdersCount is maintained incrementally by the
// membership commands.
type CartDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrdersCount int       `gorm:"not null;default:0;check:orders_count >= 0"`
	IsAvailable bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

func (CartDTO) TableName() string {
	return "carts"
}

func fromDomain(c *cart.Cart) CartDTO {
	return CartDTO{
		ID:          c.ID().Bytes(),
		OrdersCount: c.OrdersCount(),
		IsAvailable: c.IsAvailable(),
		CreatedAt:   c.CreatedAt(),
	}
}

func toDomain(dto CartDTO) (*cart.Cart, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return cart.RestoreCart(id, dto.OrdersCount, dto.IsAvailable, dto.CreatedAt)
}
