// Package shipmentrepo persists carrier shipments. The unique index on
// box_id enforces one shipment per box.
package shipmentrepo

import (
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the shipments row. Images are stored as a text[] column.
type ShipmentDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BoxID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	Status     string          `gorm:"type:varchar(16);not null"`
	Carrier    string          `gorm:"type:varchar(128);not null"`
	Sender     string          `gorm:"type:varchar(255);not null"`
	Weight     decimal.Decimal `gorm:"type:numeric(10,3);not null"`
	Images     pq.StringArray  `gorm:"type:text[]"`
	CarrierRef string          `gorm:"type:varchar(128)"`
	CreatedAt  time.Time       `gorm:"not null"`
}

func (ShipmentDTO) TableName() string {
	return "shipments"
}

func fromDomain(s *shipment.Shipment) ShipmentDTO {
	manifest := s.Manifest()
	return ShipmentDTO{
		ID:         s.ID().Bytes(),
		BoxID:      s.BoxID().Bytes(),
		Status:     string(s.Status()),
		Carrier:    manifest.Carrier,
		Sender:     manifest.Sender,
		Weight:     manifest.Weight,
		Images:     pq.StringArray(manifest.Images),
		CarrierRef: s.CarrierRef(),
		CreatedAt:  s.CreatedAt(),
	}
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	boxID, err := kernel.UUIDFromBytes(dto.BoxID[:])
	if err != nil {
		return nil, err
	}

	manifest := shipment.Manifest{
		Carrier: dto.Carrier,
		Sender:  dto.Sender,
		Weight:  dto.Weight,
		Images:  []string(dto.Images),
	}
	return shipment.RestoreShipment(id, boxID, shipment.Status(dto.Status), manifest, dto.CarrierRef, dto.CreatedAt)
}
