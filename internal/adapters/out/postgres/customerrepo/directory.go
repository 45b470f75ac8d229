// Package customerrepo resolves customers from the customers table. Accounts
// are owned by the identity service; this package only reads them.
package customerrepo

import (
	"context"
	"strings"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CustomerDTO is the customers row. Handles are stored lower-cased.
type CustomerDTO struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	Handle string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Name   string    `gorm:"type:varchar(255);not null"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// GormCustomerDirectory implements ports.CustomerDirectory.
type GormCustomerDirectory struct {
	db *gorm.DB
}

func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

// ResolveByHandle looks the handle up case-insensitively, ignoring a leading '@'.
func (d *GormCustomerDirectory) ResolveByHandle(ctx context.Context, handle string) (ports.Customer, error) {
	normalized := normalize(handle)
	if normalized == "" {
		return ports.Customer{}, errs.NewValueIsRequiredError("customer handle")
	}

	var dto CustomerDTO
	if err := d.db.WithContext(ctx).First(&dto, "handle = ?", normalized).Error; err != nil {
		return ports.Customer{}, pgerr.NotFound(err, "customer", normalized)
	}

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.Customer{}, err
	}
	return ports.Customer{ID: id, Handle: dto.Handle, Name: dto.Name}, nil
}

// Register inserts a customer. Used by seeding and tests; a taken handle is a ConflictError.
func (d *GormCustomerDirectory) Register(ctx context.Context, customer ports.Customer) error {
	dto := CustomerDTO{
		ID:     customer.ID.Bytes(),
		Handle: normalize(customer.Handle),
		Name:   strings.TrimSpace(customer.Name),
	}
	if err := d.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "customer", "handle "+dto.Handle+" is already taken")
	}
	return nil
}

func normalize(handle string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(handle), "@"))
}
