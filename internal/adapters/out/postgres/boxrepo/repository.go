package boxrepo

import (
	"context"
	"fmt"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/box"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormBoxRepository implements ports.BoxRepository using GORM.
type GormBoxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormBoxRepository(db *gorm.DB, tracker aggregateTracker) *GormBoxRepository {
	return &GormBoxRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a box. A taken number surfaces as a ConflictError.
func (r *GormBoxRepository) Add(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "box", fmt.Sprintf("box number %d is already taken", dto.Number))
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBoxRepository) Update(ctx context.Context, aggregate *box.Box) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&BoxDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"orders_count": dto.OrdersCount,
			"is_available": dto.IsAvailable,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("box", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormBoxRepository) Get(ctx context.Context, id kernel.UUID) (*box.Box, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormBoxRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*box.Box, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormBoxRepository) get(db *gorm.DB, id kernel.UUID) (*box.Box, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BoxDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "box", id.String())
	}
	return toDomain(dto)
}

// ListForUpdate locks every box in number order.
func (r *GormBoxRepository) ListForUpdate(ctx context.Context) ([]*box.Box, error) {
	var dtos []BoxDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("number").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	boxes := make([]*box.Box, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, b)
	}
	return boxes, nil
}
