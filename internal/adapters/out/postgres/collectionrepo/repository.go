package collectionrepo

import (
	"context"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/collection"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCollectionRepository implements ports.CollectionRepository using GORM.
type GormCollectionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCollectionRepository(db *gorm.DB, tracker aggregateTracker) *GormCollectionRepository {
	return &GormCollectionRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormCollectionRepository) Add(ctx context.Context, aggregate *collection.Collection) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "collection", "collection "+aggregate.ID().String()+" already exists")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the cached status and the running amounts.
func (r *GormCollectionRepository) Update(ctx context.Context, aggregate *collection.Collection) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&CollectionDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":        dto.Status,
			"prepaid_value": dto.PrepaidValue,
			"total":         dto.Total,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("collection", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCollectionRepository) Get(ctx context.Context, id kernel.UUID) (*collection.Collection, error) {
	return r.get(r.db.WithContext(ctx), id)
}

func (r *GormCollectionRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*collection.Collection, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormCollectionRepository) get(db *gorm.DB, id kernel.UUID) (*collection.Collection, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CollectionDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "collection", id.String())
	}
	return toDomain(dto)
}

// FindLatestForCustomerForUpdate locks the customer's most recent collection.
func (r *GormCollectionRepository) FindLatestForCustomerForUpdate(
	ctx context.Context,
	customerID kernel.UUID,
) (*collection.Collection, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dto CollectionDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ?", customerID.Bytes()).
		Order("created_at DESC").
		First(&dto).Error
	if err != nil {
		return nil, pgerr.NotFound(err, "collection", "latest for customer "+customerID.String())
	}
	return toDomain(dto)
}

// ListIDsByStatus returns identifiers in creation order.
func (r *GormCollectionRepository) ListIDsByStatus(
	ctx context.Context,
	statuses ...collection.Status,
) ([]kernel.UUID, error) {
	if len(statuses) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(statuses))
	for _, s := range statuses {
		values = append(values, string(s))
	}

	var raw []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&CollectionDTO{}).
		Where("status IN ?", values).
		Order("created_at").
		Pluck("id", &raw).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		parsed, err := kernel.UUIDFromBytes(id[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, parsed)
	}
	return ids, nil
}
