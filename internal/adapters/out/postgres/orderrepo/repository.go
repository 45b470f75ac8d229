package orderrepo

import (
	"context"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgerr"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the order together with its invoice shell.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "order", "order "+aggregate.ID().String()+" already exists")
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column of the order, zero values included, and then the invoice.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("Invoice", "CreatedAt").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).Save(&dto.Invoice).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Delete removes the order and its invoice.
func (r *GormOrderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Where("order_id = ?", id.Bytes()).Delete(&InvoiceDTO{}).Error; err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&OrderDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", id.String())
	}
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order and locks its row until the transaction ends.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	return r.get(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *GormOrderRepository) get(_ context.Context, db *gorm.DB, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := db.Preload("Invoice").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.NotFound(err, "order", id.String())
	}

	return toDomain(dto)
}

// ListByCart retrieves the members of a cart.
func (r *GormOrderRepository) ListByCart(ctx context.Context, cartID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "cart_id = ?", cartID.Bytes())
}

// ListByBox retrieves the members of a box.
func (r *GormOrderRepository) ListByBox(ctx context.Context, boxID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "box_id = ?", boxID.Bytes())
}

// ListByCollection retrieves the members of a collection, cancelled ones included.
func (r *GormOrderRepository) ListByCollection(ctx context.Context, collectionID kernel.UUID) ([]*order.Order, error) {
	return r.list(ctx, "collection_id = ?", collectionID.Bytes())
}

// ListByCollectionForUpdate retrieves the members of a collection and locks their rows.
func (r *GormOrderRepository) ListByCollectionForUpdate(ctx context.Context, collectionID kernel.UUID) ([]*order.Order, error) {
	return r.listWith(ctx, r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), "collection_id = ?", collectionID.Bytes())
}

func (r *GormOrderRepository) list(ctx context.Context, query string, args ...any) ([]*order.Order, error) {
	return r.listWith(ctx, r.db.WithContext(ctx), query, args...)
}

func (r *GormOrderRepository) listWith(_ context.Context, db *gorm.DB, query string, args ...any) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := db.Preload("Invoice").Where(query, args...).Order("created_at").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// AdvanceBoxMembers moves the box's active members at one of the from positions in one statement.
func (r *GormOrderRepository) AdvanceBoxMembers(
	ctx context.Context,
	boxID kernel.UUID,
	from []order.Position,
	to order.Position,
) (int64, error) {
	return r.advanceMembers(ctx, "box_id", boxID, from, to)
}

// AdvanceCollectionMembers moves the collection's active members at one of the from positions in one statement.
func (r *GormOrderRepository) AdvanceCollectionMembers(
	ctx context.Context,
	collectionID kernel.UUID,
	from []order.Position,
	to order.Position,
) (int64, error) {
	return r.advanceMembers(ctx, "collection_id", collectionID, from, to)
}

func (r *GormOrderRepository) advanceMembers(
	ctx context.Context,
	column string,
	containerID kernel.UUID,
	from []order.Position,
	to order.Position,
) (int64, error) {
	if err := to.Validate(); err != nil {
		return 0, err
	}

	codes := make([]int64, 0, len(from))
	for _, p := range from {
		codes = append(codes, int64(p.Code()))
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where(column+" = ? AND archived = false AND position = ANY(?)", containerID.Bytes(), pq.Array(codes)).
		Updates(map[string]any{
			"position":   to.Code(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}

// CountCartMembers returns the membership count of every non-empty cart.
func (r *GormOrderRepository) CountCartMembers(ctx context.Context) (map[kernel.UUID]int, error) {
	return r.countMembers(ctx, "cart_id")
}

// CountBoxMembers returns the membership count of every non-empty box.
func (r *GormOrderRepository) CountBoxMembers(ctx context.Context) (map[kernel.UUID]int, error) {
	return r.countMembers(ctx, "box_id")
}

func (r *GormOrderRepository) countMembers(ctx context.Context, column string) (map[kernel.UUID]int, error) {
	var rows []struct {
		ContainerID uuid.UUID
		Members     int
	}
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Select(column + " AS container_id, COUNT(*) AS members").
		Where(column + " IS NOT NULL").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[kernel.UUID]int, len(rows))
	for _, row := range rows {
		id, err := kernel.UUIDFromBytes(row.ContainerID[:])
		if err != nil {
			return nil, err
		}
		counts[id] = row.Members
	}
	return counts, nil
}
