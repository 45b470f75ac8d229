package treasuryrepo

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/treasury"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTreasuryRepository implements ports.TreasuryRepository using GORM.
type GormTreasuryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTreasuryRepository(db *gorm.DB, tracker aggregateTracker) *GormTreasuryRepository {
	return &GormTreasuryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Seed creates the zero balance rows of both ledgers if they are missing.
// Existing balances are left untouched.
func (r *GormTreasuryRepository) Seed(ctx context.Context, now time.Time) error {
	var rows []BalanceDTO
	for _, kind := range []treasury.Kind{treasury.KindLocal, treasury.KindForeign} {
		for _, sub := range kind.SubAccounts() {
			rows = append(rows, BalanceDTO{Ledger: string(kind), SubAccount: string(sub), UpdatedAt: now})
		}
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rows).Error
}

// Get reads a ledger without locking.
func (r *GormTreasuryRepository) Get(ctx context.Context, kind treasury.Kind) (*treasury.Ledger, error) {
	return r.get(r.db.WithContext(ctx), kind)
}

// GetForUpdate locks every balance row of the ledger.
func (r *GormTreasuryRepository) GetForUpdate(ctx context.Context, kind treasury.Kind) (*treasury.Ledger, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), kind)
}

func (r *GormTreasuryRepository) get(db *gorm.DB, kind treasury.Kind) (*treasury.Ledger, error) {
	if _, err := treasury.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	var rows []BalanceDTO
	if err := db.Where("ledger = ?", string(kind)).Order("sub_account").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errs.NewObjectNotFoundError("ledger", string(kind))
	}
	return toDomain(kind, rows)
}

// Save writes every balance of the ledger, appends its pending movements and
// clears them from the aggregate.
func (r *GormTreasuryRepository) Save(ctx context.Context, ledger *treasury.Ledger) error {
	if err := ledger.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	for sub, amount := range ledger.Balances() {
		result := db.Model(&BalanceDTO{}).
			Where("ledger = ? AND sub_account = ?", string(ledger.Kind()), string(sub)).
			Updates(map[string]any{
				"amount":     amount,
				"updated_at": ledger.UpdatedAt(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("ledger", string(ledger.Kind())+"/"+string(sub))
		}
	}

	if pending := ledger.PendingMovements(); len(pending) > 0 {
		movements := make([]MovementDTO, 0, len(pending))
		for _, m := range pending {
			movements = append(movements, movementFromDomain(m))
		}
		if err := db.Create(&movements).Error; err != nil {
			return err
		}
		for _, m := range pending {
			r.tracker.TrackAggregate(m.ID, m)
		}
	}

	ledger.ClearMovements()
	return nil
}
