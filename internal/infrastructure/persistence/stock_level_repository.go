package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// GormStockLevelRepository implements inventory.StockLevelRepository
// using GORM
type GormStockLevelRepository struct {
	db *gorm.DB
}

// NewGormStockLevelRepository creates a new GormStockLevelRepository
func NewGormStockLevelRepository(db *gorm.DB) *GormStockLevelRepository {
	return &GormStockLevelRepository{db: db}
}

// FindByProductID finds the ledger row for a product
func (r *GormStockLevelRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		First(&level).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &level, nil
}

// FindForUpdate loads the ledger row with SELECT FOR UPDATE. Callers
// must hold a transaction; concurrent posters serialize on this lock.
func (r *GormStockLevelRepository) FindForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	var level inventory.StockLevel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ?", productID).
		First(&level).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &level, nil
}

// GetOrCreate returns the ledger row for a product, creating a
// zero-quantity row under concurrent callers via ON CONFLICT DO NOTHING.
// Every row handed back is read under the same FOR UPDATE lock as
// FindForUpdate: DO NOTHING does not lock the conflicting row, so an
// unlocked read-back would let two losers of the insert race apply
// deltas against the same snapshot.
func (r *GormStockLevelRepository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	level, err := r.FindForUpdate(ctx, productID)
	if err == nil {
		return level, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	created := inventory.NewStockLevel(productID)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "product_id"}},
			DoNothing: true,
		}).
		Create(created).Error; err != nil {
		return nil, err
	}

	// A conflicting insert means another caller won the race; lock
	// whichever row landed before returning it
	return r.FindForUpdate(ctx, productID)
}

// FindAll lists ledger rows matching the filter
func (r *GormStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	var levels []inventory.StockLevel
	query := applyFilter(
		r.db.WithContext(ctx).Model(&inventory.StockLevel{}),
		filter, commonSortFields, "updated_at",
	)
	if err := query.Find(&levels).Error; err != nil {
		return nil, err
	}
	return levels, nil
}

// Save persists a ledger row
func (r *GormStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	return r.db.WithContext(ctx).Save(level).Error
}

// Count counts ledger rows matching the filter
func (r *GormStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&inventory.StockLevel{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

var _ inventory.StockLevelRepository = (*GormStockLevelRepository)(nil)
