package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// GormAdjustmentRepository implements inventory.AdjustmentRepository
// using GORM
type GormAdjustmentRepository struct {
	db *gorm.DB
}

// NewGormAdjustmentRepository creates a new GormAdjustmentRepository
func NewGormAdjustmentRepository(db *gorm.DB) *GormAdjustmentRepository {
	return &GormAdjustmentRepository{db: db}
}

// FindByID finds an adjustment with its items
func (r *GormAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Adjustment, error) {
	var adjustment inventory.Adjustment
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&adjustment, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &adjustment, nil
}

// FindByNumber finds an adjustment by document number
func (r *GormAdjustmentRepository) FindByNumber(ctx context.Context, number string) (*inventory.Adjustment, error) {
	var adjustment inventory.Adjustment
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("number = ?", number).
		First(&adjustment).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &adjustment, nil
}

// FindAll lists adjustments matching the filter
func (r *GormAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Adjustment, error) {
	var adjustments []inventory.Adjustment
	query := applyFilter(
		r.filterQuery(ctx, filter),
		filter, documentSortFields, "created_at",
	).Preload("Items", itemOrder)
	if err := query.Find(&adjustments).Error; err != nil {
		return nil, err
	}
	return adjustments, nil
}

// Save persists the adjustment header and items
func (r *GormAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.Adjustment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(adjustment).Error; err != nil {
			return err
		}
		for i := range adjustment.Items {
			if err := tx.Save(&adjustment.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts adjustments matching the filter
func (r *GormAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filterQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAdjustmentRepository) filterQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&inventory.Adjustment{})
	if adjType, ok := filter.Filters["type"]; ok {
		query = query.Where("type = ?", adjType)
	}
	if filter.Search != "" {
		query = query.Where("number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

// itemOrder keeps document items in entry order when preloading
func itemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("sort_order ASC")
}

var _ inventory.AdjustmentRepository = (*GormAdjustmentRepository)(nil)
