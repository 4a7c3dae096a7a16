package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/shared"
)

// GormGoodsReceivedRepository implements
// purchasing.GoodsReceivedRepository using GORM
type GormGoodsReceivedRepository struct {
	db *gorm.DB
}

// NewGormGoodsReceivedRepository creates a new GormGoodsReceivedRepository
func NewGormGoodsReceivedRepository(db *gorm.DB) *GormGoodsReceivedRepository {
	return &GormGoodsReceivedRepository{db: db}
}

// FindByID finds a goods received note with its items
func (r *GormGoodsReceivedRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.GoodsReceived, error) {
	var grn purchasing.GoodsReceived
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&grn, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &grn, nil
}

// FindByNumber finds a goods received note by document number
func (r *GormGoodsReceivedRepository) FindByNumber(ctx context.Context, number string) (*purchasing.GoodsReceived, error) {
	var grn purchasing.GoodsReceived
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("number = ?", number).
		First(&grn).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &grn, nil
}

// FindAll lists goods received notes matching the filter
func (r *GormGoodsReceivedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.GoodsReceived, error) {
	var grns []purchasing.GoodsReceived
	query := applyFilter(
		r.filterQuery(ctx, filter),
		filter, documentSortFields, "created_at",
	).Preload("Items", itemOrder)
	if err := query.Find(&grns).Error; err != nil {
		return nil, err
	}
	return grns, nil
}

// FindByPurchaseOrder lists receipts against one purchase order
func (r *GormGoodsReceivedRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]purchasing.GoodsReceived, error) {
	var grns []purchasing.GoodsReceived
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("purchase_order_id = ?", purchaseOrderID).
		Order("created_at ASC").
		Find(&grns).Error; err != nil {
		return nil, err
	}
	return grns, nil
}

// Save persists the goods received note header and items
func (r *GormGoodsReceivedRepository) Save(ctx context.Context, grn *purchasing.GoodsReceived) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(grn).Error; err != nil {
			return err
		}
		for i := range grn.Items {
			if err := tx.Save(&grn.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts goods received notes matching the filter
func (r *GormGoodsReceivedRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filterQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts goods received notes in the given status
func (r *GormGoodsReceivedRepository) CountByStatus(ctx context.Context, status purchasing.GoodsReceivedStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&purchasing.GoodsReceived{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormGoodsReceivedRepository) filterQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&purchasing.GoodsReceived{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ purchasing.GoodsReceivedRepository = (*GormGoodsReceivedRepository)(nil)
