package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/shared"
)

// GormRequisitionRepository implements purchasing.RequisitionRepository
// using GORM
type GormRequisitionRepository struct {
	db *gorm.DB
}

// NewGormRequisitionRepository creates a new GormRequisitionRepository
func NewGormRequisitionRepository(db *gorm.DB) *GormRequisitionRepository {
	return &GormRequisitionRepository{db: db}
}

// FindByID finds a requisition with its items
func (r *GormRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.Requisition, error) {
	var requisition purchasing.Requisition
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&requisition, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &requisition, nil
}

// FindByNumber finds a requisition by document number
func (r *GormRequisitionRepository) FindByNumber(ctx context.Context, number string) (*purchasing.Requisition, error) {
	var requisition purchasing.Requisition
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("number = ?", number).
		First(&requisition).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &requisition, nil
}

// FindAll lists requisitions matching the filter
func (r *GormRequisitionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.Requisition, error) {
	var requisitions []purchasing.Requisition
	query := applyFilter(
		r.filterQuery(ctx, filter),
		filter, documentSortFields, "created_at",
	).Preload("Items", itemOrder)
	if err := query.Find(&requisitions).Error; err != nil {
		return nil, err
	}
	return requisitions, nil
}

// FindByStatus lists requisitions in the given status
func (r *GormRequisitionRepository) FindByStatus(ctx context.Context, status purchasing.RequisitionStatus, filter shared.Filter) ([]purchasing.Requisition, error) {
	var requisitions []purchasing.Requisition
	query := applyFilter(
		r.filterQuery(ctx, filter).Where("status = ?", status),
		filter, documentSortFields, "created_at",
	).Preload("Items", itemOrder)
	if err := query.Find(&requisitions).Error; err != nil {
		return nil, err
	}
	return requisitions, nil
}

// Save persists the requisition header and items
func (r *GormRequisitionRepository) Save(ctx context.Context, requisition *purchasing.Requisition) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(requisition).Error; err != nil {
			return err
		}
		for i := range requisition.Items {
			if err := tx.Save(&requisition.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts requisitions matching the filter
func (r *GormRequisitionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filterQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts requisitions in the given status
func (r *GormRequisitionRepository) CountByStatus(ctx context.Context, status purchasing.RequisitionStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&purchasing.Requisition{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRequisitionRepository) filterQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&purchasing.Requisition{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ purchasing.RequisitionRepository = (*GormRequisitionRepository)(nil)
