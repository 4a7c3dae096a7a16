package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

// GormShipmentRepository implements sales.ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByID finds a shipment with its items
func (r *GormShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Shipment, error) {
	var shipment sales.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		First(&shipment, "id = ?", id).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &shipment, nil
}

// FindByNumber finds a shipment by document number
func (r *GormShipmentRepository) FindByNumber(ctx context.Context, number string) (*sales.Shipment, error) {
	var shipment sales.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("number = ?", number).
		First(&shipment).Error; err != nil {
		return nil, translateNotFound(err)
	}
	return &shipment, nil
}

// FindAll lists shipments matching the filter
func (r *GormShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Shipment, error) {
	var shipments []sales.Shipment
	query := applyFilter(
		r.filterQuery(ctx, filter),
		filter, documentSortFields, "created_at",
	).Preload("Items", itemOrder)
	if err := query.Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindBySalesOrder lists shipments against one sales order
func (r *GormShipmentRepository) FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]sales.Shipment, error) {
	var shipments []sales.Shipment
	if err := r.db.WithContext(ctx).
		Preload("Items", itemOrder).
		Where("sales_order_id = ?", salesOrderID).
		Order("created_at ASC").
		Find(&shipments).Error; err != nil {
		return nil, err
	}
	return shipments, nil
}

// Save persists the shipment header and items
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *sales.Shipment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(shipment).Error; err != nil {
			return err
		}
		for i := range shipment.Items {
			if err := tx.Save(&shipment.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Count counts shipments matching the filter
func (r *GormShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.filterQuery(ctx, filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByStatus counts shipments in the given status
func (r *GormShipmentRepository) CountByStatus(ctx context.Context, status sales.ShipmentStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&sales.Shipment{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormShipmentRepository) filterQuery(ctx context.Context, filter shared.Filter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&sales.Shipment{})
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		query = query.Where("number LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

var _ sales.ShipmentRepository = (*GormShipmentRepository)(nil)
