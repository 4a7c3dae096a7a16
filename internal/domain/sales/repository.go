package sales

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/shared"
)

// SalesOrderRepository defines the interface for sales order persistence
type SalesOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SalesOrder, error)
	FindByNumber(ctx context.Context, number string) (*SalesOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]SalesOrder, error)
	FindByStatus(ctx context.Context, status SalesOrderStatus, filter shared.Filter) ([]SalesOrder, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]SalesOrder, error)
	Save(ctx context.Context, order *SalesOrder) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status SalesOrderStatus) (int64, error)
}

// ShipmentRepository defines the interface for shipment persistence
type ShipmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Shipment, error)
	FindByNumber(ctx context.Context, number string) (*Shipment, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Shipment, error)
	FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]Shipment, error)
	Save(ctx context.Context, shipment *Shipment) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status ShipmentStatus) (int64, error)
}
