package purchasing

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/shared"
)

// RequisitionRepository defines the interface for requisition persistence
type RequisitionRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Requisition, error)
	FindByNumber(ctx context.Context, number string) (*Requisition, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Requisition, error)
	FindByStatus(ctx context.Context, status RequisitionStatus, filter shared.Filter) ([]Requisition, error)
	Save(ctx context.Context, requisition *Requisition) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status RequisitionStatus) (int64, error)
}

// PurchaseOrderRepository defines the interface for purchase order persistence
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, number string) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]PurchaseOrder, error)
	FindByStatus(ctx context.Context, status PurchaseOrderStatus, filter shared.Filter) ([]PurchaseOrder, error)
	FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]PurchaseOrder, error)
	Save(ctx context.Context, order *PurchaseOrder) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status PurchaseOrderStatus) (int64, error)
}

// GoodsReceivedRepository defines the interface for goods received note persistence
type GoodsReceivedRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*GoodsReceived, error)
	FindByNumber(ctx context.Context, number string) (*GoodsReceived, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]GoodsReceived, error)
	FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]GoodsReceived, error)
	Save(ctx context.Context, grn *GoodsReceived) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	CountByStatus(ctx context.Context, status GoodsReceivedStatus) (int64, error)
}
