package report

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

// memProductRepository is an in-memory catalog.ProductRepository
type memProductRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*catalog.Product
}

func newMemProductRepository() *memProductRepository {
	return &memProductRepository{byID: make(map[uuid.UUID]*catalog.Product)}
}

func (r *memProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *memProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.SKU == strings.ToUpper(sku) {
			copied := *p
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *memProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0)
	for _, p := range r.byID {
		if p.Status == status {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *memProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *product
	r.byID[product.ID] = &copied
	return nil
}

func (r *memProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	_, err := r.FindBySKU(ctx, sku)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// memStockLevelRepository is an in-memory inventory.StockLevelRepository
type memStockLevelRepository struct {
	mu        sync.Mutex
	byProduct map[uuid.UUID]*inventory.StockLevel
}

func newMemStockLevelRepository() *memStockLevelRepository {
	return &memStockLevelRepository{byProduct: make(map[uuid.UUID]*inventory.StockLevel)}
}

func (r *memStockLevelRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level, ok := r.byProduct[productID]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *level
	return &copied, nil
}

func (r *memStockLevelRepository) FindForUpdate(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	return r.FindByProductID(ctx, productID)
}

func (r *memStockLevelRepository) GetOrCreate(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if level, ok := r.byProduct[productID]; ok {
		copied := *level
		return &copied, nil
	}
	level := inventory.NewStockLevel(productID)
	r.byProduct[productID] = level
	copied := *level
	return &copied, nil
}

func (r *memStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := make([]inventory.StockLevel, 0, len(r.byProduct))
	for _, level := range r.byProduct {
		all = append(all, *level)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].ProductID.String() < all[j].ProductID.String()
	})
	start := (filter.Page - 1) * filter.PageSize
	if start >= len(all) {
		return nil, nil
	}
	end := start + filter.PageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (r *memStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *level
	r.byProduct[level.ProductID] = &copied
	return nil
}

func (r *memStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byProduct)), nil
}

// memStockMovementRepository is an in-memory inventory.StockMovementRepository
type memStockMovementRepository struct {
	mu        sync.Mutex
	movements []*inventory.StockMovement
}

func newMemStockMovementRepository() *memStockMovementRepository {
	return &memStockMovementRepository{}
}

func (r *memStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *movement
	r.movements = append(r.movements, &copied)
	return nil
}

func (r *memStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.movements {
		if m.ID == id {
			copied := *m
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0, len(r.movements))
	for _, m := range r.movements {
		out = append(out, *m)
	}
	return out, nil
}

func (r *memStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.ProductID == productID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (r *memStockMovementRepository) FindSince(ctx context.Context, since time.Time, limit int) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]inventory.StockMovement, 0)
	for _, m := range r.movements {
		if m.OccurredAt.After(since) {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movements)), nil
}

// stubRequisitionRepository serves fixed per-status counts
type stubRequisitionRepository struct {
	byStatus map[purchasing.RequisitionStatus]int64
}

func (r *stubRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.Requisition, error) {
	return nil, shared.ErrNotFound
}

func (r *stubRequisitionRepository) FindByNumber(ctx context.Context, number string) (*purchasing.Requisition, error) {
	return nil, shared.ErrNotFound
}

func (r *stubRequisitionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.Requisition, error) {
	return nil, nil
}

func (r *stubRequisitionRepository) FindByStatus(ctx context.Context, status purchasing.RequisitionStatus, filter shared.Filter) ([]purchasing.Requisition, error) {
	return nil, nil
}

func (r *stubRequisitionRepository) Save(ctx context.Context, requisition *purchasing.Requisition) error {
	return nil
}

func (r *stubRequisitionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubRequisitionRepository) CountByStatus(ctx context.Context, status purchasing.RequisitionStatus) (int64, error) {
	return r.byStatus[status], nil
}

// stubPurchaseOrderRepository serves fixed per-status counts
type stubPurchaseOrderRepository struct {
	byStatus map[purchasing.PurchaseOrderStatus]int64
}

func (r *stubPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	return nil, shared.ErrNotFound
}

func (r *stubPurchaseOrderRepository) FindByNumber(ctx context.Context, number string) (*purchasing.PurchaseOrder, error) {
	return nil, shared.ErrNotFound
}

func (r *stubPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	return nil, nil
}

func (r *stubPurchaseOrderRepository) FindByStatus(ctx context.Context, status purchasing.PurchaseOrderStatus, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	return nil, nil
}

func (r *stubPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	return nil, nil
}

func (r *stubPurchaseOrderRepository) Save(ctx context.Context, order *purchasing.PurchaseOrder) error {
	return nil
}

func (r *stubPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubPurchaseOrderRepository) CountByStatus(ctx context.Context, status purchasing.PurchaseOrderStatus) (int64, error) {
	return r.byStatus[status], nil
}

// stubGoodsReceivedRepository serves fixed per-status counts
type stubGoodsReceivedRepository struct {
	byStatus map[purchasing.GoodsReceivedStatus]int64
}

func (r *stubGoodsReceivedRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.GoodsReceived, error) {
	return nil, shared.ErrNotFound
}

func (r *stubGoodsReceivedRepository) FindByNumber(ctx context.Context, number string) (*purchasing.GoodsReceived, error) {
	return nil, shared.ErrNotFound
}

func (r *stubGoodsReceivedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.GoodsReceived, error) {
	return nil, nil
}

func (r *stubGoodsReceivedRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]purchasing.GoodsReceived, error) {
	return nil, nil
}

func (r *stubGoodsReceivedRepository) Save(ctx context.Context, grn *purchasing.GoodsReceived) error {
	return nil
}

func (r *stubGoodsReceivedRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubGoodsReceivedRepository) CountByStatus(ctx context.Context, status purchasing.GoodsReceivedStatus) (int64, error) {
	return r.byStatus[status], nil
}

// stubSalesOrderRepository serves fixed per-status counts
type stubSalesOrderRepository struct {
	byStatus map[sales.SalesOrderStatus]int64
}

func (r *stubSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesOrder, error) {
	return nil, shared.ErrNotFound
}

func (r *stubSalesOrderRepository) FindByNumber(ctx context.Context, number string) (*sales.SalesOrder, error) {
	return nil, shared.ErrNotFound
}

func (r *stubSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesOrder, error) {
	return nil, nil
}

func (r *stubSalesOrderRepository) FindByStatus(ctx context.Context, status sales.SalesOrderStatus, filter shared.Filter) ([]sales.SalesOrder, error) {
	return nil, nil
}

func (r *stubSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]sales.SalesOrder, error) {
	return nil, nil
}

func (r *stubSalesOrderRepository) Save(ctx context.Context, order *sales.SalesOrder) error {
	return nil
}

func (r *stubSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubSalesOrderRepository) CountByStatus(ctx context.Context, status sales.SalesOrderStatus) (int64, error) {
	return r.byStatus[status], nil
}

// stubShipmentRepository serves fixed per-status counts
type stubShipmentRepository struct {
	byStatus map[sales.ShipmentStatus]int64
}

func (r *stubShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Shipment, error) {
	return nil, shared.ErrNotFound
}

func (r *stubShipmentRepository) FindByNumber(ctx context.Context, number string) (*sales.Shipment, error) {
	return nil, shared.ErrNotFound
}

func (r *stubShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Shipment, error) {
	return nil, nil
}

func (r *stubShipmentRepository) FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]sales.Shipment, error) {
	return nil, nil
}

func (r *stubShipmentRepository) Save(ctx context.Context, shipment *sales.Shipment) error {
	return nil
}

func (r *stubShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (r *stubShipmentRepository) CountByStatus(ctx context.Context, status sales.ShipmentStatus) (int64, error) {
	return r.byStatus[status], nil
}
