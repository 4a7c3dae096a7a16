package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/stockflow/backend/internal/application/inventory"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

const (
	// ledgerScanPageSize bounds each page when walking the full ledger
	// for valuation and low-stock counting
	ledgerScanPageSize = 1000

	// recentMovementLimit caps the movements shown on the dashboard
	recentMovementLimit = 10

	// recentMovementWindow is how far back the dashboard looks for movements
	recentMovementWindow = 7 * 24 * time.Hour
)

// OpenDocumentsResponse counts in-flight documents per type
type OpenDocumentsResponse struct {
	PendingRequisitions int64 `json:"pending_requisitions"`
	OpenPurchaseOrders  int64 `json:"open_purchase_orders"`
	PendingReceipts     int64 `json:"pending_receipts"`
	OpenSalesOrders     int64 `json:"open_sales_orders"`
	DraftShipments      int64 `json:"draft_shipments"`
}

// DashboardSummaryResponse is the aggregate snapshot behind the dashboard
type DashboardSummaryResponse struct {
	ProductCount    int64                            `json:"product_count"`
	InventoryValue  decimal.Decimal                  `json:"inventory_value"`
	LowStockCount   int64                            `json:"low_stock_count"`
	OpenDocuments   OpenDocumentsResponse            `json:"open_documents"`
	RecentMovements []*appinventory.MovementResponse `json:"recent_movements"`
	GeneratedAt     time.Time                        `json:"generated_at"`
}

// DashboardService assembles the dashboard summary from the operational
// repositories. Reads are not transactional; the summary is a best-effort
// snapshot, not a report of record.
type DashboardService struct {
	productRepo       catalog.ProductRepository
	stockLevelRepo    inventory.StockLevelRepository
	movementRepo      inventory.StockMovementRepository
	requisitionRepo   purchasing.RequisitionRepository
	purchaseOrderRepo purchasing.PurchaseOrderRepository
	goodsReceivedRepo purchasing.GoodsReceivedRepository
	salesOrderRepo    sales.SalesOrderRepository
	shipmentRepo      sales.ShipmentRepository
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	productRepo catalog.ProductRepository,
	stockLevelRepo inventory.StockLevelRepository,
	movementRepo inventory.StockMovementRepository,
	requisitionRepo purchasing.RequisitionRepository,
	purchaseOrderRepo purchasing.PurchaseOrderRepository,
	goodsReceivedRepo purchasing.GoodsReceivedRepository,
	salesOrderRepo sales.SalesOrderRepository,
	shipmentRepo sales.ShipmentRepository,
) *DashboardService {
	return &DashboardService{
		productRepo:       productRepo,
		stockLevelRepo:    stockLevelRepo,
		movementRepo:      movementRepo,
		requisitionRepo:   requisitionRepo,
		purchaseOrderRepo: purchaseOrderRepo,
		goodsReceivedRepo: goodsReceivedRepo,
		salesOrderRepo:    salesOrderRepo,
		shipmentRepo:      shipmentRepo,
	}
}

// GetSummary assembles the dashboard snapshot
func (s *DashboardService) GetSummary(ctx context.Context) (*DashboardSummaryResponse, error) {
	productCount, err := s.productRepo.Count(ctx, shared.Filter{})
	if err != nil {
		return nil, err
	}

	inventoryValue, lowStockCount, err := s.scanLedger(ctx)
	if err != nil {
		return nil, err
	}

	openDocs, err := s.countOpenDocuments(ctx)
	if err != nil {
		return nil, err
	}

	movements, err := s.movementRepo.FindSince(ctx, time.Now().Add(-recentMovementWindow), recentMovementLimit)
	if err != nil {
		return nil, err
	}
	recent := make([]*appinventory.MovementResponse, 0, len(movements))
	for i := range movements {
		recent = append(recent, appinventory.NewMovementResponse(&movements[i]))
	}

	return &DashboardSummaryResponse{
		ProductCount:    productCount,
		InventoryValue:  inventoryValue,
		LowStockCount:   lowStockCount,
		OpenDocuments:   *openDocs,
		RecentMovements: recent,
		GeneratedAt:     time.Now(),
	}, nil
}

// scanLedger walks all ledger rows, valuing on-hand stock at the
// product's purchase price and counting rows at or below their minimum
func (s *DashboardService) scanLedger(ctx context.Context) (decimal.Decimal, int64, error) {
	value := decimal.Zero
	var lowStock int64

	for page := 1; ; page++ {
		levels, err := s.stockLevelRepo.FindAll(ctx, shared.Filter{Page: page, PageSize: ledgerScanPageSize})
		if err != nil {
			return decimal.Zero, 0, err
		}
		if len(levels) == 0 {
			break
		}

		products, err := s.productsFor(ctx, levels)
		if err != nil {
			return decimal.Zero, 0, err
		}

		for i := range levels {
			product := products[levels[i].ProductID]
			if product == nil {
				continue
			}
			value = value.Add(levels[i].OnHand.Mul(product.PurchasePrice))
			if product.Status == catalog.ProductStatusActive && levels[i].IsBelowMin(product.MinStock) {
				lowStock++
			}
		}

		if len(levels) < ledgerScanPageSize {
			break
		}
	}

	return value, lowStock, nil
}

func (s *DashboardService) countOpenDocuments(ctx context.Context) (*OpenDocumentsResponse, error) {
	pendingReqs, err := s.requisitionRepo.CountByStatus(ctx, purchasing.RequisitionStatusPending)
	if err != nil {
		return nil, err
	}

	var openPOs int64
	for _, status := range []purchasing.PurchaseOrderStatus{
		purchasing.PurchaseOrderStatusDraft,
		purchasing.PurchaseOrderStatusSent,
		purchasing.PurchaseOrderStatusPartiallyReceived,
	} {
		count, err := s.purchaseOrderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		openPOs += count
	}

	pendingReceipts, err := s.goodsReceivedRepo.CountByStatus(ctx, purchasing.GoodsReceivedStatusPending)
	if err != nil {
		return nil, err
	}

	var openSOs int64
	for _, status := range []sales.SalesOrderStatus{
		sales.SalesOrderStatusDraft,
		sales.SalesOrderStatusConfirmed,
	} {
		count, err := s.salesOrderRepo.CountByStatus(ctx, status)
		if err != nil {
			return nil, err
		}
		openSOs += count
	}

	draftShipments, err := s.shipmentRepo.CountByStatus(ctx, sales.ShipmentStatusDraft)
	if err != nil {
		return nil, err
	}

	return &OpenDocumentsResponse{
		PendingRequisitions: pendingReqs,
		OpenPurchaseOrders:  openPOs,
		PendingReceipts:     pendingReceipts,
		OpenSalesOrders:     openSOs,
		DraftShipments:      draftShipments,
	}, nil
}

func (s *DashboardService) productsFor(ctx context.Context, levels []inventory.StockLevel) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(levels))
	for i := range levels {
		ids = append(ids, levels[i].ProductID)
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}
