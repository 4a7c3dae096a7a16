package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/stockflow/backend/internal/application/inventory"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/shared"
)

// GoodsReceivedService manages goods received notes. Completing a note is
// the inventory-affecting moment: each line posts a positive ledger delta
// and the purchase order's receipt progress advances in the same
// transaction.
type GoodsReceivedService struct {
	grnRepo        purchasing.GoodsReceivedRepository
	orderRepo      purchasing.PurchaseOrderRepository
	productRepo    catalog.ProductRepository
	sequenceRepo   shared.DocumentSequenceRepository
	scope          appinventory.TransactionScope
	poster         *appinventory.MovementPoster
	eventPublisher shared.EventPublisher
}

// NewGoodsReceivedService creates a new goods received service
func NewGoodsReceivedService(
	grnRepo purchasing.GoodsReceivedRepository,
	orderRepo purchasing.PurchaseOrderRepository,
	productRepo catalog.ProductRepository,
	sequenceRepo shared.DocumentSequenceRepository,
	scope appinventory.TransactionScope,
) *GoodsReceivedService {
	return &GoodsReceivedService{
		grnRepo:      grnRepo,
		orderRepo:    orderRepo,
		productRepo:  productRepo,
		sequenceRepo: sequenceRepo,
		scope:        scope,
		poster:       appinventory.NewMovementPoster(),
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *GoodsReceivedService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a pending goods received note against an open purchase order
func (s *GoodsReceivedService) Create(ctx context.Context, req *CreateGoodsReceivedRequest, actorID uuid.UUID) (*GoodsReceivedResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, req.PurchaseOrderID)
	if err != nil {
		return nil, err
	}
	if !order.Status.IsOpen() {
		return nil, shared.NewDomainError("ORDER_NOT_OPEN", "Purchase order is not open for receiving: "+order.Number)
	}

	orderLines := make(map[uuid.UUID]*purchasing.PurchaseOrderItem, len(order.Items))
	for i := range order.Items {
		orderLines[order.Items[i].ID] = &order.Items[i]
	}

	year := time.Now().Year()
	seq, err := s.sequenceRepo.Next(ctx, shared.DocTypeGoodsReceived, year)
	if err != nil {
		return nil, err
	}
	number := shared.FormatDocumentNumber(shared.DocTypeGoodsReceived, year, seq)

	receivedAt := time.Now()
	if req.ReceivedAt != nil {
		receivedAt = *req.ReceivedAt
	}

	grn, err := purchasing.NewGoodsReceived(number, order.ID, order.Number, receivedAt, actorID)
	if err != nil {
		return nil, err
	}
	grn.Notes = req.Notes
	for _, line := range req.Items {
		orderLine, ok := orderLines[line.OrderItemID]
		if !ok {
			return nil, shared.NewDomainError("UNKNOWN_ORDER_LINE", "Receipt references a line that is not on this purchase order")
		}
		if line.Quantity.GreaterThan(orderLine.Outstanding()) {
			return nil, shared.NewDomainError("RECEIPT_EXCEEDS_OUTSTANDING", "Received quantity exceeds outstanding quantity for "+orderLine.ProductSKU)
		}
		if _, err := grn.AddItem(orderLine.ID, orderLine.ProductID, orderLine.ProductSKU, orderLine.ProductName, line.Quantity, orderLine.UnitPrice, line.Notes); err != nil {
			return nil, err
		}
	}
	if len(grn.Items) == 0 {
		return nil, shared.NewDomainError("EMPTY_RECEIPT", "Goods received note must have at least one line")
	}

	if err := s.grnRepo.Save(ctx, grn); err != nil {
		return nil, err
	}
	return NewGoodsReceivedResponse(grn), nil
}

// Complete posts the note's lines to the ledger and advances the purchase
// order's receipt progress, all in one transaction
func (s *GoodsReceivedService) Complete(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*GoodsReceivedResponse, error) {
	var grn *purchasing.GoodsReceived
	var order *purchasing.PurchaseOrder
	var postResult *appinventory.PostResult

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		var err error
		grn, err = repos.GoodsReceipts().FindByID(ctx, id)
		if err != nil {
			return err
		}
		order, err = repos.PurchaseOrders().FindByID(ctx, grn.PurchaseOrderID)
		if err != nil {
			return err
		}

		if err := grn.Complete(); err != nil {
			return err
		}

		minStocks, err := s.minStocksFor(ctx, grn)
		if err != nil {
			return err
		}
		postLines := make([]appinventory.PostLine, 0, len(grn.Items))
		for i := range grn.Items {
			item := &grn.Items[i]
			postLines = append(postLines, appinventory.PostLine{
				LineID:      &item.ID,
				ProductID:   item.ProductID,
				ProductSKU:  item.ProductSKU,
				ProductName: item.ProductName,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
				MinStock:    minStocks[item.ProductID],
			})
		}
		postResult, err = s.poster.Post(ctx, repos, appinventory.PostRequest{
			Direction:    inventory.DirectionIn,
			SourceType:   inventory.SourceTypeGoodsReceipt,
			SourceNumber: grn.Number,
			ActorID:      actorID,
			Lines:        postLines,
		})
		if err != nil {
			return err
		}

		if err := order.RecordReceipt(grn.ReceiptByOrderLine()); err != nil {
			return err
		}

		if err := repos.GoodsReceipts().Save(ctx, grn); err != nil {
			return err
		}
		return repos.PurchaseOrders().Save(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, grn)
	s.publishEvents(ctx, postResult.LowStockEvents(inventory.SourceTypeGoodsReceipt, grn.Number)...)
	return NewGoodsReceivedResponse(grn), nil
}

// Cancel cancels a pending note without touching the ledger
func (s *GoodsReceivedService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*GoodsReceivedResponse, error) {
	grn, err := s.grnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := grn.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.grnRepo.Save(ctx, grn); err != nil {
		return nil, err
	}
	return NewGoodsReceivedResponse(grn), nil
}

// GetByID retrieves a goods received note by ID
func (s *GoodsReceivedService) GetByID(ctx context.Context, id uuid.UUID) (*GoodsReceivedResponse, error) {
	grn, err := s.grnRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewGoodsReceivedResponse(grn), nil
}

// ListByPurchaseOrder retrieves all notes recorded against an order
func (s *GoodsReceivedService) ListByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]*GoodsReceivedResponse, error) {
	grns, err := s.grnRepo.FindByPurchaseOrder(ctx, purchaseOrderID)
	if err != nil {
		return nil, err
	}
	responses := make([]*GoodsReceivedResponse, 0, len(grns))
	for i := range grns {
		responses = append(responses, NewGoodsReceivedResponse(&grns[i]))
	}
	return responses, nil
}

// List retrieves goods received notes with pagination
func (s *GoodsReceivedService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*GoodsReceivedResponse], error) {
	grns, err := s.grnRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.grnRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*GoodsReceivedResponse, 0, len(grns))
	for i := range grns {
		responses = append(responses, NewGoodsReceivedResponse(&grns[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *GoodsReceivedService) minStocksFor(ctx context.Context, grn *purchasing.GoodsReceived) (map[uuid.UUID]decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(grn.Items))
	seen := make(map[uuid.UUID]bool, len(grn.Items))
	for i := range grn.Items {
		if !seen[grn.Items[i].ProductID] {
			seen[grn.Items[i].ProductID] = true
			ids = append(ids, grn.Items[i].ProductID)
		}
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	minStocks := make(map[uuid.UUID]decimal.Decimal, len(products))
	for i := range products {
		minStocks[products[i].ID] = products[i].MinStock
	}
	return minStocks, nil
}

func (s *GoodsReceivedService) publishDomainEvents(ctx context.Context, grn *purchasing.GoodsReceived) {
	if s.eventPublisher == nil {
		return
	}
	events := grn.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		grn.ClearDomainEvents()
	}
}

func (s *GoodsReceivedService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
