package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/shared"
)

// PurchaseOrderService manages purchase orders. Orders hold receipt
// progress per line; the goods received flow drives their completion.
type PurchaseOrderService struct {
	orderRepo      purchasing.PurchaseOrderRepository
	supplierRepo   partner.SupplierRepository
	productRepo    catalog.ProductRepository
	sequenceRepo   shared.DocumentSequenceRepository
	eventPublisher shared.EventPublisher
}

// NewPurchaseOrderService creates a new purchase order service
func NewPurchaseOrderService(
	orderRepo purchasing.PurchaseOrderRepository,
	supplierRepo partner.SupplierRepository,
	productRepo catalog.ProductRepository,
	sequenceRepo shared.DocumentSequenceRepository,
) *PurchaseOrderService {
	return &PurchaseOrderService{
		orderRepo:    orderRepo,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		sequenceRepo: sequenceRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *PurchaseOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft purchase order
func (s *PurchaseOrderService) Create(ctx context.Context, req *CreatePurchaseOrderRequest, actorID uuid.UUID) (*PurchaseOrderResponse, error) {
	supplier, err := s.supplierRepo.FindByID(ctx, req.SupplierID)
	if err != nil {
		return nil, err
	}
	if !supplier.IsActive() {
		return nil, shared.NewDomainError("SUPPLIER_INACTIVE", "Supplier is not active: "+supplier.Code)
	}

	products, err := resolveProducts(ctx, s.productRepo, lineProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	seq, err := s.sequenceRepo.Next(ctx, shared.DocTypePurchaseOrder, year)
	if err != nil {
		return nil, err
	}
	number := shared.FormatDocumentNumber(shared.DocTypePurchaseOrder, year, seq)

	order, err := purchasing.NewPurchaseOrder(number, supplier.ID, supplier.Name, actorID)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes
	if req.ExpectedAt != nil {
		if err := order.SetExpectedDate(*req.ExpectedAt); err != nil {
			return nil, err
		}
	}
	for _, line := range req.Items {
		product := products[line.ProductID]
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.PurchasePrice
		}
		if _, err := order.AddItem(product.ID, product.SKU, product.Name, line.Quantity, unitPrice, line.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)
	return NewPurchaseOrderResponse(order), nil
}

// Send transitions a draft order to SENT, committing it to the supplier
func (s *PurchaseOrderService) Send(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Send(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)
	return NewPurchaseOrderResponse(order), nil
}

// Cancel cancels an order that has not started receiving
func (s *PurchaseOrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)
	return NewPurchaseOrderResponse(order), nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewPurchaseOrderResponse(order), nil
}

// GetByNumber retrieves a purchase order by document number
func (s *PurchaseOrderService) GetByNumber(ctx context.Context, number string) (*PurchaseOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return NewPurchaseOrderResponse(order), nil
}

// List retrieves purchase orders with pagination, optionally by status
func (s *PurchaseOrderService) List(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[*PurchaseOrderResponse], error) {
	var orders []purchasing.PurchaseOrder
	var err error
	if status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, purchasing.PurchaseOrderStatus(status), filter)
	} else {
		orders, err = s.orderRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.orderRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*PurchaseOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, NewPurchaseOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *PurchaseOrderService) publishDomainEvents(ctx context.Context, order *purchasing.PurchaseOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		order.ClearDomainEvents()
	}
}
