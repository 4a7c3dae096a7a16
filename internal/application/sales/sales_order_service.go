package sales

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

// SalesOrderService manages sales orders. Orders never touch the ledger;
// their linked shipments debit stock on dispatch.
type SalesOrderService struct {
	orderRepo      sales.SalesOrderRepository
	customerRepo   partner.CustomerRepository
	productRepo    catalog.ProductRepository
	sequenceRepo   shared.DocumentSequenceRepository
	eventPublisher shared.EventPublisher
}

// NewSalesOrderService creates a new sales order service
func NewSalesOrderService(
	orderRepo sales.SalesOrderRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	sequenceRepo shared.DocumentSequenceRepository,
) *SalesOrderService {
	return &SalesOrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		sequenceRepo: sequenceRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *SalesOrderService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft sales order
func (s *SalesOrderService) Create(ctx context.Context, req *CreateSalesOrderRequest, actorID uuid.UUID) (*SalesOrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is not active: "+customer.Code)
	}

	products, err := resolveProducts(ctx, s.productRepo, lineProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	seq, err := s.sequenceRepo.Next(ctx, shared.DocTypeSalesOrder, year)
	if err != nil {
		return nil, err
	}
	number := shared.FormatDocumentNumber(shared.DocTypeSalesOrder, year, seq)

	order, err := sales.NewSalesOrder(number, customer.ID, customer.Name, actorID)
	if err != nil {
		return nil, err
	}
	order.Notes = req.Notes
	for _, line := range req.Items {
		product := products[line.ProductID]
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.SellingPrice
		}
		if _, err := order.AddItem(product.ID, product.SKU, product.Name, line.Quantity, unitPrice, line.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)
	return NewSalesOrderResponse(order), nil
}

// Confirm transitions a draft order to CONFIRMED
func (s *SalesOrderService) Confirm(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, func(order *sales.SalesOrder) error { return order.Confirm() })
}

// Complete closes a shipped order
func (s *SalesOrderService) Complete(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, func(order *sales.SalesOrder) error { return order.Complete() })
}

// Cancel cancels an order that has not shipped
func (s *SalesOrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*SalesOrderResponse, error) {
	return s.transition(ctx, id, func(order *sales.SalesOrder) error { return order.Cancel(reason) })
}

func (s *SalesOrderService) transition(ctx context.Context, id uuid.UUID, fn func(*sales.SalesOrder) error) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := fn(order); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, order)
	return NewSalesOrderResponse(order), nil
}

// GetByID retrieves a sales order by ID
func (s *SalesOrderService) GetByID(ctx context.Context, id uuid.UUID) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewSalesOrderResponse(order), nil
}

// GetByNumber retrieves a sales order by document number
func (s *SalesOrderService) GetByNumber(ctx context.Context, number string) (*SalesOrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return NewSalesOrderResponse(order), nil
}

// List retrieves sales orders with pagination, optionally by status
func (s *SalesOrderService) List(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[*SalesOrderResponse], error) {
	var orders []sales.SalesOrder
	var err error
	if status != "" {
		orders, err = s.orderRepo.FindByStatus(ctx, sales.SalesOrderStatus(status), filter)
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

	responses := make([]*SalesOrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, NewSalesOrderResponse(&orders[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *SalesOrderService) publishDomainEvents(ctx context.Context, order *sales.SalesOrder) {
	if s.eventPublisher == nil {
		return
	}
	events := order.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		order.ClearDomainEvents()
	}
}

// resolveProducts loads the referenced products and checks they are active
func resolveProducts(ctx context.Context, repo catalog.ProductRepository, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: "+id.String())
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active: "+product.SKU)
		}
	}
	return byID, nil
}

func lineProductIDs(items []LineItemRequest) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}
	return ids
}
