package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/stockflow/backend/internal/application/inventory"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ShipmentService manages outbound shipments. Creating a shipment records
// intent only; the SHIPPED transition debits the ledger and moves the
// linked sales order forward in the same transaction.
type ShipmentService struct {
	shipmentRepo   sales.ShipmentRepository
	orderRepo      sales.SalesOrderRepository
	customerRepo   partner.CustomerRepository
	productRepo    catalog.ProductRepository
	sequenceRepo   shared.DocumentSequenceRepository
	scope          appinventory.TransactionScope
	poster         *appinventory.MovementPoster
	eventPublisher shared.EventPublisher
}

// NewShipmentService creates a new shipment service
func NewShipmentService(
	shipmentRepo sales.ShipmentRepository,
	orderRepo sales.SalesOrderRepository,
	customerRepo partner.CustomerRepository,
	productRepo catalog.ProductRepository,
	sequenceRepo shared.DocumentSequenceRepository,
	scope appinventory.TransactionScope,
) *ShipmentService {
	return &ShipmentService{
		shipmentRepo: shipmentRepo,
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		sequenceRepo: sequenceRepo,
		scope:        scope,
		poster:       appinventory.NewMovementPoster(),
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ShipmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a draft shipment, either standalone or against a
// confirmed sales order. With a linked order and no explicit items the
// order's lines are copied onto the shipment.
func (s *ShipmentService) Create(ctx context.Context, req *CreateShipmentRequest, actorID uuid.UUID) (*ShipmentResponse, error) {
	var order *sales.SalesOrder
	customerID := req.CustomerID
	if req.SalesOrderID != nil {
		var err error
		order, err = s.orderRepo.FindByID(ctx, *req.SalesOrderID)
		if err != nil {
			return nil, err
		}
		if order.Status != sales.SalesOrderStatusConfirmed {
			return nil, shared.NewDomainError("ORDER_NOT_CONFIRMED", "Sales order must be confirmed before shipping: "+order.Number)
		}
		customerID = order.CustomerID
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}

	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("CUSTOMER_INACTIVE", "Customer is not active: "+customer.Code)
	}

	year := time.Now().Year()
	seq, err := s.sequenceRepo.Next(ctx, shared.DocTypeShipment, year)
	if err != nil {
		return nil, err
	}
	number := shared.FormatDocumentNumber(shared.DocTypeShipment, year, seq)

	shipment, err := sales.NewShipment(number, customer.ID, customer.Name, actorID)
	if err != nil {
		return nil, err
	}
	shipment.Notes = req.Notes
	if order != nil {
		if err := shipment.LinkSalesOrder(order.ID, order.Number); err != nil {
			return nil, err
		}
	}

	if len(req.Items) > 0 {
		products, err := resolveProducts(ctx, s.productRepo, lineProductIDs(req.Items))
		if err != nil {
			return nil, err
		}
		for _, line := range req.Items {
			product := products[line.ProductID]
			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.SellingPrice
			}
			if _, err := shipment.AddItem(product.ID, product.SKU, product.Name, line.Quantity, unitPrice, line.Notes); err != nil {
				return nil, err
			}
		}
	} else if order != nil {
		for i := range order.Items {
			item := &order.Items[i]
			if _, err := shipment.AddItem(item.ProductID, item.ProductSKU, item.ProductName, item.Quantity, item.UnitPrice, item.Notes); err != nil {
				return nil, err
			}
		}
	}

	if req.ShippingAddress != "" || req.Carrier != "" || req.TrackingNumber != "" {
		address := req.ShippingAddress
		if address == "" {
			address = customer.ShippingAddress
		}
		if err := shipment.SetShippingDetails(address, req.Carrier, req.TrackingNumber); err != nil {
			return nil, err
		}
	} else if customer.ShippingAddress != "" {
		if err := shipment.SetShippingDetails(customer.ShippingAddress, "", ""); err != nil {
			return nil, err
		}
	}

	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return NewShipmentResponse(shipment), nil
}

// MarkShipped dispatches the shipment: the ledger is debited per line and
// the linked sales order moves to SHIPPED, atomically
func (s *ShipmentService) MarkShipped(ctx context.Context, id uuid.UUID, actorID uuid.UUID) (*ShipmentResponse, error) {
	var shipment *sales.Shipment
	var postResult *appinventory.PostResult

	err := s.scope.Execute(ctx, func(repos appinventory.TransactionalRepositories) error {
		var err error
		shipment, err = repos.Shipments().FindByID(ctx, id)
		if err != nil {
			return err
		}

		if err := shipment.MarkShipped(); err != nil {
			return err
		}

		minStocks, err := s.minStocksFor(ctx, shipment)
		if err != nil {
			return err
		}
		postLines := make([]appinventory.PostLine, 0, len(shipment.Items))
		for i := range shipment.Items {
			item := &shipment.Items[i]
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
			Direction:    inventory.DirectionOut,
			SourceType:   inventory.SourceTypeShipment,
			SourceNumber: shipment.Number,
			ActorID:      actorID,
			Lines:        postLines,
		})
		if err != nil {
			return err
		}

		if shipment.SalesOrderID != nil {
			order, err := repos.SalesOrders().FindByID(ctx, *shipment.SalesOrderID)
			if err != nil {
				return err
			}
			if err := order.MarkShipped(); err != nil {
				return err
			}
			if err := repos.SalesOrders().Save(ctx, order); err != nil {
				return err
			}
		}

		return repos.Shipments().Save(ctx, shipment)
	})
	if err != nil {
		return nil, err
	}

	s.publishDomainEvents(ctx, shipment)
	s.publishEvents(ctx, postResult.LowStockEvents(inventory.SourceTypeShipment, shipment.Number)...)
	return NewShipmentResponse(shipment), nil
}

// MarkDelivered records delivery and completes the linked sales order
func (s *ShipmentService) MarkDelivered(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.MarkDelivered(); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}

	if shipment.SalesOrderID != nil {
		order, err := s.orderRepo.FindByID(ctx, *shipment.SalesOrderID)
		if err != nil {
			return nil, err
		}
		if order.Status == sales.SalesOrderStatusShipped {
			if err := order.Complete(); err != nil {
				return nil, err
			}
			if err := s.orderRepo.Save(ctx, order); err != nil {
				return nil, err
			}
		}
	}
	return NewShipmentResponse(shipment), nil
}

// Cancel cancels a draft shipment without touching the ledger
func (s *ShipmentService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := shipment.Cancel(reason); err != nil {
		return nil, err
	}
	if err := s.shipmentRepo.Save(ctx, shipment); err != nil {
		return nil, err
	}
	return NewShipmentResponse(shipment), nil
}

// GetByID retrieves a shipment by ID
func (s *ShipmentService) GetByID(ctx context.Context, id uuid.UUID) (*ShipmentResponse, error) {
	shipment, err := s.shipmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewShipmentResponse(shipment), nil
}

// ListBySalesOrder retrieves all shipments for a sales order
func (s *ShipmentService) ListBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]*ShipmentResponse, error) {
	shipments, err := s.shipmentRepo.FindBySalesOrder(ctx, salesOrderID)
	if err != nil {
		return nil, err
	}
	responses := make([]*ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, NewShipmentResponse(&shipments[i]))
	}
	return responses, nil
}

// List retrieves shipments with pagination
func (s *ShipmentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*ShipmentResponse], error) {
	shipments, err := s.shipmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.shipmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	responses := make([]*ShipmentResponse, 0, len(shipments))
	for i := range shipments {
		responses = append(responses, NewShipmentResponse(&shipments[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *ShipmentService) minStocksFor(ctx context.Context, shipment *sales.Shipment) (map[uuid.UUID]decimal.Decimal, error) {
	ids := make([]uuid.UUID, 0, len(shipment.Items))
	seen := make(map[uuid.UUID]bool, len(shipment.Items))
	for i := range shipment.Items {
		if !seen[shipment.Items[i].ProductID] {
			seen[shipment.Items[i].ProductID] = true
			ids = append(ids, shipment.Items[i].ProductID)
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

func (s *ShipmentService) publishDomainEvents(ctx context.Context, shipment *sales.Shipment) {
	if s.eventPublisher == nil {
		return
	}
	events := shipment.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		shipment.ClearDomainEvents()
	}
}

func (s *ShipmentService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
