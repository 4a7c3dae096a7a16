package sales

import (
	"context"
	"fmt"
	"sync"
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

// MockEventPublisher is a mock implementation of shared.EventPublisher
type MockEventPublisher struct {
	mu     sync.Mutex
	events []shared.DomainEvent
}

func NewMockEventPublisher() *MockEventPublisher {
	return &MockEventPublisher{events: make([]shared.DomainEvent, 0)}
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockEventPublisher) GetEventsByType(eventType string) []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, 0)
	for _, e := range m.events {
		if e.EventType() == eventType {
			result = append(result, e)
		}
	}
	return result
}

// memSalesOrderRepository is an in-memory SalesOrderRepository
type memSalesOrderRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*sales.SalesOrder
}

func newMemSalesOrderRepository() *memSalesOrderRepository {
	return &memSalesOrderRepository{byID: make(map[uuid.UUID]*sales.SalesOrder)}
}

func (r *memSalesOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *memSalesOrderRepository) FindByNumber(ctx context.Context, number string) (*sales.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.byID {
		if order.Number == number {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSalesOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]sales.SalesOrder, 0, len(r.byID))
	for _, order := range r.byID {
		result = append(result, *order)
	}
	return result, nil
}

func (r *memSalesOrderRepository) FindByStatus(ctx context.Context, status sales.SalesOrderStatus, filter shared.Filter) ([]sales.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]sales.SalesOrder, 0)
	for _, order := range r.byID {
		if order.Status == status {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *memSalesOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]sales.SalesOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]sales.SalesOrder, 0)
	for _, order := range r.byID {
		if order.CustomerID == customerID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *memSalesOrderRepository) Save(ctx context.Context, order *sales.SalesOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[order.ID] = order
	return nil
}

func (r *memSalesOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memSalesOrderRepository) CountByStatus(ctx context.Context, status sales.SalesOrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, order := range r.byID {
		if order.Status == status {
			count++
		}
	}
	return count, nil
}

// memShipmentRepository is an in-memory ShipmentRepository
type memShipmentRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*sales.Shipment
}

func newMemShipmentRepository() *memShipmentRepository {
	return &memShipmentRepository{byID: make(map[uuid.UUID]*sales.Shipment)}
}

func (r *memShipmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*sales.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	shipment, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return shipment, nil
}

func (r *memShipmentRepository) FindByNumber(ctx context.Context, number string) (*sales.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, shipment := range r.byID {
		if shipment.Number == number {
			return shipment, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memShipmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]sales.Shipment, 0, len(r.byID))
	for _, shipment := range r.byID {
		result = append(result, *shipment)
	}
	return result, nil
}

func (r *memShipmentRepository) FindBySalesOrder(ctx context.Context, salesOrderID uuid.UUID) ([]sales.Shipment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]sales.Shipment, 0)
	for _, shipment := range r.byID {
		if shipment.SalesOrderID != nil && *shipment.SalesOrderID == salesOrderID {
			result = append(result, *shipment)
		}
	}
	return result, nil
}

func (r *memShipmentRepository) Save(ctx context.Context, shipment *sales.Shipment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[shipment.ID] = shipment
	return nil
}

func (r *memShipmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memShipmentRepository) CountByStatus(ctx context.Context, status sales.ShipmentStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, shipment := range r.byID {
		if shipment.Status == status {
			count++
		}
	}
	return count, nil
}

// memCustomerRepository is an in-memory partner.CustomerRepository
type memCustomerRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*partner.Customer
}

func newMemCustomerRepository(customers ...*partner.Customer) *memCustomerRepository {
	repo := &memCustomerRepository{byID: make(map[uuid.UUID]*partner.Customer)}
	for _, c := range customers {
		repo.byID[c.ID] = c
	}
	return repo
}

func (r *memCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

func (r *memCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.byID {
		if customer.Code == code {
			return customer, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]partner.Customer, 0, len(r.byID))
	for _, customer := range r.byID {
		result = append(result, *customer)
	}
	return result, nil
}

func (r *memCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[customer.ID] = customer
	return nil
}

func (r *memCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	_, err := r.FindByCode(ctx, code)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// memProductRepository is an in-memory catalog.ProductRepository
type memProductRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*catalog.Product
}

func newMemProductRepository(products ...*catalog.Product) *memProductRepository {
	repo := &memProductRepository{byID: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		repo.byID[p.ID] = p
	}
	return repo
}

func (r *memProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *memProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(r.byID))
	for _, p := range r.byID {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0)
	for _, p := range r.byID {
		if p.Status == status {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.byID[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[product.ID] = product
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

// memSequenceRepository is an in-memory DocumentSequenceRepository
type memSequenceRepository struct {
	mu   sync.Mutex
	next map[string]int64
}

func newMemSequenceRepository() *memSequenceRepository {
	return &memSequenceRepository{next: make(map[string]int64)}
}

func (r *memSequenceRepository) Next(ctx context.Context, docType string, year int) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := fmt.Sprintf("%s/%d", docType, year)
	r.next[key]++
	return r.next[key], nil
}

// memStockLevelRepository is an in-memory inventory.StockLevelRepository
type memStockLevelRepository struct {
	mu     sync.Mutex
	levels map[uuid.UUID]*inventory.StockLevel
}

func newMemStockLevelRepository() *memStockLevelRepository {
	return &memStockLevelRepository{levels: make(map[uuid.UUID]*inventory.StockLevel)}
}

func (r *memStockLevelRepository) FindByProductID(ctx context.Context, productID uuid.UUID) (*inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	level, ok := r.levels[productID]
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
	if level, ok := r.levels[productID]; ok {
		copied := *level
		return &copied, nil
	}
	level := inventory.NewStockLevel(productID)
	r.levels[productID] = level
	copied := *level
	return &copied, nil
}

func (r *memStockLevelRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockLevel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockLevel, 0, len(r.levels))
	for _, level := range r.levels {
		result = append(result, *level)
	}
	return result, nil
}

func (r *memStockLevelRepository) Save(ctx context.Context, level *inventory.StockLevel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *level
	r.levels[level.ProductID] = &copied
	return nil
}

func (r *memStockLevelRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.levels)), nil
}

// memStockMovementRepository is an in-memory inventory.StockMovementRepository
type memStockMovementRepository struct {
	mu        sync.Mutex
	movements []inventory.StockMovement
}

func newMemStockMovementRepository() *memStockMovementRepository {
	return &memStockMovementRepository{movements: make([]inventory.StockMovement, 0)}
}

func (r *memStockMovementRepository) Append(ctx context.Context, movement *inventory.StockMovement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.movements = append(r.movements, *movement)
	return nil
}

func (r *memStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.movements {
		if r.movements[i].ID == id {
			copied := r.movements[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memStockMovementRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockMovement, len(r.movements))
	copy(result, r.movements)
	return result, nil
}

func (r *memStockMovementRepository) FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockMovement, 0)
	for i := range r.movements {
		if r.movements[i].ProductID == productID {
			result = append(result, r.movements[i])
		}
	}
	return result, nil
}

func (r *memStockMovementRepository) FindSince(ctx context.Context, since time.Time, limit int) ([]inventory.StockMovement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.StockMovement, 0)
	for i := range r.movements {
		if r.movements[i].OccurredAt.After(since) {
			result = append(result, r.movements[i])
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (r *memStockMovementRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.movements)), nil
}

// newTestScope wires in-memory repositories into a no-op transaction scope
func newTestScope(orders *memSalesOrderRepository, shipments *memShipmentRepository) (*appinventory.NoOpTransactionScope, *memStockLevelRepository, *memStockMovementRepository) {
	levels := newMemStockLevelRepository()
	movements := newMemStockMovementRepository()
	scope := &appinventory.NoOpTransactionScope{
		StockLevelRepo: levels,
		MovementRepo:   movements,
		SalesOrderRepo: orders,
		ShipmentRepo:   shipments,
		SequenceRepo:   newMemSequenceRepository(),
	}
	return scope, levels, movements
}

func seedLevel(levels *memStockLevelRepository, productID uuid.UUID, onHand decimal.Decimal) {
	level := inventory.NewStockLevel(productID)
	level.OnHand = onHand
	_ = levels.Save(context.Background(), level)
}
