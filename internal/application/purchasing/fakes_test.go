package purchasing

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appinventory "github.com/stockflow/backend/internal/application/inventory"
	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/purchasing"
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

// memRequisitionRepository is an in-memory RequisitionRepository
type memRequisitionRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*purchasing.Requisition
}

func newMemRequisitionRepository() *memRequisitionRepository {
	return &memRequisitionRepository{byID: make(map[uuid.UUID]*purchasing.Requisition)}
}

func (r *memRequisitionRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.Requisition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	requisition, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return requisition, nil
}

func (r *memRequisitionRepository) FindByNumber(ctx context.Context, number string) (*purchasing.Requisition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, requisition := range r.byID {
		if requisition.Number == number {
			return requisition, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memRequisitionRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.Requisition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.Requisition, 0, len(r.byID))
	for _, requisition := range r.byID {
		result = append(result, *requisition)
	}
	return result, nil
}

func (r *memRequisitionRepository) FindByStatus(ctx context.Context, status purchasing.RequisitionStatus, filter shared.Filter) ([]purchasing.Requisition, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.Requisition, 0)
	for _, requisition := range r.byID {
		if requisition.Status == status {
			result = append(result, *requisition)
		}
	}
	return result, nil
}

func (r *memRequisitionRepository) Save(ctx context.Context, requisition *purchasing.Requisition) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[requisition.ID] = requisition
	return nil
}

func (r *memRequisitionRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memRequisitionRepository) CountByStatus(ctx context.Context, status purchasing.RequisitionStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, requisition := range r.byID {
		if requisition.Status == status {
			count++
		}
	}
	return count, nil
}

// memPurchaseOrderRepository is an in-memory PurchaseOrderRepository
type memPurchaseOrderRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*purchasing.PurchaseOrder
}

func newMemPurchaseOrderRepository() *memPurchaseOrderRepository {
	return &memPurchaseOrderRepository{byID: make(map[uuid.UUID]*purchasing.PurchaseOrder)}
}

func (r *memPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return order, nil
}

func (r *memPurchaseOrderRepository) FindByNumber(ctx context.Context, number string) (*purchasing.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.byID {
		if order.Number == number {
			return order, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.PurchaseOrder, 0, len(r.byID))
	for _, order := range r.byID {
		result = append(result, *order)
	}
	return result, nil
}

func (r *memPurchaseOrderRepository) FindByStatus(ctx context.Context, status purchasing.PurchaseOrderStatus, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.PurchaseOrder, 0)
	for _, order := range r.byID {
		if order.Status == status {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *memPurchaseOrderRepository) FindBySupplier(ctx context.Context, supplierID uuid.UUID, filter shared.Filter) ([]purchasing.PurchaseOrder, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.PurchaseOrder, 0)
	for _, order := range r.byID {
		if order.SupplierID == supplierID {
			result = append(result, *order)
		}
	}
	return result, nil
}

func (r *memPurchaseOrderRepository) Save(ctx context.Context, order *purchasing.PurchaseOrder) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[order.ID] = order
	return nil
}

func (r *memPurchaseOrderRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memPurchaseOrderRepository) CountByStatus(ctx context.Context, status purchasing.PurchaseOrderStatus) (int64, error) {
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

// memGoodsReceivedRepository is an in-memory GoodsReceivedRepository
type memGoodsReceivedRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*purchasing.GoodsReceived
}

func newMemGoodsReceivedRepository() *memGoodsReceivedRepository {
	return &memGoodsReceivedRepository{byID: make(map[uuid.UUID]*purchasing.GoodsReceived)}
}

func (r *memGoodsReceivedRepository) FindByID(ctx context.Context, id uuid.UUID) (*purchasing.GoodsReceived, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	grn, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return grn, nil
}

func (r *memGoodsReceivedRepository) FindByNumber(ctx context.Context, number string) (*purchasing.GoodsReceived, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, grn := range r.byID {
		if grn.Number == number {
			return grn, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memGoodsReceivedRepository) FindAll(ctx context.Context, filter shared.Filter) ([]purchasing.GoodsReceived, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.GoodsReceived, 0, len(r.byID))
	for _, grn := range r.byID {
		result = append(result, *grn)
	}
	return result, nil
}

func (r *memGoodsReceivedRepository) FindByPurchaseOrder(ctx context.Context, purchaseOrderID uuid.UUID) ([]purchasing.GoodsReceived, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]purchasing.GoodsReceived, 0)
	for _, grn := range r.byID {
		if grn.PurchaseOrderID == purchaseOrderID {
			result = append(result, *grn)
		}
	}
	return result, nil
}

func (r *memGoodsReceivedRepository) Save(ctx context.Context, grn *purchasing.GoodsReceived) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[grn.ID] = grn
	return nil
}

func (r *memGoodsReceivedRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memGoodsReceivedRepository) CountByStatus(ctx context.Context, status purchasing.GoodsReceivedStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, grn := range r.byID {
		if grn.Status == status {
			count++
		}
	}
	return count, nil
}

// memUserRepository is an in-memory identity.UserRepository
type memUserRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*identity.User
}

func newMemUserRepository(users ...*identity.User) *memUserRepository {
	repo := &memUserRepository{byID: make(map[uuid.UUID]*identity.User)}
	for _, u := range users {
		repo.byID[u.ID] = u
	}
	return repo
}

func (r *memUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

func (r *memUserRepository) FindByUsername(ctx context.Context, username string) (*identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.byID {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memUserRepository) FindAll(ctx context.Context, filter shared.Filter) ([]identity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]identity.User, 0, len(r.byID))
	for _, user := range r.byID {
		result = append(result, *user)
	}
	return result, nil
}

func (r *memUserRepository) Save(ctx context.Context, user *identity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[user.ID] = user
	return nil
}

func (r *memUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memUserRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	_, err := r.FindByUsername(ctx, username)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// memSupplierRepository is an in-memory partner.SupplierRepository
type memSupplierRepository struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*partner.Supplier
}

func newMemSupplierRepository(suppliers ...*partner.Supplier) *memSupplierRepository {
	repo := &memSupplierRepository{byID: make(map[uuid.UUID]*partner.Supplier)}
	for _, s := range suppliers {
		repo.byID[s.ID] = s
	}
	return repo
}

func (r *memSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	supplier, ok := r.byID[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return supplier, nil
}

func (r *memSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, supplier := range r.byID {
		if supplier.Code == code {
			return supplier, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]partner.Supplier, 0, len(r.byID))
	for _, supplier := range r.byID {
		result = append(result, *supplier)
	}
	return result, nil
}

func (r *memSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[supplier.ID] = supplier
	return nil
}

func (r *memSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byID, id)
	return nil
}

func (r *memSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.byID)), nil
}

func (r *memSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
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
func newTestScope(grns *memGoodsReceivedRepository, orders *memPurchaseOrderRepository) (*appinventory.NoOpTransactionScope, *memStockLevelRepository, *memStockMovementRepository) {
	levels := newMemStockLevelRepository()
	movements := newMemStockMovementRepository()
	scope := &appinventory.NoOpTransactionScope{
		StockLevelRepo:    levels,
		MovementRepo:      movements,
		PurchaseOrderRepo: orders,
		GoodsReceivedRepo: grns,
		SequenceRepo:      newMemSequenceRepository(),
	}
	return scope, levels, movements
}

func seedLevel(levels *memStockLevelRepository, productID uuid.UUID, onHand decimal.Decimal) {
	level := inventory.NewStockLevel(productID)
	level.OnHand = onHand
	_ = levels.Save(context.Background(), level)
}
