package inventory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
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

func (m *MockEventPublisher) GetEvents() []shared.DomainEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]shared.DomainEvent, len(m.events))
	copy(result, m.events)
	return result
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

// memStockLevelRepository is an in-memory StockLevelRepository
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

// memStockMovementRepository is an in-memory append-only StockMovementRepository
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

// memAdjustmentRepository is an in-memory AdjustmentRepository
type memAdjustmentRepository struct {
	mu          sync.Mutex
	adjustments map[uuid.UUID]*inventory.Adjustment
}

func newMemAdjustmentRepository() *memAdjustmentRepository {
	return &memAdjustmentRepository{adjustments: make(map[uuid.UUID]*inventory.Adjustment)}
}

func (r *memAdjustmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	adjustment, ok := r.adjustments[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return adjustment, nil
}

func (r *memAdjustmentRepository) FindByNumber(ctx context.Context, number string) (*inventory.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, adjustment := range r.adjustments {
		if adjustment.Number == number {
			return adjustment, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memAdjustmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]inventory.Adjustment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]inventory.Adjustment, 0, len(r.adjustments))
	for _, adjustment := range r.adjustments {
		result = append(result, *adjustment)
	}
	return result, nil
}

func (r *memAdjustmentRepository) Save(ctx context.Context, adjustment *inventory.Adjustment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adjustments[adjustment.ID] = adjustment
	return nil
}

func (r *memAdjustmentRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.adjustments)), nil
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

// memProductRepository is an in-memory catalog.ProductRepository
type memProductRepository struct {
	mu       sync.Mutex
	products map[uuid.UUID]*catalog.Product
}

func newMemProductRepository(products ...*catalog.Product) *memProductRepository {
	repo := &memProductRepository{products: make(map[uuid.UUID]*catalog.Product)}
	for _, p := range products {
		repo.products[p.ID] = p
	}
	return repo
}

func (r *memProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return product, nil
}

func (r *memProductRepository) FindBySKU(ctx context.Context, sku string) (*catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == strings.ToUpper(sku) {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memProductRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		result = append(result, *p)
	}
	return result, nil
}

func (r *memProductRepository) FindByStatus(ctx context.Context, status catalog.ProductStatus, filter shared.Filter) ([]catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]catalog.Product, 0)
	for _, p := range r.products {
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
		if p, ok := r.products[id]; ok {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *memProductRepository) Save(ctx context.Context, product *catalog.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[product.ID] = product
	return nil
}

func (r *memProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *memProductRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.products)), nil
}

func (r *memProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if p.SKU == strings.ToUpper(sku) {
			return true, nil
		}
	}
	return false, nil
}

func newTestScope() (*NoOpTransactionScope, *memStockLevelRepository, *memStockMovementRepository, *memAdjustmentRepository) {
	levels := newMemStockLevelRepository()
	movements := newMemStockMovementRepository()
	adjustments := newMemAdjustmentRepository()
	scope := &NoOpTransactionScope{
		StockLevelRepo: levels,
		MovementRepo:   movements,
		AdjustmentRepo: adjustments,
		SequenceRepo:   newMemSequenceRepository(),
	}
	return scope, levels, movements, adjustments
}
