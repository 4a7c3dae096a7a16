package partner

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/shared"
)

// MockEventPublisher records published events for assertions
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

// memSupplierRepository is an in-memory SupplierRepository
type memSupplierRepository struct {
	mu        sync.Mutex
	suppliers map[uuid.UUID]*partner.Supplier
}

func newMemSupplierRepository() *memSupplierRepository {
	return &memSupplierRepository{suppliers: make(map[uuid.UUID]*partner.Supplier)}
}

func (r *memSupplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	supplier, ok := r.suppliers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return supplier, nil
}

func (r *memSupplierRepository) FindByCode(ctx context.Context, code string) (*partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, supplier := range r.suppliers {
		if supplier.Code == strings.ToUpper(code) {
			return supplier, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memSupplierRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Supplier, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]partner.Supplier, 0, len(r.suppliers))
	for _, supplier := range r.suppliers {
		result = append(result, *supplier)
	}
	return result, nil
}

func (r *memSupplierRepository) Save(ctx context.Context, supplier *partner.Supplier) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suppliers[supplier.ID] = supplier
	return nil
}

func (r *memSupplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.suppliers, id)
	return nil
}

func (r *memSupplierRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.suppliers)), nil
}

func (r *memSupplierRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, supplier := range r.suppliers {
		if supplier.Code == strings.ToUpper(code) {
			return true, nil
		}
	}
	return false, nil
}

// memCustomerRepository is an in-memory CustomerRepository
type memCustomerRepository struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*partner.Customer
}

func newMemCustomerRepository() *memCustomerRepository {
	return &memCustomerRepository{customers: make(map[uuid.UUID]*partner.Customer)}
}

func (r *memCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	customer, ok := r.customers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return customer, nil
}

func (r *memCustomerRepository) FindByCode(ctx context.Context, code string) (*partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.customers {
		if customer.Code == strings.ToUpper(code) {
			return customer, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memCustomerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := make([]partner.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		result = append(result, *customer)
	}
	return result, nil
}

func (r *memCustomerRepository) Save(ctx context.Context, customer *partner.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[customer.ID] = customer
	return nil
}

func (r *memCustomerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.customers, id)
	return nil
}

func (r *memCustomerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.customers)), nil
}

func (r *memCustomerRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, customer := range r.customers {
		if customer.Code == strings.ToUpper(code) {
			return true, nil
		}
	}
	return false, nil
}
