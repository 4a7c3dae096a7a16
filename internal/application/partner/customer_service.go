package partner

import (
	"context"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/shared"
)

// CustomerService handles customer master-data operations
type CustomerService struct {
	customerRepo   partner.CustomerRepository
	eventPublisher shared.EventPublisher
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(customerRepo partner.CustomerRepository) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *CustomerService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new customer. The code must be unique.
func (s *CustomerService) Create(ctx context.Context, req *CreateCustomerRequest) (*CustomerResponse, error) {
	exists, err := s.customerRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer with this code already exists")
	}

	customer, err := partner.NewCustomer(req.Code, req.Name)
	if err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
		return nil, err
	}
	if req.ShippingAddress != "" {
		customer.SetShippingAddress(req.ShippingAddress)
	}
	if req.Notes != "" {
		customer.SetNotes(req.Notes)
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, customer)
	return NewCustomerResponse(customer), nil
}

// Update updates a customer's details
func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, req *UpdateCustomerRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := customer.Update(req.Name); err != nil {
		return nil, err
	}
	if err := customer.SetContact(req.ContactName, req.Phone, req.Email); err != nil {
		return nil, err
	}
	customer.SetShippingAddress(req.ShippingAddress)

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return NewCustomerResponse(customer), nil
}

// ChangeStatus activates or deactivates a customer.
// Inactive customers cannot receive new sales orders.
func (s *CustomerService) ChangeStatus(ctx context.Context, id uuid.UUID, req *ChangeStatusRequest) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch partner.CustomerStatus(req.Status) {
	case partner.CustomerStatusActive:
		customer.Activate()
	case partner.CustomerStatusInactive:
		customer.Deactivate()
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown customer status")
	}

	if err := s.customerRepo.Save(ctx, customer); err != nil {
		return nil, err
	}
	return NewCustomerResponse(customer), nil
}

// GetByID retrieves a customer by ID
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewCustomerResponse(customer), nil
}

// GetByCode retrieves a customer by code
func (s *CustomerService) GetByCode(ctx context.Context, code string) (*CustomerResponse, error) {
	customer, err := s.customerRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return NewCustomerResponse(customer), nil
}

// List retrieves customers matching the filter
func (s *CustomerService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*CustomerResponse], error) {
	customers, err := s.customerRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.customerRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*CustomerResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, NewCustomerResponse(&customers[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *CustomerService) publishDomainEvents(ctx context.Context, customer *partner.Customer) {
	if s.eventPublisher == nil {
		return
	}
	events := customer.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		customer.ClearDomainEvents()
	}
}
