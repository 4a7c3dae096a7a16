package purchasing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/shared"
)

// RequisitionService manages purchase requisitions. Requisitions never
// touch the inventory ledger; an approved requisition feeds purchase
// order creation.
type RequisitionService struct {
	requisitionRepo purchasing.RequisitionRepository
	productRepo     catalog.ProductRepository
	userRepo        identity.UserRepository
	sequenceRepo    shared.DocumentSequenceRepository
	eventPublisher  shared.EventPublisher
}

// NewRequisitionService creates a new requisition service
func NewRequisitionService(
	requisitionRepo purchasing.RequisitionRepository,
	productRepo catalog.ProductRepository,
	userRepo identity.UserRepository,
	sequenceRepo shared.DocumentSequenceRepository,
) *RequisitionService {
	return &RequisitionService{
		requisitionRepo: requisitionRepo,
		productRepo:     productRepo,
		userRepo:        userRepo,
		sequenceRepo:    sequenceRepo,
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *RequisitionService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a pending requisition
func (s *RequisitionService) Create(ctx context.Context, req *CreateRequisitionRequest, actorID uuid.UUID) (*RequisitionResponse, error) {
	products, err := resolveProducts(ctx, s.productRepo, lineProductIDs(req.Items))
	if err != nil {
		return nil, err
	}

	year := time.Now().Year()
	seq, err := s.sequenceRepo.Next(ctx, shared.DocTypeRequisition, year)
	if err != nil {
		return nil, err
	}
	number := shared.FormatDocumentNumber(shared.DocTypeRequisition, year, seq)

	requisition, err := purchasing.NewRequisition(number, actorID, req.Notes)
	if err != nil {
		return nil, err
	}
	for _, line := range req.Items {
		product := products[line.ProductID]
		unitPrice := line.UnitPrice
		if unitPrice.IsZero() {
			unitPrice = product.PurchasePrice
		}
		if _, err := requisition.AddItem(product.ID, product.SKU, product.Name, line.Quantity, unitPrice, line.Notes); err != nil {
			return nil, err
		}
	}

	if err := s.requisitionRepo.Save(ctx, requisition); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, requisition)
	return NewRequisitionResponse(requisition), nil
}

// Approve approves a pending requisition. Approval and rejection both
// require an approver role.
func (s *RequisitionService) Approve(ctx context.Context, id, approverID uuid.UUID, notes string) (*RequisitionResponse, error) {
	return s.decide(ctx, id, approverID, notes, true)
}

// Reject rejects a pending requisition
func (s *RequisitionService) Reject(ctx context.Context, id, approverID uuid.UUID, notes string) (*RequisitionResponse, error) {
	return s.decide(ctx, id, approverID, notes, false)
}

func (s *RequisitionService) decide(ctx context.Context, id, approverID uuid.UUID, notes string, approve bool) (*RequisitionResponse, error) {
	approver, err := s.userRepo.FindByID(ctx, approverID)
	if err != nil {
		return nil, err
	}
	if !approver.IsActive() || !approver.Role.CanApprove() {
		return nil, shared.ErrForbidden
	}

	requisition, err := s.requisitionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if approve {
		err = requisition.Approve(approverID, notes)
	} else {
		err = requisition.Reject(approverID, notes)
	}
	if err != nil {
		return nil, err
	}

	if err := s.requisitionRepo.Save(ctx, requisition); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, requisition)
	return NewRequisitionResponse(requisition), nil
}

// GetByID retrieves a requisition by ID
func (s *RequisitionService) GetByID(ctx context.Context, id uuid.UUID) (*RequisitionResponse, error) {
	requisition, err := s.requisitionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewRequisitionResponse(requisition), nil
}

// List retrieves requisitions with pagination, optionally by status
func (s *RequisitionService) List(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[*RequisitionResponse], error) {
	var requisitions []purchasing.Requisition
	var err error
	if status != "" {
		requisitions, err = s.requisitionRepo.FindByStatus(ctx, purchasing.RequisitionStatus(status), filter)
	} else {
		requisitions, err = s.requisitionRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.requisitionRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*RequisitionResponse, 0, len(requisitions))
	for i := range requisitions {
		responses = append(responses, NewRequisitionResponse(&requisitions[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *RequisitionService) publishDomainEvents(ctx context.Context, requisition *purchasing.Requisition) {
	if s.eventPublisher == nil {
		return
	}
	events := requisition.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		requisition.ClearDomainEvents()
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
