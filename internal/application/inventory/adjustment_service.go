package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// AdjustmentService creates and queries stock adjustments.
// Creating an adjustment is the mutation: the document is persisted and
// the ledger is moved in the same transaction.
type AdjustmentService struct {
	productRepo    catalog.ProductRepository
	adjustmentRepo inventory.AdjustmentRepository
	scope          TransactionScope
	poster         *MovementPoster
	eventPublisher shared.EventPublisher
}

// NewAdjustmentService creates a new adjustment service
func NewAdjustmentService(
	productRepo catalog.ProductRepository,
	adjustmentRepo inventory.AdjustmentRepository,
	scope TransactionScope,
) *AdjustmentService {
	return &AdjustmentService{
		productRepo:    productRepo,
		adjustmentRepo: adjustmentRepo,
		scope:          scope,
		poster:         NewMovementPoster(),
	}
}

// SetEventPublisher sets the event publisher for domain events
func (s *AdjustmentService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a stock adjustment and applies its deltas to the ledger
func (s *AdjustmentService) Create(ctx context.Context, req *CreateAdjustmentRequest, actorID uuid.UUID) (*AdjustmentResponse, error) {
	adjType := inventory.AdjustmentType(req.Type)
	if !adjType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type must be ADD or REMOVE")
	}

	products, err := s.resolveProducts(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	adjustedAt := time.Time{}
	if req.AdjustedAt != nil {
		adjustedAt = *req.AdjustedAt
	}

	var adjustment *inventory.Adjustment
	var postResult *PostResult

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		seq, err := repos.Sequences().Next(ctx, shared.DocTypeAdjustment, time.Now().Year())
		if err != nil {
			return err
		}
		number := shared.FormatDocumentNumber(shared.DocTypeAdjustment, time.Now().Year(), seq)

		adjustment, err = inventory.NewAdjustment(number, adjType, adjustedAt, req.Notes, actorID)
		if err != nil {
			return err
		}

		postLines := make([]PostLine, 0, len(req.Items))
		for _, line := range req.Items {
			product := products[line.ProductID]
			unitPrice := line.UnitPrice
			if unitPrice.IsZero() {
				unitPrice = product.PurchasePrice
			}
			item, err := adjustment.AddItem(product.ID, product.SKU, product.Name, line.Quantity, unitPrice, line.Reason)
			if err != nil {
				return err
			}
			postLines = append(postLines, PostLine{
				LineID:      &item.ID,
				ProductID:   product.ID,
				ProductSKU:  product.SKU,
				ProductName: product.Name,
				Quantity:    line.Quantity,
				UnitPrice:   unitPrice,
				MinStock:    product.MinStock,
				Reason:      line.Reason,
			})
		}

		postResult, err = s.poster.Post(ctx, repos, PostRequest{
			Direction:    adjType.Direction(),
			SourceType:   inventory.SourceTypeAdjustment,
			SourceNumber: adjustment.Number,
			ActorID:      actorID,
			Lines:        postLines,
		})
		if err != nil {
			return err
		}
		for i := range adjustment.Items {
			adjustment.Items[i].SetSnapshots(postResult.Snapshots[i].Before, postResult.Snapshots[i].After)
		}

		return repos.Adjustments().Save(ctx, adjustment)
	})
	if err != nil {
		return nil, err
	}

	adjustment.AddDomainEvent(inventory.NewAdjustmentCreatedEvent(adjustment, actorID))
	s.publishDomainEvents(ctx, adjustment)
	s.publishEvents(ctx, postResult.LowStockEvents(inventory.SourceTypeAdjustment, adjustment.Number)...)

	return NewAdjustmentResponse(adjustment), nil
}

// GetByID retrieves an adjustment by ID
func (s *AdjustmentService) GetByID(ctx context.Context, id uuid.UUID) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewAdjustmentResponse(adjustment), nil
}

// GetByNumber retrieves an adjustment by document number
func (s *AdjustmentService) GetByNumber(ctx context.Context, number string) (*AdjustmentResponse, error) {
	adjustment, err := s.adjustmentRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return NewAdjustmentResponse(adjustment), nil
}

// List retrieves adjustments with pagination
func (s *AdjustmentService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[*AdjustmentResponse], error) {
	adjustments, err := s.adjustmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.adjustmentRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*AdjustmentResponse, 0, len(adjustments))
	for i := range adjustments {
		responses = append(responses, NewAdjustmentResponse(&adjustments[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// resolveProducts loads and validates the products referenced by the request lines
func (s *AdjustmentService) resolveProducts(ctx context.Context, items []AdjustmentItemRequest) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	for _, item := range items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product not found: "+item.ProductID.String())
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product is not active: "+product.SKU)
		}
	}
	return byID, nil
}

func (s *AdjustmentService) publishDomainEvents(ctx context.Context, adjustment *inventory.Adjustment) {
	if s.eventPublisher == nil {
		return
	}
	events := adjustment.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		adjustment.ClearDomainEvents()
	}
}

func (s *AdjustmentService) publishEvents(ctx context.Context, events ...shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events...)
}
