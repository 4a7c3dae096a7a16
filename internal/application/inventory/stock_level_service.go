package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// StockLevelService provides read access to the ledger and its audit trail
type StockLevelService struct {
	levelRepo    inventory.StockLevelRepository
	movementRepo inventory.StockMovementRepository
	productRepo  catalog.ProductRepository
}

// NewStockLevelService creates a new stock level service
func NewStockLevelService(
	levelRepo inventory.StockLevelRepository,
	movementRepo inventory.StockMovementRepository,
	productRepo catalog.ProductRepository,
) *StockLevelService {
	return &StockLevelService{
		levelRepo:    levelRepo,
		movementRepo: movementRepo,
		productRepo:  productRepo,
	}
}

// ListLevels retrieves ledger rows with product details
func (s *StockLevelService) ListLevels(ctx context.Context, filter shared.Filter) (*shared.Paginated[*StockLevelResponse], error) {
	levels, err := s.levelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.levelRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	products, err := s.productsFor(ctx, levels)
	if err != nil {
		return nil, err
	}

	responses := make([]*StockLevelResponse, 0, len(levels))
	for i := range levels {
		responses = append(responses, s.toLevelResponse(&levels[i], products[levels[i].ProductID]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// GetByProduct retrieves the ledger row for a single product.
// A product with no recorded movements reads as zero on hand.
func (s *StockLevelService) GetByProduct(ctx context.Context, productID uuid.UUID) (*StockLevelResponse, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	level, err := s.levelRepo.FindByProductID(ctx, productID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		return &StockLevelResponse{
			ProductID:   product.ID,
			ProductSKU:  product.SKU,
			ProductName: product.Name,
			Unit:        product.Unit,
			OnHand:      decimal.Zero,
			MinStock:    product.MinStock,
			IsBelowMin:  decimal.Zero.LessThanOrEqual(product.MinStock),
			UpdatedAt:   product.UpdatedAt,
		}, nil
	}
	return s.toLevelResponse(level, product), nil
}

// ListLowStock retrieves ledger rows at or below their product's minimum
func (s *StockLevelService) ListLowStock(ctx context.Context, filter shared.Filter) ([]*StockLevelResponse, error) {
	levels, err := s.levelRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	products, err := s.productsFor(ctx, levels)
	if err != nil {
		return nil, err
	}

	responses := make([]*StockLevelResponse, 0)
	for i := range levels {
		product := products[levels[i].ProductID]
		if product == nil {
			continue
		}
		if levels[i].IsBelowMin(product.MinStock) {
			responses = append(responses, s.toLevelResponse(&levels[i], product))
		}
	}
	return responses, nil
}

// ListMovements retrieves audit rows, newest first
func (s *StockLevelService) ListMovements(ctx context.Context, filter shared.Filter) (*shared.Paginated[*MovementResponse], error) {
	movements, err := s.movementRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.movementRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, NewMovementResponse(&movements[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

// ListMovementsByProduct retrieves the audit trail for one product, newest first
func (s *StockLevelService) ListMovementsByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (*shared.Paginated[*MovementResponse], error) {
	movements, err := s.movementRepo.FindByProduct(ctx, productID, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*MovementResponse, 0, len(movements))
	for i := range movements {
		responses = append(responses, NewMovementResponse(&movements[i]))
	}
	page := shared.NewPaginated(responses, int64(len(responses)), filter.Page, filter.PageSize)
	return &page, nil
}

func (s *StockLevelService) productsFor(ctx context.Context, levels []inventory.StockLevel) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(levels))
	for i := range levels {
		ids = append(ids, levels[i].ProductID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]*catalog.Product{}, nil
	}
	products, err := s.productRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func (s *StockLevelService) toLevelResponse(level *inventory.StockLevel, product *catalog.Product) *StockLevelResponse {
	resp := &StockLevelResponse{
		ProductID:     level.ProductID,
		OnHand:        level.OnHand,
		LastCountedAt: level.LastCountedAt,
		LastCountedBy: level.LastCountedBy,
		UpdatedAt:     level.UpdatedAt,
	}
	if product != nil {
		resp.ProductSKU = product.SKU
		resp.ProductName = product.Name
		resp.Unit = product.Unit
		resp.MinStock = product.MinStock
		resp.IsBelowMin = level.IsBelowMin(product.MinStock)
	}
	return resp
}
