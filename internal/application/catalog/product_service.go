package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/shared"
)

// ProductService handles product catalog operations
type ProductService struct {
	productRepo    catalog.ProductRepository
	eventPublisher shared.EventPublisher
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// SetEventPublisher sets the event publisher for domain events
func (s *ProductService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create creates a new product. The SKU must be unique.
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (*ProductResponse, error) {
	exists, err := s.productRepo.ExistsBySKU(ctx, req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product with this SKU already exists")
	}

	product, err := catalog.NewProduct(req.SKU, req.Name, req.Unit)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := product.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}
	if req.Category != "" {
		if err := product.SetCategory(req.Category); err != nil {
			return nil, err
		}
	}

	purchasePrice := valueOrZero(req.PurchasePrice)
	sellingPrice := valueOrZero(req.SellingPrice)
	if !purchasePrice.IsZero() || !sellingPrice.IsZero() {
		if err := product.SetPrices(purchasePrice, sellingPrice); err != nil {
			return nil, err
		}
	}

	minStock := valueOrZero(req.MinStock)
	maxStock := valueOrZero(req.MaxStock)
	reorderPoint := valueOrZero(req.ReorderPoint)
	if !minStock.IsZero() || !maxStock.IsZero() || !reorderPoint.IsZero() {
		if err := product.SetStockThresholds(minStock, maxStock, reorderPoint); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)
	return NewProductResponse(product), nil
}

// Update updates a product's basic information
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req *UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Update(req.Name, req.Description); err != nil {
		return nil, err
	}
	if err := product.SetCategory(req.Category); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)
	return NewProductResponse(product), nil
}

// SetPrices updates a product's purchase and selling prices
func (s *ProductService) SetPrices(ctx context.Context, id uuid.UUID, req *SetPricesRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetPrices(req.PurchasePrice, req.SellingPrice); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return NewProductResponse(product), nil
}

// SetThresholds updates a product's stock thresholds
func (s *ProductService) SetThresholds(ctx context.Context, id uuid.UUID, req *SetThresholdsRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.SetStockThresholds(req.MinStock, req.MaxStock, req.ReorderPoint); err != nil {
		return nil, err
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	return NewProductResponse(product), nil
}

// ChangeStatus activates, deactivates, or discontinues a product.
// Discontinuing is irreversible.
func (s *ProductService) ChangeStatus(ctx context.Context, id uuid.UUID, req *ChangeStatusRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch catalog.ProductStatus(req.Status) {
	case catalog.ProductStatusActive:
		if product.Status == catalog.ProductStatusDiscontinued {
			return nil, shared.NewDomainError("INVALID_STATE", "Discontinued products cannot be reactivated")
		}
		product.Activate()
	case catalog.ProductStatusInactive:
		if product.Status == catalog.ProductStatusDiscontinued {
			return nil, shared.NewDomainError("INVALID_STATE", "Discontinued products cannot be deactivated")
		}
		product.Deactivate()
	case catalog.ProductStatusDiscontinued:
		if err := product.Discontinue(); err != nil {
			return nil, err
		}
	default:
		return nil, shared.NewDomainError("INVALID_STATUS", "Unknown product status")
	}

	if err := s.productRepo.Save(ctx, product); err != nil {
		return nil, err
	}
	s.publishDomainEvents(ctx, product)
	return NewProductResponse(product), nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return NewProductResponse(product), nil
}

// GetBySKU retrieves a product by SKU
func (s *ProductService) GetBySKU(ctx context.Context, sku string) (*ProductResponse, error) {
	product, err := s.productRepo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	return NewProductResponse(product), nil
}

// List retrieves products matching the filter, optionally restricted to a status
func (s *ProductService) List(ctx context.Context, status string, filter shared.Filter) (*shared.Paginated[*ProductResponse], error) {
	var (
		products []catalog.Product
		err      error
	)
	if status != "" {
		products, err = s.productRepo.FindByStatus(ctx, catalog.ProductStatus(status), filter)
	} else {
		products, err = s.productRepo.FindAll(ctx, filter)
	}
	if err != nil {
		return nil, err
	}
	total, err := s.productRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]*ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, NewProductResponse(&products[i]))
	}
	page := shared.NewPaginated(responses, total, filter.Page, filter.PageSize)
	return &page, nil
}

func (s *ProductService) publishDomainEvents(ctx context.Context, product *catalog.Product) {
	if s.eventPublisher == nil {
		return
	}
	events := product.GetDomainEvents()
	if len(events) > 0 {
		_ = s.eventPublisher.Publish(ctx, events...)
		product.ClearDomainEvents()
	}
}

func valueOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
