package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/catalog"
)

// CreateProductRequest represents the request to create a product
type CreateProductRequest struct {
	SKU           string           `json:"sku" binding:"required,max=50"`
	Name          string           `json:"name" binding:"required,max=200"`
	Description   string           `json:"description"`
	Category      string           `json:"category" binding:"omitempty,max=100"`
	Unit          string           `json:"unit" binding:"required,max=20"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SellingPrice  *decimal.Decimal `json:"selling_price"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	MaxStock      *decimal.Decimal `json:"max_stock"`
	ReorderPoint  *decimal.Decimal `json:"reorder_point"`
}

// UpdateProductRequest represents the request to update a product
type UpdateProductRequest struct {
	Name        string `json:"name" binding:"required,max=200"`
	Description string `json:"description"`
	Category    string `json:"category" binding:"omitempty,max=100"`
}

// SetPricesRequest represents the request to update product prices
type SetPricesRequest struct {
	PurchasePrice decimal.Decimal `json:"purchase_price" binding:"required"`
	SellingPrice  decimal.Decimal `json:"selling_price" binding:"required"`
}

// SetThresholdsRequest represents the request to update stock thresholds
type SetThresholdsRequest struct {
	MinStock     decimal.Decimal `json:"min_stock" binding:"required"`
	MaxStock     decimal.Decimal `json:"max_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
}

// ChangeStatusRequest represents the request to change a product's status
type ChangeStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive discontinued"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	Category      string          `json:"category,omitempty"`
	Unit          string          `json:"unit"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	MinStock      decimal.Decimal `json:"min_stock"`
	MaxStock      decimal.Decimal `json:"max_stock"`
	ReorderPoint  decimal.Decimal `json:"reorder_point"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewProductResponse creates a ProductResponse from a domain product
func NewProductResponse(product *catalog.Product) *ProductResponse {
	return &ProductResponse{
		ID:            product.ID,
		SKU:           product.SKU,
		Name:          product.Name,
		Description:   product.Description,
		Category:      product.Category,
		Unit:          product.Unit,
		PurchasePrice: product.PurchasePrice,
		SellingPrice:  product.SellingPrice,
		MinStock:      product.MinStock,
		MaxStock:      product.MaxStock,
		ReorderPoint:  product.ReorderPoint,
		Status:        string(product.Status),
		CreatedAt:     product.CreatedAt,
		UpdatedAt:     product.UpdatedAt,
	}
}
