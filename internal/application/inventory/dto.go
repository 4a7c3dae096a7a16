package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/inventory"
)

// AdjustmentItemRequest is one line of a stock adjustment request
type AdjustmentItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Reason    string          `json:"reason" binding:"max=255"`
}

// CreateAdjustmentRequest creates and posts a stock adjustment
type CreateAdjustmentRequest struct {
	Type       string                  `json:"type" binding:"required,oneof=ADD REMOVE"`
	AdjustedAt *time.Time              `json:"adjusted_at"`
	Notes      string                  `json:"notes"`
	Items      []AdjustmentItemRequest `json:"items" binding:"required,min=1,dive"`
}

// AdjustmentItemResponse represents an adjustment line in API responses
type AdjustmentItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ProductID      uuid.UUID       `json:"product_id"`
	ProductSKU     string          `json:"product_sku"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	Reason         string          `json:"reason,omitempty"`
}

// AdjustmentResponse represents an adjustment document in API responses
type AdjustmentResponse struct {
	ID            uuid.UUID                `json:"id"`
	Number        string                   `json:"number"`
	Type          inventory.AdjustmentType `json:"type"`
	Status        string                   `json:"status"`
	Items         []AdjustmentItemResponse `json:"items"`
	TotalQuantity decimal.Decimal          `json:"total_quantity"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	AdjustedAt    time.Time                `json:"adjusted_at"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedBy     *uuid.UUID               `json:"created_by,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// NewAdjustmentResponse maps a domain adjustment to its response
func NewAdjustmentResponse(a *inventory.Adjustment) *AdjustmentResponse {
	items := make([]AdjustmentItemResponse, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, AdjustmentItemResponse{
			ID:             item.ID,
			ProductID:      item.ProductID,
			ProductSKU:     item.ProductSKU,
			ProductName:    item.ProductName,
			Quantity:       item.Quantity,
			UnitPrice:      item.UnitPrice,
			TotalAmount:    item.TotalAmount,
			QuantityBefore: item.QuantityBefore,
			QuantityAfter:  item.QuantityAfter,
			Reason:         item.Reason,
		})
	}
	return &AdjustmentResponse{
		ID:            a.ID,
		Number:        a.Number,
		Type:          a.Type,
		Status:        string(a.Status),
		Items:         items,
		TotalQuantity: a.TotalQuantity,
		TotalAmount:   a.TotalAmount,
		AdjustedAt:    a.AdjustedAt,
		Notes:         a.Notes,
		CreatedBy:     a.GetCreatedBy(),
		CreatedAt:     a.CreatedAt,
	}
}

// StockLevelResponse represents a ledger row in API responses
type StockLevelResponse struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ProductSKU    string          `json:"product_sku,omitempty"`
	ProductName   string          `json:"product_name,omitempty"`
	Unit          string          `json:"unit,omitempty"`
	OnHand        decimal.Decimal `json:"on_hand"`
	MinStock      decimal.Decimal `json:"min_stock"`
	IsBelowMin    bool            `json:"is_below_min"`
	LastCountedAt *time.Time      `json:"last_counted_at,omitempty"`
	LastCountedBy *uuid.UUID      `json:"last_counted_by,omitempty"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// MovementResponse represents an audit row in API responses
type MovementResponse struct {
	ID             uuid.UUID            `json:"id"`
	ProductID      uuid.UUID            `json:"product_id"`
	Direction      inventory.Direction  `json:"direction"`
	Quantity       decimal.Decimal      `json:"quantity"`
	SignedQuantity decimal.Decimal      `json:"signed_quantity"`
	UnitPrice      decimal.Decimal      `json:"unit_price"`
	TotalAmount    decimal.Decimal      `json:"total_amount"`
	QuantityBefore decimal.Decimal      `json:"quantity_before"`
	QuantityAfter  decimal.Decimal      `json:"quantity_after"`
	SourceType     inventory.SourceType `json:"source_type"`
	SourceNumber   string               `json:"source_number"`
	Reason         string               `json:"reason,omitempty"`
	ActorID        uuid.UUID            `json:"actor_id"`
	OccurredAt     time.Time            `json:"occurred_at"`
}

// NewMovementResponse maps a domain movement to its response
func NewMovementResponse(m *inventory.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		Direction:      m.Direction,
		Quantity:       m.Quantity,
		SignedQuantity: m.SignedQuantity,
		UnitPrice:      m.UnitPrice,
		TotalAmount:    m.TotalAmount,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		SourceType:     m.SourceType,
		SourceNumber:   m.SourceNumber,
		Reason:         m.Reason,
		ActorID:        m.ActorID,
		OccurredAt:     m.OccurredAt,
	}
}

// ListFilter represents common list filter options
type ListFilter struct {
	Search    string     `form:"search"`
	ProductID *uuid.UUID `form:"product_id"`
	Page      int        `form:"page" binding:"omitempty,min=1"`
	PageSize  int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy   string     `form:"order_by"`
	OrderDir  string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}
