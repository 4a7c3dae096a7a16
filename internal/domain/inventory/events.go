package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeAdjustment = "Adjustment"
	AggregateTypeStockLevel = "StockLevel"
)

// Event type constants
const (
	EventTypeAdjustmentCreated = "AdjustmentCreated"
	EventTypeLowStockDetected  = "LowStockDetected"
)

// AdjustmentCreatedEvent is published after an adjustment document and
// its ledger mutations have committed
type AdjustmentCreatedEvent struct {
	shared.BaseDomainEvent
	AdjustmentID uuid.UUID       `json:"adjustment_id"`
	Number       string          `json:"number"`
	Type         AdjustmentType  `json:"type"`
	ItemCount    int             `json:"item_count"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	ActorID      uuid.UUID       `json:"actor_id"`
}

// NewAdjustmentCreatedEvent creates a new AdjustmentCreatedEvent
func NewAdjustmentCreatedEvent(adjustment *Adjustment, actorID uuid.UUID) *AdjustmentCreatedEvent {
	return &AdjustmentCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeAdjustmentCreated, AggregateTypeAdjustment, adjustment.ID),
		AdjustmentID:    adjustment.ID,
		Number:          adjustment.Number,
		Type:            adjustment.Type,
		ItemCount:       len(adjustment.Items),
		TotalAmount:     adjustment.TotalAmount,
		ActorID:         actorID,
	}
}

// LowStockDetectedEvent is published when a committed mutation leaves a
// product at or below its minimum stock threshold
type LowStockDetectedEvent struct {
	shared.BaseDomainEvent
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	OnHand      decimal.Decimal `json:"on_hand"`
	MinStock    decimal.Decimal `json:"min_stock"`
	SourceType  SourceType      `json:"source_type"`
	SourceNumber string         `json:"source_number"`
}

// NewLowStockDetectedEvent creates a new LowStockDetectedEvent
func NewLowStockDetectedEvent(productID uuid.UUID, sku, name string, onHand, minStock decimal.Decimal, sourceType SourceType, sourceNumber string) *LowStockDetectedEvent {
	return &LowStockDetectedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeLowStockDetected, AggregateTypeStockLevel, productID),
		ProductID:       productID,
		ProductSKU:      sku,
		ProductName:     name,
		OnHand:          onHand,
		MinStock:        minStock,
		SourceType:      sourceType,
		SourceNumber:    sourceNumber,
	}
}
