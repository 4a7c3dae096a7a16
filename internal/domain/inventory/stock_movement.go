package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Direction represents which way stock moved
type Direction string

const (
	DirectionIn  Direction = "IN"
	DirectionOut Direction = "OUT"
)

// SourceType represents the document type that caused a movement
type SourceType string

const (
	SourceTypeAdjustment   SourceType = "ADJUSTMENT"
	SourceTypeGoodsReceipt SourceType = "GOODS_RECEIPT"
	SourceTypeShipment     SourceType = "SHIPMENT"
	// SourceTypeSalesReturn is reserved for customer return receipts,
	// which credit the ledger like goods receipts. No endpoint posts
	// it yet; it is part of the movement vocabulary so old audit rows
	// stay readable once returns land.
	SourceTypeSalesReturn SourceType = "SALES_RETURN"
)

// IsValid returns true if the source type is one of the known types
func (s SourceType) IsValid() bool {
	switch s {
	case SourceTypeAdjustment, SourceTypeGoodsReceipt, SourceTypeShipment, SourceTypeSalesReturn:
		return true
	}
	return false
}

// StockMovement is an immutable audit record of a single ledger change.
// Corrections are made with new movements, never by editing old ones.
type StockMovement struct {
	shared.BaseEntity
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index:idx_movement_product_time,priority:1"`
	Direction      Direction       `gorm:"type:varchar(3);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"` // always positive
	SignedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	SourceType     SourceType      `gorm:"type:varchar(30);not null;index"`
	SourceNumber   string          `gorm:"type:varchar(50);not null;index"`
	SourceLineID   *uuid.UUID      `gorm:"type:uuid"`
	Reason         string          `gorm:"type:varchar(255)"`
	ActorID        uuid.UUID       `gorm:"type:uuid;not null"`
	OccurredAt     time.Time       `gorm:"not null;index:idx_movement_product_time,priority:2"`
}

// TableName returns the table name for GORM
func (StockMovement) TableName() string {
	return "stock_movements"
}

// NewStockMovement creates an audit record for a ledger change.
// The arithmetic invariant quantityAfter - quantityBefore == signed
// quantity is enforced here, as is the direction/sign match.
func NewStockMovement(
	productID uuid.UUID,
	direction Direction,
	quantity decimal.Decimal,
	unitPrice decimal.Decimal,
	quantityBefore, quantityAfter decimal.Decimal,
	sourceType SourceType,
	sourceNumber string,
	sourceLineID *uuid.UUID,
	reason string,
	actorID uuid.UUID,
) (*StockMovement, error) {
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Movement quantity must be positive")
	}
	if !sourceType.IsValid() {
		return nil, shared.NewDomainError("INVALID_SOURCE_TYPE", "Unknown movement source type")
	}
	if sourceNumber == "" {
		return nil, shared.NewDomainError("INVALID_SOURCE", "Movement source number cannot be empty")
	}

	signed := quantity
	if direction == DirectionOut {
		signed = quantity.Neg()
	} else if direction != DirectionIn {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction must be IN or OUT")
	}

	if !quantityAfter.Sub(quantityBefore).Equal(signed) {
		return nil, shared.NewDomainError("INVALID_MOVEMENT", "Movement snapshots do not match the signed quantity")
	}

	return &StockMovement{
		BaseEntity:     shared.NewBaseEntity(),
		ProductID:      productID,
		Direction:      direction,
		Quantity:       quantity,
		SignedQuantity: signed,
		UnitPrice:      unitPrice,
		TotalAmount:    quantity.Mul(unitPrice).Round(2),
		QuantityBefore: quantityBefore,
		QuantityAfter:  quantityAfter,
		SourceType:     sourceType,
		SourceNumber:   sourceNumber,
		SourceLineID:   sourceLineID,
		Reason:         reason,
		ActorID:        actorID,
		OccurredAt:     time.Now(),
	}, nil
}
