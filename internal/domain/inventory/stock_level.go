package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// StockLevel is the ledger row tracking on-hand quantity of a product.
// One row per product, created lazily on first mutation. Mutations go
// through Apply inside the transactional pipeline only.
type StockLevel struct {
	shared.BaseAggregateRoot
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex"`
	OnHand        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	LastCountedAt *time.Time
	LastCountedBy *uuid.UUID `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (StockLevel) TableName() string {
	return "stock_levels"
}

// NewStockLevel creates a zero-quantity ledger row for a product
func NewStockLevel(productID uuid.UUID) *StockLevel {
	return &StockLevel{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		OnHand:            decimal.Zero,
	}
}

// Apply mutates the on-hand quantity by a signed delta and returns the
// before/after snapshot. A delta that would drive the quantity negative
// is rejected with ErrInsufficientStock; landing exactly on zero is
// allowed.
func (s *StockLevel) Apply(delta decimal.Decimal, actorID uuid.UUID) (before, after decimal.Decimal, err error) {
	before = s.OnHand
	after = s.OnHand.Add(delta)

	if after.IsNegative() {
		return before, before, shared.ErrInsufficientStock
	}

	now := time.Now()
	s.OnHand = after
	s.LastCountedAt = &now
	s.LastCountedBy = &actorID
	s.UpdatedAt = now
	s.IncrementVersion()

	return before, after, nil
}

// IsBelowMin returns true if the on-hand quantity is at or below the
// given threshold
func (s *StockLevel) IsBelowMin(minStock decimal.Decimal) bool {
	return s.OnHand.LessThanOrEqual(minStock)
}
