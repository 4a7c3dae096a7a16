package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// AdjustmentType represents the direction of a stock adjustment
type AdjustmentType string

const (
	AdjustmentTypeAdd    AdjustmentType = "ADD"
	AdjustmentTypeRemove AdjustmentType = "REMOVE"
)

// IsValid returns true if the adjustment type is Add or Remove
func (t AdjustmentType) IsValid() bool {
	return t == AdjustmentTypeAdd || t == AdjustmentTypeRemove
}

// Polarity returns +1 for Add and -1 for Remove
func (t AdjustmentType) Polarity() decimal.Decimal {
	if t == AdjustmentTypeRemove {
		return decimal.NewFromInt(-1)
	}
	return decimal.NewFromInt(1)
}

// Direction returns the movement direction for this adjustment type
func (t AdjustmentType) Direction() Direction {
	if t == AdjustmentTypeRemove {
		return DirectionOut
	}
	return DirectionIn
}

// AdjustmentStatus represents the status of an adjustment.
// Adjustments are created directly in their terminal approved state;
// creation is the ledger mutation.
type AdjustmentStatus string

const (
	AdjustmentStatusApproved AdjustmentStatus = "APPROVED"
)

// AdjustmentItem represents a line item in a stock adjustment
type AdjustmentItem struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	AdjustmentID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU     string          `gorm:"type:varchar(50);not null"`
	ProductName    string          `gorm:"type:varchar(200);not null"`
	Quantity       decimal.Decimal `gorm:"type:decimal(18,4);not null"` // always positive
	UnitPrice      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityBefore decimal.Decimal `gorm:"type:decimal(18,4);not null"` // ledger snapshot, set during posting
	QuantityAfter  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Reason         string          `gorm:"type:varchar(255)"`
	SortOrder      int             `gorm:"not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (AdjustmentItem) TableName() string {
	return "adjustment_items"
}

// SetSnapshots records the ledger before/after quantities for this line.
// Called by the posting pipeline inside the document transaction.
func (i *AdjustmentItem) SetSnapshots(before, after decimal.Decimal) {
	i.QuantityBefore = before
	i.QuantityAfter = after
	i.UpdatedAt = time.Now()
}

// Adjustment is a manual stock correction document. It is created
// directly in approved status and immutable afterwards; its creation
// is the ledger mutation.
type Adjustment struct {
	shared.BaseAggregateRoot
	Number        string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type          AdjustmentType   `gorm:"type:varchar(10);not null"`
	Status        AdjustmentStatus `gorm:"type:varchar(20);not null;default:'APPROVED'"`
	Items         []AdjustmentItem `gorm:"foreignKey:AdjustmentID;constraint:OnDelete:CASCADE"`
	TotalQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	AdjustedAt    time.Time        `gorm:"not null"`
	Notes         string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Adjustment) TableName() string {
	return "adjustments"
}

// NewAdjustment creates a new approved adjustment document
func NewAdjustment(number string, adjType AdjustmentType, adjustedAt time.Time, notes string, actorID uuid.UUID) (*Adjustment, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if !adjType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ADJUSTMENT_TYPE", "Adjustment type must be ADD or REMOVE")
	}
	if adjustedAt.IsZero() {
		adjustedAt = time.Now()
	}

	adjustment := &Adjustment{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(actorID),
		Number:            number,
		Type:              adjType,
		Status:            AdjustmentStatusApproved,
		Items:             make([]AdjustmentItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		AdjustedAt:        adjustedAt,
		Notes:             notes,
	}

	return adjustment, nil
}

// AddItem appends a line item. Only valid before the document is posted;
// the posting pipeline fills the snapshot columns.
func (a *Adjustment) AddItem(productID uuid.UUID, productSKU, productName string, quantity, unitPrice decimal.Decimal, reason string) (*AdjustmentItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if !quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	item := AdjustmentItem{
		ID:           uuid.New(),
		AdjustmentID: a.ID,
		ProductID:    productID,
		ProductSKU:   productSKU,
		ProductName:  productName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  quantity.Mul(unitPrice).Round(2),
		Reason:       reason,
		SortOrder:    len(a.Items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	a.Items = append(a.Items, item)
	a.recalculateTotals()
	a.UpdatedAt = now

	return &a.Items[len(a.Items)-1], nil
}

// SignedDelta returns the ledger delta for one line quantity
func (a *Adjustment) SignedDelta(quantity decimal.Decimal) decimal.Decimal {
	return quantity.Mul(a.Type.Polarity())
}

func (a *Adjustment) recalculateTotals() {
	totalQty := decimal.Zero
	totalAmount := decimal.Zero
	for _, item := range a.Items {
		totalQty = totalQty.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	a.TotalQuantity = totalQty
	a.TotalAmount = totalAmount.Round(2)
}
