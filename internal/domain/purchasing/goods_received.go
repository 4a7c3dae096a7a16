package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// GoodsReceivedStatus represents the status of a goods received note
type GoodsReceivedStatus string

const (
	GoodsReceivedStatusPending   GoodsReceivedStatus = "PENDING"
	GoodsReceivedStatusCompleted GoodsReceivedStatus = "COMPLETED"
	GoodsReceivedStatusCancelled GoodsReceivedStatus = "CANCELLED"
)

// IsValid checks if the status is a known GoodsReceivedStatus
func (s GoodsReceivedStatus) IsValid() bool {
	switch s {
	case GoodsReceivedStatusPending, GoodsReceivedStatusCompleted, GoodsReceivedStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s GoodsReceivedStatus) CanTransitionTo(target GoodsReceivedStatus) bool {
	switch s {
	case GoodsReceivedStatusPending:
		return target == GoodsReceivedStatusCompleted || target == GoodsReceivedStatusCancelled
	case GoodsReceivedStatusCompleted, GoodsReceivedStatusCancelled:
		return false // terminal states
	}
	return false
}

// GoodsReceivedItem represents a line item in a goods received note
type GoodsReceivedItem struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	GoodsReceivedID uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderItemID     uuid.UUID       `gorm:"type:uuid;not null;index"` // purchase order line being received
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU      string          `gorm:"type:varchar(50);not null"`
	ProductName     string          `gorm:"type:varchar(200);not null"`
	Quantity        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice       decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes           string          `gorm:"type:varchar(255)"`
	SortOrder       int             `gorm:"not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (GoodsReceivedItem) TableName() string {
	return "goods_received_items"
}

// GoodsReceived is a receipt of goods against a purchase order.
// Completing it is the inventory-affecting moment: each line posts a
// positive ledger delta and the purchase order's receipt progress is
// updated in the same transaction.
type GoodsReceived struct {
	shared.BaseAggregateRoot
	Number          string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	PurchaseOrderID uuid.UUID           `gorm:"type:uuid;not null;index"`
	OrderNumber     string              `gorm:"type:varchar(50);not null"`
	Status          GoodsReceivedStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Items           []GoodsReceivedItem `gorm:"foreignKey:GoodsReceivedID;constraint:OnDelete:CASCADE"`
	TotalQuantity   decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount     decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	ReceivedAt      time.Time           `gorm:"not null"`
	CompletedAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(255)"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (GoodsReceived) TableName() string {
	return "goods_received_notes"
}

// NewGoodsReceived creates a new pending goods received note
func NewGoodsReceived(number string, purchaseOrderID uuid.UUID, orderNumber string, receivedAt time.Time, createdBy uuid.UUID) (*GoodsReceived, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if purchaseOrderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Purchase order ID cannot be empty")
	}
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Purchase order number cannot be empty")
	}
	if receivedAt.IsZero() {
		receivedAt = time.Now()
	}

	grn := &GoodsReceived{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Number:            number,
		PurchaseOrderID:   purchaseOrderID,
		OrderNumber:       orderNumber,
		Status:            GoodsReceivedStatusPending,
		Items:             make([]GoodsReceivedItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		ReceivedAt:        receivedAt,
	}

	return grn, nil
}

// AddItem appends a line item. Only valid while pending.
func (g *GoodsReceived) AddItem(orderItemID, productID uuid.UUID, productSKU, productName string, quantity, unitPrice decimal.Decimal, notes string) (*GoodsReceivedItem, error) {
	if g.Status != GoodsReceivedStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a decided goods received note")
	}
	if orderItemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER_LINE", "Order line ID cannot be empty")
	}
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
	item := GoodsReceivedItem{
		ID:              uuid.New(),
		GoodsReceivedID: g.ID,
		OrderItemID:     orderItemID,
		ProductID:       productID,
		ProductSKU:      productSKU,
		ProductName:     productName,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalAmount:     quantity.Mul(unitPrice).Round(2),
		Notes:           notes,
		SortOrder:       len(g.Items),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	g.Items = append(g.Items, item)
	g.recalculateTotals()
	g.UpdatedAt = now

	return &g.Items[len(g.Items)-1], nil
}

// Complete marks the note completed. The caller posts the ledger
// mutations in the same transaction.
func (g *GoodsReceived) Complete() error {
	if !g.Status.CanTransitionTo(GoodsReceivedStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot complete goods received note in status "+string(g.Status))
	}
	if len(g.Items) == 0 {
		return shared.NewDomainError("EMPTY_RECEIPT", "Cannot complete a goods received note without items")
	}

	now := time.Now()
	g.Status = GoodsReceivedStatusCompleted
	g.CompletedAt = &now
	g.UpdatedAt = now
	g.IncrementVersion()

	g.AddDomainEvent(NewGoodsReceivedCompletedEvent(g))

	return nil
}

// Cancel discards a pending note without inventory effect
func (g *GoodsReceived) Cancel(reason string) error {
	if !g.Status.CanTransitionTo(GoodsReceivedStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot cancel goods received note in status "+string(g.Status))
	}

	now := time.Now()
	g.Status = GoodsReceivedStatusCancelled
	g.CancelledAt = &now
	g.CancelReason = reason
	g.UpdatedAt = now
	g.IncrementVersion()

	return nil
}

// ReceiptByOrderLine returns received quantities keyed by purchase
// order line ID, for PurchaseOrder.RecordReceipt
func (g *GoodsReceived) ReceiptByOrderLine() map[uuid.UUID]decimal.Decimal {
	received := make(map[uuid.UUID]decimal.Decimal, len(g.Items))
	for _, item := range g.Items {
		received[item.OrderItemID] = received[item.OrderItemID].Add(item.Quantity)
	}
	return received
}

func (g *GoodsReceived) recalculateTotals() {
	totalQty := decimal.Zero
	totalAmount := decimal.Zero
	for _, item := range g.Items {
		totalQty = totalQty.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	g.TotalQuantity = totalQty
	g.TotalAmount = totalAmount.Round(2)
}
