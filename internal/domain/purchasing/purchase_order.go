package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// PurchaseOrderStatus represents the status of a purchase order
type PurchaseOrderStatus string

const (
	PurchaseOrderStatusDraft             PurchaseOrderStatus = "DRAFT"
	PurchaseOrderStatusSent              PurchaseOrderStatus = "SENT"
	PurchaseOrderStatusPartiallyReceived PurchaseOrderStatus = "PARTIALLY_RECEIVED"
	PurchaseOrderStatusCompleted         PurchaseOrderStatus = "COMPLETED"
	PurchaseOrderStatusCancelled         PurchaseOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known PurchaseOrderStatus
func (s PurchaseOrderStatus) IsValid() bool {
	switch s {
	case PurchaseOrderStatusDraft, PurchaseOrderStatusSent, PurchaseOrderStatusPartiallyReceived,
		PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s PurchaseOrderStatus) CanTransitionTo(target PurchaseOrderStatus) bool {
	switch s {
	case PurchaseOrderStatusDraft:
		return target == PurchaseOrderStatusSent || target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusSent:
		return target == PurchaseOrderStatusPartiallyReceived ||
			target == PurchaseOrderStatusCompleted ||
			target == PurchaseOrderStatusCancelled
	case PurchaseOrderStatusPartiallyReceived:
		return target == PurchaseOrderStatusCompleted
	case PurchaseOrderStatusCompleted, PurchaseOrderStatusCancelled:
		return false // terminal states
	}
	return false
}

// IsOpen returns true if the purchase order can still receive goods
func (s PurchaseOrderStatus) IsOpen() bool {
	return s == PurchaseOrderStatusSent || s == PurchaseOrderStatusPartiallyReceived
}

// PurchaseOrderItem represents a line item in a purchase order
type PurchaseOrderItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PurchaseOrderID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU       string          `gorm:"type:varchar(50);not null"`
	ProductName      string          `gorm:"type:varchar(200);not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice        decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes            string          `gorm:"type:varchar(255)"`
	SortOrder        int             `gorm:"not null;default:0"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrderItem) TableName() string {
	return "purchase_order_items"
}

// Outstanding returns the quantity still awaiting receipt
func (i *PurchaseOrderItem) Outstanding() decimal.Decimal {
	return i.Quantity.Sub(i.ReceivedQuantity)
}

// IsFullyReceived returns true if the ordered quantity has arrived
func (i *PurchaseOrderItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}

// PurchaseOrder is an order placed with a supplier. Receipt progress is
// tracked per line; goods receipts drive the SENT → PARTIALLY_RECEIVED
// → COMPLETED progression.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	Number        string              `gorm:"type:varchar(50);not null;uniqueIndex"`
	SupplierID    uuid.UUID           `gorm:"type:uuid;not null;index"`
	SupplierName  string              `gorm:"type:varchar(200);not null"`
	Status        PurchaseOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Items         []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
	TotalQuantity decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   decimal.Decimal     `gorm:"type:decimal(18,2);not null;default:0"`
	ExpectedAt    *time.Time
	SentAt        *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(255)"`
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrder creates a new draft purchase order
func NewPurchaseOrder(number string, supplierID uuid.UUID, supplierName string, createdBy uuid.UUID) (*PurchaseOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if supplierID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SUPPLIER", "Supplier ID cannot be empty")
	}
	if supplierName == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}

	order := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Number:            number,
		SupplierID:        supplierID,
		SupplierName:      supplierName,
		Status:            PurchaseOrderStatusDraft,
		Items:             make([]PurchaseOrderItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
	}

	order.AddDomainEvent(NewPurchaseOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line item. Only valid in draft.
func (o *PurchaseOrder) AddItem(productID uuid.UUID, productSKU, productName string, quantity, unitPrice decimal.Decimal, notes string) (*PurchaseOrderItem, error) {
	if o.Status != PurchaseOrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft purchase order")
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
	item := PurchaseOrderItem{
		ID:               uuid.New(),
		PurchaseOrderID:  o.ID,
		ProductID:        productID,
		ProductSKU:       productSKU,
		ProductName:      productName,
		Quantity:         quantity,
		UnitPrice:        unitPrice,
		TotalAmount:      quantity.Mul(unitPrice).Round(2),
		ReceivedQuantity: decimal.Zero,
		Notes:            notes,
		SortOrder:        len(o.Items),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	o.Items = append(o.Items, item)
	o.recalculateTotals()
	o.UpdatedAt = now

	return &o.Items[len(o.Items)-1], nil
}

// SetExpectedDate sets the expected delivery date
func (o *PurchaseOrder) SetExpectedDate(expectedAt time.Time) error {
	if o.Status != PurchaseOrderStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change a non-draft purchase order")
	}
	o.ExpectedAt = &expectedAt
	o.UpdatedAt = time.Now()
	return nil
}

// Send transmits the order to the supplier
func (o *PurchaseOrder) Send() error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusSent) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot send purchase order in status "+string(o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot send a purchase order without items")
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusSent
	o.SentAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewPurchaseOrderSentEvent(o))

	return nil
}

// Cancel cancels the order. Not allowed once goods have been received.
func (o *PurchaseOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(PurchaseOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot cancel purchase order in status "+string(o.Status))
	}

	now := time.Now()
	o.Status = PurchaseOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// RecordReceipt records received quantities against order lines and
// advances the status as lines fill. Called inside the goods receipt
// completion transaction; quantities key off the order line IDs.
func (o *PurchaseOrder) RecordReceipt(received map[uuid.UUID]decimal.Decimal) error {
	if !o.Status.IsOpen() {
		return shared.NewDomainError("INVALID_STATE",
			"Cannot record a receipt against purchase order in status "+string(o.Status))
	}

	matched := 0
	for i := range o.Items {
		qty, ok := received[o.Items[i].ID]
		if !ok {
			continue
		}
		if !qty.IsPositive() {
			return shared.NewDomainError("INVALID_QUANTITY", "Received quantity must be positive")
		}
		if qty.GreaterThan(o.Items[i].Outstanding()) {
			return shared.NewDomainError("OVER_RECEIPT",
				"Received quantity exceeds outstanding quantity for "+o.Items[i].ProductSKU)
		}
		o.Items[i].ReceivedQuantity = o.Items[i].ReceivedQuantity.Add(qty)
		o.Items[i].UpdatedAt = time.Now()
		matched++
	}
	if matched != len(received) {
		return shared.NewDomainError("INVALID_LINE", "Receipt references a line that is not on this purchase order")
	}

	now := time.Now()
	if o.isFullyReceived() {
		o.Status = PurchaseOrderStatusCompleted
		o.CompletedAt = &now
	} else {
		o.Status = PurchaseOrderStatusPartiallyReceived
	}
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

func (o *PurchaseOrder) isFullyReceived() bool {
	for i := range o.Items {
		if !o.Items[i].IsFullyReceived() {
			return false
		}
	}
	return len(o.Items) > 0
}

func (o *PurchaseOrder) recalculateTotals() {
	totalQty := decimal.Zero
	totalAmount := decimal.Zero
	for _, item := range o.Items {
		totalQty = totalQty.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	o.TotalQuantity = totalQty
	o.TotalAmount = totalAmount.Round(2)
}
