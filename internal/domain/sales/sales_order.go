package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// SalesOrderStatus represents the status of a sales order
type SalesOrderStatus string

const (
	SalesOrderStatusDraft     SalesOrderStatus = "DRAFT"
	SalesOrderStatusConfirmed SalesOrderStatus = "CONFIRMED"
	SalesOrderStatusShipped   SalesOrderStatus = "SHIPPED"
	SalesOrderStatusCompleted SalesOrderStatus = "COMPLETED"
	SalesOrderStatusCancelled SalesOrderStatus = "CANCELLED"
)

// IsValid checks if the status is a known SalesOrderStatus
func (s SalesOrderStatus) IsValid() bool {
	switch s {
	case SalesOrderStatusDraft, SalesOrderStatusConfirmed, SalesOrderStatusShipped,
		SalesOrderStatusCompleted, SalesOrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s SalesOrderStatus) CanTransitionTo(target SalesOrderStatus) bool {
	switch s {
	case SalesOrderStatusDraft:
		return target == SalesOrderStatusConfirmed || target == SalesOrderStatusCancelled
	case SalesOrderStatusConfirmed:
		return target == SalesOrderStatusShipped || target == SalesOrderStatusCancelled
	case SalesOrderStatusShipped:
		return target == SalesOrderStatusCompleted
	case SalesOrderStatusCompleted, SalesOrderStatusCancelled:
		return false // terminal states
	}
	return false
}

// SalesOrderItem represents a line item in a sales order
type SalesOrderItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	SalesOrderID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU   string          `gorm:"type:varchar(50);not null"`
	ProductName  string          `gorm:"type:varchar(200);not null"`
	Quantity     decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes        string          `gorm:"type:varchar(255)"`
	SortOrder    int             `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (SalesOrderItem) TableName() string {
	return "sales_order_items"
}

// SalesOrder is an order placed by a customer. It never touches
// inventory itself; shipments debit the ledger on dispatch.
type SalesOrder struct {
	shared.BaseAggregateRoot
	Number        string           `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	CustomerName  string           `gorm:"type:varchar(200);not null"`
	Status        SalesOrderStatus `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Items         []SalesOrderItem `gorm:"foreignKey:SalesOrderID;constraint:OnDelete:CASCADE"`
	TotalQuantity decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	ConfirmedAt   *time.Time
	ShippedAt     *time.Time
	CompletedAt   *time.Time
	CancelledAt   *time.Time
	CancelReason  string `gorm:"type:varchar(255)"`
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (SalesOrder) TableName() string {
	return "sales_orders"
}

// NewSalesOrder creates a new draft sales order
func NewSalesOrder(number string, customerID uuid.UUID, customerName string, createdBy uuid.UUID) (*SalesOrder, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	order := &SalesOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            SalesOrderStatusDraft,
		Items:             make([]SalesOrderItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
	}

	order.AddDomainEvent(NewSalesOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line item. Only valid in draft.
func (o *SalesOrder) AddItem(productID uuid.UUID, productSKU, productName string, quantity, unitPrice decimal.Decimal, notes string) (*SalesOrderItem, error) {
	if o.Status != SalesOrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft sales order")
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
	item := SalesOrderItem{
		ID:           uuid.New(),
		SalesOrderID: o.ID,
		ProductID:    productID,
		ProductSKU:   productSKU,
		ProductName:  productName,
		Quantity:     quantity,
		UnitPrice:    unitPrice,
		TotalAmount:  quantity.Mul(unitPrice).Round(2),
		Notes:        notes,
		SortOrder:    len(o.Items),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	o.Items = append(o.Items, item)
	o.recalculateTotals()
	o.UpdatedAt = now

	return &o.Items[len(o.Items)-1], nil
}

// Confirm locks the order in
func (o *SalesOrder) Confirm() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusConfirmed) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot confirm sales order in status "+string(o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("EMPTY_ORDER", "Cannot confirm a sales order without items")
	}

	now := time.Now()
	o.Status = SalesOrderStatusConfirmed
	o.ConfirmedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	o.AddDomainEvent(NewSalesOrderConfirmedEvent(o))

	return nil
}

// MarkShipped records that a shipment for this order was dispatched
func (o *SalesOrder) MarkShipped() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusShipped) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot mark sales order shipped in status "+string(o.Status))
	}

	now := time.Now()
	o.Status = SalesOrderStatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Complete closes a shipped order
func (o *SalesOrder) Complete() error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCompleted) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot complete sales order in status "+string(o.Status))
	}

	now := time.Now()
	o.Status = SalesOrderStatusCompleted
	o.CompletedAt = &now
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

// Cancel cancels a draft or confirmed order
func (o *SalesOrder) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(SalesOrderStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot cancel sales order in status "+string(o.Status))
	}

	now := time.Now()
	o.Status = SalesOrderStatusCancelled
	o.CancelledAt = &now
	o.CancelReason = reason
	o.UpdatedAt = now
	o.IncrementVersion()

	return nil
}

func (o *SalesOrder) recalculateTotals() {
	totalQty := decimal.Zero
	totalAmount := decimal.Zero
	for _, item := range o.Items {
		totalQty = totalQty.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	o.TotalQuantity = totalQty
	o.TotalAmount = totalAmount.Round(2)
}
