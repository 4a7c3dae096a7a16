package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// ShipmentStatus represents the status of a shipment
type ShipmentStatus string

const (
	ShipmentStatusDraft     ShipmentStatus = "DRAFT"
	ShipmentStatusShipped   ShipmentStatus = "SHIPPED"
	ShipmentStatusDelivered ShipmentStatus = "DELIVERED"
	ShipmentStatusCancelled ShipmentStatus = "CANCELLED"
)

// IsValid checks if the status is a known ShipmentStatus
func (s ShipmentStatus) IsValid() bool {
	switch s {
	case ShipmentStatusDraft, ShipmentStatusShipped, ShipmentStatusDelivered, ShipmentStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s ShipmentStatus) CanTransitionTo(target ShipmentStatus) bool {
	switch s {
	case ShipmentStatusDraft:
		return target == ShipmentStatusShipped || target == ShipmentStatusCancelled
	case ShipmentStatusShipped:
		return target == ShipmentStatusDelivered
	case ShipmentStatusDelivered, ShipmentStatusCancelled:
		return false // terminal states
	}
	return false
}

// ShipmentItem represents a line item in a shipment
type ShipmentItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	ShipmentID  uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU  string          `gorm:"type:varchar(50);not null"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes       string          `gorm:"type:varchar(255)"`
	SortOrder   int             `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (ShipmentItem) TableName() string {
	return "shipment_items"
}

// Shipment is an outbound delivery, optionally linked to a sales order.
// Creation records intent only; the SHIPPED transition is the
// inventory-affecting moment and debits the ledger through the posting
// pipeline.
type Shipment struct {
	shared.BaseAggregateRoot
	Number          string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	SalesOrderID    *uuid.UUID      `gorm:"type:uuid;index"`
	OrderNumber     string          `gorm:"type:varchar(50)"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	CustomerName    string          `gorm:"type:varchar(200);not null"`
	Status          ShipmentStatus  `gorm:"type:varchar(20);not null;default:'DRAFT'"`
	Items           []ShipmentItem  `gorm:"foreignKey:ShipmentID;constraint:OnDelete:CASCADE"`
	TotalQuantity   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ShippingAddress string          `gorm:"type:text"`
	TrackingNumber  string          `gorm:"type:varchar(100)"`
	Carrier         string          `gorm:"type:varchar(100)"`
	ShippedAt       *time.Time
	DeliveredAt     *time.Time
	CancelledAt     *time.Time
	CancelReason    string `gorm:"type:varchar(255)"`
	Notes           string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Shipment) TableName() string {
	return "shipments"
}

// NewShipment creates a new draft shipment
func NewShipment(number string, customerID uuid.UUID, customerName string, createdBy uuid.UUID) (*Shipment, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}

	shipment := &Shipment{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(createdBy),
		Number:            number,
		CustomerID:        customerID,
		CustomerName:      customerName,
		Status:            ShipmentStatusDraft,
		Items:             make([]ShipmentItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
	}

	return shipment, nil
}

// LinkSalesOrder ties the shipment to a sales order. Only valid in draft.
func (s *Shipment) LinkSalesOrder(salesOrderID uuid.UUID, orderNumber string) error {
	if s.Status != ShipmentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot link a dispatched shipment to an order")
	}
	if salesOrderID == uuid.Nil {
		return shared.NewDomainError("INVALID_ORDER", "Sales order ID cannot be empty")
	}

	s.SalesOrderID = &salesOrderID
	s.OrderNumber = orderNumber
	s.UpdatedAt = time.Now()

	return nil
}

// AddItem appends a line item. Only valid in draft.
func (s *Shipment) AddItem(productID uuid.UUID, productSKU, productName string, quantity, unitPrice decimal.Decimal, notes string) (*ShipmentItem, error) {
	if s.Status != ShipmentStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft shipment")
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
	item := ShipmentItem{
		ID:          uuid.New(),
		ShipmentID:  s.ID,
		ProductID:   productID,
		ProductSKU:  productSKU,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: quantity.Mul(unitPrice).Round(2),
		Notes:       notes,
		SortOrder:   len(s.Items),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	s.Items = append(s.Items, item)
	s.recalculateTotals()
	s.UpdatedAt = now

	return &s.Items[len(s.Items)-1], nil
}

// SetShippingDetails sets carrier and destination info. Only valid in draft.
func (s *Shipment) SetShippingDetails(address, carrier, trackingNumber string) error {
	if s.Status != ShipmentStatusDraft {
		return shared.NewDomainError("INVALID_STATE", "Cannot change a dispatched shipment")
	}

	s.ShippingAddress = address
	s.Carrier = carrier
	s.TrackingNumber = trackingNumber
	s.UpdatedAt = time.Now()

	return nil
}

// MarkShipped dispatches the shipment. The caller debits the ledger in
// the same transaction; this method only moves the state machine.
func (s *Shipment) MarkShipped() error {
	if !s.Status.CanTransitionTo(ShipmentStatusShipped) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot dispatch shipment in status "+string(s.Status))
	}
	if len(s.Items) == 0 {
		return shared.NewDomainError("EMPTY_SHIPMENT", "Cannot dispatch a shipment without items")
	}

	now := time.Now()
	s.Status = ShipmentStatusShipped
	s.ShippedAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	s.AddDomainEvent(NewShipmentDispatchedEvent(s))

	return nil
}

// MarkDelivered confirms delivery
func (s *Shipment) MarkDelivered() error {
	if !s.Status.CanTransitionTo(ShipmentStatusDelivered) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot mark shipment delivered in status "+string(s.Status))
	}

	now := time.Now()
	s.Status = ShipmentStatusDelivered
	s.DeliveredAt = &now
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

// Cancel discards a draft shipment without inventory effect
func (s *Shipment) Cancel(reason string) error {
	if !s.Status.CanTransitionTo(ShipmentStatusCancelled) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot cancel shipment in status "+string(s.Status))
	}

	now := time.Now()
	s.Status = ShipmentStatusCancelled
	s.CancelledAt = &now
	s.CancelReason = reason
	s.UpdatedAt = now
	s.IncrementVersion()

	return nil
}

func (s *Shipment) recalculateTotals() {
	totalQty := decimal.Zero
	totalAmount := decimal.Zero
	for _, item := range s.Items {
		totalQty = totalQty.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	s.TotalQuantity = totalQty
	s.TotalAmount = totalAmount.Round(2)
}
