package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// RequisitionStatus represents the status of a purchase requisition
type RequisitionStatus string

const (
	RequisitionStatusPending  RequisitionStatus = "PENDING"
	RequisitionStatusApproved RequisitionStatus = "APPROVED"
	RequisitionStatusRejected RequisitionStatus = "REJECTED"
)

// IsValid checks if the status is a known RequisitionStatus
func (s RequisitionStatus) IsValid() bool {
	switch s {
	case RequisitionStatusPending, RequisitionStatusApproved, RequisitionStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo checks if the status can transition to the target status
func (s RequisitionStatus) CanTransitionTo(target RequisitionStatus) bool {
	switch s {
	case RequisitionStatusPending:
		return target == RequisitionStatusApproved || target == RequisitionStatusRejected
	case RequisitionStatusApproved, RequisitionStatusRejected:
		return false // terminal states
	}
	return false
}

// RequisitionItem represents a line item in a purchase requisition
type RequisitionItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	RequisitionID uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductSKU    string          `gorm:"type:varchar(50);not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(18,4);not null"` // estimated
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Notes         string          `gorm:"type:varchar(255)"`
	SortOrder     int             `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName returns the table name for GORM
func (RequisitionItem) TableName() string {
	return "requisition_items"
}

// Requisition is a request to purchase goods. It never touches
// inventory; an approved requisition feeds purchase order creation.
type Requisition struct {
	shared.BaseAggregateRoot
	Number        string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	Status        RequisitionStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	Items         []RequisitionItem `gorm:"foreignKey:RequisitionID;constraint:OnDelete:CASCADE"`
	TotalQuantity decimal.Decimal   `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount   decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	RequestedBy   uuid.UUID         `gorm:"type:uuid;not null"`
	DecidedBy     *uuid.UUID        `gorm:"type:uuid"`
	DecidedAt     *time.Time
	DecisionNotes string `gorm:"type:varchar(255)"`
	Notes         string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Requisition) TableName() string {
	return "requisitions"
}

// NewRequisition creates a new pending requisition
func NewRequisition(number string, requestedBy uuid.UUID, notes string) (*Requisition, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_NUMBER", "Document number cannot be empty")
	}
	if requestedBy == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_REQUESTER", "Requester cannot be empty")
	}

	requisition := &Requisition{
		BaseAggregateRoot: shared.NewBaseAggregateRootWithCreator(requestedBy),
		Number:            number,
		Status:            RequisitionStatusPending,
		Items:             make([]RequisitionItem, 0),
		TotalQuantity:     decimal.Zero,
		TotalAmount:       decimal.Zero,
		RequestedBy:       requestedBy,
		Notes:             notes,
	}

	requisition.AddDomainEvent(NewRequisitionCreatedEvent(requisition))

	return requisition, nil
}

// AddItem appends a line item. Only valid while pending.
func (r *Requisition) AddItem(productID uuid.UUID, productSKU, productName string, quantity, unitPrice decimal.Decimal, notes string) (*RequisitionItem, error) {
	if r.Status != RequisitionStatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a decided requisition")
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
	item := RequisitionItem{
		ID:            uuid.New(),
		RequisitionID: r.ID,
		ProductID:     productID,
		ProductSKU:    productSKU,
		ProductName:   productName,
		Quantity:      quantity,
		UnitPrice:     unitPrice,
		TotalAmount:   quantity.Mul(unitPrice).Round(2),
		Notes:         notes,
		SortOrder:     len(r.Items),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	r.Items = append(r.Items, item)
	r.recalculateTotals()
	r.UpdatedAt = now

	return &r.Items[len(r.Items)-1], nil
}

// Approve moves the requisition to its terminal approved state.
// Approver authorization is checked by the application service.
func (r *Requisition) Approve(approverID uuid.UUID, notes string) error {
	return r.decide(RequisitionStatusApproved, approverID, notes)
}

// Reject moves the requisition to its terminal rejected state
func (r *Requisition) Reject(approverID uuid.UUID, notes string) error {
	return r.decide(RequisitionStatusRejected, approverID, notes)
}

func (r *Requisition) decide(target RequisitionStatus, approverID uuid.UUID, notes string) error {
	if !r.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE_TRANSITION",
			"Cannot transition requisition from "+string(r.Status)+" to "+string(target))
	}
	if approverID == uuid.Nil {
		return shared.NewDomainError("INVALID_APPROVER", "Approver cannot be empty")
	}

	now := time.Now()
	r.Status = target
	r.DecidedBy = &approverID
	r.DecidedAt = &now
	r.DecisionNotes = notes
	r.UpdatedAt = now
	r.IncrementVersion()

	r.AddDomainEvent(NewRequisitionDecidedEvent(r))

	return nil
}

func (r *Requisition) recalculateTotals() {
	totalQty := decimal.Zero
	totalAmount := decimal.Zero
	for _, item := range r.Items {
		totalQty = totalQty.Add(item.Quantity)
		totalAmount = totalAmount.Add(item.TotalAmount)
	}
	r.TotalQuantity = totalQty
	r.TotalAmount = totalAmount.Round(2)
}
