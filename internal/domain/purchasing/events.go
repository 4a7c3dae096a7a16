package purchasing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeRequisition   = "Requisition"
	AggregateTypePurchaseOrder = "PurchaseOrder"
	AggregateTypeGoodsReceived = "GoodsReceived"
)

// Event type constants
const (
	EventTypeRequisitionCreated     = "RequisitionCreated"
	EventTypeRequisitionDecided     = "RequisitionDecided"
	EventTypePurchaseOrderCreated   = "PurchaseOrderCreated"
	EventTypePurchaseOrderSent      = "PurchaseOrderSent"
	EventTypeGoodsReceivedCompleted = "GoodsReceivedCompleted"
)

// RequisitionCreatedEvent is published when a requisition is created
type RequisitionCreatedEvent struct {
	shared.BaseDomainEvent
	RequisitionID uuid.UUID `json:"requisition_id"`
	Number        string    `json:"number"`
	RequestedBy   uuid.UUID `json:"requested_by"`
}

// NewRequisitionCreatedEvent creates a new RequisitionCreatedEvent
func NewRequisitionCreatedEvent(r *Requisition) *RequisitionCreatedEvent {
	return &RequisitionCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequisitionCreated, AggregateTypeRequisition, r.ID),
		RequisitionID:   r.ID,
		Number:          r.Number,
		RequestedBy:     r.RequestedBy,
	}
}

// RequisitionDecidedEvent is published when a requisition is approved or rejected
type RequisitionDecidedEvent struct {
	shared.BaseDomainEvent
	RequisitionID uuid.UUID         `json:"requisition_id"`
	Number        string            `json:"number"`
	Status        RequisitionStatus `json:"status"`
	DecidedBy     uuid.UUID         `json:"decided_by"`
}

// NewRequisitionDecidedEvent creates a new RequisitionDecidedEvent
func NewRequisitionDecidedEvent(r *Requisition) *RequisitionDecidedEvent {
	event := &RequisitionDecidedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRequisitionDecided, AggregateTypeRequisition, r.ID),
		RequisitionID:   r.ID,
		Number:          r.Number,
		Status:          r.Status,
	}
	if r.DecidedBy != nil {
		event.DecidedBy = *r.DecidedBy
	}
	return event
}

// PurchaseOrderCreatedEvent is published when a purchase order is created
type PurchaseOrderCreatedEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	Number          string          `json:"number"`
	SupplierID      uuid.UUID       `json:"supplier_id"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
}

// NewPurchaseOrderCreatedEvent creates a new PurchaseOrderCreatedEvent
func NewPurchaseOrderCreatedEvent(o *PurchaseOrder) *PurchaseOrderCreatedEvent {
	return &PurchaseOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderCreated, AggregateTypePurchaseOrder, o.ID),
		PurchaseOrderID: o.ID,
		Number:          o.Number,
		SupplierID:      o.SupplierID,
		TotalAmount:     o.TotalAmount,
	}
}

// PurchaseOrderSentEvent is published when a purchase order is sent to the supplier
type PurchaseOrderSentEvent struct {
	shared.BaseDomainEvent
	PurchaseOrderID uuid.UUID `json:"purchase_order_id"`
	Number          string    `json:"number"`
	SupplierID      uuid.UUID `json:"supplier_id"`
}

// NewPurchaseOrderSentEvent creates a new PurchaseOrderSentEvent
func NewPurchaseOrderSentEvent(o *PurchaseOrder) *PurchaseOrderSentEvent {
	return &PurchaseOrderSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypePurchaseOrderSent, AggregateTypePurchaseOrder, o.ID),
		PurchaseOrderID: o.ID,
		Number:          o.Number,
		SupplierID:      o.SupplierID,
	}
}

// GoodsReceivedCompletedEvent is published after a goods received note
// and its ledger mutations have committed
type GoodsReceivedCompletedEvent struct {
	shared.BaseDomainEvent
	GoodsReceivedID uuid.UUID       `json:"goods_received_id"`
	Number          string          `json:"number"`
	PurchaseOrderID uuid.UUID       `json:"purchase_order_id"`
	OrderNumber     string          `json:"order_number"`
	ItemCount       int             `json:"item_count"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
}

// NewGoodsReceivedCompletedEvent creates a new GoodsReceivedCompletedEvent
func NewGoodsReceivedCompletedEvent(g *GoodsReceived) *GoodsReceivedCompletedEvent {
	return &GoodsReceivedCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeGoodsReceivedCompleted, AggregateTypeGoodsReceived, g.ID),
		GoodsReceivedID: g.ID,
		Number:          g.Number,
		PurchaseOrderID: g.PurchaseOrderID,
		OrderNumber:     g.OrderNumber,
		ItemCount:       len(g.Items),
		TotalQuantity:   g.TotalQuantity,
	}
}
