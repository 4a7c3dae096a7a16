package sales

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeSalesOrder = "SalesOrder"
	AggregateTypeShipment   = "Shipment"
)

// Event type constants
const (
	EventTypeSalesOrderCreated   = "SalesOrderCreated"
	EventTypeSalesOrderConfirmed = "SalesOrderConfirmed"
	EventTypeShipmentDispatched  = "ShipmentDispatched"
)

// SalesOrderCreatedEvent is published when a sales order is created
type SalesOrderCreatedEvent struct {
	shared.BaseDomainEvent
	SalesOrderID uuid.UUID       `json:"sales_order_id"`
	Number       string          `json:"number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewSalesOrderCreatedEvent creates a new SalesOrderCreatedEvent
func NewSalesOrderCreatedEvent(o *SalesOrder) *SalesOrderCreatedEvent {
	return &SalesOrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderCreated, AggregateTypeSalesOrder, o.ID),
		SalesOrderID:    o.ID,
		Number:          o.Number,
		CustomerID:      o.CustomerID,
		TotalAmount:     o.TotalAmount,
	}
}

// SalesOrderConfirmedEvent is published when a sales order is confirmed
type SalesOrderConfirmedEvent struct {
	shared.BaseDomainEvent
	SalesOrderID uuid.UUID       `json:"sales_order_id"`
	Number       string          `json:"number"`
	CustomerID   uuid.UUID       `json:"customer_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
}

// NewSalesOrderConfirmedEvent creates a new SalesOrderConfirmedEvent
func NewSalesOrderConfirmedEvent(o *SalesOrder) *SalesOrderConfirmedEvent {
	return &SalesOrderConfirmedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalesOrderConfirmed, AggregateTypeSalesOrder, o.ID),
		SalesOrderID:    o.ID,
		Number:          o.Number,
		CustomerID:      o.CustomerID,
		TotalAmount:     o.TotalAmount,
	}
}

// ShipmentDispatchedEvent is published after a shipment dispatch and
// its ledger debits have committed
type ShipmentDispatchedEvent struct {
	shared.BaseDomainEvent
	ShipmentID    uuid.UUID       `json:"shipment_id"`
	Number        string          `json:"number"`
	SalesOrderID  *uuid.UUID      `json:"sales_order_id,omitempty"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	ItemCount     int             `json:"item_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// NewShipmentDispatchedEvent creates a new ShipmentDispatchedEvent
func NewShipmentDispatchedEvent(s *Shipment) *ShipmentDispatchedEvent {
	return &ShipmentDispatchedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeShipmentDispatched, AggregateTypeShipment, s.ID),
		ShipmentID:      s.ID,
		Number:          s.Number,
		SalesOrderID:    s.SalesOrderID,
		CustomerID:      s.CustomerID,
		ItemCount:       len(s.Items),
		TotalQuantity:   s.TotalQuantity,
	}
}
