package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/sales"
)

// LineItemRequest is one requested line on a sales document
type LineItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes" binding:"max=255"`
}

// CreateSalesOrderRequest creates a draft sales order
type CreateSalesOrderRequest struct {
	CustomerID uuid.UUID         `json:"customer_id" binding:"required"`
	Notes      string            `json:"notes"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CancelRequest cancels a document with an optional reason
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// CreateShipmentRequest creates a draft shipment. When SalesOrderID is
// set and no items are given, the order's lines are copied onto the
// shipment.
type CreateShipmentRequest struct {
	CustomerID      uuid.UUID         `json:"customer_id"`
	SalesOrderID    *uuid.UUID        `json:"sales_order_id"`
	ShippingAddress string            `json:"shipping_address"`
	Carrier         string            `json:"carrier" binding:"max=100"`
	TrackingNumber  string            `json:"tracking_number" binding:"max=100"`
	Notes           string            `json:"notes"`
	Items           []LineItemRequest `json:"items" binding:"omitempty,dive"`
}

// SalesOrderItemResponse represents a sales order line in API responses
type SalesOrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
}

// SalesOrderResponse represents a sales order in API responses
type SalesOrderResponse struct {
	ID            uuid.UUID                `json:"id"`
	Number        string                   `json:"number"`
	CustomerID    uuid.UUID                `json:"customer_id"`
	CustomerName  string                   `json:"customer_name"`
	Status        string                   `json:"status"`
	Items         []SalesOrderItemResponse `json:"items"`
	TotalQuantity decimal.Decimal          `json:"total_quantity"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	ConfirmedAt   *time.Time               `json:"confirmed_at,omitempty"`
	ShippedAt     *time.Time               `json:"shipped_at,omitempty"`
	CompletedAt   *time.Time               `json:"completed_at,omitempty"`
	CancelledAt   *time.Time               `json:"cancelled_at,omitempty"`
	CancelReason  string                   `json:"cancel_reason,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	CreatedBy     *uuid.UUID               `json:"created_by,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

// NewSalesOrderResponse maps a domain sales order to its response
func NewSalesOrderResponse(o *sales.SalesOrder) *SalesOrderResponse {
	items := make([]SalesOrderItemResponse, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, SalesOrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductSKU:  item.ProductSKU,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalAmount: item.TotalAmount,
			Notes:       item.Notes,
		})
	}
	return &SalesOrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		CustomerID:    o.CustomerID,
		CustomerName:  o.CustomerName,
		Status:        string(o.Status),
		Items:         items,
		TotalQuantity: o.TotalQuantity,
		TotalAmount:   o.TotalAmount,
		ConfirmedAt:   o.ConfirmedAt,
		ShippedAt:     o.ShippedAt,
		CompletedAt:   o.CompletedAt,
		CancelledAt:   o.CancelledAt,
		CancelReason:  o.CancelReason,
		Notes:         o.Notes,
		CreatedBy:     o.GetCreatedBy(),
		CreatedAt:     o.CreatedAt,
	}
}

// ShipmentItemResponse represents a shipment line in API responses
type ShipmentItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
}

// ShipmentResponse represents a shipment in API responses
type ShipmentResponse struct {
	ID              uuid.UUID              `json:"id"`
	Number          string                 `json:"number"`
	SalesOrderID    *uuid.UUID             `json:"sales_order_id,omitempty"`
	OrderNumber     string                 `json:"order_number,omitempty"`
	CustomerID      uuid.UUID              `json:"customer_id"`
	CustomerName    string                 `json:"customer_name"`
	Status          string                 `json:"status"`
	Items           []ShipmentItemResponse `json:"items"`
	TotalQuantity   decimal.Decimal        `json:"total_quantity"`
	TotalAmount     decimal.Decimal        `json:"total_amount"`
	ShippingAddress string                 `json:"shipping_address,omitempty"`
	TrackingNumber  string                 `json:"tracking_number,omitempty"`
	Carrier         string                 `json:"carrier,omitempty"`
	ShippedAt       *time.Time             `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time             `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time             `json:"cancelled_at,omitempty"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
	CreatedBy       *uuid.UUID             `json:"created_by,omitempty"`
	CreatedAt       time.Time              `json:"created_at"`
}

// NewShipmentResponse maps a domain shipment to its response
func NewShipmentResponse(s *sales.Shipment) *ShipmentResponse {
	items := make([]ShipmentItemResponse, 0, len(s.Items))
	for _, item := range s.Items {
		items = append(items, ShipmentItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductSKU:  item.ProductSKU,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalAmount: item.TotalAmount,
			Notes:       item.Notes,
		})
	}
	return &ShipmentResponse{
		ID:              s.ID,
		Number:          s.Number,
		SalesOrderID:    s.SalesOrderID,
		OrderNumber:     s.OrderNumber,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		Status:          string(s.Status),
		Items:           items,
		TotalQuantity:   s.TotalQuantity,
		TotalAmount:     s.TotalAmount,
		ShippingAddress: s.ShippingAddress,
		TrackingNumber:  s.TrackingNumber,
		Carrier:         s.Carrier,
		ShippedAt:       s.ShippedAt,
		DeliveredAt:     s.DeliveredAt,
		CancelledAt:     s.CancelledAt,
		CancelReason:    s.CancelReason,
		Notes:           s.Notes,
		CreatedBy:       s.GetCreatedBy(),
		CreatedAt:       s.CreatedAt,
	}
}
