package purchasing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/purchasing"
)

// LineItemRequest is one requested line on a purchasing document
type LineItemRequest struct {
	ProductID uuid.UUID       `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Notes     string          `json:"notes" binding:"max=255"`
}

// CreateRequisitionRequest creates a purchase requisition
type CreateRequisitionRequest struct {
	Notes string            `json:"notes"`
	Items []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// DecideRequisitionRequest approves or rejects a pending requisition
type DecideRequisitionRequest struct {
	Notes string `json:"notes" binding:"max=255"`
}

// CreatePurchaseOrderRequest creates a draft purchase order
type CreatePurchaseOrderRequest struct {
	SupplierID uuid.UUID         `json:"supplier_id" binding:"required"`
	ExpectedAt *time.Time        `json:"expected_at"`
	Notes      string            `json:"notes"`
	Items      []LineItemRequest `json:"items" binding:"required,min=1,dive"`
}

// CancelRequest cancels a document with an optional reason
type CancelRequest struct {
	Reason string `json:"reason" binding:"max=255"`
}

// ReceiptLineRequest is one received line against a purchase order line
type ReceiptLineRequest struct {
	OrderItemID uuid.UUID       `json:"order_item_id" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	Notes       string          `json:"notes" binding:"max=255"`
}

// CreateGoodsReceivedRequest creates a pending goods received note
type CreateGoodsReceivedRequest struct {
	PurchaseOrderID uuid.UUID            `json:"purchase_order_id" binding:"required"`
	ReceivedAt      *time.Time           `json:"received_at"`
	Notes           string               `json:"notes"`
	Items           []ReceiptLineRequest `json:"items" binding:"required,min=1,dive"`
}

// RequisitionItemResponse represents a requisition line in API responses
type RequisitionItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
}

// RequisitionResponse represents a requisition in API responses
type RequisitionResponse struct {
	ID            uuid.UUID                 `json:"id"`
	Number        string                    `json:"number"`
	Status        string                    `json:"status"`
	Items         []RequisitionItemResponse `json:"items"`
	TotalQuantity decimal.Decimal           `json:"total_quantity"`
	TotalAmount   decimal.Decimal           `json:"total_amount"`
	RequestedBy   uuid.UUID                 `json:"requested_by"`
	DecidedBy     *uuid.UUID                `json:"decided_by,omitempty"`
	DecidedAt     *time.Time                `json:"decided_at,omitempty"`
	DecisionNotes string                    `json:"decision_notes,omitempty"`
	Notes         string                    `json:"notes,omitempty"`
	CreatedAt     time.Time                 `json:"created_at"`
}

// NewRequisitionResponse maps a domain requisition to its response
func NewRequisitionResponse(r *purchasing.Requisition) *RequisitionResponse {
	items := make([]RequisitionItemResponse, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, RequisitionItemResponse{
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
	return &RequisitionResponse{
		ID:            r.ID,
		Number:        r.Number,
		Status:        string(r.Status),
		Items:         items,
		TotalQuantity: r.TotalQuantity,
		TotalAmount:   r.TotalAmount,
		RequestedBy:   r.RequestedBy,
		DecidedBy:     r.DecidedBy,
		DecidedAt:     r.DecidedAt,
		DecisionNotes: r.DecisionNotes,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}

// PurchaseOrderItemResponse represents a purchase order line in API responses
type PurchaseOrderItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        uuid.UUID       `json:"product_id"`
	ProductSKU       string          `json:"product_sku"`
	ProductName      string          `json:"product_name"`
	Quantity         decimal.Decimal `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	Outstanding      decimal.Decimal `json:"outstanding"`
	Notes            string          `json:"notes,omitempty"`
}

// PurchaseOrderResponse represents a purchase order in API responses
type PurchaseOrderResponse struct {
	ID            uuid.UUID                   `json:"id"`
	Number        string                      `json:"number"`
	SupplierID    uuid.UUID                   `json:"supplier_id"`
	SupplierName  string                      `json:"supplier_name"`
	Status        string                      `json:"status"`
	Items         []PurchaseOrderItemResponse `json:"items"`
	TotalQuantity decimal.Decimal             `json:"total_quantity"`
	TotalAmount   decimal.Decimal             `json:"total_amount"`
	ExpectedAt    *time.Time                  `json:"expected_at,omitempty"`
	SentAt        *time.Time                  `json:"sent_at,omitempty"`
	CompletedAt   *time.Time                  `json:"completed_at,omitempty"`
	CancelledAt   *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason  string                      `json:"cancel_reason,omitempty"`
	Notes         string                      `json:"notes,omitempty"`
	CreatedBy     *uuid.UUID                  `json:"created_by,omitempty"`
	CreatedAt     time.Time                   `json:"created_at"`
}

// NewPurchaseOrderResponse maps a domain purchase order to its response
func NewPurchaseOrderResponse(o *purchasing.PurchaseOrder) *PurchaseOrderResponse {
	items := make([]PurchaseOrderItemResponse, 0, len(o.Items))
	for i := range o.Items {
		item := &o.Items[i]
		items = append(items, PurchaseOrderItemResponse{
			ID:               item.ID,
			ProductID:        item.ProductID,
			ProductSKU:       item.ProductSKU,
			ProductName:      item.ProductName,
			Quantity:         item.Quantity,
			UnitPrice:        item.UnitPrice,
			TotalAmount:      item.TotalAmount,
			ReceivedQuantity: item.ReceivedQuantity,
			Outstanding:      item.Outstanding(),
			Notes:            item.Notes,
		})
	}
	return &PurchaseOrderResponse{
		ID:            o.ID,
		Number:        o.Number,
		SupplierID:    o.SupplierID,
		SupplierName:  o.SupplierName,
		Status:        string(o.Status),
		Items:         items,
		TotalQuantity: o.TotalQuantity,
		TotalAmount:   o.TotalAmount,
		ExpectedAt:    o.ExpectedAt,
		SentAt:        o.SentAt,
		CompletedAt:   o.CompletedAt,
		CancelledAt:   o.CancelledAt,
		CancelReason:  o.CancelReason,
		Notes:         o.Notes,
		CreatedBy:     o.GetCreatedBy(),
		CreatedAt:     o.CreatedAt,
	}
}

// GoodsReceivedItemResponse represents a receipt line in API responses
type GoodsReceivedItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	OrderItemID uuid.UUID       `json:"order_item_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductSKU  string          `json:"product_sku"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Notes       string          `json:"notes,omitempty"`
}

// GoodsReceivedResponse represents a goods received note in API responses
type GoodsReceivedResponse struct {
	ID              uuid.UUID                   `json:"id"`
	Number          string                      `json:"number"`
	PurchaseOrderID uuid.UUID                   `json:"purchase_order_id"`
	OrderNumber     string                      `json:"order_number"`
	Status          string                      `json:"status"`
	Items           []GoodsReceivedItemResponse `json:"items"`
	TotalQuantity   decimal.Decimal             `json:"total_quantity"`
	TotalAmount     decimal.Decimal             `json:"total_amount"`
	ReceivedAt      time.Time                   `json:"received_at"`
	CompletedAt     *time.Time                  `json:"completed_at,omitempty"`
	CancelledAt     *time.Time                  `json:"cancelled_at,omitempty"`
	CancelReason    string                      `json:"cancel_reason,omitempty"`
	Notes           string                      `json:"notes,omitempty"`
	CreatedBy       *uuid.UUID                  `json:"created_by,omitempty"`
	CreatedAt       time.Time                   `json:"created_at"`
}

// NewGoodsReceivedResponse maps a domain goods received note to its response
func NewGoodsReceivedResponse(g *purchasing.GoodsReceived) *GoodsReceivedResponse {
	items := make([]GoodsReceivedItemResponse, 0, len(g.Items))
	for _, item := range g.Items {
		items = append(items, GoodsReceivedItemResponse{
			ID:          item.ID,
			OrderItemID: item.OrderItemID,
			ProductID:   item.ProductID,
			ProductSKU:  item.ProductSKU,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalAmount: item.TotalAmount,
			Notes:       item.Notes,
		})
	}
	return &GoodsReceivedResponse{
		ID:              g.ID,
		Number:          g.Number,
		PurchaseOrderID: g.PurchaseOrderID,
		OrderNumber:     g.OrderNumber,
		Status:          string(g.Status),
		Items:           items,
		TotalQuantity:   g.TotalQuantity,
		TotalAmount:     g.TotalAmount,
		ReceivedAt:      g.ReceivedAt,
		CompletedAt:     g.CompletedAt,
		CancelledAt:     g.CancelledAt,
		CancelReason:    g.CancelReason,
		Notes:           g.Notes,
		CreatedBy:       g.GetCreatedBy(),
		CreatedAt:       g.CreatedAt,
	}
}
