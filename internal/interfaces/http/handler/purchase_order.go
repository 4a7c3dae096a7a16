package handler

import (
	"github.com/gin-gonic/gin"

	purchasingapp "github.com/stockflow/backend/internal/application/purchasing"
)

// PurchaseOrderHandler handles purchase order endpoints.
type PurchaseOrderHandler struct {
	BaseHandler
	purchaseOrderService *purchasingapp.PurchaseOrderService
}

// NewPurchaseOrderHandler creates a new PurchaseOrderHandler.
func NewPurchaseOrderHandler(purchaseOrderService *purchasingapp.PurchaseOrderService) *PurchaseOrderHandler {
	return &PurchaseOrderHandler{purchaseOrderService: purchaseOrderService}
}

// PurchaseOrderStatusRequest drives purchase order transitions
// initiated over the API. Receipt-driven transitions happen through
// goods receipts, not here.
type PurchaseOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=sent cancelled"`
	Reason string `json:"reason" binding:"max=255"`
}

// RegisterRoutes registers purchase order routes on the API group.
func (h *PurchaseOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/purchasing/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)
	orders.GET("/number/:number", h.GetByNumber)
	orders.PATCH("/:id/status", h.ChangeStatus)
}

// Create drafts a new purchase order.
func (h *PurchaseOrderHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req purchasingapp.CreatePurchaseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.purchaseOrderService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns a paginated purchase order listing, optionally filtered
// by status.
func (h *PurchaseOrderHandler) List(c *gin.Context) {
	filter, status, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.purchaseOrderService.List(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single purchase order with its lines.
func (h *PurchaseOrderHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	order, err := h.purchaseOrderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber returns a purchase order by its document number.
func (h *PurchaseOrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	order, err := h.purchaseOrderService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ChangeStatus sends or cancels a purchase order.
func (h *PurchaseOrderHandler) ChangeStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid purchase order ID format")
		return
	}

	var req PurchaseOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var order *purchasingapp.PurchaseOrderResponse
	switch req.Status {
	case "sent":
		order, err = h.purchaseOrderService.Send(c.Request.Context(), id)
	case "cancelled":
		order, err = h.purchaseOrderService.Cancel(c.Request.Context(), id, req.Reason)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
