package handler

import (
	"github.com/gin-gonic/gin"

	salesapp "github.com/stockflow/backend/internal/application/sales"
)

// SalesOrderHandler handles sales order endpoints.
type SalesOrderHandler struct {
	BaseHandler
	salesOrderService *salesapp.SalesOrderService
}

// NewSalesOrderHandler creates a new SalesOrderHandler.
func NewSalesOrderHandler(salesOrderService *salesapp.SalesOrderService) *SalesOrderHandler {
	return &SalesOrderHandler{salesOrderService: salesOrderService}
}

// SalesOrderStatusRequest drives sales order transitions. Shipping
// happens through shipments, not here.
type SalesOrderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=confirmed completed cancelled"`
	Reason string `json:"reason" binding:"max=255"`
}

// RegisterRoutes registers sales order routes on the API group.
func (h *SalesOrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/sales/orders")
	orders.POST("", h.Create)
	orders.GET("", h.List)
	orders.GET("/:id", h.GetByID)
	orders.GET("/number/:number", h.GetByNumber)
	orders.PATCH("/:id/status", h.ChangeStatus)
}

// Create drafts a new sales order.
func (h *SalesOrderHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req salesapp.CreateSalesOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	order, err := h.salesOrderService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns a paginated sales order listing, optionally filtered by
// status.
func (h *SalesOrderHandler) List(c *gin.Context) {
	filter, status, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.salesOrderService.List(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single sales order with its lines.
func (h *SalesOrderHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sales order ID format")
		return
	}

	order, err := h.salesOrderService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// GetByNumber returns a sales order by its document number.
func (h *SalesOrderHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	order, err := h.salesOrderService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// ChangeStatus confirms, completes, or cancels a sales order.
func (h *SalesOrderHandler) ChangeStatus(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid sales order ID format")
		return
	}

	var req SalesOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var order *salesapp.SalesOrderResponse
	switch req.Status {
	case "confirmed":
		order, err = h.salesOrderService.Confirm(c.Request.Context(), id)
	case "completed":
		order, err = h.salesOrderService.Complete(c.Request.Context(), id)
	case "cancelled":
		order, err = h.salesOrderService.Cancel(c.Request.Context(), id, req.Reason)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
