package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	salesapp "github.com/stockflow/backend/internal/application/sales"
)

// ShipmentHandler handles shipment endpoints.
type ShipmentHandler struct {
	BaseHandler
	shipmentService *salesapp.ShipmentService
}

// NewShipmentHandler creates a new ShipmentHandler.
func NewShipmentHandler(shipmentService *salesapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{shipmentService: shipmentService}
}

// ShipmentStatusRequest drives shipment transitions. Marking a
// shipment shipped debits stock through the posting pipeline.
type ShipmentStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=shipped delivered cancelled"`
	Reason string `json:"reason" binding:"max=255"`
}

// RegisterRoutes registers shipment routes on the API group.
func (h *ShipmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	shipments := rg.Group("/sales/shipments")
	shipments.POST("", h.Create)
	shipments.GET("", h.List)
	shipments.GET("/:id", h.GetByID)
	shipments.PATCH("/:id/status", h.ChangeStatus)
}

// Create drafts a shipment against a confirmed sales order.
func (h *ShipmentHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req salesapp.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, shipment)
}

// List returns shipments, scoped to a sales order when the
// sales_order_id query parameter is present.
func (h *ShipmentHandler) List(c *gin.Context) {
	if orderIDParam := c.Query("sales_order_id"); orderIDParam != "" {
		orderID, err := uuid.Parse(orderIDParam)
		if err != nil {
			h.BadRequest(c, "Invalid sales order ID format")
			return
		}
		shipments, err := h.shipmentService.ListBySalesOrder(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, shipments)
		return
	}

	filter, status, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}
	if status != "" {
		filter.Filters = map[string]interface{}{"status": status}
	}

	page, err := h.shipmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single shipment with its lines.
func (h *ShipmentHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}

// ChangeStatus dispatches, delivers, or cancels a shipment.
func (h *ShipmentHandler) ChangeStatus(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID format")
		return
	}

	var req ShipmentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var shipment *salesapp.ShipmentResponse
	switch req.Status {
	case "shipped":
		shipment, err = h.shipmentService.MarkShipped(c.Request.Context(), id, actorID)
	case "delivered":
		shipment, err = h.shipmentService.MarkDelivered(c.Request.Context(), id)
	case "cancelled":
		shipment, err = h.shipmentService.Cancel(c.Request.Context(), id, req.Reason)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, shipment)
}
