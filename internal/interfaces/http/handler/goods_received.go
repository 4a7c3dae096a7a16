package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	purchasingapp "github.com/stockflow/backend/internal/application/purchasing"
)

// GoodsReceivedHandler handles goods receipt endpoints.
type GoodsReceivedHandler struct {
	BaseHandler
	goodsReceivedService *purchasingapp.GoodsReceivedService
}

// NewGoodsReceivedHandler creates a new GoodsReceivedHandler.
func NewGoodsReceivedHandler(goodsReceivedService *purchasingapp.GoodsReceivedService) *GoodsReceivedHandler {
	return &GoodsReceivedHandler{goodsReceivedService: goodsReceivedService}
}

// GoodsReceivedStatusRequest drives goods receipt transitions.
// Completing a receipt credits stock through the posting pipeline.
type GoodsReceivedStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=completed cancelled"`
	Reason string `json:"reason" binding:"max=255"`
}

// RegisterRoutes registers goods receipt routes on the API group.
func (h *GoodsReceivedHandler) RegisterRoutes(rg *gin.RouterGroup) {
	receipts := rg.Group("/purchasing/receipts")
	receipts.POST("", h.Create)
	receipts.GET("", h.List)
	receipts.GET("/:id", h.GetByID)
	receipts.PATCH("/:id/status", h.ChangeStatus)
}

// Create records a pending goods receipt against a purchase order.
func (h *GoodsReceivedHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req purchasingapp.CreateGoodsReceivedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	receipt, err := h.goodsReceivedService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// List returns goods receipts, scoped to a purchase order when the
// purchase_order_id query parameter is present.
func (h *GoodsReceivedHandler) List(c *gin.Context) {
	if orderIDParam := c.Query("purchase_order_id"); orderIDParam != "" {
		orderID, err := uuid.Parse(orderIDParam)
		if err != nil {
			h.BadRequest(c, "Invalid purchase order ID format")
			return
		}
		receipts, err := h.goodsReceivedService.ListByPurchaseOrder(c.Request.Context(), orderID)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		h.Success(c, receipts)
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

	page, err := h.goodsReceivedService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single goods receipt with its lines.
func (h *GoodsReceivedHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	receipt, err := h.goodsReceivedService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}

// ChangeStatus completes or cancels a pending goods receipt.
func (h *GoodsReceivedHandler) ChangeStatus(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid receipt ID format")
		return
	}

	var req GoodsReceivedStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var receipt *purchasingapp.GoodsReceivedResponse
	switch req.Status {
	case "completed":
		receipt, err = h.goodsReceivedService.Complete(c.Request.Context(), id, actorID)
	case "cancelled":
		receipt, err = h.goodsReceivedService.Cancel(c.Request.Context(), id, req.Reason)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, receipt)
}
