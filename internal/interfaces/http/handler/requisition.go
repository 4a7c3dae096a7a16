package handler

import (
	"github.com/gin-gonic/gin"

	purchasingapp "github.com/stockflow/backend/internal/application/purchasing"
	"github.com/stockflow/backend/internal/interfaces/http/middleware"
)

// RequisitionHandler handles purchase requisition endpoints.
type RequisitionHandler struct {
	BaseHandler
	requisitionService *purchasingapp.RequisitionService
}

// NewRequisitionHandler creates a new RequisitionHandler.
func NewRequisitionHandler(requisitionService *purchasingapp.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{requisitionService: requisitionService}
}

// RequisitionStatusRequest drives the requisition status transition.
type RequisitionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected"`
	Notes  string `json:"notes" binding:"max=255"`
}

// RegisterRoutes registers requisition routes. The status transition
// is gated to approver roles.
func (h *RequisitionHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requisitions := rg.Group("/purchasing/requisitions")
	requisitions.POST("", h.Create)
	requisitions.GET("", h.List)
	requisitions.GET("/:id", h.GetByID)
	requisitions.PATCH("/:id/status", middleware.RequireApprover(), h.ChangeStatus)
}

// Create submits a new requisition in pending state.
func (h *RequisitionHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req purchasingapp.CreateRequisitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	requisition, err := h.requisitionService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, requisition)
}

// List returns a paginated requisition listing, optionally filtered by
// status.
func (h *RequisitionHandler) List(c *gin.Context) {
	filter, status, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.requisitionService.List(c.Request.Context(), status, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single requisition with its lines.
func (h *RequisitionHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid requisition ID format")
		return
	}

	requisition, err := h.requisitionService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requisition)
}

// ChangeStatus approves or rejects a pending requisition.
func (h *RequisitionHandler) ChangeStatus(c *gin.Context) {
	approverID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid requisition ID format")
		return
	}

	var req RequisitionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	var requisition *purchasingapp.RequisitionResponse
	if req.Status == "approved" {
		requisition, err = h.requisitionService.Approve(c.Request.Context(), id, approverID, req.Notes)
	} else {
		requisition, err = h.requisitionService.Reject(c.Request.Context(), id, approverID, req.Notes)
	}
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, requisition)
}
