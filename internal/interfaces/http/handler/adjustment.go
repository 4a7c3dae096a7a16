package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
)

// AdjustmentHandler handles stock adjustment endpoints.
type AdjustmentHandler struct {
	BaseHandler
	adjustmentService *inventoryapp.AdjustmentService
}

// NewAdjustmentHandler creates a new AdjustmentHandler.
func NewAdjustmentHandler(adjustmentService *inventoryapp.AdjustmentService) *AdjustmentHandler {
	return &AdjustmentHandler{adjustmentService: adjustmentService}
}

// RegisterRoutes registers adjustment routes on the API group.
func (h *AdjustmentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	adjustments := rg.Group("/adjustments")
	adjustments.POST("", h.Create)
	adjustments.GET("", h.List)
	adjustments.GET("/:id", h.GetByID)
	adjustments.GET("/number/:number", h.GetByNumber)
}

// Create posts a stock adjustment. The document, its ledger rows, and
// the stock level changes commit atomically.
func (h *AdjustmentHandler) Create(c *gin.Context) {
	actorID, err := getActorID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req inventoryapp.CreateAdjustmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	adjustment, err := h.adjustmentService.Create(c.Request.Context(), &req, actorID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, adjustment)
}

// List returns a paginated adjustment listing.
func (h *AdjustmentHandler) List(c *gin.Context) {
	filter, _, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}
	if adjType := c.Query("type"); adjType != "" {
		filter.Filters = map[string]interface{}{"type": adjType}
	}

	page, err := h.adjustmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetByID returns a single adjustment with its lines.
func (h *AdjustmentHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid adjustment ID format")
		return
	}

	adjustment, err := h.adjustmentService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, adjustment)
}

// GetByNumber returns an adjustment by its document number.
func (h *AdjustmentHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Document number is required")
		return
	}

	adjustment, err := h.adjustmentService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, adjustment)
}
