package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	inventoryapp "github.com/stockflow/backend/internal/application/inventory"
)

// InventoryHandler handles stock level and movement ledger endpoints.
type InventoryHandler struct {
	BaseHandler
	stockLevelService *inventoryapp.StockLevelService
}

// NewInventoryHandler creates a new InventoryHandler.
func NewInventoryHandler(stockLevelService *inventoryapp.StockLevelService) *InventoryHandler {
	return &InventoryHandler{stockLevelService: stockLevelService}
}

// RegisterRoutes registers inventory routes on the API group.
func (h *InventoryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	inventory := rg.Group("/inventory")
	inventory.GET("/levels", h.ListLevels)
	inventory.GET("/levels/:productId", h.GetLevel)
	inventory.GET("/low-stock", h.ListLowStock)
	inventory.GET("/movements", h.ListMovements)
	inventory.GET("/movements/product/:productId", h.ListMovementsByProduct)
}

// ListLevels returns paginated stock levels.
func (h *InventoryHandler) ListLevels(c *gin.Context) {
	filter, _, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.stockLevelService.ListLevels(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// GetLevel returns the stock level for one product.
func (h *InventoryHandler) GetLevel(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	level, err := h.stockLevelService.GetByProduct(c.Request.Context(), productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, level)
}

// ListLowStock returns products at or below their minimum stock.
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	filter, _, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	levels, err := h.stockLevelService.ListLowStock(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, levels)
}

// ListMovements returns the paginated movement ledger, optionally
// filtered by source type.
func (h *InventoryHandler) ListMovements(c *gin.Context) {
	filter, _, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}
	if sourceType := c.Query("source_type"); sourceType != "" {
		filter.Filters = map[string]interface{}{"source_type": sourceType}
	}

	page, err := h.stockLevelService.ListMovements(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}

// ListMovementsByProduct returns the movement ledger for one product.
func (h *InventoryHandler) ListMovementsByProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("productId"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	filter, _, err := bindFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	page, err := h.stockLevelService.ListMovementsByProduct(c.Request.Context(), productID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Paginated(c, page.Items, page.Total, page.Page, page.PageSize)
}
