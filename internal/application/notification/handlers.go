package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/notification"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

// fanOut persists one notification per active user. Failures are logged
// and swallowed: notification delivery is best effort and must never
// fail the operation that triggered it.
func fanOut(
	ctx context.Context,
	userRepo identity.UserRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
	category notification.Category,
	title, message, link string,
) {
	users, err := userRepo.FindAll(ctx, shared.Filter{Page: 1, PageSize: 1000})
	if err != nil {
		logger.Error("notification fan-out: failed to list users", zap.Error(err))
		return
	}

	batch := make([]*notification.Notification, 0, len(users))
	for i := range users {
		if !users[i].IsActive() {
			continue
		}
		n, err := notification.NewNotification(users[i].ID, category, title, message, link)
		if err != nil {
			logger.Error("notification fan-out: invalid notification", zap.Error(err))
			continue
		}
		batch = append(batch, n)
	}
	if len(batch) == 0 {
		return
	}

	if err := notificationRepo.SaveBatch(ctx, batch); err != nil {
		logger.Error("notification fan-out: failed to persist batch",
			zap.String("title", title),
			zap.Int("recipients", len(batch)),
			zap.Error(err),
		)
	}
}

// DocumentEventHandler turns document lifecycle events into notifications
type DocumentEventHandler struct {
	userRepo         identity.UserRepository
	notificationRepo notification.Repository
	logger           *zap.Logger
}

// NewDocumentEventHandler creates a new DocumentEventHandler
func NewDocumentEventHandler(
	userRepo identity.UserRepository,
	notificationRepo notification.Repository,
	logger *zap.Logger,
) *DocumentEventHandler {
	return &DocumentEventHandler{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// EventTypes returns the document lifecycle events this handler consumes
func (h *DocumentEventHandler) EventTypes() []string {
	return []string{
		inventory.EventTypeAdjustmentCreated,
		purchasing.EventTypeRequisitionCreated,
		purchasing.EventTypeRequisitionDecided,
		purchasing.EventTypePurchaseOrderCreated,
		purchasing.EventTypePurchaseOrderSent,
		purchasing.EventTypeGoodsReceivedCompleted,
		sales.EventTypeSalesOrderCreated,
		sales.EventTypeSalesOrderConfirmed,
		sales.EventTypeShipmentDispatched,
	}
}

// Handle persists one notification per active user for the event
func (h *DocumentEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	title, message, link := h.describe(event)
	if title == "" {
		return nil
	}
	fanOut(ctx, h.userRepo, h.notificationRepo, h.logger, notification.CategoryDocument, title, message, link)
	return nil
}

func (h *DocumentEventHandler) describe(event shared.DomainEvent) (title, message, link string) {
	switch e := event.(type) {
	case *inventory.AdjustmentCreatedEvent:
		return "Stock adjustment posted",
			fmt.Sprintf("Adjustment %s (%d items) has been applied to inventory", e.Number, e.ItemCount),
			"/adjustments/" + e.AdjustmentID.String()
	case *purchasing.RequisitionCreatedEvent:
		return "Requisition submitted",
			fmt.Sprintf("Requisition %s is awaiting approval", e.Number),
			"/purchasing/requisitions/" + e.RequisitionID.String()
	case *purchasing.RequisitionDecidedEvent:
		return "Requisition " + string(e.Status),
			fmt.Sprintf("Requisition %s has been %s", e.Number, e.Status),
			"/purchasing/requisitions/" + e.RequisitionID.String()
	case *purchasing.PurchaseOrderCreatedEvent:
		return "Purchase order created",
			fmt.Sprintf("Purchase order %s has been drafted", e.Number),
			"/purchasing/orders/" + e.PurchaseOrderID.String()
	case *purchasing.PurchaseOrderSentEvent:
		return "Purchase order sent",
			fmt.Sprintf("Purchase order %s has been sent to the supplier", e.Number),
			"/purchasing/orders/" + e.PurchaseOrderID.String()
	case *purchasing.GoodsReceivedCompletedEvent:
		return "Goods received",
			fmt.Sprintf("Receipt %s against order %s has been completed", e.Number, e.OrderNumber),
			"/purchasing/receipts/" + e.GoodsReceivedID.String()
	case *sales.SalesOrderCreatedEvent:
		return "Sales order created",
			fmt.Sprintf("Sales order %s has been drafted", e.Number),
			"/sales/orders/" + e.SalesOrderID.String()
	case *sales.SalesOrderConfirmedEvent:
		return "Sales order confirmed",
			fmt.Sprintf("Sales order %s has been confirmed", e.Number),
			"/sales/orders/" + e.SalesOrderID.String()
	case *sales.ShipmentDispatchedEvent:
		return "Shipment dispatched",
			fmt.Sprintf("Shipment %s (%d items) has left the warehouse", e.Number, e.ItemCount),
			"/sales/shipments/" + e.ShipmentID.String()
	}
	return "", "", ""
}

// LowStockEventHandler turns low-stock signals into notifications.
// A per-product cooldown suppresses repeat alerts while stock keeps
// moving below the threshold.
type LowStockEventHandler struct {
	userRepo         identity.UserRepository
	notificationRepo notification.Repository
	cooldown         time.Duration
	logger           *zap.Logger

	mu        sync.Mutex
	lastAlert map[uuid.UUID]time.Time
}

// NewLowStockEventHandler creates a new LowStockEventHandler. A
// cooldown of zero disables suppression.
func NewLowStockEventHandler(
	userRepo identity.UserRepository,
	notificationRepo notification.Repository,
	cooldown time.Duration,
	logger *zap.Logger,
) *LowStockEventHandler {
	return &LowStockEventHandler{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		cooldown:         cooldown,
		logger:           logger,
		lastAlert:        make(map[uuid.UUID]time.Time),
	}
}

// EventTypes returns the low-stock event type
func (h *LowStockEventHandler) EventTypes() []string {
	return []string{inventory.EventTypeLowStockDetected}
}

// Handle persists one low-stock alert per active user
func (h *LowStockEventHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	e, ok := event.(*inventory.LowStockDetectedEvent)
	if !ok {
		return nil
	}
	if !h.shouldAlert(e.ProductID, time.Now()) {
		h.logger.Debug("low-stock alert suppressed by cooldown",
			zap.String("product_id", e.ProductID.String()),
			zap.String("sku", e.ProductSKU),
		)
		return nil
	}

	title := fmt.Sprintf("Low stock: %s", e.ProductSKU)
	message := fmt.Sprintf("%s is down to %s (minimum %s) after %s %s",
		e.ProductName, e.OnHand.String(), e.MinStock.String(), e.SourceType, e.SourceNumber)
	link := "/inventory/levels/" + e.ProductID.String()

	fanOut(ctx, h.userRepo, h.notificationRepo, h.logger, notification.CategoryLowStock, title, message, link)
	return nil
}

// shouldAlert records the alert time and reports whether the product
// is outside its cooldown window.
func (h *LowStockEventHandler) shouldAlert(productID uuid.UUID, now time.Time) bool {
	if h.cooldown <= 0 {
		return true
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if last, ok := h.lastAlert[productID]; ok && now.Sub(last) < h.cooldown {
		return false
	}
	h.lastAlert[productID] = now
	return true
}

var (
	_ shared.EventHandler = (*DocumentEventHandler)(nil)
	_ shared.EventHandler = (*LowStockEventHandler)(nil)
)
