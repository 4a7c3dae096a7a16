package persistence

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/stockflow/backend/internal/domain/catalog"
	"github.com/stockflow/backend/internal/domain/identity"
	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/notification"
	"github.com/stockflow/backend/internal/domain/partner"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/sales"
)

// newTestDB opens an in-memory SQLite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&partner.Supplier{},
		&partner.Customer{},
		&identity.User{},
		&inventory.StockLevel{},
		&inventory.StockMovement{},
		&inventory.Adjustment{},
		&inventory.AdjustmentItem{},
		&purchasing.Requisition{},
		&purchasing.RequisitionItem{},
		&purchasing.PurchaseOrder{},
		&purchasing.PurchaseOrderItem{},
		&purchasing.GoodsReceived{},
		&purchasing.GoodsReceivedItem{},
		&sales.SalesOrder{},
		&sales.SalesOrderItem{},
		&sales.Shipment{},
		&sales.ShipmentItem{},
		&notification.Notification{},
		&DocumentSequence{},
	))

	return db
}
