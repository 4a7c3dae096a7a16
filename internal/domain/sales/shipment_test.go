package sales

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftShipment(t *testing.T) *Shipment {
	t.Helper()
	shipment, err := NewShipment("SHP-2026-00001", uuid.New(), "Globex Retail", uuid.New())
	require.NoError(t, err)
	return shipment
}

func TestShipmentStatusTransitions(t *testing.T) {
	assert.True(t, ShipmentStatusDraft.CanTransitionTo(ShipmentStatusShipped))
	assert.True(t, ShipmentStatusDraft.CanTransitionTo(ShipmentStatusCancelled))
	assert.True(t, ShipmentStatusShipped.CanTransitionTo(ShipmentStatusDelivered))

	assert.False(t, ShipmentStatusDraft.CanTransitionTo(ShipmentStatusDelivered))
	assert.False(t, ShipmentStatusShipped.CanTransitionTo(ShipmentStatusCancelled))
	assert.False(t, ShipmentStatusDelivered.CanTransitionTo(ShipmentStatusShipped))
	assert.False(t, ShipmentStatusCancelled.CanTransitionTo(ShipmentStatusShipped))
}

func TestNewShipment(t *testing.T) {
	t.Run("creates draft shipment without ledger effect markers", func(t *testing.T) {
		shipment := newDraftShipment(t)
		assert.Equal(t, ShipmentStatusDraft, shipment.Status)
		assert.Nil(t, shipment.ShippedAt)
		assert.Empty(t, shipment.GetDomainEvents())
	})

	t.Run("rejects empty number", func(t *testing.T) {
		_, err := NewShipment("", uuid.New(), "Globex", uuid.New())
		require.Error(t, err)
	})
}

func TestShipmentLinkSalesOrder(t *testing.T) {
	shipment := newDraftShipment(t)
	orderID := uuid.New()

	require.NoError(t, shipment.LinkSalesOrder(orderID, "SO-2026-00001"))
	require.NotNil(t, shipment.SalesOrderID)
	assert.Equal(t, orderID, *shipment.SalesOrderID)
	assert.Equal(t, "SO-2026-00001", shipment.OrderNumber)

	t.Run("cannot link after dispatch", func(t *testing.T) {
		_, err := shipment.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(1), decimal.Zero, "")
		require.NoError(t, err)
		require.NoError(t, shipment.MarkShipped())

		require.Error(t, shipment.LinkSalesOrder(uuid.New(), "SO-2026-00002"))
	})
}

func TestShipmentMarkShipped(t *testing.T) {
	t.Run("dispatch publishes event and stamps time", func(t *testing.T) {
		shipment := newDraftShipment(t)
		_, err := shipment.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(5), decimal.NewFromInt(2), "")
		require.NoError(t, err)

		require.NoError(t, shipment.MarkShipped())
		assert.Equal(t, ShipmentStatusShipped, shipment.Status)
		assert.NotNil(t, shipment.ShippedAt)

		events := shipment.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeShipmentDispatched, events[0].EventType())
	})

	t.Run("cannot dispatch without items", func(t *testing.T) {
		shipment := newDraftShipment(t)
		require.Error(t, shipment.MarkShipped())
	})

	t.Run("cannot dispatch twice", func(t *testing.T) {
		shipment := newDraftShipment(t)
		_, err := shipment.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(1), decimal.Zero, "")
		require.NoError(t, err)
		require.NoError(t, shipment.MarkShipped())
		require.Error(t, shipment.MarkShipped())
	})
}

func TestShipmentDeliveryAndCancel(t *testing.T) {
	t.Run("delivered after shipped", func(t *testing.T) {
		shipment := newDraftShipment(t)
		_, err := shipment.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(1), decimal.Zero, "")
		require.NoError(t, err)
		require.NoError(t, shipment.MarkShipped())

		require.NoError(t, shipment.MarkDelivered())
		assert.Equal(t, ShipmentStatusDelivered, shipment.Status)
		assert.NotNil(t, shipment.DeliveredAt)
	})

	t.Run("cannot deliver a draft", func(t *testing.T) {
		shipment := newDraftShipment(t)
		require.Error(t, shipment.MarkDelivered())
	})

	t.Run("cancel only from draft", func(t *testing.T) {
		shipment := newDraftShipment(t)
		require.NoError(t, shipment.Cancel("duplicate entry"))
		assert.Equal(t, ShipmentStatusCancelled, shipment.Status)

		dispatched := newDraftShipment(t)
		_, err := dispatched.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(1), decimal.Zero, "")
		require.NoError(t, err)
		require.NoError(t, dispatched.MarkShipped())
		require.Error(t, dispatched.Cancel("too late"))
	})

	t.Run("items frozen after dispatch", func(t *testing.T) {
		shipment := newDraftShipment(t)
		_, err := shipment.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(1), decimal.Zero, "")
		require.NoError(t, err)
		require.NoError(t, shipment.MarkShipped())

		_, err = shipment.AddItem(uuid.New(), "SKU-B", "Widget B", decimal.NewFromInt(1), decimal.Zero, "")
		require.Error(t, err)
	})
}
