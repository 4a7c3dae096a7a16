package purchasing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDraftOrder(t *testing.T) *PurchaseOrder {
	t.Helper()
	order, err := NewPurchaseOrder("PO-2026-00001", uuid.New(), "Acme Industrial", uuid.New())
	require.NoError(t, err)
	return order
}

func TestPurchaseOrderStatusTransitions(t *testing.T) {
	assert.True(t, PurchaseOrderStatusDraft.CanTransitionTo(PurchaseOrderStatusSent))
	assert.True(t, PurchaseOrderStatusDraft.CanTransitionTo(PurchaseOrderStatusCancelled))
	assert.True(t, PurchaseOrderStatusSent.CanTransitionTo(PurchaseOrderStatusPartiallyReceived))
	assert.True(t, PurchaseOrderStatusSent.CanTransitionTo(PurchaseOrderStatusCompleted))
	assert.True(t, PurchaseOrderStatusSent.CanTransitionTo(PurchaseOrderStatusCancelled))
	assert.True(t, PurchaseOrderStatusPartiallyReceived.CanTransitionTo(PurchaseOrderStatusCompleted))

	assert.False(t, PurchaseOrderStatusDraft.CanTransitionTo(PurchaseOrderStatusCompleted))
	assert.False(t, PurchaseOrderStatusPartiallyReceived.CanTransitionTo(PurchaseOrderStatusCancelled))
	assert.False(t, PurchaseOrderStatusCompleted.CanTransitionTo(PurchaseOrderStatusCancelled))
	assert.False(t, PurchaseOrderStatusCancelled.CanTransitionTo(PurchaseOrderStatusSent))
}

func TestNewPurchaseOrder(t *testing.T) {
	t.Run("creates draft order", func(t *testing.T) {
		order := newDraftOrder(t)
		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
		assert.Empty(t, order.Items)

		events := order.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePurchaseOrderCreated, events[0].EventType())
	})

	t.Run("rejects nil supplier", func(t *testing.T) {
		_, err := NewPurchaseOrder("PO-2026-00002", uuid.Nil, "Acme", uuid.New())
		require.Error(t, err)
	})
}

func TestPurchaseOrderSend(t *testing.T) {
	t.Run("sends order with items", func(t *testing.T) {
		order := newDraftOrder(t)
		_, err := order.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(10), decimal.NewFromInt(2), "")
		require.NoError(t, err)

		require.NoError(t, order.Send())
		assert.Equal(t, PurchaseOrderStatusSent, order.Status)
		assert.NotNil(t, order.SentAt)
	})

	t.Run("cannot send empty order", func(t *testing.T) {
		order := newDraftOrder(t)
		require.Error(t, order.Send())
		assert.Equal(t, PurchaseOrderStatusDraft, order.Status)
	})

	t.Run("cannot add items after send", func(t *testing.T) {
		order := newDraftOrder(t)
		_, err := order.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(10), decimal.NewFromInt(2), "")
		require.NoError(t, err)
		require.NoError(t, order.Send())

		_, err = order.AddItem(uuid.New(), "SKU-B", "Widget B", decimal.NewFromInt(1), decimal.Zero, "")
		require.Error(t, err)
	})
}

func TestPurchaseOrderRecordReceipt(t *testing.T) {
	setup := func(t *testing.T) (*PurchaseOrder, uuid.UUID, uuid.UUID) {
		order := newDraftOrder(t)
		itemA, err := order.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(10), decimal.NewFromInt(2), "")
		require.NoError(t, err)
		itemB, err := order.AddItem(uuid.New(), "SKU-B", "Widget B", decimal.NewFromInt(4), decimal.NewFromInt(5), "")
		require.NoError(t, err)
		require.NoError(t, order.Send())
		return order, itemA.ID, itemB.ID
	}

	t.Run("partial receipt moves to partially received", func(t *testing.T) {
		order, lineA, _ := setup(t)

		err := order.RecordReceipt(map[uuid.UUID]decimal.Decimal{lineA: decimal.NewFromInt(6)})
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusPartiallyReceived, order.Status)
		assert.True(t, order.Items[0].ReceivedQuantity.Equal(decimal.NewFromInt(6)))
		assert.True(t, order.Items[0].Outstanding().Equal(decimal.NewFromInt(4)))
	})

	t.Run("filling every line completes the order", func(t *testing.T) {
		order, lineA, lineB := setup(t)

		err := order.RecordReceipt(map[uuid.UUID]decimal.Decimal{
			lineA: decimal.NewFromInt(10),
			lineB: decimal.NewFromInt(4),
		})
		require.NoError(t, err)

		assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)
		assert.NotNil(t, order.CompletedAt)
	})

	t.Run("two partial receipts accumulate", func(t *testing.T) {
		order, lineA, lineB := setup(t)

		require.NoError(t, order.RecordReceipt(map[uuid.UUID]decimal.Decimal{lineA: decimal.NewFromInt(10)}))
		assert.Equal(t, PurchaseOrderStatusPartiallyReceived, order.Status)

		require.NoError(t, order.RecordReceipt(map[uuid.UUID]decimal.Decimal{lineB: decimal.NewFromInt(4)}))
		assert.Equal(t, PurchaseOrderStatusCompleted, order.Status)
	})

	t.Run("over-receipt is rejected", func(t *testing.T) {
		order, lineA, _ := setup(t)

		err := order.RecordReceipt(map[uuid.UUID]decimal.Decimal{lineA: decimal.NewFromInt(11)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exceeds outstanding")
	})

	t.Run("unknown line is rejected", func(t *testing.T) {
		order, _, _ := setup(t)

		err := order.RecordReceipt(map[uuid.UUID]decimal.Decimal{uuid.New(): decimal.NewFromInt(1)})
		require.Error(t, err)
	})

	t.Run("receipt against draft order is rejected", func(t *testing.T) {
		order := newDraftOrder(t)
		item, err := order.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(10), decimal.NewFromInt(2), "")
		require.NoError(t, err)

		err = order.RecordReceipt(map[uuid.UUID]decimal.Decimal{item.ID: decimal.NewFromInt(1)})
		require.Error(t, err)
	})
}

func TestPurchaseOrderCancel(t *testing.T) {
	t.Run("cancels draft order", func(t *testing.T) {
		order := newDraftOrder(t)
		require.NoError(t, order.Cancel("supplier discontinued"))
		assert.Equal(t, PurchaseOrderStatusCancelled, order.Status)
		assert.Equal(t, "supplier discontinued", order.CancelReason)
	})

	t.Run("cannot cancel once partially received", func(t *testing.T) {
		order := newDraftOrder(t)
		item, err := order.AddItem(uuid.New(), "SKU-A", "Widget A", decimal.NewFromInt(10), decimal.NewFromInt(2), "")
		require.NoError(t, err)
		require.NoError(t, order.Send())
		require.NoError(t, order.RecordReceipt(map[uuid.UUID]decimal.Decimal{item.ID: decimal.NewFromInt(1)}))

		require.Error(t, order.Cancel("too late"))
	})
}
