package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Test Product", "pcs")
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Test Product", product.Name)
		assert.Equal(t, "pcs", product.Unit)
		assert.True(t, product.PurchasePrice.IsZero())
		assert.True(t, product.SellingPrice.IsZero())
		assert.True(t, product.MinStock.IsZero())
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts SKU to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Test Product", "pcs")
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.SKU)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("SKU-002", "Test Product", "pcs")
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.SKU, event.SKU)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Test Product", "pcs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU cannot be empty")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-003", "", "pcs")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("fails with empty unit", func(t *testing.T) {
		_, err := NewProduct("SKU-003", "Test Product", "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Unit cannot be empty")
	})
}

func TestProductUpdate(t *testing.T) {
	product, err := NewProduct("SKU-010", "Original", "pcs")
	require.NoError(t, err)
	product.ClearDomainEvents()

	t.Run("updates name and description", func(t *testing.T) {
		err := product.Update("Renamed", "a better description")
		require.NoError(t, err)
		assert.Equal(t, "Renamed", product.Name)
		assert.Equal(t, "a better description", product.Description)
		assert.Equal(t, 2, product.GetVersion())

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductUpdated, events[0].EventType())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		err := product.Update("", "desc")
		require.Error(t, err)
	})
}

func TestProductSetPrices(t *testing.T) {
	product, err := NewProduct("SKU-020", "Priced", "pcs")
	require.NoError(t, err)

	t.Run("sets valid prices", func(t *testing.T) {
		err := product.SetPrices(decimal.NewFromFloat(2.50), decimal.NewFromFloat(5.00))
		require.NoError(t, err)
		assert.True(t, product.PurchasePrice.Equal(decimal.NewFromFloat(2.50)))
		assert.True(t, product.SellingPrice.Equal(decimal.NewFromFloat(5.00)))
	})

	t.Run("rejects negative purchase price", func(t *testing.T) {
		err := product.SetPrices(decimal.NewFromInt(-1), decimal.NewFromInt(5))
		require.Error(t, err)
	})

	t.Run("rejects negative selling price", func(t *testing.T) {
		err := product.SetPrices(decimal.NewFromInt(1), decimal.NewFromInt(-5))
		require.Error(t, err)
	})
}

func TestProductSetStockThresholds(t *testing.T) {
	product, err := NewProduct("SKU-030", "Threshold", "pcs")
	require.NoError(t, err)

	t.Run("sets valid thresholds", func(t *testing.T) {
		err := product.SetStockThresholds(decimal.NewFromInt(10), decimal.NewFromInt(100), decimal.NewFromInt(20))
		require.NoError(t, err)
		assert.True(t, product.MinStock.Equal(decimal.NewFromInt(10)))
		assert.True(t, product.MaxStock.Equal(decimal.NewFromInt(100)))
		assert.True(t, product.ReorderPoint.Equal(decimal.NewFromInt(20)))
	})

	t.Run("zero max stock means no ceiling", func(t *testing.T) {
		err := product.SetStockThresholds(decimal.NewFromInt(10), decimal.Zero, decimal.Zero)
		require.NoError(t, err)
	})

	t.Run("rejects negative threshold", func(t *testing.T) {
		err := product.SetStockThresholds(decimal.NewFromInt(-1), decimal.Zero, decimal.Zero)
		require.Error(t, err)
	})

	t.Run("rejects max below min", func(t *testing.T) {
		err := product.SetStockThresholds(decimal.NewFromInt(50), decimal.NewFromInt(10), decimal.Zero)
		require.Error(t, err)
	})
}

func TestProductStatusTransitions(t *testing.T) {
	t.Run("deactivate then reactivate", func(t *testing.T) {
		product, err := NewProduct("SKU-040", "Toggled", "pcs")
		require.NoError(t, err)
		product.ClearDomainEvents()

		product.Deactivate()
		assert.Equal(t, ProductStatusInactive, product.Status)
		assert.False(t, product.IsActive())

		product.Activate()
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.True(t, product.IsActive())

		events := product.GetDomainEvents()
		require.Len(t, events, 2)
		assert.Equal(t, EventTypeProductStatusChanged, events[0].EventType())
	})

	t.Run("activate is idempotent", func(t *testing.T) {
		product, err := NewProduct("SKU-041", "Idempotent", "pcs")
		require.NoError(t, err)
		product.ClearDomainEvents()

		product.Activate()
		assert.Empty(t, product.GetDomainEvents())
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("discontinue is terminal", func(t *testing.T) {
		product, err := NewProduct("SKU-042", "Retired", "pcs")
		require.NoError(t, err)

		require.NoError(t, product.Discontinue())
		assert.Equal(t, ProductStatusDiscontinued, product.Status)

		err = product.Discontinue()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already discontinued")
	})
}
