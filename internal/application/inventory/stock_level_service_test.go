package inventory

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

func TestStockLevelService_GetByProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the ledger row with product details", func(t *testing.T) {
		product := newTestProduct(t, "LVL-001")
		levels := newMemStockLevelRepository()
		seedLevel(t, levels, product.ID, decimal.NewFromInt(12))
		service := NewStockLevelService(levels, newMemStockMovementRepository(), newMemProductRepository(product))

		resp, err := service.GetByProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "LVL-001", resp.ProductSKU)
		assert.True(t, resp.OnHand.Equal(decimal.NewFromInt(12)))
		assert.False(t, resp.IsBelowMin)
	})

	t.Run("reads zero for a product with no movements", func(t *testing.T) {
		product := newTestProduct(t, "LVL-002")
		service := NewStockLevelService(newMemStockLevelRepository(), newMemStockMovementRepository(), newMemProductRepository(product))

		resp, err := service.GetByProduct(ctx, product.ID)
		require.NoError(t, err)
		assert.True(t, resp.OnHand.IsZero())
		assert.True(t, resp.IsBelowMin, "zero on hand is at or below a positive minimum")
	})

	t.Run("fails for an unknown product", func(t *testing.T) {
		service := NewStockLevelService(newMemStockLevelRepository(), newMemStockMovementRepository(), newMemProductRepository())

		_, err := service.GetByProduct(ctx, uuid.New())
		require.Error(t, err)
	})
}

func TestStockLevelService_ListLowStock(t *testing.T) {
	ctx := context.Background()
	low := newTestProduct(t, "LOW-001")
	ok := newTestProduct(t, "OK-001")

	levels := newMemStockLevelRepository()
	seedLevel(t, levels, low.ID, decimal.NewFromInt(2))
	seedLevel(t, levels, ok.ID, decimal.NewFromInt(50))
	service := NewStockLevelService(levels, newMemStockMovementRepository(), newMemProductRepository(low, ok))

	resp, err := service.ListLowStock(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, resp, 1)
	assert.Equal(t, low.ID, resp[0].ProductID)
	assert.True(t, resp[0].IsBelowMin)
}

func TestStockLevelService_Movements(t *testing.T) {
	ctx := context.Background()
	actorID := uuid.New()
	productID := uuid.New()
	otherID := uuid.New()

	movements := newMemStockMovementRepository()
	appendMovement(t, movements, productID, actorID, decimal.Zero, decimal.NewFromInt(5))
	appendMovement(t, movements, productID, actorID, decimal.NewFromInt(5), decimal.NewFromInt(9))
	appendMovement(t, movements, otherID, actorID, decimal.Zero, decimal.NewFromInt(1))

	service := NewStockLevelService(newMemStockLevelRepository(), movements, newMemProductRepository())

	t.Run("lists all movements", func(t *testing.T) {
		page, err := service.ListMovements(ctx, shared.DefaultFilter())
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
	})

	t.Run("filters by product", func(t *testing.T) {
		page, err := service.ListMovementsByProduct(ctx, productID, shared.DefaultFilter())
		require.NoError(t, err)
		require.Len(t, page.Items, 2)
		for _, m := range page.Items {
			assert.Equal(t, productID, m.ProductID)
		}
	})
}

func appendMovement(t *testing.T, repo *memStockMovementRepository, productID, actorID uuid.UUID, before, after decimal.Decimal) {
	t.Helper()
	movement, err := inventory.NewStockMovement(
		productID,
		inventory.DirectionIn,
		after.Sub(before),
		decimal.Zero,
		before,
		after,
		inventory.SourceTypeAdjustment,
		"ADJ-2026-00099",
		nil,
		"",
		actorID,
	)
	require.NoError(t, err)
	require.NoError(t, repo.Append(context.Background(), movement))
}
