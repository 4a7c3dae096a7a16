package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/stockflow/backend/internal/domain/shared"
)

// StockLevelRepository defines the interface for ledger persistence
type StockLevelRepository interface {
	// FindByProductID finds the ledger row for a product
	FindByProductID(ctx context.Context, productID uuid.UUID) (*StockLevel, error)

	// FindForUpdate loads the ledger row with a row lock (SELECT FOR UPDATE).
	// Must be called inside a transaction.
	FindForUpdate(ctx context.Context, productID uuid.UUID) (*StockLevel, error)

	// GetOrCreate returns the ledger row for a product, creating a
	// zero-quantity row if none exists (ON CONFLICT DO NOTHING)
	GetOrCreate(ctx context.Context, productID uuid.UUID) (*StockLevel, error)

	// FindAll lists ledger rows matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]StockLevel, error)

	// Save persists a ledger row
	Save(ctx context.Context, level *StockLevel) error

	// Count counts ledger rows matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// StockMovementRepository defines the interface for audit row persistence.
// Movements are append-only.
type StockMovementRepository interface {
	// Append persists a new movement row
	Append(ctx context.Context, movement *StockMovement) error

	// FindByID finds a movement by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*StockMovement, error)

	// FindAll lists movements matching the filter, newest first
	FindAll(ctx context.Context, filter shared.Filter) ([]StockMovement, error)

	// FindByProduct lists movements for one product, newest first
	FindByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) ([]StockMovement, error)

	// FindSince lists movements recorded after the given time
	FindSince(ctx context.Context, since time.Time, limit int) ([]StockMovement, error)

	// Count counts movements matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}

// AdjustmentRepository defines the interface for adjustment persistence
type AdjustmentRepository interface {
	// FindByID finds an adjustment with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Adjustment, error)

	// FindByNumber finds an adjustment by document number
	FindByNumber(ctx context.Context, number string) (*Adjustment, error)

	// FindAll lists adjustments matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Adjustment, error)

	// Save persists the adjustment header and items
	Save(ctx context.Context, adjustment *Adjustment) error

	// Count counts adjustments matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
