package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/shared"
)

// PostLine is one ledger mutation to apply. Product display fields and
// MinStock are resolved by the caller before the transaction starts.
type PostLine struct {
	LineID      *uuid.UUID // source document line, recorded on the movement
	ProductID   uuid.UUID
	ProductSKU  string
	ProductName string
	Quantity    decimal.Decimal // always positive
	UnitPrice   decimal.Decimal
	MinStock    decimal.Decimal
	Reason      string
}

// PostRequest describes a batch of same-direction ledger mutations
// originating from one document.
type PostRequest struct {
	Direction    inventory.Direction
	SourceType   inventory.SourceType
	SourceNumber string
	ActorID      uuid.UUID
	Lines        []PostLine
}

// LineSnapshot is the ledger before/after pair for one posted line
type LineSnapshot struct {
	Before decimal.Decimal
	After  decimal.Decimal
}

// LowStockAlert flags a product left at or below its minimum after posting
type LowStockAlert struct {
	ProductID   uuid.UUID
	ProductSKU  string
	ProductName string
	OnHand      decimal.Decimal
	MinStock    decimal.Decimal
}

// PostResult carries the per-line snapshots (in input order) and the
// low-stock alerts collected during posting
type PostResult struct {
	Snapshots []LineSnapshot
	LowStock  []LowStockAlert
}

// MovementPoster is the single routine through which every document
// mutates the ledger: adjustments, goods receipt completion, and
// shipment dispatch all post through here.
type MovementPoster struct{}

// NewMovementPoster creates a MovementPoster
func NewMovementPoster() *MovementPoster {
	return &MovementPoster{}
}

// Post applies the request's lines against the ledger, in input order,
// inside the caller's transaction. For each line it locks the ledger
// row (creating it at zero if absent), applies the signed delta,
// appends the audit movement, and collects low-stock alerts. Duplicate
// products within one request are applied sequentially, so the second
// line sees the first line's result.
func (p *MovementPoster) Post(ctx context.Context, repos TransactionalRepositories, req PostRequest) (*PostResult, error) {
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("EMPTY_DOCUMENT", "Document must have at least one line")
	}
	if req.Direction != inventory.DirectionIn && req.Direction != inventory.DirectionOut {
		return nil, shared.NewDomainError("INVALID_DIRECTION", "Direction must be IN or OUT")
	}

	polarity := decimal.NewFromInt(1)
	if req.Direction == inventory.DirectionOut {
		polarity = decimal.NewFromInt(-1)
	}

	result := &PostResult{
		Snapshots: make([]LineSnapshot, 0, len(req.Lines)),
	}
	// latest alert per product wins; order of first occurrence preserved
	alertIndex := make(map[uuid.UUID]int)

	for _, line := range req.Lines {
		if !line.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Line quantity must be positive")
		}

		level, err := repos.StockLevels().FindForUpdate(ctx, line.ProductID)
		if err != nil {
			if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			level, err = repos.StockLevels().GetOrCreate(ctx, line.ProductID)
			if err != nil {
				return nil, err
			}
		}

		before, after, err := level.Apply(line.Quantity.Mul(polarity), req.ActorID)
		if err != nil {
			return nil, err
		}
		if err := repos.StockLevels().Save(ctx, level); err != nil {
			return nil, err
		}

		movement, err := inventory.NewStockMovement(
			line.ProductID, req.Direction,
			line.Quantity, line.UnitPrice,
			before, after,
			req.SourceType, req.SourceNumber, line.LineID,
			line.Reason, req.ActorID,
		)
		if err != nil {
			return nil, err
		}
		if err := repos.Movements().Append(ctx, movement); err != nil {
			return nil, err
		}

		result.Snapshots = append(result.Snapshots, LineSnapshot{Before: before, After: after})

		if level.IsBelowMin(line.MinStock) {
			alert := LowStockAlert{
				ProductID:   line.ProductID,
				ProductSKU:  line.ProductSKU,
				ProductName: line.ProductName,
				OnHand:      after,
				MinStock:    line.MinStock,
			}
			if idx, seen := alertIndex[line.ProductID]; seen {
				result.LowStock[idx] = alert
			} else {
				alertIndex[line.ProductID] = len(result.LowStock)
				result.LowStock = append(result.LowStock, alert)
			}
		}
	}

	return result, nil
}

// LowStockEvents converts the collected alerts into domain events for
// the post-commit outbox
func (r *PostResult) LowStockEvents(sourceType inventory.SourceType, sourceNumber string) []shared.DomainEvent {
	events := make([]shared.DomainEvent, 0, len(r.LowStock))
	for _, alert := range r.LowStock {
		events = append(events, inventory.NewLowStockDetectedEvent(
			alert.ProductID, alert.ProductSKU, alert.ProductName,
			alert.OnHand, alert.MinStock, sourceType, sourceNumber,
		))
	}
	return events
}
