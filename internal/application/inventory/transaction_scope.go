package inventory

import (
	"context"

	"github.com/stockflow/backend/internal/domain/inventory"
	"github.com/stockflow/backend/internal/domain/purchasing"
	"github.com/stockflow/backend/internal/domain/sales"
	"github.com/stockflow/backend/internal/domain/shared"
)

// TransactionScope provides transactional access to the repositories the
// mutation pipeline touches. A function executed within a scope sees all
// repository operations as one database transaction, committed or rolled
// back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories that can
// take part in a document transaction. All repositories returned share
// the same underlying database transaction.
type TransactionalRepositories interface {
	// StockLevels returns the ledger repository scoped to the current transaction
	StockLevels() inventory.StockLevelRepository
	// Movements returns the audit row repository scoped to the current transaction
	Movements() inventory.StockMovementRepository
	// Adjustments returns the adjustment repository scoped to the current transaction
	Adjustments() inventory.AdjustmentRepository
	// PurchaseOrders returns the purchase order repository scoped to the current transaction
	PurchaseOrders() purchasing.PurchaseOrderRepository
	// GoodsReceipts returns the goods received note repository scoped to the current transaction
	GoodsReceipts() purchasing.GoodsReceivedRepository
	// SalesOrders returns the sales order repository scoped to the current transaction
	SalesOrders() sales.SalesOrderRepository
	// Shipments returns the shipment repository scoped to the current transaction
	Shipments() sales.ShipmentRepository
	// Sequences returns the document number sequence repository scoped to the current transaction
	Sequences() shared.DocumentSequenceRepository
}

// NoOpTransactionScope runs scope functions without a real transaction.
// Useful in tests where the backing repositories are in-memory fakes.
type NoOpTransactionScope struct {
	StockLevelRepo    inventory.StockLevelRepository
	MovementRepo      inventory.StockMovementRepository
	AdjustmentRepo    inventory.AdjustmentRepository
	PurchaseOrderRepo purchasing.PurchaseOrderRepository
	GoodsReceivedRepo purchasing.GoodsReceivedRepository
	SalesOrderRepo    sales.SalesOrderRepository
	ShipmentRepo      sales.ShipmentRepository
	SequenceRepo      shared.DocumentSequenceRepository
}

// Execute runs the function without transaction semantics
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

func (s *NoOpTransactionScope) StockLevels() inventory.StockLevelRepository { return s.StockLevelRepo }
func (s *NoOpTransactionScope) Movements() inventory.StockMovementRepository {
	return s.MovementRepo
}
func (s *NoOpTransactionScope) Adjustments() inventory.AdjustmentRepository { return s.AdjustmentRepo }
func (s *NoOpTransactionScope) PurchaseOrders() purchasing.PurchaseOrderRepository {
	return s.PurchaseOrderRepo
}
func (s *NoOpTransactionScope) GoodsReceipts() purchasing.GoodsReceivedRepository {
	return s.GoodsReceivedRepo
}
func (s *NoOpTransactionScope) SalesOrders() sales.SalesOrderRepository { return s.SalesOrderRepo }
func (s *NoOpTransactionScope) Shipments() sales.ShipmentRepository     { return s.ShipmentRepo }
func (s *NoOpTransactionScope) Sequences() shared.DocumentSequenceRepository {
	return s.SequenceRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
