package inventory

import (
	"context"

	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/order"
	"github.com/warehousing/backend/internal/domain/transfer"
)

// TransactionScope provides transactional access to the ledger repositories.
// Everything executed inside one scope shares a single database transaction:
// either every record mutation, audit entry, and status transition commits,
// or none of them do.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories bound to
// the current transaction.
type TransactionalRepositories interface {
	// Records returns the inventory record repository scoped to the transaction
	Records() inventory.InventoryRecordRepository
	// Transactions returns the audit trail repository scoped to the transaction
	Transactions() inventory.InventoryTransactionRepository
	// Orders returns the order repository scoped to the transaction
	Orders() order.OrderRepository
	// Transfers returns the store transfer repository scoped to the transaction
	Transfers() transfer.StoreTransferRepository
	// Statuses resolves status reference rows
	Statuses() lookup.StatusLookup
	// Kinds resolves transaction kind reference rows
	Kinds() lookup.KindLookup
}

// NoOpTransactionScope runs the function without a real transaction.
// Used by tests that substitute in-memory repositories.
type NoOpTransactionScope struct {
	RecordRepo      inventory.InventoryRecordRepository
	TransactionRepo inventory.InventoryTransactionRepository
	OrderRepo       order.OrderRepository
	TransferRepo    transfer.StoreTransferRepository
	StatusLookup    lookup.StatusLookup
	KindLookup      lookup.KindLookup
}

// Execute runs the function directly against the configured repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Records returns the inventory record repository
func (s *NoOpTransactionScope) Records() inventory.InventoryRecordRepository {
	return s.RecordRepo
}

// Transactions returns the audit trail repository
func (s *NoOpTransactionScope) Transactions() inventory.InventoryTransactionRepository {
	return s.TransactionRepo
}

// Orders returns the order repository
func (s *NoOpTransactionScope) Orders() order.OrderRepository {
	return s.OrderRepo
}

// Transfers returns the store transfer repository
func (s *NoOpTransactionScope) Transfers() transfer.StoreTransferRepository {
	return s.TransferRepo
}

// Statuses returns the status lookup
func (s *NoOpTransactionScope) Statuses() lookup.StatusLookup {
	return s.StatusLookup
}

// Kinds returns the transaction kind lookup
func (s *NoOpTransactionScope) Kinds() lookup.KindLookup {
	return s.KindLookup
}

// Ensure NoOpTransactionScope implements both interfaces
var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
