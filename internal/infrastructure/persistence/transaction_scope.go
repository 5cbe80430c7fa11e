package persistence

import (
	"context"

	appinv "github.com/warehousing/backend/internal/application/inventory"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/order"
	"github.com/warehousing/backend/internal/domain/transfer"
	"gorm.io/gorm"
)

// GormTransactionScope implements TransactionScope using GORM
// transactions. Transient failures such as serialization conflicts and
// deadlocks abort the whole transaction and re-run the function from
// scratch through the retry runner; a committed transaction is never
// re-executed.
type GormTransactionScope struct {
	db    *gorm.DB
	retry *RetryRunner
}

// NewGormTransactionScope creates a new GormTransactionScope.
func NewGormTransactionScope(db *gorm.DB, retry *RetryRunner) *GormTransactionScope {
	return &GormTransactionScope{db: db, retry: retry}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appinv.TransactionalRepositories) error) error {
	run := func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			repos := &gormTransactionalRepositories{tx: tx}
			return fn(repos)
		})
	}
	if s.retry == nil {
		return run()
	}
	return s.retry.Do(ctx, run)
}

// gormTransactionalRepositories provides access to all repositories within a transaction.
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Records returns the inventory record repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Records() inventory.InventoryRecordRepository {
	return NewGormInventoryRecordRepository(r.tx)
}

// Transactions returns the audit trail repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Transactions() inventory.InventoryTransactionRepository {
	return NewGormInventoryTransactionRepository(r.tx)
}

// Orders returns the order repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Orders() order.OrderRepository {
	return NewGormOrderRepository(r.tx)
}

// Transfers returns the store transfer repository scoped to the current transaction.
func (r *gormTransactionalRepositories) Transfers() transfer.StoreTransferRepository {
	return NewGormTransferRepository(r.tx)
}

// Statuses returns the status lookup scoped to the current transaction.
func (r *gormTransactionalRepositories) Statuses() lookup.StatusLookup {
	return NewGormStatusLookup(r.tx)
}

// Kinds returns the transaction kind lookup scoped to the current transaction.
func (r *gormTransactionalRepositories) Kinds() lookup.KindLookup {
	return NewGormKindLookup(r.tx)
}

// Ensure GormTransactionScope implements TransactionScope
var _ appinv.TransactionScope = (*GormTransactionScope)(nil)

// Ensure gormTransactionalRepositories implements TransactionalRepositories
var _ appinv.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
