package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/shared"
)

// RecordFilter narrows inventory record queries.
type RecordFilter struct {
	shared.Filter
	ProductID   *uuid.UUID
	StoreID     *uuid.UUID
	VariantID   *uuid.UUID
	GeneralOnly bool
}

// TransactionFilter narrows audit trail queries.
type TransactionFilter struct {
	shared.Filter
	ProductID  *uuid.UUID
	StoreID    *uuid.UUID
	VariantID  *uuid.UUID
	OrderID    *uuid.UUID
	TransferID *uuid.UUID
	Kind       TransactionKind
	From       *time.Time
	To         *time.Time
}

// StockSummary aggregates the ledger for reporting.
type StockSummary struct {
	RecordCount   int64           `json:"record_count"`
	ProductCount  int64           `json:"product_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}

// InventoryRecordRepository persists InventoryRecord aggregates.
type InventoryRecordRepository interface {
	// FindByID finds a record by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryRecord, error)
	// FindByKey finds the record for a (product, store, scope) key.
	// Returns shared.ErrNotFound if no record exists yet.
	FindByKey(ctx context.Context, productID, storeID uuid.UUID, scope StockScope) (*InventoryRecord, error)
	// FindByStoreAndProduct returns every record (general and variants) for a product at a store
	FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) ([]InventoryRecord, error)
	// FindAll lists records matching the filter
	FindAll(ctx context.Context, filter RecordFilter) ([]InventoryRecord, error)
	// Count counts records matching the filter
	Count(ctx context.Context, filter RecordFilter) (int64, error)
	// FindBelowThreshold lists records with quantity below the threshold
	FindBelowThreshold(ctx context.Context, threshold decimal.Decimal, filter shared.Filter) ([]InventoryRecord, error)
	// Summarize aggregates the ledger, optionally narrowed to one store
	Summarize(ctx context.Context, storeID *uuid.UUID) (*StockSummary, error)
	// Create inserts a new record
	Create(ctx context.Context, record *InventoryRecord) error
	// SaveWithLock updates a record guarded by its version column.
	// Returns shared.ErrConcurrencyConflict when the version check fails.
	SaveWithLock(ctx context.Context, record *InventoryRecord) error
}

// InventoryTransactionRepository persists the append-only audit trail.
// Entries are never updated or deleted.
type InventoryTransactionRepository interface {
	// Create appends one audit entry
	Create(ctx context.Context, tx *InventoryTransaction) error
	// FindByID finds an entry by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*InventoryTransaction, error)
	// FindByOrder lists entries caused by an order
	FindByOrder(ctx context.Context, orderID uuid.UUID) ([]InventoryTransaction, error)
	// FindByTransfer lists entries caused by a transfer
	FindByTransfer(ctx context.Context, transferID uuid.UUID) ([]InventoryTransaction, error)
	// FindAll lists entries matching the filter
	FindAll(ctx context.Context, filter TransactionFilter) ([]InventoryTransaction, error)
	// Count counts entries matching the filter
	Count(ctx context.Context, filter TransactionFilter) (int64, error)
}
