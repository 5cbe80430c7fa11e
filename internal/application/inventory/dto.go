package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/inventory"
)

// StockQuery identifies one ledger key.
type StockQuery struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
	VariantID *uuid.UUID
}

// Scope converts the optional variant id into a stock scope.
func (q StockQuery) Scope() inventory.StockScope {
	return inventory.ScopeFromNullableID(q.VariantID)
}

// AdjustCommand applies a signed manual adjustment to one record.
type AdjustCommand struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
	VariantID *uuid.UUID
	Delta     decimal.Decimal
	UnitCost  decimal.Decimal
	Notes     string
}

// InitialStockCommand sets a record to an absolute quantity, recording
// the difference as an adjustment.
type InitialStockCommand struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
	VariantID *uuid.UUID
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	Notes     string
}

// BulkAdjustCommand applies several adjustments in one transaction.
type BulkAdjustCommand struct {
	Items []AdjustCommand
}

// BulkInitialStockCommand sets several records to absolute quantities in
// one transaction.
type BulkInitialStockCommand struct {
	Items []InitialStockCommand
}

// VariantAllocation is one target bucket of an allocation.
type VariantAllocation struct {
	VariantID uuid.UUID
	Quantity  decimal.Decimal
}

// AllocateCommand splits general stock into variant buckets.
type AllocateCommand struct {
	ProductID   uuid.UUID
	StoreID     uuid.UUID
	Allocations []VariantAllocation
	Notes       string
}

// RecallCommand returns variant stock to the general bucket.
type RecallCommand struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
	VariantID uuid.UUID
	Quantity  decimal.Decimal
	Notes     string
}

// ListQuery narrows inventory record listings.
type ListQuery struct {
	ProductID *uuid.UUID
	StoreID   *uuid.UUID
	Page      int
	PageSize  int
}

// TransactionQuery narrows audit trail listings.
type TransactionQuery struct {
	ProductID  *uuid.UUID
	StoreID    *uuid.UUID
	VariantID  *uuid.UUID
	OrderID    *uuid.UUID
	TransferID *uuid.UUID
	Kind       string
	From       *time.Time
	To         *time.Time
	Page       int
	PageSize   int
}

// RecordDTO is the read model of one inventory record.
type RecordDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	StoreID   uuid.UUID       `json:"store_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// NewRecordDTO maps a domain record to its read model.
func NewRecordDTO(r *inventory.InventoryRecord) RecordDTO {
	return RecordDTO{
		ID:        r.ID,
		ProductID: r.ProductID,
		StoreID:   r.StoreID,
		VariantID: r.VariantID,
		Quantity:  r.Quantity,
		UpdatedAt: r.UpdatedAt,
	}
}

// TransactionDTO is the read model of one audit entry.
type TransactionDTO struct {
	ID              uuid.UUID       `json:"id"`
	ProductID       uuid.UUID       `json:"product_id"`
	StoreID         *uuid.UUID      `json:"store_id,omitempty"`
	VariantID       *uuid.UUID      `json:"variant_id,omitempty"`
	Kind            string          `json:"kind"`
	QuantityChanged decimal.Decimal `json:"quantity_changed"`
	QuantityBefore  decimal.Decimal `json:"quantity_before"`
	QuantityAfter   decimal.Decimal `json:"quantity_after"`
	UnitCost        decimal.Decimal `json:"unit_cost"`
	Notes           string          `json:"notes,omitempty"`
	OrderID         *uuid.UUID      `json:"order_id,omitempty"`
	TransferID      *uuid.UUID      `json:"transfer_id,omitempty"`
	OccurredAt      time.Time       `json:"occurred_at"`
}

// NewTransactionDTO maps a domain audit entry to its read model.
func NewTransactionDTO(t *inventory.InventoryTransaction) TransactionDTO {
	return TransactionDTO{
		ID:              t.ID,
		ProductID:       t.ProductID,
		StoreID:         t.StoreID,
		VariantID:       t.VariantID,
		Kind:            t.Kind.String(),
		QuantityChanged: t.QuantityChanged,
		QuantityBefore:  t.QuantityBefore,
		QuantityAfter:   t.QuantityAfter,
		UnitCost:        t.UnitCost,
		Notes:           t.Notes,
		OrderID:         t.OrderID,
		TransferID:      t.TransferID,
		OccurredAt:      t.OccurredAt,
	}
}

// MutationResult reports a single applied ledger mutation.
type MutationResult struct {
	RecordID       uuid.UUID       `json:"record_id"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	TransactionID  uuid.UUID       `json:"transaction_id"`
}

// AllocationResult reports the outcome of an allocation.
type AllocationResult struct {
	TotalAllocated   decimal.Decimal `json:"total_allocated"`
	RemainingGeneral decimal.Decimal `json:"remaining_general"`
}

// RecallResult reports the outcome of a recall.
type RecallResult struct {
	VariantQuantity decimal.Decimal `json:"variant_quantity"`
	GeneralQuantity decimal.Decimal `json:"general_quantity"`
}

// SummaryDTO aggregates the ledger for dashboards.
type SummaryDTO struct {
	RecordCount   int64           `json:"record_count"`
	ProductCount  int64           `json:"product_count"`
	TotalQuantity decimal.Decimal `json:"total_quantity"`
}
