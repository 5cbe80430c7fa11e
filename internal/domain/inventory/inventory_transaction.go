package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/shared"
)

// InventoryTransaction is an immutable audit entry for one ledger mutation.
// Once created it is never updated or deleted; corrections are recorded as
// new entries. QuantityAfter always equals QuantityBefore + QuantityChanged,
// and equals the record's quantity at the moment the mutation committed.
type InventoryTransaction struct {
	shared.BaseEntity
	ProductID       uuid.UUID       `gorm:"type:uuid;not null;index:idx_inv_tx_product"`
	StoreID         *uuid.UUID      `gorm:"type:uuid;index:idx_inv_tx_store"`
	VariantID       *uuid.UUID      `gorm:"type:uuid;index:idx_inv_tx_variant"`
	Kind            TransactionKind `gorm:"type:varchar(30);not null;index:idx_inv_tx_kind"`
	QuantityChanged decimal.Decimal `gorm:"type:decimal(18,4);not null"` // Signed delta applied to the record
	QuantityBefore  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	QuantityAfter   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost        decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Notes           string          `gorm:"type:varchar(255)"`
	OrderID         *uuid.UUID      `gorm:"type:uuid;index:idx_inv_tx_order"`
	TransferID      *uuid.UUID      `gorm:"type:uuid;index:idx_inv_tx_transfer"`
	OccurredAt      time.Time       `gorm:"type:timestamptz;not null;index:idx_inv_tx_occurred"`
}

// TableName returns the table name for GORM
func (InventoryTransaction) TableName() string {
	return "inventory_transactions"
}

// NewInventoryTransaction creates an audit entry for a ledger mutation.
// The before/after/changed triple must balance; callers take the values
// from the Movement returned by Ledger.Adjust so this holds by construction.
func NewInventoryTransaction(
	kind TransactionKind,
	productID uuid.UUID,
	storeID uuid.UUID,
	scope StockScope,
	quantityChanged, quantityBefore, quantityAfter decimal.Decimal,
) (*InventoryTransaction, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid transaction kind")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantityChanged.IsZero() {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity change cannot be zero")
	}
	if !quantityAfter.Equal(quantityBefore.Add(quantityChanged)) {
		return nil, shared.NewDomainError("UNBALANCED_ENTRY", "Quantity after must equal before plus change")
	}

	var store *uuid.UUID
	if storeID != uuid.Nil {
		store = &storeID
	}

	return &InventoryTransaction{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		StoreID:         store,
		VariantID:       scope.NullableID(),
		Kind:            kind,
		QuantityChanged: quantityChanged,
		QuantityBefore:  quantityBefore,
		QuantityAfter:   quantityAfter,
		UnitCost:        decimal.Zero,
		OccurredAt:      time.Now(),
	}, nil
}

// WithUnitCost sets the per-unit cost at the time of the mutation
func (t *InventoryTransaction) WithUnitCost(unitCost decimal.Decimal) *InventoryTransaction {
	t.UnitCost = unitCost
	return t
}

// WithNotes sets free-form notes for the entry
func (t *InventoryTransaction) WithNotes(notes string) *InventoryTransaction {
	t.Notes = notes
	return t
}

// WithOrderID links the entry to the order that caused it
func (t *InventoryTransaction) WithOrderID(orderID uuid.UUID) *InventoryTransaction {
	t.OrderID = &orderID
	return t
}

// WithTransferID links the entry to the transfer that caused it
func (t *InventoryTransaction) WithTransferID(transferID uuid.UUID) *InventoryTransaction {
	t.TransferID = &transferID
	return t
}

// WithOccurredAt overrides the entry timestamp
func (t *InventoryTransaction) WithOccurredAt(at time.Time) *InventoryTransaction {
	t.OccurredAt = at
	return t
}

// IsBalanced reports whether the before/after/changed triple is consistent.
func (t *InventoryTransaction) IsBalanced() bool {
	return t.QuantityAfter.Equal(t.QuantityBefore.Add(t.QuantityChanged))
}

// Scope returns the stock scope the entry was recorded against.
func (t *InventoryTransaction) Scope() StockScope {
	return ScopeFromNullableID(t.VariantID)
}
