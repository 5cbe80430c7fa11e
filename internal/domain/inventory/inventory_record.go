package inventory

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/shared"
)

// InventoryRecord is the authoritative on-hand quantity for one
// (product, store, scope) key. It is the aggregate root of the ledger;
// quantity changes flow exclusively through Ledger.Adjust so that every
// mutation is paired with an audit entry.
type InventoryRecord struct {
	shared.BaseAggregateRoot
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_record_product"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_inventory_record_store"`
	VariantID *uuid.UUID      `gorm:"type:uuid;index:idx_inventory_record_variant"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (InventoryRecord) TableName() string {
	return "inventory_records"
}

// NewInventoryRecord creates a record at zero quantity for the given key.
func NewInventoryRecord(productID, storeID uuid.UUID, scope StockScope) (*InventoryRecord, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if storeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store ID cannot be empty")
	}

	return &InventoryRecord{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ProductID:         productID,
		StoreID:           storeID,
		VariantID:         scope.NullableID(),
		Quantity:          decimal.Zero,
	}, nil
}

// Scope returns the stock scope this record belongs to.
func (r *InventoryRecord) Scope() StockScope {
	return ScopeFromNullableID(r.VariantID)
}

// CanFulfill returns true if the record holds at least the requested quantity.
func (r *InventoryRecord) CanFulfill(quantity decimal.Decimal) bool {
	return r.Quantity.GreaterThanOrEqual(quantity)
}

// Apply adds a signed delta to the quantity and returns the before/after
// pair the audit entry must capture. The quantity never goes negative:
// a debit exceeding the balance fails with the shortfall attached.
func (r *InventoryRecord) Apply(delta decimal.Decimal) (before, after decimal.Decimal, err error) {
	before = r.Quantity
	after = before.Add(delta)
	if after.IsNegative() {
		return before, before, NewInsufficientStockError(ShortfallItem{
			ProductID: r.ProductID,
			VariantID: r.VariantID,
			Available: before,
			Requested: delta.Neg(),
		})
	}

	r.Quantity = after
	r.Touch()
	r.IncrementVersion()
	return before, after, nil
}
