package order

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/shared"
)

// OrderKind distinguishes purchase orders (stock in) from sale orders
// (stock out).
type OrderKind string

const (
	// OrderKindPurchase credits stock on completion
	OrderKindPurchase OrderKind = "PURCHASE"
	// OrderKindSale debits stock on completion
	OrderKindSale OrderKind = "SALE"
)

// IsValid returns true if the kind is defined
func (k OrderKind) IsValid() bool {
	return k == OrderKindPurchase || k == OrderKindSale
}

// TransactionKind returns the audit kind recorded when an order of this
// kind completes.
func (k OrderKind) TransactionKind() inventory.TransactionKind {
	if k == OrderKindPurchase {
		return inventory.KindPurchase
	}
	return inventory.KindSale
}

// StockDelta returns the signed ledger delta for a completed item quantity:
// positive for purchases, negative for sales.
func (k OrderKind) StockDelta(quantity decimal.Decimal) decimal.Decimal {
	if k == OrderKindPurchase {
		return quantity
	}
	return quantity.Neg()
}

// OrderItem is one line of an order. Items are owned by the order and
// replaced wholesale on revision.
type OrderItem struct {
	shared.BaseEntity
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_item_order"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;index:idx_order_item_product"`
	StoreID   uuid.UUID       `gorm:"type:uuid;not null"`
	VariantID *uuid.UUID      `gorm:"type:uuid"`
	Quantity  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// Scope returns the stock scope the item targets.
func (i OrderItem) Scope() inventory.StockScope {
	return inventory.ScopeFromNullableID(i.VariantID)
}

// Order is a purchase or sale whose completion mutates the ledger.
// Status transitions are the only writes allowed on a persisted order
// besides item revision, and they are version-guarded on save.
type Order struct {
	shared.BaseAggregateRoot
	Kind      OrderKind   `gorm:"type:varchar(20);not null;index:idx_order_kind"`
	Status    string      `gorm:"type:varchar(30);not null;index:idx_order_status"`
	Reference string      `gorm:"type:varchar(100)"`
	Items     []OrderItem `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a pending order with the given items.
func NewOrder(kind OrderKind, reference string, items []OrderItem) (*Order, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Invalid order kind")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Order must have at least one item")
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Kind:              kind,
		Status:            lookup.StatusPending,
		Reference:         reference,
		Items:             make([]OrderItem, 0, len(items)),
	}
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return nil, err
		}
		item.OrderID = o.ID
		if item.ID == uuid.Nil {
			item.BaseEntity = shared.NewBaseEntity()
		}
		o.Items = append(o.Items, item)
	}
	return o, nil
}

func validateItem(item OrderItem) error {
	if item.ProductID == uuid.Nil {
		return shared.NewDomainError("INVALID_PRODUCT", "Order item product ID cannot be empty")
	}
	if item.StoreID == uuid.Nil {
		return shared.NewDomainError("INVALID_STORE", "Order item store ID cannot be empty")
	}
	if item.Quantity.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_QUANTITY", "Order item quantity must be positive")
	}
	return nil
}

// IsCompleted returns true if the order has been completed
func (o *Order) IsCompleted() bool {
	return o.Status == lookup.StatusCompleted
}

// IsCancelled returns true if the order has been cancelled
func (o *Order) IsCancelled() bool {
	return o.Status == lookup.StatusCancelled
}

// MarkCompleted transitions the order to Completed. Only a pending order
// may complete; completing twice fails rather than silently succeeding.
func (o *Order) MarkCompleted() error {
	if o.Status != lookup.StatusPending {
		return shared.ErrInvalidState
	}
	o.Status = lookup.StatusCompleted
	o.Touch()
	o.IncrementVersion()
	return nil
}

// MarkCancelled transitions the order to Cancelled. A pending order
// cancels with no ledger effect; a completed order may only be cancelled
// after its stock effects were reversed by the caller.
func (o *Order) MarkCancelled() error {
	if o.Status == lookup.StatusCancelled {
		return shared.ErrInvalidState
	}
	o.Status = lookup.StatusCancelled
	o.Touch()
	o.IncrementVersion()
	return nil
}

// MarkPending resets the order to Pending. Completed orders cannot be
// reset; their effects are already on the ledger.
func (o *Order) MarkPending() error {
	if o.Status == lookup.StatusCompleted {
		return shared.ErrInvalidState
	}
	o.Status = lookup.StatusPending
	o.Touch()
	o.IncrementVersion()
	return nil
}

// ReplaceItems swaps the item list wholesale during a post-completion
// revision. Validation of the new items happens before the swap.
func (o *Order) ReplaceItems(items []OrderItem) error {
	if len(items) == 0 {
		return shared.NewDomainError("INVALID_ITEMS", "Order must have at least one item")
	}
	replaced := make([]OrderItem, 0, len(items))
	for _, item := range items {
		if err := validateItem(item); err != nil {
			return err
		}
		item.OrderID = o.ID
		if item.ID == uuid.Nil {
			item.BaseEntity = shared.NewBaseEntity()
		}
		replaced = append(replaced, item)
	}
	o.Items = replaced
	o.Touch()
	o.IncrementVersion()
	return nil
}

// ItemFor returns the item targeting the given ledger key, if present.
func (o *Order) ItemFor(productID, storeID uuid.UUID, scope inventory.StockScope) (OrderItem, bool) {
	for _, item := range o.Items {
		if item.ProductID == productID && item.StoreID == storeID && item.Scope().Equal(scope) {
			return item, true
		}
	}
	return OrderItem{}, false
}
