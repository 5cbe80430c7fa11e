package transfer

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/shared"
)

// TransferItem is one line of a store transfer. Transfers always move
// general stock; variant buckets are reshaped by allocation instead.
type TransferItem struct {
	shared.BaseEntity
	TransferID uuid.UUID       `gorm:"type:uuid;not null;index:idx_transfer_item_transfer"`
	ProductID  uuid.UUID       `gorm:"type:uuid;not null;index:idx_transfer_item_product"`
	Quantity   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitCost   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (TransferItem) TableName() string {
	return "store_transfer_items"
}

// StoreTransfer is a planned stock movement between two stores. Nothing
// touches the ledger while the transfer is pending; completion applies a
// paired debit/credit per item in one transaction, and cancellation is
// status-only.
type StoreTransfer struct {
	shared.BaseAggregateRoot
	FromStoreID uuid.UUID      `gorm:"type:uuid;not null;index:idx_transfer_from"`
	ToStoreID   uuid.UUID      `gorm:"type:uuid;not null;index:idx_transfer_to"`
	Status      string         `gorm:"type:varchar(30);not null;index:idx_transfer_status"`
	Reference   string         `gorm:"type:varchar(100)"`
	Items       []TransferItem `gorm:"foreignKey:TransferID;references:ID"`
}

// TableName returns the table name for GORM
func (StoreTransfer) TableName() string {
	return "store_transfers"
}

// NewStoreTransfer creates a pending transfer between two distinct stores.
func NewStoreTransfer(fromStoreID, toStoreID uuid.UUID, reference string, items []TransferItem) (*StoreTransfer, error) {
	if fromStoreID == uuid.Nil || toStoreID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_STORE", "Store IDs cannot be empty")
	}
	if fromStoreID == toStoreID {
		return nil, shared.NewDomainError("SAME_STORE", "Source and destination stores must differ")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Transfer must have at least one item")
	}

	t := &StoreTransfer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		FromStoreID:       fromStoreID,
		ToStoreID:         toStoreID,
		Status:            lookup.StatusPending,
		Reference:         reference,
		Items:             make([]TransferItem, 0, len(items)),
	}
	for _, item := range items {
		if item.ProductID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_PRODUCT", "Transfer item product ID cannot be empty")
		}
		if item.Quantity.LessThanOrEqual(decimal.Zero) {
			return nil, shared.NewDomainError("INVALID_QUANTITY", "Transfer item quantity must be positive")
		}
		item.TransferID = t.ID
		if item.ID == uuid.Nil {
			item.BaseEntity = shared.NewBaseEntity()
		}
		t.Items = append(t.Items, item)
	}
	return t, nil
}

// IsPending returns true if the transfer has not reached a terminal state
func (t *StoreTransfer) IsPending() bool {
	return t.Status == lookup.StatusPending
}

// IsCompleted returns true if the transfer has been completed
func (t *StoreTransfer) IsCompleted() bool {
	return t.Status == lookup.StatusCompleted
}

// MarkCompleted transitions the transfer to Completed. Completion is
// terminal and only legal from Pending.
func (t *StoreTransfer) MarkCompleted() error {
	if t.Status != lookup.StatusPending {
		return shared.ErrInvalidState
	}
	t.Status = lookup.StatusCompleted
	t.Touch()
	t.IncrementVersion()
	return nil
}

// MarkCancelled transitions the transfer to Cancelled. Only a pending
// transfer can cancel; nothing was applied, so there is no reversal.
func (t *StoreTransfer) MarkCancelled() error {
	if t.Status != lookup.StatusPending {
		return shared.ErrInvalidState
	}
	t.Status = lookup.StatusCancelled
	t.Touch()
	t.IncrementVersion()
	return nil
}
