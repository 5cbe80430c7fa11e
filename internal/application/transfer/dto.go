package transfer

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/transfer"
)

// TransferItemInput is one requested transfer line.
type TransferItemInput struct {
	ProductID uuid.UUID
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
}

// CreateTransferCommand creates a pending transfer between two stores.
type CreateTransferCommand struct {
	FromStoreID uuid.UUID
	ToStoreID   uuid.UUID
	Reference   string
	Items       []TransferItemInput
}

// ListTransfersQuery narrows transfer listings.
type ListTransfersQuery struct {
	Status   string
	StoreID  *uuid.UUID
	Page     int
	PageSize int
}

// TransferItemDTO is the read model of one transfer line.
type TransferItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// TransferDTO is the read model of a store transfer.
type TransferDTO struct {
	ID          uuid.UUID         `json:"id"`
	FromStoreID uuid.UUID         `json:"from_store_id"`
	ToStoreID   uuid.UUID         `json:"to_store_id"`
	Status      string            `json:"status"`
	Reference   string            `json:"reference,omitempty"`
	Items       []TransferItemDTO `json:"items"`
	Version     int               `json:"version"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewTransferDTO maps a domain transfer to its read model.
func NewTransferDTO(t *transfer.StoreTransfer) TransferDTO {
	items := make([]TransferItemDTO, len(t.Items))
	for i, item := range t.Items {
		items[i] = TransferItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		}
	}
	return TransferDTO{
		ID:          t.ID,
		FromStoreID: t.FromStoreID,
		ToStoreID:   t.ToStoreID,
		Status:      t.Status,
		Reference:   t.Reference,
		Items:       items,
		Version:     t.Version,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
