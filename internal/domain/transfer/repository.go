package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehousing/backend/internal/domain/shared"
)

// TransferFilter narrows transfer queries.
type TransferFilter struct {
	shared.Filter
	Status  string
	StoreID *uuid.UUID // Matches either side of the transfer
}

// StoreTransferRepository persists StoreTransfer aggregates with their items.
type StoreTransferRepository interface {
	// FindByID loads a transfer with its items
	FindByID(ctx context.Context, id uuid.UUID) (*StoreTransfer, error)
	// FindAll lists transfers matching the filter
	FindAll(ctx context.Context, filter TransferFilter) ([]StoreTransfer, error)
	// Count counts transfers matching the filter
	Count(ctx context.Context, filter TransferFilter) (int64, error)
	// Create inserts a new transfer with its items
	Create(ctx context.Context, t *StoreTransfer) error
	// SaveWithLock persists the status transition guarded by the version
	// column. Returns shared.ErrConcurrencyConflict when the check fails.
	SaveWithLock(ctx context.Context, t *StoreTransfer) error
}
