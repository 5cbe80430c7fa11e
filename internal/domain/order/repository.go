package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/warehousing/backend/internal/domain/shared"
)

// OrderFilter narrows order queries.
type OrderFilter struct {
	shared.Filter
	Kind   OrderKind
	Status string
}

// OrderRepository persists Order aggregates with their items.
type OrderRepository interface {
	// FindByID loads an order with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// FindAll lists orders matching the filter
	FindAll(ctx context.Context, filter OrderFilter) ([]Order, error)
	// Count counts orders matching the filter
	Count(ctx context.Context, filter OrderFilter) (int64, error)
	// Create inserts a new order with its items
	Create(ctx context.Context, o *Order) error
	// SaveWithLock persists status and item changes guarded by the version
	// column. Returns shared.ErrConcurrencyConflict when the check fails.
	SaveWithLock(ctx context.Context, o *Order) error
}
