package inventory

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/shared"
)

// ShortfallItem describes one item that failed a sufficiency check.
type ShortfallItem struct {
	ProductID uuid.UUID       `json:"product_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Available decimal.Decimal `json:"available"`
	Requested decimal.Decimal `json:"requested"`
}

// InsufficientStockError is returned when a validation pass detects one or
// more items whose requested quantity exceeds the available balance. It is
// raised before any mutation, so the caller can report every offending item
// while guaranteeing nothing was applied.
type InsufficientStockError struct {
	Items []ShortfallItem
}

// NewInsufficientStockError creates an error for the given shortfall items.
func NewInsufficientStockError(items ...ShortfallItem) *InsufficientStockError {
	return &InsufficientStockError{Items: items}
}

// Error implements the error interface
func (e *InsufficientStockError) Error() string {
	if len(e.Items) == 1 {
		it := e.Items[0]
		return fmt.Sprintf("insufficient stock for product %s: available %s, requested %s",
			it.ProductID, it.Available, it.Requested)
	}
	return fmt.Sprintf("insufficient stock for %d items", len(e.Items))
}

// Unwrap allows errors.Is(err, shared.ErrInsufficientStock) checks.
func (e *InsufficientStockError) Unwrap() error {
	return shared.ErrInsufficientStock
}
