package inventory

import (
	"github.com/google/uuid"
	"github.com/warehousing/backend/internal/domain/shared"
)

// StockScope identifies which bucket of a product's stock a quantity
// belongs to: the store-level general bucket, or one specific variant.
// Using a value type instead of a nullable variant id keeps the
// general/variant distinction explicit at every call site.
type StockScope struct {
	variantID uuid.UUID
	variant   bool
}

// GeneralScope returns the scope for the variant-less general bucket.
func GeneralScope() StockScope {
	return StockScope{}
}

// VariantScope returns the scope for a specific variant bucket.
func VariantScope(variantID uuid.UUID) (StockScope, error) {
	if variantID == uuid.Nil {
		return StockScope{}, shared.NewDomainError("INVALID_VARIANT", "Variant ID cannot be empty")
	}
	return StockScope{variantID: variantID, variant: true}, nil
}

// ScopeFromNullableID rebuilds a scope from a persisted nullable column.
func ScopeFromNullableID(variantID *uuid.UUID) StockScope {
	if variantID == nil || *variantID == uuid.Nil {
		return GeneralScope()
	}
	return StockScope{variantID: *variantID, variant: true}
}

// IsVariant returns true if the scope targets a variant bucket.
func (s StockScope) IsVariant() bool {
	return s.variant
}

// VariantID returns the variant id and whether the scope is variant-bound.
func (s StockScope) VariantID() (uuid.UUID, bool) {
	return s.variantID, s.variant
}

// NullableID returns the variant id as a nullable value for persistence.
func (s StockScope) NullableID() *uuid.UUID {
	if !s.variant {
		return nil
	}
	id := s.variantID
	return &id
}

// Equal reports whether two scopes identify the same bucket.
func (s StockScope) Equal(other StockScope) bool {
	return s.variant == other.variant && s.variantID == other.variantID
}

// String returns a human-readable representation for logs.
func (s StockScope) String() string {
	if !s.variant {
		return "general"
	}
	return "variant:" + s.variantID.String()
}
