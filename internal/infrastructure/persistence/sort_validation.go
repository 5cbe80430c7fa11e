package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// InventoryRecordSortFields contains allowed sort fields for inventory records
var InventoryRecordSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"product_id": true,
	"store_id":   true,
	"variant_id": true,
	"quantity":   true,
}

// InventoryTransactionSortFields contains allowed sort fields for audit entries
var InventoryTransactionSortFields = map[string]bool{
	"id":               true,
	"created_at":       true,
	"product_id":       true,
	"store_id":         true,
	"variant_id":       true,
	"kind":             true,
	"quantity_changed": true,
	"occurred_at":      true,
}

// OrderSortFields contains allowed sort fields for orders
var OrderSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"kind":       true,
	"status":     true,
	"reference":  true,
}

// TransferSortFields contains allowed sort fields for store transfers
var TransferSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"from_store_id": true,
	"to_store_id":   true,
	"status":        true,
	"reference":     true,
}
