package handler

import (
	"github.com/shopspring/decimal"
)

// AdjustStockRequest applies a signed manual adjustment to one record
type AdjustStockRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	StoreID   string          `json:"store_id" binding:"required,uuid"`
	VariantID *string         `json:"variant_id" binding:"omitempty,uuid"`
	Delta     decimal.Decimal `json:"delta" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Notes     string          `json:"notes" binding:"max=255"`
}

// SetInitialStockRequest sets a record to an absolute quantity
type SetInitialStockRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	StoreID   string          `json:"store_id" binding:"required,uuid"`
	VariantID *string         `json:"variant_id" binding:"omitempty,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	Notes     string          `json:"notes" binding:"max=255"`
}

// BulkAdjustStockRequest applies several adjustments in one transaction
type BulkAdjustStockRequest struct {
	Items []AdjustStockRequest `json:"items" binding:"required,min=1,dive"`
}

// BulkSetInitialStockRequest sets several records in one transaction
type BulkSetInitialStockRequest struct {
	Items []SetInitialStockRequest `json:"items" binding:"required,min=1,dive"`
}

// VariantAllocationRequest is one target bucket of an allocation
type VariantAllocationRequest struct {
	VariantID string          `json:"variant_id" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
}

// AllocateStockRequest splits general stock into variant buckets
type AllocateStockRequest struct {
	ProductID   string                     `json:"product_id" binding:"required,uuid"`
	StoreID     string                     `json:"store_id" binding:"required,uuid"`
	Allocations []VariantAllocationRequest `json:"allocations" binding:"required,min=1,dive"`
	Notes       string                     `json:"notes" binding:"max=255"`
}

// RecallStockRequest returns variant stock to the general bucket
type RecallStockRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	StoreID   string          `json:"store_id" binding:"required,uuid"`
	VariantID string          `json:"variant_id" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	Notes     string          `json:"notes" binding:"max=255"`
}
