package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryRecordRepository implements InventoryRecordRepository using GORM
type GormInventoryRecordRepository struct {
	db *gorm.DB
}

// NewGormInventoryRecordRepository creates a new GormInventoryRecordRepository
func NewGormInventoryRecordRepository(db *gorm.DB) *GormInventoryRecordRepository {
	return &GormInventoryRecordRepository{db: db}
}

// FindByID finds an inventory record by its ID
func (r *GormInventoryRecordRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	var record inventory.InventoryRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByKey finds the record for a (product, store, scope) key
func (r *GormInventoryRecordRepository) FindByKey(ctx context.Context, productID, storeID uuid.UUID, scope inventory.StockScope) (*inventory.InventoryRecord, error) {
	query := r.db.WithContext(ctx).
		Where("product_id = ? AND store_id = ?", productID, storeID)
	if variantID, ok := scope.VariantID(); ok {
		query = query.Where("variant_id = ?", variantID)
	} else {
		query = query.Where("variant_id IS NULL")
	}

	var record inventory.InventoryRecord
	if err := query.First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &record, nil
}

// FindByStoreAndProduct returns every record (general and variants) for a product at a store
func (r *GormInventoryRecordRepository) FindByStoreAndProduct(ctx context.Context, storeID, productID uuid.UUID) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Order("variant_id ASC NULLS FIRST").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindAll lists records matching the filter
func (r *GormInventoryRecordRepository) FindAll(ctx context.Context, filter inventory.RecordFilter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := r.applyRecordFilter(r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}), filter)
	query = applyPagination(query, filter.Filter, InventoryRecordSortFields)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Count counts records matching the filter
func (r *GormInventoryRecordRepository) Count(ctx context.Context, filter inventory.RecordFilter) (int64, error) {
	var count int64
	query := r.applyRecordFilter(r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindBelowThreshold lists records with quantity below the threshold
func (r *GormInventoryRecordRepository) FindBelowThreshold(ctx context.Context, threshold decimal.Decimal, filter shared.Filter) ([]inventory.InventoryRecord, error) {
	var records []inventory.InventoryRecord
	query := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{}).
		Where("quantity < ?", threshold)
	query = applyPagination(query, filter, InventoryRecordSortFields)

	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Summarize aggregates the ledger, optionally narrowed to one store
func (r *GormInventoryRecordRepository) Summarize(ctx context.Context, storeID *uuid.UUID) (*inventory.StockSummary, error) {
	query := r.db.WithContext(ctx).Model(&inventory.InventoryRecord{})
	if storeID != nil {
		query = query.Where("store_id = ?", *storeID)
	}

	var summary inventory.StockSummary
	if err := query.
		Select("COUNT(*) as record_count, COUNT(DISTINCT product_id) as product_count, COALESCE(SUM(quantity), 0) as total_quantity").
		Scan(&summary).Error; err != nil {
		return nil, err
	}
	return &summary, nil
}

// Create inserts a new record
func (r *GormInventoryRecordRepository) Create(ctx context.Context, record *inventory.InventoryRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// SaveWithLock updates a record guarded by its version column
func (r *GormInventoryRecordRepository) SaveWithLock(ctx context.Context, record *inventory.InventoryRecord) error {
	result := r.db.WithContext(ctx).
		Model(record).
		Where("id = ? AND version = ?", record.ID, record.Version-1).
		Updates(map[string]interface{}{
			"quantity":   record.Quantity,
			"version":    record.Version,
			"updated_at": record.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormInventoryRecordRepository) applyRecordFilter(query *gorm.DB, filter inventory.RecordFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.VariantID != nil {
		query = query.Where("variant_id = ?", *filter.VariantID)
	}
	if filter.GeneralOnly {
		query = query.Where("variant_id IS NULL")
	}
	return query
}

// applyPagination applies whitelist-validated ordering and pagination to a query.
func applyPagination(query *gorm.DB, filter shared.Filter, sortFields map[string]bool) *gorm.DB {
	orderBy := ValidateSortField(filter.OrderBy, sortFields, "created_at")
	orderDir := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", orderBy, orderDir))

	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

var _ inventory.InventoryRecordRepository = (*GormInventoryRecordRepository)(nil)
