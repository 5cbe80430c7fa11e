package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormInventoryTransactionRepository implements InventoryTransactionRepository
// using GORM. The audit trail is append-only; there is no update path.
type GormInventoryTransactionRepository struct {
	db *gorm.DB
}

// NewGormInventoryTransactionRepository creates a new GormInventoryTransactionRepository
func NewGormInventoryTransactionRepository(db *gorm.DB) *GormInventoryTransactionRepository {
	return &GormInventoryTransactionRepository{db: db}
}

// Create appends one audit entry
func (r *GormInventoryTransactionRepository) Create(ctx context.Context, tx *inventory.InventoryTransaction) error {
	return r.db.WithContext(ctx).Create(tx).Error
}

// FindByID finds an entry by its ID
func (r *GormInventoryTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	var entry inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// FindByOrder lists entries caused by an order
func (r *GormInventoryTransactionRepository) FindByOrder(ctx context.Context, orderID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var entries []inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("occurred_at ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindByTransfer lists entries caused by a transfer
func (r *GormInventoryTransactionRepository) FindByTransfer(ctx context.Context, transferID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var entries []inventory.InventoryTransaction
	if err := r.db.WithContext(ctx).
		Where("transfer_id = ?", transferID).
		Order("occurred_at ASC, created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// FindAll lists entries matching the filter
func (r *GormInventoryTransactionRepository) FindAll(ctx context.Context, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, error) {
	var entries []inventory.InventoryTransaction
	query := r.applyTransactionFilter(r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}), filter)
	query = applyPagination(query, filter.Filter, InventoryTransactionSortFields)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Count counts entries matching the filter
func (r *GormInventoryTransactionRepository) Count(ctx context.Context, filter inventory.TransactionFilter) (int64, error) {
	var count int64
	query := r.applyTransactionFilter(r.db.WithContext(ctx).Model(&inventory.InventoryTransaction{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormInventoryTransactionRepository) applyTransactionFilter(query *gorm.DB, filter inventory.TransactionFilter) *gorm.DB {
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}
	if filter.VariantID != nil {
		query = query.Where("variant_id = ?", *filter.VariantID)
	}
	if filter.OrderID != nil {
		query = query.Where("order_id = ?", *filter.OrderID)
	}
	if filter.TransferID != nil {
		query = query.Where("transfer_id = ?", *filter.TransferID)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		query = query.Where("occurred_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("occurred_at < ?", *filter.To)
	}
	return query
}

var _ inventory.InventoryTransactionRepository = (*GormInventoryTransactionRepository)(nil)
