package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/domain/transfer"
	"gorm.io/gorm"
)

// GormTransferRepository implements StoreTransferRepository using GORM
type GormTransferRepository struct {
	db *gorm.DB
}

// NewGormTransferRepository creates a new GormTransferRepository
func NewGormTransferRepository(db *gorm.DB) *GormTransferRepository {
	return &GormTransferRepository{db: db}
}

// FindByID loads a transfer with its items
func (r *GormTransferRepository) FindByID(ctx context.Context, id uuid.UUID) (*transfer.StoreTransfer, error) {
	var t transfer.StoreTransfer
	if err := r.db.WithContext(ctx).Preload("Items").First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindAll lists transfers matching the filter
func (r *GormTransferRepository) FindAll(ctx context.Context, filter transfer.TransferFilter) ([]transfer.StoreTransfer, error) {
	var transfers []transfer.StoreTransfer
	query := r.applyTransferFilter(r.db.WithContext(ctx).Model(&transfer.StoreTransfer{}), filter)
	query = applyPagination(query, filter.Filter, TransferSortFields)

	if err := query.Preload("Items").Find(&transfers).Error; err != nil {
		return nil, err
	}
	return transfers, nil
}

// Count counts transfers matching the filter
func (r *GormTransferRepository) Count(ctx context.Context, filter transfer.TransferFilter) (int64, error) {
	var count int64
	query := r.applyTransferFilter(r.db.WithContext(ctx).Model(&transfer.StoreTransfer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new transfer with its items
func (r *GormTransferRepository) Create(ctx context.Context, t *transfer.StoreTransfer) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// SaveWithLock persists the status transition guarded by the version column.
// Transfer items are immutable after creation, so only the header is written.
func (r *GormTransferRepository) SaveWithLock(ctx context.Context, t *transfer.StoreTransfer) error {
	result := r.db.WithContext(ctx).
		Model(&transfer.StoreTransfer{}).
		Where("id = ? AND version = ?", t.ID, t.Version-1).
		Updates(map[string]interface{}{
			"status":     t.Status,
			"version":    t.Version,
			"updated_at": t.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

func (r *GormTransferRepository) applyTransferFilter(query *gorm.DB, filter transfer.TransferFilter) *gorm.DB {
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.StoreID != nil {
		query = query.Where("from_store_id = ? OR to_store_id = ?", *filter.StoreID, *filter.StoreID)
	}
	return query
}

var _ transfer.StoreTransferRepository = (*GormTransferRepository)(nil)
