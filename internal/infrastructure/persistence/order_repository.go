package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/warehousing/backend/internal/domain/order"
	"github.com/warehousing/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormOrderRepository implements OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// FindByID loads an order with its items
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	var o order.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// FindAll lists orders matching the filter
func (r *GormOrderRepository) FindAll(ctx context.Context, filter order.OrderFilter) ([]order.Order, error) {
	var orders []order.Order
	query := r.applyOrderFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	query = applyPagination(query, filter.Filter, OrderSortFields)

	if err := query.Preload("Items").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Count counts orders matching the filter
func (r *GormOrderRepository) Count(ctx context.Context, filter order.OrderFilter) (int64, error) {
	var count int64
	query := r.applyOrderFilter(r.db.WithContext(ctx).Model(&order.Order{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new order with its items
func (r *GormOrderRepository) Create(ctx context.Context, o *order.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

// SaveWithLock persists status and item changes guarded by the version
// column. Items are replaced wholesale only after the version check passed,
// so a concurrent revision cannot interleave partial item sets.
func (r *GormOrderRepository) SaveWithLock(ctx context.Context, o *order.Order) error {
	result := r.db.WithContext(ctx).
		Model(&order.Order{}).
		Where("id = ? AND version = ?", o.ID, o.Version-1).
		Updates(map[string]interface{}{
			"status":     o.Status,
			"reference":  o.Reference,
			"version":    o.Version,
			"updated_at": o.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}

	if err := r.db.WithContext(ctx).
		Where("order_id = ?", o.ID).
		Delete(&order.OrderItem{}).Error; err != nil {
		return err
	}
	if len(o.Items) > 0 {
		if err := r.db.WithContext(ctx).Create(&o.Items).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormOrderRepository) applyOrderFilter(query *gorm.DB, filter order.OrderFilter) *gorm.DB {
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	return query
}

var _ order.OrderRepository = (*GormOrderRepository)(nil)
