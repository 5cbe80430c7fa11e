package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormStatusLookup resolves status reference rows using GORM.
// A missing row means the seed migration did not run, so the error is a
// configuration fault rather than a not-found.
type GormStatusLookup struct {
	db *gorm.DB
}

// NewGormStatusLookup creates a new GormStatusLookup
func NewGormStatusLookup(db *gorm.DB) *GormStatusLookup {
	return &GormStatusLookup{db: db}
}

// ByCode returns the status with the given code
func (r *GormStatusLookup) ByCode(ctx context.Context, code string) (*lookup.Status, error) {
	var status lookup.Status
	if err := r.db.WithContext(ctx).First(&status, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("status %q is not seeded: %w", code, shared.ErrConfiguration)
		}
		return nil, err
	}
	return &status, nil
}

// GormKindLookup resolves transaction kind reference rows using GORM.
type GormKindLookup struct {
	db *gorm.DB
}

// NewGormKindLookup creates a new GormKindLookup
func NewGormKindLookup(db *gorm.DB) *GormKindLookup {
	return &GormKindLookup{db: db}
}

// ByCode returns the transaction kind with the given code
func (r *GormKindLookup) ByCode(ctx context.Context, code string) (*lookup.TransactionKind, error) {
	var kind lookup.TransactionKind
	if err := r.db.WithContext(ctx).First(&kind, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("transaction kind %q is not seeded: %w", code, shared.ErrConfiguration)
		}
		return nil, err
	}
	return &kind, nil
}

var _ lookup.StatusLookup = (*GormStatusLookup)(nil)
var _ lookup.KindLookup = (*GormKindLookup)(nil)
