// Package integration exercises the GORM repositories against a real
// database. SQLite keeps the suite self-contained; the SQL the
// repositories emit stays within the portable subset.
package integration

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/order"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/domain/transfer"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a fresh file-backed SQLite database for one test,
// migrates the schema and seeds the reference tables.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "warehouse_test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "Failed to open test database")

	err = db.AutoMigrate(
		&lookup.Status{},
		&lookup.TransactionKind{},
		&inventory.InventoryRecord{},
		&inventory.InventoryTransaction{},
		&order.Order{},
		&order.OrderItem{},
		&transfer.StoreTransfer{},
		&transfer.TransferItem{},
	)
	require.NoError(t, err, "Failed to migrate test schema")

	seedLookups(t, db)
	return db
}

// variantScope builds a variant scope from an id known to be non-nil.
func variantScope(t *testing.T, variantID uuid.UUID) inventory.StockScope {
	t.Helper()

	scope, err := inventory.VariantScope(variantID)
	require.NoError(t, err)
	return scope
}

// seedLookups inserts the same reference rows the SQL migrations seed.
func seedLookups(t *testing.T, db *gorm.DB) {
	t.Helper()

	statuses := []string{
		lookup.StatusPending,
		lookup.StatusCompleted,
		lookup.StatusCancelled,
		lookup.StatusDraft,
	}
	for _, code := range statuses {
		row := &lookup.Status{BaseEntity: shared.NewBaseEntity(), Code: code, Name: code}
		require.NoError(t, db.Create(row).Error)
	}

	for _, kind := range inventory.AllKinds() {
		row := &lookup.TransactionKind{BaseEntity: shared.NewBaseEntity(), Code: kind.String(), Name: kind.String()}
		require.NoError(t, db.Create(row).Error)
	}
}
