package integration

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/infrastructure/persistence"
)

func createRecord(t *testing.T, repo *persistence.GormInventoryRecordRepository, productID, storeID uuid.UUID, scope inventory.StockScope, quantity decimal.Decimal) *inventory.InventoryRecord {
	t.Helper()

	record, err := inventory.NewInventoryRecord(productID, storeID, scope)
	require.NoError(t, err)
	record.Quantity = quantity
	require.NoError(t, repo.Create(context.Background(), record))
	return record
}

func TestInventoryRecordRepository_FindByKey(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryRecordRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	storeID := uuid.New()
	variantID := uuid.New()

	general := createRecord(t, repo, productID, storeID, inventory.GeneralScope(), decimal.NewFromInt(10))
	variant := createRecord(t, repo, productID, storeID, variantScope(t, variantID), decimal.NewFromInt(3))

	found, err := repo.FindByKey(ctx, productID, storeID, inventory.GeneralScope())
	require.NoError(t, err)
	assert.Equal(t, general.ID, found.ID)
	assert.Nil(t, found.VariantID)
	assert.True(t, decimal.NewFromInt(10).Equal(found.Quantity))

	found, err = repo.FindByKey(ctx, productID, storeID, variantScope(t, variantID))
	require.NoError(t, err)
	assert.Equal(t, variant.ID, found.ID)
	require.NotNil(t, found.VariantID)
	assert.Equal(t, variantID, *found.VariantID)

	_, err = repo.FindByKey(ctx, uuid.New(), storeID, inventory.GeneralScope())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestInventoryRecordRepository_FindByStoreAndProduct(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryRecordRepository(db)

	productID := uuid.New()
	storeID := uuid.New()
	createRecord(t, repo, productID, storeID, inventory.GeneralScope(), decimal.NewFromInt(10))
	createRecord(t, repo, productID, storeID, variantScope(t, uuid.New()), decimal.NewFromInt(3))
	createRecord(t, repo, productID, uuid.New(), inventory.GeneralScope(), decimal.NewFromInt(99))

	records, err := repo.FindByStoreAndProduct(context.Background(), storeID, productID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	// The general bucket sorts before variant buckets.
	assert.Nil(t, records[0].VariantID)
	assert.NotNil(t, records[1].VariantID)
}

func TestInventoryRecordRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryRecordRepository(db)
	ctx := context.Background()

	record := createRecord(t, repo, uuid.New(), uuid.New(), inventory.GeneralScope(), decimal.NewFromInt(5))

	_, _, err := record.Apply(decimal.NewFromInt(7))
	require.NoError(t, err)
	require.NoError(t, repo.SaveWithLock(ctx, record))

	reloaded, err := repo.FindByID(ctx, record.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(12).Equal(reloaded.Quantity))
	assert.Equal(t, 2, reloaded.Version)

	// Saving again without a fresh Apply replays a stale version.
	err = repo.SaveWithLock(ctx, record)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestInventoryRecordRepository_Summarize(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryRecordRepository(db)
	ctx := context.Background()

	productA := uuid.New()
	productB := uuid.New()
	storeA := uuid.New()
	storeB := uuid.New()

	createRecord(t, repo, productA, storeA, inventory.GeneralScope(), decimal.NewFromInt(10))
	createRecord(t, repo, productA, storeA, variantScope(t, uuid.New()), decimal.NewFromFloat(2.5))
	createRecord(t, repo, productB, storeB, inventory.GeneralScope(), decimal.NewFromInt(7))

	summary, err := repo.Summarize(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(3), summary.RecordCount)
	assert.Equal(t, int64(2), summary.ProductCount)
	assert.True(t, decimal.NewFromFloat(19.5).Equal(summary.TotalQuantity))

	summary, err = repo.Summarize(ctx, &storeB)
	require.NoError(t, err)
	assert.Equal(t, int64(1), summary.RecordCount)
	assert.True(t, decimal.NewFromInt(7).Equal(summary.TotalQuantity))
}

func TestInventoryRecordRepository_FindBelowThreshold(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryRecordRepository(db)

	storeID := uuid.New()
	createRecord(t, repo, uuid.New(), storeID, inventory.GeneralScope(), decimal.NewFromInt(2))
	createRecord(t, repo, uuid.New(), storeID, inventory.GeneralScope(), decimal.NewFromInt(50))

	records, err := repo.FindBelowThreshold(context.Background(), decimal.NewFromInt(5), shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, decimal.NewFromInt(2).Equal(records[0].Quantity))
}

func TestInventoryTransactionRepository_FindByOrder(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryTransactionRepository(db)
	ctx := context.Background()

	orderID := uuid.New()
	productID := uuid.New()
	storeID := uuid.New()
	base := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)

	// The sale is inserted first but occurred later; the listing must
	// come back in occurred_at order, not insertion order.
	second, err := inventory.NewInventoryTransaction(
		inventory.KindSale, productID, storeID, inventory.GeneralScope(),
		decimal.NewFromInt(-4), decimal.NewFromInt(10), decimal.NewFromInt(6))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, second.WithOrderID(orderID).WithOccurredAt(base.Add(time.Minute))))

	first, err := inventory.NewInventoryTransaction(
		inventory.KindPurchase, productID, storeID, inventory.GeneralScope(),
		decimal.NewFromInt(10), decimal.Zero, decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, first.WithOrderID(orderID).WithOccurredAt(base)))

	// An entry for an unrelated order must not leak in.
	other, err := inventory.NewInventoryTransaction(
		inventory.KindPurchase, productID, storeID, inventory.GeneralScope(),
		decimal.NewFromInt(1), decimal.Zero, decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, other.WithOrderID(uuid.New())))

	entries, err := repo.FindByOrder(ctx, orderID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, inventory.KindPurchase, entries[0].Kind)
	assert.Equal(t, inventory.KindSale, entries[1].Kind)
}

func TestInventoryTransactionRepository_FindAllByKind(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormInventoryTransactionRepository(db)
	ctx := context.Background()

	productID := uuid.New()
	storeID := uuid.New()

	for _, kind := range []inventory.TransactionKind{inventory.KindPurchase, inventory.KindSample} {
		delta := decimal.NewFromInt(5)
		if kind.IsDecrease() {
			delta = delta.Neg()
		}
		entry, err := inventory.NewInventoryTransaction(
			kind, productID, storeID, inventory.GeneralScope(),
			delta, decimal.NewFromInt(20), decimal.NewFromInt(20).Add(delta))
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, entry))
	}

	filter := inventory.TransactionFilter{Filter: shared.DefaultFilter(), Kind: inventory.KindSample}
	entries, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, inventory.KindSample, entries[0].Kind)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
