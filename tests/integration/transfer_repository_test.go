package integration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/domain/transfer"
	"github.com/warehousing/backend/internal/infrastructure/persistence"
)

func newTransfer(t *testing.T, from, to uuid.UUID, reference string) *transfer.StoreTransfer {
	t.Helper()

	tr, err := transfer.NewStoreTransfer(from, to, reference, []transfer.TransferItem{
		{ProductID: uuid.New(), Quantity: decimal.NewFromInt(5)},
	})
	require.NoError(t, err)
	return tr
}

func TestTransferRepository_CreateAndFindByID(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormTransferRepository(db)
	ctx := context.Background()

	tr := newTransfer(t, uuid.New(), uuid.New(), "TR-3001")
	require.NoError(t, repo.Create(ctx, tr))

	found, err := repo.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, lookup.StatusPending, found.Status)
	assert.Len(t, found.Items, 1)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestTransferRepository_FindAllByStore(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormTransferRepository(db)
	ctx := context.Background()

	storeID := uuid.New()
	outbound := newTransfer(t, storeID, uuid.New(), "TR-3002")
	inbound := newTransfer(t, uuid.New(), storeID, "TR-3003")
	unrelated := newTransfer(t, uuid.New(), uuid.New(), "TR-3004")
	for _, tr := range []*transfer.StoreTransfer{outbound, inbound, unrelated} {
		require.NoError(t, repo.Create(ctx, tr))
	}

	filter := transfer.TransferFilter{Filter: shared.DefaultFilter(), StoreID: &storeID}
	transfers, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, transfers, 2)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTransferRepository_SaveWithLock(t *testing.T) {
	db := newTestDB(t)
	repo := persistence.NewGormTransferRepository(db)
	ctx := context.Background()

	tr := newTransfer(t, uuid.New(), uuid.New(), "TR-3005")
	require.NoError(t, repo.Create(ctx, tr))

	require.NoError(t, tr.MarkCompleted())
	require.NoError(t, repo.SaveWithLock(ctx, tr))

	reloaded, err := repo.FindByID(ctx, tr.ID)
	require.NoError(t, err)
	assert.Equal(t, lookup.StatusCompleted, reloaded.Status)
	assert.Equal(t, 2, reloaded.Version)

	err = repo.SaveWithLock(ctx, tr)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestLookupRepositories_ByCode(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	statuses := persistence.NewGormStatusLookup(db)
	status, err := statuses.ByCode(ctx, lookup.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, lookup.StatusPending, status.Code)

	_, err = statuses.ByCode(ctx, "SHIPPED")
	assert.ErrorIs(t, err, shared.ErrConfiguration)

	kinds := persistence.NewGormKindLookup(db)
	kind, err := kinds.ByCode(ctx, "PURCHASE")
	require.NoError(t, err)
	assert.Equal(t, "PURCHASE", kind.Code)

	_, err = kinds.ByCode(ctx, "NOT_A_KIND")
	assert.ErrorIs(t, err, shared.ErrConfiguration)
}
