package transfer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apptransfer "github.com/warehousing/backend/internal/application/transfer"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/tests/testutil"
)

func newService(f *testutil.Fixture) *apptransfer.TransferService {
	return apptransfer.NewTransferService(f.Transfers, f.Scope)
}

func transferItem(productID uuid.UUID, quantity int64) apptransfer.TransferItemInput {
	return apptransfer.TransferItemInput{
		ProductID: productID,
		Quantity:  decimal.NewFromInt(quantity),
	}
}

func TestTransferService_Create(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)

	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: uuid.New(),
		ToStoreID:   uuid.New(),
		Reference:   "TR-100",
		Items:       []apptransfer.TransferItemInput{transferItem(uuid.New(), 10)},
	})
	require.NoError(t, err)

	assert.Equal(t, lookup.StatusPending, dto.Status)
	// Pending transfers never touch the ledger.
	assert.Empty(t, f.Records.Records)
	assert.Empty(t, f.Transactions.Entries)
}

func TestTransferService_Create_SameStore(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	storeID := uuid.New()

	_, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: storeID,
		ToStoreID:   storeID,
		Items:       []apptransfer.TransferItemInput{transferItem(uuid.New(), 10)},
	})
	assert.Error(t, err)
}

func TestTransferService_Complete(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	productID := uuid.New()
	from := uuid.New()
	to := uuid.New()
	f.Records.Seed(productID, from, inventory.GeneralScope(), decimal.NewFromInt(40))

	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: from,
		ToStoreID:   to,
		Items:       []apptransfer.TransferItemInput{transferItem(productID, 15)},
	})
	require.NoError(t, err)

	completed, err := svc.Complete(context.Background(), dto.ID)
	require.NoError(t, err)

	assert.Equal(t, lookup.StatusCompleted, completed.Status)
	assert.True(t, f.Records.Quantity(productID, from, inventory.GeneralScope()).Equal(decimal.NewFromInt(25)))
	assert.True(t, f.Records.Quantity(productID, to, inventory.GeneralScope()).Equal(decimal.NewFromInt(15)))

	entries, err := f.Transactions.FindByTransfer(context.Background(), dto.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, inventory.KindTransferOut, entries[0].Kind)
	assert.True(t, entries[0].QuantityChanged.Equal(decimal.NewFromInt(-15)))
	assert.Equal(t, inventory.KindTransferIn, entries[1].Kind)
	assert.True(t, entries[1].QuantityChanged.Equal(decimal.NewFromInt(15)))

	// The paired entries conserve total stock across stores.
	assert.True(t, entries[0].QuantityChanged.Add(entries[1].QuantityChanged).IsZero())
}

func TestTransferService_Complete_InsufficientSource(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	productA := uuid.New()
	productB := uuid.New()
	from := uuid.New()
	to := uuid.New()
	f.Records.Seed(productA, from, inventory.GeneralScope(), decimal.NewFromInt(100))
	f.Records.Seed(productB, from, inventory.GeneralScope(), decimal.NewFromInt(3))

	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: from,
		ToStoreID:   to,
		Items: []apptransfer.TransferItemInput{
			transferItem(productA, 10),
			transferItem(productB, 5),
		},
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), dto.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	var insufficient *inventory.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Items, 1)
	assert.Equal(t, productB, insufficient.Items[0].ProductID)

	// The covered line did not move either.
	assert.True(t, f.Records.Quantity(productA, from, inventory.GeneralScope()).Equal(decimal.NewFromInt(100)))
	assert.True(t, f.Records.Quantity(productA, to, inventory.GeneralScope()).IsZero())
	assert.Empty(t, f.Transactions.Entries)

	reloaded, err := svc.Get(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, lookup.StatusPending, reloaded.Status)
}

func TestTransferService_Complete_DuplicateLinesJointlyInsufficient(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	productID := uuid.New()
	from := uuid.New()
	to := uuid.New()
	f.Records.Seed(productID, from, inventory.GeneralScope(), decimal.NewFromInt(10))

	// Each line is covered on its own; together they need 12 of 10.
	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: from,
		ToStoreID:   to,
		Items: []apptransfer.TransferItemInput{
			transferItem(productID, 6),
			transferItem(productID, 6),
		},
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), dto.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	var insufficient *inventory.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	require.Len(t, insufficient.Items, 1)
	assert.Equal(t, productID, insufficient.Items[0].ProductID)
	assert.True(t, insufficient.Items[0].Available.Equal(decimal.NewFromInt(10)))
	assert.True(t, insufficient.Items[0].Requested.Equal(decimal.NewFromInt(12)))

	// Nothing moved at either store.
	assert.True(t, f.Records.Quantity(productID, from, inventory.GeneralScope()).Equal(decimal.NewFromInt(10)))
	assert.True(t, f.Records.Quantity(productID, to, inventory.GeneralScope()).IsZero())
	assert.Empty(t, f.Transactions.Entries)

	reloaded, err := svc.Get(context.Background(), dto.ID)
	require.NoError(t, err)
	assert.Equal(t, lookup.StatusPending, reloaded.Status)
}

func TestTransferService_Complete_Twice(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	productID := uuid.New()
	from := uuid.New()
	f.Records.Seed(productID, from, inventory.GeneralScope(), decimal.NewFromInt(40))

	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: from,
		ToStoreID:   uuid.New(),
		Items:       []apptransfer.TransferItemInput{transferItem(productID, 10)},
	})
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), dto.ID)
	require.NoError(t, err)

	_, err = svc.Complete(context.Background(), dto.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
	assert.True(t, f.Records.Quantity(productID, from, inventory.GeneralScope()).Equal(decimal.NewFromInt(30)))
}

func TestTransferService_Cancel(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)

	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: uuid.New(),
		ToStoreID:   uuid.New(),
		Items:       []apptransfer.TransferItemInput{transferItem(uuid.New(), 10)},
	})
	require.NoError(t, err)

	cancelled, err := svc.Cancel(context.Background(), dto.ID)
	require.NoError(t, err)

	assert.Equal(t, lookup.StatusCancelled, cancelled.Status)
	assert.Empty(t, f.Transactions.Entries)
}

func TestTransferService_Cancel_Completed(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	productID := uuid.New()
	from := uuid.New()
	f.Records.Seed(productID, from, inventory.GeneralScope(), decimal.NewFromInt(40))

	dto, err := svc.Create(context.Background(), apptransfer.CreateTransferCommand{
		FromStoreID: from,
		ToStoreID:   uuid.New(),
		Items:       []apptransfer.TransferItemInput{transferItem(productID, 10)},
	})
	require.NoError(t, err)
	_, err = svc.Complete(context.Background(), dto.ID)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), dto.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInvalidState))
}

func TestTransferService_List_ByStore(t *testing.T) {
	f := testutil.NewFixture()
	svc := newService(f)
	storeA := uuid.New()
	storeB := uuid.New()
	storeC := uuid.New()
	ctx := context.Background()

	_, err := svc.Create(ctx, apptransfer.CreateTransferCommand{
		FromStoreID: storeA,
		ToStoreID:   storeB,
		Items:       []apptransfer.TransferItemInput{transferItem(uuid.New(), 1)},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, apptransfer.CreateTransferCommand{
		FromStoreID: storeB,
		ToStoreID:   storeC,
		Items:       []apptransfer.TransferItemInput{transferItem(uuid.New(), 1)},
	})
	require.NoError(t, err)

	// storeB matches as source or destination.
	result, err := svc.List(ctx, apptransfer.ListTransfersQuery{StoreID: &storeB})
	require.NoError(t, err)
	assert.Len(t, result.Items, 2)

	result, err = svc.List(ctx, apptransfer.ListTransfersQuery{StoreID: &storeA})
	require.NoError(t, err)
	assert.Len(t, result.Items, 1)
}
