package inventory

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInventoryTransaction(t *testing.T) {
	productID := uuid.New()
	storeID := uuid.New()

	tx, err := NewInventoryTransaction(
		KindSale,
		productID,
		storeID,
		GeneralScope(),
		decimal.NewFromInt(-5),
		decimal.NewFromInt(10),
		decimal.NewFromInt(5),
	)
	require.NoError(t, err)

	assert.Equal(t, productID, tx.ProductID)
	require.NotNil(t, tx.StoreID)
	assert.Equal(t, storeID, *tx.StoreID)
	assert.Nil(t, tx.VariantID)
	assert.Equal(t, KindSale, tx.Kind)
	assert.True(t, tx.IsBalanced())
	assert.False(t, tx.OccurredAt.IsZero())
}

func TestNewInventoryTransaction_RejectsUnbalancedEntry(t *testing.T) {
	_, err := NewInventoryTransaction(
		KindPurchase,
		uuid.New(),
		uuid.New(),
		GeneralScope(),
		decimal.NewFromInt(5),
		decimal.NewFromInt(10),
		decimal.NewFromInt(14),
	)
	assert.Error(t, err)
}

func TestNewInventoryTransaction_RejectsInvalidKind(t *testing.T) {
	_, err := NewInventoryTransaction(
		TransactionKind("BOGUS"),
		uuid.New(),
		uuid.New(),
		GeneralScope(),
		decimal.NewFromInt(5),
		decimal.NewFromInt(0),
		decimal.NewFromInt(5),
	)
	assert.Error(t, err)
}

func TestNewInventoryTransaction_RejectsZeroChange(t *testing.T) {
	_, err := NewInventoryTransaction(
		KindAdjustmentPlus,
		uuid.New(),
		uuid.New(),
		GeneralScope(),
		decimal.Zero,
		decimal.NewFromInt(10),
		decimal.NewFromInt(10),
	)
	assert.Error(t, err)
}

func TestInventoryTransaction_FluentSetters(t *testing.T) {
	orderID := uuid.New()
	transferID := uuid.New()
	variantID := uuid.New()
	scope, _ := VariantScope(variantID)

	tx, err := NewInventoryTransaction(
		KindAllocation,
		uuid.New(),
		uuid.New(),
		scope,
		decimal.NewFromInt(8),
		decimal.NewFromInt(0),
		decimal.NewFromInt(8),
	)
	require.NoError(t, err)

	tx.WithUnitCost(decimal.NewFromFloat(2.5)).
		WithNotes("split from general").
		WithOrderID(orderID).
		WithTransferID(transferID)

	assert.True(t, tx.UnitCost.Equal(decimal.NewFromFloat(2.5)))
	assert.Equal(t, "split from general", tx.Notes)
	require.NotNil(t, tx.OrderID)
	assert.Equal(t, orderID, *tx.OrderID)
	require.NotNil(t, tx.TransferID)
	assert.Equal(t, transferID, *tx.TransferID)
	assert.True(t, tx.Scope().IsVariant())
}

func TestTransactionKind_IsValid(t *testing.T) {
	for _, kind := range AllKinds() {
		assert.True(t, kind.IsValid(), "kind %s should be valid", kind)
	}
	assert.False(t, TransactionKind("UNKNOWN").IsValid())
	assert.Len(t, AllKinds(), 12)
}

func TestTransactionKind_Direction(t *testing.T) {
	increases := []TransactionKind{KindPurchase, KindReturnIn, KindAdjustmentPlus, KindTransferIn}
	decreases := []TransactionKind{KindSale, KindReturnOut, KindAdjustmentMinus, KindTransferOut, KindDamageLoss, KindSample}

	for _, kind := range increases {
		assert.True(t, kind.IsIncrease(), "kind %s", kind)
		assert.False(t, kind.IsDecrease(), "kind %s", kind)
	}
	for _, kind := range decreases {
		assert.True(t, kind.IsDecrease(), "kind %s", kind)
		assert.False(t, kind.IsIncrease(), "kind %s", kind)
	}

	// Allocation and recall carry their direction in the signed quantity.
	for _, kind := range []TransactionKind{KindAllocation, KindRecall} {
		assert.False(t, kind.IsIncrease(), "kind %s", kind)
		assert.False(t, kind.IsDecrease(), "kind %s", kind)
	}
}
