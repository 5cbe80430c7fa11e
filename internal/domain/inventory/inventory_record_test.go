package inventory

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warehousing/backend/internal/domain/shared"
)

func TestNewInventoryRecord(t *testing.T) {
	productID := uuid.New()
	storeID := uuid.New()

	record, err := NewInventoryRecord(productID, storeID, GeneralScope())
	require.NoError(t, err)

	assert.Equal(t, productID, record.ProductID)
	assert.Equal(t, storeID, record.StoreID)
	assert.Nil(t, record.VariantID)
	assert.True(t, record.Quantity.IsZero())
	assert.Equal(t, 1, record.Version)
}

func TestNewInventoryRecord_VariantScope(t *testing.T) {
	variantID := uuid.New()
	scope, _ := VariantScope(variantID)

	record, err := NewInventoryRecord(uuid.New(), uuid.New(), scope)
	require.NoError(t, err)

	require.NotNil(t, record.VariantID)
	assert.Equal(t, variantID, *record.VariantID)
	assert.True(t, record.Scope().IsVariant())
}

func TestNewInventoryRecord_Validation(t *testing.T) {
	_, err := NewInventoryRecord(uuid.Nil, uuid.New(), GeneralScope())
	assert.Error(t, err)

	_, err = NewInventoryRecord(uuid.New(), uuid.Nil, GeneralScope())
	assert.Error(t, err)
}

func TestInventoryRecord_Apply_Credit(t *testing.T) {
	record, _ := NewInventoryRecord(uuid.New(), uuid.New(), GeneralScope())

	before, after, err := record.Apply(decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, before.IsZero())
	assert.True(t, after.Equal(decimal.NewFromInt(10)))
	assert.True(t, record.Quantity.Equal(decimal.NewFromInt(10)))
	assert.Equal(t, 2, record.Version)
}

func TestInventoryRecord_Apply_Debit(t *testing.T) {
	record, _ := NewInventoryRecord(uuid.New(), uuid.New(), GeneralScope())
	_, _, err := record.Apply(decimal.NewFromInt(10))
	require.NoError(t, err)

	before, after, err := record.Apply(decimal.NewFromInt(-4))
	require.NoError(t, err)

	assert.True(t, before.Equal(decimal.NewFromInt(10)))
	assert.True(t, after.Equal(decimal.NewFromInt(6)))
}

func TestInventoryRecord_Apply_RejectsNegativeResult(t *testing.T) {
	record, _ := NewInventoryRecord(uuid.New(), uuid.New(), GeneralScope())
	_, _, err := record.Apply(decimal.NewFromInt(5))
	require.NoError(t, err)
	versionBefore := record.Version

	_, _, err = record.Apply(decimal.NewFromInt(-8))
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))

	var shortfall *InsufficientStockError
	require.True(t, errors.As(err, &shortfall))
	require.Len(t, shortfall.Items, 1)
	assert.True(t, shortfall.Items[0].Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, shortfall.Items[0].Requested.Equal(decimal.NewFromInt(8)))

	// A rejected debit leaves the record untouched.
	assert.True(t, record.Quantity.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, versionBefore, record.Version)
}

func TestInventoryRecord_CanFulfill(t *testing.T) {
	record, _ := NewInventoryRecord(uuid.New(), uuid.New(), GeneralScope())
	_, _, err := record.Apply(decimal.NewFromInt(10))
	require.NoError(t, err)

	assert.True(t, record.CanFulfill(decimal.NewFromInt(10)))
	assert.True(t, record.CanFulfill(decimal.NewFromInt(3)))
	assert.False(t, record.CanFulfill(decimal.NewFromInt(11)))
}
