package inventory

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/shared"
)

// Movement captures the outcome of one ledger mutation: the record that was
// touched and the before/after quantities the audit entry must carry.
type Movement struct {
	Record *InventoryRecord
	Before decimal.Decimal
	After  decimal.Decimal
}

// Delta returns the signed quantity change of the movement.
func (m Movement) Delta() decimal.Decimal {
	return m.After.Sub(m.Before)
}

// Ledger is the single mutation path for on-hand quantity. It must be
// constructed with repositories bound to the ambient transaction so that
// an aborted operation rolls back every touched record.
type Ledger struct {
	records InventoryRecordRepository
}

// NewLedger creates a ledger over transaction-scoped repositories.
func NewLedger(records InventoryRecordRepository) *Ledger {
	return &Ledger{records: records}
}

// Get returns the current quantity for a key. A missing record reads as
// zero and is not created.
func (l *Ledger) Get(ctx context.Context, productID, storeID uuid.UUID, scope StockScope) (decimal.Decimal, error) {
	record, err := l.records.FindByKey(ctx, productID, storeID, scope)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	return record.Quantity, nil
}

// Adjust applies a signed delta to the record for a key, creating the
// record at zero if it does not exist yet. A delta that would drive the
// quantity negative fails with InsufficientStockError and nothing is
// written. Exactly one row is mutated per call; the caller pairs the
// returned movement with a Recorder entry in the same transaction.
func (l *Ledger) Adjust(ctx context.Context, productID, storeID uuid.UUID, scope StockScope, delta decimal.Decimal) (Movement, error) {
	record, err := l.records.FindByKey(ctx, productID, storeID, scope)
	created := false
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return Movement{}, err
		}
		record, err = NewInventoryRecord(productID, storeID, scope)
		if err != nil {
			return Movement{}, err
		}
		created = true
	}

	before, after, err := record.Apply(delta)
	if err != nil {
		return Movement{}, err
	}

	if created {
		if err := l.records.Create(ctx, record); err != nil {
			return Movement{}, err
		}
	} else {
		if err := l.records.SaveWithLock(ctx, record); err != nil {
			return Movement{}, err
		}
	}

	return Movement{Record: record, Before: before, After: after}, nil
}
