package inventory

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Entry describes one audit trail entry to be recorded for a movement.
type Entry struct {
	Kind       TransactionKind
	Movement   Movement
	UnitCost   decimal.Decimal
	Notes      string
	OrderID    *uuid.UUID
	TransferID *uuid.UUID
}

// Recorder appends audit entries for ledger movements. It must share the
// transaction of the Ledger that produced the movement so a rollback
// removes both the mutation and its entry, or neither.
type Recorder struct {
	transactions InventoryTransactionRepository
}

// NewRecorder creates a recorder over a transaction-scoped repository.
func NewRecorder(transactions InventoryTransactionRepository) *Recorder {
	return &Recorder{transactions: transactions}
}

// Record appends one entry for a movement. The before/after values are
// taken from the movement, so the balance invariant holds by construction.
func (r *Recorder) Record(ctx context.Context, e Entry) (*InventoryTransaction, error) {
	record := e.Movement.Record
	tx, err := NewInventoryTransaction(
		e.Kind,
		record.ProductID,
		record.StoreID,
		record.Scope(),
		e.Movement.Delta(),
		e.Movement.Before,
		e.Movement.After,
	)
	if err != nil {
		return nil, err
	}

	tx.WithUnitCost(e.UnitCost).WithNotes(e.Notes)
	if e.OrderID != nil {
		tx.WithOrderID(*e.OrderID)
	}
	if e.TransferID != nil {
		tx.WithTransferID(*e.TransferID)
	}

	if err := r.transactions.Create(ctx, tx); err != nil {
		return nil, err
	}
	return tx, nil
}
