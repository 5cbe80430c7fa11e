package lookup

import (
	"context"

	"github.com/warehousing/backend/internal/domain/shared"
)

// Status is a reference row describing an order or transfer lifecycle state.
// The rows are seeded by migration; operational code resolves them by code
// and treats a missing row as a configuration error, never as user input.
type Status struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (Status) TableName() string {
	return "statuses"
}

// Well-known status codes.
const (
	StatusPending   = "PENDING"
	StatusCompleted = "COMPLETED"
	StatusCancelled = "CANCELLED"
	StatusDraft     = "DRAFT"
)

// TransactionKind is a reference row for a ledger mutation kind.
// Every audit entry carries one of these codes; they are resolved through
// KindLookup so that no mutation path hardcodes an id.
type TransactionKind struct {
	shared.BaseEntity
	Code string `gorm:"type:varchar(30);not null;uniqueIndex"`
	Name string `gorm:"type:varchar(100);not null"`
}

// TableName returns the table name for GORM
func (TransactionKind) TableName() string {
	return "transaction_kinds"
}

// StatusLookup resolves status reference rows by code.
type StatusLookup interface {
	// ByCode returns the status with the given code.
	// Returns shared.ErrConfiguration if the code is not seeded.
	ByCode(ctx context.Context, code string) (*Status, error)
}

// KindLookup resolves transaction kind reference rows by code.
type KindLookup interface {
	// ByCode returns the transaction kind with the given code.
	// Returns shared.ErrConfiguration if the code is not seeded.
	ByCode(ctx context.Context, code string) (*TransactionKind, error)
}
