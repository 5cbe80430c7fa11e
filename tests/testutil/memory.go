// Package testutil provides in-memory repository implementations for
// exercising application services without a database. The fakes honor the
// same contracts as the GORM repositories: not-found sentinels, version
// checks on SaveWithLock, and configuration errors for unseeded lookups.
package testutil

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/warehousing/backend/internal/application/inventory"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/order"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/domain/transfer"
)

// MemoryInventoryRecords is an in-memory InventoryRecordRepository.
type MemoryInventoryRecords struct {
	Records map[string]*inventory.InventoryRecord
}

// NewMemoryInventoryRecords creates an empty record store.
func NewMemoryInventoryRecords() *MemoryInventoryRecords {
	return &MemoryInventoryRecords{Records: make(map[string]*inventory.InventoryRecord)}
}

func recordKey(productID, storeID uuid.UUID, scope inventory.StockScope) string {
	return productID.String() + "|" + storeID.String() + "|" + scope.String()
}

// Quantity reads the stored quantity for a key, zero when absent.
func (m *MemoryInventoryRecords) Quantity(productID, storeID uuid.UUID, scope inventory.StockScope) decimal.Decimal {
	if r, ok := m.Records[recordKey(productID, storeID, scope)]; ok {
		return r.Quantity
	}
	return decimal.Zero
}

// Seed stores a record at the given quantity without going through the ledger.
func (m *MemoryInventoryRecords) Seed(productID, storeID uuid.UUID, scope inventory.StockScope, quantity decimal.Decimal) {
	record, err := inventory.NewInventoryRecord(productID, storeID, scope)
	if err != nil {
		panic(err)
	}
	record.Quantity = quantity
	m.Records[recordKey(productID, storeID, scope)] = record
}

func (m *MemoryInventoryRecords) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryRecord, error) {
	for _, r := range m.Records {
		if r.ID == id {
			copied := *r
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *MemoryInventoryRecords) FindByKey(_ context.Context, productID, storeID uuid.UUID, scope inventory.StockScope) (*inventory.InventoryRecord, error) {
	r, ok := m.Records[recordKey(productID, storeID, scope)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	copied := *r
	return &copied, nil
}

func (m *MemoryInventoryRecords) FindByStoreAndProduct(_ context.Context, storeID, productID uuid.UUID) ([]inventory.InventoryRecord, error) {
	var out []inventory.InventoryRecord
	for _, r := range m.Records {
		if r.StoreID == storeID && r.ProductID == productID {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *MemoryInventoryRecords) FindAll(_ context.Context, filter inventory.RecordFilter) ([]inventory.InventoryRecord, error) {
	var out []inventory.InventoryRecord
	for _, r := range m.Records {
		if filter.ProductID != nil && r.ProductID != *filter.ProductID {
			continue
		}
		if filter.StoreID != nil && r.StoreID != *filter.StoreID {
			continue
		}
		if filter.GeneralOnly && r.VariantID != nil {
			continue
		}
		out = append(out, *r)
	}
	return out, nil
}

func (m *MemoryInventoryRecords) Count(ctx context.Context, filter inventory.RecordFilter) (int64, error) {
	records, _ := m.FindAll(ctx, filter)
	return int64(len(records)), nil
}

func (m *MemoryInventoryRecords) FindBelowThreshold(_ context.Context, threshold decimal.Decimal, _ shared.Filter) ([]inventory.InventoryRecord, error) {
	var out []inventory.InventoryRecord
	for _, r := range m.Records {
		if r.Quantity.LessThan(threshold) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *MemoryInventoryRecords) Summarize(_ context.Context, storeID *uuid.UUID) (*inventory.StockSummary, error) {
	summary := &inventory.StockSummary{TotalQuantity: decimal.Zero}
	products := make(map[uuid.UUID]bool)
	for _, r := range m.Records {
		if storeID != nil && r.StoreID != *storeID {
			continue
		}
		summary.RecordCount++
		products[r.ProductID] = true
		summary.TotalQuantity = summary.TotalQuantity.Add(r.Quantity)
	}
	summary.ProductCount = int64(len(products))
	return summary, nil
}

func (m *MemoryInventoryRecords) Create(_ context.Context, record *inventory.InventoryRecord) error {
	key := recordKey(record.ProductID, record.StoreID, record.Scope())
	if _, exists := m.Records[key]; exists {
		return shared.ErrAlreadyExists
	}
	copied := *record
	m.Records[key] = &copied
	return nil
}

func (m *MemoryInventoryRecords) SaveWithLock(_ context.Context, record *inventory.InventoryRecord) error {
	key := recordKey(record.ProductID, record.StoreID, record.Scope())
	existing, ok := m.Records[key]
	if !ok {
		return shared.ErrNotFound
	}
	if existing.Version != record.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	copied := *record
	m.Records[key] = &copied
	return nil
}

// MemoryInventoryTransactions is an in-memory, append-only audit trail.
type MemoryInventoryTransactions struct {
	Entries []inventory.InventoryTransaction
}

// NewMemoryInventoryTransactions creates an empty audit trail.
func NewMemoryInventoryTransactions() *MemoryInventoryTransactions {
	return &MemoryInventoryTransactions{}
}

func (m *MemoryInventoryTransactions) Create(_ context.Context, tx *inventory.InventoryTransaction) error {
	m.Entries = append(m.Entries, *tx)
	return nil
}

func (m *MemoryInventoryTransactions) FindByID(_ context.Context, id uuid.UUID) (*inventory.InventoryTransaction, error) {
	for i := range m.Entries {
		if m.Entries[i].ID == id {
			copied := m.Entries[i]
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *MemoryInventoryTransactions) FindByOrder(_ context.Context, orderID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var out []inventory.InventoryTransaction
	for _, e := range m.Entries {
		if e.OrderID != nil && *e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemoryInventoryTransactions) FindByTransfer(_ context.Context, transferID uuid.UUID) ([]inventory.InventoryTransaction, error) {
	var out []inventory.InventoryTransaction
	for _, e := range m.Entries {
		if e.TransferID != nil && *e.TransferID == transferID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *MemoryInventoryTransactions) FindAll(_ context.Context, filter inventory.TransactionFilter) ([]inventory.InventoryTransaction, error) {
	var out []inventory.InventoryTransaction
	for _, e := range m.Entries {
		if filter.ProductID != nil && e.ProductID != *filter.ProductID {
			continue
		}
		if filter.StoreID != nil && (e.StoreID == nil || *e.StoreID != *filter.StoreID) {
			continue
		}
		if filter.VariantID != nil && (e.VariantID == nil || *e.VariantID != *filter.VariantID) {
			continue
		}
		if filter.Kind != "" && e.Kind != filter.Kind {
			continue
		}
		if filter.OrderID != nil && (e.OrderID == nil || *e.OrderID != *filter.OrderID) {
			continue
		}
		if filter.TransferID != nil && (e.TransferID == nil || *e.TransferID != *filter.TransferID) {
			continue
		}
		if filter.From != nil && e.OccurredAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !e.OccurredAt.Before(*filter.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (m *MemoryInventoryTransactions) Count(ctx context.Context, filter inventory.TransactionFilter) (int64, error) {
	entries, _ := m.FindAll(ctx, filter)
	return int64(len(entries)), nil
}

// MemoryOrders is an in-memory OrderRepository.
type MemoryOrders struct {
	Orders map[uuid.UUID]*order.Order
}

// NewMemoryOrders creates an empty order store.
func NewMemoryOrders() *MemoryOrders {
	return &MemoryOrders{Orders: make(map[uuid.UUID]*order.Order)}
}

func copyOrder(o *order.Order) *order.Order {
	copied := *o
	copied.Items = make([]order.OrderItem, len(o.Items))
	copy(copied.Items, o.Items)
	return &copied
}

func (m *MemoryOrders) FindByID(_ context.Context, id uuid.UUID) (*order.Order, error) {
	o, ok := m.Orders[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return copyOrder(o), nil
}

func (m *MemoryOrders) FindAll(_ context.Context, filter order.OrderFilter) ([]order.Order, error) {
	var out []order.Order
	for _, o := range m.Orders {
		if filter.Kind != "" && o.Kind != filter.Kind {
			continue
		}
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		out = append(out, *copyOrder(o))
	}
	return out, nil
}

func (m *MemoryOrders) Count(ctx context.Context, filter order.OrderFilter) (int64, error) {
	orders, _ := m.FindAll(ctx, filter)
	return int64(len(orders)), nil
}

func (m *MemoryOrders) Create(_ context.Context, o *order.Order) error {
	if _, exists := m.Orders[o.ID]; exists {
		return shared.ErrAlreadyExists
	}
	m.Orders[o.ID] = copyOrder(o)
	return nil
}

func (m *MemoryOrders) SaveWithLock(_ context.Context, o *order.Order) error {
	existing, ok := m.Orders[o.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if existing.Version != o.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	m.Orders[o.ID] = copyOrder(o)
	return nil
}

// MemoryTransfers is an in-memory StoreTransferRepository.
type MemoryTransfers struct {
	Transfers map[uuid.UUID]*transfer.StoreTransfer
}

// NewMemoryTransfers creates an empty transfer store.
func NewMemoryTransfers() *MemoryTransfers {
	return &MemoryTransfers{Transfers: make(map[uuid.UUID]*transfer.StoreTransfer)}
}

func copyTransfer(t *transfer.StoreTransfer) *transfer.StoreTransfer {
	copied := *t
	copied.Items = make([]transfer.TransferItem, len(t.Items))
	copy(copied.Items, t.Items)
	return &copied
}

func (m *MemoryTransfers) FindByID(_ context.Context, id uuid.UUID) (*transfer.StoreTransfer, error) {
	t, ok := m.Transfers[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return copyTransfer(t), nil
}

func (m *MemoryTransfers) FindAll(_ context.Context, filter transfer.TransferFilter) ([]transfer.StoreTransfer, error) {
	var out []transfer.StoreTransfer
	for _, t := range m.Transfers {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.StoreID != nil && t.FromStoreID != *filter.StoreID && t.ToStoreID != *filter.StoreID {
			continue
		}
		out = append(out, *copyTransfer(t))
	}
	return out, nil
}

func (m *MemoryTransfers) Count(ctx context.Context, filter transfer.TransferFilter) (int64, error) {
	transfers, _ := m.FindAll(ctx, filter)
	return int64(len(transfers)), nil
}

func (m *MemoryTransfers) Create(_ context.Context, t *transfer.StoreTransfer) error {
	if _, exists := m.Transfers[t.ID]; exists {
		return shared.ErrAlreadyExists
	}
	m.Transfers[t.ID] = copyTransfer(t)
	return nil
}

func (m *MemoryTransfers) SaveWithLock(_ context.Context, t *transfer.StoreTransfer) error {
	existing, ok := m.Transfers[t.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if existing.Version != t.Version-1 {
		return shared.ErrConcurrencyConflict
	}
	m.Transfers[t.ID] = copyTransfer(t)
	return nil
}

// MemoryStatuses resolves status codes from a seeded map.
type MemoryStatuses struct {
	Rows map[string]*lookup.Status
}

// NewMemoryStatuses seeds the well-known status rows.
func NewMemoryStatuses() *MemoryStatuses {
	m := &MemoryStatuses{Rows: make(map[string]*lookup.Status)}
	for _, code := range []string{lookup.StatusPending, lookup.StatusCompleted, lookup.StatusCancelled, lookup.StatusDraft} {
		m.Rows[code] = &lookup.Status{
			BaseEntity: shared.NewBaseEntity(),
			Code:       code,
			Name:       code,
		}
	}
	return m
}

func (m *MemoryStatuses) ByCode(_ context.Context, code string) (*lookup.Status, error) {
	row, ok := m.Rows[code]
	if !ok {
		return nil, shared.ErrConfiguration
	}
	return row, nil
}

// MemoryKinds resolves transaction kind codes from a seeded map.
type MemoryKinds struct {
	Rows map[string]*lookup.TransactionKind
}

// NewMemoryKinds seeds every defined transaction kind.
func NewMemoryKinds() *MemoryKinds {
	m := &MemoryKinds{Rows: make(map[string]*lookup.TransactionKind)}
	for _, kind := range inventory.AllKinds() {
		code := kind.String()
		m.Rows[code] = &lookup.TransactionKind{
			BaseEntity: shared.NewBaseEntity(),
			Code:       code,
			Name:       code,
		}
	}
	return m
}

// NewEmptyKinds returns a lookup with no seeded rows, for exercising
// configuration error paths.
func NewEmptyKinds() *MemoryKinds {
	return &MemoryKinds{Rows: make(map[string]*lookup.TransactionKind)}
}

func (m *MemoryKinds) ByCode(_ context.Context, code string) (*lookup.TransactionKind, error) {
	row, ok := m.Rows[code]
	if !ok {
		return nil, shared.ErrConfiguration
	}
	return row, nil
}

// Fixture bundles every in-memory repository behind a no-op transaction
// scope, ready for wiring into application services.
type Fixture struct {
	Records      *MemoryInventoryRecords
	Transactions *MemoryInventoryTransactions
	Orders       *MemoryOrders
	Transfers    *MemoryTransfers
	Statuses     *MemoryStatuses
	Kinds        *MemoryKinds
	Scope        *appinv.NoOpTransactionScope
}

// NewFixture creates a fixture with seeded lookups and empty stores.
func NewFixture() *Fixture {
	f := &Fixture{
		Records:      NewMemoryInventoryRecords(),
		Transactions: NewMemoryInventoryTransactions(),
		Orders:       NewMemoryOrders(),
		Transfers:    NewMemoryTransfers(),
		Statuses:     NewMemoryStatuses(),
		Kinds:        NewMemoryKinds(),
	}
	f.Scope = &appinv.NoOpTransactionScope{
		RecordRepo:      f.Records,
		TransactionRepo: f.Transactions,
		OrderRepo:       f.Orders,
		TransferRepo:    f.Transfers,
		StatusLookup:    f.Statuses,
		KindLookup:      f.Kinds,
	}
	return f
}

var (
	_ inventory.InventoryRecordRepository      = (*MemoryInventoryRecords)(nil)
	_ inventory.InventoryTransactionRepository = (*MemoryInventoryTransactions)(nil)
	_ order.OrderRepository                    = (*MemoryOrders)(nil)
	_ transfer.StoreTransferRepository         = (*MemoryTransfers)(nil)
	_ lookup.StatusLookup                      = (*MemoryStatuses)(nil)
	_ lookup.KindLookup                        = (*MemoryKinds)(nil)
)
