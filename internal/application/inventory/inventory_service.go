package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/shared"
)

// InventoryService exposes ledger reads and manual stock mutations.
// Reads go through plain repositories; every mutation runs inside a
// transaction scope so the record update and its audit entry commit
// together.
type InventoryService struct {
	records      inventory.InventoryRecordRepository
	transactions inventory.InventoryTransactionRepository
	scope        TransactionScope
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(
	records inventory.InventoryRecordRepository,
	transactions inventory.InventoryTransactionRepository,
	scope TransactionScope,
) *InventoryService {
	return &InventoryService{
		records:      records,
		transactions: transactions,
		scope:        scope,
	}
}

// GetStock returns the quantity for one ledger key. A key that has never
// been written reads as zero; no record is created.
func (s *InventoryService) GetStock(ctx context.Context, q StockQuery) (*RecordDTO, error) {
	if q.ProductID == uuid.Nil || q.StoreID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}

	record, err := s.records.FindByKey(ctx, q.ProductID, q.StoreID, q.Scope())
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			dto := RecordDTO{
				ProductID: q.ProductID,
				StoreID:   q.StoreID,
				VariantID: q.VariantID,
				Quantity:  decimal.Zero,
			}
			return &dto, nil
		}
		return nil, err
	}

	dto := NewRecordDTO(record)
	return &dto, nil
}

// ListInventory lists inventory records with pagination.
func (s *InventoryService) ListInventory(ctx context.Context, q ListQuery) (*shared.Paginated[RecordDTO], error) {
	filter := inventory.RecordFilter{
		Filter:    shared.DefaultFilter(),
		ProductID: q.ProductID,
		StoreID:   q.StoreID,
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	records, err := s.records.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.records.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]RecordDTO, len(records))
	for i := range records {
		dtos[i] = NewRecordDTO(&records[i])
	}
	result := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// ListLowStock lists records whose quantity is below the threshold.
func (s *InventoryService) ListLowStock(ctx context.Context, threshold decimal.Decimal, page, pageSize int) ([]RecordDTO, error) {
	filter := shared.DefaultFilter()
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = pageSize
	}

	records, err := s.records.FindBelowThreshold(ctx, threshold, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]RecordDTO, len(records))
	for i := range records {
		dtos[i] = NewRecordDTO(&records[i])
	}
	return dtos, nil
}

// GetSummary aggregates the ledger, optionally narrowed to one store.
func (s *InventoryService) GetSummary(ctx context.Context, storeID *uuid.UUID) (*SummaryDTO, error) {
	summary, err := s.records.Summarize(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return &SummaryDTO{
		RecordCount:   summary.RecordCount,
		ProductCount:  summary.ProductCount,
		TotalQuantity: summary.TotalQuantity,
	}, nil
}

// ListTransactions lists audit trail entries with pagination.
func (s *InventoryService) ListTransactions(ctx context.Context, q TransactionQuery) (*shared.Paginated[TransactionDTO], error) {
	filter := inventory.TransactionFilter{
		Filter:     shared.DefaultFilter(),
		ProductID:  q.ProductID,
		StoreID:    q.StoreID,
		VariantID:  q.VariantID,
		OrderID:    q.OrderID,
		TransferID: q.TransferID,
		From:       q.From,
		To:         q.To,
	}
	if q.Kind != "" {
		kind := inventory.TransactionKind(q.Kind)
		if !kind.IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("unknown transaction kind: %s", q.Kind))
		}
		filter.Kind = kind
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	entries, err := s.transactions.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.transactions.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]TransactionDTO, len(entries))
	for i := range entries {
		dtos[i] = NewTransactionDTO(&entries[i])
	}
	result := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Adjust applies a signed manual adjustment to one record and records it
// as ADJUSTMENT_PLUS or ADJUSTMENT_MINUS. A delta that would drive the
// quantity negative fails and writes nothing.
func (s *InventoryService) Adjust(ctx context.Context, cmd AdjustCommand) (*MutationResult, error) {
	if err := validateAdjust(cmd); err != nil {
		return nil, err
	}

	var result *MutationResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		result, err = applyAdjust(ctx, repos, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkAdjust applies several manual adjustments in one transaction. The
// adjustments commit together; one failing item discards them all.
func (s *InventoryService) BulkAdjust(ctx context.Context, cmd BulkAdjustCommand) ([]MutationResult, error) {
	if len(cmd.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "bulk adjustment requires at least one item")
	}
	for _, item := range cmd.Items {
		if err := validateAdjust(item); err != nil {
			return nil, err
		}
	}

	var results []MutationResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		results = make([]MutationResult, 0, len(cmd.Items))
		for _, item := range cmd.Items {
			result, err := applyAdjust(ctx, repos, item)
			if err != nil {
				return err
			}
			results = append(results, *result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func validateAdjust(cmd AdjustCommand) error {
	if cmd.ProductID == uuid.Nil || cmd.StoreID == uuid.Nil {
		return shared.ErrInvalidInput
	}
	if cmd.Delta.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "adjustment delta must be non-zero")
	}
	return nil
}

func applyAdjust(ctx context.Context, repos TransactionalRepositories, cmd AdjustCommand) (*MutationResult, error) {
	kind := inventory.KindAdjustmentPlus
	if cmd.Delta.IsNegative() {
		kind = inventory.KindAdjustmentMinus
	}
	if err := resolveKind(ctx, repos, kind); err != nil {
		return nil, err
	}

	ledger := inventory.NewLedger(repos.Records())
	recorder := inventory.NewRecorder(repos.Transactions())

	scope := inventory.ScopeFromNullableID(cmd.VariantID)
	mv, err := ledger.Adjust(ctx, cmd.ProductID, cmd.StoreID, scope, cmd.Delta)
	if err != nil {
		return nil, err
	}

	entry, err := recorder.Record(ctx, inventory.Entry{
		Kind:     kind,
		Movement: mv,
		UnitCost: cmd.UnitCost,
		Notes:    cmd.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		RecordID:       mv.Record.ID,
		QuantityBefore: mv.Before,
		QuantityAfter:  mv.After,
		TransactionID:  entry.ID,
	}, nil
}

// SetInitialStock brings one record to an absolute quantity. The
// difference from the current quantity is recorded as an adjustment;
// setting a record to its current quantity writes nothing.
func (s *InventoryService) SetInitialStock(ctx context.Context, cmd InitialStockCommand) (*MutationResult, error) {
	if err := validateInitialStock(cmd); err != nil {
		return nil, err
	}

	var result *MutationResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		result, err = applyInitialStock(ctx, repos, cmd)
		return err
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// BulkSetInitialStock brings several records to absolute quantities in
// one transaction, committing all of them or none.
func (s *InventoryService) BulkSetInitialStock(ctx context.Context, cmd BulkInitialStockCommand) ([]MutationResult, error) {
	if len(cmd.Items) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "bulk initial stock requires at least one item")
	}
	for _, item := range cmd.Items {
		if err := validateInitialStock(item); err != nil {
			return nil, err
		}
	}

	var results []MutationResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		results = make([]MutationResult, 0, len(cmd.Items))
		for _, item := range cmd.Items {
			result, err := applyInitialStock(ctx, repos, item)
			if err != nil {
				return err
			}
			results = append(results, *result)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

func validateInitialStock(cmd InitialStockCommand) error {
	if cmd.ProductID == uuid.Nil || cmd.StoreID == uuid.Nil {
		return shared.ErrInvalidInput
	}
	if cmd.Quantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "initial quantity cannot be negative")
	}
	return nil
}

func applyInitialStock(ctx context.Context, repos TransactionalRepositories, cmd InitialStockCommand) (*MutationResult, error) {
	ledger := inventory.NewLedger(repos.Records())
	recorder := inventory.NewRecorder(repos.Transactions())

	scope := inventory.ScopeFromNullableID(cmd.VariantID)
	current, err := ledger.Get(ctx, cmd.ProductID, cmd.StoreID, scope)
	if err != nil {
		return nil, err
	}

	delta := cmd.Quantity.Sub(current)
	if delta.IsZero() {
		return &MutationResult{QuantityBefore: current, QuantityAfter: current}, nil
	}

	kind := inventory.KindAdjustmentPlus
	if delta.IsNegative() {
		kind = inventory.KindAdjustmentMinus
	}
	if err := resolveKind(ctx, repos, kind); err != nil {
		return nil, err
	}

	mv, err := ledger.Adjust(ctx, cmd.ProductID, cmd.StoreID, scope, delta)
	if err != nil {
		return nil, err
	}

	entry, err := recorder.Record(ctx, inventory.Entry{
		Kind:     kind,
		Movement: mv,
		UnitCost: cmd.UnitCost,
		Notes:    cmd.Notes,
	})
	if err != nil {
		return nil, err
	}

	return &MutationResult{
		RecordID:       mv.Record.ID,
		QuantityBefore: mv.Before,
		QuantityAfter:  mv.After,
		TransactionID:  entry.ID,
	}, nil
}

// AllocateToVariants moves general stock into variant buckets. The whole
// allocation is validated against the general balance first; if the sum
// exceeds what is available, nothing moves.
func (s *InventoryService) AllocateToVariants(ctx context.Context, cmd AllocateCommand) (*AllocationResult, error) {
	if cmd.ProductID == uuid.Nil || cmd.StoreID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if len(cmd.Allocations) == 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "allocation requires at least one variant")
	}

	total := decimal.Zero
	seen := make(map[uuid.UUID]bool, len(cmd.Allocations))
	for _, a := range cmd.Allocations {
		if a.VariantID == uuid.Nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "allocation variant id is required")
		}
		if seen[a.VariantID] {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("duplicate variant in allocation: %s", a.VariantID))
		}
		seen[a.VariantID] = true
		if !a.Quantity.IsPositive() {
			return nil, shared.NewDomainError("INVALID_INPUT", "allocation quantity must be positive")
		}
		total = total.Add(a.Quantity)
	}

	var result *AllocationResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := resolveKind(ctx, repos, inventory.KindAllocation); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Records())
		recorder := inventory.NewRecorder(repos.Transactions())

		general, err := ledger.Get(ctx, cmd.ProductID, cmd.StoreID, inventory.GeneralScope())
		if err != nil {
			return err
		}
		if general.LessThan(total) {
			return inventory.NewInsufficientStockError(inventory.ShortfallItem{
				ProductID: cmd.ProductID,
				Available: general,
				Requested: total,
			})
		}

		for _, a := range cmd.Allocations {
			scope, err := inventory.VariantScope(a.VariantID)
			if err != nil {
				return err
			}
			mv, err := ledger.Adjust(ctx, cmd.ProductID, cmd.StoreID, scope, a.Quantity)
			if err != nil {
				return err
			}
			if _, err := recorder.Record(ctx, inventory.Entry{
				Kind:     inventory.KindAllocation,
				Movement: mv,
				Notes:    cmd.Notes,
			}); err != nil {
				return err
			}
		}

		mv, err := ledger.Adjust(ctx, cmd.ProductID, cmd.StoreID, inventory.GeneralScope(), total.Neg())
		if err != nil {
			return err
		}
		if _, err := recorder.Record(ctx, inventory.Entry{
			Kind:     inventory.KindAllocation,
			Movement: mv,
			Notes:    cmd.Notes,
		}); err != nil {
			return err
		}

		result = &AllocationResult{
			TotalAllocated:   total,
			RemainingGeneral: mv.After,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// RecallFromVariant moves stock from a variant bucket back to the
// general bucket. The recall fails entirely when the variant does not
// hold the requested quantity.
func (s *InventoryService) RecallFromVariant(ctx context.Context, cmd RecallCommand) (*RecallResult, error) {
	if cmd.ProductID == uuid.Nil || cmd.StoreID == uuid.Nil || cmd.VariantID == uuid.Nil {
		return nil, shared.ErrInvalidInput
	}
	if !cmd.Quantity.IsPositive() {
		return nil, shared.NewDomainError("INVALID_INPUT", "recall quantity must be positive")
	}

	var result *RecallResult
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := resolveKind(ctx, repos, inventory.KindRecall); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Records())
		recorder := inventory.NewRecorder(repos.Transactions())

		scope, err := inventory.VariantScope(cmd.VariantID)
		if err != nil {
			return err
		}
		held, err := ledger.Get(ctx, cmd.ProductID, cmd.StoreID, scope)
		if err != nil {
			return err
		}
		if held.LessThan(cmd.Quantity) {
			variantID := cmd.VariantID
			return inventory.NewInsufficientStockError(inventory.ShortfallItem{
				ProductID: cmd.ProductID,
				VariantID: &variantID,
				Available: held,
				Requested: cmd.Quantity,
			})
		}

		variantMv, err := ledger.Adjust(ctx, cmd.ProductID, cmd.StoreID, scope, cmd.Quantity.Neg())
		if err != nil {
			return err
		}
		if _, err := recorder.Record(ctx, inventory.Entry{
			Kind:     inventory.KindRecall,
			Movement: variantMv,
			Notes:    cmd.Notes,
		}); err != nil {
			return err
		}

		generalMv, err := ledger.Adjust(ctx, cmd.ProductID, cmd.StoreID, inventory.GeneralScope(), cmd.Quantity)
		if err != nil {
			return err
		}
		if _, err := recorder.Record(ctx, inventory.Entry{
			Kind:     inventory.KindRecall,
			Movement: generalMv,
			Notes:    cmd.Notes,
		}); err != nil {
			return err
		}

		result = &RecallResult{
			VariantQuantity: variantMv.After,
			GeneralQuantity: generalMv.After,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// resolveKind asserts that a transaction kind is seeded before any entry
// carrying its code is written.
func resolveKind(ctx context.Context, repos TransactionalRepositories, kind inventory.TransactionKind) error {
	_, err := repos.Kinds().ByCode(ctx, kind.String())
	return err
}
