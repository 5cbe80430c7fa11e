package order

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/warehousing/backend/internal/application/inventory"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/order"
	"github.com/warehousing/backend/internal/domain/shared"
)

// FulfillmentService drives the order lifecycle. Completion, revision,
// and cancellation of completed orders mutate the ledger; each such
// operation validates every line before touching any record, so an order
// that cannot be satisfied in full changes nothing.
type FulfillmentService struct {
	orders order.OrderRepository
	scope  appinv.TransactionScope
}

// NewFulfillmentService creates a new fulfillment service.
func NewFulfillmentService(orders order.OrderRepository, scope appinv.TransactionScope) *FulfillmentService {
	return &FulfillmentService{orders: orders, scope: scope}
}

// Create registers a pending order. Nothing touches the ledger until the
// order completes.
func (s *FulfillmentService) Create(ctx context.Context, cmd CreateOrderCommand) (*OrderDTO, error) {
	kind := order.OrderKind(cmd.Kind)
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Order kind must be PURCHASE or SALE")
	}

	items := make([]order.OrderItem, len(cmd.Items))
	for i, in := range cmd.Items {
		items[i] = in.toDomain()
	}

	o, err := order.NewOrder(kind, cmd.Reference, items)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusPending); err != nil {
			return err
		}
		return repos.Orders().Create(ctx, o)
	})
	if err != nil {
		return nil, err
	}

	dto := NewOrderDTO(o)
	return &dto, nil
}

// Get loads one order with its items.
func (s *FulfillmentService) Get(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewOrderDTO(o)
	return &dto, nil
}

// List lists orders with pagination.
func (s *FulfillmentService) List(ctx context.Context, q ListOrdersQuery) (*shared.Paginated[OrderDTO], error) {
	filter := order.OrderFilter{
		Filter: shared.DefaultFilter(),
		Kind:   order.OrderKind(q.Kind),
		Status: q.Status,
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	orders, err := s.orders.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.orders.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]OrderDTO, len(orders))
	for i := range orders {
		dtos[i] = NewOrderDTO(&orders[i])
	}
	result := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Complete applies the order's stock effects and transitions it to
// Completed. A purchase credits each line's record; a sale debits it.
// A sale any line of which cannot be covered fails with the full list of
// shortfalls and no record changes.
func (s *FulfillmentService) Complete(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	var dto OrderDTO
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.MarkCompleted(); err != nil {
			return err
		}

		kind := o.Kind.TransactionKind()
		if err := resolveKind(ctx, repos, kind); err != nil {
			return err
		}
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusCompleted); err != nil {
			return err
		}

		changes := make([]stockChange, len(o.Items))
		for i, item := range o.Items {
			changes[i] = stockChange{
				productID: item.ProductID,
				storeID:   item.StoreID,
				scope:     item.Scope(),
				delta:     o.Kind.StockDelta(item.Quantity),
				unitCost:  item.UnitCost,
			}
		}

		ledger := inventory.NewLedger(repos.Records())
		if err := checkCoverage(ctx, ledger, changes); err != nil {
			return err
		}
		if err := applyChanges(ctx, repos, kind, orderID, changes); err != nil {
			return err
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		dto = NewOrderDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Cancel transitions the order to Cancelled. A pending order cancels
// with no ledger effect. A completed order is first reversed line by
// line: a cancelled purchase returns stock out, a cancelled sale returns
// it in. If the purchase reversal cannot be covered, nothing changes.
func (s *FulfillmentService) Cancel(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	var dto OrderDTO
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		wasCompleted := o.IsCompleted()
		if err := o.MarkCancelled(); err != nil {
			return err
		}
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusCancelled); err != nil {
			return err
		}

		if wasCompleted {
			kind := inventory.KindReturnIn
			if o.Kind == order.OrderKindPurchase {
				kind = inventory.KindReturnOut
			}
			if err := resolveKind(ctx, repos, kind); err != nil {
				return err
			}

			changes := make([]stockChange, len(o.Items))
			for i, item := range o.Items {
				changes[i] = stockChange{
					productID: item.ProductID,
					storeID:   item.StoreID,
					scope:     item.Scope(),
					delta:     o.Kind.StockDelta(item.Quantity).Neg(),
					unitCost:  item.UnitCost,
				}
			}

			ledger := inventory.NewLedger(repos.Records())
			if err := checkCoverage(ctx, ledger, changes); err != nil {
				return err
			}
			if err := applyChanges(ctx, repos, kind, orderID, changes); err != nil {
				return err
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		dto = NewOrderDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Revise replaces the order's items. Revising a pending order is a plain
// item swap. Revising a completed order adjusts the ledger by the
// per-line differences between the old and new items, including lines
// that were removed entirely. Cancelled orders cannot be revised.
func (s *FulfillmentService) Revise(ctx context.Context, cmd ReviseOrderCommand) (*OrderDTO, error) {
	var dto OrderDTO
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, cmd.OrderID)
		if err != nil {
			return err
		}
		if o.IsCancelled() {
			return shared.ErrInvalidState
		}

		newItems := make([]order.OrderItem, len(cmd.Items))
		for i, in := range cmd.Items {
			newItems[i] = in.toDomain()
		}

		var changes []stockChange
		if o.IsCompleted() {
			changes = diffChanges(o, newItems)
		}

		if err := o.ReplaceItems(newItems); err != nil {
			return err
		}

		if len(changes) > 0 {
			kind := o.Kind.TransactionKind()
			if err := resolveKind(ctx, repos, kind); err != nil {
				return err
			}
			ledger := inventory.NewLedger(repos.Records())
			if err := checkCoverage(ctx, ledger, changes); err != nil {
				return err
			}
			if err := applyChanges(ctx, repos, kind, cmd.OrderID, changes); err != nil {
				return err
			}
		}

		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		dto = NewOrderDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// ResetToPending moves a draft or cancelled order back to Pending.
// Completed orders cannot be reset; their effects are on the ledger.
func (s *FulfillmentService) ResetToPending(ctx context.Context, orderID uuid.UUID) (*OrderDTO, error) {
	var dto OrderDTO
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		o, err := repos.Orders().FindByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := o.MarkPending(); err != nil {
			return err
		}
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusPending); err != nil {
			return err
		}
		if err := repos.Orders().SaveWithLock(ctx, o); err != nil {
			return err
		}
		dto = NewOrderDTO(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// stockChange is one planned ledger mutation for an order operation.
type stockChange struct {
	productID uuid.UUID
	storeID   uuid.UUID
	scope     inventory.StockScope
	delta     decimal.Decimal
	unitCost  decimal.Decimal
}

// diffChanges computes per-key quantity differences between the order's
// current items and the proposed ones, expressed as ledger deltas for
// the order's kind. A removed line contributes the full reversal of its
// original quantity.
func diffChanges(o *order.Order, newItems []order.OrderItem) []stockChange {
	type key struct {
		productID uuid.UUID
		storeID   uuid.UUID
		scope     inventory.StockScope
	}

	diffs := make(map[key]*stockChange)
	keys := make([]key, 0, len(o.Items)+len(newItems))

	add := func(item order.OrderItem, sign decimal.Decimal) {
		k := key{productID: item.ProductID, storeID: item.StoreID, scope: item.Scope()}
		change, ok := diffs[k]
		if !ok {
			change = &stockChange{
				productID: item.ProductID,
				storeID:   item.StoreID,
				scope:     item.Scope(),
				delta:     decimal.Zero,
			}
			diffs[k] = change
			keys = append(keys, k)
		}
		change.delta = change.delta.Add(item.Quantity.Mul(sign))
		change.unitCost = item.UnitCost
	}

	for _, item := range o.Items {
		add(item, decimal.NewFromInt(-1))
	}
	for _, item := range newItems {
		add(item, decimal.NewFromInt(1))
	}

	var changes []stockChange
	for _, k := range keys {
		change := diffs[k]
		if change.delta.IsZero() {
			continue
		}
		change.delta = o.Kind.StockDelta(change.delta)
		changes = append(changes, *change)
	}
	return changes
}

// checkCoverage verifies the debiting changes against the current ledger
// quantities and reports all shortfalls at once. Deltas are netted per
// ledger key first, so duplicate lines for the same key are judged by
// their combined demand rather than line by line.
func checkCoverage(ctx context.Context, ledger *inventory.Ledger, changes []stockChange) error {
	type key struct {
		productID uuid.UUID
		storeID   uuid.UUID
		scope     inventory.StockScope
	}

	totals := make(map[key]decimal.Decimal)
	keys := make([]key, 0, len(changes))
	for _, change := range changes {
		k := key{productID: change.productID, storeID: change.storeID, scope: change.scope}
		if _, ok := totals[k]; !ok {
			keys = append(keys, k)
		}
		totals[k] = totals[k].Add(change.delta)
	}

	var shortfalls []inventory.ShortfallItem
	for _, k := range keys {
		net := totals[k]
		if !net.IsNegative() {
			continue
		}
		available, err := ledger.Get(ctx, k.productID, k.storeID, k.scope)
		if err != nil {
			return err
		}
		needed := net.Neg()
		if available.LessThan(needed) {
			shortfalls = append(shortfalls, inventory.ShortfallItem{
				ProductID: k.productID,
				VariantID: k.scope.NullableID(),
				Available: available,
				Requested: needed,
			})
		}
	}
	if len(shortfalls) > 0 {
		return inventory.NewInsufficientStockError(shortfalls...)
	}
	return nil
}

// applyChanges mutates the ledger and records one audit entry per change,
// all attributed to the order.
func applyChanges(ctx context.Context, repos appinv.TransactionalRepositories, kind inventory.TransactionKind, orderID uuid.UUID, changes []stockChange) error {
	ledger := inventory.NewLedger(repos.Records())
	recorder := inventory.NewRecorder(repos.Transactions())

	for _, change := range changes {
		mv, err := ledger.Adjust(ctx, change.productID, change.storeID, change.scope, change.delta)
		if err != nil {
			return err
		}
		if _, err := recorder.Record(ctx, inventory.Entry{
			Kind:     kind,
			Movement: mv,
			UnitCost: change.unitCost,
			OrderID:  &orderID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func resolveKind(ctx context.Context, repos appinv.TransactionalRepositories, kind inventory.TransactionKind) error {
	_, err := repos.Kinds().ByCode(ctx, kind.String())
	return err
}
