package transfer

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/warehousing/backend/internal/application/inventory"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/domain/shared"
	"github.com/warehousing/backend/internal/domain/transfer"
)

// TransferService drives the store transfer lifecycle. The ledger is
// untouched while a transfer is pending; completion applies a paired
// debit at the source and credit at the destination for every line, all
// or nothing.
type TransferService struct {
	transfers transfer.StoreTransferRepository
	scope     appinv.TransactionScope
}

// NewTransferService creates a new transfer service.
func NewTransferService(transfers transfer.StoreTransferRepository, scope appinv.TransactionScope) *TransferService {
	return &TransferService{transfers: transfers, scope: scope}
}

// Create registers a pending transfer between two distinct stores.
func (s *TransferService) Create(ctx context.Context, cmd CreateTransferCommand) (*TransferDTO, error) {
	items := make([]transfer.TransferItem, len(cmd.Items))
	for i, in := range cmd.Items {
		items[i] = transfer.TransferItem{
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			UnitCost:  in.UnitCost,
		}
	}

	t, err := transfer.NewStoreTransfer(cmd.FromStoreID, cmd.ToStoreID, cmd.Reference, items)
	if err != nil {
		return nil, err
	}

	err = s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusPending); err != nil {
			return err
		}
		return repos.Transfers().Create(ctx, t)
	})
	if err != nil {
		return nil, err
	}

	dto := NewTransferDTO(t)
	return &dto, nil
}

// Get loads one transfer with its items.
func (s *TransferService) Get(ctx context.Context, id uuid.UUID) (*TransferDTO, error) {
	t, err := s.transfers.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := NewTransferDTO(t)
	return &dto, nil
}

// List lists transfers with pagination.
func (s *TransferService) List(ctx context.Context, q ListTransfersQuery) (*shared.Paginated[TransferDTO], error) {
	filter := transfer.TransferFilter{
		Filter:  shared.DefaultFilter(),
		Status:  q.Status,
		StoreID: q.StoreID,
	}
	if q.Page > 0 {
		filter.Page = q.Page
	}
	if q.PageSize > 0 {
		filter.PageSize = q.PageSize
	}

	transfers, err := s.transfers.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.transfers.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	dtos := make([]TransferDTO, len(transfers))
	for i := range transfers {
		dtos[i] = NewTransferDTO(&transfers[i])
	}
	result := shared.NewPaginated(dtos, total, filter.Page, filter.PageSize)
	return &result, nil
}

// Complete moves every line from the source store to the destination
// store. The source balances are validated for all lines first; a single
// uncoverable line rejects the whole transfer with the full shortfall
// list and no record changes. Transfers move general stock only.
func (s *TransferService) Complete(ctx context.Context, transferID uuid.UUID) (*TransferDTO, error) {
	var dto TransferDTO
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		if err := t.MarkCompleted(); err != nil {
			return err
		}

		if _, err := repos.Kinds().ByCode(ctx, inventory.KindTransferOut.String()); err != nil {
			return err
		}
		if _, err := repos.Kinds().ByCode(ctx, inventory.KindTransferIn.String()); err != nil {
			return err
		}
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusCompleted); err != nil {
			return err
		}

		ledger := inventory.NewLedger(repos.Records())
		recorder := inventory.NewRecorder(repos.Transactions())

		// Source demand is netted per product first, so duplicate lines
		// for one product are judged by their combined quantity.
		demand := make(map[uuid.UUID]decimal.Decimal)
		products := make([]uuid.UUID, 0, len(t.Items))
		for _, item := range t.Items {
			if _, ok := demand[item.ProductID]; !ok {
				products = append(products, item.ProductID)
			}
			demand[item.ProductID] = demand[item.ProductID].Add(item.Quantity)
		}

		var shortfalls []inventory.ShortfallItem
		for _, productID := range products {
			available, err := ledger.Get(ctx, productID, t.FromStoreID, inventory.GeneralScope())
			if err != nil {
				return err
			}
			if available.LessThan(demand[productID]) {
				shortfalls = append(shortfalls, inventory.ShortfallItem{
					ProductID: productID,
					Available: available,
					Requested: demand[productID],
				})
			}
		}
		if len(shortfalls) > 0 {
			return inventory.NewInsufficientStockError(shortfalls...)
		}

		for _, item := range t.Items {
			out, err := ledger.Adjust(ctx, item.ProductID, t.FromStoreID, inventory.GeneralScope(), item.Quantity.Neg())
			if err != nil {
				return err
			}
			if _, err := recorder.Record(ctx, inventory.Entry{
				Kind:       inventory.KindTransferOut,
				Movement:   out,
				UnitCost:   item.UnitCost,
				TransferID: &transferID,
			}); err != nil {
				return err
			}

			in, err := ledger.Adjust(ctx, item.ProductID, t.ToStoreID, inventory.GeneralScope(), item.Quantity)
			if err != nil {
				return err
			}
			if _, err := recorder.Record(ctx, inventory.Entry{
				Kind:       inventory.KindTransferIn,
				Movement:   in,
				UnitCost:   item.UnitCost,
				TransferID: &transferID,
			}); err != nil {
				return err
			}
		}

		if err := repos.Transfers().SaveWithLock(ctx, t); err != nil {
			return err
		}
		dto = NewTransferDTO(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}

// Cancel transitions a pending transfer to Cancelled. Nothing was
// applied, so there is nothing to reverse; both terminal states reject
// further transitions.
func (s *TransferService) Cancel(ctx context.Context, transferID uuid.UUID) (*TransferDTO, error) {
	var dto TransferDTO
	err := s.scope.Execute(ctx, func(repos appinv.TransactionalRepositories) error {
		t, err := repos.Transfers().FindByID(ctx, transferID)
		if err != nil {
			return err
		}
		if err := t.MarkCancelled(); err != nil {
			return err
		}
		if _, err := repos.Statuses().ByCode(ctx, lookup.StatusCancelled); err != nil {
			return err
		}
		if err := repos.Transfers().SaveWithLock(ctx, t); err != nil {
			return err
		}
		dto = NewTransferDTO(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dto, nil
}
