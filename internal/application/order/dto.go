package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/warehousing/backend/internal/domain/order"
)

// OrderItemInput is one requested order line.
type OrderItemInput struct {
	ProductID uuid.UUID
	StoreID   uuid.UUID
	VariantID *uuid.UUID
	Quantity  decimal.Decimal
	UnitCost  decimal.Decimal
	UnitPrice decimal.Decimal
}

// CreateOrderCommand creates a pending purchase or sale order.
type CreateOrderCommand struct {
	Kind      string
	Reference string
	Items     []OrderItemInput
}

// ReviseOrderCommand replaces the items of an order. For a completed
// order the ledger is adjusted by the per-line differences.
type ReviseOrderCommand struct {
	OrderID uuid.UUID
	Items   []OrderItemInput
}

// ListOrdersQuery narrows order listings.
type ListOrdersQuery struct {
	Kind     string
	Status   string
	Page     int
	PageSize int
}

// OrderItemDTO is the read model of one order line.
type OrderItemDTO struct {
	ID        uuid.UUID       `json:"id"`
	ProductID uuid.UUID       `json:"product_id"`
	StoreID   uuid.UUID       `json:"store_id"`
	VariantID *uuid.UUID      `json:"variant_id,omitempty"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// OrderDTO is the read model of an order.
type OrderDTO struct {
	ID        uuid.UUID      `json:"id"`
	Kind      string         `json:"kind"`
	Status    string         `json:"status"`
	Reference string         `json:"reference,omitempty"`
	Items     []OrderItemDTO `json:"items"`
	Version   int            `json:"version"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// NewOrderDTO maps a domain order to its read model.
func NewOrderDTO(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemDTO{
			ID:        item.ID,
			ProductID: item.ProductID,
			StoreID:   item.StoreID,
			VariantID: item.VariantID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			UnitPrice: item.UnitPrice,
		}
	}
	return OrderDTO{
		ID:        o.ID,
		Kind:      string(o.Kind),
		Status:    o.Status,
		Reference: o.Reference,
		Items:     items,
		Version:   o.Version,
		CreatedAt: o.CreatedAt,
		UpdatedAt: o.UpdatedAt,
	}
}

func (in OrderItemInput) toDomain() order.OrderItem {
	return order.OrderItem{
		ProductID: in.ProductID,
		StoreID:   in.StoreID,
		VariantID: in.VariantID,
		Quantity:  in.Quantity,
		UnitCost:  in.UnitCost,
		UnitPrice: in.UnitPrice,
	}
}
