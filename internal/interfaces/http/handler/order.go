package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apporder "github.com/warehousing/backend/internal/application/order"
	"github.com/warehousing/backend/internal/interfaces/http/dto"
)

// OrderItemRequest is one line of an order
type OrderItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	StoreID   string          `json:"store_id" binding:"required,uuid"`
	VariantID *string         `json:"variant_id" binding:"omitempty,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateOrderRequest creates a pending purchase or sale order
type CreateOrderRequest struct {
	Kind      string             `json:"kind" binding:"required,oneof=PURCHASE SALE"`
	Reference string             `json:"reference" binding:"max=100"`
	Items     []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ReviseOrderRequest replaces the items of an order
type ReviseOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

// OrderHandler handles order fulfillment HTTP requests
type OrderHandler struct {
	BaseHandler
	service *apporder.FulfillmentService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(service *apporder.FulfillmentService) *OrderHandler {
	return &OrderHandler{service: service}
}

// Create creates a pending order with no ledger effect
func (h *OrderHandler) Create(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Create(c.Request.Context(), apporder.CreateOrderCommand{
		Kind:      req.Kind,
		Reference: req.Reference,
		Items:     toOrderItemInputs(req.Items),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID returns one order with its items
func (h *OrderHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns orders matching the query
func (h *OrderHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	result, err := h.service.List(c.Request.Context(), apporder.ListOrdersQuery{
		Kind:     c.Query("kind"),
		Status:   c.Query("status"),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Complete applies the order's stock effects and marks it completed
func (h *OrderHandler) Complete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels the order, reversing its stock effects if it was completed
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Revise replaces the order's items, adjusting the ledger by the
// per-line differences when the order was already completed
func (h *OrderHandler) Revise(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}
	var req ReviseOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Revise(c.Request.Context(), apporder.ReviseOrderCommand{
		OrderID: id,
		Items:   toOrderItemInputs(req.Items),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// ResetToPending resets a cancelled order back to pending
func (h *OrderHandler) ResetToPending(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid order ID")
		return
	}

	result, err := h.service.ResetToPending(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

func toOrderItemInputs(items []OrderItemRequest) []apporder.OrderItemInput {
	inputs := make([]apporder.OrderItemInput, 0, len(items))
	for _, item := range items {
		inputs = append(inputs, apporder.OrderItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			StoreID:   uuid.MustParse(item.StoreID),
			VariantID: parseValidatedUUID(item.VariantID),
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
			UnitPrice: item.UnitPrice,
		})
	}
	return inputs
}
