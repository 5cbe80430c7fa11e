package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	apptransfer "github.com/warehousing/backend/internal/application/transfer"
	"github.com/warehousing/backend/internal/interfaces/http/dto"
)

// TransferItemRequest is one line of a store transfer
type TransferItemRequest struct {
	ProductID string          `json:"product_id" binding:"required,uuid"`
	Quantity  decimal.Decimal `json:"quantity" binding:"required"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// CreateTransferRequest creates a pending transfer between two stores
type CreateTransferRequest struct {
	FromStoreID string                `json:"from_store_id" binding:"required,uuid"`
	ToStoreID   string                `json:"to_store_id" binding:"required,uuid"`
	Reference   string                `json:"reference" binding:"max=100"`
	Items       []TransferItemRequest `json:"items" binding:"required,min=1,dive"`
}

// TransferHandler handles store transfer HTTP requests
type TransferHandler struct {
	BaseHandler
	service *apptransfer.TransferService
}

// NewTransferHandler creates a new TransferHandler
func NewTransferHandler(service *apptransfer.TransferService) *TransferHandler {
	return &TransferHandler{service: service}
}

// Create creates a pending transfer with no ledger effect
func (h *TransferHandler) Create(c *gin.Context) {
	var req CreateTransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	items := make([]apptransfer.TransferItemInput, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, apptransfer.TransferItemInput{
			ProductID: uuid.MustParse(item.ProductID),
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	result, err := h.service.Create(c.Request.Context(), apptransfer.CreateTransferCommand{
		FromStoreID: uuid.MustParse(req.FromStoreID),
		ToStoreID:   uuid.MustParse(req.ToStoreID),
		Reference:   req.Reference,
		Items:       items,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// GetByID returns one transfer with its items
func (h *TransferHandler) GetByID(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	result, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns transfers matching the query. A store_id matches either
// side of the transfer.
func (h *TransferHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	storeID, err := parseOptionalUUIDQuery(c, "store_id")
	if err != nil {
		h.BadRequest(c, "Invalid store_id")
		return
	}

	result, err := h.service.List(c.Request.Context(), apptransfer.ListTransfersQuery{
		Status:   c.Query("status"),
		StoreID:  storeID,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Complete moves the stock between the stores and marks the transfer completed
func (h *TransferHandler) Complete(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	result, err := h.service.Complete(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Cancel cancels a pending transfer. Completed transfers cannot be cancelled.
func (h *TransferHandler) Cancel(c *gin.Context) {
	id, err := parseUUIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid transfer ID")
		return
	}

	result, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
