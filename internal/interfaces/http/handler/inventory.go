package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	appinv "github.com/warehousing/backend/internal/application/inventory"
	"github.com/warehousing/backend/internal/interfaces/http/dto"
)

// InventoryHandler handles inventory ledger HTTP requests
type InventoryHandler struct {
	BaseHandler
	service *appinv.InventoryService
}

// NewInventoryHandler creates a new InventoryHandler
func NewInventoryHandler(service *appinv.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: service}
}

// GetStock returns the balance of one ledger key. Keys that were never
// written read as zero.
func (h *InventoryHandler) GetStock(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	storeID, err := uuid.Parse(c.Query("store_id"))
	if err != nil {
		h.BadRequest(c, "Invalid store_id")
		return
	}
	variantID, err := parseOptionalUUIDQuery(c, "variant_id")
	if err != nil {
		h.BadRequest(c, "Invalid variant_id")
		return
	}

	record, err := h.service.GetStock(c.Request.Context(), appinv.StockQuery{
		ProductID: productID,
		StoreID:   storeID,
		VariantID: variantID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, record)
}

// List returns inventory records matching the query
func (h *InventoryHandler) List(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}
	productID, err := parseOptionalUUIDQuery(c, "product_id")
	if err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	storeID, err := parseOptionalUUIDQuery(c, "store_id")
	if err != nil {
		h.BadRequest(c, "Invalid store_id")
		return
	}

	result, err := h.service.ListInventory(c.Request.Context(), appinv.ListQuery{
		ProductID: productID,
		StoreID:   storeID,
		Page:      req.Page,
		PageSize:  req.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// ListLowStock returns records with quantity below the threshold
func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	threshold, err := decimal.NewFromString(c.DefaultQuery("threshold", "0"))
	if err != nil {
		h.BadRequest(c, "Invalid threshold")
		return
	}
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	records, err := h.service.ListLowStock(c.Request.Context(), threshold, req.Page, req.PageSize)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, records)
}

// GetSummary returns ledger aggregates, optionally for one store
func (h *InventoryHandler) GetSummary(c *gin.Context) {
	storeID, err := parseOptionalUUIDQuery(c, "store_id")
	if err != nil {
		h.BadRequest(c, "Invalid store_id")
		return
	}

	summary, err := h.service.GetSummary(c.Request.Context(), storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ListTransactions returns audit entries matching the query
func (h *InventoryHandler) ListTransactions(c *gin.Context) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid query parameters: "+err.Error())
		return
	}

	q := appinv.TransactionQuery{
		Kind:     c.Query("kind"),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	var err error
	if q.ProductID, err = parseOptionalUUIDQuery(c, "product_id"); err != nil {
		h.BadRequest(c, "Invalid product_id")
		return
	}
	if q.StoreID, err = parseOptionalUUIDQuery(c, "store_id"); err != nil {
		h.BadRequest(c, "Invalid store_id")
		return
	}
	if q.VariantID, err = parseOptionalUUIDQuery(c, "variant_id"); err != nil {
		h.BadRequest(c, "Invalid variant_id")
		return
	}
	if q.OrderID, err = parseOptionalUUIDQuery(c, "order_id"); err != nil {
		h.BadRequest(c, "Invalid order_id")
		return
	}
	if q.TransferID, err = parseOptionalUUIDQuery(c, "transfer_id"); err != nil {
		h.BadRequest(c, "Invalid transfer_id")
		return
	}
	if q.From, err = parseOptionalTimeQuery(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from timestamp, expected RFC 3339")
		return
	}
	if q.To, err = parseOptionalTimeQuery(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to timestamp, expected RFC 3339")
		return
	}

	result, err := h.service.ListTransactions(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Adjust applies a signed manual adjustment to one ledger key
func (h *InventoryHandler) Adjust(c *gin.Context) {
	var req AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.Adjust(c.Request.Context(), adjustCommand(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkAdjust applies several adjustments in one transaction
func (h *InventoryHandler) BulkAdjust(c *gin.Context) {
	var req BulkAdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cmd := appinv.BulkAdjustCommand{Items: make([]appinv.AdjustCommand, 0, len(req.Items))}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, adjustCommand(item))
	}

	results, err := h.service.BulkAdjust(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

// SetInitialStock sets one ledger key to an absolute quantity
func (h *InventoryHandler) SetInitialStock(c *gin.Context) {
	var req SetInitialStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.SetInitialStock(c.Request.Context(), initialStockCommand(req))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// BulkSetInitialStock sets several ledger keys in one transaction
func (h *InventoryHandler) BulkSetInitialStock(c *gin.Context) {
	var req BulkSetInitialStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	cmd := appinv.BulkInitialStockCommand{Items: make([]appinv.InitialStockCommand, 0, len(req.Items))}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, initialStockCommand(item))
	}

	results, err := h.service.BulkSetInitialStock(c.Request.Context(), cmd)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, results)
}

func adjustCommand(req AdjustStockRequest) appinv.AdjustCommand {
	return appinv.AdjustCommand{
		ProductID: uuid.MustParse(req.ProductID),
		StoreID:   uuid.MustParse(req.StoreID),
		VariantID: parseValidatedUUID(req.VariantID),
		Delta:     req.Delta,
		UnitCost:  req.UnitCost,
		Notes:     req.Notes,
	}
}

func initialStockCommand(req SetInitialStockRequest) appinv.InitialStockCommand {
	return appinv.InitialStockCommand{
		ProductID: uuid.MustParse(req.ProductID),
		StoreID:   uuid.MustParse(req.StoreID),
		VariantID: parseValidatedUUID(req.VariantID),
		Quantity:  req.Quantity,
		UnitCost:  req.UnitCost,
		Notes:     req.Notes,
	}
}

// Allocate splits general stock into variant buckets
func (h *InventoryHandler) Allocate(c *gin.Context) {
	var req AllocateStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	allocations := make([]appinv.VariantAllocation, 0, len(req.Allocations))
	for _, a := range req.Allocations {
		allocations = append(allocations, appinv.VariantAllocation{
			VariantID: uuid.MustParse(a.VariantID),
			Quantity:  a.Quantity,
		})
	}

	result, err := h.service.AllocateToVariants(c.Request.Context(), appinv.AllocateCommand{
		ProductID:   uuid.MustParse(req.ProductID),
		StoreID:     uuid.MustParse(req.StoreID),
		Allocations: allocations,
		Notes:       req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Recall returns variant stock to the general bucket
func (h *InventoryHandler) Recall(c *gin.Context) {
	var req RecallStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	result, err := h.service.RecallFromVariant(c.Request.Context(), appinv.RecallCommand{
		ProductID: uuid.MustParse(req.ProductID),
		StoreID:   uuid.MustParse(req.StoreID),
		VariantID: uuid.MustParse(req.VariantID),
		Quantity:  req.Quantity,
		Notes:     req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// parseValidatedUUID converts an already-validated optional UUID string.
// Binding guarantees the format, so a nil pointer is the only absent case.
func parseValidatedUUID(s *string) *uuid.UUID {
	if s == nil || *s == "" {
		return nil
	}
	id := uuid.MustParse(*s)
	return &id
}

// parseOptionalTimeQuery parses an optional RFC 3339 query parameter
func parseOptionalTimeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
