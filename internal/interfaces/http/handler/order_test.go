package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apporder "github.com/warehousing/backend/internal/application/order"
	"github.com/warehousing/backend/internal/domain/inventory"
	"github.com/warehousing/backend/internal/domain/lookup"
	"github.com/warehousing/backend/internal/interfaces/http/dto"
	"github.com/warehousing/backend/internal/interfaces/http/handler"
	"github.com/warehousing/backend/tests/testutil"
)

func newOrderEngine(f *testutil.Fixture) *gin.Engine {
	gin.SetMode(gin.TestMode)
	service := apporder.NewFulfillmentService(f.Orders, f.Scope)
	h := handler.NewOrderHandler(service)

	engine := gin.New()
	engine.POST("/orders", h.Create)
	engine.GET("/orders", h.List)
	engine.GET("/orders/:id", h.GetByID)
	engine.POST("/orders/:id/complete", h.Complete)
	engine.POST("/orders/:id/cancel", h.Cancel)
	engine.PUT("/orders/:id/items", h.Revise)
	engine.POST("/orders/:id/reset", h.ResetToPending)
	return engine
}

func orderPayload(kind string, productID, storeID uuid.UUID, quantity string) gin.H {
	return gin.H{
		"kind":      kind,
		"reference": "PO-1001",
		"items": []gin.H{
			{
				"product_id": productID.String(),
				"store_id":   storeID.String(),
				"quantity":   quantity,
				"unit_cost":  "2.50",
			},
		},
	}
}

func TestOrderHandler_Create(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)

	w := doJSON(t, engine, http.MethodPost, "/orders", orderPayload("PURCHASE", uuid.New(), uuid.New(), "10"))

	require.Equal(t, http.StatusCreated, w.Code)
	resp := decodeResponse(t, w)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, "PURCHASE", data["kind"])
	assert.Equal(t, lookup.StatusPending, data["status"])
}

func TestOrderHandler_Create_InvalidKind(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)

	w := doJSON(t, engine, http.MethodPost, "/orders", orderPayload("LOAN", uuid.New(), uuid.New(), "10"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_Create_NoItems(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)

	w := doJSON(t, engine, http.MethodPost, "/orders", gin.H{"kind": "SALE", "items": []gin.H{}})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrderHandler_CompletePurchase(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)
	productID := uuid.New()
	storeID := uuid.New()

	w := doJSON(t, engine, http.MethodPost, "/orders", orderPayload("PURCHASE", productID, storeID, "10"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/orders/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, lookup.StatusCompleted, data["status"])
	assert.True(t, decimal.NewFromInt(10).Equal(
		f.Records.Quantity(productID, storeID, inventory.GeneralScope())))
}

func TestOrderHandler_CompleteSale_InsufficientStock(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)
	productID := uuid.New()
	storeID := uuid.New()
	f.Records.Seed(productID, storeID, inventory.GeneralScope(), decimal.NewFromInt(3))

	w := doJSON(t, engine, http.MethodPost, "/orders", orderPayload("SALE", productID, storeID, "10"))
	require.Equal(t, http.StatusCreated, w.Code)
	id := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/orders/"+id+"/complete", nil)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	resp := decodeResponse(t, w)
	assert.Equal(t, dto.ErrCodeInsufficientStock, resp.Error.Code)
	assert.NotNil(t, resp.Error.Details)

	// The order stays pending and nothing was debited.
	w = doJSON(t, engine, http.MethodGet, "/orders/"+id, nil)
	data := decodeResponse(t, w).Data.(map[string]interface{})
	assert.Equal(t, lookup.StatusPending, data["status"])
	assert.True(t, decimal.NewFromInt(3).Equal(
		f.Records.Quantity(productID, storeID, inventory.GeneralScope())))
}

func TestOrderHandler_Complete_NotFound(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)

	w := doJSON(t, engine, http.MethodPost, "/orders/"+uuid.NewString()+"/complete", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderHandler_Cancel_Twice(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)

	w := doJSON(t, engine, http.MethodPost, "/orders", orderPayload("PURCHASE", uuid.New(), uuid.New(), "10"))
	id := decodeResponse(t, w).Data.(map[string]interface{})["id"].(string)

	w = doJSON(t, engine, http.MethodPost, "/orders/"+id+"/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, engine, http.MethodPost, "/orders/"+id+"/cancel", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestOrderHandler_BadID(t *testing.T) {
	f := testutil.NewFixture()
	engine := newOrderEngine(f)

	w := doJSON(t, engine, http.MethodGet, "/orders/not-a-uuid", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
