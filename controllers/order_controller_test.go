package controllers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"user-order-service/models"
)

func TestListOrders(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/orders", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	assert.Len(t, orders, 2)
}

func TestGetOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/orders/order-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "customer-1", body["customerId"])

	w = env.request(t, http.MethodGet, "/api/orders/missing", nil)
	requireErrorBody(t, w, http.StatusNotFound)
}

func TestCreateOrder_ComputesTotalAmount(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPost, "/api/orders", map[string]any{
		"customerId": "customer-9",
		"items": []map[string]any{
			{"productId": "p-1", "productName": "A", "quantity": 2, "unitPrice": 10},
			{"productId": "p-2", "productName": "B", "quantity": 1, "unitPrice": 5},
		},
	})

	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 25, order.TotalAmount, 0.001)
	assert.False(t, order.UpdatedAt.Before(order.CreatedAt))

	stored, found := env.orders.Get(order.ID)
	require.True(t, found)
	assert.InDelta(t, 25, stored.TotalAmount, 0.001)
}

func TestCreateOrder_Validation(t *testing.T) {
	env := newTestEnv(t)
	before := env.orders.Len()

	// 缺少customerId
	w := env.request(t, http.MethodPost, "/api/orders", map[string]any{
		"items": []map[string]any{{"productId": "p-1", "quantity": 1, "unitPrice": 5}},
	})
	requireErrorBody(t, w, http.StatusBadRequest)

	// 缺少订单项
	w = env.request(t, http.MethodPost, "/api/orders", map[string]any{"customerId": "c-1"})
	requireErrorBody(t, w, http.StatusBadRequest)

	// 无法解析的请求体
	w = env.request(t, http.MethodPost, "/api/orders", "{{{")
	requireErrorBody(t, w, http.StatusBadRequest)

	assert.Equal(t, before, env.orders.Len())
}

func TestUpdateOrder_RecomputesTotalOnlyWithItems(t *testing.T) {
	env := newTestEnv(t)

	existing, found := env.orders.Get("order-1")
	require.True(t, found)

	// 带订单项：总额重算，客户端的totalAmount被覆盖
	w := env.request(t, http.MethodPut, "/api/orders/order-1", map[string]any{
		"customerId":  "customer-1",
		"totalAmount": 9999,
		"items": []map[string]any{
			{"productId": "p-1", "productName": "A", "quantity": 2, "unitPrice": 10},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, "order-1", updated.ID)
	assert.InDelta(t, 20, updated.TotalAmount, 0.001)
	assert.True(t, updated.CreatedAt.Equal(existing.CreatedAt), "createdAt preserved")
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))

	// 不带订单项：totalAmount按客户端给定值保留
	w = env.request(t, http.MethodPut, "/api/orders/order-1", map[string]any{
		"customerId":  "customer-1",
		"totalAmount": 123.45,
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.InDelta(t, 123.45, updated.TotalAmount, 0.001)
}

func TestUpdateOrder_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, "/api/orders/missing", map[string]any{"customerId": "c"})

	requireErrorBody(t, w, http.StatusNotFound)
}

func TestDeleteOrder(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodDelete, "/api/orders/order-2", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order deleted successfully", decodeBody(t, w)["message"])

	w = env.request(t, http.MethodGet, "/api/orders/order-2", nil)
	requireErrorBody(t, w, http.StatusNotFound)

	w = env.request(t, http.MethodDelete, "/api/orders/order-2", nil)
	requireErrorBody(t, w, http.StatusNotFound)
}

func TestUpdateOrderStatus_CaseInsensitive(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, "/api/orders/order-1/status", map[string]string{"status": "shipped"})

	require.Equal(t, http.StatusOK, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.StatusShipped, order.Status)

	stored, found := env.orders.Get("order-1")
	require.True(t, found)
	assert.Equal(t, models.StatusShipped, stored.Status)
	assert.False(t, stored.UpdatedAt.Before(stored.CreatedAt))
}

func TestUpdateOrderStatus_InvalidValueLeavesStoreUnchanged(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, "/api/orders/order-1/status", map[string]string{"status": "bogus"})
	requireErrorBody(t, w, http.StatusBadRequest)

	stored, found := env.orders.Get("order-1")
	require.True(t, found)
	assert.Equal(t, models.StatusConfirmed, stored.Status)
}

func TestUpdateOrderStatus_MissingField(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, "/api/orders/order-1/status", map[string]string{})
	requireErrorBody(t, w, http.StatusBadRequest)
}

func TestUpdateOrderStatus_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodPut, "/api/orders/missing/status", map[string]string{"status": "shipped"})
	requireErrorBody(t, w, http.StatusNotFound)
}

func TestCalculateOrderTotal_SmallOrderPaysShipping(t *testing.T) {
	env := newTestEnv(t)

	// subtotal 50：运费9.99，无折扣
	w := env.request(t, http.MethodPost, "/api/orders", map[string]any{
		"customerId": "customer-5",
		"items": []map[string]any{
			{"productId": "p-1", "productName": "A", "quantity": 5, "unitPrice": 10},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = env.request(t, http.MethodGet, "/api/orders/"+order.ID+"/calculate-total", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.InDelta(t, 50, body["subtotal"].(float64), 0.001)
	assert.InDelta(t, 4.00, body["tax"].(float64), 0.001)
	assert.InDelta(t, 9.99, body["shipping"].(float64), 0.001)
	assert.InDelta(t, 0, body["discount"].(float64), 0.001)
	assert.InDelta(t, 63.99, body["finalTotal"].(float64), 0.001)
	assert.NotZero(t, body["calculatedAt"])
}

func TestCalculateOrderTotal_LargeOrderGetsDiscount(t *testing.T) {
	env := newTestEnv(t)

	// subtotal 600：免运费，5%折扣
	w := env.request(t, http.MethodPost, "/api/orders", map[string]any{
		"customerId": "customer-6",
		"items": []map[string]any{
			{"productId": "p-1", "productName": "A", "quantity": 6, "unitPrice": 100},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))

	w = env.request(t, http.MethodGet, "/api/orders/"+order.ID+"/calculate-total", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)

	assert.InDelta(t, 600, body["subtotal"].(float64), 0.001)
	assert.InDelta(t, 48, body["tax"].(float64), 0.001)
	assert.InDelta(t, 0, body["shipping"].(float64), 0.001)
	assert.InDelta(t, 30, body["discount"].(float64), 0.001)
	assert.InDelta(t, 618, body["finalTotal"].(float64), 0.001)
}

func TestCalculateOrderTotal_NotFound(t *testing.T) {
	env := newTestEnv(t)

	w := env.request(t, http.MethodGet, "/api/orders/missing/calculate-total", nil)
	requireErrorBody(t, w, http.StatusNotFound)
}
