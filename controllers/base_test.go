package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"user-order-service/models"
	"user-order-service/store"
	"user-order-service/workerpool"
)

type testEnv struct {
	router *gin.Engine
	users  *store.Store[models.User]
	orders *store.Store[models.Order]
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := store.New[models.User]()
	orders := store.New[models.Order]()
	store.SeedUsers(users)
	store.SeedOrders(orders)

	d := workerpool.NewDispatcher("test-worker-pool", 4, time.Minute)
	dedicated := d.CreateSharedPool("test-worker-pool-dedicated", 4, time.Minute)
	t.Cleanup(d.Close)

	SetStores(users, orders)
	SetDispatcher(d, dedicated)
	SetPublisher(nil)
	SetInstance("test-instance")

	r := gin.New()
	RegisterRoutes(r)

	return &testEnv{router: r, users: users, orders: orders}
}

func (e *testEnv) request(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			encoded, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewReader(encoded)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func requireErrorBody(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()

	require.Equal(t, status, w.Code)
	body := decodeBody(t, w)
	require.Equal(t, true, body["error"])
	require.Equal(t, float64(status), body["statusCode"])
	require.NotEmpty(t, body["message"])
}
