package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"pos_order_backend/internal/middleware"
	"pos_order_backend/internal/repositories"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testServer struct {
	engine *gin.Engine
	now    time.Time
}

func newTestServer(t *testing.T, publicDir string) *testServer {
	t.Helper()
	s := &testServer{now: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	clock := func() time.Time { return s.now }
	repo := repositories.NewMemoryOrderRepository(clock)
	s.engine = New(repo, Options{
		Location:  time.UTC,
		Now:       clock,
		PublicDir: publicDir,
	})
	return s
}

func (s *testServer) do(t *testing.T, method, target string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var decoded map[string]interface{}
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func orderBody(invoice string, items ...map[string]interface{}) map[string]interface{} {
	total := 0.0
	for _, it := range items {
		total += it["lineTotal"].(float64)
	}
	return map[string]interface{}{
		"invoiceNumber": invoice,
		"dateTime":      "5/10/2024, 12:00:00 PM",
		"items":         items,
		"subtotal":      total,
		"total":         total,
	}
}

func item(name string, qty int, unit float64) map[string]interface{} {
	return map[string]interface{}{"name": name, "quantity": qty, "unitPrice": unit, "lineTotal": float64(qty) * unit}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, "")
	w, body := s.do(t, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", body["message"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestOrderLifecycle(t *testing.T) {
	s := newTestServer(t, "")

	w, body := s.do(t, http.MethodPost, "/api/orders", orderBody("INV-1", item("Burger", 2, 5)))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Order created successfully", body["message"])
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "confirm", order["status"])
	assert.Equal(t, "Cash", order["paymentMethod"])
	assert.NotEmpty(t, order["createdAt"])

	w, body = s.do(t, http.MethodGet, "/api/orders/INV-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "INV-1", body["order"].(map[string]interface{})["invoiceNumber"])

	w, body = s.do(t, http.MethodPatch, "/api/orders/INV-1", map[string]string{"status": "Preparing"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order updated successfully", body["message"])
	assert.Equal(t, "Preparing", body["order"].(map[string]interface{})["status"])

	w, body = s.do(t, http.MethodGet, "/api/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])

	w, body = s.do(t, http.MethodDelete, "/api/orders/INV-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Order deleted successfully", body["message"])

	w, body = s.do(t, http.MethodGet, "/api/orders/INV-1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Order not found", body["error"])
}

func TestCreateOrder_Rejections(t *testing.T) {
	s := newTestServer(t, "")

	w, body := s.do(t, http.MethodPost, "/api/orders", map[string]interface{}{"dateTime": "x", "items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
	assert.NotEmpty(t, body["error"])

	w, _ = s.do(t, http.MethodPost, "/api/orders", orderBody("INV-1", item("Burger", 1, 5)))
	require.Equal(t, http.StatusCreated, w.Code)

	w, body = s.do(t, http.MethodPost, "/api/orders", orderBody("INV-1", item("Fries", 1, 4)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])

	bad := orderBody("INV-2", item("Fries", 1, 4))
	bad["status"] = "cancelled"
	w, _ = s.do(t, http.MethodPost, "/api/orders", bad)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateAndDelete_NotFound(t *testing.T) {
	s := newTestServer(t, "")

	w, body := s.do(t, http.MethodPatch, "/api/orders/INV-404", map[string]string{"status": "Completed"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Order not found", body["error"])

	w, _ = s.do(t, http.MethodDelete, "/api/orders/INV-404", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodPatch, "/api/orders/INV-404", map[string]string{"status": "bogus"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPatch, "/api/orders/INV-404", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestOrdersByDateRange(t *testing.T) {
	s := newTestServer(t, "")

	s.now = time.Date(2024, 5, 2, 23, 59, 59, 0, time.UTC)
	w, _ := s.do(t, http.MethodPost, "/api/orders", orderBody("INV-LATE", item("Burger", 1, 5)))
	require.Equal(t, http.StatusCreated, w.Code)

	s.now = time.Date(2024, 5, 3, 0, 0, 0, 1000000, time.UTC)
	w, _ = s.do(t, http.MethodPost, "/api/orders", orderBody("INV-NEXT", item("Burger", 1, 5)))
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := s.do(t, http.MethodGet, "/api/orders/date/2024-05-01/2024-05-02", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])
	orders := body["orders"].([]interface{})
	assert.Equal(t, "INV-LATE", orders[0].(map[string]interface{})["invoiceNumber"])

	w, body = s.do(t, http.MethodGet, "/api/orders/date/not-a-date/2024-05-02", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, false, body["success"])
}

func TestSearch(t *testing.T) {
	s := newTestServer(t, "")

	a := orderBody("INV-1", item("Burger", 1, 5))
	a["roomNumber"] = "107"
	b := orderBody("INV-2", item("Burger", 1, 5))
	b["roomNumber"] = "208"
	for _, o := range []map[string]interface{}{a, b} {
		w, _ := s.do(t, http.MethodPost, "/api/orders", o)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body := s.do(t, http.MethodGet, "/api/search?query=7", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["count"])
	assert.Equal(t, "INV-1", body["orders"].([]interface{})[0].(map[string]interface{})["invoiceNumber"])

	w, body = s.do(t, http.MethodGet, "/api/search?query=%25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, body["count"])
	assert.Equal(t, []interface{}{}, body["orders"])
}

func TestStats(t *testing.T) {
	s := newTestServer(t, "")

	w, body := s.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{
		"totalOrders": 0.0, "todayOrders": 0.0, "totalRevenue": 0.0, "todayRevenue": 0.0,
	}, body["stats"])

	s.now = time.Date(2024, 5, 9, 10, 0, 0, 0, time.UTC)
	s.do(t, http.MethodPost, "/api/orders", orderBody("INV-1", item("Burger", 2, 5)))
	s.now = time.Date(2024, 5, 10, 10, 0, 0, 0, time.UTC)
	s.do(t, http.MethodPost, "/api/orders", orderBody("INV-2", item("Fries", 1, 4)))

	w, body = s.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 2, stats["totalOrders"])
	assert.EqualValues(t, 1, stats["todayOrders"])
	assert.InDelta(t, 14.0, stats["totalRevenue"], 1e-9)
	assert.InDelta(t, 4.0, stats["todayRevenue"], 1e-9)
}

func TestSalesEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	w, body := s.do(t, http.MethodGet, "/api/sales/top-item", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, body, "topItem")
	assert.Nil(t, body["topItem"])

	w, body = s.do(t, http.MethodGet, "/api/sales/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []interface{}{}, body["salesData"])

	s.do(t, http.MethodPost, "/api/orders", orderBody("INV-1", item("Burger", 2, 5), item("Fries", 1, 4)))
	s.do(t, http.MethodPost, "/api/orders", orderBody("INV-2", item("Burger", 1, 5), item("Fries", 2, 4)))

	w, body = s.do(t, http.MethodGet, "/api/sales/items", nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := body["salesData"].([]interface{})
	require.Len(t, rows, 2)
	first := rows[0].(map[string]interface{})
	assert.Equal(t, "Burger", first["_id"])
	assert.EqualValues(t, 3, first["totalQuantitySold"])
	assert.InDelta(t, 15.0, first["totalRevenue"], 1e-9)

	w, body = s.do(t, http.MethodGet, "/api/sales/top-item", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Burger", body["topItem"].(map[string]interface{})["_id"])

	w, body = s.do(t, http.MethodGet, "/api/sales/monthly?startDate=2024-05-01&endDate=2024-05-31", nil)
	require.Equal(t, http.StatusOK, w.Code)
	months := body["monthlySales"].([]interface{})
	require.Len(t, months, 1)
	may := months[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"year": 2024.0, "month": 5.0}, may["_id"])
	assert.InDelta(t, 27.0, may["totalMonthlyRevenue"], 1e-9)
	assert.Len(t, may["monthlyItems"], 2)

	w, _ = s.do(t, http.MethodGet, "/api/sales/items?startDate=31-12-2024", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMenuAndCheckout(t *testing.T) {
	s := newTestServer(t, "")

	w, body := s.do(t, http.MethodGet, "/api/menu?category=Beverages", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, body["categories"], 4)
	assert.Len(t, body["items"], 2)

	w, body = s.do(t, http.MethodPost, "/api/checkout", map[string]interface{}{
		"items":      []map[string]int{{"menuItemId": 9, "quantity": 2}},
		"roomNumber": "301",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	order := body["order"].(map[string]interface{})
	assert.Equal(t, "INV-1715342400000", order["invoiceNumber"])
	assert.InDelta(t, 17.8, order["total"], 1e-9)
	assert.Equal(t, "Guest", order["customerName"])
	assert.Equal(t, "301", order["roomNumber"])

	w, _ = s.do(t, http.MethodPost, "/api/checkout", map[string]interface{}{"items": []interface{}{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/checkout", map[string]interface{}{
		"items": []map[string]int{{"menuItemId": 77, "quantity": 1}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoRoute(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "history.html"), []byte("<html>history</html>"), 0o644))
	s := newTestServer(t, dir)

	w, body := s.do(t, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", body["error"])

	w, _ = s.do(t, http.MethodGet, "/history.html", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "history")

	w, _ = s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Server is running successfully!")

	w, body = s.do(t, http.MethodGet, "/missing.js", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Page not found", body["error"])
}

func TestNoRoute_ServesIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>menu</html>"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "assets"), 0o755))
	s := newTestServer(t, dir)

	w, _ := s.do(t, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "menu")

	w, body := s.do(t, http.MethodGet, "/assets/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Page not found", body["error"])

	w, _ = s.do(t, http.MethodGet, "/api/orders", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestIDIsEchoed(t *testing.T) {
	s := newTestServer(t, "")
	const id = "6f1c1f1e-3c1d-4a5b-9f67-2b1c0d4e5f60"

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, id)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(middleware.RequestIDHeader))
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig([]string{"*"})
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)

	restricted := corsConfig([]string{"http://localhost:5173"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.Equal(t, []string{"http://localhost:5173"}, restricted.AllowOrigins)
	assert.True(t, restricted.AllowCredentials)
}
