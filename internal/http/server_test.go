package http

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salesengine/internal/config"
	"salesengine/internal/core"
	"salesengine/internal/log"
	"salesengine/internal/store"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
}

// testDataset mirrors a small shop: merchant 1 earns 20.00 on its only
// paid invoice, merchant 2 earns 30.00, merchant 3 earns 20.00,
// merchant 4 has no items and no invoices.
func testDataset() *store.Dataset {
	merchants := []core.Merchant{
		{ID: 1, Name: "Shopin1901", CreatedAt: day(2010, time.December, 10)},
		{ID: 2, Name: "Candisart", CreatedAt: day(2009, time.May, 30)},
		{ID: 3, Name: "MiniatureBikez", CreatedAt: day(2010, time.March, 30)},
		{ID: 4, Name: "GoldenRayPress", CreatedAt: day(2011, time.January, 8)},
	}
	items := []core.Item{
		{ID: 11, Name: "Pencil", MerchantID: 1, UnitPrice: dec("10.00")},
		{ID: 12, Name: "Notebook", MerchantID: 1, UnitPrice: dec("30.00")},
		{ID: 21, Name: "Frame", MerchantID: 2, UnitPrice: dec("5.00")},
		{ID: 22, Name: "Print", MerchantID: 2, UnitPrice: dec("5.00")},
		{ID: 31, Name: "Bike", MerchantID: 3, UnitPrice: dec("20.00")},
	}
	invoices := []core.Invoice{
		{ID: 101, CustomerID: 1, MerchantID: 1, Status: core.StatusShipped, CreatedAt: day(2009, time.February, 7)},
		{ID: 102, CustomerID: 1, MerchantID: 1, Status: core.StatusPending, CreatedAt: day(2012, time.January, 5)},
		{ID: 103, CustomerID: 2, MerchantID: 2, Status: core.StatusShipped, CreatedAt: day(2009, time.February, 7)},
		{ID: 104, CustomerID: 2, MerchantID: 3, Status: core.StatusShipped, CreatedAt: day(2013, time.March, 3)},
		{ID: 105, CustomerID: 3, MerchantID: 3, Status: core.StatusReturned, CreatedAt: day(2014, time.May, 5)},
		{ID: 106, CustomerID: 3, MerchantID: 1, Status: core.StatusPending, CreatedAt: day(2014, time.June, 6)},
	}
	invoiceItems := []core.InvoiceItem{
		{ID: 1001, ItemID: 11, InvoiceID: 101, Quantity: 2, UnitPrice: dec("10.00")},
		{ID: 1002, ItemID: 12, InvoiceID: 102, Quantity: 1, UnitPrice: dec("30.00")},
		{ID: 1003, ItemID: 21, InvoiceID: 103, Quantity: 3, UnitPrice: dec("5.00")},
		{ID: 1004, ItemID: 22, InvoiceID: 103, Quantity: 3, UnitPrice: dec("5.00")},
		{ID: 1005, ItemID: 31, InvoiceID: 104, Quantity: 1, UnitPrice: dec("20.00")},
	}
	transactions := []core.Transaction{
		{ID: 1, InvoiceID: 101, Result: core.ResultFailed},
		{ID: 2, InvoiceID: 101, Result: core.ResultSuccess},
		{ID: 3, InvoiceID: 102, Result: core.ResultFailed},
		{ID: 4, InvoiceID: 103, Result: core.ResultSuccess},
		{ID: 5, InvoiceID: 104, Result: core.ResultSuccess},
	}
	customers := []core.Customer{
		{ID: 1, FirstName: "Joan", LastName: "Clarke"},
		{ID: 2, FirstName: "Cecilia", LastName: "Osinski"},
		{ID: 3, FirstName: "Mariah", LastName: "Toy"},
	}
	return &store.Dataset{
		Merchants:    store.NewMerchantStore(merchants),
		Items:        store.NewItemStore(items),
		Invoices:     store.NewInvoiceStore(invoices),
		InvoiceItems: store.NewInvoiceItemStore(invoiceItems),
		Transactions: store.NewTransactionStore(transactions),
		Customers:    store.NewCustomerStore(customers),
	}
}

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		Port:                 "0",
		ThrottleLimit:        50,
		DataDir:              t.TempDir(),
		CacheSize:            64,
		CacheTTL:             time.Minute,
		CacheCleanupInterval: time.Minute,
		LogLevel:             "info",
	}
	logger := log.New(log.Config{Handler: slog.NewTextHandler(io.Discard, nil)})
	srv := NewServer(cfg, testDataset(), logger)
	t.Cleanup(func() {
		srv.cacheManager.Stop()
	})
	return srv
}

func get(t *testing.T, srv *Server, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	var body map[string]any
	if rec.Body.Len() > 0 && strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec, body
}

func TestHealthEndpoints(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])

	rec, body = get(t, srv, "/readyz")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(4), body["merchants"])
	assert.Equal(t, float64(6), body["invoices"])
	assert.Equal(t, float64(3), body["customers"])
}

func TestMerchantRevenueEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/merchants/1/revenue")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20.00", body["revenue"])

	rec, _ = get(t, srv, "/api/v1/merchants/999/revenue")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = get(t, srv, "/api/v1/merchants/abc/revenue")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAverageItemPriceEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/merchants/1/average-item-price")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20", body["average_item_price"])

	// merchant 4 exists but owns no items
	rec, _ = get(t, srv, "/api/v1/merchants/4/average-item-price")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestTopRevenueEarnersEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/merchants/top-earners?n=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])
	merchants := body["merchants"].([]any)
	first := merchants[0].(map[string]any)
	assert.Equal(t, float64(2), first["id"], "merchant 2 earns the most")

	rec, _ = get(t, srv, "/api/v1/merchants/top-earners?n=abc")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = get(t, srv, "/api/v1/merchants/top-earners?n=-1")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvoiceEndpoints(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/invoices/101/total")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20.00", body["total"])

	rec, body = get(t, srv, "/api/v1/invoices/101/paid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["paid"])

	rec, body = get(t, srv, "/api/v1/invoices/105/paid")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, body["paid"])

	rec, _ = get(t, srv, "/api/v1/invoices/999/paid")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvoiceStatusEndpoint(t *testing.T) {
	srv := testServer(t)

	// 3 of 6 invoices shipped
	rec, body := get(t, srv, "/api/v1/invoices/status?status=shipped")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 50.0, body["percentage"])

	rec, _ = get(t, srv, "/api/v1/invoices/status?status=bogus")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRevenueByDateEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/revenue/date?date=2009-02-07")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "20.00", body["revenue"])

	rec, _ = get(t, srv, "/api/v1/revenue/date?date=1999-01-01")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = get(t, srv, "/api/v1/revenue/date?date=not-a-date")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMerchantStatsEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/merchants/stats")
	require.Equal(t, http.StatusOK, rec.Code)
	// item groups are 2, 2, 1
	assert.InDelta(t, 1.67, body["average_items_per_merchant"], 0.001)
	// invoice groups are 3, 1, 2
	assert.Equal(t, 2.0, body["average_invoices_per_merchant"])

	// a second hit is served from the cache with an identical payload
	rec2, body2 := get(t, srv, "/api/v1/merchants/stats")
	require.Equal(t, http.StatusOK, rec2.Code)
	assert.Equal(t, body, body2)
}

func TestPendingInvoicesEndpoint(t *testing.T) {
	srv := testServer(t)

	rec, body := get(t, srv, "/api/v1/merchants/pending-invoices")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), body["count"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := testServer(t)

	// generate at least one request so the counters have samples
	rec, _ := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	mrec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(mrec, req)

	assert.Equal(t, http.StatusOK, mrec.Code)
	assert.Contains(t, mrec.Body.String(), "salesengine_http_requests_total")
}
