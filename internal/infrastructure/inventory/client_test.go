package inventory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/retaildocs/backend/internal/domain/inventory"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(&Config{
		BaseURL:        server.URL,
		APIKey:         "ck_test",
		APISecret:      "cs_test",
		TimeoutSeconds: 5,
	})
	require.NoError(t, err)
	return client, server
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"missing base url", Config{APIKey: "k", APISecret: "s"}, ErrConfigMissingBaseURL},
		{"missing key", Config{BaseURL: "http://x", APISecret: "s"}, ErrConfigMissingAPIKey},
		{"missing secret", Config{BaseURL: "http://x", APIKey: "k"}, ErrConfigMissingSecret},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.cfg.Validate(), tt.want)
		})
	}

	cfg := Config{BaseURL: "http://x", APIKey: "k", APISecret: "s"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 10, cfg.TimeoutSeconds, "timeout defaults when unset")
}

func TestGetProduct(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/101", r.URL.Path)
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		assert.Equal(t, "ck_test", user)
		assert.Equal(t, "cs_test", pass)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":101,"sku":"CB-1KG","manage_stock":true,"stock_quantity":12}`))
	}))

	product, err := client.GetProduct(context.Background(), "101")
	require.NoError(t, err)
	assert.Equal(t, "101", product.ProductID)
	assert.Equal(t, "CB-1KG", product.SKU)
	assert.True(t, product.ManageStock)
	assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(12)))
}

func TestGetProduct_NotFound(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"product_invalid_id","message":"Invalid ID."}`))
	}))

	_, err := client.GetProduct(context.Background(), "999")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProduct_RejectsNonNumericID(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an invalid ID")
	}))

	_, err := client.GetProduct(context.Background(), "abc")
	require.Error(t, err)
}

func TestUpdateStock_SendsPartialUpdate(t *testing.T) {
	var got stockUpdatePayload
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/products/101", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"id":101}`))
	}))

	err := client.UpdateStock(context.Background(), "101", decimal.NewFromInt(7))
	require.NoError(t, err)
	assert.True(t, got.StockQuantity.Equal(decimal.NewFromInt(7)))
}

func TestUpdateStock_APIError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"code":"internal","message":"boom"}`))
	}))

	err := client.UpdateStock(context.Background(), "101", decimal.NewFromInt(7))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Contains(t, err.Error(), "boom")
}

func TestListOrdersCompletedOn(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "completed", r.URL.Query().Get("status"))
		assert.Equal(t, "2026-03-01", r.URL.Query().Get("date"))

		w.Write([]byte(`[
			{
				"id": 77,
				"total": "36.00",
				"payment_method": "card",
				"date_completed": "2026-03-01T17:45:00Z",
				"line_items": [
					{"product_id":101,"sku":"CB-1KG","name":"Coffee beans 1kg","quantity":3,"price":"10.00","tax_rate":"20"}
				]
			}
		]`))
	}))

	orders, err := client.ListOrdersCompletedOn(context.Background(), time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, orders, 1)

	order := orders[0]
	assert.Equal(t, "77", order.OrderID)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("36.00")))
	assert.Equal(t, "card", order.PaymentMethod)
	assert.Equal(t, 2026, order.CompletedAt.Year())
	require.Len(t, order.Items, 1)
	assert.Equal(t, "101", order.Items[0].ProductID)
	assert.True(t, order.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, order.Items[0].VATRate.Equal(decimal.NewFromInt(20)))
}

func TestListOrders_EmptyDay(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))

	orders, err := client.ListOrdersCompletedOn(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestClient_StoreUnreachable(t *testing.T) {
	client, server := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	_, err := client.GetProduct(context.Background(), "101")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable")
}
