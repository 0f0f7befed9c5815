package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	domain "github.com/retaildocs/backend/internal/domain/inventory"
)

// maxResponseSize bounds reads of store API responses (10MB)
const maxResponseSize = 10 * 1024 * 1024

// Client talks to the external store's REST API. The store remains the
// inventory system of record; this client only reads product stock, writes
// adjusted quantities back, and lists completed orders.
type Client struct {
	config     *Config
	httpClient *http.Client
}

// NewClient creates a new store API client with the given configuration
func NewClient(config *Config) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
	}, nil
}

// GetProduct fetches the product record from the store API
func (c *Client) GetProduct(ctx context.Context, productID string) (*domain.ProductStock, error) {
	if _, err := strconv.ParseInt(productID, 10, 64); err != nil {
		return nil, fmt.Errorf("inventory: invalid product ID %q", productID)
	}

	body, status, err := c.doRequest(ctx, http.MethodGet, "/products/"+productID, nil, nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.ErrProductNotFound
	}
	if status >= 400 {
		return nil, apiError(status, body)
	}

	var payload productPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("inventory: failed to parse product response: %w", err)
	}

	return &domain.ProductStock{
		ProductID:     strconv.FormatInt(payload.ID, 10),
		SKU:           payload.SKU,
		ManageStock:   payload.ManageStock,
		StockQuantity: payload.StockQuantity,
	}, nil
}

// UpdateStock writes the new absolute stock quantity for a product. The body
// carries only the stock quantity; the store API treats it as a partial update.
func (c *Client) UpdateStock(ctx context.Context, productID string, quantity decimal.Decimal) error {
	if _, err := strconv.ParseInt(productID, 10, 64); err != nil {
		return fmt.Errorf("inventory: invalid product ID %q", productID)
	}

	reqBody, err := json.Marshal(stockUpdatePayload{StockQuantity: quantity})
	if err != nil {
		return fmt.Errorf("inventory: failed to encode stock update: %w", err)
	}

	body, status, err := c.doRequest(ctx, http.MethodPut, "/products/"+productID, nil, reqBody)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrProductNotFound
	}
	if status >= 400 {
		return apiError(status, body)
	}
	return nil
}

// ListOrdersCompletedOn lists store orders completed on the given date
func (c *Client) ListOrdersCompletedOn(ctx context.Context, date time.Time) ([]domain.ExternalOrder, error) {
	query := url.Values{}
	query.Set("status", "completed")
	query.Set("date", date.Format("2006-01-02"))

	body, status, err := c.doRequest(ctx, http.MethodGet, "/orders", query, nil)
	if err != nil {
		return nil, err
	}
	if status >= 400 {
		return nil, apiError(status, body)
	}

	var payloads []orderPayload
	if err := json.Unmarshal(body, &payloads); err != nil {
		return nil, fmt.Errorf("inventory: failed to parse orders response: %w", err)
	}

	orders := make([]domain.ExternalOrder, 0, len(payloads))
	for _, p := range payloads {
		order := domain.ExternalOrder{
			OrderID:       strconv.FormatInt(p.ID, 10),
			Total:         p.Total,
			PaymentMethod: p.PaymentMethod,
			Items:         make([]domain.ExternalOrderItem, 0, len(p.LineItems)),
		}
		if completed, err := time.Parse(time.RFC3339, p.DateCompleted); err == nil {
			order.CompletedAt = completed
		}
		for _, line := range p.LineItems {
			item := domain.ExternalOrderItem{
				SKU:         line.SKU,
				Name:        line.Name,
				Quantity:    line.Quantity,
				UnitPriceHT: line.Price,
				VATRate:     line.TaxRate,
			}
			if line.ProductID != 0 {
				item.ProductID = strconv.FormatInt(line.ProductID, 10)
			}
			order.Items = append(order.Items, item)
		}
		orders = append(orders, order)
	}

	return orders, nil
}

// doRequest performs one store API call and returns the bounded response body
// along with the HTTP status. Transport failures come back as errors; HTTP
// error statuses are left to the caller, which knows which ones carry meaning.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body []byte) ([]byte, int, error) {
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, 0, fmt.Errorf("inventory: failed to create request: %w", err)
	}
	req.SetBasicAuth(c.config.APIKey, c.config.APISecret)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("inventory: store unreachable: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, 0, fmt.Errorf("inventory: failed to read response: %w", err)
	}

	return respBody, resp.StatusCode, nil
}

// apiError turns a store API error response into a descriptive error
func apiError(status int, body []byte) error {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return fmt.Errorf("inventory: store API HTTP %d: %s", status, payload.Message)
	}
	return fmt.Errorf("inventory: store API HTTP %d", status)
}
