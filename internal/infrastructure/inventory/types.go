package inventory

import "github.com/shopspring/decimal"

// productPayload is the store API's product resource, reduced to the fields
// stock reconciliation needs
type productPayload struct {
	ID            int64           `json:"id"`
	SKU           string          `json:"sku"`
	ManageStock   bool            `json:"manage_stock"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// stockUpdatePayload is the partial update body for a stock write
type stockUpdatePayload struct {
	StockQuantity decimal.Decimal `json:"stock_quantity"`
}

// orderLinePayload is one line of a store order
type orderLinePayload struct {
	ProductID int64           `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
}

// orderPayload is one store order from the orders listing
type orderPayload struct {
	ID            int64              `json:"id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	DateCompleted string             `json:"date_completed"`
	LineItems     []orderLinePayload `json:"line_items"`
}

// errorPayload is the store API's error envelope
type errorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
