package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrProductNotFound indicates the external system has no product for the given ID
var ErrProductNotFound = errors.New("inventory: product not found")

// ProductStock is the external inventory system's view of a product
type ProductStock struct {
	ProductID     string
	SKU           string
	ManageStock   bool
	StockQuantity decimal.Decimal
}

// ExternalOrderItem is one line of an order completed in the external system
type ExternalOrderItem struct {
	ProductID   string
	SKU         string
	Name        string
	Quantity    decimal.Decimal
	UnitPriceHT decimal.Decimal
	VATRate     decimal.Decimal
}

// ExternalOrder is an order completed in the external system, used by cash
// control aggregation and journal consolidation
type ExternalOrder struct {
	OrderID       string
	Total         decimal.Decimal
	PaymentMethod string
	CompletedAt   time.Time
	Items         []ExternalOrderItem
}

// StockGateway talks to the external inventory system of record. Reads fetch
// the product resource; writes carry only the stock quantity (partial update).
type StockGateway interface {
	// GetProduct fetches the product record, ErrProductNotFound when absent
	GetProduct(ctx context.Context, productID string) (*ProductStock, error)

	// UpdateStock writes the new absolute stock quantity for a product
	UpdateStock(ctx context.Context, productID string, quantity decimal.Decimal) error

	// ListOrdersCompletedOn lists external orders completed on the given date
	ListOrdersCompletedOn(ctx context.Context, date time.Time) ([]ExternalOrder, error)
}
