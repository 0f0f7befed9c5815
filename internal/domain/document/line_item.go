package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retaildocs/backend/internal/domain/shared"
)

// LineItem is one product entry within a document. ProductID is the external
// inventory system's product reference; it may be empty for lines that do not
// touch stock. ReceivedQuantity is only meaningful on purchase orders, where it
// records the cumulative quantity already applied to external stock.
type LineItem struct {
	ID               uuid.UUID       `gorm:"type:uuid;primary_key"`
	DocumentID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID        string          `gorm:"type:varchar(64);index"`
	SKU              string          `gorm:"type:varchar(100)"`
	Name             string          `gorm:"type:varchar(200);not null"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,3);not null"`
	ReceivedQuantity decimal.Decimal `gorm:"type:decimal(18,3);not null;default:0"`
	UnitPriceHT      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	TotalHT          decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	VATRate          decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	VATAmount        decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (LineItem) TableName() string {
	return "document_line_items"
}

// NewLineItem creates a line item with derived monetary fields
func NewLineItem(documentID uuid.UUID, productID, sku, name string, quantity, unitPriceHT, vatRate decimal.Decimal) (*LineItem, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line item name cannot be empty")
	}
	if quantity.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Line item quantity must be positive")
	}
	if unitPriceHT.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unit price cannot be negative")
	}
	if vatRate.IsNegative() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "VAT rate cannot be negative")
	}

	now := time.Now()
	totalHT := quantity.Mul(unitPriceHT).Round(2)
	vatAmount := totalHT.Mul(vatRate).Div(decimal.NewFromInt(100)).Round(2)

	return &LineItem{
		ID:               uuid.New(),
		DocumentID:       documentID,
		ProductID:        productID,
		SKU:              sku,
		Name:             name,
		Quantity:         quantity,
		ReceivedQuantity: decimal.Zero,
		UnitPriceHT:      unitPriceHT,
		TotalHT:          totalHT,
		VATAmount:        vatAmount,
		VATRate:          vatRate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// IsFullyReceived returns true if the received quantity covers the ordered quantity
func (i *LineItem) IsFullyReceived() bool {
	return i.ReceivedQuantity.GreaterThanOrEqual(i.Quantity)
}

// TouchesStock reports whether this line participates in inventory reconciliation
func (i *LineItem) TouchesStock() bool {
	return i.ProductID != "" && i.Quantity.GreaterThan(decimal.Zero)
}
