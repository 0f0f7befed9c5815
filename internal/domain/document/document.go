package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retaildocs/backend/internal/domain/shared"
)

// Type identifies the kind of commercial document
type Type string

const (
	TypeDeliveryNote  Type = "delivery_note"
	TypePurchaseOrder Type = "purchase_order"
	TypeReturnNote    Type = "return_note"
	TypeInvoice       Type = "invoice"
	TypeSalesJournal  Type = "sales_journal"
)

// IsValid checks if the type is a known document type
func (t Type) IsValid() bool {
	switch t {
	case TypeDeliveryNote, TypePurchaseOrder, TypeReturnNote, TypeInvoice, TypeSalesJournal:
		return true
	}
	return false
}

// String returns the string representation of Type
func (t Type) String() string {
	return string(t)
}

// InitialStatus returns the status a freshly created document of this type carries
func (t Type) InitialStatus() Status {
	switch t {
	case TypeInvoice:
		return StatusDraft
	case TypeSalesJournal:
		return StatusFinal
	default:
		return StatusPending
	}
}

// Source distinguishes locally created documents from ones derived from external orders
type Source string

const (
	SourceLocal    Source = "local"
	SourceExternal Source = "external_order"
)

// Document represents any numbered commercial document: delivery note, purchase
// order, return note, invoice or sales journal. All five share the same shape
// and differ only in status vocabulary and side effects.
type Document struct {
	shared.BaseAggregateRoot
	Number           string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Type             Type            `gorm:"type:varchar(30);not null;index"`
	CounterpartyID   *uuid.UUID      `gorm:"type:uuid;index"`
	CounterpartyName string          `gorm:"type:varchar(200);not null"`
	DocumentDate     time.Time       `gorm:"not null;index"`
	Status           Status          `gorm:"type:varchar(20);not null;index"`
	Source           Source          `gorm:"type:varchar(20);not null;default:'local'"`
	Notes            string          `gorm:"type:text"`
	SubtotalHT       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalVAT         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalTTC         decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentMethod    string          `gorm:"type:varchar(50)"`
	PaidDate         *time.Time      `gorm:"index"`
	Items            []LineItem      `gorm:"foreignKey:DocumentID;references:ID"`
}

// TableName returns the table name for GORM
func (Document) TableName() string {
	return "documents"
}

// NewDocument creates a new document with its assigned number.
// Totals start at zero and are derived from line items as they are added.
func NewDocument(docType Type, number, counterpartyName string, documentDate time.Time) (*Document, error) {
	if !docType.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown document type")
	}
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document number cannot be empty")
	}
	if counterpartyName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Counterparty name cannot be empty")
	}
	if documentDate.IsZero() {
		documentDate = time.Now()
	}

	return &Document{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		Type:              docType,
		CounterpartyName:  counterpartyName,
		DocumentDate:      documentDate,
		Status:            docType.InitialStatus(),
		Source:            SourceLocal,
		SubtotalHT:        decimal.Zero,
		TotalVAT:          decimal.Zero,
		TotalTTC:          decimal.Zero,
		Items:             make([]LineItem, 0),
	}, nil
}

// SetCounterpartyID attaches the counterparty reference
func (d *Document) SetCounterpartyID(id uuid.UUID) {
	d.CounterpartyID = &id
	d.UpdatedAt = time.Now()
}

// SetNotes sets the free-form notes
func (d *Document) SetNotes(notes string) {
	d.Notes = notes
	d.UpdatedAt = time.Now()
}

// SetSource marks where the document originated
func (d *Document) SetSource(source Source) {
	d.Source = source
	d.UpdatedAt = time.Now()
}

// IsEditable reports whether header and line items may still be modified.
// Documents become read-only once they leave their initial editable state.
func (d *Document) IsEditable() bool {
	switch d.Type {
	case TypeInvoice:
		return d.Status == StatusDraft
	case TypeSalesJournal:
		return false
	default:
		return d.Status == StatusPending
	}
}

// AddLine appends a line item and re-derives the document totals
func (d *Document) AddLine(productID, sku, name string, quantity, unitPriceHT, vatRate decimal.Decimal) (*LineItem, error) {
	item, err := NewLineItem(d.ID, productID, sku, name, quantity, unitPriceHT, vatRate)
	if err != nil {
		return nil, err
	}

	d.Items = append(d.Items, *item)
	d.recalculateTotals()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return item, nil
}

// ReplaceLines swaps the entire line item set. Line items are never diffed
// individually: an edit deletes and recreates them wholesale.
// Only allowed while the document is editable.
func (d *Document) ReplaceLines(items []LineItem) error {
	if !d.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit line items in current status")
	}
	if len(items) == 0 {
		return shared.NewDomainError("VALIDATION_ERROR", "Document must have at least one line item")
	}

	for i := range items {
		items[i].DocumentID = d.ID
	}
	d.Items = items
	d.recalculateTotals()
	d.UpdatedAt = time.Now()
	d.IncrementVersion()

	return nil
}

// UpdateCounterparty updates the counterparty fields while editable
func (d *Document) UpdateCounterparty(name string, id *uuid.UUID) error {
	if !d.IsEditable() {
		return shared.NewDomainError("INVALID_STATE", "Cannot edit document in current status")
	}
	if name == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "Counterparty name cannot be empty")
	}
	d.CounterpartyName = name
	d.CounterpartyID = id
	d.UpdatedAt = time.Now()
	d.IncrementVersion()
	return nil
}

// recalculateTotals re-derives the monetary totals from the line items.
// Totals are never set directly.
func (d *Document) recalculateTotals() {
	subtotal := decimal.Zero
	vat := decimal.Zero
	for i := range d.Items {
		subtotal = subtotal.Add(d.Items[i].TotalHT)
		vat = vat.Add(d.Items[i].VATAmount)
	}
	d.SubtotalHT = subtotal
	d.TotalVAT = vat
	d.TotalTTC = subtotal.Add(vat)
}

// FindItem returns the line item with the given ID, or nil
func (d *Document) FindItem(itemID uuid.UUID) *LineItem {
	for i := range d.Items {
		if d.Items[i].ID == itemID {
			return &d.Items[i]
		}
	}
	return nil
}
