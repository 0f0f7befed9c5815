package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/inventory"
)

// LineItemRequest is one line of a create/update document request
type LineItemRequest struct {
	ProductID   string          `json:"product_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity" binding:"required"`
	UnitPriceHT decimal.Decimal `json:"unit_price_ht"`
	VATRate     decimal.Decimal `json:"vat_rate"`
}

// CreateDocumentRequest is the caller-facing create-document body
type CreateDocumentRequest struct {
	Type             document.Type     `json:"type" binding:"required,doctype"`
	CounterpartyID   *uuid.UUID        `json:"counterparty_id"`
	CounterpartyName string            `json:"counterparty_name" binding:"required"`
	DocumentDate     time.Time         `json:"document_date"`
	Notes            string            `json:"notes"`
	Items            []LineItemRequest `json:"items" binding:"required"`
}

// UpdateDocumentRequest replaces the counterparty, notes and entire line set
type UpdateDocumentRequest struct {
	CounterpartyID   *uuid.UUID        `json:"counterparty_id"`
	CounterpartyName string            `json:"counterparty_name" binding:"required"`
	Notes            string            `json:"notes"`
	Items            []LineItemRequest `json:"items" binding:"required"`
}

// ChangeStatusRequest asks for a status transition
type ChangeStatusRequest struct {
	Status        document.Status `json:"status" binding:"required"`
	PaymentMethod string          `json:"payment_method"`
}

// ReceiveLineRequest reports the new cumulative received quantity for one line
type ReceiveLineRequest struct {
	LineItemID       uuid.UUID       `json:"line_item_id" binding:"required"`
	QuantityReceived decimal.Decimal `json:"quantity_received"`
}

// ReceiveRequest is the receive-purchase-order body
type ReceiveRequest struct {
	Lines []ReceiveLineRequest `json:"lines" binding:"required"`
}

// ListFilter narrows document listings
type ListFilter struct {
	Type     document.Type
	Status   *document.Status
	Page     int
	PageSize int
	Search   string
}

// LineItemResponse is the wire form of a line item
type LineItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	ProductID        string          `json:"product_id,omitempty"`
	SKU              string          `json:"sku,omitempty"`
	Name             string          `json:"name"`
	Quantity         decimal.Decimal `json:"quantity"`
	ReceivedQuantity decimal.Decimal `json:"received_quantity"`
	UnitPriceHT      decimal.Decimal `json:"unit_price_ht"`
	TotalHT          decimal.Decimal `json:"total_ht"`
	VATRate          decimal.Decimal `json:"vat_rate"`
	VATAmount        decimal.Decimal `json:"vat_amount"`
}

// DocumentResponse is the wire form of a document
type DocumentResponse struct {
	ID               uuid.UUID          `json:"id"`
	Number           string             `json:"number"`
	Type             document.Type      `json:"type"`
	CounterpartyID   *uuid.UUID         `json:"counterparty_id,omitempty"`
	CounterpartyName string             `json:"counterparty_name"`
	DocumentDate     time.Time          `json:"document_date"`
	Status           document.Status    `json:"status"`
	Source           document.Source    `json:"source"`
	Notes            string             `json:"notes,omitempty"`
	SubtotalHT       decimal.Decimal    `json:"subtotal_ht"`
	TotalVAT         decimal.Decimal    `json:"total_vat"`
	TotalTTC         decimal.Decimal    `json:"total_ttc"`
	PaymentMethod    string             `json:"payment_method,omitempty"`
	PaidDate         *time.Time         `json:"paid_date,omitempty"`
	Items            []LineItemResponse `json:"items"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

// StatusChangeResponse reports a transition outcome and any inventory side
// effect errors; a side-effect failure never rolls back the status change
type StatusChangeResponse struct {
	Document          DocumentResponse      `json:"document"`
	Changed           bool                  `json:"changed"`
	Message           string                `json:"message,omitempty"`
	StockUpdateCount  int                   `json:"stock_update_count"`
	StockUpdateErrors []inventory.ItemError `json:"stock_update_errors,omitempty"`
}

// ReceiveResponse reports a receiving outcome
type ReceiveResponse struct {
	Document          DocumentResponse      `json:"document"`
	AlreadyCompleted  bool                  `json:"already_completed"`
	StockUpdateCount  int                   `json:"stock_update_count"`
	StockUpdateErrors []inventory.ItemError `json:"stock_update_errors,omitempty"`
	Message           string                `json:"message,omitempty"`
}

// ToLineItemResponse maps a domain line item to its wire form
func ToLineItemResponse(item *document.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:               item.ID,
		ProductID:        item.ProductID,
		SKU:              item.SKU,
		Name:             item.Name,
		Quantity:         item.Quantity,
		ReceivedQuantity: item.ReceivedQuantity,
		UnitPriceHT:      item.UnitPriceHT,
		TotalHT:          item.TotalHT,
		VATRate:          item.VATRate,
		VATAmount:        item.VATAmount,
	}
}

// ToDocumentResponse maps a domain document to its wire form
func ToDocumentResponse(doc *document.Document) DocumentResponse {
	items := make([]LineItemResponse, 0, len(doc.Items))
	for i := range doc.Items {
		items = append(items, ToLineItemResponse(&doc.Items[i]))
	}
	return DocumentResponse{
		ID:               doc.ID,
		Number:           doc.Number,
		Type:             doc.Type,
		CounterpartyID:   doc.CounterpartyID,
		CounterpartyName: doc.CounterpartyName,
		DocumentDate:     doc.DocumentDate,
		Status:           doc.Status,
		Source:           doc.Source,
		Notes:            doc.Notes,
		SubtotalHT:       doc.SubtotalHT,
		TotalVAT:         doc.TotalVAT,
		TotalTTC:         doc.TotalTTC,
		PaymentMethod:    doc.PaymentMethod,
		PaidDate:         doc.PaidDate,
		Items:            items,
		CreatedAt:        doc.CreatedAt,
		UpdatedAt:        doc.UpdatedAt,
	}
}

// ToDocumentResponses maps a slice of documents
func ToDocumentResponses(docs []document.Document) []DocumentResponse {
	out := make([]DocumentResponse, 0, len(docs))
	for i := range docs {
		out = append(out, ToDocumentResponse(&docs[i]))
	}
	return out
}
