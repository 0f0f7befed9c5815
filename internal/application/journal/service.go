package journal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	appdocument "github.com/retaildocs/backend/internal/application/document"
	"github.com/retaildocs/backend/internal/domain/cashcontrol"
	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/inventory"
	"github.com/retaildocs/backend/internal/domain/numbering"
	"github.com/retaildocs/backend/internal/domain/shared"
)

// CreateRequest asks for the sales journal of a date
type CreateRequest struct {
	JournalDate time.Time `json:"journal_date" binding:"required"`
}

// Stats summarises what went into a journal
type Stats struct {
	InvoiceCount       int `json:"invoice_count"`
	ExternalOrderCount int `json:"external_order_count"`
	LineCount          int `json:"line_count"`
}

// Response is the created journal with its consolidation stats and VAT summary
type Response struct {
	Document   appdocument.DocumentResponse `json:"document"`
	Stats      Stats                        `json:"stats"`
	VATSummary []VATSummaryLine             `json:"vat_summary"`
}

// Service consolidates a date's sales into a journal document
type Service struct {
	docs     document.Repository
	controls cashcontrol.Repository
	gateway  inventory.StockGateway
	numbers  numbering.Generator
	log      *zap.Logger
}

// NewService creates a new journal Service
func NewService(docs document.Repository, controls cashcontrol.Repository, gateway inventory.StockGateway, numbers numbering.Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		docs:     docs,
		controls: controls,
		gateway:  gateway,
		numbers:  numbers,
		log:      log,
	}
}

// Create builds and persists the sales journal for a date. The cash control
// for that date must exist and be closed; line items from paid local invoices
// and completed external orders are merged per product before persisting.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Response, error) {
	if req.JournalDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Journal date is required")
	}
	date := req.JournalDate.Truncate(24 * time.Hour)

	control, err := s.controls.FindByDate(ctx, date)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("PRECONDITION_FAILED",
				fmt.Sprintf("No cash control exists for %s", date.Format("2006-01-02")))
		}
		return nil, err
	}
	if !control.IsClosed() {
		return nil, shared.NewDomainError("PRECONDITION_FAILED",
			fmt.Sprintf("Cash control for %s must be closed before creating the journal", date.Format("2006-01-02")))
	}

	invoices, err := s.docs.FindPaidInvoicesByDate(ctx, date, document.SourceExternal)
	if err != nil {
		return nil, err
	}
	orders, err := s.gateway.ListOrdersCompletedOn(ctx, date)
	if err != nil {
		return nil, shared.NewDomainError("EXTERNAL_SYSTEM_ERROR",
			fmt.Sprintf("Could not list external orders: %v", err))
	}

	lines := make([]SourceLine, 0)
	for i := range invoices {
		for j := range invoices[i].Items {
			item := &invoices[i].Items[j]
			lines = append(lines, SourceLine{
				ProductID:   item.ProductID,
				SKU:         item.SKU,
				Name:        item.Name,
				Quantity:    item.Quantity,
				UnitPriceHT: item.UnitPriceHT,
				VATRate:     item.VATRate,
			})
		}
	}
	for i := range orders {
		for j := range orders[i].Items {
			item := &orders[i].Items[j]
			lines = append(lines, SourceLine{
				ProductID:   item.ProductID,
				SKU:         item.SKU,
				Name:        item.Name,
				Quantity:    item.Quantity,
				UnitPriceHT: item.UnitPriceHT,
				VATRate:     item.VATRate,
			})
		}
	}

	merged := Consolidate(lines)
	if len(merged) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR",
			fmt.Sprintf("No paid invoices or completed external orders found for %s", date.Format("2006-01-02")))
	}

	number, err := s.numbers.NextNumber(ctx, document.TypeSalesJournal.String(), date.Year())
	if err != nil {
		return nil, err
	}

	doc, err := document.NewDocument(document.TypeSalesJournal, number,
		"Daily sales "+date.Format("2006-01-02"), date)
	if err != nil {
		return nil, err
	}
	for _, line := range merged {
		if _, err := doc.AddLine(line.ProductID, line.SKU, line.Name, line.Quantity, line.UnitPriceHT, line.VATRate); err != nil {
			return nil, err
		}
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.log.Info("sales journal created",
		zap.String("number", doc.Number),
		zap.String("date", date.Format("2006-01-02")),
		zap.Int("lines", len(doc.Items)),
		zap.String("total", doc.TotalTTC.String()))

	return &Response{
		Document: appdocument.ToDocumentResponse(doc),
		Stats: Stats{
			InvoiceCount:       len(invoices),
			ExternalOrderCount: len(orders),
			LineCount:          len(doc.Items),
		},
		VATSummary: SummarizeVAT(doc.Items),
	}, nil
}
