package cashcontrol

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retaildocs/backend/internal/domain/cashcontrol"
	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/inventory"
	"github.com/retaildocs/backend/internal/domain/numbering"
	"github.com/retaildocs/backend/internal/domain/shared"
)

// CloseRequest asks to close the cash control for a date
type CloseRequest struct {
	ControlDate time.Time `json:"control_date" binding:"required"`
	Notes       string    `json:"notes"`
}

// CashControlResponse is the wire form of a cash control
type CashControlResponse struct {
	Number        string             `json:"number"`
	ControlDate   time.Time          `json:"control_date"`
	CashTotal     decimal.Decimal    `json:"cash_total"`
	TransferTotal decimal.Decimal    `json:"transfer_total"`
	ChequeTotal   decimal.Decimal    `json:"cheque_total"`
	TotalAmount   decimal.Decimal    `json:"total_amount"`
	Status        cashcontrol.Status `json:"status"`
	Notes         string             `json:"notes,omitempty"`
}

// CloseResponse is a closed cash control plus aggregation stats
type CloseResponse struct {
	Control            CashControlResponse `json:"control"`
	InvoiceCount       int                 `json:"invoice_count"`
	ExternalOrderCount int                 `json:"external_order_count"`
}

// Service closes cash controls and gates sales journal creation on them
type Service struct {
	controls cashcontrol.Repository
	docs     document.Repository
	gateway  inventory.StockGateway
	numbers  numbering.Generator
	log      *zap.Logger
}

// NewService creates a new cash control Service
func NewService(controls cashcontrol.Repository, docs document.Repository, gateway inventory.StockGateway, numbers numbering.Generator, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		controls: controls,
		docs:     docs,
		gateway:  gateway,
		numbers:  numbers,
		log:      log,
	}
}

// Close aggregates the day's payments into a new closed cash control.
// Paid local invoices are bucketed by payment channel alongside external
// orders completed that date; invoices sourced from external orders are
// excluded so their amounts are not counted twice.
func (s *Service) Close(ctx context.Context, req CloseRequest) (*CloseResponse, error) {
	if req.ControlDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Control date is required")
	}
	date := req.ControlDate.Truncate(24 * time.Hour)

	exists, err := s.controls.ExistsForDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("CONFLICT",
			fmt.Sprintf("A cash control already exists for %s", date.Format("2006-01-02")))
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

	number, err := s.numbers.NextNumber(ctx, "cash_control", date.Year())
	if err != nil {
		return nil, err
	}

	control, err := cashcontrol.NewCashControl(number, date)
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		if err := control.AddPayment(invoices[i].PaymentMethod, invoices[i].TotalTTC); err != nil {
			return nil, err
		}
	}
	for i := range orders {
		if err := control.AddPayment(orders[i].PaymentMethod, orders[i].Total); err != nil {
			return nil, err
		}
	}
	if err := control.Close(req.Notes); err != nil {
		return nil, err
	}

	if err := s.controls.Create(ctx, control); err != nil {
		return nil, err
	}

	s.log.Info("cash control closed",
		zap.String("number", control.Number),
		zap.String("date", date.Format("2006-01-02")),
		zap.String("total", control.TotalAmount.String()),
		zap.Int("invoices", len(invoices)),
		zap.Int("external_orders", len(orders)))

	return &CloseResponse{
		Control:            toResponse(control),
		InvoiceCount:       len(invoices),
		ExternalOrderCount: len(orders),
	}, nil
}

// GetByDate retrieves the cash control for a date
func (s *Service) GetByDate(ctx context.Context, date time.Time) (*CashControlResponse, error) {
	control, err := s.controls.FindByDate(ctx, date.Truncate(24*time.Hour))
	if err != nil {
		return nil, err
	}
	resp := toResponse(control)
	return &resp, nil
}

// CanCreateJournal reports whether the sales journal for a date may be
// produced: true iff a cash control exists for the date and is closed
func (s *Service) CanCreateJournal(ctx context.Context, date time.Time) (bool, error) {
	control, err := s.controls.FindByDate(ctx, date.Truncate(24*time.Hour))
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return control.IsClosed(), nil
}

func toResponse(c *cashcontrol.CashControl) CashControlResponse {
	return CashControlResponse{
		Number:        c.Number,
		ControlDate:   c.ControlDate,
		CashTotal:     c.CashTotal,
		TransferTotal: c.TransferTotal,
		ChequeTotal:   c.ChequeTotal,
		TotalAmount:   c.TotalAmount,
		Status:        c.Status,
		Notes:         c.Notes,
	}
}
