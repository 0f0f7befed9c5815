package cashcontrol

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/retaildocs/backend/internal/domain/shared"
)

// Status represents the cash control lifecycle
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Channel is the payment channel a payment is bucketed into
type Channel string

const (
	ChannelCash     Channel = "cash"
	ChannelTransfer Channel = "transfer"
	ChannelCheque   Channel = "cheque"
)

// ClassifyPaymentMethod buckets a free-form payment method string into a
// channel. Cash is the default for anything unrecognised.
func ClassifyPaymentMethod(method string) Channel {
	m := strings.ToLower(method)
	switch {
	case strings.Contains(m, "transfer"), strings.Contains(m, "bank"), strings.Contains(m, "virement"):
		return ChannelTransfer
	case strings.Contains(m, "cheque"), strings.Contains(m, "check"):
		return ChannelCheque
	default:
		return ChannelCash
	}
}

// CashControl is the per-date closing record of payment totals. At most one
// exists per date; a closed control is the gate for sales journal creation.
type CashControl struct {
	shared.BaseAggregateRoot
	Number        string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	ControlDate   time.Time       `gorm:"not null;uniqueIndex"`
	CashTotal     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TransferTotal decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	ChequeTotal   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Status        Status          `gorm:"type:varchar(10);not null;default:'open'"`
	Notes         string          `gorm:"type:text"`
	ClosedAt      *time.Time
}

// TableName returns the table name for GORM
func (CashControl) TableName() string {
	return "cash_controls"
}

// NewCashControl creates an open cash control for a date
func NewCashControl(number string, controlDate time.Time) (*CashControl, error) {
	if number == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Cash control number cannot be empty")
	}
	if controlDate.IsZero() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Control date cannot be empty")
	}

	return &CashControl{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Number:            number,
		ControlDate:       controlDate.Truncate(24 * time.Hour),
		CashTotal:         decimal.Zero,
		TransferTotal:     decimal.Zero,
		ChequeTotal:       decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            StatusOpen,
	}, nil
}

// AddPayment accumulates an amount into the channel derived from the payment method
func (c *CashControl) AddPayment(method string, amount decimal.Decimal) error {
	if c.Status == StatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cannot add payments to a closed cash control")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("VALIDATION_ERROR", "Payment amount cannot be negative")
	}

	switch ClassifyPaymentMethod(method) {
	case ChannelTransfer:
		c.TransferTotal = c.TransferTotal.Add(amount)
	case ChannelCheque:
		c.ChequeTotal = c.ChequeTotal.Add(amount)
	default:
		c.CashTotal = c.CashTotal.Add(amount)
	}
	c.TotalAmount = c.CashTotal.Add(c.TransferTotal).Add(c.ChequeTotal)
	c.UpdatedAt = time.Now()

	return nil
}

// Close marks the control closed. A closed control for a date allows the
// sales journal for that date to be produced.
func (c *CashControl) Close(notes string) error {
	if c.Status == StatusClosed {
		return shared.NewDomainError("INVALID_STATE", "Cash control is already closed")
	}

	now := time.Now()
	c.Status = StatusClosed
	c.Notes = notes
	c.ClosedAt = &now
	c.UpdatedAt = now
	c.IncrementVersion()

	return nil
}

// IsClosed reports whether the control has been closed
func (c *CashControl) IsClosed() bool {
	return c.Status == StatusClosed
}
