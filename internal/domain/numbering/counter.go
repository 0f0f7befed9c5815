package numbering

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Counter is the per-document-type, per-year sequence row backing document numbers.
// CurrentNumber only ever increases; the number emitted for a document is the value
// after the increment, so a failed creation burns its number rather than reusing it.
type Counter struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	DocumentType  string    `gorm:"type:varchar(30);not null;uniqueIndex:idx_sequence_type_year,priority:1"`
	Year          int       `gorm:"not null;uniqueIndex:idx_sequence_type_year,priority:2"`
	Prefix        string    `gorm:"type:varchar(5);not null"`
	CurrentNumber int64     `gorm:"not null;default:0"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (Counter) TableName() string {
	return "sequence_counters"
}

// NewCounter creates a fresh counter row for a document type and year.
// CurrentNumber starts at zero; the first increment emits number 1.
func NewCounter(documentType string, year int) (*Counter, error) {
	prefix, err := PrefixFor(documentType)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Counter{
		ID:            uuid.New(),
		DocumentType:  documentType,
		Year:          year,
		Prefix:        prefix,
		CurrentNumber: 0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// Generator issues the next document number for a document type and year.
// Implementations must guarantee that two concurrent calls for the same
// (documentType, year) never return the same number.
type Generator interface {
	NextNumber(ctx context.Context, documentType string, year int) (string, error)
}

// prefixes maps document types to their number prefixes
var prefixes = map[string]string{
	"delivery_note":  "BL",
	"purchase_order": "BG",
	"return_note":    "BR",
	"invoice":        "FA",
	"sales_journal":  "JV",
	"cash_control":   "CC",
}

// PrefixFor returns the number prefix for a document type
func PrefixFor(documentType string) (string, error) {
	prefix, ok := prefixes[documentType]
	if !ok {
		return "", fmt.Errorf("no number prefix registered for document type %q", documentType)
	}
	return prefix, nil
}

// FormatNumber renders a document number as "{prefix}-{year}-{n padded to 4 digits}"
func FormatNumber(prefix string, year int, n int64) string {
	return fmt.Sprintf("%s-%d-%04d", prefix, year, n)
}
