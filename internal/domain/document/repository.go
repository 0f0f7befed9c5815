package document

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/retaildocs/backend/internal/domain/shared"
)

// Repository defines the interface for document persistence
type Repository interface {
	// FindByID finds a document with its line items by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Document, error)

	// FindByNumber finds a document by its human-readable number
	FindByNumber(ctx context.Context, number string) (*Document, error)

	// FindAll finds documents of a type with filtering
	FindAll(ctx context.Context, docType Type, filter shared.Filter) ([]Document, error)

	// Count counts documents of a type matching the filter
	Count(ctx context.Context, docType Type, filter shared.Filter) (int64, error)

	// FindPaidInvoicesByDate finds invoices paid on the given date, excluding
	// the given source (pass SourceExternal to skip order-sourced invoices)
	FindPaidInvoicesByDate(ctx context.Context, paidDate time.Time, excludeSource Source) ([]Document, error)

	// Create persists a new document header and all its line items atomically.
	// Nothing survives a partial failure.
	Create(ctx context.Context, doc *Document) error

	// Update persists header changes and replaces the line item set wholesale
	Update(ctx context.Context, doc *Document) error

	// Save persists header-level mutations (status, payment fields, received
	// quantities) without replacing the line item set
	Save(ctx context.Context, doc *Document) error

	// Delete removes a document and its line items
	Delete(ctx context.Context, id uuid.UUID) error
}
