package cashcontrol

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for cash control persistence
type Repository interface {
	// FindByID finds a cash control by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CashControl, error)

	// FindByDate finds the cash control for a date, or shared.ErrNotFound
	FindByDate(ctx context.Context, date time.Time) (*CashControl, error)

	// ExistsForDate reports whether any cash control exists for a date
	ExistsForDate(ctx context.Context, date time.Time) (bool, error)

	// Create persists a new cash control; the unique date constraint makes
	// concurrent duplicate creation fail at the store
	Create(ctx context.Context, control *CashControl) error

	// Save updates an existing cash control
	Save(ctx context.Context, control *CashControl) error
}
