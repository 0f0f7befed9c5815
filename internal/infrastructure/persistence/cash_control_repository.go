package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retaildocs/backend/internal/domain/cashcontrol"
	"github.com/retaildocs/backend/internal/domain/shared"
)

// GormCashControlRepository implements cashcontrol.Repository using GORM
type GormCashControlRepository struct {
	db *gorm.DB
}

// NewGormCashControlRepository creates a new GormCashControlRepository
func NewGormCashControlRepository(db *gorm.DB) *GormCashControlRepository {
	return &GormCashControlRepository{db: db}
}

// FindByID finds a cash control by ID
func (r *GormCashControlRepository) FindByID(ctx context.Context, id uuid.UUID) (*cashcontrol.CashControl, error) {
	var control cashcontrol.CashControl
	if err := r.db.WithContext(ctx).First(&control, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &control, nil
}

// FindByDate finds the cash control for a date
func (r *GormCashControlRepository) FindByDate(ctx context.Context, date time.Time) (*cashcontrol.CashControl, error) {
	var control cashcontrol.CashControl
	if err := r.db.WithContext(ctx).
		Where("control_date = ?", date.Truncate(24*time.Hour)).
		First(&control).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &control, nil
}

// ExistsForDate reports whether any cash control exists for a date
func (r *GormCashControlRepository) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&cashcontrol.CashControl{}).
		Where("control_date = ?", date.Truncate(24*time.Hour)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create persists a new cash control. The unique index on control_date turns
// concurrent duplicate creation into a CONFLICT instead of a second row.
func (r *GormCashControlRepository) Create(ctx context.Context, control *cashcontrol.CashControl) error {
	if err := r.db.WithContext(ctx).Create(control).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.ErrConflict
		}
		return err
	}
	return nil
}

// Save updates an existing cash control
func (r *GormCashControlRepository) Save(ctx context.Context, control *cashcontrol.CashControl) error {
	return r.db.WithContext(ctx).Save(control).Error
}
