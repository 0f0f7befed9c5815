package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retaildocs/backend/internal/domain/numbering"
)

// GormSequenceRepository issues document numbers from per-type, per-year
// counter rows. Counter rows are created lazily on first use.
type GormSequenceRepository struct {
	db *gorm.DB
}

// NewGormSequenceRepository creates a new GormSequenceRepository
func NewGormSequenceRepository(db *gorm.DB) *GormSequenceRepository {
	return &GormSequenceRepository{db: db}
}

// NextNumber atomically increments the counter for (documentType, year) and
// returns the formatted number. The increment runs as a single UPDATE inside
// a transaction, so concurrent callers serialize on the counter row and never
// see the same value. A number handed out is never reused, even when the
// document it was issued for fails to persist.
func (r *GormSequenceRepository) NextNumber(ctx context.Context, documentType string, year int) (string, error) {
	prefix, err := numbering.PrefixFor(documentType)
	if err != nil {
		return "", err
	}

	var current int64
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter, err := numbering.NewCounter(documentType, year)
		if err != nil {
			return err
		}
		// Insert-or-ignore keeps the first-use path race-free across connections
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_type"}, {Name: "year"}},
			DoNothing: true,
		}).Create(counter).Error; err != nil {
			return err
		}

		res := tx.Model(&numbering.Counter{}).
			Where("document_type = ? AND year = ?", documentType, year).
			UpdateColumn("current_number", gorm.Expr("current_number + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("sequence counter missing for %s/%d", documentType, year)
		}

		var row numbering.Counter
		if err := tx.Where("document_type = ? AND year = ?", documentType, year).
			First(&row).Error; err != nil {
			return err
		}
		current = row.CurrentNumber
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("next number for %s/%d: %w", documentType, year, err)
	}

	return numbering.FormatNumber(prefix, year, current), nil
}
