package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/shared"
)

// GormDocumentRepository implements document.Repository using GORM
type GormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GormDocumentRepository
func NewGormDocumentRepository(db *gorm.DB) *GormDocumentRepository {
	return &GormDocumentRepository{db: db}
}

// FindByID finds a document with its line items by ID
func (r *GormDocumentRepository) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).Preload("Items").First(&doc, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindByNumber finds a document by its human-readable number
func (r *GormDocumentRepository) FindByNumber(ctx context.Context, number string) (*document.Document, error) {
	var doc document.Document
	if err := r.db.WithContext(ctx).Preload("Items").
		Where("number = ?", number).
		First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// FindAll finds documents of a type with filtering, newest document date first
func (r *GormDocumentRepository) FindAll(ctx context.Context, docType document.Type, filter shared.Filter) ([]document.Document, error) {
	var docs []document.Document
	query := r.applyFilter(r.db.WithContext(ctx), docType, filter)
	if err := query.Preload("Items").
		Order("document_date DESC, number DESC").
		Offset(filter.Offset()).
		Limit(filter.Limit()).
		Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Count counts documents of a type matching the filter
func (r *GormDocumentRepository) Count(ctx context.Context, docType document.Type, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilter(r.db.WithContext(ctx).Model(&document.Document{}), docType, filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPaidInvoicesByDate finds invoices paid on the given date, excluding the
// given source. Cash control and journal consolidation pass SourceExternal
// here so invoices mirroring external orders are not double counted.
func (r *GormDocumentRepository) FindPaidInvoicesByDate(ctx context.Context, paidDate time.Time, excludeSource document.Source) ([]document.Document, error) {
	var docs []document.Document
	day := paidDate.Truncate(24 * time.Hour)
	query := r.db.WithContext(ctx).Preload("Items").
		Where("type = ? AND status = ? AND paid_date = ?",
			document.TypeInvoice, document.StatusPaid, day)
	if excludeSource != "" {
		query = query.Where("source <> ?", excludeSource)
	}
	if err := query.Order("number ASC").Find(&docs).Error; err != nil {
		return nil, err
	}
	return docs, nil
}

// Create persists the document header and all its line items in one
// transaction, so nothing survives a partial failure
func (r *GormDocumentRepository) Create(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(doc).Error
	})
}

// Update persists header changes and replaces the line item set wholesale
func (r *GormDocumentRepository) Update(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", doc.ID).
			Delete(&document.LineItem{}).Error; err != nil {
			return err
		}
		// Session without full-save association handling: items are saved
		// explicitly below
		if err := tx.Omit("Items").Save(doc).Error; err != nil {
			return err
		}
		for i := range doc.Items {
			if err := tx.Create(&doc.Items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Save persists header-level mutations plus per-line received quantities
// without touching the line item set itself
func (r *GormDocumentRepository) Save(ctx context.Context, doc *document.Document) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(doc).Error; err != nil {
			return err
		}
		for i := range doc.Items {
			if err := tx.Model(&document.LineItem{}).
				Where("id = ?", doc.Items[i].ID).
				Updates(map[string]interface{}{
					"received_quantity": doc.Items[i].ReceivedQuantity,
					"updated_at":        doc.Items[i].UpdatedAt,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Delete removes a document and its line items
func (r *GormDocumentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("document_id = ?", id).
			Delete(&document.LineItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&document.Document{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

func (r *GormDocumentRepository) applyFilter(query *gorm.DB, docType document.Type, filter shared.Filter) *gorm.DB {
	query = query.Where("type = ?", docType)
	if status, ok := filter.Filters["status"]; ok {
		query = query.Where("status = ?", status)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("number LIKE ? OR counterparty_name LIKE ?", pattern, pattern)
	}
	return query
}
