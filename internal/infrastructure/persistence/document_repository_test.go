package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/shared"
)

func testDate() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

func newStoredDocument(t *testing.T, repo *GormDocumentRepository, number string) *document.Document {
	t.Helper()
	doc, err := document.NewDocument(document.TypeDeliveryNote, number, "Fournisseur Nord", testDate())
	require.NoError(t, err)
	_, err = doc.AddLine("101", "CB-1KG", "Coffee beans 1kg", dec("4"), dec("10.00"), dec("20"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), doc))
	return doc
}

func TestDocumentRepository_CreateAndFind(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	doc := newStoredDocument(t, repo, "BL-2026-0001")

	found, err := repo.FindByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, "BL-2026-0001", found.Number)
	require.Len(t, found.Items, 1)
	assert.Equal(t, "101", found.Items[0].ProductID)
	assert.True(t, found.SubtotalHT.Equal(dec("40.00")))

	byNumber, err := repo.FindByNumber(context.Background(), "BL-2026-0001")
	require.NoError(t, err)
	assert.Equal(t, doc.ID, byNumber.ID)
}

func TestDocumentRepository_NotFound(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = repo.FindByNumber(context.Background(), "BL-2026-9999")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDocumentRepository_DuplicateNumberRejected(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	newStoredDocument(t, repo, "BL-2026-0001")

	dup, err := document.NewDocument(document.TypeDeliveryNote, "BL-2026-0001", "Autre", testDate())
	require.NoError(t, err)
	_, err = dup.AddLine("", "", "Thing", dec("1"), dec("1.00"), dec("0"))
	require.NoError(t, err)

	assert.Error(t, repo.Create(context.Background(), dup))
}

func TestDocumentRepository_UpdateReplacesLines(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	doc := newStoredDocument(t, repo, "BL-2026-0001")

	items := []document.LineItem{}
	item, err := document.NewLineItem(doc.ID, "102", "", "Filter pack", dec("2"), dec("4.50"), dec("20"))
	require.NoError(t, err)
	items = append(items, *item)
	require.NoError(t, doc.ReplaceLines(items))
	require.NoError(t, repo.Update(context.Background(), doc))

	found, err := repo.FindByID(context.Background(), doc.ID)
	require.NoError(t, err)
	require.Len(t, found.Items, 1, "old line set is gone")
	assert.Equal(t, "102", found.Items[0].ProductID)
	assert.True(t, found.SubtotalHT.Equal(dec("9.00")))
}

func TestDocumentRepository_SavePersistsStatusAndReceivedQuantities(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))

	doc, err := document.NewDocument(document.TypePurchaseOrder, "BG-2026-0001", "Fournisseur Nord", testDate())
	require.NoError(t, err)
	_, err = doc.AddLine("101", "", "Coffee beans 1kg", dec("4"), dec("10.00"), dec("20"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), doc))

	_, err = doc.ApplyReceivedQuantities(map[uuid.UUID]decimal.Decimal{doc.Items[0].ID: dec("3")}, time.Now())
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), doc))

	found, err := repo.FindByID(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, document.StatusPartial, found.Status)
	assert.True(t, found.Items[0].ReceivedQuantity.Equal(dec("3")))
}

func TestDocumentRepository_FindAllAndCount(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	newStoredDocument(t, repo, "BL-2026-0001")
	newStoredDocument(t, repo, "BL-2026-0002")

	other, err := document.NewDocument(document.TypeInvoice, "FA-2026-0001", "Cafe du Port", testDate())
	require.NoError(t, err)
	_, err = other.AddLine("", "", "Service", dec("1"), dec("100.00"), dec("20"))
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), other))

	docs, err := repo.FindAll(context.Background(), document.TypeDeliveryNote, shared.Filter{})
	require.NoError(t, err)
	assert.Len(t, docs, 2, "invoice is not listed among delivery notes")

	count, err := repo.Count(context.Background(), document.TypeDeliveryNote, shared.Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	filtered, err := repo.FindAll(context.Background(), document.TypeDeliveryNote, shared.Filter{Search: "0002"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "BL-2026-0002", filtered[0].Number)
}

func TestDocumentRepository_FindPaidInvoicesByDate(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	ctx := context.Background()

	mkInvoice := func(number string, source document.Source, paid bool) {
		doc, err := document.NewDocument(document.TypeInvoice, number, "Cafe du Port", testDate())
		require.NoError(t, err)
		doc.SetSource(source)
		_, err = doc.AddLine("", "", "Service", dec("1"), dec("100.00"), dec("20"))
		require.NoError(t, err)
		if paid {
			_, err = doc.ChangeStatus(document.StatusPaid, "cash", testDate())
			require.NoError(t, err)
		}
		require.NoError(t, repo.Create(ctx, doc))
	}

	mkInvoice("FA-2026-0001", document.SourceLocal, true)
	mkInvoice("FA-2026-0002", document.SourceExternal, true)
	mkInvoice("FA-2026-0003", document.SourceLocal, false)

	paid, err := repo.FindPaidInvoicesByDate(ctx, testDate(), document.SourceExternal)
	require.NoError(t, err)
	require.Len(t, paid, 1, "only the paid local invoice qualifies")
	assert.Equal(t, "FA-2026-0001", paid[0].Number)
	require.Len(t, paid[0].Items, 1, "line items come preloaded")

	otherDay, err := repo.FindPaidInvoicesByDate(ctx, testDate().AddDate(0, 0, 1), document.SourceExternal)
	require.NoError(t, err)
	assert.Empty(t, otherDay)
}

func TestDocumentRepository_Delete(t *testing.T) {
	repo := NewGormDocumentRepository(newTestDB(t))
	doc := newStoredDocument(t, repo, "BL-2026-0001")

	require.NoError(t, repo.Delete(context.Background(), doc.ID))

	_, err := repo.FindByID(context.Background(), doc.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	var itemCount int64
	require.NoError(t, repo.db.Model(&document.LineItem{}).
		Where("document_id = ?", doc.ID).Count(&itemCount).Error)
	assert.Zero(t, itemCount, "line items are removed with the document")

	assert.ErrorIs(t, repo.Delete(context.Background(), doc.ID), shared.ErrNotFound)
}
