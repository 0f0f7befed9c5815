package cashcontrol

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/retaildocs/backend/internal/domain/cashcontrol"
	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/inventory"
	"github.com/retaildocs/backend/internal/domain/shared"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func controlDate() time.Time {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
}

type fakeControlRepo struct {
	byDate map[string]*cashcontrol.CashControl
}

func newFakeControlRepo() *fakeControlRepo {
	return &fakeControlRepo{byDate: make(map[string]*cashcontrol.CashControl)}
}

func dateKey(date time.Time) string {
	return date.Format("2006-01-02")
}

func (f *fakeControlRepo) FindByID(ctx context.Context, id uuid.UUID) (*cashcontrol.CashControl, error) {
	for _, c := range f.byDate {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (f *fakeControlRepo) FindByDate(ctx context.Context, date time.Time) (*cashcontrol.CashControl, error) {
	c, ok := f.byDate[dateKey(date)]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return c, nil
}

func (f *fakeControlRepo) ExistsForDate(ctx context.Context, date time.Time) (bool, error) {
	_, ok := f.byDate[dateKey(date)]
	return ok, nil
}

func (f *fakeControlRepo) Create(ctx context.Context, control *cashcontrol.CashControl) error {
	f.byDate[dateKey(control.ControlDate)] = control
	return nil
}

func (f *fakeControlRepo) Save(ctx context.Context, control *cashcontrol.CashControl) error {
	f.byDate[dateKey(control.ControlDate)] = control
	return nil
}

type fakeDocRepo struct {
	paidInvoices []document.Document
}

func (f *fakeDocRepo) FindByID(ctx context.Context, id uuid.UUID) (*document.Document, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeDocRepo) FindByNumber(ctx context.Context, number string) (*document.Document, error) {
	return nil, shared.ErrNotFound
}

func (f *fakeDocRepo) FindAll(ctx context.Context, docType document.Type, filter shared.Filter) ([]document.Document, error) {
	return nil, nil
}

func (f *fakeDocRepo) Count(ctx context.Context, docType document.Type, filter shared.Filter) (int64, error) {
	return 0, nil
}

func (f *fakeDocRepo) FindPaidInvoicesByDate(ctx context.Context, paidDate time.Time, excludeSource document.Source) ([]document.Document, error) {
	out := make([]document.Document, 0, len(f.paidInvoices))
	for _, inv := range f.paidInvoices {
		if inv.Source != excludeSource {
			out = append(out, inv)
		}
	}
	return out, nil
}

func (f *fakeDocRepo) Create(ctx context.Context, doc *document.Document) error { return nil }
func (f *fakeDocRepo) Update(ctx context.Context, doc *document.Document) error { return nil }
func (f *fakeDocRepo) Save(ctx context.Context, doc *document.Document) error   { return nil }
func (f *fakeDocRepo) Delete(ctx context.Context, id uuid.UUID) error           { return nil }

type fakeGateway struct {
	orders    []inventory.ExternalOrder
	ordersErr error
}

func (f *fakeGateway) GetProduct(ctx context.Context, productID string) (*inventory.ProductStock, error) {
	return nil, inventory.ErrProductNotFound
}

func (f *fakeGateway) UpdateStock(ctx context.Context, productID string, quantity decimal.Decimal) error {
	return nil
}

func (f *fakeGateway) ListOrdersCompletedOn(ctx context.Context, date time.Time) ([]inventory.ExternalOrder, error) {
	if f.ordersErr != nil {
		return nil, f.ordersErr
	}
	return f.orders, nil
}

type fakeGenerator struct{ n int }

func (g *fakeGenerator) NextNumber(ctx context.Context, documentType string, year int) (string, error) {
	g.n++
	return fmt.Sprintf("CC-%d-%04d", year, g.n), nil
}

func paidInvoice(t *testing.T, method, total string, source document.Source) document.Document {
	t.Helper()
	doc, err := document.NewDocument(document.TypeInvoice, "FA-2026-"+method, "Cafe du Port", controlDate())
	require.NoError(t, err)
	doc.SetSource(source)
	doc.Status = document.StatusPaid
	doc.PaymentMethod = method
	doc.TotalTTC = dec(total)
	return *doc
}

func TestClose_BucketsPaymentsByChannel(t *testing.T) {
	docs := &fakeDocRepo{paidInvoices: []document.Document{
		paidInvoice(t, "cash", "500.00", document.SourceLocal),
		paidInvoice(t, "bank transfer", "300.00", document.SourceLocal),
		paidInvoice(t, "cheque", "50.00", document.SourceLocal),
	}}
	gateway := &fakeGateway{orders: []inventory.ExternalOrder{
		{OrderID: "ord-1", Total: dec("120.00"), PaymentMethod: "card", CompletedAt: controlDate()},
	}}
	svc := NewService(newFakeControlRepo(), docs, gateway, &fakeGenerator{}, nil)

	resp, err := svc.Close(context.Background(), CloseRequest{ControlDate: controlDate()})
	require.NoError(t, err)

	// card is unrecognised and defaults to the cash channel
	assert.True(t, resp.Control.CashTotal.Equal(dec("620.00")))
	assert.True(t, resp.Control.TransferTotal.Equal(dec("300.00")))
	assert.True(t, resp.Control.ChequeTotal.Equal(dec("50.00")))
	assert.True(t, resp.Control.TotalAmount.Equal(dec("970.00")))
	assert.Equal(t, cashcontrol.StatusClosed, resp.Control.Status)
	assert.Equal(t, "CC-2026-0001", resp.Control.Number)
	assert.Equal(t, 3, resp.InvoiceCount)
	assert.Equal(t, 1, resp.ExternalOrderCount)
}

func TestClose_ExcludesExternallySourcedInvoices(t *testing.T) {
	docs := &fakeDocRepo{paidInvoices: []document.Document{
		paidInvoice(t, "cash", "500.00", document.SourceLocal),
		paidInvoice(t, "cash", "120.00", document.SourceExternal),
	}}
	gateway := &fakeGateway{orders: []inventory.ExternalOrder{
		{OrderID: "ord-1", Total: dec("120.00"), PaymentMethod: "cash", CompletedAt: controlDate()},
	}}
	svc := NewService(newFakeControlRepo(), docs, gateway, &fakeGenerator{}, nil)

	resp, err := svc.Close(context.Background(), CloseRequest{ControlDate: controlDate()})
	require.NoError(t, err)

	// the order's 120 counts once, not twice through its mirror invoice
	assert.True(t, resp.Control.CashTotal.Equal(dec("620.00")))
	assert.Equal(t, 1, resp.InvoiceCount)
}

func TestClose_OnePerDate(t *testing.T) {
	controls := newFakeControlRepo()
	svc := NewService(controls, &fakeDocRepo{}, &fakeGateway{}, &fakeGenerator{}, nil)

	_, err := svc.Close(context.Background(), CloseRequest{ControlDate: controlDate()})
	require.NoError(t, err)

	_, err = svc.Close(context.Background(), CloseRequest{ControlDate: controlDate()})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "CONFLICT", domainErr.Code)
}

func TestClose_ExternalListingFailure(t *testing.T) {
	controls := newFakeControlRepo()
	gateway := &fakeGateway{ordersErr: errors.New("timeout")}
	svc := NewService(controls, &fakeDocRepo{}, gateway, &fakeGenerator{}, nil)

	_, err := svc.Close(context.Background(), CloseRequest{ControlDate: controlDate()})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "EXTERNAL_SYSTEM_ERROR", domainErr.Code)

	exists, err := controls.ExistsForDate(context.Background(), controlDate())
	require.NoError(t, err)
	assert.False(t, exists, "nothing persisted when aggregation fails")
}

func TestCanCreateJournal(t *testing.T) {
	controls := newFakeControlRepo()
	svc := NewService(controls, &fakeDocRepo{}, &fakeGateway{}, &fakeGenerator{}, nil)

	ok, err := svc.CanCreateJournal(context.Background(), controlDate())
	require.NoError(t, err)
	assert.False(t, ok, "no control for the date")

	_, err = svc.Close(context.Background(), CloseRequest{ControlDate: controlDate()})
	require.NoError(t, err)

	ok, err = svc.CanCreateJournal(context.Background(), controlDate())
	require.NoError(t, err)
	assert.True(t, ok)
}
