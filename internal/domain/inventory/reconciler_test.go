package inventory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGateway is an in-memory StockGateway for reconciler tests
type fakeGateway struct {
	products    map[string]*ProductStock
	failGet     map[string]error
	failUpdate  map[string]error
	updateCalls []string
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		products:   make(map[string]*ProductStock),
		failGet:    make(map[string]error),
		failUpdate: make(map[string]error),
	}
}

func (f *fakeGateway) addProduct(id string, stock float64, managed bool) {
	f.products[id] = &ProductStock{
		ProductID:     id,
		ManageStock:   managed,
		StockQuantity: decimal.NewFromFloat(stock),
	}
}

func (f *fakeGateway) GetProduct(_ context.Context, productID string) (*ProductStock, error) {
	if err, ok := f.failGet[productID]; ok {
		return nil, err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeGateway) UpdateStock(_ context.Context, productID string, quantity decimal.Decimal) error {
	if err, ok := f.failUpdate[productID]; ok {
		return err
	}
	f.updateCalls = append(f.updateCalls, productID)
	f.products[productID].StockQuantity = quantity
	return nil
}

func (f *fakeGateway) ListOrdersCompletedOn(_ context.Context, _ time.Time) ([]ExternalOrder, error) {
	return nil, nil
}

func (f *fakeGateway) stockOf(t *testing.T, id string) decimal.Decimal {
	t.Helper()
	p, ok := f.products[id]
	require.True(t, ok)
	return p.StockQuantity
}

func adj(productID string, qty float64) Adjustment {
	return Adjustment{ProductID: productID, Quantity: decimal.NewFromFloat(qty)}
}

func TestReconciler_Reduce(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 10, true)
	r := NewReconciler(gw)

	res := r.Apply(context.Background(), []Adjustment{adj("A1", 4)}, OperationReduce)

	assert.Equal(t, 1, res.UpdatedCount)
	assert.Equal(t, 0, res.ErrorCount)
	assert.True(t, gw.stockOf(t, "A1").Equal(decimal.NewFromInt(6)))
}

func TestReconciler_ReduceFloorsAtZero(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 3, true)
	r := NewReconciler(gw)

	res := r.Apply(context.Background(), []Adjustment{adj("A1", 10)}, OperationReduce)

	assert.Equal(t, 1, res.UpdatedCount)
	assert.True(t, gw.stockOf(t, "A1").IsZero())
}

func TestReconciler_RestoreNetsToZero(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 10, true)
	r := NewReconciler(gw)

	r.Apply(context.Background(), []Adjustment{adj("A1", 4)}, OperationReduce)
	r.Apply(context.Background(), []Adjustment{adj("A1", 4)}, OperationRestore)

	assert.True(t, gw.stockOf(t, "A1").Equal(decimal.NewFromInt(10)),
		"reduce then restore must return stock to its pre-delivery value")
}

func TestReconciler_UnmanagedStockTriviallySucceeds(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 0, false)
	r := NewReconciler(gw)

	res := r.Apply(context.Background(), []Adjustment{adj("A1", 5)}, OperationReduce)

	assert.Equal(t, 1, res.UpdatedCount)
	assert.Empty(t, gw.updateCalls, "unmanaged products never hit the external write")
}

func TestReconciler_SkipsNonStockLines(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 10, true)
	r := NewReconciler(gw)

	res := r.Apply(context.Background(), []Adjustment{
		{ProductID: "", Quantity: decimal.NewFromInt(3)},
		{ProductID: "A1", Quantity: decimal.Zero},
	}, OperationReduce)

	assert.Equal(t, 0, res.UpdatedCount)
	assert.Equal(t, 0, res.ErrorCount)
}

func TestReconciler_BulkheadOnErrors(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 10, true)
	gw.addProduct("C3", 5, true)
	gw.failGet["B2"] = errors.New("boom")
	r := NewReconciler(gw)

	res := r.Apply(context.Background(), []Adjustment{
		adj("A1", 1), adj("B2", 1), adj("C3", 2),
	}, OperationReduce)

	assert.Equal(t, 2, res.UpdatedCount)
	assert.Equal(t, 1, res.ErrorCount)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "B2", res.Errors[0].ProductID)
	assert.True(t, gw.stockOf(t, "C3").Equal(decimal.NewFromInt(3)),
		"a bad product must not block the rest of the batch")
}

func TestReconciler_UpdateFailureRecorded(t *testing.T) {
	gw := newFakeGateway()
	gw.addProduct("A1", 10, true)
	gw.failUpdate["A1"] = errors.New("rejected")
	r := NewReconciler(gw)

	res := r.Apply(context.Background(), []Adjustment{adj("A1", 2)}, OperationReduce)

	assert.Equal(t, 0, res.UpdatedCount)
	assert.Equal(t, 1, res.ErrorCount)
	assert.True(t, gw.stockOf(t, "A1").Equal(decimal.NewFromInt(10)))
}

func TestResult_Summary(t *testing.T) {
	assert.Equal(t, "stock reduced for 3 product(s)", Result{UpdatedCount: 3}.Summary("reduced"))
	assert.Equal(t, "stock restored for 2 product(s) (1 error(s))",
		Result{UpdatedCount: 2, ErrorCount: 1}.Summary("restored"))
}
