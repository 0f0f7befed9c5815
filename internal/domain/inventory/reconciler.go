package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Operation is the kind of stock adjustment a reconciliation applies
type Operation string

const (
	// OperationReduce subtracts quantities from external stock, floored at zero
	OperationReduce Operation = "reduce"
	// OperationRestore adds quantities back to external stock
	OperationRestore Operation = "restore"
	// OperationReceive adds already-computed receipt deltas to external stock
	OperationReceive Operation = "receive"
)

// Adjustment is one product's quantity to apply against external stock.
// Quantity is always positive; the operation decides the direction.
type Adjustment struct {
	ProductID string
	Quantity  decimal.Decimal
}

// ItemError records a single product's reconciliation failure
type ItemError struct {
	ProductID string `json:"product_id"`
	Message   string `json:"message"`
}

// Result summarises one reconciliation pass
type Result struct {
	UpdatedCount int
	ErrorCount   int
	Errors       []ItemError
}

// Summary renders the operator-facing outcome line, e.g.
// "stock reduced for 3 product(s) (1 error(s))"
func (r Result) Summary(verb string) string {
	if r.ErrorCount == 0 {
		return fmt.Sprintf("stock %s for %d product(s)", verb, r.UpdatedCount)
	}
	return fmt.Sprintf("stock %s for %d product(s) (%d error(s))", verb, r.UpdatedCount, r.ErrorCount)
}

// Reconciler applies quantity adjustments to the external inventory system.
// Items are processed sequentially so the error list order is deterministic;
// one item's failure never aborts the rest of the batch.
type Reconciler struct {
	gateway StockGateway
}

// NewReconciler creates a reconciler over the given gateway
func NewReconciler(gateway StockGateway) *Reconciler {
	return &Reconciler{gateway: gateway}
}

// Apply runs one reconciliation pass. Adjustments without a product ID or with
// a non-positive quantity are skipped. Products that do not track stock count
// as trivially successful. Every external call failure is recorded and the
// loop proceeds to the next item.
func (r *Reconciler) Apply(ctx context.Context, adjustments []Adjustment, op Operation) Result {
	var result Result

	for _, adj := range adjustments {
		if adj.ProductID == "" || adj.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		product, err := r.gateway.GetProduct(ctx, adj.ProductID)
		if err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, ItemError{
				ProductID: adj.ProductID,
				Message:   fmt.Sprintf("fetch product: %v", err),
			})
			continue
		}

		if !product.ManageStock {
			result.UpdatedCount++
			continue
		}

		var newStock decimal.Decimal
		switch op {
		case OperationReduce:
			newStock = product.StockQuantity.Sub(adj.Quantity)
			if newStock.IsNegative() {
				newStock = decimal.Zero
			}
		default:
			newStock = product.StockQuantity.Add(adj.Quantity)
		}

		if err := r.gateway.UpdateStock(ctx, adj.ProductID, newStock); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, ItemError{
				ProductID: adj.ProductID,
				Message:   fmt.Sprintf("update stock: %v", err),
			})
			continue
		}

		result.UpdatedCount++
	}

	return result
}
