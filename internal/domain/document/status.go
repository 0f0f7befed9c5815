package document

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/retaildocs/backend/internal/domain/shared"
)

// Status represents a document lifecycle state. Each document type uses its own
// subset of the vocabulary.
type Status string

const (
	// Delivery notes and return notes start here; purchase orders derive it
	StatusPending Status = "pending"
	// Delivery note terminal-ish states
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
	// Invoice states
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	// Return note processed state
	StatusProcessed Status = "processed"
	// Purchase order derived states (pending/partial/completed)
	StatusPartial   Status = "partial"
	StatusCompleted Status = "completed"
	// Sales journals are created final
	StatusFinal Status = "final"
)

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// InventoryEffect is the stock side effect a status transition triggers
type InventoryEffect int

const (
	EffectNone InventoryEffect = iota
	// EffectReduce decreases external stock by each line quantity
	EffectReduce
	// EffectRestore increases external stock by each line quantity
	EffectRestore
)

// transitions lists, per document type, the legal transitions and the inventory
// side effect each one triggers. A requested transition absent from this table
// (and not a same-status request) is treated as a successful no-op, so repeated
// submissions of the same request are safe.
var transitions = map[Type]map[Status]map[Status]InventoryEffect{
	TypeDeliveryNote: {
		StatusPending: {
			StatusDelivered: EffectReduce,
			StatusCancelled: EffectNone,
		},
		// Cancelling an already delivered note puts the goods back
		StatusDelivered: {
			StatusCancelled: EffectRestore,
		},
	},
	TypeReturnNote: {
		StatusPending: {
			// Goods physically returned increase stock
			StatusProcessed: EffectRestore,
			StatusCancelled: EffectNone,
		},
	},
	TypeInvoice: {
		StatusDraft: {
			StatusSent: EffectNone,
			StatusPaid: EffectNone,
		},
		StatusSent: {
			StatusPaid:    EffectNone,
			StatusOverdue: EffectNone,
		},
		StatusOverdue: {
			StatusPaid: EffectNone,
		},
		// Reverting a payment clears the payment method and paid date
		StatusPaid: {
			StatusSent: EffectNone,
		},
	},
}

// TransitionResult describes the outcome of a status change request
type TransitionResult struct {
	// Changed is false when the request was an idempotent no-op
	Changed bool
	// Effect is the inventory side effect the caller must apply
	Effect InventoryEffect
}

// ChangeStatus applies a status transition request. A request for the current
// status, or for a transition the type does not define, succeeds without
// changing anything. Purchase order status is derived from received quantities
// and cannot be set directly.
func (d *Document) ChangeStatus(to Status, paymentMethod string, now time.Time) (TransitionResult, error) {
	if d.Type == TypePurchaseOrder {
		return TransitionResult{}, shared.NewDomainError("INVALID_STATE", "Purchase order status is derived from received quantities")
	}
	if to == d.Status {
		return TransitionResult{}, nil
	}

	effect, ok := transitions[d.Type][d.Status][to]
	if !ok {
		return TransitionResult{}, nil
	}

	if d.Type == TypeInvoice {
		if to == StatusPaid {
			if paymentMethod == "" {
				return TransitionResult{}, shared.NewDomainError("VALIDATION_ERROR", "Payment method is required to mark an invoice paid")
			}
			paidDate := now.Truncate(24 * time.Hour)
			d.PaymentMethod = paymentMethod
			d.PaidDate = &paidDate
		} else if d.Status == StatusPaid {
			d.PaymentMethod = ""
			d.PaidDate = nil
		}
	}

	d.Status = to
	d.UpdatedAt = now
	d.IncrementVersion()

	return TransitionResult{Changed: true, Effect: effect}, nil
}

// DerivePurchaseOrderStatus computes the purchase order status from its line
// quantities: pending when nothing has been received, completed when every
// line's received quantity covers the ordered quantity, partial otherwise.
func DerivePurchaseOrderStatus(items []LineItem) Status {
	if len(items) == 0 {
		return StatusPending
	}

	anyReceived := false
	allReceived := true
	for i := range items {
		if items[i].ReceivedQuantity.GreaterThan(decimal.Zero) {
			anyReceived = true
		}
		if !items[i].IsFullyReceived() {
			allReceived = false
		}
	}

	switch {
	case allReceived:
		return StatusCompleted
	case anyReceived:
		return StatusPartial
	default:
		return StatusPending
	}
}

// ReceiptDelta is the stock delta computed for one purchase order line during
// a receiving operation: the newly reported cumulative quantity minus the
// quantity previously applied.
type ReceiptDelta struct {
	LineItemID uuid.UUID
	ProductID  string
	Delta      decimal.Decimal
}

// ApplyReceivedQuantities records newly reported cumulative received quantities
// on a purchase order. The whole request is validated before any mutation.
// Stored quantities are set to the reported values unconditionally and the
// derived status is recomputed; the returned deltas tell the caller what still
// needs to be applied to external stock.
func (d *Document) ApplyReceivedQuantities(updates map[uuid.UUID]decimal.Decimal, now time.Time) ([]ReceiptDelta, error) {
	if d.Type != TypePurchaseOrder {
		return nil, shared.NewDomainError("INVALID_STATE", "Receiving applies to purchase orders only")
	}
	if len(updates) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Receive request must name at least one line item")
	}
	for itemID, qty := range updates {
		if d.FindItem(itemID) == nil {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Line item not found on purchase order")
		}
		if qty.IsNegative() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Received quantity cannot be negative")
		}
	}

	deltas := make([]ReceiptDelta, 0, len(updates))
	for i := range d.Items {
		newQty, ok := updates[d.Items[i].ID]
		if !ok {
			continue
		}
		deltas = append(deltas, ReceiptDelta{
			LineItemID: d.Items[i].ID,
			ProductID:  d.Items[i].ProductID,
			Delta:      newQty.Sub(d.Items[i].ReceivedQuantity),
		})
		d.Items[i].ReceivedQuantity = newQty
		d.Items[i].UpdatedAt = now
	}

	d.Status = DerivePurchaseOrderStatus(d.Items)
	d.UpdatedAt = now
	d.IncrementVersion()

	return deltas, nil
}
