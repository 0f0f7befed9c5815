package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/retaildocs/backend/internal/domain/document"
	"github.com/retaildocs/backend/internal/domain/inventory"
	"github.com/retaildocs/backend/internal/domain/numbering"
	"github.com/retaildocs/backend/internal/domain/shared"
)

// Service handles document creation, editing, status transitions and
// purchase order receiving
type Service struct {
	docs       document.Repository
	numbers    numbering.Generator
	reconciler *inventory.Reconciler
	log        *zap.Logger
}

// NewService creates a new document Service
func NewService(docs document.Repository, numbers numbering.Generator, reconciler *inventory.Reconciler, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		docs:       docs,
		numbers:    numbers,
		reconciler: reconciler,
		log:        log,
	}
}

// Create validates the request, obtains a sequence number and persists the
// document header with all its line items. Validation failures write nothing;
// a number burned by a failed persist is never reused.
func (s *Service) Create(ctx context.Context, req CreateDocumentRequest) (*DocumentResponse, error) {
	if !req.Type.IsValid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Unknown document type")
	}
	if req.Type == document.TypeSalesJournal {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Sales journals are created through journal consolidation")
	}
	if req.CounterpartyName == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Counterparty name is required")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document must have at least one line item")
	}

	docDate := req.DocumentDate
	if docDate.IsZero() {
		docDate = time.Now()
	}

	number, err := s.numbers.NextNumber(ctx, req.Type.String(), docDate.Year())
	if err != nil {
		return nil, err
	}

	doc, err := document.NewDocument(req.Type, number, req.CounterpartyName, docDate)
	if err != nil {
		return nil, err
	}
	if req.CounterpartyID != nil {
		doc.SetCounterpartyID(*req.CounterpartyID)
	}
	if req.Notes != "" {
		doc.SetNotes(req.Notes)
	}
	for _, line := range req.Items {
		if _, err := doc.AddLine(line.ProductID, line.SKU, line.Name, line.Quantity, line.UnitPriceHT, line.VATRate); err != nil {
			return nil, err
		}
	}

	if err := s.docs.Create(ctx, doc); err != nil {
		s.log.Error("document create failed",
			zap.String("number", number),
			zap.String("type", req.Type.String()),
			zap.Error(err))
		return nil, err
	}

	s.log.Info("document created",
		zap.String("number", doc.Number),
		zap.String("type", doc.Type.String()))

	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// Update replaces the counterparty, notes and entire line item set of an
// editable document and re-derives its totals
func (s *Service) Update(ctx context.Context, id uuid.UUID, req UpdateDocumentRequest) (*DocumentResponse, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !doc.IsEditable() {
		return nil, shared.NewDomainError("INVALID_STATE", "Document can no longer be edited in its current status")
	}
	if len(req.Items) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Document must have at least one line item")
	}

	if err := doc.UpdateCounterparty(req.CounterpartyName, req.CounterpartyID); err != nil {
		return nil, err
	}
	doc.SetNotes(req.Notes)

	items := make([]document.LineItem, 0, len(req.Items))
	for _, line := range req.Items {
		item, err := document.NewLineItem(doc.ID, line.ProductID, line.SKU, line.Name, line.Quantity, line.UnitPriceHT, line.VATRate)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	if err := doc.ReplaceLines(items); err != nil {
		return nil, err
	}

	if err := s.docs.Update(ctx, doc); err != nil {
		return nil, err
	}

	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// GetByID retrieves a document by ID
func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (*DocumentResponse, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToDocumentResponse(doc)
	return &resp, nil
}

// List retrieves documents of a type with pagination
func (s *Service) List(ctx context.Context, filter ListFilter) ([]DocumentResponse, int64, error) {
	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}

	docs, err := s.docs.FindAll(ctx, filter.Type, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.docs.Count(ctx, filter.Type, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToDocumentResponses(docs), total, nil
}

// ChangeStatus applies a status transition. The status change is committed
// before any inventory side effect runs; reconciliation failures are collected
// into the response instead of rolling the transition back.
func (s *Service) ChangeStatus(ctx context.Context, id uuid.UUID, req ChangeStatusRequest) (*StatusChangeResponse, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result, err := doc.ChangeStatus(req.Status, req.PaymentMethod, time.Now())
	if err != nil {
		return nil, err
	}

	if result.Changed {
		if err := s.docs.Save(ctx, doc); err != nil {
			return nil, err
		}
	}

	resp := &StatusChangeResponse{
		Document: ToDocumentResponse(doc),
		Changed:  result.Changed,
	}

	if result.Effect == document.EffectNone {
		return resp, nil
	}

	op := inventory.OperationReduce
	verb := "reduced"
	if result.Effect == document.EffectRestore {
		op = inventory.OperationRestore
		verb = "restored"
	}

	invResult := s.reconciler.Apply(ctx, stockAdjustments(doc.Items), op)
	resp.Message = invResult.Summary(verb)
	resp.StockUpdateCount = invResult.UpdatedCount
	resp.StockUpdateErrors = invResult.Errors

	if invResult.ErrorCount > 0 {
		s.log.Warn("inventory reconciliation finished with errors",
			zap.String("number", doc.Number),
			zap.String("operation", string(op)),
			zap.Int("updated", invResult.UpdatedCount),
			zap.Int("errors", invResult.ErrorCount))
	}

	return resp, nil
}

// Receive records newly reported cumulative received quantities on a purchase
// order. External stock receives only the positive deltas, and only when the
// order was not already completed; stored quantities are updated regardless.
func (s *Service) Receive(ctx context.Context, id uuid.UUID, req ReceiveRequest) (*ReceiveResponse, error) {
	doc, err := s.docs.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc.Type != document.TypePurchaseOrder {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Receiving applies to purchase orders only")
	}
	if len(req.Lines) == 0 {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Receive request must contain at least one line")
	}

	alreadyCompleted := doc.Status == document.StatusCompleted

	updates := make(map[uuid.UUID]decimal.Decimal, len(req.Lines))
	for _, line := range req.Lines {
		updates[line.LineItemID] = line.QuantityReceived
	}

	deltas, err := doc.ApplyReceivedQuantities(updates, time.Now())
	if err != nil {
		return nil, err
	}

	var invResult inventory.Result
	if !alreadyCompleted {
		adjustments := make([]inventory.Adjustment, 0, len(deltas))
		for _, d := range deltas {
			if d.Delta.GreaterThan(decimal.Zero) {
				adjustments = append(adjustments, inventory.Adjustment{
					ProductID: d.ProductID,
					Quantity:  d.Delta,
				})
			}
		}
		invResult = s.reconciler.Apply(ctx, adjustments, inventory.OperationReceive)
	}

	// Stored quantities are persisted even when external stock calls failed
	if err := s.docs.Save(ctx, doc); err != nil {
		return nil, err
	}

	resp := &ReceiveResponse{
		Document:          ToDocumentResponse(doc),
		AlreadyCompleted:  alreadyCompleted,
		StockUpdateCount:  invResult.UpdatedCount,
		StockUpdateErrors: invResult.Errors,
	}
	if alreadyCompleted {
		resp.Message = "purchase order already completed, quantities recorded without stock update"
	} else {
		resp.Message = invResult.Summary("received")
	}

	return resp, nil
}

// stockAdjustments maps stock-touching line items to reconciler adjustments
func stockAdjustments(items []document.LineItem) []inventory.Adjustment {
	adjustments := make([]inventory.Adjustment, 0, len(items))
	for i := range items {
		if items[i].TouchesStock() {
			adjustments = append(adjustments, inventory.Adjustment{
				ProductID: items[i].ProductID,
				Quantity:  items[i].Quantity,
			})
		}
	}
	return adjustments
}
