package journal

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/retaildocs/backend/internal/domain/document"
)

// SourceLine is one line item collected from a paid invoice or a completed
// external order before consolidation
type SourceLine struct {
	ProductID   string
	SKU         string
	Name        string
	Quantity    decimal.Decimal
	UnitPriceHT decimal.Decimal
	VATRate     decimal.Decimal
}

// mergeKey identifies lines that consolidate into one journal line.
// Product ID wins; lines without one fall back to SKU, then name, so
// service-style lines do not all collapse together.
func (l SourceLine) mergeKey() string {
	switch {
	case l.ProductID != "":
		return "p:" + l.ProductID
	case l.SKU != "":
		return "s:" + l.SKU
	default:
		return "n:" + l.Name
	}
}

// Consolidate merges source lines by product: quantities are summed and the
// monetary fields are recomputed later from the summed quantity and unit
// price, not added up, to avoid accumulating rounding drift. Output order is
// first-seen order, which keeps journals deterministic.
func Consolidate(lines []SourceLine) []SourceLine {
	merged := make([]SourceLine, 0, len(lines))
	index := make(map[string]int, len(lines))

	for _, line := range lines {
		key := line.mergeKey()
		if at, ok := index[key]; ok {
			merged[at].Quantity = merged[at].Quantity.Add(line.Quantity)
			continue
		}
		index[key] = len(merged)
		merged = append(merged, line)
	}

	return merged
}

// VATSummaryLine is one tax-rate group of the journal's VAT summary
type VATSummaryLine struct {
	Rate   decimal.Decimal `json:"rate"`
	Base   decimal.Decimal `json:"base"`
	Amount decimal.Decimal `json:"amount"`
}

// SummarizeVAT groups line items by tax rate, each group carrying the summed
// pre-tax base and tax amount, sorted ascending by rate
func SummarizeVAT(items []document.LineItem) []VATSummaryLine {
	groups := make(map[string]*VATSummaryLine)
	for i := range items {
		key := items[i].VATRate.String()
		g, ok := groups[key]
		if !ok {
			g = &VATSummaryLine{
				Rate:   items[i].VATRate,
				Base:   decimal.Zero,
				Amount: decimal.Zero,
			}
			groups[key] = g
		}
		g.Base = g.Base.Add(items[i].TotalHT)
		g.Amount = g.Amount.Add(items[i].VATAmount)
	}

	summary := make([]VATSummaryLine, 0, len(groups))
	for _, g := range groups {
		summary = append(summary, *g)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Rate.LessThan(summary[j].Rate)
	})

	return summary
}
