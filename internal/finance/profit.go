package finance

import (
	"strings"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
)

// LineItem carries the order-item fields the profit calculator reads.
type LineItem struct {
	ItemID       *uuid.UUID
	ItemName     string
	CategoryID   *uuid.UUID
	CategoryName string
	Quantity     float64
	UnitPrice    float64
	TotalAmount  float64
}

// ProfitResult holds the computed per-item profit and labor amounts.
type ProfitResult struct {
	ProfitAmount float64
	LaborAmount  float64
}

// Percentages is a resolved profit/labor percentage pair.
type Percentages struct {
	Profit float64
	Labor  float64
}

// overrideLookup is one strategy in the override resolution chain.
type overrideLookup func(item LineItem, o domain.ProfitOverride) bool

// The resolution order is fixed: item-by-id, item-by-name, category-by-id,
// category-by-name. The first strategy that matches any override wins.
var overrideLookups = []overrideLookup{
	func(item LineItem, o domain.ProfitOverride) bool {
		return o.Type == domain.OverrideItem && o.TargetID != nil && item.ItemID != nil && *o.TargetID == *item.ItemID
	},
	func(item LineItem, o domain.ProfitOverride) bool {
		return o.Type == domain.OverrideItem && item.ItemName != "" && strings.EqualFold(o.Name, item.ItemName)
	},
	func(item LineItem, o domain.ProfitOverride) bool {
		return o.Type == domain.OverrideCategory && o.TargetID != nil && item.CategoryID != nil && *o.TargetID == *item.CategoryID
	},
	func(item LineItem, o domain.ProfitOverride) bool {
		return o.Type == domain.OverrideCategory && item.CategoryName != "" && strings.EqualFold(o.Name, item.CategoryName)
	},
}

// ResolvePercentages walks the override chain for the item and falls back to
// the settings' global percentages when nothing matches.
func ResolvePercentages(item LineItem, settings *domain.ProfitSettings) Percentages {
	for _, matches := range overrideLookups {
		for _, o := range settings.Overrides {
			if matches(item, o) {
				return Percentages{Profit: o.ProfitPercentage, Labor: o.LaborPercentage}
			}
		}
	}
	return Percentages{Profit: settings.DefaultProfitPercentage, Labor: settings.LaborPercentage}
}

// ComputeProfitAndLabor computes the stored profit and labor amounts for an
// order item. With profit tracking disabled both amounts are zero. Under the
// unit_price basis the percentages apply per unit; under total_cost they
// apply to the line total. Labor is always computed on the production-cost
// remainder (base minus profit) and forced to zero when labor tracking is
// off.
func ComputeProfitAndLabor(item LineItem, settings *domain.ProfitSettings) ProfitResult {
	if settings == nil || !settings.Enabled {
		return ProfitResult{}
	}

	pct := ResolvePercentages(item, settings)

	base := item.UnitPrice
	if settings.CalculationBasis == domain.BasisTotalCost {
		base = item.TotalAmount
	}

	profit := mulPercent(base, pct.Profit)

	var labor float64
	if settings.IncludeLabor {
		labor = mulPercent(sub(base, profit), pct.Labor)
	}

	return ProfitResult{ProfitAmount: profit, LaborAmount: labor}
}
