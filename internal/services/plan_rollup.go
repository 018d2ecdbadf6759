package services

import (
	"github.com/shopspring/decimal"
)

// GrandTotal is a product's demand summed over every day of the period.
type GrandTotal struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Unit      string          `json:"unit"`
	Category  string          `json:"category"`
}

// Rollup is a pure reporting projection over a Plan. It adds no business
// rules beyond summation; the underlying plan values are never modified.
type Rollup struct {
	// Categories pivots the plan for a per-category grid:
	// category → product name → day → quantity.
	Categories map[string]map[string]map[string]decimal.Decimal `json:"categories"`
	// DayTotals re-exposes the plan's per-day product totals.
	DayTotals map[string]map[uint]*DayTotal `json:"day_totals"`
	// GrandTotals sums each product across the whole period.
	GrandTotals map[uint]*GrandTotal `json:"grand_totals"`
	// CategoryProductCount counts distinct products observed per category.
	CategoryProductCount map[string]int `json:"category_product_count"`
}

// BuildRollup derives the reporting views from a finished plan.
func BuildRollup(plan *Plan) *Rollup {
	rollup := &Rollup{
		Categories:           make(map[string]map[string]map[string]decimal.Decimal),
		DayTotals:            make(map[string]map[uint]*DayTotal),
		GrandTotals:          make(map[uint]*GrandTotal),
		CategoryProductCount: make(map[string]int),
	}

	categoryProducts := make(map[string]map[uint]bool)

	for dayKey, day := range plan.Days {
		rollup.DayTotals[dayKey] = day.Totals

		for productID, total := range day.Totals {
			byProduct := rollup.Categories[total.Category]
			if byProduct == nil {
				byProduct = make(map[string]map[string]decimal.Decimal)
				rollup.Categories[total.Category] = byProduct
			}
			byDay := byProduct[total.Name]
			if byDay == nil {
				byDay = make(map[string]decimal.Decimal)
				byProduct[total.Name] = byDay
			}
			byDay[dayKey] = byDay[dayKey].Add(total.Quantity)

			grand := rollup.GrandTotals[productID]
			if grand == nil {
				grand = &GrandTotal{
					ProductID: productID,
					Name:      total.Name,
					Quantity:  decimal.Zero,
					Unit:      total.Unit,
					Category:  total.Category,
				}
				rollup.GrandTotals[productID] = grand
			}
			grand.Quantity = grand.Quantity.Add(total.Quantity)

			seen := categoryProducts[total.Category]
			if seen == nil {
				seen = make(map[uint]bool)
				categoryProducts[total.Category] = seen
			}
			seen[productID] = true
		}
	}

	for category, seen := range categoryProducts {
		rollup.CategoryProductCount[category] = len(seen)
	}

	return rollup
}

// FormatQuantity renders a quantity for display: whole values without a
// decimal point, everything else rounded to one decimal place. Display only;
// summed values are never rounded.
func FormatQuantity(quantity decimal.Decimal) string {
	if quantity.IsInteger() {
		return quantity.Truncate(0).String()
	}
	return quantity.Round(1).String()
}
