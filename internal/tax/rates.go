// Package tax implements the Belgian VAT rate table and the pure arithmetic
// built on it: VAT computation, capped deductions and invoice summaries.
package tax

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/model"
)

// rateTable holds the Belgian schedule. The reduced category appears twice
// (12% and 6%); lookups by category resolve to the first entry.
var rateTable = []model.RateEntry{
	{Category: model.CategoryStandard, Rate: decimal.NewFromInt(21), Description: "Standard rate"},
	{Category: model.CategoryReduced, Rate: decimal.NewFromInt(12), Description: "First reduced rate - restaurants, food service"},
	{Category: model.CategoryReduced, Rate: decimal.NewFromInt(6), Description: "Second reduced rate - basic necessities"},
	{Category: model.CategoryZero, Rate: decimal.Zero, Description: "Zero-rated goods and services"},
	{Category: model.CategoryExempt, Rate: decimal.Zero, Description: "VAT exempt transactions"},
}

// RateFor returns the rate entry applicable to category.
func RateFor(category model.Category) (model.RateEntry, error) {
	for _, entry := range rateTable {
		if entry.Category == category {
			return entry, nil
		}
	}
	return model.RateEntry{}, fmt.Errorf("%w: %q", ErrUnknownCategory, string(category))
}

// Rates returns a copy of the full table.
func Rates() []model.RateEntry {
	out := make([]model.RateEntry, len(rateTable))
	copy(out, rateTable)
	return out
}

// ParseCategory accepts a category name in any case; empty input means standard.
func ParseCategory(raw string) (model.Category, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return model.CategoryStandard, nil
	}
	category := model.Category(raw)
	if _, err := RateFor(category); err != nil {
		return "", err
	}
	return category, nil
}

// RatesFor lists every percentage allowed for category. Only reduced has more than one.
func RatesFor(category model.Category) []decimal.Decimal {
	var out []decimal.Decimal
	for _, entry := range rateTable {
		if entry.Category == category {
			out = append(out, entry.Rate)
		}
	}
	return out
}
