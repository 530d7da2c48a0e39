package tax

import (
	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/model"
)

// Summarize folds invoices into revenue and VAT totals plus a per-rate breakdown.
// Sums are exact over the stored values; rounding happens only on the result.
func Summarize(invoices []model.Invoice) model.TaxSummary {
	revenue := decimal.Zero
	vat := decimal.Zero
	breakdown := make(map[string]model.RateBreakdown)

	for _, inv := range invoices {
		revenue = revenue.Add(inv.Amount)
		vat = vat.Add(inv.VATAmount)

		key := inv.RateKey()
		entry := breakdown[key]
		entry.Count++
		entry.Amount = entry.Amount.Add(inv.VATAmount)
		breakdown[key] = entry
	}

	for key, entry := range breakdown {
		entry.Amount = Round2(entry.Amount)
		breakdown[key] = entry
	}

	return model.TaxSummary{
		TotalRevenue: Round2(revenue),
		TotalVAT:     Round2(vat),
		Breakdown:    breakdown,
	}
}
