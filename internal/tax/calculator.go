package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/model"
)

var (
	hundred         = decimal.NewFromInt(100)
	professionalCap = decimal.RequireFromString("0.3")
	investmentCap   = decimal.RequireFromString("0.2")
)

type VATResult struct {
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	AppliedRate decimal.Decimal `json:"applied_rate"`
}

type AppliedDeduction struct {
	Type   model.DeductionType `json:"type"`
	Amount decimal.Decimal     `json:"amount"`
}

type DeductionResult struct {
	FinalAmount       decimal.Decimal    `json:"final_amount"`
	AppliedDeductions []AppliedDeduction `json:"applied_deductions"`
}

// Round2 rounds half away from zero to two decimal places.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// ComputeVAT applies the category rate to base.
func ComputeVAT(base decimal.Decimal, category model.Category) (VATResult, error) {
	if !base.IsPositive() {
		return VATResult{}, fmt.Errorf("%w: base amount must be positive, got %s", ErrInvalidAmount, base.String())
	}
	entry, err := RateFor(category)
	if err != nil {
		return VATResult{}, err
	}
	return computeAt(base, entry.Rate), nil
}

// ComputeVATAtRate applies an explicit percentage to base.
func ComputeVATAtRate(base, rate decimal.Decimal) (VATResult, error) {
	if !base.IsPositive() {
		return VATResult{}, fmt.Errorf("%w: base amount must be positive, got %s", ErrInvalidAmount, base.String())
	}
	if rate.IsNegative() || rate.GreaterThan(hundred) {
		return VATResult{}, fmt.Errorf("%w: got %s", ErrInvalidRate, rate.String())
	}
	return computeAt(base, rate), nil
}

// computeAt rounds each derived value once; the total uses the unrounded product.
func computeAt(base, rate decimal.Decimal) VATResult {
	raw := base.Mul(rate).Div(hundred)
	return VATResult{
		VATAmount:   Round2(raw),
		TotalAmount: Round2(base.Add(raw)),
		AppliedRate: rate,
	}
}

// ApplyDeductions subtracts each deduction, in order, capped against the original total.
func ApplyDeductions(total decimal.Decimal, deductions []model.Deduction) (DeductionResult, error) {
	if total.IsNegative() {
		return DeductionResult{}, fmt.Errorf("%w: total must not be negative, got %s", ErrInvalidAmount, total.String())
	}

	applied := make([]AppliedDeduction, 0, len(deductions))
	deducted := decimal.Zero
	for i, d := range deductions {
		var capRate decimal.Decimal
		switch d.Type {
		case model.DeductionProfessional:
			capRate = professionalCap
		case model.DeductionInvestment:
			capRate = investmentCap
		default:
			return DeductionResult{}, fmt.Errorf("%w: %q at position %d", ErrInvalidDeductionType, string(d.Type), i)
		}

		amount := decimal.Min(d.Amount, total.Mul(capRate))
		if amount.IsNegative() {
			amount = decimal.Zero
		}
		deducted = deducted.Add(amount)
		applied = append(applied, AppliedDeduction{Type: d.Type, Amount: Round2(amount)})
	}

	return DeductionResult{
		FinalAmount:       Round2(total.Sub(deducted)),
		AppliedDeductions: applied,
	}, nil
}
