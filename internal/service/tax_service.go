package service

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/tax"
)

// TaxService exposes the calculator to transport code.
type TaxService struct{}

func NewTaxService() *TaxService {
	return &TaxService{}
}

// Calculate uses rate when given, otherwise the category rate.
func (s *TaxService) Calculate(amount decimal.Decimal, category string, rate *decimal.Decimal) (tax.VATResult, error) {
	var (
		result tax.VATResult
		err    error
	)
	if rate != nil {
		result, err = tax.ComputeVATAtRate(amount, *rate)
	} else {
		var parsed model.Category
		parsed, err = tax.ParseCategory(category)
		if err == nil {
			result, err = tax.ComputeVAT(amount, parsed)
		}
	}
	if err != nil {
		return tax.VATResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return result, nil
}

func (s *TaxService) ApplyDeductions(total decimal.Decimal, deductions []model.Deduction) (tax.DeductionResult, error) {
	result, err := tax.ApplyDeductions(total, deductions)
	if err != nil {
		return tax.DeductionResult{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return result, nil
}

func (s *TaxService) Rates() []model.RateEntry {
	return tax.Rates()
}
