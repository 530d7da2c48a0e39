package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/vat-invoicing/internal/model"
)

func TestTaxService_Calculate(t *testing.T) {
	svc := NewTaxService()

	res, err := svc.Calculate(dec("100"), "STANDARD", nil)
	require.NoError(t, err)
	assert.Equal(t, "21.00", res.VATAmount.StringFixed(2))
	assert.Equal(t, "121.00", res.TotalAmount.StringFixed(2))

	six := dec("6")
	res, err = svc.Calculate(dec("100"), "reduced", &six)
	require.NoError(t, err)
	assert.Equal(t, "6.00", res.VATAmount.StringFixed(2))

	_, err = svc.Calculate(dec("100"), "luxury", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Calculate(dec("0"), "standard", nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaxService_ApplyDeductions(t *testing.T) {
	svc := NewTaxService()

	res, err := svc.ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("500")},
		{Type: model.DeductionInvestment, Amount: dec("100")},
	})
	require.NoError(t, err)
	assert.Equal(t, "600.00", res.FinalAmount.StringFixed(2))
	require.Len(t, res.AppliedDeductions, 2)
	assert.Equal(t, "300.00", res.AppliedDeductions[0].Amount.StringFixed(2))

	_, err = svc.ApplyDeductions(dec("1000"), []model.Deduction{{Type: "gift", Amount: dec("1")}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTaxService_Rates(t *testing.T) {
	rates := NewTaxService().Rates()
	assert.Len(t, rates, 5)
	assert.Equal(t, model.CategoryStandard, rates[0].Category)
}
