package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/vat-invoicing/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s", want, got.String())
}

func TestComputeVATStandard(t *testing.T) {
	tests := []struct {
		base      string
		wantVAT   string
		wantTotal string
	}{
		{"100", "21.00", "121.00"},
		{"100.10", "21.02", "121.12"},
		{"10.50", "2.21", "12.71"},
		{"0.05", "0.01", "0.06"},
		{"1234.56", "259.26", "1493.82"},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			res, err := ComputeVAT(dec(tt.base), model.CategoryStandard)
			require.NoError(t, err)
			assertDecimal(t, tt.wantVAT, res.VATAmount)
			assertDecimal(t, tt.wantTotal, res.TotalAmount)
			assertDecimal(t, "21", res.AppliedRate)
			assertDecimal(t, Round2(dec(tt.base).Mul(dec("0.21"))).String(), res.VATAmount)
		})
	}
}

func TestComputeVATOtherCategories(t *testing.T) {
	res, err := ComputeVAT(dec("50"), model.CategoryReduced)
	require.NoError(t, err)
	assertDecimal(t, "6.00", res.VATAmount)
	assertDecimal(t, "56.00", res.TotalAmount)

	res, err = ComputeVAT(dec("50"), model.CategoryExempt)
	require.NoError(t, err)
	assertDecimal(t, "0", res.VATAmount)
	assertDecimal(t, "50", res.TotalAmount)
}

func TestComputeVATInvalidAmount(t *testing.T) {
	for _, base := range []string{"0", "-1", "-0.01"} {
		_, err := ComputeVAT(dec(base), model.CategoryStandard)
		assert.ErrorIs(t, err, ErrInvalidAmount, base)
	}
}

func TestComputeVATUnknownCategory(t *testing.T) {
	_, err := ComputeVAT(dec("100"), "luxury")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestComputeVATAtRate(t *testing.T) {
	res, err := ComputeVATAtRate(dec("100"), dec("6"))
	require.NoError(t, err)
	assertDecimal(t, "6.00", res.VATAmount)
	assertDecimal(t, "106.00", res.TotalAmount)

	_, err = ComputeVATAtRate(dec("100"), dec("100.01"))
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = ComputeVATAtRate(dec("100"), dec("-1"))
	assert.ErrorIs(t, err, ErrInvalidRate)
	_, err = ComputeVATAtRate(dec("0"), dec("21"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyDeductionsCapsProfessional(t *testing.T) {
	res, err := ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("400")},
	})
	require.NoError(t, err)
	require.Len(t, res.AppliedDeductions, 1)
	assertDecimal(t, "300", res.AppliedDeductions[0].Amount)
	assertDecimal(t, "700", res.FinalAmount)
}

func TestApplyDeductionsCapsAgainstOriginalTotal(t *testing.T) {
	res, err := ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("400")},
		{Type: model.DeductionInvestment, Amount: dec("300")},
	})
	require.NoError(t, err)
	require.Len(t, res.AppliedDeductions, 2)
	assertDecimal(t, "300", res.AppliedDeductions[0].Amount)
	assertDecimal(t, "200", res.AppliedDeductions[1].Amount)
	assertDecimal(t, "500", res.FinalAmount)

	res, err = ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("300")},
		{Type: model.DeductionProfessional, Amount: dec("300")},
	})
	require.NoError(t, err)
	assertDecimal(t, "300", res.AppliedDeductions[1].Amount)
	assertDecimal(t, "400", res.FinalAmount)
}

func TestApplyDeductionsBelowCap(t *testing.T) {
	res, err := ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionInvestment, Amount: dec("50.25")},
	})
	require.NoError(t, err)
	assertDecimal(t, "50.25", res.AppliedDeductions[0].Amount)
	assertDecimal(t, "949.75", res.FinalAmount)
}

func TestApplyDeductionsRoundsOnlyAtTheEnd(t *testing.T) {
	res, err := ApplyDeductions(dec("10.05"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("100")},
		{Type: model.DeductionInvestment, Amount: dec("100")},
	})
	require.NoError(t, err)
	// caps are 3.015 and 2.01; 10.05 - 5.025 = 5.025 -> 5.03
	assertDecimal(t, "3.02", res.AppliedDeductions[0].Amount)
	assertDecimal(t, "2.01", res.AppliedDeductions[1].Amount)
	assertDecimal(t, "5.03", res.FinalAmount)
}

func TestApplyDeductionsNeverIncreases(t *testing.T) {
	res, err := ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("-250")},
	})
	require.NoError(t, err)
	assertDecimal(t, "0", res.AppliedDeductions[0].Amount)
	assertDecimal(t, "1000", res.FinalAmount)
}

func TestApplyDeductionsInvalidType(t *testing.T) {
	res, err := ApplyDeductions(dec("1000"), []model.Deduction{
		{Type: model.DeductionProfessional, Amount: dec("100")},
		{Type: "bogus", Amount: dec("1")},
	})
	assert.ErrorIs(t, err, ErrInvalidDeductionType)
	assert.Empty(t, res.AppliedDeductions)
	assert.True(t, res.FinalAmount.IsZero())
}

func TestApplyDeductionsNegativeTotal(t *testing.T) {
	_, err := ApplyDeductions(dec("-1"), nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestApplyDeductionsEmpty(t *testing.T) {
	res, err := ApplyDeductions(dec("99.99"), nil)
	require.NoError(t, err)
	assert.Empty(t, res.AppliedDeductions)
	assertDecimal(t, "99.99", res.FinalAmount)
}
