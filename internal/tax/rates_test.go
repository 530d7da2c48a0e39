package tax

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/vat-invoicing/internal/model"
)

func TestRateFor(t *testing.T) {
	tests := []struct {
		category model.Category
		want     string
	}{
		{model.CategoryStandard, "21"},
		{model.CategoryReduced, "12"},
		{model.CategoryZero, "0"},
		{model.CategoryExempt, "0"},
	}
	for _, tt := range tests {
		t.Run(string(tt.category), func(t *testing.T) {
			entry, err := RateFor(tt.category)
			require.NoError(t, err)
			assert.Equal(t, tt.want, entry.Rate.String())
			assert.Equal(t, tt.category, entry.Category)
			assert.NotEmpty(t, entry.Description)
		})
	}
}

func TestRateForUnknownCategory(t *testing.T) {
	_, err := RateFor("luxury")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestRatesReturnsCopy(t *testing.T) {
	rates := Rates()
	require.Len(t, rates, 5)
	rates[0].Description = "changed"

	entry, err := RateFor(model.CategoryStandard)
	require.NoError(t, err)
	assert.Equal(t, "Standard rate", entry.Description)
}

func TestRatesForReducedKeepsBothSubRates(t *testing.T) {
	rates := RatesFor(model.CategoryReduced)
	require.Len(t, rates, 2)
	assert.Equal(t, "12", rates[0].String())
	assert.Equal(t, "6", rates[1].String())
}

func TestParseCategory(t *testing.T) {
	got, err := ParseCategory("  Reduced ")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryReduced, got)

	got, err = ParseCategory("")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryStandard, got)

	_, err = ParseCategory("luxury")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
