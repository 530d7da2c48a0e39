package model

import "github.com/shopspring/decimal"

type Category string

const (
	CategoryStandard Category = "standard"
	CategoryReduced  Category = "reduced"
	CategoryZero     Category = "zero"
	CategoryExempt   Category = "exempt"
)

type RateEntry struct {
	Category    Category        `json:"category"`
	Rate        decimal.Decimal `json:"rate"`
	Description string          `json:"description"`
}

type DeductionType string

const (
	DeductionProfessional DeductionType = "professional"
	DeductionInvestment   DeductionType = "investment"
)

type Deduction struct {
	Type   DeductionType   `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

type RateBreakdown struct {
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

type TaxSummary struct {
	TotalRevenue decimal.Decimal          `json:"total_revenue"`
	TotalVAT     decimal.Decimal          `json:"total_vat"`
	Breakdown    map[string]RateBreakdown `json:"vat_breakdown"`
}
