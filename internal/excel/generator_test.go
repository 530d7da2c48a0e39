package excel

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/vat-invoicing/internal/model"
)

func sampleReport() model.VATReport {
	return model.VATReport{
		Payload: model.ReportPayload{
			VATNumber: "0123456789",
			Period:    model.ReportPeriod{StartDate: "2024-01-01", EndDate: "2024-03-31"},
			Totals:    model.ReportTotals{TotalAmount: "300.00", TotalVAT: "33.00"},
			Transactions: []model.ReportTransaction{
				{InvoiceID: uuid.New(), Date: "2024-01-15", Amount: decimal.RequireFromString("100"), VATAmount: decimal.RequireFromString("21"), ClientName: "Acme"},
				{InvoiceID: uuid.New(), Date: "2024-03-31", Amount: decimal.RequireFromString("200"), VATAmount: decimal.RequireFromString("12"), ClientName: "Beta"},
			},
		},
		Summary: model.TaxSummary{
			TotalRevenue: decimal.RequireFromString("300"),
			TotalVAT:     decimal.RequireFromString("33"),
			Breakdown: map[string]model.RateBreakdown{
				"6.00%":  {Count: 1, Amount: decimal.RequireFromString("12")},
				"21.00%": {Count: 1, Amount: decimal.RequireFromString("21")},
			},
		},
		Acknowledgment: model.Acknowledgment{
			ReportID:       "VAT-1-abcdef12",
			SubmissionDate: time.Date(2024, 4, 1, 9, 0, 0, 0, time.UTC),
			Status:         model.ReportStatusPending,
		},
	}
}

func TestGenerate(t *testing.T) {
	content, err := NewGenerator().Generate(sampleReport())
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, []string{summarySheet, transactionsSheet}, file.GetSheetList())

	vat, err := file.GetCellValue(summarySheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "0123456789", vat)

	reportID, err := file.GetCellValue(summarySheet, "B7")
	require.NoError(t, err)
	assert.Equal(t, "VAT-1-abcdef12", reportID)

	firstRate, err := file.GetCellValue(summarySheet, "A11")
	require.NoError(t, err)
	assert.Equal(t, "21.00%", firstRate)

	rows, err := file.GetRows(transactionsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Date", rows[0][0])
	assert.Equal(t, "Beta", rows[2][1])
}

func TestGenerateEmptyReport(t *testing.T) {
	rep := model.VATReport{
		Payload: model.ReportPayload{
			VATNumber: "0123456789",
			Totals:    model.ReportTotals{TotalAmount: "0.00", TotalVAT: "0.00"},
		},
	}
	content, err := NewGenerator().Generate(rep)
	require.NoError(t, err)

	file, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer file.Close()

	rows, err := file.GetRows(transactionsSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	label, err := file.GetCellValue(summarySheet, "A7")
	require.NoError(t, err)
	assert.Empty(t, label)
}
