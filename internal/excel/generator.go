package excel

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/vat-invoicing/internal/model"
)

const (
	summarySheet      = "Summary"
	transactionsSheet = "Transactions"

	// builtin "#,##0.00"
	amountNumFmt = 4
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.VATReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	st, err := newStyles(file)
	if err != nil {
		return nil, err
	}

	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, report, st); err != nil {
		return nil, err
	}

	if _, err := file.NewSheet(transactionsSheet); err != nil {
		return nil, err
	}
	if err := g.writeTransactions(file, report, st); err != nil {
		return nil, err
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type styles struct {
	header int
	amount int
}

func newStyles(file *excelize.File) (styles, error) {
	header, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return styles{}, err
	}
	amount, err := file.NewStyle(&excelize.Style{NumFmt: amountNumFmt})
	if err != nil {
		return styles{}, err
	}
	return styles{header: header, amount: amount}, nil
}

func (g *Generator) writeSummary(file *excelize.File, report model.VATReport, st styles) error {
	sheet := summarySheet
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}
	setAmount := func(cell string, value decimal.Decimal) {
		_ = file.SetCellValue(sheet, cell, value.Round(2).InexactFloat64())
		_ = file.SetCellStyle(sheet, cell, cell, st.amount)
	}

	set("A1", "VAT number")
	set("B1", report.Payload.VATNumber)
	set("A2", "Period start")
	set("B2", report.Payload.Period.StartDate)
	set("A3", "Period end")
	set("B3", report.Payload.Period.EndDate)
	set("A4", "Total amount")
	setAmount("B4", parseAmount(report.Payload.Totals.TotalAmount))
	set("A5", "Total VAT")
	setAmount("B5", parseAmount(report.Payload.Totals.TotalVAT))
	set("A6", "Transactions")
	set("B6", len(report.Payload.Transactions))
	if report.ReportID != "" {
		set("A7", "Report ID")
		set("B7", report.ReportID)
		set("A8", "Status")
		set("B8", string(report.Status))
	}
	_ = file.SetCellStyle(sheet, "A1", "A8", st.header)

	tableRow := 10
	set(fmt.Sprintf("A%d", tableRow), "VAT rate")
	set(fmt.Sprintf("B%d", tableRow), "Invoices")
	set(fmt.Sprintf("C%d", tableRow), "VAT amount")
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("C%d", tableRow), st.header)

	for i, key := range sortedRateKeys(report.Summary.Breakdown) {
		row := tableRow + 1 + i
		entry := report.Summary.Breakdown[key]
		set(fmt.Sprintf("A%d", row), key)
		set(fmt.Sprintf("B%d", row), entry.Count)
		setAmount(fmt.Sprintf("C%d", row), entry.Amount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 18)
	_ = file.SetColWidth(sheet, "B", "C", 24)
	return nil
}

func (g *Generator) writeTransactions(file *excelize.File, report model.VATReport, st styles) error {
	sheet := transactionsSheet
	headers := []string{"Date", "Client", "Amount", "VAT amount", "Invoice ID"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		_ = file.SetCellValue(sheet, cell, header)
	}
	_ = file.SetCellStyle(sheet, "A1", "E1", st.header)

	for i, tx := range report.Payload.Transactions {
		row := i + 2
		_ = file.SetCellValue(sheet, fmt.Sprintf("A%d", row), tx.Date)
		_ = file.SetCellValue(sheet, fmt.Sprintf("B%d", row), tx.ClientName)
		_ = file.SetCellValue(sheet, fmt.Sprintf("C%d", row), tx.Amount.Round(2).InexactFloat64())
		_ = file.SetCellValue(sheet, fmt.Sprintf("D%d", row), tx.VATAmount.Round(2).InexactFloat64())
		_ = file.SetCellValue(sheet, fmt.Sprintf("E%d", row), tx.InvoiceID.String())
	}
	if n := len(report.Payload.Transactions); n > 0 {
		_ = file.SetCellStyle(sheet, "C2", fmt.Sprintf("D%d", n+1), st.amount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 36)
	_ = file.SetColWidth(sheet, "C", "D", 14)
	_ = file.SetColWidth(sheet, "E", "E", 38)
	return nil
}

func parseAmount(raw string) decimal.Decimal {
	value, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return value
}

func sortedRateKeys(breakdown map[string]model.RateBreakdown) []string {
	keys := make([]string, 0, len(breakdown))
	for key := range breakdown {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		return parseAmount(trimPercent(keys[i])).GreaterThan(parseAmount(trimPercent(keys[j])))
	})
	return keys
}

func trimPercent(key string) string {
	if len(key) > 0 && key[len(key)-1] == '%' {
		return key[:len(key)-1]
	}
	return key
}
