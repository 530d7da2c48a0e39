package pdf

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Generate(report model.VATReport) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle("VAT report "+report.Payload.VATNumber, false)
	pdf.AddPage()
	pdf.SetFillColor(230, 230, 230)

	// core fonts are cp1252; client names may carry accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont(fontName, "B", 16)
	pdf.CellFormat(0, 10, "VAT report", "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(0, 6, fmt.Sprintf("VAT number: BE%s", report.Payload.VATNumber), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Period: %s to %s", report.Payload.Period.StartDate, report.Payload.Period.EndDate), "", 1, "C", false, 0, "")
	if report.ReportID != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Report %s (%s), submitted %s",
			report.ReportID, report.Status, report.SubmissionDate.UTC().Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	}
	pdf.Ln(4)

	section(pdf, "Totals")
	pdf.SetFont(fontName, "", 11)
	pdf.CellFormat(60, 6, "Total amount (excl. VAT)", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, report.Payload.Totals.TotalAmount+" EUR", "", 1, "R", false, 0, "")
	pdf.CellFormat(60, 6, "Total VAT", "", 0, "L", false, 0, "")
	pdf.CellFormat(40, 6, report.Payload.Totals.TotalVAT+" EUR", "", 1, "R", false, 0, "")
	pdf.Ln(4)

	section(pdf, "VAT breakdown")
	breakdownWidths := []float64{40, 30, 40}
	drawTableRow(pdf, []string{"Rate", "Invoices", "VAT amount"}, breakdownWidths, "LRR", true)
	keys := make([]string, 0, len(report.Summary.Breakdown))
	for key := range report.Summary.Breakdown {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		entry := report.Summary.Breakdown[key]
		drawTableRow(pdf, []string{key, fmt.Sprintf("%d", entry.Count), formatAmount(entry.Amount)}, breakdownWidths, "LRR", false)
	}
	pdf.Ln(4)

	section(pdf, "Transactions")
	txWidths := []float64{25, 95, 30, 30}
	drawTableRow(pdf, []string{"Date", "Client", "Amount", "VAT"}, txWidths, "LLRR", true)
	if len(report.Payload.Transactions) == 0 {
		pdf.SetFont(fontName, "I", 10)
		pdf.CellFormat(0, 8, "No invoices in this period.", "", 1, "L", false, 0, "")
	}
	for _, tx := range report.Payload.Transactions {
		drawTableRow(pdf, []string{
			tx.Date,
			truncate(tr(safeValue(tx.ClientName)), 55),
			formatAmount(tx.Amount),
			formatAmount(tx.VATAmount),
		}, txWidths, "LLRR", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

// aligns holds one gofpdf alignment letter per column.
func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, aligns string, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		pdf.CellFormat(widths[i], 8, col, "1", 0, aligns[i:i+1], header, 0, "")
	}
	pdf.Ln(-1)
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func truncate(value string, max int) string {
	if len(value) <= max {
		return value
	}
	return value[:max-3] + "..."
}

func formatAmount(value decimal.Decimal) string {
	return value.StringFixed(2)
}
