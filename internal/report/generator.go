// Package report assembles period VAT reports from stored invoices and hands
// them to the tax authority.
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/tax"
	"github.com/nurpe/vat-invoicing/internal/taxauthority"
)

const dateLayout = "2006-01-02"

var ErrInvalidPeriod = errors.New("invalid report period")

// Result is the outcome of a generation attempt. Failures are carried in
// Error rather than returned.
type Result struct {
	Success bool             `json:"success"`
	Report  *model.VATReport `json:"report_data,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type Generator struct {
	authority taxauthority.Submitter
	log       zerolog.Logger
}

func NewGenerator(authority taxauthority.Submitter, log zerolog.Logger) *Generator {
	return &Generator{authority: authority, log: log}
}

// GenerateVATReport totals the given invoices, which callers have already
// restricted to the period, and submits the payload.
func (g *Generator) GenerateVATReport(
	ctx context.Context,
	invoices []model.Invoice,
	periodStart, periodEnd time.Time,
	vatNumber string,
) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Error().Interface("panic", r).Msg("VAT report generation panicked")
			result = Result{Success: false, Error: fmt.Sprintf("failed to generate VAT report: %v", r)}
		}
	}()

	payload, err := BuildPayload(invoices, periodStart, periodEnd, vatNumber)
	if err != nil {
		g.log.Warn().Err(err).Msg("VAT report rejected")
		return Result{Success: false, Error: err.Error()}
	}

	ack, err := g.authority.Submit(ctx, payload)
	if err != nil {
		g.log.Error().Err(err).Str("vat_number", vatNumber).Msg("VAT report submission failed")
		return Result{Success: false, Error: err.Error()}
	}

	return Result{
		Success: true,
		Report: &model.VATReport{
			Payload:        payload,
			Summary:        tax.Summarize(invoices),
			Acknowledgment: ack,
		},
	}
}

// Assemble builds the report document without submitting it. The
// acknowledgment is left empty.
func Assemble(invoices []model.Invoice, periodStart, periodEnd time.Time, vatNumber string) (model.VATReport, error) {
	payload, err := BuildPayload(invoices, periodStart, periodEnd, vatNumber)
	if err != nil {
		return model.VATReport{}, err
	}
	return model.VATReport{Payload: payload, Summary: tax.Summarize(invoices)}, nil
}

// CheckStatus relays whatever the authority reports for reportID.
func (g *Generator) CheckStatus(ctx context.Context, reportID string) (taxauthority.StatusResult, error) {
	return g.authority.CheckStatus(ctx, reportID)
}

// BuildPayload formats the submission document. Totals are plain sums.
func BuildPayload(invoices []model.Invoice, periodStart, periodEnd time.Time, vatNumber string) (model.ReportPayload, error) {
	if periodStart.IsZero() || periodEnd.IsZero() {
		return model.ReportPayload{}, fmt.Errorf("%w: start and end dates are required", ErrInvalidPeriod)
	}
	if periodEnd.Before(periodStart) {
		return model.ReportPayload{}, fmt.Errorf("%w: end date %s is before start date %s",
			ErrInvalidPeriod, periodEnd.Format(dateLayout), periodStart.Format(dateLayout))
	}

	totalAmount := decimal.Zero
	totalVAT := decimal.Zero
	transactions := make([]model.ReportTransaction, 0, len(invoices))
	for _, inv := range invoices {
		totalAmount = totalAmount.Add(inv.Amount)
		totalVAT = totalVAT.Add(inv.VATAmount)
		transactions = append(transactions, model.ReportTransaction{
			InvoiceID:  inv.ID,
			Date:       inv.IssueDate.Format(dateLayout),
			Amount:     inv.Amount,
			VATAmount:  inv.VATAmount,
			ClientName: inv.ClientName,
		})
	}

	return model.ReportPayload{
		VATNumber: vatNumber,
		Period: model.ReportPeriod{
			StartDate: periodStart.Format(dateLayout),
			EndDate:   periodEnd.Format(dateLayout),
		},
		Totals: model.ReportTotals{
			TotalAmount: totalAmount.StringFixed(2),
			TotalVAT:    totalVAT.StringFixed(2),
		},
		Transactions: transactions,
	}, nil
}
