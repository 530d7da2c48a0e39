package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/report"
	"github.com/nurpe/vat-invoicing/internal/taxauthority"
)

type ExportFormat string

const (
	ExportXLSX ExportFormat = "xlsx"
	ExportPDF  ExportFormat = "pdf"
)

type ReportGenerator interface {
	GenerateVATReport(ctx context.Context, invoices []model.Invoice, periodStart, periodEnd time.Time, vatNumber string) report.Result
	CheckStatus(ctx context.Context, reportID string) (taxauthority.StatusResult, error)
}

type ReportStore interface {
	Create(ctx context.Context, record *model.ReportRecord) error
	GetByReportID(ctx context.Context, reportID string) (*model.ReportRecord, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ReportRecord, error)
}

type DocumentGenerator interface {
	Generate(report model.VATReport) ([]byte, error)
}

type ReportService struct {
	invoices  InvoiceStore
	users     UserStore
	reports   ReportStore
	generator ReportGenerator
	excel     DocumentGenerator
	pdf       DocumentGenerator
	log       zerolog.Logger
}

type ExportResult struct {
	FileName    string
	ContentType string
	Content     []byte
}

type ReportStatus struct {
	ReportID string             `json:"report_id"`
	Status   model.ReportStatus `json:"status"`
	Message  string             `json:"message"`
}

func NewReportService(
	invoices InvoiceStore,
	users UserStore,
	reports ReportStore,
	generator ReportGenerator,
	excel DocumentGenerator,
	pdf DocumentGenerator,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		invoices:  invoices,
		users:     users,
		reports:   reports,
		generator: generator,
		excel:     excel,
		pdf:       pdf,
		log:       log,
	}
}

// GenerateVATReport submits the caller's invoices for the period. Domain
// failures come back in the Result; the error is reserved for storage faults.
func (s *ReportService) GenerateVATReport(ctx context.Context, principal model.Principal, from, to time.Time) (report.Result, error) {
	user, err := s.owner(ctx, principal)
	if err != nil {
		return report.Result{}, err
	}

	from, to = dateOnly(from), dateOnly(to)
	var invoices []model.Invoice
	if !from.IsZero() && !to.IsZero() && !from.After(to) {
		invoices, err = s.invoices.ListByUserAndDateRange(ctx, user.ID, from, to)
		if err != nil {
			return report.Result{}, err
		}
	}

	result := s.generator.GenerateVATReport(ctx, invoices, from, to, user.VATNumber)
	if !result.Success || result.Report == nil {
		return result, nil
	}

	record := &model.ReportRecord{
		ReportID:         result.Report.ReportID,
		UserID:           user.ID,
		VATNumber:        user.VATNumber,
		PeriodStart:      from,
		PeriodEnd:        to,
		TotalAmount:      decimal.RequireFromString(result.Report.Payload.Totals.TotalAmount),
		TotalVAT:         decimal.RequireFromString(result.Report.Payload.Totals.TotalVAT),
		TransactionCount: len(result.Report.Payload.Transactions),
		Status:           result.Report.Status,
		Message:          result.Report.Message,
		SubmittedAt:      result.Report.SubmissionDate,
	}
	if err := s.reports.Create(ctx, record); err != nil {
		s.log.Error().Err(err).Str("report_id", record.ReportID).Msg("failed to store submitted report")
		return report.Result{}, fmt.Errorf("store report: %w", err)
	}
	return result, nil
}

func (s *ReportService) CheckStatus(ctx context.Context, principal model.Principal, reportID string) (*ReportStatus, error) {
	reportID = strings.TrimSpace(reportID)
	if reportID == "" {
		return nil, fmt.Errorf("%w: report id is required", ErrInvalidInput)
	}

	record, err := s.reports.GetByReportID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if record.UserID != principal.UserID {
		return nil, ErrPermissionDenied
	}

	status, err := s.generator.CheckStatus(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return &ReportStatus{ReportID: reportID, Status: status.Status, Message: status.Message}, nil
}

func (s *ReportService) History(ctx context.Context, principal model.Principal) ([]model.ReportRecord, error) {
	return s.reports.ListByUser(ctx, principal.UserID)
}

// Export renders the period report without submitting it.
func (s *ReportService) Export(ctx context.Context, principal model.Principal, from, to time.Time, format ExportFormat) (*ExportResult, error) {
	user, err := s.owner(ctx, principal)
	if err != nil {
		return nil, err
	}

	var generator DocumentGenerator
	var contentType string
	switch format {
	case ExportXLSX:
		generator = s.excel
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ExportPDF:
		generator = s.pdf
		contentType = "application/pdf"
	default:
		return nil, fmt.Errorf("%w: unsupported export format %q", ErrInvalidInput, string(format))
	}

	from, to, err = normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	invoices, err := s.invoices.ListByUserAndDateRange(ctx, user.ID, from, to)
	if err != nil {
		return nil, err
	}

	doc, err := report.Assemble(invoices, from, to, user.VATNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	content, err := generator.Generate(doc)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		FileName:    buildFileName(user, from, to, format),
		ContentType: contentType,
		Content:     content,
	}, nil
}

func (s *ReportService) owner(ctx context.Context, principal model.Principal) (*model.User, error) {
	if principal.UserID == uuid.Nil {
		return nil, ErrPermissionDenied
	}
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionDenied
		}
		return nil, err
	}
	return user, nil
}

func buildFileName(user *model.User, from, to time.Time, format ExportFormat) string {
	company := sanitizeFileName(user.CompanyName)
	if company == "" {
		company = user.VATNumber
	}
	period := fmt.Sprintf("%s-%s", from.Format("20060102"), to.Format("20060102"))
	return fmt.Sprintf("vat-report-%s-%s.%s", company, period, format)
}

func sanitizeFileName(input string) string {
	result := make([]rune, 0, len(input))
	for _, r := range strings.ToLower(input) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			result = append(result, r)
		case r == ' ' || r == '-' || r == '_':
			if len(result) > 0 && result[len(result)-1] != '-' {
				result = append(result, '-')
			}
		}
	}
	return strings.Trim(string(result), "-")
}
