// Package taxauthority models the tax authority that receives VAT reports.
// Only a stub exists; a live integration replaces it behind Submitter.
package taxauthority

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nurpe/vat-invoicing/internal/model"
)

var ErrUnavailable = errors.New("tax authority unavailable")

type StatusResult struct {
	Status  model.ReportStatus `json:"status"`
	Message string             `json:"message,omitempty"`
}

type Submitter interface {
	Submit(ctx context.Context, payload model.ReportPayload) (model.Acknowledgment, error)
	CheckStatus(ctx context.Context, reportID string) (StatusResult, error)
}

// Stub records submissions in the log and acknowledges every one as pending.
type Stub struct {
	log zerolog.Logger
	now func() time.Time
}

func NewStub(log zerolog.Logger) *Stub {
	return &Stub{log: log, now: time.Now}
}

func (s *Stub) Submit(ctx context.Context, payload model.ReportPayload) (model.Acknowledgment, error) {
	if err := ctx.Err(); err != nil {
		return model.Acknowledgment{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	now := s.now().UTC()
	reportID := newReportID(now)

	s.log.Info().
		Str("report_id", reportID).
		Str("vat_number", payload.VATNumber).
		Str("period_start", payload.Period.StartDate).
		Str("period_end", payload.Period.EndDate).
		Str("total_amount", payload.Totals.TotalAmount).
		Str("total_vat", payload.Totals.TotalVAT).
		Int("transactions", len(payload.Transactions)).
		Msg("VAT report submitted")

	return model.Acknowledgment{
		ReportID:       reportID,
		SubmissionDate: now,
		Status:         model.ReportStatusPending,
		Message:        "Report submitted successfully",
	}, nil
}

func (s *Stub) CheckStatus(ctx context.Context, reportID string) (StatusResult, error) {
	if err := ctx.Err(); err != nil {
		return StatusResult{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.log.Debug().Str("report_id", reportID).Msg("VAT report status requested")
	return StatusResult{
		Status:  model.ReportStatusPending,
		Message: "Report is being processed",
	}, nil
}

// newReportID combines the submission time with random bits so that
// concurrent submissions in the same millisecond stay distinct.
func newReportID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("VAT-%d-%s", now.UnixMilli(), suffix)
}
