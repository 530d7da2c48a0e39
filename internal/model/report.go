package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusAccepted ReportStatus = "accepted"
	ReportStatusRejected ReportStatus = "rejected"
)

type ReportPeriod struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type ReportTotals struct {
	TotalAmount string `json:"total_amount"`
	TotalVAT    string `json:"total_vat"`
}

type ReportTransaction struct {
	InvoiceID  uuid.UUID       `json:"invoice_id"`
	Date       string          `json:"date"`
	Amount     decimal.Decimal `json:"amount"`
	VATAmount  decimal.Decimal `json:"vat_amount"`
	ClientName string          `json:"client_name"`
}

// ReportPayload is the document handed to the tax authority.
type ReportPayload struct {
	VATNumber    string              `json:"vat_number"`
	Period       ReportPeriod        `json:"period"`
	Totals       ReportTotals        `json:"totals"`
	Transactions []ReportTransaction `json:"transactions"`
}

type Acknowledgment struct {
	ReportID       string       `json:"report_id"`
	SubmissionDate time.Time    `json:"submission_date"`
	Status         ReportStatus `json:"status"`
	Message        string       `json:"message,omitempty"`
}

type VATReport struct {
	Payload        ReportPayload `json:"payload"`
	Summary        TaxSummary    `json:"summary"`
	Acknowledgment `json:"acknowledgment"`
}

// ReportRecord is the persisted trace of a submitted report.
type ReportRecord struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	ReportID         string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"report_id"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	VATNumber        string          `gorm:"type:varchar(16);not null" json:"vat_number"`
	PeriodStart      time.Time       `gorm:"type:date;not null" json:"period_start"`
	PeriodEnd        time.Time       `gorm:"type:date;not null" json:"period_end"`
	TotalAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`
	TotalVAT         decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_vat"`
	TransactionCount int             `gorm:"not null" json:"transaction_count"`
	Status           ReportStatus    `gorm:"type:varchar(16);not null" json:"status"`
	Message          string          `json:"message,omitempty"`
	SubmittedAt      time.Time       `gorm:"not null" json:"submitted_at"`
	CreatedAt        time.Time       `json:"created_at"`
}

func (ReportRecord) TableName() string {
	return "vat_reports"
}

func (r *ReportRecord) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
