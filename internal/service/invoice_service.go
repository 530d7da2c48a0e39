package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/tax"
)

var (
	hundred      = decimal.NewFromInt(100)
	vatTolerance = decimal.RequireFromString("0.01")
)

type InvoiceStore interface {
	Create(ctx context.Context, invoice *model.Invoice) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Invoice, error)
	ListByUserAndDateRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Invoice, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error)
}

type InvoiceService struct {
	repo     InvoiceStore
	validate *validator.Validate
}

type CreateInvoiceInput struct {
	ClientName  string          `json:"client_name" validate:"required,max=255"`
	Amount      decimal.Decimal `json:"amount"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TaxCategory string          `json:"tax_category" validate:"max=16"`
	IssueDate   time.Time       `json:"issue_date" validate:"required"`
	DueDate     time.Time       `json:"due_date" validate:"required"`
	Status      string          `json:"status" validate:"required,max=32"`
}

func NewInvoiceService(repo InvoiceStore) *InvoiceService {
	return &InvoiceService{repo: repo, validate: newValidator()}
}

func (s *InvoiceService) Create(ctx context.Context, userID uuid.UUID, input CreateInvoiceInput) (*model.Invoice, error) {
	if userID == uuid.Nil {
		return nil, ErrPermissionDenied
	}

	category, err := s.check(input)
	if err != nil {
		return nil, err
	}

	invoice := &model.Invoice{
		UserID:      userID,
		ClientName:  input.ClientName,
		Amount:      input.Amount,
		VATRate:     input.VATRate,
		VATAmount:   input.VATAmount,
		TaxCategory: category,
		IssueDate:   dateOnly(input.IssueDate),
		DueDate:     dateOnly(input.DueDate),
		Status:      input.Status,
	}
	if err := s.repo.Create(ctx, invoice); err != nil {
		return nil, fmt.Errorf("create invoice: %w", err)
	}
	return invoice, nil
}

// check applies the struct tags and the monetary rules, returning the parsed category.
func (s *InvoiceService) check(input CreateInvoiceInput) (model.Category, error) {
	verr := &ValidationError{}
	if err := collectStructErrors(s.validate, input, verr); err != nil {
		return "", err
	}

	if !input.Amount.IsPositive() {
		verr.add("amount", "must be greater than 0")
	} else if !input.Amount.Equal(input.Amount.Round(2)) {
		verr.add("amount", "must have at most 2 decimal places")
	}
	if input.VATRate.IsNegative() || input.VATRate.GreaterThan(hundred) {
		verr.add("vat_rate", "must be between 0 and 100")
	}
	if input.VATAmount.IsNegative() {
		verr.add("vat_amount", "must not be negative")
	} else if !input.VATAmount.Equal(input.VATAmount.Round(2)) {
		verr.add("vat_amount", "must have at most 2 decimal places")
	}

	category, err := tax.ParseCategory(input.TaxCategory)
	if err != nil {
		verr.add("tax_category", "must be one of standard, reduced, zero, exempt")
	}

	if !input.IssueDate.IsZero() && !input.DueDate.IsZero() && dateOnly(input.DueDate).Before(dateOnly(input.IssueDate)) {
		verr.add("due_date", "must not be before issue_date")
	}

	if _, failed := verr.Fields["amount"]; !failed {
		if _, failed := verr.Fields["vat_rate"]; !failed {
			expected, err := tax.ComputeVATAtRate(input.Amount, input.VATRate)
			if err == nil && input.VATAmount.Sub(expected.VATAmount).Abs().GreaterThan(vatTolerance) {
				verr.add("vat_amount", "must equal amount x vat_rate / 100 ("+expected.VATAmount.StringFixed(2)+")")
			}
		}
	}

	return category, verr.orNil()
}

func (s *InvoiceService) List(ctx context.Context, userID uuid.UUID) ([]model.Invoice, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListByRange returns invoices issued between from and to inclusive.
func (s *InvoiceService) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]model.Invoice, error) {
	from, to, err := normalizePeriod(from, to)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByUserAndDateRange(ctx, userID, from, to)
}

func (s *InvoiceService) Get(ctx context.Context, userID, invoiceID uuid.UUID) (*model.Invoice, error) {
	invoice, err := s.repo.GetByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if invoice.UserID != userID {
		return nil, ErrNotFound
	}
	return invoice, nil
}

// Summary aggregates the user's invoices. Zero bounds mean every invoice.
func (s *InvoiceService) Summary(ctx context.Context, userID uuid.UUID, from, to time.Time) (model.TaxSummary, error) {
	var (
		invoices []model.Invoice
		err      error
	)
	if from.IsZero() && to.IsZero() {
		invoices, err = s.List(ctx, userID)
	} else {
		invoices, err = s.ListByRange(ctx, userID, from, to)
	}
	if err != nil {
		return model.TaxSummary{}, err
	}
	return tax.Summarize(invoices), nil
}

func normalizePeriod(from, to time.Time) (time.Time, time.Time, error) {
	if from.IsZero() || to.IsZero() {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: both from and to dates are required", ErrInvalidInput)
	}
	from, to = dateOnly(from), dateOnly(to)
	if from.After(to) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: from must be before or equal to to", ErrInvalidInput)
	}
	return from, to, nil
}

func dateOnly(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
