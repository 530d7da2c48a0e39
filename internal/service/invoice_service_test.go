package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/repository"
)

func validInput() CreateInvoiceInput {
	return CreateInvoiceInput{
		ClientName:  "Acme NV",
		Amount:      dec("100.00"),
		VATRate:     dec("21"),
		VATAmount:   dec("21.00"),
		TaxCategory: "standard",
		IssueDate:   day("2024-03-01"),
		DueDate:     day("2024-03-31"),
		Status:      "pending",
	}
}

func TestInvoiceService_Create(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(setupDB(t)))
	userID := uuid.New()

	input := validInput()
	input.TaxCategory = ""
	invoice, err := svc.Create(context.Background(), userID, input)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, invoice.ID)
	assert.Equal(t, model.CategoryStandard, invoice.TaxCategory)

	got, err := svc.Get(context.Background(), userID, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Acme NV", got.ClientName)
}

func TestInvoiceService_CreateReducedSixPercent(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(setupDB(t)))

	input := validInput()
	input.TaxCategory = "Reduced"
	input.VATRate = dec("6")
	input.VATAmount = dec("6.00")
	invoice, err := svc.Create(context.Background(), uuid.New(), input)
	require.NoError(t, err)
	assert.Equal(t, model.CategoryReduced, invoice.TaxCategory)
	assert.Equal(t, "6.00%", invoice.RateKey())
}

func TestInvoiceService_CreateValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*CreateInvoiceInput)
		field  string
	}{
		{name: "missing client", mutate: func(in *CreateInvoiceInput) { in.ClientName = "" }, field: "client_name"},
		{name: "zero amount", mutate: func(in *CreateInvoiceInput) { in.Amount = dec("0") }, field: "amount"},
		{name: "negative amount", mutate: func(in *CreateInvoiceInput) { in.Amount = dec("-5") }, field: "amount"},
		{name: "too precise amount", mutate: func(in *CreateInvoiceInput) { in.Amount = dec("10.001") }, field: "amount"},
		{name: "rate above 100", mutate: func(in *CreateInvoiceInput) { in.VATRate = dec("101") }, field: "vat_rate"},
		{name: "negative vat", mutate: func(in *CreateInvoiceInput) { in.VATAmount = dec("-1") }, field: "vat_amount"},
		{name: "inconsistent vat", mutate: func(in *CreateInvoiceInput) { in.VATAmount = dec("20.00") }, field: "vat_amount"},
		{name: "unknown category", mutate: func(in *CreateInvoiceInput) { in.TaxCategory = "luxury" }, field: "tax_category"},
		{name: "due before issue", mutate: func(in *CreateInvoiceInput) { in.DueDate = day("2024-02-01") }, field: "due_date"},
		{name: "missing status", mutate: func(in *CreateInvoiceInput) { in.Status = "" }, field: "status"},
	}

	svc := NewInvoiceService(repository.NewInvoiceRepository(setupDB(t)))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(&input)

			_, err := svc.Create(context.Background(), uuid.New(), input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))

			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestInvoiceService_VATWithinTolerance(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(setupDB(t)))

	input := validInput()
	input.VATAmount = dec("21.01")
	_, err := svc.Create(context.Background(), uuid.New(), input)
	assert.NoError(t, err)
}

func TestInvoiceService_GetForeignInvoice(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(setupDB(t)))
	owner := uuid.New()

	invoice, err := svc.Create(context.Background(), owner, validInput())
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), uuid.New(), invoice.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInvoiceService_SummaryAndRange(t *testing.T) {
	svc := NewInvoiceService(repository.NewInvoiceRepository(setupDB(t)))
	ctx := context.Background()
	userID := uuid.New()

	first := validInput()
	second := validInput()
	second.IssueDate = day("2024-05-10")
	second.DueDate = day("2024-06-10")
	second.Amount = dec("50.00")
	second.VATRate = dec("6")
	second.VATAmount = dec("3.00")
	second.TaxCategory = "reduced"
	for _, in := range []CreateInvoiceInput{first, second} {
		_, err := svc.Create(ctx, userID, in)
		require.NoError(t, err)
	}

	all, err := svc.Summary(ctx, userID, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Equal(t, "150.00", all.TotalRevenue.StringFixed(2))
	assert.Equal(t, "24.00", all.TotalVAT.StringFixed(2))
	assert.Len(t, all.Breakdown, 2)

	q1, err := svc.Summary(ctx, userID, day("2024-01-01"), day("2024-03-31"))
	require.NoError(t, err)
	assert.Equal(t, "100.00", q1.TotalRevenue.StringFixed(2))
	assert.Equal(t, 1, q1.Breakdown["21.00%"].Count)

	ranged, err := svc.ListByRange(ctx, userID, day("2024-05-10"), day("2024-05-10"))
	require.NoError(t, err)
	assert.Len(t, ranged, 1)

	_, err = svc.ListByRange(ctx, userID, day("2024-06-01"), day("2024-05-01"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}
