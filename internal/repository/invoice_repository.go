package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/model"
)

type InvoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) *InvoiceRepository {
	return &InvoiceRepository{db: db}
}

func (r *InvoiceRepository) Create(ctx context.Context, invoice *model.Invoice) error {
	return r.db.WithContext(ctx).Create(invoice).Error
}

func (r *InvoiceRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("issue_date ASC, created_at ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListByUserAndDateRange returns invoices issued between from and to, both inclusive.
func (r *InvoiceRepository) ListByUserAndDateRange(
	ctx context.Context,
	userID uuid.UUID,
	from, to time.Time,
) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND issue_date >= ? AND issue_date <= ?", userID, from, to).
		Order("issue_date ASC, created_at ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *InvoiceRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invoice, error) {
	var invoice model.Invoice
	err := r.db.WithContext(ctx).Where("id = ?", id).Take(&invoice).Error
	if err != nil {
		return nil, err
	}
	return &invoice, nil
}
