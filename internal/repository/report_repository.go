package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/model"
)

type ReportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) Create(ctx context.Context, record *model.ReportRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *ReportRepository) GetByReportID(ctx context.Context, reportID string) (*model.ReportRecord, error) {
	var record model.ReportRecord
	if err := r.db.WithContext(ctx).Where("report_id = ?", reportID).Take(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ReportRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.ReportRecord, error) {
	var records []model.ReportRecord
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("submitted_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
