package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Invoice struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	ClientName  string          `gorm:"not null" json:"client_name"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"amount"`
	VATRate     decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat_rate"`
	VATAmount   decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"vat_amount"`
	TaxCategory Category        `gorm:"type:varchar(16);not null;default:'standard'" json:"tax_category"`
	IssueDate   time.Time       `gorm:"type:date;not null;index" json:"issue_date"`
	DueDate     time.Time       `gorm:"type:date;not null" json:"due_date"`
	Status      string          `gorm:"not null" json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

// BeforeCreate assigns an ID when the database does not generate one.
func (i *Invoice) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// RateKey is the breakdown key for the invoice's stored VAT rate, e.g. "21.00%".
func (i Invoice) RateKey() string {
	return i.VATRate.StringFixed(2) + "%"
}
