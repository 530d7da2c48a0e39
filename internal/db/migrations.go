package db

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/model"
)

var migrationStatements = []string{
	`CREATE EXTENSION IF NOT EXISTS "pgcrypto";`,
	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		username TEXT NOT NULL,
		password_hash TEXT NOT NULL,
		company_name TEXT NOT NULL,
		vat_number VARCHAR(16) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_users_username ON users (username);`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		user_id UUID NOT NULL REFERENCES users(id),
		client_name TEXT NOT NULL,
		amount NUMERIC(10,2) NOT NULL CHECK (amount > 0),
		vat_rate NUMERIC(5,2) NOT NULL CHECK (vat_rate >= 0 AND vat_rate <= 100),
		vat_amount NUMERIC(10,2) NOT NULL CHECK (vat_amount >= 0),
		tax_category VARCHAR(16) NOT NULL DEFAULT 'standard',
		issue_date DATE NOT NULL,
		due_date DATE NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`DO $$
	BEGIN
		IF NOT EXISTS (SELECT 1 FROM information_schema.columns WHERE table_name = 'invoices' AND column_name = 'tax_category') THEN
			ALTER TABLE invoices ADD COLUMN tax_category VARCHAR(16) NOT NULL DEFAULT 'standard';
		END IF;
	END
	$$;`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_user_id ON invoices (user_id);`,
	`CREATE INDEX IF NOT EXISTS idx_invoices_user_issue_date ON invoices (user_id, issue_date);`,
	`CREATE TABLE IF NOT EXISTS vat_reports (
		id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
		report_id VARCHAR(64) NOT NULL,
		user_id UUID NOT NULL REFERENCES users(id),
		vat_number VARCHAR(16) NOT NULL,
		period_start DATE NOT NULL,
		period_end DATE NOT NULL,
		total_amount NUMERIC(12,2) NOT NULL,
		total_vat NUMERIC(12,2) NOT NULL,
		transaction_count INTEGER NOT NULL,
		status VARCHAR(16) NOT NULL DEFAULT 'pending',
		message TEXT,
		submitted_at TIMESTAMPTZ NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`,
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_vat_reports_report_id ON vat_reports (report_id);`,
	`CREATE INDEX IF NOT EXISTS idx_vat_reports_user_id ON vat_reports (user_id);`,
}

// Migrate applies the schema. Postgres gets the hand-written statements;
// other dialects (sqlite in tests) fall back to gorm's AutoMigrate.
func Migrate(db *gorm.DB) error {
	if db.Dialector.Name() != "postgres" {
		return db.AutoMigrate(&model.User{}, &model.Invoice{}, &model.ReportRecord{})
	}
	return runMigrations(db)
}

func runMigrations(db *gorm.DB) error {
	for i, stmt := range migrationStatements {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
