package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/nurpe/vat-invoicing/internal/db"
	"github.com/nurpe/vat-invoicing/internal/vies"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	database, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))
	return database
}

func day(raw string) time.Time {
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		panic(err)
	}
	return parsed
}

func dec(raw string) decimal.Decimal {
	return decimal.RequireFromString(raw)
}

// formatOnlyChecker validates with the local format rule only.
type formatOnlyChecker struct{}

func (formatOnlyChecker) Validate(_ context.Context, raw string) vies.Verdict {
	cleaned := vies.Clean(raw)
	return vies.FormatVerdict(cleaned, vies.ErrServiceUnavailable)
}
