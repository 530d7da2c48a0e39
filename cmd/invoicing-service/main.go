package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/nurpe/vat-invoicing/internal/auth"
	"github.com/nurpe/vat-invoicing/internal/config"
	"github.com/nurpe/vat-invoicing/internal/db"
	"github.com/nurpe/vat-invoicing/internal/excel"
	httphandler "github.com/nurpe/vat-invoicing/internal/http"
	"github.com/nurpe/vat-invoicing/internal/http/middleware"
	"github.com/nurpe/vat-invoicing/internal/logger"
	"github.com/nurpe/vat-invoicing/internal/pdf"
	"github.com/nurpe/vat-invoicing/internal/report"
	"github.com/nurpe/vat-invoicing/internal/repository"
	"github.com/nurpe/vat-invoicing/internal/service"
	"github.com/nurpe/vat-invoicing/internal/taxauthority"
	"github.com/nurpe/vat-invoicing/internal/vies"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Environment, cfg.LogLevel)

	database, err := db.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	userRepo := repository.NewUserRepository(database)
	invoiceRepo := repository.NewInvoiceRepository(database)
	reportRepo := repository.NewReportRepository(database)

	viesClient := vies.NewClient(cfg.VIES.URL, cfg.VIES.CountryCode, cfg.VIES.Timeout)
	vatValidator := vies.NewValidator(viesClient, logger.WithComponent(log, "vies"))
	authority := taxauthority.NewStub(logger.WithComponent(log, "tax-authority"))
	reportGenerator := report.NewGenerator(authority, logger.WithComponent(log, "report"))

	tokenParser := auth.NewParser(cfg.Auth.AccessSecret)

	services := httphandler.Services{
		Users:    service.NewUserService(userRepo, vatValidator, tokenParser, cfg.Auth.AccessTTL, logger.WithComponent(log, "users")),
		Invoices: service.NewInvoiceService(invoiceRepo),
		Tax:      service.NewTaxService(),
		Reports: service.NewReportService(
			invoiceRepo,
			userRepo,
			reportRepo,
			reportGenerator,
			excel.NewGenerator(),
			pdf.NewGenerator(),
			logger.WithComponent(log, "reports"),
		),
		VAT: vatValidator,
	}

	handler := httphandler.NewHandler(services, logger.WithComponent(log, "http"))
	authMiddleware := middleware.Auth(tokenParser)
	router := httphandler.NewRouter(handler, authMiddleware, cfg.Environment, cfg.HTTP.AllowedOrigins)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	log.Info().Str("addr", addr).Msg("starting vat invoicing service")

	if err := router.Run(addr); err != nil {
		log.Error().Err(err).Msg("server stopped")
		os.Exit(1)
	}
}
