package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/nurpe/vat-invoicing/internal/service"
)

type Handler struct {
	users    *service.UserService
	invoices *service.InvoiceService
	tax      *service.TaxService
	reports  *service.ReportService
	vat      service.VATChecker
	log      zerolog.Logger
}

type Services struct {
	Users    *service.UserService
	Invoices *service.InvoiceService
	Tax      *service.TaxService
	Reports  *service.ReportService
	VAT      service.VATChecker
}

func NewHandler(services Services, log zerolog.Logger) *Handler {
	return &Handler{
		users:    services.Users,
		invoices: services.Invoices,
		tax:      services.Tax,
		reports:  services.Reports,
		vat:      services.VAT,
		log:      log,
	}
}

func (h *Handler) Register(router *gin.Engine, authMiddleware gin.HandlerFunc) {
	router.GET("/healthz", h.health)
	router.POST("/auth/register", h.register)
	router.POST("/auth/login", h.login)

	protected := router.Group("/")
	protected.Use(authMiddleware)

	protected.GET("/me", h.me)

	protected.POST("/invoices", h.createInvoice)
	protected.GET("/invoices", h.listInvoices)
	protected.GET("/invoices/:id", h.getInvoice)

	protected.GET("/tax/rates", h.listRates)
	protected.POST("/tax/calculate", h.calculateVAT)
	protected.POST("/tax/deductions", h.applyDeductions)
	protected.GET("/tax/summary", h.taxSummary)

	protected.POST("/vat/validate", h.validateVAT)

	protected.GET("/reports/vat", h.listReports)
	protected.POST("/reports/vat", h.generateVATReport)
	protected.GET("/reports/vat/:reportId/status", h.reportStatus)
	protected.POST("/reports/vat/export", h.exportVATReport)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) handleError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": service.ErrValidation.Error(), "fields": verr.Fields})
	case errors.Is(err, service.ErrValidation), errors.Is(err, service.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func parseDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, service.ErrInvalidInput
	}
	layouts := []string{
		time.RFC3339,
		"2006-01-02",
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, service.ErrInvalidInput
}

// parseOptionalDate treats an empty value as the zero time.
func parseOptionalDate(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	return parseDate(raw)
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
