package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/http/middleware"
	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/service"
)

type createInvoiceRequest struct {
	ClientName  string          `json:"client_name"`
	Amount      decimal.Decimal `json:"amount"`
	VATRate     decimal.Decimal `json:"vat_rate"`
	VATAmount   decimal.Decimal `json:"vat_amount"`
	TaxCategory string          `json:"tax_category"`
	IssueDate   string          `json:"issue_date" binding:"required"`
	DueDate     string          `json:"due_date" binding:"required"`
	Status      string          `json:"status"`
}

func (h *Handler) createInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req createInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	issueDate, err := parseDate(req.IssueDate)
	if err != nil {
		badRequest(c, "invalid issue_date")
		return
	}
	dueDate, err := parseDate(req.DueDate)
	if err != nil {
		badRequest(c, "invalid due_date")
		return
	}

	invoice, err := h.invoices.Create(c.Request.Context(), principal.UserID, service.CreateInvoiceInput{
		ClientName:  strings.TrimSpace(req.ClientName),
		Amount:      req.Amount,
		VATRate:     req.VATRate,
		VATAmount:   req.VATAmount,
		TaxCategory: req.TaxCategory,
		IssueDate:   issueDate,
		DueDate:     dueDate,
		Status:      strings.TrimSpace(req.Status),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, invoice)
}

func (h *Handler) listInvoices(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	from, err := parseOptionalDate(c.Query("from"))
	if err != nil {
		badRequest(c, "invalid from")
		return
	}
	to, err := parseOptionalDate(c.Query("to"))
	if err != nil {
		badRequest(c, "invalid to")
		return
	}

	var invoices []model.Invoice
	if from.IsZero() && to.IsZero() {
		invoices, err = h.invoices.List(c.Request.Context(), principal.UserID)
	} else {
		invoices, err = h.invoices.ListByRange(c.Request.Context(), principal.UserID, from, to)
	}
	if err != nil {
		h.handleError(c, err)
		return
	}
	if invoices == nil {
		invoices = []model.Invoice{}
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *Handler) getInvoice(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	id, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		badRequest(c, "invalid invoice id")
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), principal.UserID, id)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}
