package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/nurpe/vat-invoicing/internal/http/middleware"
	"github.com/nurpe/vat-invoicing/internal/model"
)

type calculateRequest struct {
	Amount   decimal.Decimal  `json:"amount"`
	Category string           `json:"category"`
	Rate     *decimal.Decimal `json:"rate"`
}

type deductionsRequest struct {
	Total      decimal.Decimal   `json:"total"`
	Deductions []model.Deduction `json:"deductions"`
}

type validateVATRequest struct {
	VATNumber string `json:"vat_number" binding:"required"`
}

func (h *Handler) listRates(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"rates": h.tax.Rates()})
}

func (h *Handler) calculateVAT(c *gin.Context) {
	var req calculateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.tax.Calculate(req.Amount, req.Category, req.Rate)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) applyDeductions(c *gin.Context) {
	var req deductionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	result, err := h.tax.ApplyDeductions(req.Total, req.Deductions)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *Handler) taxSummary(c *gin.Context) {
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

	summary, err := h.invoices.Summary(c.Request.Context(), principal.UserID, from, to)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) validateVAT(c *gin.Context) {
	var req validateVATRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, h.vat.Validate(c.Request.Context(), req.VATNumber))
}
