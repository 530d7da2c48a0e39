package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nurpe/vat-invoicing/internal/http/middleware"
	"github.com/nurpe/vat-invoicing/internal/model"
	"github.com/nurpe/vat-invoicing/internal/service"
)

type vatReportRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type exportReportRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Format    string `json:"format"`
}

func (h *Handler) generateVATReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req vatReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, "invalid start_date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, "invalid end_date")
		return
	}

	result, err := h.reports.GenerateVATReport(c.Request.Context(), principal, start, end)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !result.Success {
		c.JSON(http.StatusUnprocessableEntity, result)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *Handler) listReports(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	records, err := h.reports.History(c.Request.Context(), principal)
	if err != nil {
		h.handleError(c, err)
		return
	}
	if records == nil {
		records = []model.ReportRecord{}
	}
	c.JSON(http.StatusOK, gin.H{"reports": records})
}

func (h *Handler) reportStatus(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	status, err := h.reports.CheckStatus(c.Request.Context(), principal, c.Param("reportId"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (h *Handler) exportVATReport(c *gin.Context) {
	principal, ok := middleware.MustPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing principal"})
		return
	}

	var req exportReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		badRequest(c, "invalid start_date")
		return
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		badRequest(c, "invalid end_date")
		return
	}

	format := service.ExportFormat(strings.ToLower(strings.TrimSpace(req.Format)))
	if format == "" {
		format = service.ExportXLSX
	}

	result, err := h.reports.Export(c.Request.Context(), principal, start, end, format)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+result.FileName+"\"")
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
