package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"opsuite/internal/domain"
	"opsuite/internal/service"
)

// ReportHandler handles financial report endpoints.
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// TaxSummary handles GET /api/v1/reports/tax-summary
func (h *ReportHandler) TaxSummary(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	rows, err := h.reportService.TaxSummary(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, rows)
}

// VoucherRegister handles GET /api/v1/reports/voucher-register
func (h *ReportHandler) VoucherRegister(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	vouchers, err := h.reportService.VoucherRegister(c.Request.Context(), tenantID, filters)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, vouchers)
}

// ExportRegister handles GET /api/v1/reports/voucher-register/export
// With upload=true the workbook is pushed to object storage and a presigned
// URL is returned; otherwise the file is streamed inline.
func (h *ReportHandler) ExportRegister(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	filters, err := parseReportFilters(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_FILTER", err.Error())
		return
	}

	upload := c.Query("upload") == "true"
	result, err := h.reportService.ExportRegister(c.Request.Context(), tenantID, filters, upload)
	if err != nil {
		HandleError(c, err)
		return
	}

	if result.URL != "" {
		RespondOK(c, gin.H{"file_name": result.FileName, "url": result.URL})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.FileName))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", result.Content)
}

func parseReportFilters(c *gin.Context) (domain.ReportFilters, error) {
	var filters domain.ReportFilters

	if from := c.Query("from"); from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return filters, fmt.Errorf("invalid from date, expected YYYY-MM-DD")
		}
		filters.From = &t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return filters, fmt.Errorf("invalid to date, expected YYYY-MM-DD")
		}
		filters.To = &t
	}
	if vt := c.Query("type"); vt != "" {
		voucherType := domain.VoucherType(vt)
		if !voucherType.IsValid() {
			return filters, fmt.Errorf("invalid voucher type filter")
		}
		filters.VoucherType = &voucherType
	}
	return filters, nil
}
