package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"opsuite/internal/domain"
	"opsuite/internal/service"
)

// VoucherHandler handles voucher lifecycle and reference endpoints.
type VoucherHandler struct {
	voucherService service.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler.
func NewVoucherHandler(voucherService service.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Preview handles POST /api/v1/vouchers/preview
func (h *VoucherHandler) Preview(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.PreviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.voucherService.Preview(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Create handles POST /api/v1/vouchers
func (h *VoucherHandler) Create(c *gin.Context) {
	tenantID, userID, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.CreateVoucherInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.voucherService.Create(c.Request.Context(), tenantID, userID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// GetByID handles GET /api/v1/vouchers/:id
func (h *VoucherHandler) GetByID(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	detail, err := h.voucherService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, detail)
}

// List handles GET /api/v1/vouchers
func (h *VoucherHandler) List(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	offset, limit := parsePagination(c)

	var voucherType *domain.VoucherType
	if t := c.Query("type"); t != "" {
		vt := domain.VoucherType(t)
		if !vt.IsValid() {
			RespondError(c, http.StatusBadRequest, "INVALID_VOUCHER_TYPE", "invalid voucher type filter")
			return
		}
		voucherType = &vt
	}

	vouchers, total, err := h.voucherService.List(c.Request.Context(), tenantID, voucherType, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, vouchers, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// Cancel handles POST /api/v1/vouchers/:id/cancel
func (h *VoucherHandler) Cancel(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid voucher ID")
		return
	}

	if err := h.voucherService.Cancel(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "voucher cancelled"})
}

// AttachReference handles POST /api/v1/references
func (h *VoucherHandler) AttachReference(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	var input service.AttachReferenceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	link, err := h.voucherService.AttachReference(c.Request.Context(), tenantID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, link)
}

// ReleaseReference handles DELETE /api/v1/references/:id
func (h *VoucherHandler) ReleaseReference(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid reference link ID")
		return
	}

	if err := h.voucherService.ReleaseReference(c.Request.Context(), tenantID, id); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "reference released"})
}

// RemainingQuantity handles GET /api/v1/lines/:id/remaining
func (h *VoucherHandler) RemainingQuantity(c *gin.Context) {
	tenantID, _, _, ok := extractAuthContext(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid line ID")
		return
	}

	result, err := h.voucherService.RemainingQuantity(c.Request.Context(), tenantID, id)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}
