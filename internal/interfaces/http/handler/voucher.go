package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/domain/finance"
)

// VoucherHandler handles receipt and payment voucher API endpoints
type VoucherHandler struct {
	BaseHandler
	voucherService *ledgerapp.VoucherService
}

// NewVoucherHandler creates a new VoucherHandler
func NewVoucherHandler(voucherService *ledgerapp.VoucherService) *VoucherHandler {
	return &VoucherHandler{voucherService: voucherService}
}

// Post godoc
// @Summary      Post a voucher
// @Description  Posts a receipt or payment voucher and moves cash atomically
// @Tags         vouchers
// @Accept       json
// @Produce      json
// @Param        request body ledgerapp.PostVoucherRequest true "Voucher request"
// @Success      201 {object} dto.Response{data=ledgerapp.VoucherResponse}
// @Security     BearerAuth
// @Router       /vouchers [post]
func (h *VoucherHandler) Post(c *gin.Context) {
	var req ledgerapp.PostVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.voucherService.PostVoucher(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @Summary      Get a voucher
// @Tags         vouchers
// @Produce      json
// @Param        id path string true "Voucher ID"
// @Success      200 {object} dto.Response{data=ledgerapp.VoucherResponse}
// @Security     BearerAuth
// @Router       /vouchers/{id} [get]
func (h *VoucherHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid voucher ID")
		return
	}

	resp, err := h.voucherService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @Summary      List vouchers
// @Tags         vouchers
// @Produce      json
// @Param        type query string false "Voucher type (RECEIPT or PAYMENT)"
// @Param        account_id query string false "Target account ID"
// @Success      200 {object} dto.Response{data=[]ledgerapp.VoucherResponse}
// @Security     BearerAuth
// @Router       /vouchers [get]
func (h *VoucherHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := finance.VoucherFilter{Filter: base}

	if typeStr := c.Query("type"); typeStr != "" {
		voucherType := finance.VoucherType(typeStr)
		if !voucherType.IsValid() {
			h.BadRequest(c, "Invalid voucher type")
			return
		}
		filter.Type = &voucherType
	}
	if filter.AccountID, err = parseUUIDQuery(c, "account_id"); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	vouchers, total, err := h.voucherService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, vouchers, total, filter.Page, filter.PageSize)
}
