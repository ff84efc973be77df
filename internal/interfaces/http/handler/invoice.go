package handler

import (
	"github.com/gin-gonic/gin"
	ledgerapp "github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/domain/trade"
)

// IdempotencyKeyHeader carries the client-supplied replay guard for
// sale and purchase submissions.
const IdempotencyKeyHeader = "Idempotency-Key"

// InvoiceHandler handles sale and purchase API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *ledgerapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *ledgerapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// ProcessSale godoc
// @Summary      Process a sale
// @Description  Captures a sale invoice, adjusts stock and posts the ledger atomically
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay guard key"
// @Param        request body ledgerapp.ProcessInvoiceRequest true "Sale request"
// @Success      201 {object} dto.Response{data=ledgerapp.InvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices/sales [post]
func (h *InvoiceHandler) ProcessSale(c *gin.Context) {
	var req ledgerapp.ProcessInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	resp, err := h.invoiceService.ProcessSale(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp.Replayed {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// ProcessPurchase godoc
// @Summary      Process a purchase
// @Description  Captures a purchase invoice, adjusts stock and posts the ledger atomically
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Replay guard key"
// @Param        request body ledgerapp.ProcessInvoiceRequest true "Purchase request"
// @Success      201 {object} dto.Response{data=ledgerapp.InvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices/purchases [post]
func (h *InvoiceHandler) ProcessPurchase(c *gin.Context) {
	var req ledgerapp.ProcessInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}
	if key := c.GetHeader(IdempotencyKeyHeader); key != "" {
		req.IdempotencyKey = key
	}

	resp, err := h.invoiceService.ProcessPurchase(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	if resp.Replayed {
		h.Success(c, resp)
		return
	}
	h.Created(c, resp)
}

// Get godoc
// @Summary      Get an invoice
// @Tags         invoices
// @Produce      json
// @Param        id path string true "Invoice ID"
// @Success      200 {object} dto.Response{data=ledgerapp.InvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices/{id} [get]
func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	resp, err := h.invoiceService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// GetByNumber godoc
// @Summary      Get an invoice by its document number
// @Tags         invoices
// @Produce      json
// @Param        number path string true "Invoice number"
// @Success      200 {object} dto.Response{data=ledgerapp.InvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices/number/{number} [get]
func (h *InvoiceHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Invoice number is required")
		return
	}

	resp, err := h.invoiceService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List godoc
// @Summary      List invoices
// @Tags         invoices
// @Produce      json
// @Param        type query string false "Invoice type (SALE or PURCHASE)"
// @Param        status query string false "Settlement status"
// @Param        counterparty_id query string false "Customer or supplier ID"
// @Param        from query string false "Invoice date range start (YYYY-MM-DD)"
// @Param        to query string false "Invoice date range end (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]ledgerapp.InvoiceResponse}
// @Security     BearerAuth
// @Router       /invoices [get]
func (h *InvoiceHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := trade.InvoiceFilter{Filter: base}

	if typeStr := c.Query("type"); typeStr != "" {
		invoiceType := trade.InvoiceType(typeStr)
		if !invoiceType.IsValid() {
			h.BadRequest(c, "Invalid invoice type")
			return
		}
		filter.Type = &invoiceType
	}
	if statusStr := c.Query("status"); statusStr != "" {
		status := trade.InvoiceStatus(statusStr)
		if !status.IsValid() {
			h.BadRequest(c, "Invalid invoice status")
			return
		}
		filter.Status = &status
	}
	if filter.CounterpartyID, err = parseUUIDQuery(c, "counterparty_id"); err != nil {
		h.BadRequest(c, "Invalid counterparty ID")
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

	invoices, total, err := h.invoiceService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}
