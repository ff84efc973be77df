package handler

import (
	"github.com/gin-gonic/gin"
	partnerapp "github.com/pos/backend/internal/application/partner"
	"github.com/pos/backend/internal/domain/partner"
)

// CustomerHandler handles customer API endpoints
type CustomerHandler struct {
	BaseHandler
	partnerService *partnerapp.Service
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(partnerService *partnerapp.Service) *CustomerHandler {
	return &CustomerHandler{partnerService: partnerService}
}

// Create creates a new customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req partnerapp.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.partnerService.CreateCustomer(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// Update updates a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	var req partnerapp.UpdatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	resp, err := h.partnerService.UpdateCustomer(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Get retrieves a customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	resp, err := h.partnerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// List lists customers
func (h *CustomerHandler) List(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := partner.PartnerFilter{Filter: base}
	filter.IsActive = parseBoolQuery(c, "is_active")
	filter.WithBalance = parseBoolQuery(c, "with_balance")

	customers, total, err := h.partnerService.ListCustomers(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, customers, total, filter.Page, filter.PageSize)
}

// Delete deactivates a customer. Customers carrying an outstanding balance
// are rejected with OUTSTANDING_BALANCE.
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid customer ID")
		return
	}

	if err := h.partnerService.DeleteCustomer(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
