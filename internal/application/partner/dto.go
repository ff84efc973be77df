package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// CreatePartnerRequest represents a request to create a customer or supplier
type CreatePartnerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"omitempty,max=50"`
	Address string `json:"address" binding:"omitempty,max=500"`
}

// UpdatePartnerRequest represents a request to update a customer or supplier
type UpdatePartnerRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Phone    *string `json:"phone" binding:"omitempty,max=50"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	IsActive *bool   `json:"is_active"`
}

// CustomerResponse represents a customer in responses
type CustomerResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToCustomerResponse converts a domain customer to its response DTO
func ToCustomerResponse(customer *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        customer.ID,
		Name:      customer.Name,
		Phone:     customer.Phone,
		Address:   customer.Address,
		Balance:   customer.Balance,
		IsActive:  customer.IsActive,
		CreatedAt: customer.CreatedAt,
	}
}

// SupplierResponse represents a supplier in responses
type SupplierResponse struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Balance   decimal.Decimal `json:"balance"`
	IsActive  bool            `json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
}

// ToSupplierResponse converts a domain supplier to its response DTO
func ToSupplierResponse(supplier *partner.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:        supplier.ID,
		Name:      supplier.Name,
		Phone:     supplier.Phone,
		Address:   supplier.Address,
		Balance:   supplier.Balance,
		IsActive:  supplier.IsActive,
		CreatedAt: supplier.CreatedAt,
	}
}
