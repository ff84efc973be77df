package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// ==================== Invoice DTOs ====================

// InvoiceItemInput represents a line in a sale or purchase request
type InvoiceItemInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  decimal.Decimal  `json:"quantity" binding:"required"`
	UnitPrice *decimal.Decimal `json:"unit_price"` // Defaults to the product's stored price
}

// ProcessInvoiceRequest represents a request to capture a sale or purchase
type ProcessInvoiceRequest struct {
	CounterpartyID *uuid.UUID         `json:"counterparty_id"` // Customer for sales, supplier for purchases
	Items          []InvoiceItemInput `json:"items" binding:"required,min=1"`
	PaymentType    string             `json:"payment_type" binding:"required,oneof=CASH CREDIT"`
	PaidAmount     decimal.Decimal    `json:"paid_amount"`
	Notes          string             `json:"notes"`
	IdempotencyKey string             `json:"idempotency_key"`
	InvoiceDate    *time.Time         `json:"invoice_date"`
}

// InvoiceItemResponse represents an invoice line in responses
type InvoiceItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse represents an invoice in responses
type InvoiceResponse struct {
	ID              uuid.UUID             `json:"id"`
	InvoiceNumber   string                `json:"invoice_number"`
	Type            string                `json:"type"`
	CounterpartyID  *uuid.UUID            `json:"counterparty_id,omitempty"`
	Items           []InvoiceItemResponse `json:"items"`
	TotalAmount     decimal.Decimal       `json:"total_amount"`
	PaidAmount      decimal.Decimal       `json:"paid_amount"`
	RemainingAmount decimal.Decimal       `json:"remaining_amount"`
	PaymentType     string                `json:"payment_type"`
	Status          string                `json:"status"`
	Notes           string                `json:"notes,omitempty"`
	InvoiceDate     time.Time             `json:"invoice_date"`
	Replayed        bool                  `json:"replayed,omitempty"` // True when returned from an idempotent replay
	CreatedAt       time.Time             `json:"created_at"`
}

// ToInvoiceResponse converts a domain invoice to its response DTO
func ToInvoiceResponse(invoice *trade.Invoice) InvoiceResponse {
	items := make([]InvoiceItemResponse, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		items = append(items, InvoiceItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		})
	}

	return InvoiceResponse{
		ID:              invoice.ID,
		InvoiceNumber:   invoice.InvoiceNumber,
		Type:            invoice.Type.String(),
		CounterpartyID:  invoice.CounterpartyID,
		Items:           items,
		TotalAmount:     invoice.TotalAmount,
		PaidAmount:      invoice.PaidAmount,
		RemainingAmount: invoice.RemainingAmount,
		PaymentType:     string(invoice.PaymentType),
		Status:          invoice.Status.String(),
		Notes:           invoice.Notes,
		InvoiceDate:     invoice.InvoiceDate,
		CreatedAt:       invoice.CreatedAt,
	}
}

// ==================== Voucher DTOs ====================

// PostVoucherRequest represents a request to post a receipt or payment voucher
type PostVoucherRequest struct {
	VoucherType string          `json:"voucher_type" binding:"required,oneof=RECEIPT PAYMENT"`
	AccountID   uuid.UUID       `json:"account_id" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// VoucherResponse represents a voucher in responses
type VoucherResponse struct {
	ID            uuid.UUID       `json:"id"`
	VoucherNumber string          `json:"voucher_number"`
	Type          string          `json:"type"`
	AccountID     uuid.UUID       `json:"account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description,omitempty"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ToVoucherResponse converts a domain voucher to its response DTO
func ToVoucherResponse(voucher *finance.Voucher) VoucherResponse {
	return VoucherResponse{
		ID:            voucher.ID,
		VoucherNumber: voucher.VoucherNumber,
		Type:          string(voucher.Type),
		AccountID:     voucher.AccountID,
		Amount:        voucher.Amount,
		Description:   voucher.Description,
		Status:        string(voucher.Status),
		CreatedAt:     voucher.CreatedAt,
	}
}
