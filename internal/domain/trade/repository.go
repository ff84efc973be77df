package trade

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// InvoiceFilter defines filtering options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	Type           *InvoiceType   // Filter by sale or purchase
	Status         *InvoiceStatus // Filter by settlement status
	CounterpartyID *uuid.UUID     // Filter by customer or supplier
	FromDate       *time.Time     // Filter by invoice date range start
	ToDate         *time.Time     // Filter by invoice date range end
}

// InvoiceRepository defines the interface for invoice persistence
type InvoiceRepository interface {
	// FindByID finds an invoice with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Invoice, error)

	// FindByNumber finds an invoice by its document number
	FindByNumber(ctx context.Context, invoiceNumber string) (*Invoice, error)

	// FindByIdempotencyKey finds the invoice previously captured under the
	// given replay guard key, or a NOT_FOUND fault if none exists
	FindByIdempotencyKey(ctx context.Context, key string) (*Invoice, error)

	// FindAll finds invoices with filtering
	FindAll(ctx context.Context, filter InvoiceFilter) ([]Invoice, error)

	// FindByCounterparty finds invoices for a customer or supplier
	FindByCounterparty(ctx context.Context, counterpartyID uuid.UUID, filter InvoiceFilter) ([]Invoice, error)

	// Save persists an invoice together with its items
	Save(ctx context.Context, invoice *Invoice) error

	// Count counts invoices with optional filters
	Count(ctx context.Context, filter InvoiceFilter) (int64, error)

	// SumTotalByType calculates total invoiced amount for a type over a date range
	SumTotalByType(ctx context.Context, invoiceType InvoiceType, from, to *time.Time) (decimal.Decimal, error)

	// SumRemainingByType calculates total outstanding amount for a type
	SumRemainingByType(ctx context.Context, invoiceType InvoiceType) (decimal.Decimal, error)

	// GenerateInvoiceNumber generates the next document number for an invoice
	// type. Uniqueness is enforced by the storage layer; a clash surfaces as
	// NUMBER_CONFLICT when the invoice is saved.
	GenerateInvoiceNumber(ctx context.Context, invoiceType InvoiceType) (string, error)
}
