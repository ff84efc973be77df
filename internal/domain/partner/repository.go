package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartnerFilter defines filtering options for customer and supplier queries
type PartnerFilter struct {
	shared.Filter
	IsActive    *bool // Filter by active flag
	WithBalance *bool // Filter partners with a non-zero balance
}

// CustomerRepository defines the interface for customer persistence
type CustomerRepository interface {
	// FindByID finds a customer by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Customer, error)

	// FindAll finds customers with filtering
	FindAll(ctx context.Context, filter PartnerFilter) ([]Customer, error)

	// Save creates or updates a customer
	Save(ctx context.Context, customer *Customer) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, customer *Customer) error

	// Delete removes a customer
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts customers with optional filters
	Count(ctx context.Context, filter PartnerFilter) (int64, error)

	// SumBalances calculates the total outstanding across all customers
	SumBalances(ctx context.Context) (decimal.Decimal, error)
}

// SupplierRepository defines the interface for supplier persistence
type SupplierRepository interface {
	// FindByID finds a supplier by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Supplier, error)

	// FindAll finds suppliers with filtering
	FindAll(ctx context.Context, filter PartnerFilter) ([]Supplier, error)

	// Save creates or updates a supplier
	Save(ctx context.Context, supplier *Supplier) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, supplier *Supplier) error

	// Delete removes a supplier
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts suppliers with optional filters
	Count(ctx context.Context, filter PartnerFilter) (int64, error)

	// SumBalances calculates the total owed across all suppliers
	SumBalances(ctx context.Context) (decimal.Decimal, error)
}
