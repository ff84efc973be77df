package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductFilter defines filtering options for product queries
type ProductFilter struct {
	shared.Filter
	CategoryID *uuid.UUID // Filter by category
	IsActive   *bool      // Filter by active flag
	LowStock   *bool      // Filter products at or below their reorder level
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// FindByID finds a product by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindByBarcode finds a product by barcode
	FindByBarcode(ctx context.Context, barcode string) (*Product, error)

	// FindByIDs finds products by a set of IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds products with filtering
	FindAll(ctx context.Context, filter ProductFilter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock saves with optimistic locking (version check)
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete removes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products with optional filters
	Count(ctx context.Context, filter ProductFilter) (int64, error)

	// CountLowStock counts products at or below their reorder level
	CountLowStock(ctx context.Context) (int64, error)

	// SumInventoryValue totals stock on hand at its latest purchase cost
	SumInventoryValue(ctx context.Context) (decimal.Decimal, error)
}

// CategoryRepository defines the interface for category persistence
type CategoryRepository interface {
	// FindByID finds a category by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Category, error)

	// FindAll finds categories with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Category, error)

	// Save creates or updates a category
	Save(ctx context.Context, category *Category) error

	// Delete removes a category
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts categories
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
