package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product represents a stocked item for sale
type Product struct {
	shared.BaseAggregateRoot
	Name          string
	Barcode       string
	CategoryID    *uuid.UUID
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	StockQuantity decimal.Decimal
	MinStockLevel decimal.Decimal
	IsActive      bool
}

// NewProduct creates a new product
func NewProduct(name string, salePrice, purchasePrice valueobject.Money) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot exceed 200 characters")
	}
	if salePrice.Amount().IsNegative() || purchasePrice.Amount().IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		SalePrice:         salePrice.Amount(),
		PurchasePrice:     purchasePrice.Amount(),
		StockQuantity:     decimal.Zero,
		MinStockLevel:     decimal.Zero,
		IsActive:          true,
	}, nil
}

// AdjustStock moves the stock quantity by delta. Positive deltas receive
// stock, negative deltas issue it. When allowNegative is false an issue
// larger than the current quantity is rejected with INSUFFICIENT_STOCK and
// the quantity is left untouched.
func (p *Product) AdjustStock(delta decimal.Decimal, allowNegative bool) error {
	if !p.IsActive {
		return shared.NewDomainError("PRODUCT_INACTIVE", "Cannot adjust stock of an inactive product")
	}

	next := p.StockQuantity.Add(delta)
	if next.IsNegative() && !allowNegative {
		return shared.NewDomainError("INSUFFICIENT_STOCK", "Insufficient stock for product "+p.Name)
	}

	p.StockQuantity = next
	p.IncrementVersion()
	p.UpdatedAt = time.Now()

	return nil
}

// UpdatePurchasePrice records the latest cost observed on a purchase
func (p *Product) UpdatePurchasePrice(price valueobject.Money) error {
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Purchase price cannot be negative")
	}
	p.PurchasePrice = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateSalePrice updates the selling price
func (p *Product) UpdateSalePrice(price valueobject.Money) error {
	if price.Amount().IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Sale price cannot be negative")
	}
	p.SalePrice = price.Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates descriptive fields
func (p *Product) UpdateDetails(name, barcode string, categoryID *uuid.UUID) error {
	if name == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Barcode = barcode
	p.CategoryID = categoryID
	p.UpdatedAt = time.Now()
	return nil
}

// SetMinStockLevel sets the reorder threshold
func (p *Product) SetMinStockLevel(level decimal.Decimal) error {
	if level.IsNegative() {
		return shared.NewDomainError("INVALID_STOCK_LEVEL", "Minimum stock level cannot be negative")
	}
	p.MinStockLevel = level
	p.UpdatedAt = time.Now()
	return nil
}

// IsLowStock reports whether the quantity is at or below the reorder threshold
func (p *Product) IsLowStock() bool {
	return p.StockQuantity.LessThanOrEqual(p.MinStockLevel)
}

// Deactivate hides the product from capture flows
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// Activate returns the product to capture flows
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// GetSalePriceMoney returns the sale price as Money value object
func (p *Product) GetSalePriceMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(p.SalePrice)
}

// GetPurchasePriceMoney returns the purchase price as Money value object
func (p *Product) GetPurchasePriceMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(p.PurchasePrice)
}
