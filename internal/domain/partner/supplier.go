package partner

import (
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Supplier represents a vendor the business may owe money to.
// A positive balance is money owed to the supplier.
type Supplier struct {
	shared.BaseAggregateRoot
	Name     string
	Phone    string
	Address  string
	Balance  decimal.Decimal
	IsActive bool
}

// NewSupplier creates a new supplier
func NewSupplier(name, phone, address string) (*Supplier, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot exceed 200 characters")
	}

	return &Supplier{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		Balance:           decimal.Zero,
		IsActive:          true,
	}, nil
}

// AdjustBalance moves the owed balance by delta. Credit purchases add to it,
// payments subtract from it.
func (s *Supplier) AdjustBalance(delta decimal.Decimal) error {
	if !s.IsActive {
		return shared.NewDomainError("SUPPLIER_INACTIVE", "Cannot adjust balance of an inactive supplier")
	}
	s.Balance = s.Balance.Add(delta)
	s.IncrementVersion()
	s.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates descriptive fields
func (s *Supplier) UpdateDetails(name, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_SUPPLIER_NAME", "Supplier name cannot be empty")
	}
	s.Name = name
	s.Phone = phone
	s.Address = address
	s.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the supplier from capture flows
func (s *Supplier) Deactivate() {
	s.IsActive = false
	s.UpdatedAt = time.Now()
}

// GetBalanceMoney returns the balance as Money value object
func (s *Supplier) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(s.Balance)
}
