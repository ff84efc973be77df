package partner

import (
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Customer represents a buyer who may carry an outstanding balance.
// A positive balance is money the customer owes the business.
type Customer struct {
	shared.BaseAggregateRoot
	Name     string
	Phone    string
	Address  string
	Balance  decimal.Decimal
	IsActive bool
}

// NewCustomer creates a new customer
func NewCustomer(name, phone, address string) (*Customer, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return nil, shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot exceed 200 characters")
	}

	return &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Address:           address,
		Balance:           decimal.Zero,
		IsActive:          true,
	}, nil
}

// AdjustBalance moves the outstanding balance by delta. Credit sales add to
// it, receipts subtract from it.
func (c *Customer) AdjustBalance(delta decimal.Decimal) error {
	if !c.IsActive {
		return shared.NewDomainError("CUSTOMER_INACTIVE", "Cannot adjust balance of an inactive customer")
	}
	c.Balance = c.Balance.Add(delta)
	c.IncrementVersion()
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateDetails updates descriptive fields
func (c *Customer) UpdateDetails(name, phone, address string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	c.Name = name
	c.Phone = phone
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}

// Deactivate hides the customer from capture flows
func (c *Customer) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

// HasOutstandingBalance reports whether the customer owes money
func (c *Customer) HasOutstandingBalance() bool {
	return c.Balance.IsPositive()
}

// GetBalanceMoney returns the balance as Money value object
func (c *Customer) GetBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyEGP(c.Balance)
}
