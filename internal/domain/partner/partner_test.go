package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCustomer_Validation(t *testing.T) {
	_, err := NewCustomer("", "", "")
	assert.Error(t, err)

	customer, err := NewCustomer("Ahmed", "0100000000", "Cairo")
	require.NoError(t, err)
	assert.True(t, customer.IsActive)
	assert.True(t, customer.Balance.IsZero())
}

func TestCustomer_AdjustBalance(t *testing.T) {
	customer, err := NewCustomer("Ahmed", "", "")
	require.NoError(t, err)

	// Credit sale raises what the customer owes
	require.NoError(t, customer.AdjustBalance(decimal.NewFromInt(70)))
	assert.True(t, customer.Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, customer.HasOutstandingBalance())

	// A receipt brings it back down
	require.NoError(t, customer.AdjustBalance(decimal.NewFromInt(-70)))
	assert.True(t, customer.Balance.IsZero())
	assert.False(t, customer.HasOutstandingBalance())
}

func TestCustomer_AdjustBalanceBumpsVersion(t *testing.T) {
	customer, err := NewCustomer("Ahmed", "", "")
	require.NoError(t, err)

	before := customer.Version
	require.NoError(t, customer.AdjustBalance(decimal.NewFromInt(10)))
	assert.Equal(t, before+1, customer.Version)
}

func TestCustomer_AdjustBalanceRejectsInactive(t *testing.T) {
	customer, err := NewCustomer("Ahmed", "", "")
	require.NoError(t, err)
	customer.Deactivate()

	assert.Error(t, customer.AdjustBalance(decimal.NewFromInt(10)))
}

func TestSupplier_AdjustBalance(t *testing.T) {
	supplier, err := NewSupplier("Al Noor Trading", "", "")
	require.NoError(t, err)

	// Credit purchase raises what the business owes
	require.NoError(t, supplier.AdjustBalance(decimal.NewFromInt(40)))
	assert.True(t, supplier.Balance.Equal(decimal.NewFromInt(40)))

	require.NoError(t, supplier.AdjustBalance(decimal.NewFromInt(-15)))
	assert.True(t, supplier.Balance.Equal(decimal.NewFromInt(25)))
}

func TestSupplier_AdjustBalanceRejectsInactive(t *testing.T) {
	supplier, err := NewSupplier("Al Noor Trading", "", "")
	require.NoError(t, err)
	supplier.Deactivate()

	assert.Error(t, supplier.AdjustBalance(decimal.NewFromInt(5)))
}
