package trade

import (
	"testing"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestInvoice(t *testing.T, counterpartyID *uuid.UUID) *Invoice {
	inv, err := NewInvoice("S-20260115-0001", InvoiceTypeSale, counterpartyID)
	require.NoError(t, err)
	return inv
}

func addTestItem(t *testing.T, inv *Invoice, qty, price int64) {
	_, err := inv.AddItem(uuid.New(), "Test Product",
		decimal.NewFromInt(qty), valueobject.NewMoneyEGP(decimal.NewFromInt(price)))
	require.NoError(t, err)
}

func TestNewInvoice_Validation(t *testing.T) {
	_, err := NewInvoice("", InvoiceTypeSale, nil)
	assert.Error(t, err)

	_, err = NewInvoice("S-1", InvoiceType("BOGUS"), nil)
	assert.Error(t, err)

	zero := uuid.Nil
	_, err = NewInvoice("S-1", InvoiceTypeSale, &zero)
	assert.Error(t, err)
}

func TestInvoice_AddItemAccumulatesTotal(t *testing.T) {
	inv := createTestInvoice(t, nil)
	addTestItem(t, inv, 2, 10)
	addTestItem(t, inv, 3, 5)

	assert.True(t, inv.TotalAmount.Equal(decimal.NewFromInt(35)))
	assert.Len(t, inv.Items, 2)
}

func TestInvoiceItem_Validation(t *testing.T) {
	inv := createTestInvoice(t, nil)

	_, err := inv.AddItem(uuid.Nil, "Product", decimal.NewFromInt(1), valueobject.NewMoneyEGP(decimal.NewFromInt(1)))
	assert.Error(t, err)

	_, err = inv.AddItem(uuid.New(), "", decimal.NewFromInt(1), valueobject.NewMoneyEGP(decimal.NewFromInt(1)))
	assert.Error(t, err)

	_, err = inv.AddItem(uuid.New(), "Product", decimal.Zero, valueobject.NewMoneyEGP(decimal.NewFromInt(1)))
	assert.Error(t, err)

	_, err = inv.AddItem(uuid.New(), "Product", decimal.NewFromInt(1), valueobject.NewMoneyEGP(decimal.NewFromInt(-1)))
	assert.Error(t, err)
}

func TestInvoice_SettleCashForcesFullPayment(t *testing.T) {
	inv := createTestInvoice(t, nil)
	addTestItem(t, inv, 2, 10)

	// Cash settlement ignores the passed paid amount and takes the total
	require.NoError(t, inv.Settle(PaymentTypeCash, decimal.Zero))
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(20)))
	assert.True(t, inv.RemainingAmount.IsZero())
	assert.Equal(t, InvoiceStatusCompleted, inv.Status)
}

func TestInvoice_SettleCreditPartial(t *testing.T) {
	customerID := uuid.New()
	inv := createTestInvoice(t, &customerID)
	addTestItem(t, inv, 2, 10)

	require.NoError(t, inv.Settle(PaymentTypeCredit, decimal.NewFromInt(5)))
	assert.True(t, inv.PaidAmount.Equal(decimal.NewFromInt(5)))
	assert.True(t, inv.RemainingAmount.Equal(decimal.NewFromInt(15)))
	assert.Equal(t, InvoiceStatusPending, inv.Status)
	assert.True(t, inv.TotalAmount.Equal(inv.PaidAmount.Add(inv.RemainingAmount)))
}

func TestInvoice_SettleCreditFullyPaidCompletes(t *testing.T) {
	customerID := uuid.New()
	inv := createTestInvoice(t, &customerID)
	addTestItem(t, inv, 1, 10)

	require.NoError(t, inv.Settle(PaymentTypeCredit, decimal.NewFromInt(10)))
	assert.Equal(t, InvoiceStatusCompleted, inv.Status)
}

func TestInvoice_SettleCreditWithoutCounterparty(t *testing.T) {
	inv := createTestInvoice(t, nil)
	addTestItem(t, inv, 2, 10)

	err := inv.Settle(PaymentTypeCredit, decimal.NewFromInt(5))
	require.Error(t, err)
	assert.ErrorContains(t, err, "counterparty")
}

func TestInvoice_SettleRejectsOverpayment(t *testing.T) {
	inv := createTestInvoice(t, nil)
	addTestItem(t, inv, 1, 10)

	assert.Error(t, inv.Settle(PaymentTypeCash, decimal.NewFromInt(11)))
}

func TestInvoice_SettleRejectsEmptyInvoice(t *testing.T) {
	inv := createTestInvoice(t, nil)
	assert.Error(t, inv.Settle(PaymentTypeCash, decimal.Zero))
}

func TestInvoice_SetIdempotencyKey(t *testing.T) {
	inv := createTestInvoice(t, nil)

	require.NoError(t, inv.SetIdempotencyKey("client-key-1"))
	require.NotNil(t, inv.IdempotencyKey)
	assert.Equal(t, "client-key-1", *inv.IdempotencyKey)

	assert.Error(t, inv.SetIdempotencyKey(""))

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	assert.Error(t, inv.SetIdempotencyKey(string(long)))
}

func TestInvoice_Validate(t *testing.T) {
	inv := createTestInvoice(t, nil)
	addTestItem(t, inv, 2, 10)
	require.NoError(t, inv.Settle(PaymentTypeCash, decimal.Zero))
	require.NoError(t, inv.Validate())

	// Corrupt the settlement split
	inv.PaidAmount = decimal.NewFromInt(5)
	assert.Error(t, inv.Validate())
}
