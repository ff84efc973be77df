package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

func postedSums(t *testing.T, db *gorm.DB, accountID uuid.UUID) (decimal.Decimal, decimal.Decimal) {
	t.Helper()
	var row struct {
		Debits  decimal.Decimal
		Credits decimal.Decimal
	}
	require.NoError(t, db.Model(&models.JournalItemModel{}).
		Select("COALESCE(SUM(debit_amount), 0) as debits, COALESCE(SUM(credit_amount), 0) as credits").
		Where("account_id = ?", accountID).
		Scan(&row).Error)
	return row.Debits, row.Credits
}

// Runs a realistic day of trading against one database and cross-checks every
// account's stored balance against the journal items actually posted to it.
func TestLedger_BalancesMatchPostedItems(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 20)
	customer := seedCustomer(t, db)
	supplier := seedSupplier(t, db)

	invoices := newInvoiceService(db)
	vouchers := newVoucherService(db)
	ctx := context.Background()

	_, err := invoices.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
		},
		PaymentType: "CASH",
	})
	require.NoError(t, err)

	_, err = invoices.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		CounterpartyID: &customer.ID,
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5)},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	cost := decimal.NewFromInt(7)
	_, err = invoices.ProcessPurchase(ctx, ledger.ProcessInvoiceRequest{
		CounterpartyID: &supplier.ID,
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(4), UnitPrice: &cost},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.NewFromInt(8),
	})
	require.NoError(t, err)

	_, err = vouchers.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "RECEIPT",
		AccountID:   chartAccountID(t, db, finance.AccountCodeCash),
		Amount:      decimal.NewFromInt(100),
		Description: "Owner deposit",
	})
	require.NoError(t, err)

	_, err = vouchers.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "PAYMENT",
		AccountID:   chartAccountID(t, db, finance.AccountCodeCash),
		Amount:      decimal.NewFromInt(60),
		Description: "Rent",
	})
	require.NoError(t, err)

	// Every stored balance must equal the net of the items posted to that
	// account, mirrored for accounts that grow on the credit side.
	accounts, err := persistence.NewGormAccountRepository(db).FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, accounts, len(finance.DefaultChart()))

	for _, account := range accounts {
		debits, credits := postedSums(t, db, account.ID)
		expected := debits.Sub(credits)
		if !account.Type.IncreasesOnDebit() {
			expected = expected.Neg()
		}
		assert.Truef(t, account.Balance.Equal(expected),
			"account %s: balance %s, posted net %s", account.Code, account.Balance, expected)
	}

	// Spot-check the net movements themselves.
	// Cash: 20 in, 10 in, 8 out, 100 in, 60 out.
	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).Equal(decimal.NewFromInt(62)))
	assert.True(t, accountBalance(t, db, finance.AccountCodeReceivables).Equal(decimal.NewFromInt(40)))
	assert.True(t, accountBalance(t, db, finance.AccountCodePayables).Equal(decimal.NewFromInt(20)))
	assert.True(t, accountBalance(t, db, finance.AccountCodeSales).Equal(decimal.NewFromInt(70)))
	assert.True(t, accountBalance(t, db, finance.AccountCodePurchases).Equal(decimal.NewFromInt(28)))
}
