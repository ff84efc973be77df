package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence"
)

func newVoucherService(db *gorm.DB) *ledger.VoucherService {
	return ledger.NewVoucherService(persistence.NewGormTransactionScope(db), zap.NewNop())
}

func chartAccountID(t *testing.T, db *gorm.DB, code finance.AccountCode) uuid.UUID {
	t.Helper()
	account, err := persistence.NewGormAccountRepository(db).FindByCode(context.Background(), code)
	require.NoError(t, err)
	return account.ID
}

func TestVoucherService_ReceiptIntoCash(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newVoucherService(db)
	ctx := context.Background()

	resp, err := svc.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "RECEIPT",
		AccountID:   chartAccountID(t, db, finance.AccountCodeCash),
		Amount:      decimal.NewFromInt(150),
		Description: "Owner deposit",
	})
	require.NoError(t, err)

	assert.Equal(t, "RECEIPT", resp.Type)
	assert.NotEmpty(t, resp.VoucherNumber)
	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).Equal(decimal.NewFromInt(150)))

	// Cash movement shows up in the audit log
	cashRows, err := persistence.NewGormCashTransactionRepository(db).FindAll(ctx, finance.CashTransactionFilter{})
	require.NoError(t, err)
	require.Len(t, cashRows, 1)
	assert.Equal(t, finance.CashTransactionIncome, cashRows[0].Type)
	assert.Equal(t, resp.VoucherNumber, cashRows[0].Reference)

	entries, err := persistence.NewGormJournalEntryRepository(db).FindByReference(ctx, resp.VoucherNumber)
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestVoucherService_PaymentFromCash(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newVoucherService(db)

	resp, err := svc.PostVoucher(context.Background(), ledger.PostVoucherRequest{
		VoucherType: "PAYMENT",
		AccountID:   chartAccountID(t, db, finance.AccountCodeCash),
		Amount:      decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	assert.Equal(t, "PAYMENT", resp.Type)
	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).Equal(decimal.NewFromInt(-60)))

	cashRows, err := persistence.NewGormCashTransactionRepository(db).FindAll(context.Background(), finance.CashTransactionFilter{})
	require.NoError(t, err)
	require.Len(t, cashRows, 1)
	assert.Equal(t, finance.CashTransactionExpense, cashRows[0].Type)
}

func TestVoucherService_NonCashAccountSkipsCashLog(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newVoucherService(db)
	ctx := context.Background()

	_, err := svc.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "RECEIPT",
		AccountID:   chartAccountID(t, db, finance.AccountCodeReceivables),
		Amount:      decimal.NewFromInt(25),
	})
	require.NoError(t, err)

	assert.True(t, accountBalance(t, db, finance.AccountCodeReceivables).Equal(decimal.NewFromInt(25)))

	cashRows, err := persistence.NewGormCashTransactionRepository(db).FindAll(ctx, finance.CashTransactionFilter{})
	require.NoError(t, err)
	assert.Empty(t, cashRows)
}

func TestVoucherService_RejectsUnknownAccount(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newVoucherService(db)

	_, err := svc.PostVoucher(context.Background(), ledger.PostVoucherRequest{
		VoucherType: "RECEIPT",
		AccountID:   uuid.New(),
		Amount:      decimal.NewFromInt(10),
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "NOT_FOUND", domainErr.Code)
}

func TestVoucherService_ValidatesInput(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newVoucherService(db)
	ctx := context.Background()
	cashID := chartAccountID(t, db, finance.AccountCodeCash)

	_, err := svc.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "TRANSFER",
		AccountID:   cashID,
		Amount:      decimal.NewFromInt(10),
	})
	assert.Error(t, err)

	_, err = svc.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "RECEIPT",
		AccountID:   cashID,
		Amount:      decimal.Zero,
	})
	assert.Error(t, err)
}

func TestVoucherService_GetAndList(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newVoucherService(db)
	ctx := context.Background()
	cashID := chartAccountID(t, db, finance.AccountCodeCash)

	posted, err := svc.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "RECEIPT",
		AccountID:   cashID,
		Amount:      decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	fetched, err := svc.GetByID(ctx, posted.ID)
	require.NoError(t, err)
	assert.Equal(t, posted.VoucherNumber, fetched.VoucherNumber)

	_, err = svc.PostVoucher(ctx, ledger.PostVoucherRequest{
		VoucherType: "PAYMENT",
		AccountID:   cashID,
		Amount:      decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	receiptType := finance.VoucherTypeReceipt
	vouchers, total, err := svc.List(ctx, finance.VoucherFilter{Type: &receiptType})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, vouchers, 1)
	assert.Equal(t, "RECEIPT", vouchers[0].Type)
}
