package persistence

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.AccountModel{},
		&models.JournalEntryModel{},
		&models.JournalItemModel{},
		&models.CashTransactionModel{},
		&models.VoucherModel{},
		&models.CategoryModel{},
		&models.ProductModel{},
		&models.CustomerModel{},
		&models.SupplierModel{},
		&models.InvoiceModel{},
		&models.InvoiceItemModel{},
	))
	return db
}

func seedTestChart(t *testing.T, repo *GormAccountRepository) {
	t.Helper()
	for _, account := range finance.DefaultChart() {
		require.NoError(t, repo.Save(context.Background(), account))
	}
}

func TestGormAccountRepository_SaveAndFind(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()

	account, err := finance.NewAccount(finance.AccountCodeCash, "Cash", finance.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	byID, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.Code, byID.Code)
	assert.Equal(t, 1, byID.Version)

	byCode, err := repo.FindByCode(ctx, finance.AccountCodeCash)
	require.NoError(t, err)
	assert.Equal(t, account.ID, byCode.ID)

	_, err = repo.FindByCode(ctx, finance.AccountCode("9999"))
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormAccountRepository_SaveWithLock(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()

	account, err := finance.NewAccount(finance.AccountCodeCash, "Cash", finance.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	require.NoError(t, account.ApplyDebit(decimal.NewFromInt(100)))
	require.NoError(t, repo.SaveWithLock(ctx, account))

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 2, stored.Version)
}

func TestGormAccountRepository_SaveWithLockStaleVersion(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()

	account, err := finance.NewAccount(finance.AccountCodeCash, "Cash", finance.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, account))

	// Two workers load the same version
	first, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	second, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)

	require.NoError(t, first.ApplyDebit(decimal.NewFromInt(10)))
	require.NoError(t, repo.SaveWithLock(ctx, first))

	require.NoError(t, second.ApplyDebit(decimal.NewFromInt(20)))
	err = repo.SaveWithLock(ctx, second)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)

	// The loser's write left no trace
	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(10)))
}

func TestGormAccountRepository_SaveWithLockWritesZeroBalance(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()

	account, err := finance.NewAccount(finance.AccountCodeCash, "Cash", finance.AccountTypeAsset)
	require.NoError(t, err)
	require.NoError(t, account.ApplyDebit(decimal.NewFromInt(50)))
	require.NoError(t, repo.Save(ctx, account))

	// Crossing back to exactly zero must still be persisted
	require.NoError(t, account.ApplyCredit(decimal.NewFromInt(50)))
	require.NoError(t, repo.SaveWithLock(ctx, account))

	stored, err := repo.FindByID(ctx, account.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.IsZero())
}

func TestGormAccountRepository_ResolveChart(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()

	_, err := repo.ResolveChart(ctx)
	assert.ErrorIs(t, err, shared.ErrMissingAccount)

	seedTestChart(t, repo)

	chart, err := repo.ResolveChart(ctx)
	require.NoError(t, err)
	assert.Equal(t, finance.AccountCodeCash, chart.Cash.Code)
	assert.Equal(t, finance.AccountCodeReceivables, chart.Receivables.Code)
	assert.Equal(t, finance.AccountCodePayables, chart.Payables.Code)
	assert.Equal(t, finance.AccountCodeSales, chart.Sales.Code)
	assert.Equal(t, finance.AccountCodePurchases, chart.Purchases.Code)
}

func TestGormAccountRepository_FindActive(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()
	seedTestChart(t, repo)

	account, err := repo.FindByCode(ctx, finance.AccountCodeCapital)
	require.NoError(t, err)
	account.Deactivate()
	require.NoError(t, repo.Save(ctx, account))

	active, err := repo.FindActive(ctx)
	require.NoError(t, err)
	assert.Len(t, active, 7)
	// Ordered by code ascending
	assert.Equal(t, finance.AccountCodeCash, active[0].Code)
}

func TestGormAccountRepository_SumBalanceByType(t *testing.T) {
	repo := NewGormAccountRepository(openTestDB(t))
	ctx := context.Background()
	seedTestChart(t, repo)

	cash, err := repo.FindByCode(ctx, finance.AccountCodeCash)
	require.NoError(t, err)
	require.NoError(t, cash.ApplyDebit(decimal.NewFromInt(100)))
	require.NoError(t, repo.Save(ctx, cash))

	receivables, err := repo.FindByCode(ctx, finance.AccountCodeReceivables)
	require.NoError(t, err)
	require.NoError(t, receivables.ApplyDebit(decimal.NewFromInt(40)))
	require.NoError(t, repo.Save(ctx, receivables))

	total, err := repo.SumBalanceByType(ctx, finance.AccountTypeAsset)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(140)))
}
