package ledger_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/pos/backend/internal/infrastructure/cache"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

func newTestDB(t *testing.T) *gorm.DB {
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

func seedChart(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := persistence.NewGormAccountRepository(db)
	for _, account := range finance.DefaultChart() {
		require.NoError(t, repo.Save(context.Background(), account))
	}
}

func seedProduct(t *testing.T, db *gorm.DB, stock int64) *catalog.Product {
	t.Helper()
	product, err := catalog.NewProduct("Test Product",
		valueobject.NewMoneyEGP(decimal.NewFromInt(10)),
		valueobject.NewMoneyEGP(decimal.NewFromInt(6)))
	require.NoError(t, err)
	if stock > 0 {
		require.NoError(t, product.AdjustStock(decimal.NewFromInt(stock), false))
	}
	require.NoError(t, persistence.NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

func seedCustomer(t *testing.T, db *gorm.DB) *partner.Customer {
	t.Helper()
	customer, err := partner.NewCustomer("Test Customer", "0100000000", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(db).Save(context.Background(), customer))
	return customer
}

func seedSupplier(t *testing.T, db *gorm.DB) *partner.Supplier {
	t.Helper()
	supplier, err := partner.NewSupplier("Test Supplier", "", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormSupplierRepository(db).Save(context.Background(), supplier))
	return supplier
}

func newInvoiceService(db *gorm.DB) *ledger.InvoiceService {
	scope := persistence.NewGormTransactionScope(db)
	return ledger.NewInvoiceService(scope, ledger.DefaultInvoiceServiceConfig(), zap.NewNop())
}

func accountBalance(t *testing.T, db *gorm.DB, code finance.AccountCode) decimal.Decimal {
	t.Helper()
	account, err := persistence.NewGormAccountRepository(db).FindByCode(context.Background(), code)
	require.NoError(t, err)
	return account.Balance
}

func TestInvoiceService_CashSale(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 10)
	svc := newInvoiceService(db)
	ctx := context.Background()

	resp, err := svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(3)},
		},
		PaymentType: "CASH",
	})
	require.NoError(t, err)

	assert.Equal(t, "SALE", resp.Type)
	assert.Equal(t, "COMPLETED", resp.Status)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.PaidAmount.Equal(decimal.NewFromInt(30)))
	assert.True(t, resp.RemainingAmount.IsZero())
	assert.NotEmpty(t, resp.InvoiceNumber)

	// Stock was issued
	stored, err := persistence.NewGormProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(7)))

	// Ledger moved: Dr Cash 30 / Cr Sales 30
	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).Equal(decimal.NewFromInt(30)))
	assert.True(t, accountBalance(t, db, finance.AccountCodeSales).Equal(decimal.NewFromInt(30)))

	// Journal entry carries the invoice number as reference
	entries, err := persistence.NewGormJournalEntryRepository(db).FindByReference(ctx, resp.InvoiceNumber)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsBalanced())

	// Cash audit row was appended
	cashRows, err := persistence.NewGormCashTransactionRepository(db).FindAll(ctx, finance.CashTransactionFilter{})
	require.NoError(t, err)
	require.Len(t, cashRows, 1)
	assert.Equal(t, finance.CashTransactionIncome, cashRows[0].Type)
	assert.Equal(t, resp.InvoiceNumber, cashRows[0].Reference)
}

func TestInvoiceService_CreditSalePartialPayment(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 10)
	customer := seedCustomer(t, db)
	svc := newInvoiceService(db)
	ctx := context.Background()

	resp, err := svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		CounterpartyID: &customer.ID,
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5)},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	assert.Equal(t, "PENDING", resp.Status)
	assert.True(t, resp.RemainingAmount.Equal(decimal.NewFromInt(30)))

	// The remainder landed on the customer's balance
	stored, err := persistence.NewGormCustomerRepository(db).FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.True(t, stored.Balance.Equal(decimal.NewFromInt(30)))

	// Dr Cash 20, Dr Receivables 30 / Cr Sales 50
	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).Equal(decimal.NewFromInt(20)))
	assert.True(t, accountBalance(t, db, finance.AccountCodeReceivables).Equal(decimal.NewFromInt(30)))
	assert.True(t, accountBalance(t, db, finance.AccountCodeSales).Equal(decimal.NewFromInt(50)))
}

func TestInvoiceService_CreditPurchase(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 0)
	supplier := seedSupplier(t, db)
	svc := newInvoiceService(db)
	ctx := context.Background()

	price := decimal.NewFromInt(7)
	resp, err := svc.ProcessPurchase(ctx, ledger.ProcessInvoiceRequest{
		CounterpartyID: &supplier.ID,
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: &price},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	assert.Equal(t, "PURCHASE", resp.Type)
	assert.True(t, resp.TotalAmount.Equal(decimal.NewFromInt(70)))

	// Stock received and latest cost recorded
	stored, err := persistence.NewGormProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, stored.PurchasePrice.Equal(price))

	// The unpaid remainder is owed to the supplier
	storedSupplier, err := persistence.NewGormSupplierRepository(db).FindByID(ctx, supplier.ID)
	require.NoError(t, err)
	assert.True(t, storedSupplier.Balance.Equal(decimal.NewFromInt(40)))

	// Dr Purchases 70 / Cr Cash 30, Cr Payables 40
	assert.True(t, accountBalance(t, db, finance.AccountCodePurchases).Equal(decimal.NewFromInt(70)))
	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).Equal(decimal.NewFromInt(-30)))
	assert.True(t, accountBalance(t, db, finance.AccountCodePayables).Equal(decimal.NewFromInt(40)))
}

func TestInvoiceService_InsufficientStockRollsBackEverything(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	inStock := seedProduct(t, db, 10)
	outOfStock := seedProduct(t, db, 1)
	svc := newInvoiceService(db)
	ctx := context.Background()

	_, err := svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: inStock.ID, Quantity: decimal.NewFromInt(2)},
			{ProductID: outOfStock.ID, Quantity: decimal.NewFromInt(5)},
		},
		PaymentType: "CASH",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)

	// The first line's stock movement was rolled back with the rest
	stored, err := persistence.NewGormProductRepository(db).FindByID(ctx, inStock.ID)
	require.NoError(t, err)
	assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(10)))

	count, err := persistence.NewGormInvoiceRepository(db).Count(ctx, trade.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)

	assert.True(t, accountBalance(t, db, finance.AccountCodeCash).IsZero())
}

func TestInvoiceService_CreditRemainderRequiresCounterparty(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 10)
	svc := newInvoiceService(db)

	_, err := svc.ProcessSale(context.Background(), ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.Zero,
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "MISSING_COUNTERPARTY", domainErr.Code)
}

func TestInvoiceService_IdempotentReplay(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 10)

	scope := persistence.NewGormTransactionScope(db)
	svc := ledger.NewInvoiceService(scope, ledger.DefaultInvoiceServiceConfig(), zap.NewNop())
	store := cache.NewInMemoryIdempotencyStore()
	defer store.Close()
	svc.SetIdempotencyStore(store)
	ctx := context.Background()

	req := ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
		},
		PaymentType:    "CASH",
		IdempotencyKey: "order-123",
	}

	first, err := svc.ProcessSale(ctx, req)
	require.NoError(t, err)
	assert.False(t, first.Replayed)

	second, err := svc.ProcessSale(ctx, req)
	require.NoError(t, err)
	assert.True(t, second.Replayed)
	assert.Equal(t, first.InvoiceNumber, second.InvoiceNumber)
	assert.Equal(t, first.ID, second.ID)

	// Stock was only issued once
	stored, err := persistence.NewGormProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.True(t, stored.StockQuantity.Equal(decimal.NewFromInt(8)))
}

func TestInvoiceService_IdempotentReplayWithoutFastPath(t *testing.T) {
	// No cache store wired: the unique key column alone must dedupe
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 10)
	svc := newInvoiceService(db)
	ctx := context.Background()

	req := ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
		},
		PaymentType:    "CASH",
		IdempotencyKey: "order-456",
	}

	first, err := svc.ProcessSale(ctx, req)
	require.NoError(t, err)
	second, err := svc.ProcessSale(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.False(t, first.Replayed)
	assert.True(t, second.Replayed)

	count, err := persistence.NewGormInvoiceRepository(db).Count(ctx, trade.InvoiceFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

// conflictingNumberRepo hands out an already-taken invoice number on the
// first call to force a unique index violation.
type conflictingNumberRepo struct {
	trade.InvoiceRepository
	takenNumber string
	calls       int
}

func (r *conflictingNumberRepo) GenerateInvoiceNumber(ctx context.Context, invoiceType trade.InvoiceType) (string, error) {
	r.calls++
	if r.calls == 1 {
		return r.takenNumber, nil
	}
	return r.InvoiceRepository.GenerateInvoiceNumber(ctx, invoiceType)
}

func TestInvoiceService_RetriesOnNumberConflict(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	product := seedProduct(t, db, 10)
	svc := newInvoiceService(db)
	ctx := context.Background()

	first, err := svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items:       []ledger.InvoiceItemInput{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		PaymentType: "CASH",
	})
	require.NoError(t, err)

	invoiceRepo := &conflictingNumberRepo{
		InvoiceRepository: persistence.NewGormInvoiceRepository(db),
		takenNumber:       first.InvoiceNumber,
	}
	scope := &ledger.NoOpTransactionScope{
		InvoiceRepo:  invoiceRepo,
		ProductRepo:  persistence.NewGormProductRepository(db),
		AccountRepo:  persistence.NewGormAccountRepository(db),
		JournalRepo:  persistence.NewGormJournalEntryRepository(db),
		CashRepo:     persistence.NewGormCashTransactionRepository(db),
		VoucherRepo:  persistence.NewGormVoucherRepository(db),
		CustomerRepo: persistence.NewGormCustomerRepository(db),
		SupplierRepo: persistence.NewGormSupplierRepository(db),
	}
	retrying := ledger.NewInvoiceService(scope, ledger.DefaultInvoiceServiceConfig(), zap.NewNop())

	resp, err := retrying.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items:       []ledger.InvoiceItemInput{{ProductID: product.ID, Quantity: decimal.NewFromInt(1)}},
		PaymentType: "CASH",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.InvoiceNumber, resp.InvoiceNumber)
	assert.GreaterOrEqual(t, invoiceRepo.calls, 2)
}

func TestInvoiceService_ValidatesRequest(t *testing.T) {
	db := newTestDB(t)
	seedChart(t, db)
	svc := newInvoiceService(db)
	ctx := context.Background()

	_, err := svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{PaymentType: "CASH"})
	assert.Error(t, err)

	_, err = svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items:       []ledger.InvoiceItemInput{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		PaymentType: "WIRE",
	})
	assert.Error(t, err)

	_, err = svc.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items:       []ledger.InvoiceItemInput{{ProductID: uuid.New(), Quantity: decimal.NewFromInt(1)}},
		PaymentType: "CASH",
		PaidAmount:  decimal.NewFromInt(-1),
	})
	assert.Error(t, err)
}
