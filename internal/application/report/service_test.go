package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/application/report"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

func newReportTestDB(t *testing.T) *gorm.DB {
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

func newReportService(db *gorm.DB) *report.Service {
	return report.NewService(
		persistence.NewGormInvoiceRepository(db),
		persistence.NewGormProductRepository(db),
		persistence.NewGormAccountRepository(db),
		persistence.NewGormCustomerRepository(db),
		persistence.NewGormSupplierRepository(db),
	)
}

// Seeds a day of trading and checks every dashboard aggregate against the
// figures that day implies.
func TestReportService_GetDashboard(t *testing.T) {
	db := newReportTestDB(t)
	ctx := context.Background()

	accountRepo := persistence.NewGormAccountRepository(db)
	for _, account := range finance.DefaultChart() {
		require.NoError(t, accountRepo.Save(ctx, account))
	}

	product, err := catalog.NewProduct("Beans 1kg",
		valueobject.NewMoneyEGP(decimal.NewFromInt(10)),
		valueobject.NewMoneyEGP(decimal.NewFromInt(6)))
	require.NoError(t, err)
	require.NoError(t, product.SetMinStockLevel(decimal.NewFromInt(20)))
	require.NoError(t, product.AdjustStock(decimal.NewFromInt(10), false))
	require.NoError(t, persistence.NewGormProductRepository(db).Save(ctx, product))

	customer, err := partner.NewCustomer("Walk-in Regular", "0100000000", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormCustomerRepository(db).Save(ctx, customer))

	supplier, err := partner.NewSupplier("Bean Wholesaler", "", "")
	require.NoError(t, err)
	require.NoError(t, persistence.NewGormSupplierRepository(db).Save(ctx, supplier))

	invoices := ledger.NewInvoiceService(
		persistence.NewGormTransactionScope(db), ledger.DefaultInvoiceServiceConfig(), zap.NewNop())

	// Cash sale of 2 at 10, credit sale of 3 at 10 with 10 paid, then a
	// credit purchase of 10 at a new cost of 7 with 30 paid.
	_, err = invoices.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(2)},
		},
		PaymentType: "CASH",
	})
	require.NoError(t, err)

	_, err = invoices.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
		CounterpartyID: &customer.ID,
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(3)},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	cost := decimal.NewFromInt(7)
	_, err = invoices.ProcessPurchase(ctx, ledger.ProcessInvoiceRequest{
		CounterpartyID: &supplier.ID,
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(10), UnitPrice: &cost},
		},
		PaymentType: "CREDIT",
		PaidAmount:  decimal.NewFromInt(30),
	})
	require.NoError(t, err)

	dashboard, err := newReportService(db).GetDashboard(ctx)
	require.NoError(t, err)

	assert.True(t, dashboard.TodaySales.Equal(decimal.NewFromInt(50)))
	assert.True(t, dashboard.TodayPurchases.Equal(decimal.NewFromInt(70)))

	// Cash: 20 + 10 in, 30 out.
	assert.True(t, dashboard.CashBalance.IsZero())

	// 15 on hand at the latest cost of 7.
	assert.True(t, dashboard.InventoryValue.Equal(decimal.NewFromInt(105)))

	// Capital: receivables 20 less payables 40. Profit: sales 50 less purchases 70.
	assert.True(t, dashboard.Capital.Equal(decimal.NewFromInt(-20)))
	assert.True(t, dashboard.Profit.Equal(decimal.NewFromInt(-20)))

	assert.True(t, dashboard.CreditSales.Equal(decimal.NewFromInt(20)))
	assert.True(t, dashboard.CreditPurchases.Equal(decimal.NewFromInt(40)))

	assert.EqualValues(t, 3, dashboard.InvoiceCount)
	assert.EqualValues(t, 1, dashboard.ProductCount)
	assert.EqualValues(t, 1, dashboard.CustomerCount)
	assert.EqualValues(t, 1, dashboard.SupplierCount)

	// 15 on hand against a reorder level of 20.
	assert.EqualValues(t, 1, dashboard.LowStockCount)
	require.Len(t, dashboard.LowStock, 1)
	assert.Equal(t, "Beans 1kg", dashboard.LowStock[0].Name)
	assert.True(t, dashboard.LowStock[0].StockQuantity.Equal(decimal.NewFromInt(15)))
	assert.True(t, dashboard.LowStock[0].MinStockLevel.Equal(decimal.NewFromInt(20)))

	require.Len(t, dashboard.RecentInvoices, 3)
	var purchaseRow *report.RecentInvoice
	for i := range dashboard.RecentInvoices {
		if dashboard.RecentInvoices[i].Type == "PURCHASE" {
			purchaseRow = &dashboard.RecentInvoices[i]
		}
	}
	require.NotNil(t, purchaseRow)
	assert.Equal(t, "Bean Wholesaler", purchaseRow.CounterpartyName)
	assert.True(t, purchaseRow.TotalAmount.Equal(decimal.NewFromInt(70)))
}

func TestReportService_PeriodReports(t *testing.T) {
	db := newReportTestDB(t)
	ctx := context.Background()

	accountRepo := persistence.NewGormAccountRepository(db)
	for _, account := range finance.DefaultChart() {
		require.NoError(t, accountRepo.Save(ctx, account))
	}

	product, err := catalog.NewProduct("Beans 1kg",
		valueobject.NewMoneyEGP(decimal.NewFromInt(10)),
		valueobject.NewMoneyEGP(decimal.NewFromInt(6)))
	require.NoError(t, err)
	require.NoError(t, product.AdjustStock(decimal.NewFromInt(10), false))
	require.NoError(t, persistence.NewGormProductRepository(db).Save(ctx, product))

	invoices := ledger.NewInvoiceService(
		persistence.NewGormTransactionScope(db), ledger.DefaultInvoiceServiceConfig(), zap.NewNop())

	for i := 0; i < 2; i++ {
		_, err = invoices.ProcessSale(ctx, ledger.ProcessInvoiceRequest{
			Items: []ledger.InvoiceItemInput{
				{ProductID: product.ID, Quantity: decimal.NewFromInt(1)},
			},
			PaymentType: "CASH",
		})
		require.NoError(t, err)
	}
	_, err = invoices.ProcessPurchase(ctx, ledger.ProcessInvoiceRequest{
		Items: []ledger.InvoiceItemInput{
			{ProductID: product.ID, Quantity: decimal.NewFromInt(5)},
		},
		PaymentType: "CASH",
	})
	require.NoError(t, err)

	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	to := from.Add(24 * time.Hour)
	svc := newReportService(db)

	sales, err := svc.GetSalesReport(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, from.Format("2006-01-02"), sales[0].Date)
	assert.True(t, sales[0].Total.Equal(decimal.NewFromInt(20)))
	assert.EqualValues(t, 2, sales[0].Count)

	purchases, err := svc.GetPurchasesReport(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, purchases, 1)
	assert.True(t, purchases[0].Total.Equal(decimal.NewFromInt(30)))
	assert.EqualValues(t, 1, purchases[0].Count)
}
