package report

import (
	"context"
	"time"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// LowStockProduct is a product at or below its reorder level
type LowStockProduct struct {
	Name          string          `json:"name"`
	StockQuantity decimal.Decimal `json:"stock_quantity"`
	MinStockLevel decimal.Decimal `json:"min_stock_level"`
}

// RecentInvoice is one row of the dashboard's latest-documents list
type RecentInvoice struct {
	InvoiceNumber    string          `json:"invoice_number"`
	Type             string          `json:"type"`
	Status           string          `json:"status"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// DashboardResponse aggregates the figures shown on the store dashboard
type DashboardResponse struct {
	TodaySales      decimal.Decimal   `json:"today_sales"`
	TodayPurchases  decimal.Decimal   `json:"today_purchases"`
	CashBalance     decimal.Decimal   `json:"cash_balance"`
	InventoryValue  decimal.Decimal   `json:"inventory_value"`
	Capital         decimal.Decimal   `json:"capital"`
	Profit          decimal.Decimal   `json:"profit"`
	CreditSales     decimal.Decimal   `json:"credit_sales"`
	CreditPurchases decimal.Decimal   `json:"credit_purchases"`
	InvoiceCount    int64             `json:"invoice_count"`
	ProductCount    int64             `json:"product_count"`
	CustomerCount   int64             `json:"customer_count"`
	SupplierCount   int64             `json:"supplier_count"`
	LowStockCount   int64             `json:"low_stock_count"`
	LowStock        []LowStockProduct `json:"low_stock_products"`
	RecentInvoices  []RecentInvoice   `json:"recent_invoices"`
}

// ReportRow is one day of a sales or purchases report
type ReportRow struct {
	Date  string          `json:"date"`
	Total decimal.Decimal `json:"total"`
	Count int64           `json:"count"`
}

// Service builds dashboard and period reports from the ledger read side
type Service struct {
	invoiceRepo  trade.InvoiceRepository
	productRepo  catalog.ProductRepository
	accountRepo  finance.AccountRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
}

// NewService creates a new report service
func NewService(
	invoiceRepo trade.InvoiceRepository,
	productRepo catalog.ProductRepository,
	accountRepo finance.AccountRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
) *Service {
	return &Service{
		invoiceRepo:  invoiceRepo,
		productRepo:  productRepo,
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// GetDashboard returns today's headline figures together with the stock,
// partner and equity aggregates the dashboard page renders.
func (s *Service) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	todaySales, err := s.invoiceRepo.SumTotalByType(ctx, trade.InvoiceTypeSale, &dayStart, &dayEnd)
	if err != nil {
		return nil, err
	}
	todayPurchases, err := s.invoiceRepo.SumTotalByType(ctx, trade.InvoiceTypePurchase, &dayStart, &dayEnd)
	if err != nil {
		return nil, err
	}

	cashAccount, err := s.accountRepo.FindByCode(ctx, finance.AccountCodeCash)
	if err != nil {
		return nil, err
	}

	inventoryValue, err := s.productRepo.SumInventoryValue(ctx)
	if err != nil {
		return nil, err
	}

	capital, profit, err := s.capitalAndProfit(ctx)
	if err != nil {
		return nil, err
	}

	creditSales, err := s.invoiceRepo.SumRemainingByType(ctx, trade.InvoiceTypeSale)
	if err != nil {
		return nil, err
	}
	creditPurchases, err := s.invoiceRepo.SumRemainingByType(ctx, trade.InvoiceTypePurchase)
	if err != nil {
		return nil, err
	}

	invoiceCount, err := s.invoiceRepo.Count(ctx, trade.InvoiceFilter{FromDate: &dayStart, ToDate: &dayEnd})
	if err != nil {
		return nil, err
	}
	productCount, err := s.productRepo.Count(ctx, catalog.ProductFilter{})
	if err != nil {
		return nil, err
	}
	customerCount, err := s.customerRepo.Count(ctx, partner.PartnerFilter{})
	if err != nil {
		return nil, err
	}
	supplierCount, err := s.supplierRepo.Count(ctx, partner.PartnerFilter{})
	if err != nil {
		return nil, err
	}
	lowStockCount, err := s.productRepo.CountLowStock(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.lowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.recentInvoices(ctx)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		TodaySales:      todaySales,
		TodayPurchases:  todayPurchases,
		CashBalance:     cashAccount.Balance,
		InventoryValue:  inventoryValue,
		Capital:         capital,
		Profit:          profit,
		CreditSales:     creditSales,
		CreditPurchases: creditPurchases,
		InvoiceCount:    invoiceCount,
		ProductCount:    productCount,
		CustomerCount:   customerCount,
		SupplierCount:   supplierCount,
		LowStockCount:   lowStockCount,
		LowStock:        lowStock,
		RecentInvoices:  recent,
	}, nil
}

// capitalAndProfit derives equity figures from the account type sums:
// capital = assets - liabilities, profit = revenue - expenses.
func (s *Service) capitalAndProfit(ctx context.Context) (decimal.Decimal, decimal.Decimal, error) {
	assets, err := s.accountRepo.SumBalanceByType(ctx, finance.AccountTypeAsset)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	liabilities, err := s.accountRepo.SumBalanceByType(ctx, finance.AccountTypeLiability)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	revenue, err := s.accountRepo.SumBalanceByType(ctx, finance.AccountTypeRevenue)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	expenses, err := s.accountRepo.SumBalanceByType(ctx, finance.AccountTypeExpense)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return assets.Sub(liabilities), revenue.Sub(expenses), nil
}

func (s *Service) lowStockProducts(ctx context.Context) ([]LowStockProduct, error) {
	lowStock := true
	isActive := true
	products, err := s.productRepo.FindAll(ctx, catalog.ProductFilter{
		Filter:   shared.Filter{Page: 1, PageSize: 10, OrderBy: "stock_quantity", OrderDir: "asc"},
		IsActive: &isActive,
		LowStock: &lowStock,
	})
	if err != nil {
		return nil, err
	}

	rows := make([]LowStockProduct, 0, len(products))
	for i := range products {
		rows = append(rows, LowStockProduct{
			Name:          products[i].Name,
			StockQuantity: products[i].StockQuantity,
			MinStockLevel: products[i].MinStockLevel,
		})
	}
	return rows, nil
}

func (s *Service) recentInvoices(ctx context.Context) ([]RecentInvoice, error) {
	invoices, err := s.invoiceRepo.FindAll(ctx, trade.InvoiceFilter{
		Filter: shared.Filter{Page: 1, PageSize: 10},
	})
	if err != nil {
		return nil, err
	}

	rows := make([]RecentInvoice, 0, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		rows = append(rows, RecentInvoice{
			InvoiceNumber:    inv.InvoiceNumber,
			Type:             inv.Type.String(),
			Status:           inv.Status.String(),
			TotalAmount:      inv.TotalAmount,
			CounterpartyName: s.counterpartyName(ctx, inv),
			CreatedAt:        inv.CreatedAt,
		})
	}
	return rows, nil
}

// counterpartyName resolves the partner name for display. Lookup failures
// leave the name blank rather than failing the whole dashboard.
func (s *Service) counterpartyName(ctx context.Context, inv *trade.Invoice) string {
	if inv.CounterpartyID == nil {
		return ""
	}
	if inv.IsSale() {
		customer, err := s.customerRepo.FindByID(ctx, *inv.CounterpartyID)
		if err != nil {
			return ""
		}
		return customer.Name
	}
	supplier, err := s.supplierRepo.FindByID(ctx, *inv.CounterpartyID)
	if err != nil {
		return ""
	}
	return supplier.Name
}

// GetSalesReport returns per-day sales totals over a date range
func (s *Service) GetSalesReport(ctx context.Context, from, to time.Time) ([]ReportRow, error) {
	return s.periodReport(ctx, trade.InvoiceTypeSale, from, to)
}

// GetPurchasesReport returns per-day purchase totals over a date range
func (s *Service) GetPurchasesReport(ctx context.Context, from, to time.Time) ([]ReportRow, error) {
	return s.periodReport(ctx, trade.InvoiceTypePurchase, from, to)
}

func (s *Service) periodReport(ctx context.Context, invoiceType trade.InvoiceType, from, to time.Time) ([]ReportRow, error) {
	rows := make([]ReportRow, 0)
	for day := from; day.Before(to); day = day.Add(24 * time.Hour) {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		dayEnd := dayStart.Add(24 * time.Hour)

		total, err := s.invoiceRepo.SumTotalByType(ctx, invoiceType, &dayStart, &dayEnd)
		if err != nil {
			return nil, err
		}
		count, err := s.invoiceRepo.Count(ctx, trade.InvoiceFilter{Type: &invoiceType, FromDate: &dayStart, ToDate: &dayEnd})
		if err != nil {
			return nil, err
		}
		if count == 0 {
			continue
		}

		rows = append(rows, ReportRow{
			Date:  dayStart.Format("2006-01-02"),
			Total: total,
			Count: count,
		})
	}
	return rows, nil
}
