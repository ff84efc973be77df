package finance

import (
	"context"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// Service exposes the read side of the ledger: balances, summaries and the
// cash log. All writes go through the capture services.
type Service struct {
	accountRepo  finance.AccountRepository
	journalRepo  finance.JournalEntryRepository
	cashRepo     finance.CashTransactionRepository
	invoiceRepo  trade.InvoiceRepository
	customerRepo partner.CustomerRepository
	supplierRepo partner.SupplierRepository
}

// NewService creates a new finance read service
func NewService(
	accountRepo finance.AccountRepository,
	journalRepo finance.JournalEntryRepository,
	cashRepo finance.CashTransactionRepository,
	invoiceRepo trade.InvoiceRepository,
	customerRepo partner.CustomerRepository,
	supplierRepo partner.SupplierRepository,
) *Service {
	return &Service{
		accountRepo:  accountRepo,
		journalRepo:  journalRepo,
		cashRepo:     cashRepo,
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		supplierRepo: supplierRepo,
	}
}

// GetCashBalance returns the running balance of the cash account
func (s *Service) GetCashBalance(ctx context.Context) (decimal.Decimal, error) {
	account, err := s.accountRepo.FindByCode(ctx, finance.AccountCodeCash)
	if err != nil {
		return decimal.Zero, err
	}
	return account.Balance, nil
}

// GetFinancialSummary returns the headline figures of the store
func (s *Service) GetFinancialSummary(ctx context.Context) (*FinancialSummaryResponse, error) {
	cash, err := s.GetCashBalance(ctx)
	if err != nil {
		return nil, err
	}

	totalSales, err := s.invoiceRepo.SumTotalByType(ctx, trade.InvoiceTypeSale, nil, nil)
	if err != nil {
		return nil, err
	}
	totalPurchases, err := s.invoiceRepo.SumTotalByType(ctx, trade.InvoiceTypePurchase, nil, nil)
	if err != nil {
		return nil, err
	}
	receivables, err := s.customerRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}
	payables, err := s.supplierRepo.SumBalances(ctx)
	if err != nil {
		return nil, err
	}

	return &FinancialSummaryResponse{
		CashBalance:      cash,
		TotalSales:       totalSales,
		TotalPurchases:   totalPurchases,
		TotalReceivables: receivables,
		TotalPayables:    payables,
	}, nil
}

// GetCustomerBalances lists customers carrying a non-zero balance
func (s *Service) GetCustomerBalances(ctx context.Context) ([]PartnerBalanceResponse, error) {
	withBalance := true
	customers, err := s.customerRepo.FindAll(ctx, partner.PartnerFilter{WithBalance: &withBalance})
	if err != nil {
		return nil, err
	}

	responses := make([]PartnerBalanceResponse, 0, len(customers))
	for i := range customers {
		responses = append(responses, PartnerBalanceResponse{
			ID:      customers[i].ID,
			Name:    customers[i].Name,
			Phone:   customers[i].Phone,
			Balance: customers[i].Balance,
		})
	}
	return responses, nil
}

// GetSupplierBalances lists suppliers the business owes money to
func (s *Service) GetSupplierBalances(ctx context.Context) ([]PartnerBalanceResponse, error) {
	withBalance := true
	suppliers, err := s.supplierRepo.FindAll(ctx, partner.PartnerFilter{WithBalance: &withBalance})
	if err != nil {
		return nil, err
	}

	responses := make([]PartnerBalanceResponse, 0, len(suppliers))
	for i := range suppliers {
		responses = append(responses, PartnerBalanceResponse{
			ID:      suppliers[i].ID,
			Name:    suppliers[i].Name,
			Phone:   suppliers[i].Phone,
			Balance: suppliers[i].Balance,
		})
	}
	return responses, nil
}

// ListAccounts lists the chart of accounts
func (s *Service) ListAccounts(ctx context.Context) ([]AccountResponse, error) {
	accounts, err := s.accountRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	responses := make([]AccountResponse, 0, len(accounts))
	for i := range accounts {
		responses = append(responses, ToAccountResponse(&accounts[i]))
	}
	return responses, nil
}

// ListCashTransactions lists cash log entries with filtering and pagination
func (s *Service) ListCashTransactions(ctx context.Context, filter finance.CashTransactionFilter) ([]CashTransactionResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	transactions, err := s.cashRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.cashRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CashTransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, ToCashTransactionResponse(&transactions[i]))
	}
	return responses, total, nil
}

// GetJournalEntry retrieves one journal entry with its lines
func (s *Service) GetJournalEntry(ctx context.Context, id uuid.UUID) (*JournalEntryResponse, error) {
	entry, err := s.journalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToJournalEntryResponse(entry)
	return &resp, nil
}

// ListJournalEntries lists journal entries with filtering and pagination
func (s *Service) ListJournalEntries(ctx context.Context, filter finance.JournalEntryFilter) ([]JournalEntryResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	entries, err := s.journalRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.journalRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]JournalEntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToJournalEntryResponse(&entries[i]))
	}
	return responses, total, nil
}

// GetTrialBalance lists every active account on its normal side. On a
// consistent ledger total debits equal total credits.
func (s *Service) GetTrialBalance(ctx context.Context) (*TrialBalanceResponse, error) {
	accounts, err := s.accountRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	response := &TrialBalanceResponse{
		Rows:        make([]TrialBalanceRow, 0, len(accounts)),
		TotalDebit:  decimal.Zero,
		TotalCredit: decimal.Zero,
	}
	for i := range accounts {
		account := &accounts[i]
		row := TrialBalanceRow{
			Code:    string(account.Code),
			Name:    account.Name,
			Type:    string(account.Type),
			Debit:   decimal.Zero,
			Credit:  decimal.Zero,
			Balance: account.Balance,
		}

		debitSide := account.Type.IncreasesOnDebit() == !account.Balance.IsNegative()
		if debitSide {
			row.Debit = account.Balance.Abs()
		} else {
			row.Credit = account.Balance.Abs()
		}

		response.TotalDebit = response.TotalDebit.Add(row.Debit)
		response.TotalCredit = response.TotalCredit.Add(row.Credit)
		response.Rows = append(response.Rows, row)
	}

	return response, nil
}
