package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/finance"
	"github.com/shopspring/decimal"
)

// AccountResponse represents a ledger account in responses
type AccountResponse struct {
	ID       uuid.UUID       `json:"id"`
	Code     string          `json:"code"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	IsActive bool            `json:"is_active"`
}

// ToAccountResponse converts a domain account to its response DTO
func ToAccountResponse(account *finance.Account) AccountResponse {
	return AccountResponse{
		ID:       account.ID,
		Code:     string(account.Code),
		Name:     account.Name,
		Type:     string(account.Type),
		Balance:  account.Balance,
		IsActive: account.IsActive,
	}
}

// CashTransactionResponse represents a cash movement in responses
type CashTransactionResponse struct {
	ID              uuid.UUID       `json:"id"`
	TransactionDate time.Time       `json:"transaction_date"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Description     string          `json:"description,omitempty"`
	Reference       string          `json:"reference,omitempty"`
}

// ToCashTransactionResponse converts a domain cash transaction to its DTO
func ToCashTransactionResponse(tx *finance.CashTransaction) CashTransactionResponse {
	return CashTransactionResponse{
		ID:              tx.ID,
		TransactionDate: tx.TransactionDate,
		Amount:          tx.Amount,
		Type:            tx.Type.String(),
		Description:     tx.Description,
		Reference:       tx.Reference,
	}
}

// JournalItemResponse is one debit or credit line in responses
type JournalItemResponse struct {
	ID           uuid.UUID       `json:"id"`
	AccountID    uuid.UUID       `json:"account_id"`
	DebitAmount  decimal.Decimal `json:"debit_amount"`
	CreditAmount decimal.Decimal `json:"credit_amount"`
}

// JournalEntryResponse represents a journal entry in responses
type JournalEntryResponse struct {
	ID          uuid.UUID             `json:"id"`
	EntryDate   time.Time             `json:"entry_date"`
	Description string                `json:"description,omitempty"`
	Reference   string                `json:"reference"`
	Items       []JournalItemResponse `json:"items"`
	CreatedAt   time.Time             `json:"created_at"`
}

// ToJournalEntryResponse converts a domain journal entry to its response DTO
func ToJournalEntryResponse(entry *finance.JournalEntry) JournalEntryResponse {
	items := make([]JournalItemResponse, 0, len(entry.Items))
	for _, item := range entry.Items {
		items = append(items, JournalItemResponse{
			ID:           item.ID,
			AccountID:    item.AccountID,
			DebitAmount:  item.DebitAmount,
			CreditAmount: item.CreditAmount,
		})
	}

	return JournalEntryResponse{
		ID:          entry.ID,
		EntryDate:   entry.EntryDate,
		Description: entry.Description,
		Reference:   entry.Reference,
		Items:       items,
		CreatedAt:   entry.CreatedAt,
	}
}

// FinancialSummaryResponse aggregates the headline figures of the store
type FinancialSummaryResponse struct {
	CashBalance      decimal.Decimal `json:"cash_balance"`
	TotalSales       decimal.Decimal `json:"total_sales"`
	TotalPurchases   decimal.Decimal `json:"total_purchases"`
	TotalReceivables decimal.Decimal `json:"total_receivables"`
	TotalPayables    decimal.Decimal `json:"total_payables"`
}

// PartnerBalanceResponse is one row of a customer or supplier balance listing
type PartnerBalanceResponse struct {
	ID      uuid.UUID       `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone,omitempty"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceRow is one account line of the trial balance
type TrialBalanceRow struct {
	Code    string          `json:"code"`
	Name    string          `json:"name"`
	Type    string          `json:"type"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
	Balance decimal.Decimal `json:"balance"`
}

// TrialBalanceResponse lists every account with its debit/credit column and
// the grand totals, which must be equal on a consistent ledger
type TrialBalanceResponse struct {
	Rows        []TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal   `json:"total_debit"`
	TotalCredit decimal.Decimal   `json:"total_credit"`
}
