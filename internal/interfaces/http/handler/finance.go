package handler

import (
	"github.com/gin-gonic/gin"
	financeapp "github.com/pos/backend/internal/application/finance"
	"github.com/pos/backend/internal/domain/finance"
)

// FinanceHandler handles ledger read-side API endpoints
type FinanceHandler struct {
	BaseHandler
	financeService *financeapp.Service
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(financeService *financeapp.Service) *FinanceHandler {
	return &FinanceHandler{financeService: financeService}
}

// GetCashBalance returns the current cash account balance
func (h *FinanceHandler) GetCashBalance(c *gin.Context) {
	balance, err := h.financeService.GetCashBalance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"balance": balance})
}

// GetSummary godoc
// @Summary      Financial summary
// @Description  Headline figures derived from the chart of accounts
// @Tags         finance
// @Produce      json
// @Success      200 {object} dto.Response{data=financeapp.FinancialSummaryResponse}
// @Security     BearerAuth
// @Router       /finance/summary [get]
func (h *FinanceHandler) GetSummary(c *gin.Context) {
	summary, err := h.financeService.GetFinancialSummary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// GetTrialBalance godoc
// @Summary      Trial balance
// @Description  Every account with its debit or credit column; total debits equal total credits on a consistent ledger
// @Tags         finance
// @Produce      json
// @Success      200 {object} dto.Response{data=financeapp.TrialBalanceResponse}
// @Security     BearerAuth
// @Router       /finance/trial-balance [get]
func (h *FinanceHandler) GetTrialBalance(c *gin.Context) {
	trialBalance, err := h.financeService.GetTrialBalance(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, trialBalance)
}

// ListAccounts returns the chart of accounts
func (h *FinanceHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.financeService.ListAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// GetCustomerBalances lists customers with outstanding receivables
func (h *FinanceHandler) GetCustomerBalances(c *gin.Context) {
	balances, err := h.financeService.GetCustomerBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balances)
}

// GetSupplierBalances lists suppliers with outstanding payables
func (h *FinanceHandler) GetSupplierBalances(c *gin.Context) {
	balances, err := h.financeService.GetSupplierBalances(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, balances)
}

// GetJournalEntry retrieves one journal entry with its lines
func (h *FinanceHandler) GetJournalEntry(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		h.BadRequest(c, "Invalid journal entry ID")
		return
	}

	entry, err := h.financeService.GetJournalEntry(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// ListJournalEntries lists journal entries
func (h *FinanceHandler) ListJournalEntries(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := finance.JournalEntryFilter{Filter: base}

	if reference := c.Query("reference"); reference != "" {
		filter.Reference = &reference
	}
	if filter.AccountID, err = parseUUIDQuery(c, "account_id"); err != nil {
		h.BadRequest(c, "Invalid account ID")
		return
	}
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	entries, total, err := h.financeService.ListJournalEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, entries, total, filter.Page, filter.PageSize)
}

// ListCashTransactions lists the cash audit log
func (h *FinanceHandler) ListCashTransactions(c *gin.Context) {
	base, err := bindListFilter(c)
	if err != nil {
		h.BindError(c, err)
		return
	}

	filter := finance.CashTransactionFilter{Filter: base}

	if typeStr := c.Query("type"); typeStr != "" {
		txType := finance.CashTransactionType(typeStr)
		if !txType.IsValid() {
			h.BadRequest(c, "Invalid cash transaction type")
			return
		}
		filter.Type = &txType
	}
	if filter.FromDate, err = parseDateQuery(c, "from"); err != nil {
		h.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
		return
	}
	if filter.ToDate, err = parseDateQuery(c, "to"); err != nil {
		h.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
		return
	}

	transactions, total, err := h.financeService.ListCashTransactions(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, transactions, total, filter.Page, filter.PageSize)
}
