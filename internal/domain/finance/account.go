package finance

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AccountType classifies an account in the chart of accounts
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeRevenue   AccountType = "REVENUE"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// IsValid checks if the account type is valid
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeAsset, AccountTypeLiability, AccountTypeEquity, AccountTypeRevenue, AccountTypeExpense:
		return true
	}
	return false
}

// String returns the string representation of AccountType
func (t AccountType) String() string {
	return string(t)
}

// IncreasesOnDebit reports whether a debit increases the running balance.
// Assets and expenses increase on debit; liabilities, equity and revenue
// increase on credit.
func (t AccountType) IncreasesOnDebit() bool {
	return t == AccountTypeAsset || t == AccountTypeExpense
}

// AccountCode is the stable identifier for a seeded account. Journal posting
// resolves accounts by code, never by display name, so renaming an account
// cannot break posting.
type AccountCode string

const (
	AccountCodeCash        AccountCode = "1000"
	AccountCodeReceivables AccountCode = "1100"
	AccountCodeInventory   AccountCode = "1200"
	AccountCodePayables    AccountCode = "2000"
	AccountCodeCapital     AccountCode = "3000"
	AccountCodeSales       AccountCode = "4000"
	AccountCodePurchases   AccountCode = "5000"
	AccountCodeOperating   AccountCode = "5100"
)

// String returns the string representation of AccountCode
func (c AccountCode) String() string {
	return string(c)
}

// Account is an aggregate root representing one entry in the chart of
// accounts with its denormalized running balance. Accounts are seeded at
// system initialization and never deleted, only deactivated.
type Account struct {
	shared.BaseAggregateRoot
	Code     AccountCode     `json:"code"`
	Name     string          `json:"name"`
	Type     AccountType     `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	ParentID *uuid.UUID      `json:"parent_id,omitempty"`
	IsActive bool            `json:"is_active"`
}

// NewAccount creates a new account with a zero balance
func NewAccount(code AccountCode, name string, accountType AccountType) (*Account, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_CODE", "Account code cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_NAME", "Account name cannot be empty")
	}
	if !accountType.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACCOUNT_TYPE", "Account type is not valid")
	}

	return &Account{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		Type:              accountType,
		Balance:           decimal.Zero,
		IsActive:          true,
	}, nil
}

// ApplyDebit applies a debit of the given (positive) amount to the running
// balance, following the sign convention of the account type.
func (a *Account) ApplyDebit(amount decimal.Decimal) error {
	return a.apply(amount, true)
}

// ApplyCredit applies a credit of the given (positive) amount to the running
// balance, following the sign convention of the account type.
func (a *Account) ApplyCredit(amount decimal.Decimal) error {
	return a.apply(amount, false)
}

func (a *Account) apply(amount decimal.Decimal, debit bool) error {
	if !a.IsActive {
		return shared.NewDomainError("ACCOUNT_INACTIVE", "Cannot post to an inactive account")
	}
	if amount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Posting amount cannot be negative")
	}
	if a.Type.IncreasesOnDebit() == debit {
		a.Balance = a.Balance.Add(amount)
	} else {
		a.Balance = a.Balance.Sub(amount)
	}
	a.IncrementVersion()
	return nil
}

// Deactivate marks the account inactive. Seeded accounts are never deleted.
func (a *Account) Deactivate() {
	a.IsActive = false
	a.IncrementVersion()
}

// IsCash reports whether this is the cash account
func (a *Account) IsCash() bool {
	return a.Code == AccountCodeCash
}

// DefaultChart returns the fixed chart of accounts seeded at system
// initialization.
func DefaultChart() []*Account {
	seed := []struct {
		code AccountCode
		name string
		typ  AccountType
	}{
		{AccountCodeCash, "Cash", AccountTypeAsset},
		{AccountCodeReceivables, "Accounts Receivable", AccountTypeAsset},
		{AccountCodeInventory, "Inventory", AccountTypeAsset},
		{AccountCodePayables, "Accounts Payable", AccountTypeLiability},
		{AccountCodeCapital, "Capital", AccountTypeEquity},
		{AccountCodeSales, "Sales Revenue", AccountTypeRevenue},
		{AccountCodePurchases, "Purchases", AccountTypeExpense},
		{AccountCodeOperating, "Operating Expenses", AccountTypeExpense},
	}

	accounts := make([]*Account, 0, len(seed))
	for _, s := range seed {
		account, _ := NewAccount(s.code, s.name, s.typ)
		accounts = append(accounts, account)
	}
	return accounts
}
