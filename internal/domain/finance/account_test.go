package finance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccountType_IncreasesOnDebit(t *testing.T) {
	tests := []struct {
		accountType AccountType
		onDebit     bool
	}{
		{AccountTypeAsset, true},
		{AccountTypeExpense, true},
		{AccountTypeLiability, false},
		{AccountTypeEquity, false},
		{AccountTypeRevenue, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.accountType), func(t *testing.T) {
			assert.Equal(t, tt.onDebit, tt.accountType.IncreasesOnDebit())
		})
	}
}

func TestNewAccount(t *testing.T) {
	account, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
	assert.True(t, account.IsActive)
	assert.True(t, account.IsCash())
}

func TestNewAccount_Validation(t *testing.T) {
	_, err := NewAccount("", "Cash", AccountTypeAsset)
	assert.Error(t, err)

	_, err = NewAccount(AccountCodeCash, "", AccountTypeAsset)
	assert.Error(t, err)

	_, err = NewAccount(AccountCodeCash, "Cash", AccountType("BOGUS"))
	assert.Error(t, err)
}

func TestAccount_ApplyDebit(t *testing.T) {
	asset, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)
	liability, err := NewAccount(AccountCodePayables, "Accounts Payable", AccountTypeLiability)
	require.NoError(t, err)

	require.NoError(t, asset.ApplyDebit(decimal.NewFromInt(100)))
	assert.True(t, asset.Balance.Equal(decimal.NewFromInt(100)))

	// A debit decreases a liability balance
	require.NoError(t, liability.ApplyDebit(decimal.NewFromInt(100)))
	assert.True(t, liability.Balance.Equal(decimal.NewFromInt(-100)))
}

func TestAccount_ApplyCredit(t *testing.T) {
	asset, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)
	revenue, err := NewAccount(AccountCodeSales, "Sales Revenue", AccountTypeRevenue)
	require.NoError(t, err)

	require.NoError(t, asset.ApplyCredit(decimal.NewFromInt(25)))
	assert.True(t, asset.Balance.Equal(decimal.NewFromInt(-25)))

	require.NoError(t, revenue.ApplyCredit(decimal.NewFromInt(25)))
	assert.True(t, revenue.Balance.Equal(decimal.NewFromInt(25)))
}

func TestAccount_ApplyAcrossZero(t *testing.T) {
	account, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)

	require.NoError(t, account.ApplyDebit(decimal.NewFromInt(50)))
	require.NoError(t, account.ApplyCredit(decimal.NewFromInt(80)))
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(-30)))
}

func TestAccount_RejectsPostingWhenInactive(t *testing.T) {
	account, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)
	account.Deactivate()

	assert.Error(t, account.ApplyDebit(decimal.NewFromInt(10)))
	assert.Error(t, account.ApplyCredit(decimal.NewFromInt(10)))
}

func TestAccount_RejectsNegativeAmount(t *testing.T) {
	account, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)

	assert.Error(t, account.ApplyDebit(decimal.NewFromInt(-1)))
}

func TestAccount_VersionAdvancesOnPosting(t *testing.T) {
	account, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)
	before := account.Version

	require.NoError(t, account.ApplyDebit(decimal.NewFromInt(1)))
	assert.Equal(t, before+1, account.Version)
}

func TestDefaultChart(t *testing.T) {
	accounts := DefaultChart()
	require.Len(t, accounts, 8)

	byCode := make(map[AccountCode]*Account, len(accounts))
	for _, account := range accounts {
		byCode[account.Code] = account
	}

	assert.Equal(t, AccountTypeAsset, byCode[AccountCodeCash].Type)
	assert.Equal(t, AccountTypeAsset, byCode[AccountCodeReceivables].Type)
	assert.Equal(t, AccountTypeLiability, byCode[AccountCodePayables].Type)
	assert.Equal(t, AccountTypeRevenue, byCode[AccountCodeSales].Type)
	assert.Equal(t, AccountTypeExpense, byCode[AccountCodePurchases].Type)
}
