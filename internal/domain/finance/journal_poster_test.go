package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestChart(t *testing.T) Chart {
	cash, err := NewAccount(AccountCodeCash, "Cash", AccountTypeAsset)
	require.NoError(t, err)
	receivables, err := NewAccount(AccountCodeReceivables, "Accounts Receivable", AccountTypeAsset)
	require.NoError(t, err)
	payables, err := NewAccount(AccountCodePayables, "Accounts Payable", AccountTypeLiability)
	require.NoError(t, err)
	sales, err := NewAccount(AccountCodeSales, "Sales Revenue", AccountTypeRevenue)
	require.NoError(t, err)
	purchases, err := NewAccount(AccountCodePurchases, "Purchases", AccountTypeExpense)
	require.NoError(t, err)

	return Chart{
		Cash:        cash,
		Receivables: receivables,
		Payables:    payables,
		Sales:       sales,
		Purchases:   purchases,
	}
}

func sumDebits(entry *JournalEntry) decimal.Decimal {
	total := decimal.Zero
	for _, item := range entry.Items {
		total = total.Add(item.DebitAmount)
	}
	return total
}

func sumCredits(entry *JournalEntry) decimal.Decimal {
	total := decimal.Zero
	for _, item := range entry.Items {
		total = total.Add(item.CreditAmount)
	}
	return total
}

func TestPostingKind_IsValid(t *testing.T) {
	tests := []struct {
		kind    PostingKind
		isValid bool
	}{
		{PostingKindSale, true},
		{PostingKindPurchase, true},
		{PostingKindReceipt, true},
		{PostingKindPayment, true},
		{PostingKind("INVALID"), false},
		{PostingKind(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.kind.IsValid())
		})
	}
}

func TestJournalPoster_CashSale(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:            PostingKindSale,
		TotalAmount:     decimal.NewFromInt(100),
		PaidAmount:      decimal.NewFromInt(100),
		RemainingAmount: decimal.Zero,
		Reference:       "S-20260115-0001",
		EntryDate:       time.Now(),
	}, chart)
	require.NoError(t, err)

	// Dr Cash 100 / Cr Sales 100
	require.Len(t, entry.Items, 2)
	assert.True(t, sumDebits(entry).Equal(sumCredits(entry)))
	assert.True(t, chart.Cash.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, chart.Sales.Balance.Equal(decimal.NewFromInt(100)))
	assert.True(t, chart.Receivables.Balance.IsZero())
}

func TestJournalPoster_CreditSaleWithPartialPayment(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:            PostingKindSale,
		TotalAmount:     decimal.NewFromInt(100),
		PaidAmount:      decimal.NewFromInt(30),
		RemainingAmount: decimal.NewFromInt(70),
		Reference:       "S-20260115-0002",
	}, chart)
	require.NoError(t, err)

	// Dr Cash 30, Dr Receivables 70 / Cr Sales 100
	require.Len(t, entry.Items, 3)
	assert.True(t, sumDebits(entry).Equal(sumCredits(entry)))
	assert.True(t, chart.Cash.Balance.Equal(decimal.NewFromInt(30)))
	assert.True(t, chart.Receivables.Balance.Equal(decimal.NewFromInt(70)))
	assert.True(t, chart.Sales.Balance.Equal(decimal.NewFromInt(100)))
}

func TestJournalPoster_FullCreditSale(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:            PostingKindSale,
		TotalAmount:     decimal.NewFromInt(50),
		PaidAmount:      decimal.Zero,
		RemainingAmount: decimal.NewFromInt(50),
		Reference:       "S-20260115-0003",
	}, chart)
	require.NoError(t, err)

	// No cash leg when nothing was paid
	require.Len(t, entry.Items, 2)
	assert.True(t, chart.Cash.Balance.IsZero())
	assert.True(t, chart.Receivables.Balance.Equal(decimal.NewFromInt(50)))
}

func TestJournalPoster_CashPurchase(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:            PostingKindPurchase,
		TotalAmount:     decimal.NewFromInt(80),
		PaidAmount:      decimal.NewFromInt(80),
		RemainingAmount: decimal.Zero,
		Reference:       "P-20260115-0001",
	}, chart)
	require.NoError(t, err)

	// Dr Purchases 80 / Cr Cash 80
	require.Len(t, entry.Items, 2)
	assert.True(t, chart.Purchases.Balance.Equal(decimal.NewFromInt(80)))
	assert.True(t, chart.Cash.Balance.Equal(decimal.NewFromInt(-80)))
}

func TestJournalPoster_CreditPurchase(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:            PostingKindPurchase,
		TotalAmount:     decimal.NewFromInt(80),
		PaidAmount:      decimal.NewFromInt(20),
		RemainingAmount: decimal.NewFromInt(60),
		Reference:       "P-20260115-0002",
	}, chart)
	require.NoError(t, err)

	// Dr Purchases 80 / Cr Cash 20, Cr Payables 60
	require.Len(t, entry.Items, 3)
	assert.True(t, sumDebits(entry).Equal(sumCredits(entry)))
	assert.True(t, chart.Cash.Balance.Equal(decimal.NewFromInt(-20)))
	assert.True(t, chart.Payables.Balance.Equal(decimal.NewFromInt(60)))
}

func TestJournalPoster_ReceiptDebitsTargetAccount(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:          PostingKindReceipt,
		TotalAmount:   decimal.NewFromInt(40),
		TargetAccount: chart.Cash,
		Reference:     "RCV-20260115-0001",
	}, chart)
	require.NoError(t, err)

	require.Len(t, entry.Items, 1)
	assert.True(t, entry.Items[0].IsDebit())
	assert.True(t, chart.Cash.Balance.Equal(decimal.NewFromInt(40)))
}

func TestJournalPoster_PaymentCreditsTargetAccount(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	entry, err := poster.Post(PostingEvent{
		Kind:          PostingKindPayment,
		TotalAmount:   decimal.NewFromInt(40),
		TargetAccount: chart.Cash,
		Reference:     "PAY-20260115-0001",
	}, chart)
	require.NoError(t, err)

	require.Len(t, entry.Items, 1)
	assert.False(t, entry.Items[0].IsDebit())
	assert.True(t, chart.Cash.Balance.Equal(decimal.NewFromInt(-40)))
}

func TestJournalPoster_RejectsBrokenSettlementSplit(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	_, err := poster.Post(PostingEvent{
		Kind:            PostingKindSale,
		TotalAmount:     decimal.NewFromInt(100),
		PaidAmount:      decimal.NewFromInt(30),
		RemainingAmount: decimal.NewFromInt(60),
		Reference:       "S-20260115-0004",
	}, chart)
	assert.ErrorContains(t, err, "paid plus remaining")
}

func TestJournalPoster_RejectsNonPositiveTotal(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	for _, total := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-5)} {
		_, err := poster.Post(PostingEvent{
			Kind:          PostingKindReceipt,
			TotalAmount:   total,
			TargetAccount: chart.Cash,
			Reference:     "RCV-20260115-0002",
		}, chart)
		assert.Error(t, err)
	}
}

func TestJournalPoster_MissingChartAccount(t *testing.T) {
	chart := createTestChart(t)
	chart.Sales = nil
	poster := NewJournalPoster()

	_, err := poster.Post(PostingEvent{
		Kind:            PostingKindSale,
		TotalAmount:     decimal.NewFromInt(10),
		PaidAmount:      decimal.NewFromInt(10),
		RemainingAmount: decimal.Zero,
		Reference:       "S-20260115-0005",
	}, chart)
	require.Error(t, err)
	assert.ErrorContains(t, err, "sales")
}

func TestJournalPoster_VoucherWithoutTargetAccount(t *testing.T) {
	chart := createTestChart(t)
	poster := NewJournalPoster()

	_, err := poster.Post(PostingEvent{
		Kind:        PostingKindPayment,
		TotalAmount: decimal.NewFromInt(10),
		Reference:   "PAY-20260115-0002",
	}, chart)
	assert.Error(t, err)
}
