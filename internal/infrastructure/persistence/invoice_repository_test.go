package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/domain/trade"
)

func buildTestInvoice(t *testing.T, number string) *trade.Invoice {
	t.Helper()
	invoice, err := trade.NewInvoice(number, trade.InvoiceTypeSale, nil)
	require.NoError(t, err)
	_, err = invoice.AddItem(uuid.New(), "Widget", decimal.NewFromInt(2),
		valueobject.NewMoneyEGP(decimal.NewFromInt(10)))
	require.NoError(t, err)
	require.NoError(t, invoice.Settle(trade.PaymentTypeCash, invoice.TotalAmount))
	return invoice
}

func TestGormInvoiceRepository_SaveAndFind(t *testing.T) {
	repo := NewGormInvoiceRepository(openTestDB(t))
	ctx := context.Background()

	invoice := buildTestInvoice(t, "S-20260831-0001")
	require.NoError(t, repo.Save(ctx, invoice))

	byID, err := repo.FindByID(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, invoice.InvoiceNumber, byID.InvoiceNumber)
	require.Len(t, byID.Items, 1)
	assert.Equal(t, "Widget", byID.Items[0].ProductName)
	assert.True(t, byID.TotalAmount.Equal(decimal.NewFromInt(20)))

	byNumber, err := repo.FindByNumber(ctx, "S-20260831-0001")
	require.NoError(t, err)
	assert.Equal(t, invoice.ID, byNumber.ID)

	_, err = repo.FindByNumber(ctx, "S-00000000-0000")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInvoiceRepository_DuplicateNumberConflicts(t *testing.T) {
	repo := NewGormInvoiceRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, buildTestInvoice(t, "S-20260831-0001")))

	err := repo.Save(ctx, buildTestInvoice(t, "S-20260831-0001"))
	assert.ErrorIs(t, err, shared.ErrNumberConflict)
}

func TestGormInvoiceRepository_DuplicateIdempotencyKeyConflicts(t *testing.T) {
	repo := NewGormInvoiceRepository(openTestDB(t))
	ctx := context.Background()

	first := buildTestInvoice(t, "S-20260831-0001")
	require.NoError(t, first.SetIdempotencyKey("order-1"))
	require.NoError(t, repo.Save(ctx, first))

	second := buildTestInvoice(t, "S-20260831-0002")
	require.NoError(t, second.SetIdempotencyKey("order-1"))
	err := repo.Save(ctx, second)
	assert.ErrorIs(t, err, shared.ErrNumberConflict)

	found, err := repo.FindByIdempotencyKey(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)

	_, err = repo.FindByIdempotencyKey(ctx, "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormInvoiceRepository_GenerateInvoiceNumber(t *testing.T) {
	repo := NewGormInvoiceRepository(openTestDB(t))
	ctx := context.Background()
	today := time.Now().Format("20060102")

	number, err := repo.GenerateInvoiceNumber(ctx, trade.InvoiceTypeSale)
	require.NoError(t, err)
	assert.Equal(t, "S-"+today+"-0001", number)

	require.NoError(t, repo.Save(ctx, buildTestInvoice(t, number)))

	next, err := repo.GenerateInvoiceNumber(ctx, trade.InvoiceTypeSale)
	require.NoError(t, err)
	assert.Equal(t, "S-"+today+"-0002", next)

	// Purchase numbering runs on its own sequence
	purchase, err := repo.GenerateInvoiceNumber(ctx, trade.InvoiceTypePurchase)
	require.NoError(t, err)
	assert.Equal(t, "P-"+today+"-0001", purchase)
}

func TestGormInvoiceRepository_FilterAndSum(t *testing.T) {
	repo := NewGormInvoiceRepository(openTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, buildTestInvoice(t, "S-20260831-0001")))
	require.NoError(t, repo.Save(ctx, buildTestInvoice(t, "S-20260831-0002")))

	saleType := trade.InvoiceTypeSale
	invoices, err := repo.FindAll(ctx, trade.InvoiceFilter{Type: &saleType})
	require.NoError(t, err)
	assert.Len(t, invoices, 2)

	count, err := repo.Count(ctx, trade.InvoiceFilter{Type: &saleType})
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	total, err := repo.SumTotalByType(ctx, trade.InvoiceTypeSale, nil, nil)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.NewFromInt(40)))

	remaining, err := repo.SumRemainingByType(ctx, trade.InvoiceTypeSale)
	require.NoError(t, err)
	assert.True(t, remaining.IsZero())
}
