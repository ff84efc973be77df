package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

func createTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("Widget",
		valueobject.NewMoneyEGP(decimal.NewFromInt(10)),
		valueobject.NewMoneyEGP(decimal.NewFromInt(6)))
	require.NoError(t, err)
	return product
}

func TestNewProduct_Validation(t *testing.T) {
	price := valueobject.NewMoneyEGP(decimal.NewFromInt(10))

	_, err := NewProduct("", price, price)
	assert.Error(t, err)

	_, err = NewProduct("Widget", valueobject.NewMoneyEGP(decimal.NewFromInt(-1)), price)
	assert.Error(t, err)

	product, err := NewProduct("Widget", price, price)
	require.NoError(t, err)
	assert.True(t, product.IsActive)
	assert.True(t, product.StockQuantity.IsZero())
	assert.Equal(t, 1, product.Version)
}

func TestProduct_AdjustStock(t *testing.T) {
	tests := []struct {
		name          string
		start         int64
		delta         int64
		allowNegative bool
		wantErr       string
		want          int64
	}{
		{name: "receive", start: 0, delta: 10, want: 10},
		{name: "issue within stock", start: 10, delta: -4, want: 6},
		{name: "issue to exactly zero", start: 5, delta: -5, want: 0},
		{name: "oversell rejected", start: 3, delta: -5, wantErr: "INSUFFICIENT_STOCK"},
		{name: "oversell allowed when negative permitted", start: 3, delta: -5, allowNegative: true, want: -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			product := createTestProduct(t)
			if tt.start != 0 {
				require.NoError(t, product.AdjustStock(decimal.NewFromInt(tt.start), true))
			}

			err := product.AdjustStock(decimal.NewFromInt(tt.delta), tt.allowNegative)
			if tt.wantErr != "" {
				var domainErr *shared.DomainError
				require.ErrorAs(t, err, &domainErr)
				assert.Equal(t, tt.wantErr, domainErr.Code)
				// Quantity is untouched on rejection
				assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(tt.start)))
				return
			}
			require.NoError(t, err)
			assert.True(t, product.StockQuantity.Equal(decimal.NewFromInt(tt.want)))
		})
	}
}

func TestProduct_AdjustStockBumpsVersion(t *testing.T) {
	product := createTestProduct(t)
	before := product.Version
	require.NoError(t, product.AdjustStock(decimal.NewFromInt(1), false))
	assert.Equal(t, before+1, product.Version)
}

func TestProduct_AdjustStockRejectsInactive(t *testing.T) {
	product := createTestProduct(t)
	product.Deactivate()
	assert.Error(t, product.AdjustStock(decimal.NewFromInt(1), false))
}

func TestProduct_UpdatePurchasePrice(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.UpdatePurchasePrice(valueobject.NewMoneyEGP(decimal.NewFromInt(8))))
	assert.True(t, product.PurchasePrice.Equal(decimal.NewFromInt(8)))

	assert.Error(t, product.UpdatePurchasePrice(valueobject.NewMoneyEGP(decimal.NewFromInt(-1))))
}

func TestProduct_IsLowStock(t *testing.T) {
	product := createTestProduct(t)
	require.NoError(t, product.SetMinStockLevel(decimal.NewFromInt(5)))

	require.NoError(t, product.AdjustStock(decimal.NewFromInt(5), false))
	assert.True(t, product.IsLowStock())

	require.NoError(t, product.AdjustStock(decimal.NewFromInt(1), false))
	assert.False(t, product.IsLowStock())
}
