package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcore/backend/internal/domain/shared"
	"github.com/shopcore/backend/internal/domain/shared/valueobject"
)

func mustProduct(t *testing.T, name, price string, stock int64) *Product {
	t.Helper()
	money, err := valueobject.NewMoneyUSDFromString(price)
	require.NoError(t, err)
	product, err := NewProduct(name, money, stock)
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("valid product", func(t *testing.T) {
		product := mustProduct(t, "Sample Product A", "19.99", 100)

		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, "Sample Product A", product.Name)
		assert.True(t, product.Price.Equal(decimal.RequireFromString("19.99")))
		assert.Equal(t, int64(100), product.Stock)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("zero stock is allowed", func(t *testing.T) {
		product := mustProduct(t, "Widget", "5.00", 0)
		assert.Equal(t, int64(0), product.Stock)
	})

	tests := []struct {
		name        string
		productName string
		price       string
		stock       int64
	}{
		{"blank name", "   ", "19.99", 10},
		{"zero price", "Widget", "0", 10},
		{"negative price", "Widget", "-5.00", 10},
		{"negative stock", "Widget", "19.99", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			money, err := valueobject.NewMoneyUSDFromString(tt.price)
			require.NoError(t, err)
			_, err = NewProduct(tt.productName, money, tt.stock)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestProductDecreaseStock(t *testing.T) {
	t.Run("decrements available stock", func(t *testing.T) {
		product := mustProduct(t, "Widget", "5.00", 10)

		require.NoError(t, product.DecreaseStock(4))
		assert.Equal(t, int64(6), product.Stock)

		require.NoError(t, product.DecreaseStock(6))
		assert.Equal(t, int64(0), product.Stock)
	})

	t.Run("exact remaining stock succeeds, one more fails", func(t *testing.T) {
		product := mustProduct(t, "Widget", "5.00", 1)

		require.NoError(t, product.DecreaseStock(1))

		err := product.DecreaseStock(1)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, int64(1), stockErr.Requested)
		assert.Equal(t, int64(0), stockErr.Available)
		assert.Equal(t, int64(0), product.Stock, "stock never goes negative")
	})

	t.Run("insufficient stock leaves stock untouched", func(t *testing.T) {
		product := mustProduct(t, "Widget", "5.00", 3)

		err := product.DecreaseStock(5)
		var stockErr *InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Widget", stockErr.ProductName)
		assert.Equal(t, int64(3), product.Stock)
	})

	t.Run("non-positive quantity is a validation error", func(t *testing.T) {
		product := mustProduct(t, "Widget", "5.00", 3)

		assert.True(t, shared.IsValidation(product.DecreaseStock(0)))
		assert.True(t, shared.IsValidation(product.DecreaseStock(-2)))
		assert.Equal(t, int64(3), product.Stock)
	})
}

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &InsufficientStockError{ProductName: "Widget", Requested: 5, Available: 2}
	assert.Contains(t, err.Error(), "Widget")
	assert.Contains(t, err.Error(), "requested 5")
	assert.Contains(t, err.Error(), "available 2")
}
