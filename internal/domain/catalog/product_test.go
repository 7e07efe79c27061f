package catalog

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/kasper14code-rgb/FreshMarket-project/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestNewProduct(t *testing.T) {
	categoryID := uuid.New()

	t.Run("creates active product with slug", func(t *testing.T) {
		product, err := NewProduct(categoryID, "  Organic Bananas ", dec("2.50"), 40)
		require.NoError(t, err)

		assert.Equal(t, "Organic Bananas", product.Name)
		assert.Equal(t, "organic-bananas", product.Slug)
		assert.Equal(t, categoryID, product.CategoryID)
		assert.True(t, product.IsActive())
		assert.Equal(t, 40, product.StockQuantity)
		assert.Nil(t, product.DiscountedPrice)
		assert.NotEqual(t, uuid.Nil, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct(categoryID, "   ", dec("1"), 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name cannot be empty")
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct(categoryID, "Milk", dec("-1"), 1)
		var domainErr *shared.DomainError
		require.True(t, errors.As(err, &domainErr))
		assert.Equal(t, "INVALID_PRICE", domainErr.Code)
	})

	t.Run("rejects negative stock", func(t *testing.T) {
		_, err := NewProduct(categoryID, "Milk", dec("1"), -1)
		require.Error(t, err)
	})
}

func TestProduct_EffectivePrice(t *testing.T) {
	tests := []struct {
		name       string
		price      string
		discounted *decimal.Decimal
		want       string
	}{
		{"no discount", "10.00", nil, "10.00"},
		{"lower discount wins", "10.00", decPtr("8.00"), "8.00"},
		{"equal discount ignored", "10.00", decPtr("10.00"), "10.00"},
		{"higher discount ignored", "10.00", decPtr("12.00"), "10.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Product{Price: dec(tt.price), DiscountedPrice: tt.discounted}
			assert.True(t, p.EffectivePrice().Equal(dec(tt.want)), "got %s", p.EffectivePrice())
		})
	}
}

func TestProduct_EnsureAvailable(t *testing.T) {
	p := &Product{Name: "Eggs", StockQuantity: 3}

	assert.NoError(t, p.EnsureAvailable(3))

	err := p.EnsureAvailable(4)
	require.Error(t, err)
	assert.True(t, errors.Is(err, shared.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Eggs")
}

func TestProduct_SetPrices(t *testing.T) {
	p, err := NewProduct(uuid.New(), "Cheese", dec("5"), 1)
	require.NoError(t, err)

	require.NoError(t, p.SetPrices(dec("6.00"), decPtr("4.50")))
	assert.True(t, p.HasDiscount())
	assert.Equal(t, 2, p.GetVersion())

	assert.Error(t, p.SetPrices(dec("6.00"), decPtr("-1")))
}

func TestSlugify(t *testing.T) {
	tests := map[string]string{
		"Fresh Fruit":           "fresh-fruit",
		"Crème Brûlée":          "creme-brulee",
		"  Dairy & Eggs!! ":     "dairy-eggs",
		"100% Juice -- Orange":  "100-juice-orange",
		"":                      "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestCategory(t *testing.T) {
	c, err := NewCategory("Fresh Vegetables", "Greens and roots")
	require.NoError(t, err)
	assert.Equal(t, "fresh-vegetables", c.Slug)
	assert.True(t, c.IsActive())

	c.SetActive(false)
	assert.False(t, c.IsActive())

	_, err = NewCategory("", "")
	assert.Error(t, err)
}
