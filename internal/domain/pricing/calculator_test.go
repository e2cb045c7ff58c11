package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/domain/money"
)

func vndCalculator(t *testing.T) *Calculator {
	t.Helper()
	c, err := NewCalculator(money.VND, ShippingPolicy{
		FreeThreshold: money.New(1000000),
		FlatRate:      money.New(30000),
	})
	require.NoError(t, err)
	return c
}

func assertMoney(t *testing.T, want int64, got money.Money, field string) {
	t.Helper()
	assert.True(t, money.New(want).Equal(got), "%s: want %d, got %s", field, want, got)
}

func TestComputeTotals_DiscountedBelowThreshold(t *testing.T) {
	c := vndCalculator(t)

	got, err := c.ComputeTotals(
		[]Line{{UnitPrice: money.New(250000), Qty: 2}},
		&Discount{Percentage: decimal.NewFromInt(10)},
	)
	require.NoError(t, err)

	assertMoney(t, 500000, got.ItemsPrice, "items")
	assertMoney(t, 50000, got.DiscountAmount, "discount")
	assertMoney(t, 450000, got.AmountAfterDiscount, "after discount")
	assertMoney(t, 30000, got.ShippingPrice, "shipping")
	assertMoney(t, 480000, got.TotalPrice, "total")
	assert.True(t, decimal.NewFromInt(10).Equal(got.DiscountPercentage))
}

func TestComputeTotals_FreeShippingWithoutDiscount(t *testing.T) {
	c := vndCalculator(t)

	got, err := c.ComputeTotals([]Line{
		{UnitPrice: money.New(400000), Qty: 2},
		{UnitPrice: money.New(200000), Qty: 2},
	}, nil)
	require.NoError(t, err)

	assertMoney(t, 1200000, got.ItemsPrice, "items")
	assertMoney(t, 0, got.DiscountAmount, "discount")
	assertMoney(t, 0, got.ShippingPrice, "shipping")
	assertMoney(t, 1200000, got.TotalPrice, "total")
	assert.True(t, got.DiscountPercentage.IsZero())
}

func TestComputeTotals_ShippingUsesAmountAfterDiscount(t *testing.T) {
	c := vndCalculator(t)

	// 1,050,000 items, 10% off leaves 945,000: below the threshold.
	got, err := c.ComputeTotals(
		[]Line{{UnitPrice: money.New(1050000), Qty: 1}},
		&Discount{Percentage: decimal.NewFromInt(10)},
	)
	require.NoError(t, err)
	assertMoney(t, 30000, got.ShippingPrice, "shipping")
	assertMoney(t, 975000, got.TotalPrice, "total")

	// Exactly at the threshold is free.
	got, err = c.ComputeTotals([]Line{{UnitPrice: money.New(1000000), Qty: 1}}, nil)
	require.NoError(t, err)
	assertMoney(t, 0, got.ShippingPrice, "shipping")
}

func TestComputeTotals_MinimumOrderAmount(t *testing.T) {
	c := vndCalculator(t)
	minimum := money.New(600000)

	got, err := c.ComputeTotals(
		[]Line{{UnitPrice: money.New(500000), Qty: 1}},
		&Discount{Percentage: decimal.NewFromInt(10), MinimumOrderAmount: &minimum},
	)
	require.NoError(t, err)
	assertMoney(t, 0, got.DiscountAmount, "discount")
	assert.True(t, got.DiscountPercentage.IsZero())
	assertMoney(t, 530000, got.TotalPrice, "total")
}

func TestComputeTotals_RoundsOnce(t *testing.T) {
	c := vndCalculator(t)

	// 12.5% of 333,333 = 41,666.625; 291,666.375 + 30,000 rounds to 321,666.
	got, err := c.ComputeTotals(
		[]Line{{UnitPrice: money.New(333333), Qty: 1}},
		&Discount{Percentage: decimal.RequireFromString("12.5")},
	)
	require.NoError(t, err)
	assertMoney(t, 321666, got.TotalPrice, "total")
	assertMoney(t, 41667, got.DiscountAmount, "discount")
	assert.True(t, got.TotalPrice.Equal(got.ItemsPrice.Sub(got.DiscountAmount).Add(got.ShippingPrice)))

	usd, err := NewCalculator(money.Policy{Currency: "USD", MinorUnits: 2}, ShippingPolicy{
		FreeThreshold: money.New(100),
		FlatRate:      money.New(10),
	})
	require.NoError(t, err)

	got, err = usd.ComputeTotals(
		[]Line{{UnitPrice: money.MustParse("10.01"), Qty: 3}},
		&Discount{Percentage: decimal.RequireFromString("33.33")},
	)
	require.NoError(t, err)
	// 30.03 - 10.008999 + 10 = 30.021001 -> 30.02
	assert.Equal(t, "30.02", got.TotalPrice.String())
	assert.Equal(t, "10.01", got.DiscountAmount.String())
}

func TestComputeTotals_InvalidInput(t *testing.T) {
	c := vndCalculator(t)

	tests := []struct {
		name     string
		items    []Line
		discount *Discount
		field    string
	}{
		{
			name:  "negative quantity",
			items: []Line{{UnitPrice: money.New(1), Qty: 1}, {UnitPrice: money.New(1), Qty: -1}},
			field: "items[1].qty",
		},
		{
			name:  "negative price",
			items: []Line{{UnitPrice: money.New(-1), Qty: 1}},
			field: "items[0].unitPrice",
		},
		{
			name:  "fractional dong",
			items: []Line{{UnitPrice: money.MustParse("0.5"), Qty: 1}},
			field: "items[0].unitPrice",
		},
		{
			name:     "percentage above 100",
			items:    []Line{{UnitPrice: money.New(1), Qty: 1}},
			discount: &Discount{Percentage: decimal.NewFromInt(101)},
			field:    "discount.percentage",
		},
		{
			name:     "negative percentage",
			items:    []Line{{UnitPrice: money.New(1), Qty: 1}},
			discount: &Discount{Percentage: decimal.NewFromInt(-5)},
			field:    "discount.percentage",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := c.ComputeTotals(tt.items, tt.discount)
			require.ErrorIs(t, err, ErrInvalidInput)

			var in *InputError
			require.ErrorAs(t, err, &in)
			assert.Equal(t, tt.field, in.Field)
		})
	}
}

func TestComputeTotals_Idempotent(t *testing.T) {
	c := vndCalculator(t)
	items := []Line{{UnitPrice: money.New(123457), Qty: 3}, {UnitPrice: money.New(99999), Qty: 7}}
	d := &Discount{Percentage: decimal.RequireFromString("17.5")}

	first, err := c.ComputeTotals(items, d)
	require.NoError(t, err)
	second, err := c.ComputeTotals(items, d)
	require.NoError(t, err)

	assert.Equal(t, first.TotalPrice.String(), second.TotalPrice.String())
	assert.Equal(t, first.DiscountAmount.String(), second.DiscountAmount.String())
	assert.Equal(t, first.ShippingPrice.String(), second.ShippingPrice.String())
}

func TestComputeTotals_Bounds(t *testing.T) {
	c := vndCalculator(t)

	for _, pct := range []string{"0", "0.01", "33.333", "50", "99.99", "100"} {
		for _, price := range []int64{0, 1, 999, 1000001, 7654321} {
			got, err := c.ComputeTotals(
				[]Line{{UnitPrice: money.New(price), Qty: 1}},
				&Discount{Percentage: decimal.RequireFromString(pct)},
			)
			require.NoError(t, err)
			assert.False(t, got.ItemsPrice.LessThan(got.DiscountAmount), "pct=%s price=%d", pct, price)
			assert.False(t, got.TotalPrice.LessThan(got.ShippingPrice), "pct=%s price=%d", pct, price)
			assert.False(t, got.DiscountAmount.IsNegative(), "pct=%s price=%d", pct, price)
			assert.True(t, got.TotalPrice.Equal(got.ItemsPrice.Sub(got.DiscountAmount).Add(got.ShippingPrice)))
		}
	}
}

func TestNewCalculator_RejectsBadPolicy(t *testing.T) {
	_, err := NewCalculator(money.VND, ShippingPolicy{FlatRate: money.MustParse("0.5")})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = NewCalculator(money.VND, ShippingPolicy{FlatRate: money.New(-1)})
	require.ErrorIs(t, err, ErrInvalidInput)
}
