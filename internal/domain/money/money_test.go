package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercent(t *testing.T) {
	got := New(500000).Percent(MustPercentage(10))
	assert.True(t, New(50000).Equal(got), "got %s", got)

	// No rounding before the caller asks for it.
	got = MustParse("10.01").Percent(Percentage{d: decimal.RequireFromString("33.33")})
	assert.Equal(t, "3.336333", got.String())
}

func TestNewPercentage(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "0"},
		{in: "100"},
		{in: "12.5"},
		{in: "-0.01", wantErr: true},
		{in: "100.01", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := NewPercentage(decimal.RequireFromString(tt.in))
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidPercentage)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPolicy(t *testing.T) {
	usd := Policy{Currency: "USD", MinorUnits: 2}

	assert.Equal(t, "3.34", usd.Round(MustParse("3.336333")).String())
	assert.Equal(t, "3", VND.Round(MustParse("2.5")).String())
	assert.Equal(t, "-3", VND.Round(MustParse("-2.5")).String())

	assert.True(t, VND.Representable(New(30000)))
	assert.False(t, VND.Representable(MustParse("0.5")))
	assert.True(t, usd.Representable(MustParse("19.99")))
	assert.False(t, usd.Representable(MustParse("19.999")))

	assert.Equal(t, "0.5", VND.HalfUnit().String())
	assert.Equal(t, "0.005", usd.HalfUnit().String())

	assert.Equal(t, "480000 VND", VND.Format(New(480000)))
	assert.Equal(t, "10.00 USD", usd.Format(New(10)))
}

func TestParse(t *testing.T) {
	_, err := Parse("12,5")
	require.Error(t, err)

	m, err := Parse("1200000")
	require.NoError(t, err)
	assert.Equal(t, 1, m.Cmp(New(1000000)))
}
