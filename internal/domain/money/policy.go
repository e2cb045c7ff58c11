package money

import "github.com/shopspring/decimal"

// Policy describes how amounts of one currency are rounded. MinorUnits is
// the number of decimals the currency supports: 0 for VND, 2 for USD.
type Policy struct {
	Currency   string
	MinorUnits int32
}

// VND is the default storefront currency.
var VND = Policy{Currency: "VND", MinorUnits: 0}

// Round rounds m half away from zero to the currency's minor unit.
func (p Policy) Round(m Money) Money {
	return Money{d: m.d.Round(p.MinorUnits)}
}

// Representable reports whether m needs no rounding in this currency.
func (p Policy) Representable(m Money) bool {
	return m.d.Equal(m.d.Round(p.MinorUnits))
}

// HalfUnit returns half of the smallest representable amount. It is the
// default tolerance when comparing a client-computed total to ours.
func (p Policy) HalfUnit() Money {
	unit := decimal.New(1, -p.MinorUnits)
	return Money{d: unit.Div(decimal.NewFromInt(2))}
}

// Format renders m with the currency's decimals, e.g. "480000 VND".
func (p Policy) Format(m Money) string {
	return p.Round(m).StringFixed(p.MinorUnits) + " " + p.Currency
}
