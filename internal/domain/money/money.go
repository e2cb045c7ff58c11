// Package money provides exact decimal amounts and the currency rounding
// policy used by checkout pricing.
package money

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Money is an exact, arbitrary precision amount in major currency units.
// The zero value is zero.
type Money struct {
	d decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// New returns an integral amount.
func New(v int64) Money {
	return Money{d: decimal.NewFromInt(v)}
}

// FromDecimal wraps a decimal value.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d: d}
}

// Parse parses a decimal string such as "1200000" or "19.99".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errors.Wrapf(err, "parse amount %q", s)
	}
	return Money{d: d}, nil
}

// MustParse is like Parse but panics on malformed input. Intended for
// constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal { return m.d }

func (m Money) Add(o Money) Money { return Money{d: m.d.Add(o.d)} }

func (m Money) Sub(o Money) Money { return Money{d: m.d.Sub(o.d)} }

// MulInt multiplies the amount by an integer quantity.
func (m Money) MulInt(n int) Money {
	return Money{d: m.d.Mul(decimal.NewFromInt(int64(n)))}
}

// Percent returns p percent of m without rounding.
func (m Money) Percent(p Percentage) Money {
	return Money{d: m.d.Mul(p.d).Div(hundred)}
}

func (m Money) Cmp(o Money) int { return m.d.Cmp(o.d) }

func (m Money) Equal(o Money) bool { return m.d.Equal(o.d) }

func (m Money) LessThan(o Money) bool { return m.d.LessThan(o.d) }

func (m Money) IsNegative() bool { return m.d.IsNegative() }

func (m Money) IsZero() bool { return m.d.IsZero() }

// Abs returns the absolute value of m.
func (m Money) Abs() Money { return Money{d: m.d.Abs()} }

func (m Money) String() string { return m.d.String() }

// StringFixed formats m with exactly places decimals.
func (m Money) StringFixed(places int32) string { return m.d.StringFixed(places) }

// ErrInvalidPercentage is returned for percentages outside [0, 100].
var ErrInvalidPercentage = errors.New("percentage must be within [0, 100]")

// Percentage is a discount rate within [0, 100].
type Percentage struct {
	d decimal.Decimal
}

// NewPercentage validates and returns a percentage.
func NewPercentage(d decimal.Decimal) (Percentage, error) {
	if d.IsNegative() || d.GreaterThan(hundred) {
		return Percentage{}, ErrInvalidPercentage
	}
	return Percentage{d: d}, nil
}

// MustPercentage is like NewPercentage for integral literals; it panics on
// out-of-range input.
func MustPercentage(v int64) Percentage {
	p, err := NewPercentage(decimal.NewFromInt(v))
	if err != nil {
		panic(err)
	}
	return p
}

func (p Percentage) Decimal() decimal.Decimal { return p.d }

func (p Percentage) IsZero() bool { return p.d.IsZero() }

func (p Percentage) String() string { return p.d.String() }
