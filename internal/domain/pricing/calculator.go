// Package pricing computes order totals. Everything here is pure: no I/O,
// no clock, no randomness.
package pricing

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

// ErrInvalidInput is the sentinel every *InputError unwraps to.
var ErrInvalidInput = apperr.New(apperr.KindValidation, "invalid_pricing_input", "invalid pricing input")

// InputError points at the offending line or field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	return "invalid pricing input: " + e.Field + ": " + e.Reason
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Details implements apperr.Detailer.
func (e *InputError) Details() map[string]string {
	return map[string]string{"field": e.Field, "reason": e.Reason}
}

// Line is one priced cart entry.
type Line struct {
	UnitPrice money.Money
	Qty       int
}

// Discount is a percentage reduction. When MinimumOrderAmount is set and
// the items total is below it, the discount is not applied.
type Discount struct {
	Percentage         decimal.Decimal
	MinimumOrderAmount *money.Money
}

// Totals is the immutable pricing snapshot stored on an order.
// TotalPrice == ItemsPrice - DiscountAmount + ShippingPrice holds exactly.
type Totals struct {
	ItemsPrice          money.Money
	DiscountPercentage  decimal.Decimal
	DiscountAmount      money.Money
	AmountAfterDiscount money.Money
	ShippingPrice       money.Money
	TotalPrice          money.Money
}

// ShippingPolicy charges FlatRate unless the discounted amount reaches
// FreeThreshold.
type ShippingPolicy struct {
	FreeThreshold money.Money
	FlatRate      money.Money
}

// Price returns the shipping price for the amount after discount.
func (s ShippingPolicy) Price(amountAfterDiscount money.Money) money.Money {
	if amountAfterDiscount.Cmp(s.FreeThreshold) >= 0 {
		return money.Zero
	}
	return s.FlatRate
}

// Calculator prices carts under one currency policy.
type Calculator struct {
	policy   money.Policy
	shipping ShippingPolicy
}

// NewCalculator validates the shipping policy against the currency.
func NewCalculator(policy money.Policy, shipping ShippingPolicy) (*Calculator, error) {
	if policy.MinorUnits < 0 {
		return nil, &InputError{Field: "minorUnits", Reason: "must not be negative"}
	}
	if shipping.FlatRate.IsNegative() || !policy.Representable(shipping.FlatRate) {
		return nil, &InputError{Field: "flatRate", Reason: "must be a non-negative " + policy.Currency + " amount"}
	}
	if shipping.FreeThreshold.IsNegative() {
		return nil, &InputError{Field: "freeThreshold", Reason: "must not be negative"}
	}
	return &Calculator{policy: policy, shipping: shipping}, nil
}

// Policy returns the currency policy totals are rounded with.
func (c *Calculator) Policy() money.Policy { return c.policy }

// ComputeTotals prices items with an optional discount. Amounts stay exact
// until TotalPrice is rounded once to the currency's minor unit.
func (c *Calculator) ComputeTotals(items []Line, discount *Discount) (Totals, error) {
	itemsPrice := money.Zero
	for i, it := range items {
		field := "items[" + strconv.Itoa(i) + "]"
		switch {
		case it.Qty < 0:
			return Totals{}, &InputError{Field: field + ".qty", Reason: "must not be negative"}
		case it.UnitPrice.IsNegative():
			return Totals{}, &InputError{Field: field + ".unitPrice", Reason: "must not be negative"}
		case !c.policy.Representable(it.UnitPrice):
			return Totals{}, &InputError{Field: field + ".unitPrice", Reason: "has more decimals than " + c.policy.Currency + " allows"}
		}
		itemsPrice = itemsPrice.Add(it.UnitPrice.MulInt(it.Qty))
	}

	percentage := decimal.Zero
	exactDiscount := money.Zero
	if discount != nil {
		p, err := money.NewPercentage(discount.Percentage)
		if err != nil {
			return Totals{}, &InputError{Field: "discount.percentage", Reason: err.Error()}
		}
		minimum := discount.MinimumOrderAmount
		if minimum == nil || itemsPrice.Cmp(*minimum) >= 0 {
			percentage = p.Decimal()
			exactDiscount = itemsPrice.Percent(p)
		}
	}

	afterDiscount := itemsPrice.Sub(exactDiscount)
	shipping := c.shipping.Price(afterDiscount)
	total := c.policy.Round(afterDiscount.Add(shipping))

	return Totals{
		ItemsPrice:          itemsPrice,
		DiscountPercentage:  percentage,
		DiscountAmount:      itemsPrice.Add(shipping).Sub(total),
		AmountAfterDiscount: total.Sub(shipping),
		ShippingPrice:       shipping,
		TotalPrice:          total,
	}, nil
}
