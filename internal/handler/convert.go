package handler

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/ledger"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

// Amounts cross the wire as JSON numbers. The float carries the shortest
// decimal that round-trips, so the decimal is recovered exactly.

func amountOf(v float64) money.Money {
	return money.FromDecimal(decimal.NewFromFloat(v))
}

func toFloat(m money.Money) float64 {
	return m.Decimal().InexactFloat64()
}

func toCartItems(items []oas.CartItem) []order.CartItem {
	out := make([]order.CartItem, len(items))
	for i, it := range items {
		out[i] = order.CartItem{
			ProductID: it.ProductId,
			Size:      it.Size,
			Qty:       it.Qty,
		}
		if v, ok := it.UnitPrice.Get(); ok {
			m := amountOf(v)
			out[i].UnitPrice = &m
		}
	}
	return out
}

func toShippingInfo(s oas.Shipping) order.ShippingInfo {
	return order.ShippingInfo{
		FullName:   s.FullName,
		Phone:      s.Phone,
		Address:    s.Address,
		City:       s.City,
		PostalCode: s.PostalCode,
		Country:    s.Country,
	}
}

func (h *Handler) toProduct(p catalog.Product) oas.Product {
	sizes := make([]oas.SizeStock, 0, len(p.Sizes))
	for _, size := range p.SizeLabels() {
		sizes = append(sizes, oas.SizeStock{Size: size, Stock: p.Sizes[size]})
	}
	return oas.Product{
		ID:       p.ID,
		Name:     p.Name,
		Price:    toFloat(p.Price),
		Category: p.Category,
		Image: oas.ProductImage{
			Thumbnail: h.imageURL(p.Image.Thumbnail),
			Mobile:    h.imageURL(p.Image.Mobile),
			Tablet:    h.imageURL(p.Image.Tablet),
			Desktop:   h.imageURL(p.Image.Desktop),
		},
		Sizes: sizes,
	}
}

// imageURL resolves a relative image path against the configured base.
func (h *Handler) imageURL(path string) string {
	if path == "" || h.imageBaseURL == "" ||
		strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(h.imageBaseURL, "/") + "/" + strings.TrimPrefix(path, "/")
}

func toLineItems(items []order.LineItem) []oas.LineItem {
	out := make([]oas.LineItem, len(items))
	for i, li := range items {
		out[i] = oas.LineItem{
			ProductId: li.ProductID,
			Name:      li.Name,
			Size:      li.Size,
			Qty:       li.Qty,
			UnitPrice: toFloat(li.UnitPrice),
			Subtotal:  toFloat(li.Subtotal()),
		}
	}
	return out
}

func toDiscount(c *discount.Code) oas.Discount {
	return oas.Discount{
		Code:               c.Code,
		Percentage:         c.Percentage.Decimal().InexactFloat64(),
		MinimumOrderAmount: toFloat(c.MinimumOrderAmount),
		StartDate:          c.StartDate.UTC(),
		EndDate:            c.EndDate.UTC(),
		RemainingUses:      max(0, c.UsageLimit-c.UsedCount),
	}
}

func (h *Handler) toQuote(q *order.Quote) *oas.Quote {
	t := q.Totals
	out := &oas.Quote{
		Items:               toLineItems(q.Items),
		Currency:            q.Currency,
		ItemsPrice:          toFloat(t.ItemsPrice),
		DiscountPercentage:  t.DiscountPercentage.InexactFloat64(),
		DiscountAmount:      toFloat(t.DiscountAmount),
		AmountAfterDiscount: toFloat(t.AmountAfterDiscount),
		ShippingPrice:       toFloat(t.ShippingPrice),
		TotalPrice:          toFloat(t.TotalPrice),
		FormattedTotal:      h.formatTotal(t),
	}
	if q.Discount != nil {
		out.Discount = oas.NewOptDiscount(toDiscount(q.Discount))
	}
	return out
}

func (h *Handler) formatTotal(t pricing.Totals) string {
	return h.policy.Format(t.TotalPrice)
}

func (h *Handler) toOrder(o *order.Order) *oas.Order {
	t := o.Pricing
	out := &oas.Order{
		ID:                  o.ID.String(),
		UserId:              o.UserID,
		Items:               toLineItems(o.Items),
		Currency:            o.Currency,
		ItemsPrice:          toFloat(t.ItemsPrice),
		DiscountPercentage:  t.DiscountPercentage.InexactFloat64(),
		DiscountAmount:      toFloat(t.DiscountAmount),
		AmountAfterDiscount: toFloat(t.AmountAfterDiscount),
		ShippingPrice:       toFloat(t.ShippingPrice),
		TotalPrice:          toFloat(t.TotalPrice),
		FormattedTotal:      h.formatTotal(t),
		Shipping: oas.Shipping{
			FullName:   o.Shipping.FullName,
			Phone:      o.Shipping.Phone,
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		},
		PaymentMethod: string(o.PaymentMethod),
		Status:        o.Status.String(),
		IsPaid:        o.IsPaid,
		CreatedAt:     o.CreatedAt.UTC(),
		UpdatedAt:     o.UpdatedAt.UTC(),
	}
	if o.DiscountCode != "" {
		out.DiscountCode = oas.NewOptString(o.DiscountCode)
	}
	if p := o.Payment; p != nil {
		out.Payment = oas.NewOptPayment(oas.Payment{
			Method:     string(p.Method),
			Reference:  p.Reference,
			PayerEmail: p.PayerEmail,
			PaidAt:     p.PaidAt.UTC(),
		})
	}
	if o.DeliveredAt != nil {
		out.DeliveredAt = oas.NewOptDateTime(o.DeliveredAt.UTC())
	}
	return out
}

func toCoupon(c ledger.Coupon) oas.Coupon {
	out := oas.Coupon{
		Code:           c.Code,
		DiscountCodeId: c.DiscountCodeID.String(),
		State:          c.State().String(),
		SavedAt:        c.SavedAt.UTC(),
	}
	if c.UsedAt != nil {
		out.UsedAt = oas.NewOptDateTime(c.UsedAt.UTC())
	}
	return out
}
