package handler

import (
	"context"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

// ValidateDiscount checks a code against an order amount without using it.
func (h *Handler) ValidateDiscount(ctx context.Context, req *oas.ValidateDiscountRequest) (*oas.DiscountValidation, error) {
	c, err := h.orders.ValidateDiscount(ctx, req.Code, amountOf(req.OrderAmount))
	if err != nil {
		return nil, err
	}
	return &oas.DiscountValidation{Valid: true, Discount: toDiscount(c)}, nil
}

// QuoteCheckout prices a cart without placing it.
func (h *Handler) QuoteCheckout(ctx context.Context, req *oas.QuoteRequest) (*oas.Quote, error) {
	q, err := h.orders.Quote(ctx, toCartItems(req.Items), req.DiscountCode.Or(""))
	if err != nil {
		return nil, err
	}
	return h.toQuote(q), nil
}

// PlaceOrder prices the cart again, checks the client's total and commits
// the order for the authenticated shopper.
func (h *Handler) PlaceOrder(ctx context.Context, req *oas.PlaceOrderRequest) (*oas.Order, error) {
	in := order.PlaceOrderRequest{
		UserID:        UserFromContext(ctx),
		Items:         toCartItems(req.Items),
		DiscountCode:  req.DiscountCode.Or(""),
		Shipping:      toShippingInfo(req.Shipping),
		PaymentMethod: order.PaymentMethod(req.PaymentMethod),
	}
	if v, ok := req.ExpectedTotal.Get(); ok {
		m := amountOf(v)
		in.ExpectedTotal = &m
	}
	o, err := h.orders.PlaceOrder(ctx, in)
	if err != nil {
		return nil, err
	}
	return h.toOrder(o), nil
}
