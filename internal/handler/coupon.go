package handler

import (
	"context"

	"github.com/xenking/storefront-checkout/gen/oas"
)

// SaveCoupon stores a discount code in the caller's wallet.
func (h *Handler) SaveCoupon(ctx context.Context, params oas.SaveCouponParams) (*oas.Coupon, error) {
	c, err := h.orders.SaveCoupon(ctx, UserFromContext(ctx), params.Code)
	if err != nil {
		return nil, err
	}
	out := toCoupon(*c)
	return &out, nil
}

// ListCoupons returns the caller's saved and redeemed coupons.
func (h *Handler) ListCoupons(ctx context.Context) ([]oas.Coupon, error) {
	coupons, err := h.orders.Coupons(ctx, UserFromContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]oas.Coupon, len(coupons))
	for i, c := range coupons {
		out[i] = toCoupon(c)
	}
	return out, nil
}
