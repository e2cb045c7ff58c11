// Code generated by ogen, DO NOT EDIT.

package oas

import (
	"context"

	ht "github.com/ogen-go/ogen/http"
)

// UnimplementedHandler is no-op Handler which returns http.ErrNotImplemented.
type UnimplementedHandler struct{}

var _ Handler = UnimplementedHandler{}

// AdminGetOrder implements adminGetOrder operation.
//
// Get any order.
//
// GET /admin/orders/{orderId}
func (UnimplementedHandler) AdminGetOrder(ctx context.Context, params AdminGetOrderParams) (r *Order, _ error) {
	return r, ht.ErrNotImplemented
}

// GetOrder implements getOrder operation.
//
// Get one of the caller's orders.
//
// GET /orders/{orderId}
func (UnimplementedHandler) GetOrder(ctx context.Context, params GetOrderParams) (r *Order, _ error) {
	return r, ht.ErrNotImplemented
}

// GetProduct implements getProduct operation.
//
// Get a product.
//
// GET /products/{productId}
func (UnimplementedHandler) GetProduct(ctx context.Context, params GetProductParams) (r *Product, _ error) {
	return r, ht.ErrNotImplemented
}

// ListCoupons implements listCoupons operation.
//
// List the caller's saved and redeemed coupons.
//
// GET /coupons
func (UnimplementedHandler) ListCoupons(ctx context.Context) (r []Coupon, _ error) {
	return r, ht.ErrNotImplemented
}

// ListOrders implements listOrders operation.
//
// List the caller's orders, newest first.
//
// GET /orders
func (UnimplementedHandler) ListOrders(ctx context.Context) (r []Order, _ error) {
	return r, ht.ErrNotImplemented
}

// ListProducts implements listProducts operation.
//
// List products.
//
// GET /products
func (UnimplementedHandler) ListProducts(ctx context.Context) (r []Product, _ error) {
	return r, ht.ErrNotImplemented
}

// MarkOrderPaid implements markOrderPaid operation.
//
// Record a payment confirmation.
//
// POST /orders/{orderId}/payment
func (UnimplementedHandler) MarkOrderPaid(ctx context.Context, req *PaymentRequest, params MarkOrderPaidParams) (r *Order, _ error) {
	return r, ht.ErrNotImplemented
}

// PlaceOrder implements placeOrder operation.
//
// Place an order.
//
// POST /orders
func (UnimplementedHandler) PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (r *Order, _ error) {
	return r, ht.ErrNotImplemented
}

// QuoteCheckout implements quoteCheckout operation.
//
// Price a cart without placing it.
//
// POST /checkout/quote
func (UnimplementedHandler) QuoteCheckout(ctx context.Context, req *QuoteRequest) (r *Quote, _ error) {
	return r, ht.ErrNotImplemented
}

// SaveCoupon implements saveCoupon operation.
//
// Save a discount code to the caller's wallet.
//
// POST /coupons/{code}
func (UnimplementedHandler) SaveCoupon(ctx context.Context, params SaveCouponParams) (r *Coupon, _ error) {
	return r, ht.ErrNotImplemented
}

// UpdateOrderStatus implements updateOrderStatus operation.
//
// Move an order to a fulfilment status.
//
// PATCH /orders/{orderId}/status
func (UnimplementedHandler) UpdateOrderStatus(ctx context.Context, req *StatusUpdate, params UpdateOrderStatusParams) (r *Order, _ error) {
	return r, ht.ErrNotImplemented
}

// ValidateDiscount implements validateDiscount operation.
//
// Check a discount code against an order amount.
//
// POST /discounts/validate
func (UnimplementedHandler) ValidateDiscount(ctx context.Context, req *ValidateDiscountRequest) (r *DiscountValidation, _ error) {
	return r, ht.ErrNotImplemented
}

// NewError creates *ErrorStatusCode from error returned by handler.
//
// Used for common default response.
func (UnimplementedHandler) NewError(ctx context.Context, err error) (r *ErrorStatusCode) {
	r = new(ErrorStatusCode)
	return r
}
