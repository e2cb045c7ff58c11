// Code generated by ogen, DO NOT EDIT.

package oas

import (
	"context"
)

// Handler handles operations described by OpenAPI v3 specification.
type Handler interface {
	// AdminGetOrder implements adminGetOrder operation.
	//
	// Get any order.
	//
	// GET /admin/orders/{orderId}
	AdminGetOrder(ctx context.Context, params AdminGetOrderParams) (*Order, error)
	// GetOrder implements getOrder operation.
	//
	// Get one of the caller's orders.
	//
	// GET /orders/{orderId}
	GetOrder(ctx context.Context, params GetOrderParams) (*Order, error)
	// GetProduct implements getProduct operation.
	//
	// Get a product.
	//
	// GET /products/{productId}
	GetProduct(ctx context.Context, params GetProductParams) (*Product, error)
	// ListCoupons implements listCoupons operation.
	//
	// List the caller's saved and redeemed coupons.
	//
	// GET /coupons
	ListCoupons(ctx context.Context) ([]Coupon, error)
	// ListOrders implements listOrders operation.
	//
	// List the caller's orders, newest first.
	//
	// GET /orders
	ListOrders(ctx context.Context) ([]Order, error)
	// ListProducts implements listProducts operation.
	//
	// List products.
	//
	// GET /products
	ListProducts(ctx context.Context) ([]Product, error)
	// MarkOrderPaid implements markOrderPaid operation.
	//
	// Record a payment confirmation.
	//
	// POST /orders/{orderId}/payment
	MarkOrderPaid(ctx context.Context, req *PaymentRequest, params MarkOrderPaidParams) (*Order, error)
	// PlaceOrder implements placeOrder operation.
	//
	// Place an order.
	//
	// POST /orders
	PlaceOrder(ctx context.Context, req *PlaceOrderRequest) (*Order, error)
	// QuoteCheckout implements quoteCheckout operation.
	//
	// Price a cart without placing it.
	//
	// POST /checkout/quote
	QuoteCheckout(ctx context.Context, req *QuoteRequest) (*Quote, error)
	// SaveCoupon implements saveCoupon operation.
	//
	// Save a discount code to the caller's wallet.
	//
	// POST /coupons/{code}
	SaveCoupon(ctx context.Context, params SaveCouponParams) (*Coupon, error)
	// UpdateOrderStatus implements updateOrderStatus operation.
	//
	// Move an order to a fulfilment status.
	//
	// PATCH /orders/{orderId}/status
	UpdateOrderStatus(ctx context.Context, req *StatusUpdate, params UpdateOrderStatusParams) (*Order, error)
	// ValidateDiscount implements validateDiscount operation.
	//
	// Check a discount code against an order amount.
	//
	// POST /discounts/validate
	ValidateDiscount(ctx context.Context, req *ValidateDiscountRequest) (*DiscountValidation, error)
	// NewError creates *ErrorStatusCode from error returned by handler.
	//
	// Used for common default response.
	NewError(ctx context.Context, err error) *ErrorStatusCode
}

// Server implements http server based on OpenAPI v3 specification and
// calls Handler to handle requests.
type Server struct {
	h   Handler
	sec SecurityHandler
	baseServer
}

// NewServer creates new Server.
func NewServer(h Handler, sec SecurityHandler, opts ...ServerOption) (*Server, error) {
	s, err := newServerConfig(opts...).baseServer()
	if err != nil {
		return nil, err
	}
	return &Server{
		h:          h,
		sec:        sec,
		baseServer: s,
	}, nil
}
