// Code generated by ogen, DO NOT EDIT.

package oas

// OperationName is the ogen operation name
type OperationName = string

const (
	AdminGetOrderOperation     OperationName = "AdminGetOrder"
	GetOrderOperation          OperationName = "GetOrder"
	GetProductOperation        OperationName = "GetProduct"
	ListCouponsOperation       OperationName = "ListCoupons"
	ListOrdersOperation        OperationName = "ListOrders"
	ListProductsOperation      OperationName = "ListProducts"
	MarkOrderPaidOperation     OperationName = "MarkOrderPaid"
	PlaceOrderOperation        OperationName = "PlaceOrder"
	QuoteCheckoutOperation     OperationName = "QuoteCheckout"
	SaveCouponOperation        OperationName = "SaveCoupon"
	UpdateOrderStatusOperation OperationName = "UpdateOrderStatus"
	ValidateDiscountOperation  OperationName = "ValidateDiscount"
)
