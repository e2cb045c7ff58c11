package order

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/money"
)

var (
	ErrNotFound             = apperr.New(apperr.KindNotFound, "order_not_found", "order not found")
	ErrAlreadyExists        = apperr.New(apperr.KindConflict, "order_exists", "order already exists")
	ErrEmptyItems           = apperr.New(apperr.KindValidation, "empty_cart", "at least one item is required")
	ErrInvalidItem          = apperr.New(apperr.KindValidation, "invalid_item", "invalid cart item")
	ErrInvalidShipping      = apperr.New(apperr.KindValidation, "invalid_shipping", "shipping information is incomplete")
	ErrInvalidPaymentMethod = apperr.New(apperr.KindValidation, "invalid_payment_method", "payment method must be cod or paypal")
	ErrMissingTotal         = apperr.New(apperr.KindValidation, "missing_total", "expected total is required")
	ErrUnauthenticated      = apperr.New(apperr.KindValidation, "unauthenticated", "user is required")
	ErrStalePrice           = apperr.New(apperr.KindState, "stale_price", "product price changed, refresh the cart")
	ErrPriceMismatch        = apperr.New(apperr.KindState, "price_mismatch", "order total does not match, refresh the cart")
	ErrIllegalTransition    = apperr.New(apperr.KindState, "illegal_status_transition", "status change not allowed")
	ErrAlreadyPaid          = apperr.New(apperr.KindState, "order_already_paid", "order is already paid")
	ErrCancelled            = apperr.New(apperr.KindState, "order_cancelled", "order is cancelled")
	ErrMissingReference     = apperr.New(apperr.KindValidation, "missing_payment_reference", "payment reference is required")
)

// InvalidItemError points at a malformed cart line.
type InvalidItemError struct {
	Index     int
	ProductID string
	Reason    string
}

func (e *InvalidItemError) Error() string {
	return fmt.Sprintf("item %d (%s): %s", e.Index, e.ProductID, e.Reason)
}

func (e *InvalidItemError) Unwrap() error { return ErrInvalidItem }

// Details implements apperr.Detailer.
func (e *InvalidItemError) Details() map[string]string {
	return map[string]string{"index": strconv.Itoa(e.Index), "productId": e.ProductID, "reason": e.Reason}
}

// ShippingError lists missing shipping fields.
type ShippingError struct {
	Missing []string
}

func (e *ShippingError) Error() string {
	return "shipping: missing " + strings.Join(e.Missing, ", ")
}

func (e *ShippingError) Unwrap() error { return ErrInvalidShipping }

// Details implements apperr.Detailer.
func (e *ShippingError) Details() map[string]string {
	return map[string]string{"missing": strings.Join(e.Missing, ",")}
}

// StalePriceError reports a client price that no longer matches the catalog.
type StalePriceError struct {
	ProductID string
	Submitted money.Money
	Current   money.Money
}

func (e *StalePriceError) Error() string {
	return fmt.Sprintf("product %s: submitted price %s, current price %s", e.ProductID, e.Submitted, e.Current)
}

func (e *StalePriceError) Unwrap() error { return ErrStalePrice }

// Details implements apperr.Detailer.
func (e *StalePriceError) Details() map[string]string {
	return map[string]string{
		"productId": e.ProductID,
		"submitted": e.Submitted.String(),
		"current":   e.Current.String(),
	}
}

// PriceMismatchError reports a client total outside the rounding tolerance.
type PriceMismatchError struct {
	Expected money.Money
	Computed money.Money
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("expected total %s, computed %s", e.Expected, e.Computed)
}

func (e *PriceMismatchError) Unwrap() error { return ErrPriceMismatch }

// Details implements apperr.Detailer.
func (e *PriceMismatchError) Details() map[string]string {
	return map[string]string{"expected": e.Expected.String(), "computed": e.Computed.String()}
}

// IllegalTransitionError names the rejected status change.
type IllegalTransitionError struct {
	From Status
	To   Status
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *IllegalTransitionError) Unwrap() error { return ErrIllegalTransition }

// Details implements apperr.Detailer.
func (e *IllegalTransitionError) Details() map[string]string {
	return map[string]string{"from": e.From.String(), "to": e.To.String()}
}
