package order

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

// Status is the fulfilment state of an order.
type Status uint8

const (
	StatusPlaced Status = iota + 1
	StatusPacking
	StatusShipped
	StatusOutForDelivery
	StatusDelivered
	StatusCancelled
)

var statusNames = map[Status]string{
	StatusPlaced:         "placed",
	StatusPacking:        "packing",
	StatusShipped:        "shipped",
	StatusOutForDelivery: "out_for_delivery",
	StatusDelivered:      "delivered",
	StatusCancelled:      "cancelled",
}

// transitions lists the legal next states. Delivered and Cancelled are
// terminal.
var transitions = map[Status][]Status{
	StatusPlaced:         {StatusPacking, StatusCancelled},
	StatusPacking:        {StatusShipped, StatusCancelled},
	StatusShipped:        {StatusOutForDelivery},
	StatusOutForDelivery: {StatusDelivered},
}

func (s Status) String() string {
	if n, ok := statusNames[s]; ok {
		return n
	}
	return "unknown"
}

// ParseStatus parses the wire name of a status.
func ParseStatus(s string) (Status, error) {
	for st, name := range statusNames {
		if name == s {
			return st, nil
		}
	}
	return 0, apperr.New(apperr.KindValidation, "invalid_status", "unknown order status "+s)
}

// CanTransition reports whether s may move to next.
func (s Status) CanTransition(next Status) bool {
	for _, t := range transitions[s] {
		if t == next {
			return true
		}
	}
	return false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCOD    PaymentMethod = "cod"
	PaymentPayPal PaymentMethod = "paypal"
)

// ParsePaymentMethod validates a wire payment method.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch m := PaymentMethod(strings.ToLower(s)); m {
	case PaymentCOD, PaymentPayPal:
		return m, nil
	}
	return "", ErrInvalidPaymentMethod
}

// LineItem is a priced cart entry copied into the order, so later catalog
// changes never alter a placed order.
type LineItem struct {
	ProductID string
	Name      string
	UnitPrice money.Money
	Qty       int
	Size      string
}

// Subtotal returns UnitPrice * Qty.
func (li LineItem) Subtotal() money.Money { return li.UnitPrice.MulInt(li.Qty) }

// ShippingInfo is where the order goes.
type ShippingInfo struct {
	FullName   string
	Phone      string
	Address    string
	City       string
	PostalCode string
	Country    string
}

// Validate checks the fields the courier needs.
func (s ShippingInfo) Validate() error {
	var missing []string
	for _, f := range []struct{ name, value string }{
		{"fullName", s.FullName},
		{"phone", s.Phone},
		{"address", s.Address},
		{"city", s.City},
		{"country", s.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &ShippingError{Missing: missing}
	}
	return nil
}

// Payment is the processor's confirmation.
type Payment struct {
	Method     PaymentMethod
	Reference  string
	PayerEmail string
	PaidAt     time.Time
}

// Order is a placed order with its immutable pricing snapshot.
type Order struct {
	ID             uuid.UUID
	UserID         string
	Items          []LineItem
	Pricing        pricing.Totals
	Currency       string
	DiscountCodeID *uuid.UUID
	DiscountCode   string
	Shipping       ShippingInfo
	PaymentMethod  PaymentMethod
	Status         Status
	IsPaid         bool
	Payment        *Payment
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeliveredAt    *time.Time
}

// Repository reads and mutates placed orders.
type Repository interface {
	Get(ctx context.Context, id uuid.UUID) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	// Update loads the order, applies fn and stores the result without
	// interleaving with other updates of the same order.
	Update(ctx context.Context, id uuid.UUID, fn func(o *Order) error) (*Order, error)
}

// Tx is the set of writes made while finalizing a checkout.
type Tx interface {
	catalog.Inventory
	Redeem(ctx context.Context, userID string, codeID uuid.UUID, at time.Time) error
	Create(ctx context.Context, o *Order) error
}

// Transactor runs fn as one unit: if fn returns an error, none of the
// writes made through tx remain visible.
type Transactor interface {
	InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}
