package order

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/ledger"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

const instrumentation = "github.com/xenking/storefront-checkout/internal/domain/order"

// CartItem is a line as submitted by the checkout UI. UnitPrice is the
// price the client displayed; it is compared with the catalog, never used.
type CartItem struct {
	ProductID string
	Size      string
	Qty       int
	UnitPrice *money.Money
}

// PlaceOrderRequest holds the input for placing an order.
type PlaceOrderRequest struct {
	UserID        string
	Items         []CartItem
	DiscountCode  string
	ExpectedTotal *money.Money
	Shipping      ShippingInfo
	PaymentMethod PaymentMethod
}

// Quote is a server-side priced cart.
type Quote struct {
	Items    []LineItem
	Totals   pricing.Totals
	Currency string
	Discount *discount.Code
}

// DefaultPublishTimeout bounds event delivery when Deps.PublishTimeout is zero.
const DefaultPublishTimeout = 2 * time.Second

// Deps holds the collaborators of Service.
type Deps struct {
	Products   catalog.Repository
	Discounts  discount.Repository
	Orders     Repository
	Ledger     ledger.Ledger
	Transactor Transactor
	Calculator *pricing.Calculator
	Events     Publisher
	// Tolerance is the largest accepted difference between the client's
	// total and the computed one. Zero means half a minor unit.
	Tolerance money.Money
	// PublishTimeout bounds the delivery of one event after commit.
	// Defaults to DefaultPublishTimeout.
	PublishTimeout time.Duration
	TracerProvider trace.TracerProvider
	MeterProvider  metric.MeterProvider
}

// Service encapsulates checkout and order lifecycle logic.
type Service struct {
	products  catalog.Repository
	discounts discount.Repository
	validator *discount.Validator
	orders    Repository
	ledger    ledger.Ledger
	tx        Transactor
	calc      *pricing.Calculator
	events    Publisher
	tolerance money.Money

	publishTimeout time.Duration

	now   func() time.Time
	newID func() uuid.UUID

	tracer      trace.Tracer
	placed      metric.Int64Counter
	redemptions metric.Int64Counter
	failures    metric.Int64Counter
}

// NewService creates an order Service.
func NewService(d Deps) (*Service, error) {
	if d.Calculator == nil {
		return nil, errors.New("calculator is required")
	}
	if d.Events == nil {
		d.Events = NopPublisher{}
	}
	if d.TracerProvider == nil {
		d.TracerProvider = tracenoop.NewTracerProvider()
	}
	if d.MeterProvider == nil {
		d.MeterProvider = metricnoop.NewMeterProvider()
	}
	if d.PublishTimeout <= 0 {
		d.PublishTimeout = DefaultPublishTimeout
	}
	if d.Tolerance.IsZero() {
		d.Tolerance = d.Calculator.Policy().HalfUnit()
	}

	s := &Service{
		products:  d.Products,
		discounts: d.Discounts,
		validator: discount.NewValidator(d.Discounts),
		orders:    d.Orders,
		ledger:    d.Ledger,
		tx:        d.Transactor,
		calc:      d.Calculator,
		events:    d.Events,
		tolerance: d.Tolerance.Abs(),
		now:       time.Now,
		newID:     uuid.New,
		tracer:    d.TracerProvider.Tracer(instrumentation),

		publishTimeout: d.PublishTimeout,
	}

	meter := d.MeterProvider.Meter(instrumentation)
	var err error
	if s.placed, err = meter.Int64Counter("checkout.orders.placed",
		metric.WithDescription("Orders placed"),
	); err != nil {
		return nil, errors.Wrap(err, "orders counter")
	}
	if s.redemptions, err = meter.Int64Counter("checkout.discount.redemptions",
		metric.WithDescription("Discount codes redeemed at checkout"),
	); err != nil {
		return nil, errors.Wrap(err, "redemptions counter")
	}
	if s.failures, err = meter.Int64Counter("checkout.failures",
		metric.WithDescription("Failed checkout operations by error code"),
	); err != nil {
		return nil, errors.Wrap(err, "failures counter")
	}
	return s, nil
}

func (s *Service) start(ctx context.Context, op string) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "order."+op)
}

func (s *Service) finish(ctx context.Context, span trace.Span, op string, err error) {
	defer span.End()
	if err == nil {
		return
	}
	code := "internal"
	if e, ok := apperr.As(err); ok {
		code = e.Code
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, code)
	s.failures.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", op),
		attribute.String("code", code),
	))
}

// publish delivers e after its transaction committed. The order stands
// whatever happens here, so delivery is detached from the caller's
// cancellation and bounded by publishTimeout.
func (s *Service) publish(ctx context.Context, e Event) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
	defer cancel()
	if err := s.events.Publish(ctx, e); err != nil {
		zctx.From(ctx).Warn("Publish event",
			zap.String("type", string(e.Type)),
			zap.Stringer("order_id", e.Order.ID),
			zap.Error(err),
		)
	}
}

type stockKey struct {
	productID string
	size      string
}

// priceCart re-reads every product, checks the submitted prices and stock,
// validates the discount against the items total and prices the cart.
func (s *Service) priceCart(ctx context.Context, now time.Time, items []CartItem, code string) (*Quote, error) {
	if len(items) == 0 {
		return nil, ErrEmptyItems
	}

	ids := make([]string, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		switch {
		case it.ProductID == "":
			return nil, &InvalidItemError{Index: i, Reason: "product id is required"}
		case it.Size == "":
			return nil, &InvalidItemError{Index: i, ProductID: it.ProductID, Reason: "size is required"}
		case it.Qty <= 0:
			return nil, &InvalidItemError{Index: i, ProductID: it.ProductID, Reason: "quantity must be greater than 0"}
		}
		if _, ok := seen[it.ProductID]; !ok {
			seen[it.ProductID] = struct{}{}
			ids = append(ids, it.ProductID)
		}
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperr.Wrap(errors.Wrap(err, "get products"),
			apperr.KindDependency, "catalog_unavailable", "catalog lookup failed")
	}
	byID := make(map[string]catalog.Product, len(fetched))
	for _, p := range fetched {
		byID[p.ID] = p
	}

	q := &Quote{
		Items:    make([]LineItem, len(items)),
		Currency: s.calc.Policy().Currency,
	}
	lines := make([]pricing.Line, len(items))
	wanted := make(map[stockKey]int, len(items))
	itemsPrice := money.Zero
	for i, it := range items {
		p, ok := byID[it.ProductID]
		if !ok {
			return nil, &catalog.NotFoundError{ProductID: it.ProductID}
		}
		if it.UnitPrice != nil && !it.UnitPrice.Equal(p.Price) {
			return nil, &StalePriceError{ProductID: p.ID, Submitted: *it.UnitPrice, Current: p.Price}
		}
		if _, ok := p.Sizes[it.Size]; !ok {
			return nil, &InvalidItemError{Index: i, ProductID: p.ID, Reason: "unknown size " + it.Size}
		}
		key := stockKey{productID: p.ID, size: it.Size}
		wanted[key] += it.Qty
		if !p.InStock(it.Size, wanted[key]) {
			return nil, &catalog.InsufficientStockError{
				ProductID: p.ID,
				Size:      it.Size,
				Requested: wanted[key],
				Available: p.Sizes[it.Size],
			}
		}

		q.Items[i] = LineItem{ProductID: p.ID, Name: p.Name, UnitPrice: p.Price, Qty: it.Qty, Size: it.Size}
		lines[i] = pricing.Line{UnitPrice: p.Price, Qty: it.Qty}
		itemsPrice = itemsPrice.Add(q.Items[i].Subtotal())
	}

	var d *pricing.Discount
	if strings.TrimSpace(code) != "" {
		c, err := s.validator.Validate(ctx, code, now, itemsPrice)
		if err != nil {
			return nil, err
		}
		minimum := c.MinimumOrderAmount
		d = &pricing.Discount{Percentage: c.Percentage.Decimal(), MinimumOrderAmount: &minimum}
		q.Discount = c
	}

	if q.Totals, err = s.calc.ComputeTotals(lines, d); err != nil {
		return nil, err
	}
	return q, nil
}

// Quote prices a cart without side effects.
func (s *Service) Quote(ctx context.Context, items []CartItem, code string) (_ *Quote, rerr error) {
	ctx, span := s.start(ctx, "Quote")
	defer func() { s.finish(ctx, span, "quote", rerr) }()

	return s.priceCart(ctx, s.now(), items, code)
}

// ValidateDiscount checks a code against an order amount without side
// effects.
func (s *Service) ValidateDiscount(ctx context.Context, code string, orderAmount money.Money) (_ *discount.Code, rerr error) {
	ctx, span := s.start(ctx, "ValidateDiscount")
	defer func() { s.finish(ctx, span, "validate_discount", rerr) }()

	return s.validator.Validate(ctx, code, s.now(), orderAmount)
}

// PlaceOrder prices the cart from the catalog, compares the result with
// the client's total, then decrements stock, redeems the discount and
// persists the order as one unit. Any failure inside the unit, including a
// lost redemption race, rolls the whole order back.
func (s *Service) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (_ *Order, rerr error) {
	ctx, span := s.start(ctx, "PlaceOrder")
	defer func() { s.finish(ctx, span, "place_order", rerr) }()

	if req.UserID == "" {
		return nil, ErrUnauthenticated
	}
	method, err := ParsePaymentMethod(string(req.PaymentMethod))
	if err != nil {
		return nil, err
	}
	if err := req.Shipping.Validate(); err != nil {
		return nil, err
	}
	if req.ExpectedTotal == nil {
		return nil, ErrMissingTotal
	}

	now := s.now()
	q, err := s.priceCart(ctx, now, req.Items, req.DiscountCode)
	if err != nil {
		return nil, err
	}
	if diff := req.ExpectedTotal.Sub(q.Totals.TotalPrice).Abs(); s.tolerance.LessThan(diff) {
		return nil, &PriceMismatchError{Expected: *req.ExpectedTotal, Computed: q.Totals.TotalPrice}
	}

	o := &Order{
		ID:            s.newID(),
		UserID:        req.UserID,
		Items:         q.Items,
		Pricing:       q.Totals,
		Currency:      q.Currency,
		Shipping:      req.Shipping,
		PaymentMethod: method,
		Status:        StatusPlaced,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if q.Discount != nil {
		id := q.Discount.ID
		o.DiscountCodeID = &id
		o.DiscountCode = q.Discount.Code
	}
	span.SetAttributes(
		attribute.String("order.id", o.ID.String()),
		attribute.Int("order.items", len(o.Items)),
		attribute.String("order.discount_code", o.DiscountCode),
	)

	lg := zctx.From(ctx)
	if err := s.tx.InTx(ctx, func(ctx context.Context, tx Tx) error {
		for _, li := range o.Items {
			if err := tx.DecrementStock(ctx, li.ProductID, li.Size, li.Qty); err != nil {
				return errors.Wrapf(err, "decrement stock %s/%s", li.ProductID, li.Size)
			}
		}
		if o.DiscountCodeID != nil {
			if err := tx.Redeem(ctx, o.UserID, *o.DiscountCodeID, now); err != nil {
				lg.Warn("Discount redemption failed, rolling back order",
					zap.String("code", o.DiscountCode),
					zap.String("user_id", o.UserID),
					zap.Error(err),
				)
				return errors.Wrap(err, "redeem discount")
			}
		}
		if err := tx.Create(ctx, o); err != nil {
			return errors.Wrap(err, "create order")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.placed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("payment_method", string(o.PaymentMethod)),
		attribute.Bool("discounted", o.DiscountCodeID != nil),
	))
	if o.DiscountCodeID != nil {
		s.redemptions.Add(ctx, 1)
	}
	lg.Info("Order placed",
		zap.Stringer("order_id", o.ID),
		zap.String("user_id", o.UserID),
		zap.String("total", o.Pricing.TotalPrice.String()),
		zap.String("discount_code", o.DiscountCode),
	)
	s.publish(ctx, Event{Type: EventPlaced, Order: o, At: now})
	return o, nil
}

// MarkPaid records a payment processor confirmation. An order is paid at
// most once.
func (s *Service) MarkPaid(ctx context.Context, id uuid.UUID, p Payment) (_ *Order, rerr error) {
	ctx, span := s.start(ctx, "MarkPaid")
	defer func() { s.finish(ctx, span, "mark_paid", rerr) }()

	if p.Method != "" {
		m, err := ParsePaymentMethod(string(p.Method))
		if err != nil {
			return nil, err
		}
		p.Method = m
	}
	if p.Method == PaymentPayPal && p.Reference == "" {
		return nil, ErrMissingReference
	}

	now := s.now()
	o, err := s.orders.Update(ctx, id, func(o *Order) error {
		switch {
		case o.IsPaid:
			return ErrAlreadyPaid
		case o.Status == StatusCancelled:
			return ErrCancelled
		}
		if p.Method == "" {
			p.Method = o.PaymentMethod
		}
		if p.PaidAt.IsZero() {
			p.PaidAt = now
		}
		o.IsPaid = true
		o.Payment = &p
		o.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}

	zctx.From(ctx).Info("Order paid",
		zap.Stringer("order_id", o.ID),
		zap.String("method", string(p.Method)),
		zap.String("reference", p.Reference),
	)
	s.publish(ctx, Event{Type: EventPaid, Order: o, At: now})
	return o, nil
}

// UpdateStatus moves an order along its fulfilment state machine.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (_ *Order, rerr error) {
	ctx, span := s.start(ctx, "UpdateStatus")
	defer func() { s.finish(ctx, span, "update_status", rerr) }()

	now := s.now()
	var prev Status
	o, err := s.orders.Update(ctx, id, func(o *Order) error {
		if !o.Status.CanTransition(to) {
			return &IllegalTransitionError{From: o.Status, To: to}
		}
		prev = o.Status
		o.Status = to
		o.UpdatedAt = now
		if to == StatusDelivered {
			o.DeliveredAt = &now
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	zctx.From(ctx).Info("Order status changed",
		zap.Stringer("order_id", o.ID),
		zap.Stringer("from", prev),
		zap.Stringer("to", to),
	)
	s.publish(ctx, Event{Type: EventStatusChanged, Order: o, PreviousStatus: prev, At: now})
	return o, nil
}

// Get returns an order by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.orders.Get(ctx, id)
}

// GetForUser returns the order only if userID owns it. Orders of other
// users are reported as missing.
func (s *Service) GetForUser(ctx context.Context, userID string, id uuid.UUID) (*Order, error) {
	o, err := s.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, ErrNotFound
	}
	return o, nil
}

// ListByUser returns the user's orders, newest first.
func (s *Service) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.orders.ListByUser(ctx, userID)
}

// SaveCoupon stores the code in the user's wallet. The minimum order
// amount is not checked here; it applies at checkout.
func (s *Service) SaveCoupon(ctx context.Context, userID, code string) (_ *ledger.Coupon, rerr error) {
	ctx, span := s.start(ctx, "SaveCoupon")
	defer func() { s.finish(ctx, span, "save_coupon", rerr) }()

	if userID == "" {
		return nil, ErrUnauthenticated
	}
	normalized := discount.Normalize(code)
	c, err := s.discounts.FindByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, discount.ErrNotFound) {
			return nil, &discount.RejectionError{Code: normalized, Reason: discount.ErrNotFound}
		}
		return nil, errors.Wrap(err, "lookup discount")
	}
	now := s.now()
	if err := c.Check(now, c.MinimumOrderAmount); err != nil {
		return nil, err
	}
	return s.ledger.Save(ctx, userID, c.ID, now)
}

// Coupons lists the user's saved and redeemed coupons.
func (s *Service) Coupons(ctx context.Context, userID string) ([]ledger.Coupon, error) {
	if userID == "" {
		return nil, ErrUnauthenticated
	}
	return s.ledger.Coupons(ctx, userID)
}
