package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/ledger"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
)

// --- Fakes ---

// fakeStore keeps every collaborator in one place so a transaction can
// apply its buffered writes atomically.
type fakeStore struct {
	mu        sync.Mutex
	products  map[string]catalog.Product
	codes     map[string]*discount.Code
	coupons   map[string]*ledger.Coupon
	orders    map[uuid.UUID]*Order
	getErr    error
	createErr error
}

func newFakeStore(products ...catalog.Product) *fakeStore {
	s := &fakeStore{
		products: make(map[string]catalog.Product),
		codes:    make(map[string]*discount.Code),
		coupons:  make(map[string]*ledger.Coupon),
		orders:   make(map[uuid.UUID]*Order),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeStore) stock(productID, size string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[productID].Sizes[size]
}

func (s *fakeStore) List(context.Context) ([]catalog.Product, error) { return nil, nil }

func (s *fakeStore) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return &p, nil
}

func (s *fakeStore) GetByIDs(_ context.Context, ids []string) ([]catalog.Product, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []catalog.Product
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			sizes := make(map[string]int, len(p.Sizes))
			for k, v := range p.Sizes {
				sizes[k] = v
			}
			p.Sizes = sizes
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeStore) FindByCode(_ context.Context, code string) (*discount.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.codes[code]
	if !ok {
		return nil, discount.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*discount.Code, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.codes {
		if c.ID == id {
			cp := *c
			return &cp, nil
		}
	}
	return nil, discount.ErrNotFound
}

func (s *fakeStore) Save(_ context.Context, userID string, codeID uuid.UUID, at time.Time) (*ledger.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := userID + "/" + codeID.String()
	if c, ok := s.coupons[key]; ok {
		return c, nil
	}
	c := &ledger.Coupon{UserID: userID, DiscountCodeID: codeID, SavedAt: at}
	s.coupons[key] = c
	return c, nil
}

func (s *fakeStore) Redeem(context.Context, string, uuid.UUID, time.Time) error {
	return errors.New("redeem outside transaction")
}

func (s *fakeStore) Coupons(_ context.Context, userID string) ([]ledger.Coupon, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []ledger.Coupon
	for _, c := range s.coupons {
		if c.UserID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *fakeStore) Get(_ context.Context, id uuid.UUID) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *fakeStore) ListByUser(_ context.Context, userID string) ([]Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Order
	for _, o := range s.orders {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(_ context.Context, id uuid.UUID, fn func(o *Order) error) (*Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	if err := fn(&cp); err != nil {
		return nil, err
	}
	s.orders[id] = &cp
	out := cp
	return &out, nil
}

// InTx serializes transactions and applies buffered writes on success.
func (s *fakeStore) InTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := &fakeTx{s: s, stock: map[stockKey]int{}, used: map[string]bool{}, counts: map[uuid.UUID]int{}}
	if err := fn(ctx, tx); err != nil {
		return err
	}
	for k, n := range tx.stock {
		s.products[k.productID].Sizes[k.size] -= n
	}
	for key := range tx.used {
		c, ok := s.coupons[key]
		if !ok {
			c = &ledger.Coupon{}
			s.coupons[key] = c
		}
		c.IsUsed = true
	}
	for id, n := range tx.counts {
		for _, c := range s.codes {
			if c.ID == id {
				c.UsedCount += n
			}
		}
	}
	for _, o := range tx.created {
		s.orders[o.ID] = o
	}
	return nil
}

type fakeTx struct {
	s       *fakeStore
	stock   map[stockKey]int
	used    map[string]bool
	counts  map[uuid.UUID]int
	created []*Order
}

func (t *fakeTx) DecrementStock(_ context.Context, productID, size string, qty int) error {
	k := stockKey{productID: productID, size: size}
	available := t.s.products[productID].Sizes[size] - t.stock[k]
	if available < qty {
		return &catalog.InsufficientStockError{ProductID: productID, Size: size, Requested: qty, Available: available}
	}
	t.stock[k] += qty
	return nil
}

func (t *fakeTx) Redeem(_ context.Context, userID string, codeID uuid.UUID, _ time.Time) error {
	key := userID + "/" + codeID.String()
	if c, ok := t.s.coupons[key]; (ok && c.IsUsed) || t.used[key] {
		return ledger.ErrAlreadyRedeemed
	}
	for _, c := range t.s.codes {
		if c.ID == codeID {
			if c.UsedCount+t.counts[codeID] >= c.UsageLimit {
				return ledger.ErrLimitReached
			}
			t.used[key] = true
			t.counts[codeID]++
			return nil
		}
	}
	return ledger.ErrNotFound
}

func (t *fakeTx) Create(_ context.Context, o *Order) error {
	if t.s.createErr != nil {
		return t.s.createErr
	}
	t.created = append(t.created, o)
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

// stalledPublisher blocks until its context ends, like a writer facing an
// unreachable broker.
type stalledPublisher struct {
	deadline chan time.Time
}

func (p *stalledPublisher) Publish(ctx context.Context, _ Event) error {
	d, _ := ctx.Deadline()
	p.deadline <- d
	<-ctx.Done()
	return ctx.Err()
}

// --- Helpers ---

var fixedNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func tee() catalog.Product {
	return catalog.Product{
		ID:       "tee",
		Name:     "Basic Tee",
		Price:    money.New(250000),
		Category: "shirts",
		Sizes:    map[string]int{"M": 5, "L": 1},
	}
}

func jacket() catalog.Product {
	return catalog.Product{
		ID:       "jacket",
		Name:     "Rain Jacket",
		Price:    money.New(400000),
		Category: "outerwear",
		Sizes:    map[string]int{"M": 10},
	}
}

func sale10(usedCount, limit int) *discount.Code {
	return &discount.Code{
		ID:                 uuid.MustParse("0d9b8a0c-6a55-4c1b-8f53-2f6f0c6b6d10"),
		Code:               "SALE10",
		Percentage:         money.MustPercentage(10),
		StartDate:          fixedNow.Add(-24 * time.Hour),
		EndDate:            fixedNow.Add(24 * time.Hour),
		UsageLimit:         limit,
		UsedCount:          usedCount,
		MinimumOrderAmount: money.New(100000),
		IsActive:           true,
	}
}

func newTestService(t *testing.T, store *fakeStore, pub Publisher) *Service {
	t.Helper()
	calc, err := pricing.NewCalculator(money.VND, pricing.ShippingPolicy{
		FreeThreshold: money.New(1000000),
		FlatRate:      money.New(30000),
	})
	require.NoError(t, err)

	svc, err := NewService(Deps{
		Products:   store,
		Discounts:  store,
		Orders:     store,
		Ledger:     store,
		Transactor: store,
		Calculator: calc,
		Events:     pub,
	})
	require.NoError(t, err)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func shipping() ShippingInfo {
	return ShippingInfo{FullName: "Lan Nguyen", Phone: "0901234567", Address: "12 Le Loi", City: "Hanoi", Country: "VN"}
}

func total(v int64) *money.Money {
	m := money.New(v)
	return &m
}

func placeReq(items []CartItem, code string, expected int64) PlaceOrderRequest {
	return PlaceOrderRequest{
		UserID:        "user-1",
		Items:         items,
		DiscountCode:  code,
		ExpectedTotal: total(expected),
		Shipping:      shipping(),
		PaymentMethod: PaymentCOD,
	}
}

// --- Tests ---

func TestPlaceOrder_WithDiscount(t *testing.T) {
	store := newFakeStore(tee())
	store.codes["SALE10"] = sale10(0, 5)
	pub := &recordingPublisher{}
	svc := newTestService(t, store, pub)

	o, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 2, UnitPrice: total(250000)}},
		"sale10", 480000,
	))
	require.NoError(t, err)

	assert.True(t, money.New(500000).Equal(o.Pricing.ItemsPrice))
	assert.True(t, money.New(50000).Equal(o.Pricing.DiscountAmount))
	assert.True(t, money.New(30000).Equal(o.Pricing.ShippingPrice))
	assert.True(t, money.New(480000).Equal(o.Pricing.TotalPrice))
	assert.Equal(t, "SALE10", o.DiscountCode)
	assert.Equal(t, StatusPlaced, o.Status)
	assert.Equal(t, "VND", o.Currency)
	assert.Equal(t, "Basic Tee", o.Items[0].Name)

	assert.Equal(t, 3, store.stock("tee", "M"))
	assert.Equal(t, 1, store.codes["SALE10"].UsedCount)
	require.Len(t, pub.events, 1)
	assert.Equal(t, EventPlaced, pub.events[0].Type)

	stored, err := svc.GetForUser(context.Background(), "user-1", o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.ID, stored.ID)
}

func TestPlaceOrder_FreeShippingNoDiscount(t *testing.T) {
	store := newFakeStore(tee(), jacket())
	svc := newTestService(t, store, nil)

	o, err := svc.PlaceOrder(context.Background(), placeReq([]CartItem{
		{ProductID: "jacket", Size: "M", Qty: 2},
		{ProductID: "tee", Size: "M", Qty: 1},
		{ProductID: "tee", Size: "L", Qty: 1},
	}, "", 1300000))
	require.NoError(t, err)

	assert.True(t, o.Pricing.ShippingPrice.IsZero())
	assert.True(t, money.New(1300000).Equal(o.Pricing.TotalPrice))
	assert.Nil(t, o.DiscountCodeID)
}

func TestPlaceOrder_LimitReachedAppliesNoDiscount(t *testing.T) {
	store := newFakeStore(tee())
	store.codes["SALE10"] = sale10(5, 5)
	svc := newTestService(t, store, nil)

	_, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 2}}, "SALE10", 480000,
	))
	require.ErrorIs(t, err, discount.ErrLimitReached)
	assert.Equal(t, 5, store.stock("tee", "M"))
	assert.Empty(t, store.orders)

	// Without the code the same cart goes through at full price.
	o, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 2}}, "", 530000,
	))
	require.NoError(t, err)
	assert.True(t, o.Pricing.DiscountAmount.IsZero())
}

func TestPlaceOrder_Validation(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)

	tests := []struct {
		name    string
		mutate  func(r *PlaceOrderRequest)
		wantErr error
	}{
		{name: "empty cart", mutate: func(r *PlaceOrderRequest) { r.Items = nil }, wantErr: ErrEmptyItems},
		{name: "zero quantity", mutate: func(r *PlaceOrderRequest) { r.Items[0].Qty = 0 }, wantErr: ErrInvalidItem},
		{name: "missing size", mutate: func(r *PlaceOrderRequest) { r.Items[0].Size = "" }, wantErr: ErrInvalidItem},
		{name: "unknown size", mutate: func(r *PlaceOrderRequest) { r.Items[0].Size = "XXL" }, wantErr: ErrInvalidItem},
		{name: "unknown product", mutate: func(r *PlaceOrderRequest) { r.Items[0].ProductID = "ghost" }, wantErr: catalog.ErrNotFound},
		{name: "no user", mutate: func(r *PlaceOrderRequest) { r.UserID = "" }, wantErr: ErrUnauthenticated},
		{name: "bad payment method", mutate: func(r *PlaceOrderRequest) { r.PaymentMethod = "card" }, wantErr: ErrInvalidPaymentMethod},
		{name: "no address", mutate: func(r *PlaceOrderRequest) { r.Shipping.Address = " " }, wantErr: ErrInvalidShipping},
		{name: "no expected total", mutate: func(r *PlaceOrderRequest) { r.ExpectedTotal = nil }, wantErr: ErrMissingTotal},
		{name: "unknown discount", mutate: func(r *PlaceOrderRequest) { r.DiscountCode = "NOPE" }, wantErr: discount.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := placeReq([]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 280000)
			tt.mutate(&req)

			_, err := svc.PlaceOrder(context.Background(), req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, apperr.KindOf(tt.wantErr), apperr.KindOf(err))
		})
	}
	assert.Empty(t, store.orders)
}

func TestPlaceOrder_StalePrice(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)

	_, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1, UnitPrice: total(200000)}}, "", 230000,
	))

	var stale *StalePriceError
	require.ErrorAs(t, err, &stale)
	assert.Equal(t, "tee", stale.ProductID)
	assert.Equal(t, "250000", stale.Current.String())
	assert.Equal(t, apperr.KindState, apperr.KindOf(err))
}

func TestPlaceOrder_PriceMismatch(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)

	_, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 250000,
	))

	var mismatch *PriceMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "280000", mismatch.Computed.String())
	assert.Equal(t, 5, store.stock("tee", "M"))
}

func TestPlaceOrder_InsufficientStock(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)

	// Two lines for the same bucket are summed before checking.
	_, err := svc.PlaceOrder(context.Background(), placeReq([]CartItem{
		{ProductID: "tee", Size: "L", Qty: 1},
		{ProductID: "tee", Size: "L", Qty: 1},
	}, "", 530000))

	var stock *catalog.InsufficientStockError
	require.ErrorAs(t, err, &stock)
	assert.Equal(t, 2, stock.Requested)
	assert.Equal(t, 1, stock.Available)
}

func TestPlaceOrder_RedeemFailureRollsBack(t *testing.T) {
	store := newFakeStore(tee())
	code := sale10(0, 5)
	store.codes["SALE10"] = code
	store.coupons["user-1/"+code.ID.String()] = &ledger.Coupon{UserID: "user-1", DiscountCodeID: code.ID, IsUsed: true}
	svc := newTestService(t, store, nil)

	_, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 2}}, "SALE10", 480000,
	))
	require.ErrorIs(t, err, ledger.ErrAlreadyRedeemed)
	assert.Contains(t, err.Error(), "redeem discount")

	assert.Equal(t, 5, store.stock("tee", "M"))
	assert.Equal(t, 0, store.codes["SALE10"].UsedCount)
	assert.Empty(t, store.orders)
}

func TestPlaceOrder_CreateFailureRollsBack(t *testing.T) {
	store := newFakeStore(tee())
	store.codes["SALE10"] = sale10(0, 5)
	store.createErr = errors.New("db write failed")
	svc := newTestService(t, store, nil)

	_, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 2}}, "SALE10", 480000,
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create order")
	assert.Equal(t, apperr.KindInternal, apperr.KindOf(err))
	assert.Equal(t, 5, store.stock("tee", "M"))
	assert.Equal(t, 0, store.codes["SALE10"].UsedCount)
}

func TestPlaceOrder_CatalogUnavailable(t *testing.T) {
	store := newFakeStore(tee())
	store.getErr = errors.New("connection refused")
	svc := newTestService(t, store, nil)

	_, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 280000,
	))
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))
}

func TestPlaceOrder_PublishFailureKeepsOrder(t *testing.T) {
	store := newFakeStore(tee())
	pub := &recordingPublisher{err: errors.New("broker down")}
	svc := newTestService(t, store, pub)

	o, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 280000,
	))
	require.NoError(t, err)
	assert.Contains(t, store.orders, o.ID)
}

func TestPlaceOrder_StalledBrokerIsBounded(t *testing.T) {
	store := newFakeStore(tee())
	pub := &stalledPublisher{deadline: make(chan time.Time, 1)}
	svc := newTestService(t, store, pub)
	svc.publishTimeout = 50 * time.Millisecond

	// A canceled request must not abort delivery of a committed order's event.
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	o, err := svc.PlaceOrder(ctx, placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 280000,
	))
	require.NoError(t, err)
	assert.Contains(t, store.orders, o.ID)
	assert.Less(t, time.Since(start), 2*time.Second)

	deadline := <-pub.deadline
	assert.False(t, deadline.IsZero())
	assert.WithinDuration(t, start.Add(50*time.Millisecond), deadline, time.Second)
}

func TestNewService_DefaultPublishTimeout(t *testing.T) {
	svc := newTestService(t, newFakeStore(), nil)
	assert.Equal(t, DefaultPublishTimeout, svc.publishTimeout)
}

func TestPlaceOrder_ConcurrentLastUnit(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)

	const n = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := placeReq([]CartItem{{ProductID: "tee", Size: "L", Qty: 1}}, "", 280000)
			req.UserID = uuid.NewString()
			if _, err := svc.PlaceOrder(context.Background(), req); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, catalog.ErrInsufficientStock)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, 0, store.stock("tee", "L"))
}

func TestQuote(t *testing.T) {
	store := newFakeStore(tee())
	store.codes["SALE10"] = sale10(0, 5)
	svc := newTestService(t, store, nil)

	q, err := svc.Quote(context.Background(), []CartItem{{ProductID: "tee", Size: "M", Qty: 2}}, "SALE10")
	require.NoError(t, err)
	assert.True(t, money.New(480000).Equal(q.Totals.TotalPrice))
	require.NotNil(t, q.Discount)
	assert.Equal(t, "SALE10", q.Discount.Code)

	// Quotes have no side effects.
	assert.Equal(t, 5, store.stock("tee", "M"))
	assert.Equal(t, 0, store.codes["SALE10"].UsedCount)
}

func TestValidateDiscount(t *testing.T) {
	store := newFakeStore()
	store.codes["SALE10"] = sale10(0, 5)
	svc := newTestService(t, store, nil)

	_, err := svc.ValidateDiscount(context.Background(), "sale10", money.New(99999))
	require.ErrorIs(t, err, discount.ErrBelowMinimum)

	c, err := svc.ValidateDiscount(context.Background(), "sale10", money.New(100000))
	require.NoError(t, err)
	assert.Equal(t, "SALE10", c.Code)
}

func placedOrder(t *testing.T, svc *Service) *Order {
	t.Helper()
	o, err := svc.PlaceOrder(context.Background(), placeReq(
		[]CartItem{{ProductID: "tee", Size: "M", Qty: 1}}, "", 280000,
	))
	require.NoError(t, err)
	return o
}

func TestMarkPaid(t *testing.T) {
	store := newFakeStore(tee())
	pub := &recordingPublisher{}
	svc := newTestService(t, store, pub)
	o := placedOrder(t, svc)

	paid, err := svc.MarkPaid(context.Background(), o.ID, Payment{Method: PaymentPayPal, Reference: "PAY-1", PayerEmail: "lan@example.com"})
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	require.NotNil(t, paid.Payment)
	assert.Equal(t, fixedNow, paid.Payment.PaidAt)

	_, err = svc.MarkPaid(context.Background(), o.ID, Payment{Method: PaymentPayPal, Reference: "PAY-2"})
	require.ErrorIs(t, err, ErrAlreadyPaid)

	_, err = svc.MarkPaid(context.Background(), o.ID, Payment{Method: PaymentPayPal})
	require.ErrorIs(t, err, ErrMissingReference)

	_, err = svc.MarkPaid(context.Background(), uuid.New(), Payment{})
	require.ErrorIs(t, err, ErrNotFound)

	require.Len(t, pub.events, 2)
	assert.Equal(t, EventPaid, pub.events[1].Type)
}

func TestMarkPaid_Cancelled(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)
	o := placedOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), o.ID, StatusCancelled)
	require.NoError(t, err)

	_, err = svc.MarkPaid(context.Background(), o.ID, Payment{})
	require.ErrorIs(t, err, ErrCancelled)
}

func TestUpdateStatus(t *testing.T) {
	store := newFakeStore(tee())
	pub := &recordingPublisher{}
	svc := newTestService(t, store, pub)
	o := placedOrder(t, svc)

	_, err := svc.UpdateStatus(context.Background(), o.ID, StatusShipped)
	var illegal *IllegalTransitionError
	require.ErrorAs(t, err, &illegal)
	assert.Equal(t, StatusPlaced, illegal.From)

	for _, next := range []Status{StatusPacking, StatusShipped, StatusOutForDelivery, StatusDelivered} {
		updated, err := svc.UpdateStatus(context.Background(), o.ID, next)
		require.NoError(t, err)
		assert.Equal(t, next, updated.Status)
	}

	stored, err := svc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DeliveredAt)

	_, err = svc.UpdateStatus(context.Background(), o.ID, StatusCancelled)
	require.ErrorIs(t, err, ErrIllegalTransition)

	last := pub.events[len(pub.events)-1]
	assert.Equal(t, EventStatusChanged, last.Type)
	assert.Equal(t, StatusOutForDelivery, last.PreviousStatus)
}

func TestGetForUser_OtherUser(t *testing.T) {
	store := newFakeStore(tee())
	svc := newTestService(t, store, nil)
	o := placedOrder(t, svc)

	_, err := svc.GetForUser(context.Background(), "intruder", o.ID)
	require.ErrorIs(t, err, ErrNotFound)

	list, err := svc.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestSaveCoupon(t *testing.T) {
	store := newFakeStore()
	store.codes["SALE10"] = sale10(0, 5)
	svc := newTestService(t, store, nil)

	c, err := svc.SaveCoupon(context.Background(), "user-1", " sale10")
	require.NoError(t, err)
	assert.Equal(t, ledger.StateSaved, c.State())

	again, err := svc.SaveCoupon(context.Background(), "user-1", "SALE10")
	require.NoError(t, err)
	assert.Equal(t, c.SavedAt, again.SavedAt)

	list, err := svc.Coupons(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = svc.SaveCoupon(context.Background(), "user-1", "NOPE")
	require.ErrorIs(t, err, discount.ErrNotFound)

	store.codes["SALE10"].IsActive = false
	_, err = svc.SaveCoupon(context.Background(), "user-2", "SALE10")
	require.ErrorIs(t, err, discount.ErrInactive)
}

func TestStatus(t *testing.T) {
	for st, name := range statusNames {
		parsed, err := ParseStatus(name)
		require.NoError(t, err)
		assert.Equal(t, st, parsed)
	}
	_, err := ParseStatus("lost")
	require.Error(t, err)

	assert.True(t, StatusPacking.CanTransition(StatusCancelled))
	assert.False(t, StatusShipped.CanTransition(StatusCancelled))
	assert.False(t, StatusDelivered.CanTransition(StatusPlaced))
	assert.False(t, StatusCancelled.CanTransition(StatusPlaced))
}
