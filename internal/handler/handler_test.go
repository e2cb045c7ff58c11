package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/ogen-go/ogen/ogenerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/apperr"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
	"github.com/xenking/storefront-checkout/internal/domain/catalog"
	"github.com/xenking/storefront-checkout/internal/domain/discount"
	"github.com/xenking/storefront-checkout/internal/domain/money"
	"github.com/xenking/storefront-checkout/internal/domain/order"
	"github.com/xenking/storefront-checkout/internal/domain/pricing"
	"github.com/xenking/storefront-checkout/internal/storage/memory"
)

var testPepper = []byte("pepper")

type fakeKeys map[string]*auth.APIKeyInfo

func (f fakeKeys) FindByHash(_ context.Context, hash string) (*auth.APIKeyInfo, error) {
	k, ok := f[hash]
	if !ok {
		return nil, auth.ErrUnauthorized
	}
	return k, nil
}

type brokenKeys struct{}

func (brokenKeys) FindByHash(context.Context, string) (*auth.APIKeyInfo, error) {
	return nil, errors.New("dial tcp 10.0.0.5:5432: connection refused")
}

func (f fakeKeys) add(key, name string, scopes ...string) {
	hash := auth.HashAPIKey(key, testPepper)
	f[hash] = &auth.APIKeyInfo{ID: name, KeyHash: hash, Name: name, Scopes: scopes}
}

type testServer struct {
	srv    *oas.Server
	tokens *auth.TokenIssuer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctx := context.Background()
	store := memory.New()
	require.NoError(t, store.UpsertProduct(ctx, catalog.Product{
		ID:    "tee",
		Name:  "Linen Tee",
		Price: money.New(400_000),
		Image: catalog.Image{Thumbnail: "/img/tee.jpg"},
		Sizes: map[string]int{"M": 5},
	}))
	now := time.Now()
	require.NoError(t, store.UpsertDiscount(ctx, &discount.Code{
		Code:               "SAVE10",
		Percentage:         money.MustPercentage(10),
		StartDate:          now.Add(-time.Hour),
		EndDate:            now.Add(24 * time.Hour),
		UsageLimit:         1,
		MinimumOrderAmount: money.New(500_000),
		IsActive:           true,
	}))

	calc, err := pricing.NewCalculator(money.VND, pricing.ShippingPolicy{
		FreeThreshold: money.New(1_000_000),
		FlatRate:      money.New(30_000),
	})
	require.NoError(t, err)
	svc, err := order.NewService(order.Deps{
		Products:   store,
		Discounts:  store,
		Orders:     store,
		Ledger:     store,
		Transactor: store,
		Calculator: calc,
	})
	require.NoError(t, err)

	tokens, err := auth.NewTokenIssuer([]byte("secret"), time.Hour)
	require.NoError(t, err)

	keys := fakeKeys{}
	keys.add("ops-key", "ops", auth.ScopeOrdersWrite, auth.ScopeOrdersRead)
	keys.add("ro-key", "readonly", auth.ScopeOrdersRead)

	h := New(Config{ImageBaseURL: "https://cdn.example.com"}, store, svc, money.VND)
	srv, err := NewServer(h, NewSecurityHandler(tokens, keys, testPepper))
	require.NoError(t, err)
	return &testServer{srv: srv, tokens: tokens}
}

type call struct {
	method, path, body string
	user               string
	apiKey             string
}

func (s *testServer) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	if c.body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.user != "" {
		token, err := s.tokens.Issue(c.user)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if c.apiKey != "" {
		req.Header.Set(APIKeyHeader, c.apiKey)
	}
	w := httptest.NewRecorder()
	s.srv.ServeHTTP(w, req)
	return w
}

func decode[T any, P interface {
	*T
	UnmarshalJSON([]byte) error
}](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, P(&v).UnmarshalJSON(w.Body.Bytes()), w.Body.String())
	return v
}

func errorOf(t *testing.T, w *httptest.ResponseRecorder) oas.Error {
	t.Helper()
	return decode[oas.Error](t, w)
}

func arrayLen(t *testing.T, body []byte) int {
	t.Helper()
	n := 0
	require.NoError(t, jx.DecodeBytes(body).Arr(func(d *jx.Decoder) error {
		n++
		return d.Skip()
	}))
	return n
}

const placeBody = `{
	"items": [{"productId": "tee", "size": "M", "qty": 2}],
	"discountCode": "save10",
	"expectedTotal": 750000,
	"paymentMethod": "cod",
	"shipping": {"fullName": "An Nguyen", "phone": "0900000000", "address": "1 Le Loi",
		"city": "HCMC", "postalCode": "700000", "country": "VN"}
}`

func placeOrder(t *testing.T, s *testServer, user string) string {
	t.Helper()
	w := s.do(t, call{method: http.MethodPost, path: "/api/orders", body: placeBody, user: user})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[oas.Order](t, w).ID
}

func TestProducts(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, call{method: http.MethodGet, path: "/api/products"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, arrayLen(t, w.Body.Bytes()))
	assert.Contains(t, w.Body.String(), "https://cdn.example.com/img/tee.jpg")

	w = s.do(t, call{method: http.MethodGet, path: "/api/products/tee"})
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[oas.Product](t, w)
	assert.Equal(t, 400000.0, p.Price)
	require.Len(t, p.Sizes, 1)
	assert.Equal(t, oas.SizeStock{Size: "M", Stock: 5}, p.Sizes[0])

	w = s.do(t, call{method: http.MethodGet, path: "/api/products/nope"})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "product_not_found", errorOf(t, w).Code)
}

func TestValidateDiscount(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, call{method: http.MethodPost, path: "/api/discounts/validate",
		body: `{"code": " save10 ", "orderAmount": 800000}`})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	v := decode[oas.DiscountValidation](t, w)
	assert.True(t, v.Valid)
	assert.Equal(t, "SAVE10", v.Discount.Code)
	assert.Equal(t, 1, v.Discount.RemainingUses)

	w = s.do(t, call{method: http.MethodPost, path: "/api/discounts/validate",
		body: `{"code": "SAVE10", "orderAmount": 100000}`})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "discount_below_minimum", errorOf(t, w).Code)
	assert.Contains(t, w.Body.String(), "500000")

	w = s.do(t, call{method: http.MethodPost, path: "/api/discounts/validate",
		body: `{"code": "GHOST", "orderAmount": 100000}`})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestQuote(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, call{method: http.MethodPost, path: "/api/checkout/quote",
		body: `{"items": [{"productId": "tee", "size": "M", "qty": 2}], "discountCode": "SAVE10"}`})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	q := decode[oas.Quote](t, w)
	assert.Equal(t, 800000.0, q.ItemsPrice)
	assert.Equal(t, 80000.0, q.DiscountAmount)
	assert.Equal(t, 30000.0, q.ShippingPrice)
	assert.Equal(t, 750000.0, q.TotalPrice)
	assert.Equal(t, "VND", q.Currency)
	assert.True(t, q.Discount.IsSet())

	w = s.do(t, call{method: http.MethodPost, path: "/api/checkout/quote",
		body: `{"items": [{"productId": "tee", "size": "M", "qty": 9}]}`})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "insufficient_stock", errorOf(t, w).Code)
}

func TestMalformedBody(t *testing.T) {
	s := newTestServer(t)

	for _, tc := range []struct {
		name, path, body string
	}{
		{"truncated", "/api/checkout/quote", `{"items": [`},
		{"fractional qty", "/api/checkout/quote", `{"items": [{"productId": "tee", "size": "M", "qty": 1.5}]}`},
		{"amount as text", "/api/discounts/validate", `{"code": "X", "orderAmount": "abc"}`},
		{"unit price as bool", "/api/checkout/quote",
			`{"items": [{"productId": "tee", "size": "M", "qty": 1, "unitPrice": true}]}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := s.do(t, call{method: http.MethodPost, path: tc.path, body: tc.body})
			require.Equal(t, http.StatusBadRequest, w.Code)
			e := errorOf(t, w)
			assert.Equal(t, "invalid_body", e.Code)
			assert.Equal(t, "request body is malformed", e.Message)
			assert.NotContains(t, w.Body.String(), "abc")
			assert.NotContains(t, w.Body.String(), "decode")
		})
	}
}

func TestMissingFieldIsNamed(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, call{method: http.MethodPost, path: "/api/checkout/quote", body: `{"discountCode": "SAVE10"}`})
	require.Equal(t, http.StatusBadRequest, w.Code)
	e := errorOf(t, w)
	assert.Equal(t, "request body is malformed", e.Message)
	details, ok := e.Details.Get()
	require.True(t, ok)
	assert.Equal(t, oas.ErrorDetails{"field.items": "invalid"}, details)
}

func TestPlaceOrder(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, call{method: http.MethodPost, path: "/api/orders", body: placeBody})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "unauthorized", errorOf(t, w).Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/orders",
		body: strings.Replace(placeBody, "750000", "700000", 1), user: "alice"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "price_mismatch", errorOf(t, w).Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/orders", body: placeBody, user: "alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	o := decode[oas.Order](t, w)
	assert.Equal(t, "placed", o.Status)
	assert.Equal(t, oas.NewOptString("SAVE10"), o.DiscountCode)
	assert.Equal(t, 750000.0, o.TotalPrice)
	assert.Equal(t, "alice", o.UserId)

	// The single use of SAVE10 is gone.
	w = s.do(t, call{method: http.MethodPost, path: "/api/orders", body: placeBody, user: "bob"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "discount_limit_reached", errorOf(t, w).Code)
}

func TestOrdersAreScopedToUser(t *testing.T) {
	s := newTestServer(t)
	id := placeOrder(t, s, "alice")

	w := s.do(t, call{method: http.MethodGet, path: "/api/orders/" + id, user: "alice"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/orders/" + id, user: "bob"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/orders/not-a-uuid", user: "alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/orders", user: "alice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, arrayLen(t, w.Body.Bytes()))

	w = s.do(t, call{method: http.MethodGet, path: "/api/orders", user: "bob"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, arrayLen(t, w.Body.Bytes()))
}

func TestOperatorEndpoints(t *testing.T) {
	s := newTestServer(t)
	id := placeOrder(t, s, "alice")
	pay := `{"method": "paypal", "reference": "PAY-1", "payerEmail": "a@example.com"}`

	w := s.do(t, call{method: http.MethodPost, path: "/api/orders/" + id + "/payment", body: pay})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/orders/" + id + "/payment", body: pay, apiKey: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/orders/" + id + "/payment", body: pay, apiKey: "ro-key"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "forbidden", errorOf(t, w).Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/orders/" + id + "/payment", body: pay, apiKey: "ops-key"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	paid := decode[oas.Order](t, w)
	assert.True(t, paid.IsPaid)
	payment, ok := paid.Payment.Get()
	require.True(t, ok)
	assert.Equal(t, "PAY-1", payment.Reference)

	w = s.do(t, call{method: http.MethodPost, path: "/api/orders/" + id + "/payment", body: pay, apiKey: "ops-key"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "order_already_paid", errorOf(t, w).Code)

	w = s.do(t, call{method: http.MethodPatch, path: "/api/orders/" + id + "/status",
		body: `{"status": "shipped"}`, apiKey: "ops-key"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "illegal_status_transition", errorOf(t, w).Code)

	w = s.do(t, call{method: http.MethodPatch, path: "/api/orders/" + id + "/status",
		body: `{"status": "packing"}`, apiKey: "ops-key"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "packing", decode[oas.Order](t, w).Status)

	w = s.do(t, call{method: http.MethodGet, path: "/api/admin/orders/" + id, apiKey: "ro-key"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", decode[oas.Order](t, w).UserId)

	// Shopper tokens do not open operator routes.
	w = s.do(t, call{method: http.MethodGet, path: "/api/admin/orders/" + id, user: "alice"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCoupons(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, call{method: http.MethodPost, path: "/api/coupons/save10", user: "alice"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	c := decode[oas.Coupon](t, w)
	assert.Equal(t, "SAVE10", c.Code)
	assert.Equal(t, "saved", c.State)

	w = s.do(t, call{method: http.MethodPost, path: "/api/coupons/GHOST", user: "alice"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	placeOrder(t, s, "alice")

	w = s.do(t, call{method: http.MethodGet, path: "/api/coupons", user: "alice"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, arrayLen(t, w.Body.Bytes()))
	assert.Contains(t, w.Body.String(), `"state":"redeemed"`)
}

func TestSecurityHandler_KeyStoreDown(t *testing.T) {
	tokens, err := auth.NewTokenIssuer([]byte("secret"), time.Hour)
	require.NoError(t, err)
	sec := NewSecurityHandler(tokens, brokenKeys{}, testPepper)

	_, err = sec.HandleAPIKey(context.Background(), oas.AdminGetOrderOperation, oas.APIKey{APIKey: "ops-key"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindDependency, apperr.KindOf(err))

	resp := errorResponse(context.Background(), &ogenerrors.SecurityError{Security: "APIKey", Err: err})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, "auth_unavailable", resp.Response.Code)
	assert.NotContains(t, resp.Response.Message, "10.0.0.5")
}

func TestSecurityHandler_Subject(t *testing.T) {
	tokens, err := auth.NewTokenIssuer([]byte("secret"), time.Hour)
	require.NoError(t, err)
	sec := NewSecurityHandler(tokens, fakeKeys{}, testPepper)

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	_, ok := sec.Subject(req)
	assert.False(t, ok)

	req.Header.Set("Authorization", "Bearer forged")
	_, ok = sec.Subject(req)
	assert.False(t, ok)

	token, err := tokens.Issue("alice")
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	sub, ok := sec.Subject(req)
	require.True(t, ok)
	assert.Equal(t, "user:alice", sub)
}

func TestErrorResponse(t *testing.T) {
	ctx := context.Background()

	resp := errorResponse(ctx, errors.New("pq: relation orders does not exist"))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, oas.Error{Code: "internal", Message: "internal server error"}, resp.Response)

	resp = errorResponse(ctx, &ogenerrors.DecodeRequestError{
		Err: errors.Wrap(errors.New("can't convert abc to decimal"), "decode orderAmount"),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, oas.Error{Code: "invalid_body", Message: "request body is malformed"}, resp.Response)

	resp = errorResponse(ctx, errors.Wrap(order.ErrNotFound, "load order"))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
