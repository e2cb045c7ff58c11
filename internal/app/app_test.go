package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap/zaptest"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/domain/auth"
	"github.com/xenking/storefront-checkout/pkg/health"
)

const (
	testSecret   = "jwt-secret"
	testAPIKey   = "operator-key"
	testPepper   = "pepper"
	testShopper  = "shopper-1"
	requestIDHdr = "X-Request-ID"
)

type noopTelemetry struct{}

func (noopTelemetry) TracerProvider() trace.TracerProvider { return tracenoop.NewTracerProvider() }
func (noopTelemetry) MeterProvider() metric.MeterProvider  { return metricnoop.NewMeterProvider() }

func memoryConfig() *Config {
	return &Config{
		Storage:        StorageMemory,
		JWTSecret:      testSecret,
		TokenTTL:       time.Hour,
		APIKeyPepper:   testPepper,
		OperatorAPIKey: testAPIKey,
		Pricing: PricingConfig{
			Currency:              "VND",
			FreeShippingThreshold: "1000000",
			FlatShippingRate:      "30000",
		},
		RateLimit: RateLimitConfig{Max: 1000, WriteMax: 100, Window: time.Minute},
		CORS:      CORSConfig{Origins: []string{"*"}},
	}
}

// client talks to an in-process server.
type client struct {
	t     *testing.T
	base  string
	token string
}

func startServer(t *testing.T, cfg *Config) *client {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	hc := health.New()
	h, release, err := NewHandler(ctx, zaptest.NewLogger(t), noopTelemetry{}, cfg, hc)
	require.NoError(t, err)
	t.Cleanup(release)
	hc.Start(ctx, time.Hour)
	t.Cleanup(hc.Stop)
	hc.SetReady(true)

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	issuer, err := auth.NewTokenIssuer([]byte(cfg.JWTSecret), time.Hour)
	require.NoError(t, err)
	token, err := issuer.Issue(testShopper)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, token: token}
}

func (c *client) do(method, path, body string, headers map[string]string) (*http.Response, []byte) {
	c.t.Helper()
	req, err := http.NewRequestWithContext(context.Background(), method, c.base+path, strings.NewReader(body))
	require.NoError(c.t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer func() { _ = resp.Body.Close() }()
	data, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	return resp, data
}

func (c *client) shopper() map[string]string {
	return map[string]string{"Authorization": "Bearer " + c.token}
}

func field(t *testing.T, body []byte, name string) string {
	t.Helper()
	var out string
	require.NoError(t, jx.DecodeBytes(body).Obj(func(d *jx.Decoder, key string) error {
		if key != name {
			return d.Skip()
		}
		if d.Next() == jx.String {
			v, err := d.Str()
			out = v
			return err
		}
		raw, err := d.Raw()
		out = raw.String()
		return err
	}), string(body))
	return out
}

// checkoutFlow runs a shopper and operator session against c.
func checkoutFlow(t *testing.T, c *client) {
	resp, body := c.do(http.MethodGet, "/api/products", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), `"linen-tee"`)

	quote := `{"items": [{"productId": "linen-tee", "size": "M", "qty": 2}], "discountCode": "welcome10"}`
	resp, body = c.do(http.MethodPost, "/api/checkout/quote", quote, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	var q oas.Quote
	require.NoError(t, q.UnmarshalJSON(body))
	// 700000 - 10% = 630000, below the free shipping threshold.
	assert.Equal(t, 700000.0, q.ItemsPrice)
	assert.Equal(t, 660000.0, q.TotalPrice)

	place := `{
		"items": [{"productId": "linen-tee", "size": "M", "qty": 2}],
		"discountCode": "WELCOME10",
		"expectedTotal": 660000,
		"paymentMethod": "paypal",
		"shipping": {"fullName": "Binh Tran", "phone": "0911111111", "address": "9 Hai Ba Trung",
			"city": "Hanoi", "postalCode": "100000", "country": "VN"}
	}`
	resp, body = c.do(http.MethodPost, "/api/orders", place, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = c.do(http.MethodPost, "/api/orders", place, c.shopper())
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var placed oas.Order
	require.NoError(t, placed.UnmarshalJSON(body))
	id := placed.ID
	assert.Equal(t, "placed", placed.Status)
	assert.Equal(t, 660000.0, placed.TotalPrice)

	// The same shopper cannot use the code twice.
	resp, body = c.do(http.MethodPost, "/api/orders", place, c.shopper())
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))
	assert.Equal(t, "coupon_already_redeemed", field(t, body, "code"))

	resp, body = c.do(http.MethodGet, "/api/coupons", "", c.shopper())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"state":"redeemed"`)

	operator := map[string]string{"X-API-Key": testAPIKey}
	resp, body = c.do(http.MethodPost, "/api/orders/"+id+"/payment",
		`{"method": "paypal", "reference": "PAYID-1", "payerEmail": "binh@example.com"}`, operator)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "true", field(t, body, "isPaid"))

	for _, status := range []string{"packing", "shipped", "out_for_delivery", "delivered"} {
		resp, body = c.do(http.MethodPatch, "/api/orders/"+id+"/status", `{"status": "`+status+`"}`, operator)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	}
	var delivered oas.Order
	require.NoError(t, delivered.UnmarshalJSON(body))
	assert.True(t, delivered.DeliveredAt.IsSet())

	resp, body = c.do(http.MethodGet, "/api/orders/"+id, "", c.shopper())
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "delivered", field(t, body, "status"))
}

func TestCheckoutFlow(t *testing.T) {
	checkoutFlow(t, startServer(t, memoryConfig()))
}

func TestHealthEndpoints(t *testing.T) {
	c := startServer(t, memoryConfig())

	for _, path := range []string{"/livez", "/readyz"} {
		resp, body := c.do(http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, "ok", field(t, body, "status"), path)
	}
}

func TestMiddlewareChain(t *testing.T) {
	c := startServer(t, memoryConfig())

	resp, _ := c.do(http.MethodGet, "/livez", "", nil)
	assert.NotEmpty(t, resp.Header.Get(requestIDHdr))

	resp, _ = c.do(http.MethodGet, "/livez", "", map[string]string{requestIDHdr: "custom-request-id-12345"})
	assert.Equal(t, "custom-request-id-12345", resp.Header.Get(requestIDHdr))

	resp, _ = c.do(http.MethodOptions, "/api/products", "", map[string]string{
		"Origin":                        "http://example.com",
		"Access-Control-Request-Method": "GET",
	})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Allow-Methods"))

	resp, _ = c.do(http.MethodGet, "/api/products", "", nil)
	assert.Equal(t, "1000", resp.Header.Get("X-RateLimit-Limit"))
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))

	resp, _ = c.do(http.MethodPost, "/api/checkout/quote", `{}`, nil)
	assert.Equal(t, "100", resp.Header.Get("X-RateLimit-Limit"))
}

func TestRateLimitIgnoresForgedTokens(t *testing.T) {
	cfg := memoryConfig()
	cfg.RateLimit = RateLimitConfig{Max: 3, WriteMax: 3, Window: time.Minute}
	c := startServer(t, cfg)

	quote := `{"items": [{"productId": "linen-tee", "size": "M", "qty": 1}]}`
	limited := 0
	for i := range 10 {
		resp, _ := c.do(http.MethodPost, "/api/checkout/quote", quote, map[string]string{
			"Authorization": fmt.Sprintf("Bearer forged-%d", i),
		})
		if resp.StatusCode == http.StatusTooManyRequests {
			limited++
		}
	}
	assert.Equal(t, 7, limited)

	// A verified shopper keeps a budget of their own.
	resp, body := c.do(http.MethodPost, "/api/checkout/quote", quote, c.shopper())
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
}

func TestNewHandler_InvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Pricing.FlatShippingRate = "abc"
	_, _, err := NewHandler(context.Background(), zaptest.NewLogger(t), noopTelemetry{}, cfg, health.New())
	assert.Error(t, err)
}
