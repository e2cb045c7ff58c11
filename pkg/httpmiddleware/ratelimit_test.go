package httpmiddleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func serve(h http.Handler, method, remote string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/", nil)
	req.RemoteAddr = remote
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRateLimit_UnderLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 5, Window: time.Minute})(okHandler())

	for i := range 5 {
		w := serve(h, http.MethodGet, "192.168.1.1:12345", nil)
		assert.Equal(t, http.StatusOK, w.Code, "request %d", i+1)
		assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
		assert.NotEmpty(t, w.Header().Get("X-RateLimit-Reset"))
	}
}

func TestRateLimit_OverLimit(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 2, Window: time.Minute})(okHandler())
	for range 2 {
		require.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.1:9999", nil).Code)
	}

	w := serve(h, http.MethodGet, "10.0.0.1:9999", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, w.Header().Get("Retry-After"))

	var code string
	require.NoError(t, jx.DecodeBytes(w.Body.Bytes()).Obj(func(d *jx.Decoder, key string) error {
		if key == "code" {
			v, err := d.Str()
			code = v
			return err
		}
		return d.Skip()
	}))
	assert.Equal(t, "rate_limited", code)
}

func TestRateLimit_WritesHaveOwnBudget(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 3, WriteMax: 1, Window: time.Minute})(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, http.MethodPost, "10.0.0.1:1", nil).Code)
	w := serve(h, http.MethodPost, "10.0.0.1:1", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("X-RateLimit-Limit"))

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.1:1", nil).Code)
}

func TestRateLimit_DifferentIPs(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.1:1234", nil).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.2:1234", nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "10.0.0.1:5678", nil).Code)
}

func verifyBearer(r *http.Request) (string, bool) {
	switch r.Header.Get("Authorization") {
	case "Bearer valid-a":
		return "a", true
	case "Bearer valid-b":
		return "b", true
	}
	return "", false
}

func TestRateLimit_KeyBySubject(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute, KeyFunc: KeyBySubject(verifyBearer)})(okHandler())

	a := map[string]string{"Authorization": "Bearer valid-a"}
	b := map[string]string{"Authorization": "Bearer valid-b"}
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.1:1", a).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "10.0.0.1:1", a).Code)
	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "10.0.0.1:1", b).Code)
}

func TestRateLimit_ForgedTokensShareIPBudget(t *testing.T) {
	rl := newRateLimiter(RateLimitConfig{Max: 1, Window: time.Minute, KeyFunc: KeyBySubject(verifyBearer)})
	h := rl.middleware()(okHandler())

	passed := 0
	for i := range 50 {
		w := serve(h, http.MethodPost, "10.0.0.1:1", map[string]string{
			"Authorization": "Bearer junk" + strconv.Itoa(i),
		})
		if w.Code == http.StatusOK {
			passed++
		}
	}
	assert.Equal(t, 1, passed)
	assert.Len(t, rl.windows, 1)
}

func TestRateLimit_XForwardedFor(t *testing.T) {
	h := RateLimit(RateLimitConfig{Max: 1, Window: time.Minute})(okHandler())
	xff := map[string]string{"X-Forwarded-For": "203.0.113.50, 70.41.3.18"}

	assert.Equal(t, http.StatusOK, serve(h, http.MethodGet, "192.168.1.1:4444", xff).Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(h, http.MethodGet, "192.168.1.2:5555", xff).Code)
}

func TestWindowSlides(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	w := &window{start: start}

	for range 4 {
		_, _, ok := w.hit(start, time.Minute, 4)
		require.True(t, ok)
	}
	_, _, ok := w.hit(start.Add(30*time.Second), time.Minute, 4)
	assert.False(t, ok)

	// Half of the previous window still counts: 4*0.5 = 2 used.
	remaining, _, ok := w.hit(start.Add(90*time.Second), time.Minute, 4)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	_, _, ok = w.hit(start.Add(5*time.Minute), time.Minute, 4)
	assert.True(t, ok)
}
